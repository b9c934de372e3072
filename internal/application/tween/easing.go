package tween

import "fmt"

// Easing names an interpolation curve over t in [0,1].
type Easing string

const (
	Linear     Easing = "linear"
	EaseIn     Easing = "easeIn"
	EaseOut    Easing = "easeOut"
	EaseInOut  Easing = "easeInOut"
	CubicIn    Easing = "cubicIn"
	CubicOut   Easing = "cubicOut"
	CubicInOut Easing = "cubicInOut"
)

// ParseEasing converts a config string to an Easing. Empty means Linear.
func ParseEasing(s string) (Easing, error) {
	switch e := Easing(s); e {
	case "":
		return Linear, nil
	case Linear, EaseIn, EaseOut, EaseInOut, CubicIn, CubicOut, CubicInOut:
		return e, nil
	default:
		return Linear, fmt.Errorf("unknown easing %q", s)
	}
}

// Apply maps linear progress t to eased progress.
func (e Easing) Apply(t float64) float64 {
	switch e {
	case EaseIn:
		return t * t

	case EaseOut:
		return t * (2 - t)

	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t

	case CubicIn:
		return t * t * t

	case CubicOut:
		t2 := 1 - t
		return 1 - t2*t2*t2

	case CubicInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		t2 := -2*t + 2
		return 1 - t2*t2*t2/2

	default:
		return t
	}
}
