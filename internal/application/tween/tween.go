// Package tween animates actor properties over time. Every change goes
// through the actor's public mutators so the transform cache stays valid.
package tween

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
)

// Property selects which actor setter a tween drives.
type Property uint8

const (
	Position Property = iota
	Scale
	Rotation // Euler XYZ, degrees
	Roll     // Degrees around Z
	Opacity
)

// String returns the string representation of the property
func (p Property) String() string {
	switch p {
	case Position:
		return "position"
	case Scale:
		return "scale"
	case Rotation:
		return "rotation"
	case Roll:
		return "roll"
	case Opacity:
		return "opacity"
	default:
		return "unknown"
	}
}

// Components returns how many values the property takes.
func (p Property) Components() int {
	switch p {
	case Roll, Opacity:
		return 1
	default:
		return 3
	}
}

// ParseProperty converts a config string to a Property.
func ParseProperty(s string) (Property, error) {
	for p := Position; p <= Opacity; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown tween property %q", s)
}

// Tween interpolates one property of one actor from From to To.
type Tween struct {
	actor    *scenegraph.Actor
	property Property
	from     mgl32.Vec3
	to       mgl32.Vec3
	duration float64
	easing   Easing

	// Loop restarts the tween when it ends. Yoyo plays it back to From
	// before ending or restarting.
	Loop bool
	Yoyo bool

	elapsed float64
	done    bool
}

// New creates a tween. Single-valued properties read the first component
// of from and to.
func New(actor *scenegraph.Actor, property Property, from, to mgl32.Vec3, duration float64, easing Easing) *Tween {
	return &Tween{
		actor:    actor,
		property: property,
		from:     from,
		to:       to,
		duration: duration,
		easing:   easing,
	}
}

func (t *Tween) Actor() *scenegraph.Actor { return t.actor }
func (t *Tween) Property() Property       { return t.property }
func (t *Tween) Done() bool               { return t.done }

// Reset rewinds the tween without touching the actor.
func (t *Tween) Reset() {
	t.elapsed = 0
	t.done = false
}

// Update advances the tween by dt seconds, applies the new value and
// reports whether the tween has finished.
func (t *Tween) Update(dt float64) bool {
	if t.done {
		return true
	}
	t.elapsed += dt

	p := t.progress()
	t.apply(lerp(t.from, t.to, float32(t.easing.Apply(p))))
	return t.done
}

// progress returns the linear position on the From to To curve and marks
// the tween done once a non-looping run completes.
func (t *Tween) progress() float64 {
	if t.duration <= 0 {
		t.done = !t.Loop
		if t.Yoyo {
			return 0
		}
		return 1
	}

	span := t.duration
	if t.Yoyo {
		span *= 2
	}

	pos := t.elapsed
	if t.Loop {
		pos = math.Mod(pos, span)
	} else if pos >= span {
		t.done = true
		pos = span
	}

	p := pos / t.duration
	if p > 1 {
		p = 2 - p
	}
	return p
}

func (t *Tween) apply(v mgl32.Vec3) {
	switch t.property {
	case Position:
		t.actor.SetPosition(v)
	case Scale:
		t.actor.SetScale(v)
	case Rotation:
		t.actor.SetRotationEuler(mgl32.Vec3{
			mgl32.DegToRad(v[0]),
			mgl32.DegToRad(v[1]),
			mgl32.DegToRad(v[2]),
		})
	case Roll:
		t.actor.SetRoll(mgl32.DegToRad(v[0]))
	case Opacity:
		t.actor.SetOpacity(v[0])
	}
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Group updates a set of tweens together and drops finished ones.
type Group struct {
	tweens []*Tween
}

func (g *Group) Add(t *Tween)     { g.tweens = append(g.tweens, t) }
func (g *Group) Len() int         { return len(g.tweens) }
func (g *Group) Tweens() []*Tween { return g.tweens }
func (g *Group) Clear()           { g.tweens = nil }

// Update advances every tween by dt in insertion order.
func (g *Group) Update(dt float64) {
	live := g.tweens[:0]
	for _, t := range g.tweens {
		if !t.Update(dt) {
			live = append(live, t)
		}
	}
	clear(g.tweens[len(live):])
	g.tweens = live
}
