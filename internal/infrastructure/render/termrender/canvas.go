package termrender

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenecore/internal/infrastructure/render"
)

// Canvas is an RGB pixel grid. It doubles as an offscreen render target.
type Canvas struct {
	width, height int
	pixels        []mgl32.Vec3
}

// NewCanvas creates a black canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (int, int) { return c.width, c.height }

// Resize changes the canvas size. Contents are not preserved.
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	c.width, c.height = width, height
	if n := width * height; cap(c.pixels) >= n {
		c.pixels = c.pixels[:n]
	} else {
		c.pixels = make([]mgl32.Vec3, n)
	}
}

// Clear fills the canvas with color.
func (c *Canvas) Clear(color mgl32.Vec3) {
	for i := range c.pixels {
		c.pixels[i] = color
	}
}

// At returns the pixel at (x, y), black outside the canvas.
func (c *Canvas) At(x, y int) mgl32.Vec3 {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return mgl32.Vec3{}
	}
	return c.pixels[y*c.width+x]
}

// blend composites color over the pixel at (x, y) with straight alpha.
func (c *Canvas) blend(x, y int, color mgl32.Vec4) {
	i := y*c.width + x
	a := mgl32.Clamp(color[3], 0, 1)
	dst := c.pixels[i]
	c.pixels[i] = color.Vec3().Mul(a).Add(dst.Mul(1 - a))
}

// fillTriangle paints the pixels whose centers fall inside the triangle,
// in either winding order.
func (c *Canvas) fillTriangle(a, b, v render.ScreenVertex, clip [4]int, color mgl32.Vec4) {
	area := edge(a.X, a.Y, b.X, b.Y, v.X, v.Y)
	if area == 0 {
		return
	}

	x0 := max(clip[0], int(math.Floor(float64(min(a.X, b.X, v.X)))))
	y0 := max(clip[1], int(math.Floor(float64(min(a.Y, b.Y, v.Y)))))
	x1 := min(clip[2], int(math.Ceil(float64(max(a.X, b.X, v.X)))))
	y1 := min(clip[3], int(math.Ceil(float64(max(a.Y, b.Y, v.Y)))))
	x1, y1 = min(x1, c.width), min(y1, c.height)

	for y := y0; y < y1; y++ {
		py := float32(y) + 0.5
		for x := x0; x < x1; x++ {
			px := float32(x) + 0.5
			w0 := edge(b.X, b.Y, v.X, v.Y, px, py)
			w1 := edge(v.X, v.Y, a.X, a.Y, px, py)
			w2 := edge(a.X, a.Y, b.X, b.Y, px, py)
			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				c.blend(x, y, color)
			}
		}
	}
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// drawLine paints a one pixel wide line with a DDA walk.
func (c *Canvas) drawLine(a, b render.ScreenVertex, clip [4]int, color mgl32.Vec4) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(math.Ceil(float64(max(abs32(dx), abs32(dy)))))
	if steps == 0 {
		steps = 1
	}
	sx, sy := dx/float32(steps), dy/float32(steps)

	x, y := a.X, a.Y
	for i := 0; i <= steps; i++ {
		px, py := int(math.Floor(float64(x))), int(math.Floor(float64(y)))
		if px >= clip[0] && px < clip[2] && py >= clip[1] && py < clip[3] && px < c.width && py < c.height {
			c.blend(px, py, color)
		}
		x += sx
		y += sy
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
