// Package termrender rasterizes draw commands into a terminal. Each cell
// holds two vertically stacked pixels drawn with an upper half block.
package termrender

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenecore/internal/domain/geom"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
	"github.com/younwookim/scenecore/internal/infrastructure/render"
)

const halfBlock = '▀'

// Screen is the part of tcell.Screen the renderer writes to.
type Screen interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// Renderer implements scenegraph.Renderer on a terminal screen.
type Renderer struct {
	screen     Screen
	back       *Canvas
	target     *Canvas
	viewport   geom.Rect
	fill       scenegraph.FillMode
	background mgl32.Vec3

	projected []render.ScreenVertex
}

// New creates a renderer drawing onto screen.
func New(screen Screen) *Renderer {
	r := &Renderer{screen: screen, back: NewCanvas(0, 0)}
	r.target = r.back
	return r
}

// SetBackground sets the clear color.
func (r *Renderer) SetBackground(c mgl32.Vec3) { r.background = c }

// Size returns the back buffer size in pixels: the screen columns by twice
// the screen rows.
func (r *Renderer) Size() (int, int) {
	w, h := r.screen.Size()
	return w, h * 2
}

// Begin sizes the back buffer to the screen and clears it.
func (r *Renderer) Begin() {
	w, h := r.Size()
	r.back.Resize(w, h)
	r.back.Clear(r.background)
	r.target = r.back
	r.fill = scenegraph.FillSolid
}

// Present copies the back buffer to the screen and shows it.
func (r *Renderer) Present() {
	cols, rows := r.screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := r.back.At(x, y*2)
			bottom := r.back.At(x, y*2+1)
			style := tcell.StyleDefault.Foreground(toColor(top)).Background(toColor(bottom))
			r.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	r.screen.Show()
}

// SetRenderTarget selects a *Canvas; nil or an unknown target selects the
// back buffer.
func (r *Renderer) SetRenderTarget(target scenegraph.RenderTarget) {
	switch t := target.(type) {
	case nil:
		r.target = r.back
	case *Canvas:
		r.target = t
	default:
		scenegraph.Logger().Warn("unsupported render target, using back buffer", "type", fmt.Sprintf("%T", target))
		r.target = r.back
	}
}

func (r *Renderer) SetViewport(viewport geom.Rect) { r.viewport = viewport }

// SetDepthState is accepted and ignored; pixels are painted in submission
// order.
func (r *Renderer) SetDepthState(test, write bool) {}

func (r *Renderer) SetFillMode(mode scenegraph.FillMode) { r.fill = mode }

// Submit rasterizes cmd into the current target, clipped to the viewport.
func (r *Renderer) Submit(cmd scenegraph.DrawCommand) {
	r.projected = render.Project(r.projected[:0], cmd, r.viewport)
	clip := r.clipRect()
	color := cmd.Color
	pts := r.projected

	if render.Filled(cmd, r.fill) {
		render.Triangles(cmd, func(a, b, c int) {
			if pts[a].Visible && pts[b].Visible && pts[c].Visible {
				r.target.fillTriangle(pts[a], pts[b], pts[c], clip, color)
			}
		})
		return
	}
	render.Edges(cmd, func(a, b int) {
		if pts[a].Visible && pts[b].Visible {
			r.target.drawLine(pts[a], pts[b], clip, color)
		}
	})
}

// clipRect returns the viewport clamped to the target, as pixel bounds
// [x0,x1) by [y0,y1).
func (r *Renderer) clipRect() [4]int {
	vp := r.viewport
	x0 := max(0, int(math.Floor(float64(vp.X))))
	y0 := max(0, int(math.Floor(float64(vp.Y))))
	x1 := min(r.target.width, int(math.Ceil(float64(vp.X+vp.Width))))
	y1 := min(r.target.height, int(math.Ceil(float64(vp.Y+vp.Height))))
	return [4]int{x0, y0, x1, y1}
}

func toColor(c mgl32.Vec3) tcell.Color {
	r, g, b, _ := render.RGBA8(c.Vec4(1))
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
