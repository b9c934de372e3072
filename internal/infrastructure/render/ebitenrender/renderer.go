// Package ebitenrender draws scene graph commands onto ebiten images.
package ebitenrender

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/younwookim/scenecore/internal/domain/geom"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
	"github.com/younwookim/scenecore/internal/infrastructure/render"
)

// Target is an offscreen render target backed by an ebiten image.
type Target struct {
	image *ebiten.Image
}

// NewTarget allocates a width x height offscreen target.
func NewTarget(width, height int) *Target {
	return &Target{image: ebiten.NewImage(width, height)}
}

// Image returns the backing image, e.g. to use it as a sprite texture.
func (t *Target) Image() *ebiten.Image { return t.image }

func (t *Target) Size() (int, int) {
	b := t.image.Bounds()
	return b.Dx(), b.Dy()
}

// Stats counts what the renderer submitted since the last Begin.
type Stats struct {
	Commands  int
	Triangles int
	Lines     int
}

// Renderer implements scenegraph.Renderer on top of ebiten.
type Renderer struct {
	screen   *ebiten.Image
	target   *ebiten.Image
	viewport geom.Rect
	fill     scenegraph.FillMode
	white    *ebiten.Image

	projected []render.ScreenVertex
	vertices  []ebiten.Vertex
	indices   []uint16
	stats     Stats
}

// New creates a renderer. Call Begin with the frame's screen image before
// drawing.
func New() *Renderer {
	return &Renderer{}
}

// Begin binds the back buffer for the frame and resets the stats.
func (r *Renderer) Begin(screen *ebiten.Image) {
	r.screen = screen
	r.target = screen
	r.fill = scenegraph.FillSolid
	r.stats = Stats{}
}

// Stats returns the counters for the current frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Size returns the back buffer size, or zero before the first Begin.
func (r *Renderer) Size() (int, int) {
	if r.screen == nil {
		return 0, 0
	}
	b := r.screen.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Renderer) SetRenderTarget(target scenegraph.RenderTarget) {
	switch t := target.(type) {
	case nil:
		r.target = r.screen
	case *Target:
		r.target = t.image
	default:
		scenegraph.Logger().Warn("unsupported render target, using back buffer", "type", fmt.Sprintf("%T", target))
		r.target = r.screen
	}
}

func (r *Renderer) SetViewport(viewport geom.Rect) { r.viewport = viewport }

// SetDepthState is ignored; ebiten draws 2D triangles in submission order.
func (r *Renderer) SetDepthState(test, write bool) {}

func (r *Renderer) SetFillMode(mode scenegraph.FillMode) { r.fill = mode }

// Submit draws cmd into the bound target, clipped to the viewport.
func (r *Renderer) Submit(cmd scenegraph.DrawCommand) {
	if r.target == nil {
		scenegraph.Logger().Warn("submit without a bound target")
		return
	}
	clip := viewportRect(r.viewport).Intersect(r.target.Bounds())
	if clip.Empty() {
		return
	}
	dst := r.target.SubImage(clip).(*ebiten.Image)

	r.stats.Commands++
	r.projected = render.Project(r.projected[:0], cmd, r.viewport)

	if render.Filled(cmd, r.fill) {
		r.drawTriangles(dst, cmd)
		return
	}

	c := toNRGBA(cmd.Color)
	pts := r.projected
	render.Edges(cmd, func(a, b int) {
		if !pts[a].Visible || !pts[b].Visible {
			return
		}
		ebitenutil.DrawLine(dst, float64(pts[a].X), float64(pts[a].Y), float64(pts[b].X), float64(pts[b].Y), c)
		r.stats.Lines++
	})
}

func (r *Renderer) drawTriangles(dst *ebiten.Image, cmd scenegraph.DrawCommand) {
	src, ok := cmd.Texture.(*ebiten.Image)
	textured := ok && src != nil
	if !textured {
		src = r.whiteImage()
	}

	r.vertices = appendVertices(r.vertices[:0], r.projected, cmd.Color, src.Bounds(), textured)
	r.indices = appendTriangles(r.indices[:0], cmd, r.projected)
	if len(r.indices) == 0 {
		return
	}
	dst.DrawTriangles(r.vertices, r.indices, src, &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
	})
	r.stats.Triangles += len(r.indices) / 3
}

// whiteImage returns a 1x1 white source taken from the middle of a 3x3
// image so sampling never bleeds past its edges.
func (r *Renderer) whiteImage() *ebiten.Image {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return r.white
}

// appendVertices converts projected vertices into ebiten vertices tinted
// by c. Untextured vertices all sample the top-left texel of src.
func appendVertices(dst []ebiten.Vertex, pts []render.ScreenVertex, c mgl32.Vec4, src image.Rectangle, textured bool) []ebiten.Vertex {
	for _, p := range pts {
		v := ebiten.Vertex{
			DstX:   p.X,
			DstY:   p.Y,
			SrcX:   float32(src.Min.X),
			SrcY:   float32(src.Min.Y),
			ColorR: c[0],
			ColorG: c[1],
			ColorB: c[2],
			ColorA: c[3],
		}
		if textured {
			v.SrcX += p.U * float32(src.Dx())
			v.SrcY += p.V * float32(src.Dy())
		}
		dst = append(dst, v)
	}
	return dst
}

// appendTriangles appends the indices of every triangle whose three
// vertices are in front of the eye.
func appendTriangles(dst []uint16, cmd scenegraph.DrawCommand, pts []render.ScreenVertex) []uint16 {
	render.Triangles(cmd, func(a, b, c int) {
		if pts[a].Visible && pts[b].Visible && pts[c].Visible {
			dst = append(dst, uint16(a), uint16(b), uint16(c))
		}
	})
	return dst
}

func viewportRect(vp geom.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(vp.X))),
		int(math.Floor(float64(vp.Y))),
		int(math.Ceil(float64(vp.X+vp.Width))),
		int(math.Ceil(float64(vp.Y+vp.Height))),
	)
}

func toNRGBA(c mgl32.Vec4) color.NRGBA {
	r, g, b, a := render.RGBA8(c)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
