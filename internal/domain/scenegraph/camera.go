package scenegraph

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenecore/internal/domain/geom"
	"github.com/younwookim/scenecore/internal/domain/ident"
)

// ProjectionMode selects how a camera builds its projection matrix.
type ProjectionMode uint8

const (
	// ProjectionCustom uses a caller-supplied matrix that is never rebuilt.
	ProjectionCustom ProjectionMode = iota
	ProjectionOrthographic
	ProjectionPerspective
)

// String returns the string representation of the projection mode
func (m ProjectionMode) String() string {
	switch m {
	case ProjectionCustom:
		return "custom"
	case ProjectionOrthographic:
		return "orthographic"
	case ProjectionPerspective:
		return "perspective"
	default:
		return "unknown"
	}
}

// ParseProjectionMode parses the names returned by ProjectionMode.String.
func ParseProjectionMode(s string) (ProjectionMode, error) {
	switch strings.ToLower(s) {
	case "custom":
		return ProjectionCustom, nil
	case "orthographic", "ortho":
		return ProjectionOrthographic, nil
	case "perspective":
		return ProjectionPerspective, nil
	}
	return 0, fmt.Errorf("unknown projection mode %q", s)
}

// ScaleMode maps a design-time content size onto the render viewport.
type ScaleMode uint8

const (
	ScaleNone ScaleMode = iota
	// ScaleExactFit stretches the viewport with a unit scale on both axes.
	ScaleExactFit
	// ScaleNoBorder uses the larger axis ratio and crops the overflow.
	ScaleNoBorder
	// ScaleShowAll uses the smaller axis ratio and letterboxes.
	ScaleShowAll
)

// String returns the string representation of the scale mode
func (m ScaleMode) String() string {
	switch m {
	case ScaleNone:
		return "none"
	case ScaleExactFit:
		return "exact_fit"
	case ScaleNoBorder:
		return "no_border"
	case ScaleShowAll:
		return "show_all"
	default:
		return "unknown"
	}
}

// ParseScaleMode parses the names returned by ScaleMode.String.
func ParseScaleMode(s string) (ScaleMode, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return ScaleNone, nil
	case "exact_fit":
		return ScaleExactFit, nil
	case "no_border":
		return ScaleNoBorder, nil
	case "show_all":
		return ScaleShowAll, nil
	}
	return 0, fmt.Errorf("unknown scale mode %q", s)
}

// Camera is a component that projects a layer's actors into a viewport.
// Its view matrix is the inverse world transform of the owning actor.
//
// A camera is registered with a layer only while its actor belongs to
// that layer.
type Camera struct {
	BaseComponent

	projectionMode ProjectionMode
	scaleMode      ScaleMode

	targetContentSize mgl32.Vec2
	fieldOfView       float32
	nearPlane         float32
	farPlane          float32

	// viewport is normalized to the render target, origin top-left.
	viewport       geom.Rect
	renderViewport geom.Rect
	renderWidth    int
	renderHeight   int

	contentSize     mgl32.Vec2
	contentScale    mgl32.Vec2
	contentPosition mgl32.Vec2

	projection            mgl32.Mat4
	view                  mgl32.Mat4
	viewProjection        mgl32.Mat4
	inverseViewProjection mgl32.Mat4

	viewVersion                uint64
	viewProjectionDirty        bool
	inverseViewProjectionDirty bool

	depthTest    bool
	depthWrite   bool
	wireframe    bool
	renderTarget RenderTarget

	queue DrawQueue
}

func newCamera(mode ProjectionMode) *Camera {
	c := &Camera{
		BaseComponent:              NewBaseComponent(KindCamera),
		projectionMode:             mode,
		viewport:                   geom.UnitRect,
		contentScale:               mgl32.Vec2{1, 1},
		projection:                 mgl32.Ident4(),
		view:                       mgl32.Ident4(),
		viewProjection:             mgl32.Ident4(),
		inverseViewProjection:      mgl32.Ident4(),
		viewProjectionDirty:        true,
		inverseViewProjectionDirty: true,
	}
	c.id = ident.NewCameraID()
	return c
}

// NewCamera creates a camera with a fixed projection matrix.
func NewCamera(projection mgl32.Mat4) *Camera {
	c := newCamera(ProjectionCustom)
	c.projection = projection
	return c
}

// NewOrthographicCamera creates a 2D camera. A zero targetContentSize
// shows the viewport at one world unit per pixel.
func NewOrthographicCamera(targetContentSize mgl32.Vec2, scaleMode ScaleMode) *Camera {
	c := newCamera(ProjectionOrthographic)
	c.targetContentSize = targetContentSize
	c.scaleMode = scaleMode
	c.nearPlane = -1024
	c.farPlane = 1024
	return c
}

// NewPerspectiveCamera creates a 3D camera. fieldOfView is vertical, in
// radians.
func NewPerspectiveCamera(fieldOfView, nearPlane, farPlane float32) *Camera {
	c := newCamera(ProjectionPerspective)
	c.fieldOfView = fieldOfView
	c.nearPlane = nearPlane
	c.farPlane = farPlane
	c.depthTest = true
	c.depthWrite = true
	return c
}

func (c *Camera) ProjectionMode() ProjectionMode { return c.projectionMode }
func (c *Camera) ScaleMode() ScaleMode           { return c.scaleMode }

// SetScaleMode changes the content scale policy.
func (c *Camera) SetScaleMode(mode ScaleMode) {
	c.scaleMode = mode
	c.RecalculateProjection()
}

func (c *Camera) TargetContentSize() mgl32.Vec2 { return c.targetContentSize }

// SetTargetContentSize changes the design-time content size.
func (c *Camera) SetTargetContentSize(size mgl32.Vec2) {
	c.targetContentSize = size
	c.RecalculateProjection()
}

// SetClipPlanes changes the near and far planes.
func (c *Camera) SetClipPlanes(nearPlane, farPlane float32) {
	c.nearPlane = nearPlane
	c.farPlane = farPlane
	c.RecalculateProjection()
}

// SetFieldOfView changes the vertical field of view of a perspective camera.
func (c *Camera) SetFieldOfView(fieldOfView float32) {
	c.fieldOfView = fieldOfView
	c.RecalculateProjection()
}

// Viewport returns the normalized viewport.
func (c *Camera) Viewport() geom.Rect { return c.viewport }

// SetViewport sets the normalized viewport, origin at the top-left of the
// render target.
func (c *Camera) SetViewport(viewport geom.Rect) {
	c.viewport = viewport
	c.RecalculateProjection()
}

// RenderViewport returns the viewport in render target pixels.
func (c *Camera) RenderViewport() geom.Rect { return c.renderViewport }

func (c *Camera) ContentSize() mgl32.Vec2     { return c.contentSize }
func (c *Camera) ContentScale() mgl32.Vec2    { return c.contentScale }
func (c *Camera) ContentPosition() mgl32.Vec2 { return c.contentPosition }

func (c *Camera) DepthTest() bool  { return c.depthTest }
func (c *Camera) DepthWrite() bool { return c.depthWrite }

// SetDepthState sets the depth test and write flags applied before drawing.
func (c *Camera) SetDepthState(test, write bool) {
	c.depthTest = test
	c.depthWrite = write
}

func (c *Camera) Wireframe() bool { return c.wireframe }

// SetWireframe enables a second wireframe pass over the queue.
func (c *Camera) SetWireframe(wireframe bool) { c.wireframe = wireframe }

func (c *Camera) RenderTarget() RenderTarget { return c.renderTarget }

// SetRenderTarget redirects the camera into target; nil selects the
// back buffer.
func (c *Camera) SetRenderTarget(target RenderTarget) {
	c.renderTarget = target
	c.RecalculateProjection()
}

// DrawQueue returns the queue built by the last Layer.Draw.
func (c *Camera) DrawQueue() *DrawQueue { return &c.queue }

// Projection returns the projection matrix.
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }

// SetProjection replaces the projection matrix. Only custom cameras keep
// it across recalculations.
func (c *Camera) SetProjection(projection mgl32.Mat4) {
	c.projection = projection
	c.markViewProjectionDirty()
}

func (c *Camera) renderSize() (int, int) {
	if c.renderTarget != nil {
		return c.renderTarget.Size()
	}
	if c.layer != nil && c.layer.renderer != nil {
		return c.layer.renderer.Size()
	}
	return 0, 0
}

// syncRenderSize recalculates the projection when the render target size
// changed since the last recalculation.
func (c *Camera) syncRenderSize() {
	w, h := c.renderSize()
	if w != c.renderWidth || h != c.renderHeight {
		c.RecalculateProjection()
	}
}

// RecalculateProjection rebuilds the render viewport, content scale and
// projection from the current render target size. It does nothing while
// the size is unknown.
func (c *Camera) RecalculateProjection() {
	w, h := c.renderSize()
	if w <= 0 || h <= 0 {
		Logger().Debug("camera projection skipped, no render size", "camera", c.id)
		return
	}
	c.renderWidth, c.renderHeight = w, h
	c.renderViewport = c.viewport.Scale(float32(w), float32(h))

	vw, vh := c.renderViewport.Width, c.renderViewport.Height
	scale := mgl32.Vec2{1, 1}
	target := c.targetContentSize
	if target[0] > 0 && target[1] > 0 {
		sx, sy := vw/target[0], vh/target[1]
		switch c.scaleMode {
		case ScaleNoBorder:
			s := max(sx, sy)
			scale = mgl32.Vec2{s, s}
		case ScaleShowAll:
			s := min(sx, sy)
			scale = mgl32.Vec2{s, s}
		}
	}
	c.contentScale = scale
	c.contentSize = mgl32.Vec2{vw / scale[0], vh / scale[1]}
	if target[0] > 0 && target[1] > 0 {
		c.contentPosition = c.contentSize.Sub(target).Mul(0.5)
	} else {
		c.contentPosition = mgl32.Vec2{}
	}

	cw, ch := c.contentSize[0], c.contentSize[1]
	switch c.projectionMode {
	case ProjectionOrthographic:
		if cw == 0 || ch == 0 || c.nearPlane == c.farPlane {
			Logger().Warn("degenerate orthographic camera", "camera", c.id, "width", cw, "height", ch)
			return
		}
		c.projection = mgl32.Ortho(-cw/2, cw/2, -ch/2, ch/2, c.nearPlane, c.farPlane)
	case ProjectionPerspective:
		if ch == 0 || cw == 0 || c.nearPlane == c.farPlane {
			Logger().Warn("degenerate perspective camera", "camera", c.id, "aspect_width", cw, "aspect_height", ch)
			return
		}
		c.projection = mgl32.Perspective(c.fieldOfView, cw/ch, c.nearPlane, c.farPlane)
	}
	c.markViewProjectionDirty()
}

func (c *Camera) markViewProjectionDirty() {
	c.viewProjectionDirty = true
	c.inverseViewProjectionDirty = true
}

// View returns the inverse of the owning actor's world transform, or the
// identity for a detached camera.
func (c *Camera) View() mgl32.Mat4 {
	if c.actor == nil {
		return mgl32.Ident4()
	}
	inverse := c.actor.InverseTransform()
	if c.viewVersion != c.actor.transformVersion {
		c.view = inverse
		c.viewVersion = c.actor.transformVersion
		c.markViewProjectionDirty()
	}
	return c.view
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	view := c.View()
	if c.viewProjectionDirty {
		c.viewProjection = c.projection.Mul4(view)
		c.viewProjectionDirty = false
	}
	return c.viewProjection
}

// InverseViewProjection maps clip space back to world space.
func (c *Camera) InverseViewProjection() mgl32.Mat4 {
	vp := c.ViewProjection()
	if c.inverseViewProjectionDirty {
		c.inverseViewProjection = vp.Inv()
		c.inverseViewProjectionDirty = false
	}
	return c.inverseViewProjection
}

// RenderViewProjection is the matrix handed to components when drawing.
func (c *Camera) RenderViewProjection() mgl32.Mat4 {
	return c.ViewProjection()
}

// CheckVisibility reports whether box, in the local space of an actor with
// the given world transform, may be visible.
//
// Orthographic cameras use an approximate test on the box center and its
// projected half size; other cameras test the box against the frustum.
func (c *Camera) CheckVisibility(transform mgl32.Mat4, box geom.Box) bool {
	if box.IsEmpty() {
		return false
	}
	if c.projectionMode != ProjectionOrthographic {
		mvp := c.ViewProjection().Mul4(transform)
		return geom.FrustumFromMatrix(mvp).IntersectsBox(box)
	}
	return c.checkVisibility2D(transform, box)
}

func (c *Camera) checkVisibility2D(transform mgl32.Mat4, box geom.Box) bool {
	vp := c.ViewProjection()

	center := mgl32.TransformCoordinate(box.Center(), transform)
	clip := mgl32.TransformCoordinate(center, vp)
	unit := mgl32.Vec2{(clip[0] + 1) / 2, (clip[1] + 1) / 2}

	// Only the XY rotation and scale of the transform are considered.
	half := box.HalfExtents()
	m := transform
	hx := max(abs32(m[0]*half[0]+m[4]*half[1]), abs32(m[0]*half[0]-m[4]*half[1]))
	hy := max(abs32(m[1]*half[0]+m[5]*half[1]), abs32(m[1]*half[0]-m[5]*half[1]))

	hw := hx * (abs32(vp[0]) + abs32(vp[4])) / 2
	hh := hy * (abs32(vp[1]) + abs32(vp[5])) / 2

	bounds := geom.Rect{X: -hw, Y: -hh, Width: 1 + 2*hw, Height: 1 + 2*hh}
	return bounds.ContainsPoint(unit)
}

// ConvertScreenToNormalized maps a pixel position in the render target to
// normalized coordinates, origin top-left.
func (c *Camera) ConvertScreenToNormalized(x, y float32) mgl32.Vec2 {
	w, h := c.renderSize()
	if w <= 0 || h <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{x / float32(w), y / float32(h)}
}

// ConvertNormalizedToWorld maps a normalized render target position to the
// world point on the camera's z=0 clip plane.
func (c *Camera) ConvertNormalizedToWorld(position mgl32.Vec2) mgl32.Vec3 {
	vp := c.viewport
	if vp.IsEmpty() {
		return mgl32.Vec3{}
	}
	lx := (position[0] - vp.X) / vp.Width
	ly := (position[1] - vp.Y) / vp.Height
	ndc := mgl32.Vec3{2*lx - 1, 1 - 2*ly, 0}
	return mgl32.TransformCoordinate(ndc, c.InverseViewProjection())
}

// ConvertWorldToNormalized is the inverse of ConvertNormalizedToWorld.
func (c *Camera) ConvertWorldToNormalized(position mgl32.Vec3) mgl32.Vec2 {
	clip := mgl32.TransformCoordinate(position, c.ViewProjection())
	lx := (clip[0] + 1) / 2
	ly := (1 - clip[1]) / 2
	return mgl32.Vec2{c.viewport.X + lx*c.viewport.Width, c.viewport.Y + ly*c.viewport.Height}
}

func (c *Camera) setActor(actor *Actor) {
	c.actor = actor
	c.viewVersion = 0
	c.markViewProjectionDirty()
}

func (c *Camera) setLayer(layer *Layer) {
	if c.layer == layer {
		return
	}
	if c.layer != nil {
		c.layer.removeCamera(c)
	}
	c.layer = layer
	if layer != nil && c.actor != nil {
		layer.addCamera(c)
		c.RecalculateProjection()
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
