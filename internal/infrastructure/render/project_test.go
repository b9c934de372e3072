package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/scenecore/internal/domain/geom"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
)

func quad() scenegraph.DrawCommand {
	return scenegraph.DrawCommand{
		Vertices: []scenegraph.Vertex{
			{Position: mgl32.Vec3{-1, -1, 0}},
			{Position: mgl32.Vec3{1, -1, 0}},
			{Position: mgl32.Vec3{1, 1, 0}},
			{Position: mgl32.Vec3{-1, 1, 0}},
		},
		Indices:             []uint16{0, 1, 2, 0, 2, 3},
		ModelViewProjection: mgl32.Ident4(),
	}
}

func TestProject(t *testing.T) {
	viewport := geom.Rect{X: 100, Y: 0, Width: 200, Height: 100}
	got := Project(nil, quad(), viewport)

	require.Len(t, got, 4)
	assert.Equal(t, ScreenVertex{X: 100, Y: 100, Visible: true}, got[0], "clip (-1,-1) is the bottom-left pixel")
	assert.Equal(t, ScreenVertex{X: 300, Y: 0, Visible: true}, got[2], "clip (1,1) is the top-right pixel")
}

func TestProject_ThroughOrthographicCamera(t *testing.T) {
	cmd := quad()
	cmd.ModelViewProjection = mgl32.Ortho(-400, 400, -300, 300, -1, 1).Mul4(mgl32.Translate3D(100, 0, 0))
	got := Project(nil, cmd, geom.Rect{Width: 800, Height: 600})

	assert.InDelta(t, 499, got[0].X, 1e-3)
	assert.InDelta(t, 301, got[0].Y, 1e-3)
}

func TestProject_BehindEye(t *testing.T) {
	cmd := quad()
	cmd.ModelViewProjection = mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 10).Mul4(mgl32.Translate3D(0, 0, 5))
	got := Project(nil, cmd, geom.Rect{Width: 100, Height: 100})

	for _, v := range got {
		assert.False(t, v.Visible)
	}
}

func TestTrianglesAndEdges(t *testing.T) {
	cmd := quad()

	var tris [][3]int
	Triangles(cmd, func(a, b, c int) { tris = append(tris, [3]int{a, b, c}) })
	assert.Equal(t, [][3]int{{0, 1, 2}, {0, 2, 3}}, tris)

	var edges [][2]int
	Edges(cmd, func(a, b int) { edges = append(edges, [2]int{a, b}) })
	assert.Len(t, edges, 6)

	cmd.Primitive = scenegraph.PrimitiveLines
	cmd.Indices = []uint16{0, 1, 1, 2, 2, 9}
	edges = nil
	Edges(cmd, func(a, b int) { edges = append(edges, [2]int{a, b}) })
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, edges, "out of range indices are skipped")

	tris = nil
	Triangles(cmd, func(a, b, c int) { tris = append(tris, [3]int{a, b, c}) })
	assert.Empty(t, tris)
}

func TestFilled(t *testing.T) {
	cmd := quad()
	assert.True(t, Filled(cmd, scenegraph.FillSolid))
	assert.False(t, Filled(cmd, scenegraph.FillWireframe))

	cmd.Wireframe = true
	assert.False(t, Filled(cmd, scenegraph.FillSolid))

	cmd.Wireframe = false
	cmd.Primitive = scenegraph.PrimitiveLines
	assert.False(t, Filled(cmd, scenegraph.FillSolid))
}

func TestRGBA8(t *testing.T) {
	r, g, b, a := RGBA8(mgl32.Vec4{1, 0.5, -1, 2})
	assert.Equal(t, []uint8{255, 128, 0, 255}, []uint8{r, g, b, a})
}
