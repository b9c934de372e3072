package main

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/scenecore/internal/application/builder"
	"github.com/younwookim/scenecore/internal/domain/geom"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
	"github.com/younwookim/scenecore/internal/infrastructure/config"
)

type nopRenderer struct{}

func (nopRenderer) Size() (int, int)                        { return 800, 450 }
func (nopRenderer) SetRenderTarget(scenegraph.RenderTarget) {}
func (nopRenderer) SetViewport(geom.Rect)                   {}
func (nopRenderer) SetDepthState(bool, bool)                {}
func (nopRenderer) SetFillMode(scenegraph.FillMode)         {}
func (nopRenderer) Submit(scenegraph.DrawCommand)           {}

func TestEmbeddedConfigsBuild(t *testing.T) {
	loader, err := newLoader("")
	require.NoError(t, err)

	cfg, err := loadConfig(loader, "")
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Scene.Name)

	_, err = builder.Build(cfg.Scene, nopRenderer{}, nil)
	assert.NoError(t, err)
}

func TestLoadConfig_SceneFlag(t *testing.T) {
	loader := config.NewLoader("configs")

	cfg, err := loadConfig(loader, "demo")
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Viewer.Scene)

	_, err = loadConfig(loader, "missing")
	assert.ErrorContains(t, err, "failed to read scene missing")
}

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() { scenegraph.SetLogger(nil) })

	assert.NoError(t, setupLogger(""))
	assert.NoError(t, setupLogger("warn"))
	assert.Error(t, setupLogger("loud"))
}

func TestNewRecorder(t *testing.T) {
	cfg := &config.Config{
		Viewer: &config.ViewerConfig{},
		Scene:  &config.SceneConfig{Name: "demo"},
	}
	assert.Nil(t, newRecorder(cfg))

	cfg.Viewer.Trace = config.TraceConfig{Path: "out.json", MaxFrames: 3}
	rec := newRecorder(cfg)
	require.NotNil(t, rec)
	assert.Equal(t, "demo", rec.Data().Scene)
}

func TestCheckerPixels(t *testing.T) {
	a := color.RGBA{255, 0, 0, 255}
	b := color.RGBA{0, 0, 255, 255}
	img := checkerPixels(8, 2, a, b)

	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, a, img.RGBAAt(0, 0))
	assert.Equal(t, a, img.RGBAAt(1, 1))
	assert.Equal(t, b, img.RGBAAt(2, 0))
	assert.Equal(t, b, img.RGBAAt(0, 3))
	assert.Equal(t, a, img.RGBAAt(3, 3))
}
