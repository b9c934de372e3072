package config

import "github.com/go-gl/mathgl/mgl32"

// ViewerConfig is the root config for viewer.json
type ViewerConfig struct {
	Display DisplayConfig `json:"display"`
	Scene   string        `json:"scene"`
	Trace   TraceConfig   `json:"trace"`
	Debug   DebugConfig   `json:"debug"`
}

type DisplayConfig struct {
	ScreenWidth  int        `json:"screenWidth"`
	ScreenHeight int        `json:"screenHeight"`
	Scale        int        `json:"scale"`
	Framerate    int        `json:"framerate"`
	Title        string     `json:"title"`
	Background   mgl32.Vec3 `json:"background"`
}

// TraceConfig configures draw queue recording
type TraceConfig struct {
	Path      string `json:"path"`      // Empty disables recording
	MaxFrames int    `json:"maxFrames"` // 0 records until exit
}

type DebugConfig struct {
	Wireframe bool   `json:"wireframe"`
	ShowStats bool   `json:"showStats"`
	LogLevel  string `json:"logLevel"` // debug, info, warn, error
}

// SceneConfig is the root config for scenes/<name>.json
type SceneConfig struct {
	Name   string        `json:"name"`
	Layers []LayerConfig `json:"layers"`
}

type LayerConfig struct {
	Name    string         `json:"name"`
	Order   int32          `json:"order"`
	Cameras []CameraConfig `json:"cameras"`
	Actors  []ActorConfig  `json:"actors"`
	Tweens  []TweenConfig  `json:"tweens"`
}

// CameraConfig describes a camera component attached to the actor named
// by Actor.
type CameraConfig struct {
	Actor             string      `json:"actor"`
	Projection        string      `json:"projection"` // orthographic, perspective
	ScaleMode         string      `json:"scaleMode"`  // none, exact_fit, no_border, show_all
	TargetContentSize mgl32.Vec2  `json:"targetContentSize"`
	FieldOfView       float32     `json:"fieldOfView"` // Degrees, vertical
	Near              float32     `json:"near"`
	Far               float32     `json:"far"`
	Viewport          *RectConfig `json:"viewport"` // Normalized, defaults to the full target
	Wireframe         bool        `json:"wireframe"`
	DepthTest         bool        `json:"depthTest"`
	DepthWrite        bool        `json:"depthWrite"`
}

type RectConfig struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// ActorConfig describes one actor. Parent names another actor of the same
// layer; empty means a layer root.
type ActorConfig struct {
	ID           string            `json:"id"`
	Parent       string            `json:"parent"`
	Owned        bool              `json:"owned"`
	Position     mgl32.Vec3        `json:"position"`
	Rotation     mgl32.Vec3        `json:"rotation"` // Euler XYZ, degrees
	Scale        *mgl32.Vec3       `json:"scale"`
	FlipX        bool              `json:"flipX"`
	FlipY        bool              `json:"flipY"`
	Opacity      *float32          `json:"opacity"`
	Order        int32             `json:"order"`
	Pickable     *bool             `json:"pickable"`
	CullDisabled bool              `json:"cullDisabled"`
	Hidden       bool              `json:"hidden"`
	Components   []ComponentConfig `json:"components"`
}

// ComponentConfig describes a drawable component.
type ComponentConfig struct {
	Type    string       `json:"type"`  // sprite, rectangle, polygon
	Size    mgl32.Vec2   `json:"size"`  // sprite, rectangle
	Points  []mgl32.Vec2 `json:"points"` // polygon
	Color   *mgl32.Vec4  `json:"color"`
	Filled  *bool        `json:"filled"`
	Anchor  *mgl32.Vec2  `json:"anchor"`  // sprite
	Texture string       `json:"texture"` // sprite
	Hidden  bool         `json:"hidden"`
}

// TweenConfig animates one actor property.
type TweenConfig struct {
	Actor    string    `json:"actor"`
	Property string    `json:"property"` // position, scale, rotation, roll, opacity
	From     []float32 `json:"from"`
	To       []float32 `json:"to"`
	Duration float64   `json:"duration"` // Seconds
	Easing   string    `json:"easing"`   // linear, easeIn, easeOut, easeInOut
	Loop     bool      `json:"loop"`
	Yoyo     bool      `json:"yoyo"`
}
