package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"portfolio-backdrop/internal/anim"
	"portfolio-backdrop/internal/engine3D"
	"portfolio-backdrop/internal/engine3D/particle"
	"portfolio-backdrop/internal/utils"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Pointer sources.
const (
	PointerWindow  = "window"  // events delivered to our own window or terminal
	PointerDesktop = "desktop" // X11 root window query, for wallpaper mode
	PointerNone    = "none"    // pointer parked at the centre
)

// Config holds all backdrop configuration.
type Config struct {
	Field      FieldConfig      `yaml:"field" json:"field"`
	Pointer    PointerConfig    `yaml:"pointer" json:"pointer"`
	Camera     CameraConfig     `yaml:"camera" json:"camera"`
	Appearance AppearanceConfig `yaml:"appearance" json:"appearance"`
	Cube       CubeConfig       `yaml:"cube" json:"cube"`
	Splash     SplashConfig     `yaml:"splash" json:"splash"`
	Cursor     CursorConfig     `yaml:"cursor" json:"cursor"`
	Window     WindowConfig     `yaml:"window" json:"window"`
	Inspector  InspectorConfig  `yaml:"inspector" json:"inspector"`
	Recorder   RecorderConfig   `yaml:"recorder" json:"recorder"`
	Logging    LoggingConfig    `yaml:"logging" json:"logging"`
}

// FieldConfig sizes the particle field.
type FieldConfig struct {
	Count       int     `yaml:"count" json:"count"`
	HalfExtent  float32 `yaml:"half_extent" json:"half_extent"`
	MaxVelocity float32 `yaml:"max_velocity" json:"max_velocity"`
}

// PointerConfig controls how the pointer disturbs the field.
type PointerConfig struct {
	Source   string  `yaml:"source" json:"source"`
	Scale    float32 `yaml:"scale" json:"scale"`
	Radius   float32 `yaml:"radius" json:"radius"`
	Strength float32 `yaml:"strength" json:"strength"` // positive pushes away, negative attracts
	PollHz   int     `yaml:"poll_hz" json:"poll_hz"`   // desktop source only
}

type CameraConfig struct {
	Position [3]float32 `yaml:"position" json:"position"`
	FovY     float32    `yaml:"fov" json:"fov"`
}

type AppearanceConfig struct {
	Background   string  `yaml:"background" json:"background"`
	PointColor   string  `yaml:"point_color" json:"point_color"`
	PointOpacity float64 `yaml:"point_opacity" json:"point_opacity"`
	RotationRate float32 `yaml:"rotation_rate" json:"rotation_rate"` // rad/s
}

// CubeConfig is the decorative wireframe cube floating behind the field.
type CubeConfig struct {
	Enabled  bool       `yaml:"enabled" json:"enabled"`
	Size     float32    `yaml:"size" json:"size"`
	Position [3]float32 `yaml:"position" json:"position"`
	Color    string     `yaml:"color" json:"color"`
	Opacity  float64    `yaml:"opacity" json:"opacity"`
	SpinX    float32    `yaml:"spin_x" json:"spin_x"`
	SpinY    float32    `yaml:"spin_y" json:"spin_y"`
}

type SplashConfig struct {
	Enabled   bool    `yaml:"enabled" json:"enabled"`
	Label     string  `yaml:"label" json:"label"`
	Fill      float64 `yaml:"fill_seconds" json:"fill_seconds"`
	FadeDelay float64 `yaml:"fade_delay_seconds" json:"fade_delay_seconds"`
	Fade      float64 `yaml:"fade_seconds" json:"fade_seconds"`
	HideAfter float64 `yaml:"hide_after_seconds" json:"hide_after_seconds"`
}

type CursorConfig struct {
	Enabled bool    `yaml:"enabled" json:"enabled"`
	Ring    float64 `yaml:"ring_seconds" json:"ring_seconds"`
	Dot     float64 `yaml:"dot_seconds" json:"dot_seconds"`
	Fade    float64 `yaml:"fade_seconds" json:"fade_seconds"`
}

type WindowConfig struct {
	Title  string `yaml:"title" json:"title"`
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
	FPS    int    `yaml:"fps" json:"fps"`
}

// InspectorConfig enables the HTTP inspector when Addr is set.
type InspectorConfig struct {
	Addr          string `yaml:"addr" json:"addr"`
	SnapshotEvery int    `yaml:"snapshot_every" json:"snapshot_every"` // frames
}

// RecorderConfig enables frame recording when Path is set.
type RecorderConfig struct {
	Path  string `yaml:"path" json:"path"`
	Every int    `yaml:"every" json:"every"` // record one frame in Every
}

type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// DefaultConfig reproduces the page background as published.
func DefaultConfig() *Config {
	return &Config{
		Field: FieldConfig{
			Count:       particle.DefaultCount,
			HalfExtent:  particle.DefaultHalfExtent,
			MaxVelocity: particle.DefaultMaxVelocity,
		},
		Pointer: PointerConfig{
			Source:   PointerWindow,
			Scale:    particle.DefaultPointerScale,
			Radius:   particle.DefaultPointerRadius,
			Strength: particle.DefaultPointerStrength,
			PollHz:   60,
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 0, 15},
			FovY:     75,
		},
		Appearance: AppearanceConfig{
			Background:   "#050505",
			PointColor:   "#00F0FF",
			PointOpacity: 0.6,
			RotationRate: particle.DefaultRotationRate,
		},
		Cube: CubeConfig{
			Enabled:  true,
			Size:     3,
			Position: [3]float32{0, 0, -10},
			Color:    "#00F0FF",
			Opacity:  0.1,
			SpinX:    0.1,
			SpinY:    0.15,
		},
		Splash: SplashConfig{
			Enabled:   true,
			Label:     "LOADING",
			Fill:      1.8,
			FadeDelay: 1.8,
			Fade:      0.5,
			HideAfter: 2.0,
		},
		Cursor: CursorConfig{
			Enabled: true,
			Ring:    0.08,
			Dot:     0.05,
			Fade:    0.3,
		},
		Window: WindowConfig{
			Title:  "portfolio-backdrop",
			Width:  1280,
			Height: 720,
			FPS:    60,
		},
		Inspector: InspectorConfig{
			SnapshotEvery: 30,
		},
		Recorder: RecorderConfig{
			Every: 1,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := utils.EnsureParentDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the values the simulation and renderers rely on.
func (c *Config) Validate() error {
	if c.Field.Count < 0 {
		return fmt.Errorf("%w: field.count must not be negative", ErrInvalid)
	}
	if c.Field.HalfExtent <= 0 {
		return fmt.Errorf("%w: field.half_extent must be positive", ErrInvalid)
	}
	if c.Field.MaxVelocity < 0 {
		return fmt.Errorf("%w: field.max_velocity must not be negative", ErrInvalid)
	}
	if c.Pointer.Radius < 0 {
		return fmt.Errorf("%w: pointer.radius must not be negative", ErrInvalid)
	}

	switch c.Pointer.Source {
	case PointerWindow, PointerDesktop, PointerNone:
	default:
		return fmt.Errorf("%w: pointer.source %q (want window, desktop or none)", ErrInvalid, c.Pointer.Source)
	}

	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		return fmt.Errorf("%w: camera.fov must be in (0, 180)", ErrInvalid)
	}
	if c.Window.FPS <= 0 {
		return fmt.Errorf("%w: window.fps must be positive", ErrInvalid)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive", ErrInvalid)
	}

	for name, color := range map[string]string{
		"appearance.background":  c.Appearance.Background,
		"appearance.point_color": c.Appearance.PointColor,
		"cube.color":             c.Cube.Color,
	} {
		if _, err := engine3D.ParseHexColor(color); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, name, err)
		}
	}

	if _, err := utils.ParseLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalid, err)
	}

	return nil
}

// ParticleOptions converts the field and pointer sections.
func (c *Config) ParticleOptions() particle.Options {
	return particle.Options{
		Count:           c.Field.Count,
		HalfExtent:      c.Field.HalfExtent,
		MaxVelocity:     c.Field.MaxVelocity,
		PointerScale:    c.Pointer.Scale,
		PointerRadius:   c.Pointer.Radius,
		PointerStrength: c.Pointer.Strength,
		RotationRate:    c.Appearance.RotationRate,
	}
}

func (c *Config) CameraModel() engine3D.Camera {
	cam := engine3D.DefaultCamera()
	cam.Position = engine3D.Vec3{X: c.Camera.Position[0], Y: c.Camera.Position[1], Z: c.Camera.Position[2]}
	cam.FovY = c.Camera.FovY
	return cam
}

func (c *Config) SplashTimings() anim.SplashTimings {
	t := anim.DefaultSplashTimings()
	t.Fill = c.Splash.Fill
	t.FadeDelay = c.Splash.FadeDelay
	t.Fade = c.Splash.Fade
	t.HideAfter = c.Splash.HideAfter
	return t
}

func (c *Config) CursorTimings() anim.CursorTimings {
	return anim.CursorTimings{Ring: c.Cursor.Ring, Dot: c.Cursor.Dot, Fade: c.Cursor.Fade}
}

// PointerPollInterval is the desktop pointer polling period.
func (c *Config) PointerPollInterval() time.Duration {
	hz := c.Pointer.PollHz
	if hz <= 0 {
		hz = 60
	}
	return time.Second / time.Duration(hz)
}
