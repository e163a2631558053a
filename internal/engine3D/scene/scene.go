// Package scene draws the particle field, the floating cube and the page
// overlays with raylib. Every method must be called from the thread that
// owns the raylib window.
package scene

import (
	"math"

	"portfolio-backdrop/internal/anim"
	"portfolio-backdrop/internal/config"
	"portfolio-backdrop/internal/debug"
	"portfolio-backdrop/internal/engine3D"
	"portfolio-backdrop/internal/engine3D/particle"
	"portfolio-backdrop/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Scene struct {
	camera     rl.Camera3D
	background rl.Color
	pointColor rl.Color
	cube       engine3D.Box
	cubeColor  rl.Color
	cubeOn     bool
	spinX      float32
	spinY      float32
	halfExtent float32
	pointer    particle.Options

	frame   particle.Frame
	elapsed float64

	splash      *anim.Splash
	splashOn    bool
	splashLabel string
	cursor      *anim.Cursor
	cursorOn    bool

	debugOverlay *debug.DebugOverlay
}

// NewScene draws a field built with opts. The debug bounds and pointer gate
// follow opts for the scene's lifetime.
func NewScene(cfg *config.Config, opts particle.Options) *Scene {
	s := &Scene{
		halfExtent:   opts.HalfExtent,
		pointer:      opts,
		splash:       anim.NewSplash(cfg.SplashTimings()),
		cursor:       anim.NewCursor(cfg.CursorTimings()),
		debugOverlay: debug.NewDebugOverlay(),
	}
	s.Apply(cfg)
	return s
}

// Apply takes the appearance-related parts of cfg. Field and pointer
// changes need a new field and are not handled here.
func (s *Scene) Apply(cfg *config.Config) {
	cam := cfg.CameraModel()
	s.camera = rl.Camera3D{
		Position:   toVector3(cam.Position),
		Target:     toVector3(cam.Target),
		Up:         toVector3(cam.Up),
		Fovy:       cam.FovY,
		Projection: rl.CameraPerspective,
	}

	s.background = mustColor(cfg.Appearance.Background, 1)
	s.pointColor = mustColor(cfg.Appearance.PointColor, cfg.Appearance.PointOpacity)
	s.cubeColor = mustColor(cfg.Cube.Color, cfg.Cube.Opacity)
	s.cube = engine3D.Box{
		Center: engine3D.Vec3{X: cfg.Cube.Position[0], Y: cfg.Cube.Position[1], Z: cfg.Cube.Position[2]},
		Size:   cfg.Cube.Size,
	}
	s.cubeOn = cfg.Cube.Enabled
	s.spinX = cfg.Cube.SpinX
	s.spinY = cfg.Cube.SpinY

	s.splash.Timings = cfg.SplashTimings()
	s.splashOn = cfg.Splash.Enabled
	s.splashLabel = cfg.Splash.Label
	s.cursor.Timings = cfg.CursorTimings()
	s.cursorOn = cfg.Cursor.Enabled
}

// RenderFrame keeps the published frame for the next Draw. The positions
// slice is the simulator's buffer; it is only read during Draw on the
// same thread that advances the clock.
func (s *Scene) RenderFrame(f particle.Frame) {
	s.frame = f
}

// Update advances the overlays. mouseX/mouseY are window pixels.
func (s *Scene) Update(dt float64, mouseX, mouseY float64, inside bool) {
	s.elapsed += dt

	if rl.IsKeyPressed(rl.KeyF8) {
		utils.ShowDebugUI = !utils.ShowDebugUI
	}
	if utils.ShowDebugUI {
		s.debugOverlay.Update()
	}

	if s.cursorOn {
		s.cursor.SetInside(inside)
		if inside {
			s.cursor.MoveTo(mouseX, mouseY)
		}
		s.cursor.Update(dt)
	}
}

// Draw renders one frame. Call between rl.BeginDrawing and rl.EndDrawing.
func (s *Scene) Draw(pointerX, pointerY float32) {
	rl.ClearBackground(s.background)

	rl.BeginMode3D(s.camera)
	s.drawField(pointerX, pointerY)
	if s.cubeOn {
		s.drawCube()
	}
	rl.EndMode3D()

	if s.cursorOn {
		s.drawCursor()
	}
	if s.splashOn {
		s.drawSplash()
	}
	if utils.ShowDebugUI {
		s.debugOverlay.SetInfo(s.frameInfo(pointerX, pointerY))
		s.debugOverlay.Draw()
	}
}

func (s *Scene) frameInfo(pointerX, pointerY float32) debug.FrameInfo {
	return debug.FrameInfo{
		Seq:        s.frame.Seq,
		Count:      s.frame.Count,
		Wraps:      s.frame.Wraps,
		PointerX:   pointerX,
		PointerY:   pointerY,
		RotationY:  s.frame.RotationY,
		HalfExtent: s.halfExtent,
	}
}

func (s *Scene) drawField(pointerX, pointerY float32) {
	// The field rotates as a whole; particle coordinates stay in the
	// unrotated frame the simulator works in.
	rl.PushMatrix()
	rl.Rotatef(s.frame.RotationY*rl.Rad2deg, 0, 1, 0)

	p := s.frame.Positions
	n := s.frame.Count * 3
	if n > len(p) {
		n = len(p)
	}
	for i := 0; i+2 < n; i += 3 {
		rl.DrawPoint3D(rl.NewVector3(p[i], p[i+1], p[i+2]), s.pointColor)
	}

	if utils.ShowDebugUI {
		target := rl.NewVector3(pointerX*s.pointer.PointerScale, pointerY*s.pointer.PointerScale, 0)
		s.debugOverlay.DrawFieldBounds(target, s.pointer.PointerRadius)
	}
	rl.PopMatrix()
}

func (s *Scene) drawCube() {
	t := float32(s.elapsed)
	for _, e := range s.cube.Edges(t*s.spinX, t*s.spinY) {
		rl.DrawLine3D(toVector3(e[0]), toVector3(e[1]), s.cubeColor)
	}
}

func (s *Scene) drawCursor() {
	alpha := s.cursor.Opacity()
	if alpha <= 0 {
		return
	}

	rx, ry := s.cursor.Ring()
	dx, dy := s.cursor.Dot()
	ring := fade(s.pointColor, alpha*0.5)
	dot := fade(s.pointColor, alpha)
	rl.DrawCircleLines(int32(rx), int32(ry), 16, ring)
	rl.DrawCircle(int32(dx), int32(dy), 3, dot)
}

func (s *Scene) drawSplash() {
	st := s.splash.At(s.elapsed)
	if !st.Visible {
		return
	}

	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, w, h, fade(s.background, st.Opacity))

	accent := fade(s.pointColor, st.Opacity)

	// spinning outline above the bar
	cx, cy := float32(w)/2, float32(h)/2-40
	size := float32(24)
	angle := float32(st.CubeAngle)
	var corners [4]rl.Vector2
	for i := range corners {
		a := angle + float32(i)*math.Pi/2 + math.Pi/4
		corners[i] = rl.NewVector2(cx+size*float32(math.Cos(float64(a))), cy+size*float32(math.Sin(float64(a))))
	}
	for i := range corners {
		rl.DrawLineV(corners[i], corners[(i+1)%4], accent)
	}

	barW := int32(200)
	barX := (w - barW) / 2
	barY := h / 2
	rl.DrawRectangleLines(barX, barY, barW, 4, fade(s.pointColor, st.Opacity*0.3))
	rl.DrawRectangle(barX, barY, int32(float64(barW)*st.Progress), 4, accent)

	if s.splashLabel != "" {
		fontSize := int32(10)
		tw := rl.MeasureText(s.splashLabel, fontSize)
		rl.DrawText(s.splashLabel, (w-tw)/2, barY+14, fontSize, fade(s.pointColor, st.Opacity*st.LabelAlpha))
	}
}

func toVector3(v engine3D.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}

func fade(c rl.Color, alpha float64) rl.Color {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(math.Round(float64(c.A) * alpha))
	return c
}

// mustColor converts a validated hex color; invalid input falls back to
// white so a bad live reload cannot blank the screen.
func mustColor(hex string, opacity float64) rl.Color {
	c, err := engine3D.ParseHexColor(hex)
	if err != nil {
		utils.Warn("Scene: %v, using white", err)
		c = engine3D.Color{R: 255, G: 255, B: 255, A: 255}
	}
	c = c.WithAlpha(opacity)
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
