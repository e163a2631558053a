// Package terminal draws the particle field into a character grid with
// tcell. It is the renderer for SSH sessions and machines without a GPU.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"portfolio-backdrop/internal/config"
	"portfolio-backdrop/internal/engine3D"
	"portfolio-backdrop/internal/engine3D/particle"
	"portfolio-backdrop/internal/utils"
)

// ErrQuit is returned by Run when the user asks to leave.
var ErrQuit = errors.New("quit requested")

// cellAspect is the height of a character cell over its width.
const cellAspect = 2

// depthGlyphs go from nearest to farthest.
var depthGlyphs = []rune{'@', '*', '+', '.'}

type Renderer struct {
	screen  tcell.Screen
	pointer *particle.Pointer

	mu         sync.Mutex
	camera     engine3D.Camera
	projector  engine3D.Projector
	width      int
	height     int
	pointStyle tcell.Style
	cubeStyle  tcell.Style
	background tcell.Style
	cube       engine3D.Box
	cubeOn     bool
	spinX      float32
	spinY      float32
	halfExtent float32
	nearDepth  float32
	farDepth   float32
	showStats  bool
	drawn      uint64
}

// New wraps an initialised screen. Mouse events from the screen are
// written to pointer. The depth bands are sized for the field cfg
// describes and stay that way across Apply.
func New(screen tcell.Screen, cfg *config.Config, pointer *particle.Pointer) *Renderer {
	r := &Renderer{
		screen:     screen,
		pointer:    pointer,
		halfExtent: cfg.Field.HalfExtent,
		showStats:  utils.ShowDebugUI,
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	r.Apply(cfg)
	return r
}

// Apply takes the appearance parts of cfg.
func (r *Renderer) Apply(cfg *config.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.camera = cfg.CameraModel()
	r.background = tcell.StyleDefault.Background(hexColor(cfg.Appearance.Background))
	r.pointStyle = r.background.Foreground(hexColor(cfg.Appearance.PointColor))
	r.cubeStyle = r.background.Foreground(hexColor(cfg.Cube.Color)).Dim(true)
	r.cube = engine3D.Box{
		Center: engine3D.Vec3{X: cfg.Cube.Position[0], Y: cfg.Cube.Position[1], Z: cfg.Cube.Position[2]},
		Size:   cfg.Cube.Size,
	}
	r.cubeOn = cfg.Cube.Enabled
	r.spinX = cfg.Cube.SpinX
	r.spinY = cfg.Cube.SpinY

	// glyph buckets span the field's depth range as seen from the camera
	dist := r.camera.Position.Sub(r.camera.Target).Length()
	r.nearDepth = dist - r.halfExtent
	r.farDepth = dist + r.halfExtent

	r.resizeLocked()
}

func (r *Renderer) resizeLocked() {
	r.width, r.height = r.screen.Size()
	r.projector = engine3D.NewProjector(r.camera, engine3D.Viewport{
		Width:       r.width,
		Height:      r.height,
		PixelAspect: cellAspect,
	})
}

// RenderFrame draws f and shows the screen.
func (r *Renderer) RenderFrame(f particle.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen.Fill(' ', r.background)

	if r.cubeOn {
		t := float32(f.Elapsed.Seconds())
		for _, e := range r.cube.Edges(t*r.spinX, t*r.spinY) {
			r.drawSegment(e[0], e[1])
		}
	}

	n := f.Count * 3
	if n > len(f.Positions) {
		n = len(f.Positions)
	}
	p := f.Positions
	for i := 0; i+2 < n; i += 3 {
		world := engine3D.Vec3{X: p[i], Y: p[i+1], Z: p[i+2]}.RotateY(f.RotationY)
		x, y, depth, ok := r.projector.Project(world)
		if !ok {
			continue
		}
		cx, cy := int(x), int(y)
		if cx < 0 || cy < 0 || cx >= r.width || cy >= r.height {
			continue
		}
		r.screen.SetContent(cx, cy, r.glyph(depth), nil, r.pointStyle)
	}

	if r.showStats {
		px, py := r.pointer.Load()
		r.drawText(0, 0, fmt.Sprintf(" frame %d  particles %d  pointer %.2f,%.2f ", f.Seq, f.Count, px, py))
	}

	r.screen.Show()
	r.drawn++
}

func (r *Renderer) glyph(depth float32) rune {
	span := r.farDepth - r.nearDepth
	if span <= 0 {
		return depthGlyphs[0]
	}
	i := int((depth - r.nearDepth) / span * float32(len(depthGlyphs)))
	if i < 0 {
		i = 0
	}
	if i >= len(depthGlyphs) {
		i = len(depthGlyphs) - 1
	}
	return depthGlyphs[i]
}

func (r *Renderer) drawSegment(a, b engine3D.Vec3) {
	const steps = 24
	d := b.Sub(a)
	for s := 0; s <= steps; s++ {
		pt := a.Add(d.Scale(float32(s) / steps))
		x, y, _, ok := r.projector.Project(pt)
		if !ok {
			continue
		}
		cx, cy := int(x), int(y)
		if cx < 0 || cy < 0 || cx >= r.width || cy >= r.height {
			continue
		}
		r.screen.SetContent(cx, cy, '·', nil, r.cubeStyle)
	}
}

func (r *Renderer) drawText(x, y int, s string) {
	style := r.background.Reverse(true)
	for _, ch := range s {
		if x >= r.width {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// Frames is the number of frames drawn so far.
func (r *Renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drawn
}

// HandleEvent applies one terminal event and reports whether the user
// asked to quit.
func (r *Renderer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return true
		}
		if ev.Key() == tcell.KeyF8 {
			r.mu.Lock()
			r.showStats = !r.showStats
			r.mu.Unlock()
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		r.mu.Lock()
		w, h := r.width, r.height
		r.mu.Unlock()
		// sample the centre of the cell
		r.pointer.StorePixels(float64(x)+0.5, float64(y)+0.5, w, h)

	case *tcell.EventResize:
		r.mu.Lock()
		r.resizeLocked()
		r.mu.Unlock()
		r.screen.Sync()
	}
	return false
}

// Run pumps terminal events until ctx is done or the user quits, in which
// case it returns ErrQuit.
func (r *Renderer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 32)
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.screen.ChannelEvents(events, stop)
	}()
	defer func() {
		close(stop)
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if r.HandleEvent(ev) {
				return ErrQuit
			}
		}
	}
}

func hexColor(hex string) tcell.Color {
	c, err := engine3D.ParseHexColor(hex)
	if err != nil {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
