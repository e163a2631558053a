package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FrameInfo is what the overlay reports about the field.
type FrameInfo struct {
	Seq        uint64
	Count      int
	Wraps      uint64
	PointerX   float32
	PointerY   float32
	RotationY  float32
	HalfExtent float32
}

// DebugOverlay is the F8 panel: a sidebar with live field stats and a
// toggle for the field bounds box.
type DebugOverlay struct {
	ShowBoundingBoxes bool

	fontHeight   int
	tabHeight    int
	sidebarWidth int
	info         FrameInfo
}

func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{
		ShowBoundingBoxes: true,
		fontHeight:        10,
		tabHeight:         24,
		sidebarWidth:      220,
	}
}

func (d *DebugOverlay) SetInfo(info FrameInfo) { d.info = info }

// Update handles clicks on the sidebar controls.
func (d *DebugOverlay) Update() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	if rl.CheckCollisionPointRec(rl.GetMousePosition(), d.getBoundingBoxToggleRect()) {
		d.ShowBoundingBoxes = !d.ShowBoundingBoxes
	}
}

func (d *DebugOverlay) DrawText(text string, x, y, size int32, col rl.Color) {
	rl.DrawText(text, x, y, size, col)
}

// Draw paints the 2D panel. Call it outside BeginMode3D.
func (d *DebugOverlay) Draw() {
	h := int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, int32(d.sidebarWidth), h, rl.NewColor(0, 0, 0, 180))
	d.DrawText("Particle Field (F8)", 10, 6, int32(d.fontHeight)+2, rl.White)

	d.drawBoundingBoxToggle()

	lines := []string{
		fmt.Sprintf("FPS: %d", rl.GetFPS()),
		fmt.Sprintf("Frame: %d", d.info.Seq),
		fmt.Sprintf("Particles: %d", d.info.Count),
		fmt.Sprintf("Wraps: %d", d.info.Wraps),
		fmt.Sprintf("Pointer: %.2f, %.2f", d.info.PointerX, d.info.PointerY),
		fmt.Sprintf("Rotation: %.3f rad", d.info.RotationY),
	}
	y := int32(d.tabHeight + 40)
	for _, line := range lines {
		d.DrawText(line, 10, y, int32(d.fontHeight), rl.LightGray)
		y += int32(d.fontHeight) + 6
	}
}
