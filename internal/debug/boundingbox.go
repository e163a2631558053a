package debug

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

func (d *DebugOverlay) getBoundingBoxToggleRect() rl.Rectangle {
	return rl.NewRectangle(
		10,
		float32(d.tabHeight+5),
		float32(d.sidebarWidth-20),
		20,
	)
}

func (d *DebugOverlay) drawBoundingBoxToggle() {
	rect := d.getBoundingBoxToggleRect()

	boxSize := float32(d.fontHeight) * 1.2
	boxX := rect.X
	boxY := rect.Y + (rect.Height-boxSize)/2

	rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxSize), int32(boxSize), rl.White)
	if d.ShowBoundingBoxes {
		rl.DrawRectangle(int32(boxX+2), int32(boxY+2), int32(boxSize-4), int32(boxSize-4), rl.White)
	}

	d.DrawText("Show Field Bounds", int32(boxX+boxSize+10), int32(boxY), int32(d.fontHeight), rl.White)
}

// DrawFieldBounds draws the wrap volume and the pointer's disturbance
// sphere. Call it inside BeginMode3D, in the field's rotated frame.
func (d *DebugOverlay) DrawFieldBounds(pointer rl.Vector3, radius float32) {
	if !d.ShowBoundingBoxes {
		return
	}

	size := d.info.HalfExtent * 2
	rl.DrawCubeWires(rl.NewVector3(0, 0, 0), size, size, size, rl.NewColor(0, 255, 0, 255))

	// Draw pointer target as a small red marker
	rl.DrawSphereWires(pointer, radius, 8, 8, rl.NewColor(255, 255, 0, 150))
	rl.DrawCube(pointer, 0.2, 0.2, 0.2, rl.Red)
}
