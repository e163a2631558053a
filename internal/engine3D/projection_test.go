package engine3D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjector_Centre(t *testing.T) {
	pr := NewProjector(DefaultCamera(), Viewport{Width: 80, Height: 24, PixelAspect: 2})

	x, y, depth, ok := pr.Project(Vec3{})
	assert.True(t, ok)
	assert.InDelta(t, 40, x, 1e-4)
	assert.InDelta(t, 12, y, 1e-4)
	assert.InDelta(t, 15, depth, 1e-4)
}

func TestProjector_Orientation(t *testing.T) {
	pr := NewProjector(DefaultCamera(), Viewport{Width: 100, Height: 100, PixelAspect: 1})

	rx, _, _, ok := pr.Project(Vec3{X: 2})
	assert.True(t, ok)
	assert.Greater(t, rx, float32(50), "+x is to the right")

	_, uy, _, ok := pr.Project(Vec3{Y: 2})
	assert.True(t, ok)
	assert.Less(t, uy, float32(50), "+y is up on screen")
}

func TestProjector_EdgeOfFrustum(t *testing.T) {
	pr := NewProjector(DefaultCamera(), Viewport{Width: 100, Height: 100, PixelAspect: 1})

	// top edge of a 75° frustum at 15 units
	edge := float32(15 * math.Tan(75.0/2*math.Pi/180))
	_, y, _, ok := pr.Project(Vec3{Y: edge * 0.999})
	assert.True(t, ok)
	assert.InDelta(t, 0, y, 0.1)

	_, _, _, ok = pr.Project(Vec3{Y: edge * 1.01})
	assert.False(t, ok)
}

func TestProjector_BehindCamera(t *testing.T) {
	pr := NewProjector(DefaultCamera(), Viewport{Width: 100, Height: 100})
	_, _, depth, ok := pr.Project(Vec3{Z: 20})
	assert.False(t, ok)
	assert.Less(t, depth, float32(0))
}

func TestVec3_Rotate(t *testing.T) {
	v := Vec3{X: 1}.RotateY(math.Pi / 2)
	assert.InDelta(t, 0, v.X, 1e-6)
	assert.InDelta(t, -1, v.Z, 1e-6)

	w := Vec3{Y: 1}.RotateX(math.Pi / 2)
	assert.InDelta(t, 0, w.Y, 1e-6)
	assert.InDelta(t, 1, w.Z, 1e-6)

	assert.InDelta(t, 1, Vec3{X: 3, Y: 4}.Normalize().Length(), 1e-6)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.Equal(t, Vec3{Z: 1}, Vec3{X: 1}.Cross(Vec3{Y: 1}))
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#00F0FF")
	assert.NoError(t, err)
	assert.Equal(t, Color{R: 0, G: 0xF0, B: 0xFF, A: 255}, c)
	assert.Equal(t, "#00F0FF", c.Hex())

	c, err = ParseHexColor("05050580")
	assert.NoError(t, err)
	assert.Equal(t, Color{R: 5, G: 5, B: 5, A: 0x80}, c)

	_, err = ParseHexColor("#abc")
	assert.Error(t, err)
	_, err = ParseHexColor("#zzzzzz")
	assert.Error(t, err)

	assert.Equal(t, uint8(153), Color{}.WithAlpha(0.6).A)
	assert.Equal(t, uint8(255), Color{}.WithAlpha(3).A)
	assert.Equal(t, uint8(0), Color{}.WithAlpha(-1).A)
}
