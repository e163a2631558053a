package engine3D

import "math"

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3
	FovY     float32 // vertical field of view, degrees
	Near     float32
}

// DefaultCamera matches the page background: 15 units back, 75° fov.
func DefaultCamera() Camera {
	return Camera{
		Position: Vec3{0, 0, 15},
		Target:   Vec3{0, 0, 0},
		Up:       Vec3{0, 1, 0},
		FovY:     75,
		Near:     0.1,
	}
}

// Viewport is a drawing surface measured in cells. PixelAspect is the
// height of one cell divided by its width: 1 for pixels, about 2 for
// terminal character cells.
type Viewport struct {
	Width       int
	Height      int
	PixelAspect float32
}

// Projector maps world points to viewport cells for a fixed camera and
// viewport. Build one per frame; Project does not allocate.
type Projector struct {
	eye                   Vec3
	right, up, forward    Vec3
	focal                 float32
	aspect                float32
	near                  float32
	halfWidth, halfHeight float32
}

func NewProjector(cam Camera, vp Viewport) Projector {
	forward := cam.Target.Sub(cam.Position).Normalize()
	up := cam.Up
	if up == (Vec3{}) {
		up = Vec3{0, 1, 0}
	}
	right := forward.Cross(up).Normalize()
	trueUp := right.Cross(forward)

	pixelAspect := vp.PixelAspect
	if pixelAspect <= 0 {
		pixelAspect = 1
	}
	aspect := float32(1)
	if vp.Height > 0 {
		aspect = float32(vp.Width) / (float32(vp.Height) * pixelAspect)
	}

	near := cam.Near
	if near <= 0 {
		near = 0.1
	}

	fov := float64(cam.FovY) * math.Pi / 180
	return Projector{
		eye:        cam.Position,
		right:      right,
		up:         trueUp,
		forward:    forward,
		focal:      float32(1 / math.Tan(fov/2)),
		aspect:     aspect,
		near:       near,
		halfWidth:  float32(vp.Width) / 2,
		halfHeight: float32(vp.Height) / 2,
	}
}

// Project returns the viewport position of p and its distance along the
// view direction. ok is false for points behind the near plane or outside
// the viewport.
func (pr Projector) Project(p Vec3) (x, y, depth float32, ok bool) {
	rel := p.Sub(pr.eye)
	depth = rel.Dot(pr.forward)
	if depth < pr.near {
		return 0, 0, depth, false
	}

	ndcX := rel.Dot(pr.right) * pr.focal / (depth * pr.aspect)
	ndcY := rel.Dot(pr.up) * pr.focal / depth
	if ndcX < -1 || ndcX > 1 || ndcY < -1 || ndcY > 1 {
		return 0, 0, depth, false
	}

	x = (ndcX + 1) * pr.halfWidth
	y = (1 - ndcY) * pr.halfHeight
	return x, y, depth, true
}
