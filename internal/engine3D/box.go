package engine3D

// Box is an axis-aligned cube before rotation.
type Box struct {
	Center Vec3
	Size   float32
}

// boxEdgeIndex lists the 12 edges as corner index pairs. Corner i has bit 0
// for +X, bit 1 for +Y and bit 2 for +Z.
var boxEdgeIndex = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along X
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along Y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along Z
}

// Corners returns the eight corners rotated about the box centre by rotX
// then rotY radians.
func (b Box) Corners(rotX, rotY float32) [8]Vec3 {
	h := b.Size / 2
	var out [8]Vec3
	for i := range out {
		local := Vec3{X: -h, Y: -h, Z: -h}
		if i&1 != 0 {
			local.X = h
		}
		if i&2 != 0 {
			local.Y = h
		}
		if i&4 != 0 {
			local.Z = h
		}
		out[i] = local.RotateX(rotX).RotateY(rotY).Add(b.Center)
	}
	return out
}

// Edges returns the 12 edges of the rotated box as segment endpoints.
func (b Box) Edges(rotX, rotY float32) [12][2]Vec3 {
	c := b.Corners(rotX, rotY)
	var out [12][2]Vec3
	for i, e := range boxEdgeIndex {
		out[i] = [2]Vec3{c[e[0]], c[e[1]]}
	}
	return out
}
