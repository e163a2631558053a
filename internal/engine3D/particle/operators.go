package particle

// applyPointer moves a particle that lies within PointerRadius of the
// pointer target, in the XY plane, by PointerStrength times its offset from
// the target. With a positive strength this pushes the particle away, and
// the push grows with distance up to the radius.
func (f *Field) applyPointer(p []float32, targetX, targetY float32) {
	dx := p[0] - targetX
	dy := p[1] - targetY

	radius := f.opts.PointerRadius
	if dx*dx+dy*dy < radius*radius {
		p[0] += dx * f.opts.PointerStrength
		p[1] += dy * f.opts.PointerStrength
	}
}

// wrapParticle sends a coordinate that left the volume to the opposite wall.
func (f *Field) wrapParticle(p []float32) {
	h := f.opts.HalfExtent
	for axis := range p {
		if p[axis] > h {
			p[axis] = -h
			f.wraps++
		}
		if p[axis] < -h {
			p[axis] = h
			f.wraps++
		}
	}
}
