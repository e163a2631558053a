package anim

// CursorTimings are in seconds.
type CursorTimings struct {
	Ring float64
	Dot  float64
	Fade float64
}

func DefaultCursorTimings() CursorTimings {
	return CursorTimings{Ring: 0.08, Dot: 0.05, Fade: 0.3}
}

// Cursor is the custom pointer: a ring and a dot that chase the real
// pointer at slightly different speeds, fading out while the pointer is
// outside the window.
type Cursor struct {
	ringX, ringY *Tween
	dotX, dotY   *Tween
	opacity      *Tween
}

func NewCursor(t CursorTimings) *Cursor {
	return &Cursor{
		ringX:   NewTween(0, t.Ring, Power2Out),
		ringY:   NewTween(0, t.Ring, Power2Out),
		dotX:    NewTween(0, t.Dot, Power2Out),
		dotY:    NewTween(0, t.Dot, Power2Out),
		opacity: NewTween(0, t.Fade, Linear),
	}
}

// MoveTo sets the pointer position the cursor chases, in pixels. The first
// move after the cursor was hidden snaps instead of sliding in from the old
// position.
func (c *Cursor) MoveTo(x, y float64) {
	if c.opacity.Value() == 0 && c.opacity.Target() == 0 {
		c.ringX.Set(x)
		c.ringY.Set(y)
		c.dotX.Set(x)
		c.dotY.Set(y)
		return
	}
	c.ringX.Retarget(x)
	c.ringY.Retarget(y)
	c.dotX.Retarget(x)
	c.dotY.Retarget(y)
}

// SetInside fades the cursor in or out.
func (c *Cursor) SetInside(inside bool) {
	if inside {
		c.opacity.Retarget(1)
	} else {
		c.opacity.Retarget(0)
	}
}

func (c *Cursor) Update(dt float64) {
	c.ringX.Update(dt)
	c.ringY.Update(dt)
	c.dotX.Update(dt)
	c.dotY.Update(dt)
	c.opacity.Update(dt)
}

func (c *Cursor) Ring() (x, y float64) { return c.ringX.Value(), c.ringY.Value() }
func (c *Cursor) Dot() (x, y float64)  { return c.dotX.Value(), c.dotY.Value() }
func (c *Cursor) Opacity() float64     { return c.opacity.Value() }
