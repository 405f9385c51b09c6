package game

// rect is an axis-aligned box in court pixels.
type rect struct {
	x, y, w, h float64
}

// overlaps is a strict AABB intersection; touching edges do not count.
func (r rect) overlaps(o rect) bool {
	return r.x < o.x+o.w && r.x+r.w > o.x && r.y < o.y+o.h && r.y+r.h > o.y
}

// contact describes where, within the last tick, the ball met a paddle.
type contact struct {
	t    float64 // fraction of the tick elapsed at contact, 0..1
	y    float64 // ball centre y at contact
	face float64 // ball centre x at contact
}

// contactLine is the x the ball centre sits on when touching p's inner face.
func contactLine(b *Ball, p *Paddle) float64 {
	if p.Side == SideLeft {
		return p.X + p.Width + b.Radius
	}
	return p.X - b.Radius
}

// sweptContact tests the ball's path over the last tick against p. The ball
// must be moving toward p. The primary test is a crossing of the contact line
// between PrevX and X with the interpolated y inside the paddle's span
// (expanded by the radius), so a fast ball cannot tunnel through. An AABB
// overlap catches a paddle that moved into a ball which never crossed the
// line; it only counts while the ball centre is not behind the paddle.
func sweptContact(b *Ball, p *Paddle) (contact, bool) {
	if b.Heading() != p.Side {
		return contact{}, false
	}
	face := contactLine(b, p)

	var t float64
	crossed := false
	switch p.Side {
	case SideLeft:
		if b.PrevX >= face && b.X < face {
			t = (b.PrevX - face) / (b.PrevX - b.X)
			crossed = true
		}
	case SideRight:
		if b.PrevX <= face && b.X > face {
			t = (face - b.PrevX) / (b.X - b.PrevX)
			crossed = true
		}
	}
	if crossed {
		y := b.PrevY + t*(b.Y-b.PrevY)
		if y >= p.Y-b.Radius && y <= p.Y+p.Height+b.Radius {
			return contact{t: t, y: y, face: face}, true
		}
	}

	if b.Rect().overlaps(p.Rect()) && !behind(b, p) {
		return contact{t: 1, y: b.Y, face: face}, true
	}
	return contact{}, false
}

// behind reports whether the ball centre is past the paddle's outer edge.
func behind(b *Ball, p *Paddle) bool {
	if p.Side == SideLeft {
		return b.X < p.X
	}
	return b.X > p.X+p.Width
}

// CheckCollision bounces the ball off whichever paddle its last move reached.
// After deflecting, the ball spends the rest of the tick travelling along the
// new velocity from the contact point, so every tick covers the same
// distance. It returns the side of the paddle hit, and whether that travel
// also reached a wall.
func (b *Ball) CheckCollision(left, right *Paddle) (side Side, hit, wall bool) {
	for _, p := range [...]*Paddle{left, right} {
		if p == nil {
			continue
		}
		c, ok := sweptContact(b, p)
		if !ok {
			continue
		}
		b.Deflect(p.Side, c.y, p)
		rest := 1 - c.t
		b.X = c.face + b.DX*rest
		b.Y = c.y + b.DY*rest
		return p.Side, true, b.keepInside()
	}
	return SideNone, false, false
}
