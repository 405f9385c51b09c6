package game

import (
	"math"
	"math/rand"

	"github.com/Garsondee/pong/internal/config"
)

// Ball is a circle moving at a constant speed in pixels per tick. Walls
// reflect it; paddles re-aim it by where it struck.
type Ball struct {
	X, Y   float64 // centre
	DX, DY float64
	// PrevX, PrevY is the centre before the last Move, used for swept tests.
	PrevX, PrevY float64
	Radius       float64

	// Speed is the velocity magnitude the ball is held at.
	Speed     float64
	BaseSpeed float64
	MaxSpeed  float64
	SpeedUp   float64

	MaxBounceAngle    float64 // radians from horizontal
	EdgeClamp         float64 // max |relative intersect|
	MinHorizontalFrac float64
	ServeMaxAngle     float64 // radians

	courtW, courtH float64
}

// NewBall places a ball at (x, y). The magnitude of (dx, dy) becomes the
// ball's constant speed.
func NewBall(x, y, dx, dy float64, courtW, courtH int, tune config.Ball) *Ball {
	speed := math.Hypot(dx, dy)
	maxSpeed := tune.MaxSpeed
	if maxSpeed < speed {
		maxSpeed = speed
	}
	return &Ball{
		X:                 x,
		Y:                 y,
		DX:                dx,
		DY:                dy,
		PrevX:             x,
		PrevY:             y,
		Radius:            tune.Radius,
		Speed:             speed,
		BaseSpeed:         speed,
		MaxSpeed:          maxSpeed,
		SpeedUp:           tune.SpeedUpPerHit,
		MaxBounceAngle:    tune.MaxBounceAngleDeg * math.Pi / 180,
		EdgeClamp:         tune.EdgeClamp,
		MinHorizontalFrac: tune.MinHorizontalFrac,
		ServeMaxAngle:     tune.ServeMaxAngleDeg * math.Pi / 180,
		courtW:            float64(courtW),
		courtH:            float64(courtH),
	}
}

// MinHorizontal is the smallest |DX| allowed after a paddle bounce.
func (b *Ball) MinHorizontal() float64 {
	return b.Speed * b.MinHorizontalFrac
}

// Move advances the ball one tick and reflects it off the top and bottom
// walls. It reports whether a wall was hit.
func (b *Ball) Move() bool {
	b.PrevX, b.PrevY = b.X, b.Y
	b.X += b.DX
	b.Y += b.DY

	hit := b.keepInside()
	b.normalize()
	return hit
}

// keepInside clamps the ball between the walls, pointing DY away from the
// wall it touched.
func (b *Ball) keepInside() bool {
	switch {
	case b.Y-b.Radius <= 0:
		b.Y = b.Radius
		b.DY = math.Abs(b.DY)
		return true
	case b.Y+b.Radius >= b.courtH:
		b.Y = b.courtH - b.Radius
		b.DY = -math.Abs(b.DY)
		return true
	}
	return false
}

// normalize rescales the velocity back to Speed.
func (b *Ball) normalize() {
	cur := math.Hypot(b.DX, b.DY)
	if cur == 0 {
		return
	}
	b.DX = b.DX / cur * b.Speed
	b.DY = b.DY / cur * b.Speed
}

// Deflect re-aims the ball off a paddle on the given side. hitY is the ball
// centre at contact; the further from the paddle centre, the steeper the
// outgoing angle, up to EdgeClamp*MaxBounceAngle.
func (b *Ball) Deflect(side Side, hitY float64, p *Paddle) {
	half := p.Height / 2
	rel := 0.0
	if half > 0 {
		rel = (hitY - p.CentreY()) / half
	}
	rel = clamp(rel, -b.EdgeClamp, b.EdgeClamp)
	angle := rel * b.MaxBounceAngle

	if b.SpeedUp > 0 {
		b.Speed = math.Min(b.Speed+b.SpeedUp, b.MaxSpeed)
	}

	dir := side.Away()
	b.DX = dir * b.Speed * math.Cos(angle)
	b.DY = b.Speed * math.Sin(angle)

	if minH := b.MinHorizontal(); math.Abs(b.DX) < minH {
		b.DX = dir * minH
		b.DY = math.Copysign(math.Sqrt(math.Max(0, b.Speed*b.Speed-b.DX*b.DX)), b.DY)
	}
}

// Reset serves from the centre of the court in the opposite horizontal
// direction to the last one, at the base speed. rng may be nil for a flat
// serve.
func (b *Ball) Reset(rng *rand.Rand) {
	b.X = math.Floor(b.courtW / 2)
	b.Y = math.Floor(b.courtH / 2)
	b.PrevX, b.PrevY = b.X, b.Y

	dir := 1.0
	if b.DX > 0 {
		dir = -1
	}
	b.Speed = b.BaseSpeed

	angle := 0.0
	if b.ServeMaxAngle > 0 && rng != nil {
		angle = (rng.Float64()*2 - 1) * b.ServeMaxAngle // #nosec G404 -- gameplay only
	}
	b.DX = dir * b.Speed * math.Cos(angle)
	b.DY = b.Speed * math.Sin(angle)
}

// Rect is the ball's bounding box.
func (b *Ball) Rect() rect {
	return rect{x: b.X - b.Radius, y: b.Y - b.Radius, w: b.Radius * 2, h: b.Radius * 2}
}

// Heading returns the side the ball is travelling toward.
func (b *Ball) Heading() Side {
	switch {
	case b.DX < 0:
		return SideLeft
	case b.DX > 0:
		return SideRight
	}
	return SideNone
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
