package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/Garsondee/pong/internal/config"
)

// Side identifies a paddle and the goal behind it.
type Side int

const (
	SideNone  Side = -1
	SideLeft  Side = 0
	SideRight Side = 1
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Label is the short form used in logs.
func (s Side) Label() string {
	switch s {
	case SideLeft:
		return "L"
	case SideRight:
		return "R"
	default:
		return "--"
	}
}

// Opponent returns the other paddle's side.
func (s Side) Opponent() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	}
	return SideNone
}

// Away is the horizontal direction a ball leaves this side's paddle in.
func (s Side) Away() float64 {
	if s == SideRight {
		return -1
	}
	return 1
}

// Controller decides who moves a paddle.
type Controller int

const (
	ControllerHuman Controller = iota
	ControllerAI
)

func (c Controller) String() string {
	if c == ControllerAI {
		return "AI"
	}
	return "Player"
}

// ErrUnknownController is returned for a controller name that is neither
// human nor ai.
var ErrUnknownController = errors.New("unknown controller")

// ParseController maps a config name to a Controller.
func ParseController(name string) (Controller, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case config.ControllerHuman:
		return ControllerHuman, nil
	case config.ControllerAI:
		return ControllerAI, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownController, name)
}

// Paddle is a rectangle that only moves vertically.
type Paddle struct {
	X, Y          float64 // top-left
	Width, Height float64
	Speed         float64
	Side          Side
	Controller    Controller

	aiSpeed     float64
	offsetRange float64
	aimOffset   float64
}

// NewPaddle places a paddle Inset pixels from its court edge, vertically
// centred.
func NewPaddle(side Side, ctl Controller, courtW, courtH int, tune config.Paddle, ai config.AI) *Paddle {
	x := tune.Inset
	if side == SideRight {
		x = float64(courtW) - tune.Inset - tune.Width
	}
	p := &Paddle{
		X:           x,
		Width:       tune.Width,
		Height:      tune.Height,
		Speed:       tune.Speed,
		Side:        side,
		Controller:  ctl,
		aiSpeed:     ai.Speed,
		offsetRange: ai.OffsetRange,
	}
	p.Reset(float64(courtH))
	return p
}

// Reset centres the paddle vertically.
func (p *Paddle) Reset(courtH float64) {
	p.Y = math.Floor(courtH/2 - p.Height/2)
	p.aimOffset = 0
}

// Move shifts the paddle by dy, keeping it inside the court.
func (p *Paddle) Move(dy, courtH float64) {
	p.Y = clamp(p.Y+dy, 0, courtH-p.Height)
}

// Drive applies one tick of human input: -1 up, +1 down, 0 still.
func (p *Paddle) Drive(dir int, courtH float64) {
	switch {
	case dir < 0:
		p.Move(-p.Speed, courtH)
	case dir > 0:
		p.Move(p.Speed, courtH)
	}
}

// AutoTrack moves an AI paddle toward the ball while it is incoming, and back
// toward the centre otherwise. Movement is capped at the AI speed with a
// small dead zone so the paddle does not jitter around its target.
func (p *Paddle) AutoTrack(b *Ball, courtH float64) {
	target := courtH / 2
	if b.Heading() == p.Side {
		target = b.Y + p.aimOffset
	}
	diff := target - p.CentreY()
	if math.Abs(diff) <= p.aiSpeed/2 {
		return
	}
	p.Move(clamp(diff, -p.aiSpeed, p.aiSpeed), courtH)
}

// Retarget picks a new aim offset so the AI does not always meet the ball
// dead centre.
func (p *Paddle) Retarget(rng *rand.Rand) {
	if rng == nil || p.offsetRange <= 0 {
		p.aimOffset = 0
		return
	}
	p.aimOffset = (rng.Float64()*2 - 1) * p.offsetRange // #nosec G404 -- gameplay only
}

// AimOffset is the AI's current deliberate miss distance from the ball.
func (p *Paddle) AimOffset() float64 {
	return p.aimOffset
}

// CentreY is the vertical centre of the paddle.
func (p *Paddle) CentreY() float64 {
	return p.Y + p.Height/2
}

// Rect is the paddle's bounding box.
func (p *Paddle) Rect() rect {
	return rect{x: p.X, y: p.Y, w: p.Width, h: p.Height}
}
