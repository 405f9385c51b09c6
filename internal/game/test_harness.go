package game

import (
	"math/rand"

	"github.com/Garsondee/pong/internal/config"
)

// HeadlessSim is a windowless match harness used by tests and the headless
// report. It mirrors Game.Update but has no Ebiten dependency and supports
// deterministic seeding, scripted input and structured logging.
type HeadlessSim struct {
	Config   config.Config
	Match    *Match
	Log      *MatchLog
	Reporter *MatchReporter

	// Script, when set, supplies the input for each tick. AI paddles ignore
	// their half of it.
	Script func(tick int, m *Match) Input

	events []Event
	rng    *rand.Rand
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptConfig simOptionKind = iota // court, ball, controllers, seed, applied first
	simOptState                       // positions and scores, applied once the match exists
)

// SimOption is a builder function applied to a HeadlessSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*HeadlessSim)
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg config.Config) SimOption {
	return SimOption{simOptConfig, func(hs *HeadlessSim) {
		hs.Config = cfg
	}}
}

// WithCourt sets the playfield dimensions.
func WithCourt(w, h int) SimOption {
	return SimOption{simOptConfig, func(hs *HeadlessSim) {
		hs.Config.Court = config.Court{Width: w, Height: h}
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptConfig, func(hs *HeadlessSim) {
		hs.Config.Seed = seed
	}}
}

// WithWinningScore sets the first-to target.
func WithWinningScore(n int) SimOption {
	return SimOption{simOptConfig, func(hs *HeadlessSim) {
		hs.Config.WinningScore = n
	}}
}

// WithControllers sets who drives each paddle ("human" or "ai").
func WithControllers(left, right string) SimOption {
	return SimOption{simOptConfig, func(hs *HeadlessSim) {
		hs.Config.Left = left
		hs.Config.Right = right
	}}
}

// WithBallVelocity sets the initial velocity, and so the constant speed.
func WithBallVelocity(dx, dy float64) SimOption {
	return SimOption{simOptConfig, func(hs *HeadlessSim) {
		hs.Config.Ball.DX = dx
		hs.Config.Ball.DY = dy
	}}
}

// WithAI sets the AI paddle speed and aim offset range.
func WithAI(speed, offsetRange float64) SimOption {
	return SimOption{simOptConfig, func(hs *HeadlessSim) {
		hs.Config.AI = config.AI{Speed: speed, OffsetRange: offsetRange}
	}}
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptState, func(hs *HeadlessSim) {
		hs.Match.Log = NewMatchLog(v)
		hs.Log = hs.Match.Log
	}}
}

// WithBallAt places the ball centre, keeping its configured velocity.
func WithBallAt(x, y float64) SimOption {
	return SimOption{simOptState, func(hs *HeadlessSim) {
		b := hs.Match.Ball
		b.X, b.Y = x, y
		b.PrevX, b.PrevY = x, y
	}}
}

// WithPaddleY sets the top of one paddle.
func WithPaddleY(side Side, y float64) SimOption {
	return SimOption{simOptState, func(hs *HeadlessSim) {
		hs.Match.PaddleFor(side).Y = y
	}}
}

// WithScores starts the match mid-game.
func WithScores(left, right int) SimOption {
	return SimOption{simOptState, func(hs *HeadlessSim) {
		hs.Match.Scores = [2]int{left, right}
	}}
}

// WithScript drives human paddles and menu input from fn.
func WithScript(fn func(tick int, m *Match) Input) SimOption {
	return SimOption{simOptState, func(hs *HeadlessSim) {
		hs.Script = fn
	}}
}

// NewHeadlessSim constructs a sim from the given options in two passes:
//  1. Configuration (court, ball, controllers, seed)
//  2. Match state (positions, scores, logging, script)
//
// The default is an AI-vs-AI match on the default court.
func NewHeadlessSim(opts ...SimOption) (*HeadlessSim, error) {
	hs := &HeadlessSim{Config: config.Default()}
	hs.Config.Left = config.ControllerAI
	hs.Config.Right = config.ControllerAI
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.fn(hs)
		}
	}
	if err := hs.Config.Validate(); err != nil {
		return nil, err
	}
	hs.rng = rand.New(rand.NewSource(hs.Config.Seed)) // #nosec G404 -- test harness
	m, err := NewMatch(hs.Config, hs.rng)
	if err != nil {
		return nil, err
	}
	hs.Match = m
	hs.Log = m.Log
	hs.Reporter = m.Reporter
	for _, o := range opts {
		if o.kind == simOptState {
			o.fn(hs)
		}
	}
	return hs, nil
}

// Step runs one tick and returns its events.
func (hs *HeadlessSim) Step() []Event {
	var in Input
	if hs.Script != nil {
		in = hs.Script(hs.Match.Tick, hs.Match)
	}
	evs := hs.Match.Step(in)
	hs.events = append(hs.events, evs...)
	return evs
}

// RunTicks advances the match n ticks. It stops early once the match is over.
func (hs *HeadlessSim) RunTicks(n int) {
	for i := 0; i < n && !hs.Match.GameOver; i++ {
		hs.Step()
	}
}

// RunUntil advances up to maxTicks, stopping early if predicate returns true.
// Returns the tick at which the predicate was satisfied, or -1.
func (hs *HeadlessSim) RunUntil(predicate func(*HeadlessSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		hs.Step()
		if predicate(hs) {
			return hs.Match.Tick
		}
	}
	return -1
}

// RunUntilGameOver plays until someone wins or maxTicks pass. It reports
// whether the match finished.
func (hs *HeadlessSim) RunUntilGameOver(maxTicks int) bool {
	return hs.RunUntil(func(h *HeadlessSim) bool { return h.Match.GameOver }, maxTicks) >= 0
}

// Events returns every event emitted so far.
func (hs *HeadlessSim) Events() []Event {
	return hs.events
}

// Count is the number of emitted events of kind k.
func (hs *HeadlessSim) Count(k EventKind) int {
	n := 0
	for _, e := range hs.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Snapshot is a lightweight copy of the moving parts at one tick.
type Snapshot struct {
	Tick           int
	BallX, BallY   float64
	BallDX, BallDY float64
	LeftY, RightY  float64
	Scores         [2]int
}

// Snapshot returns the current state of the match.
func (hs *HeadlessSim) Snapshot() Snapshot {
	m := hs.Match
	return Snapshot{
		Tick:   m.Tick,
		BallX:  m.Ball.X,
		BallY:  m.Ball.Y,
		BallDX: m.Ball.DX,
		BallDY: m.Ball.DY,
		LeftY:  m.Left.Y,
		RightY: m.Right.Y,
		Scores: m.Scores,
	}
}
