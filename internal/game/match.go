package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/Garsondee/pong/internal/config"
)

// ErrInvalidWinningScore is returned by Restart for a non-positive target.
var ErrInvalidWinningScore = errors.New("winning score must be positive")

// ReplayChoices are the targets offered on the game-over menu.
var ReplayChoices = [...]int{3, 5, 7}

// trackingSampleInterval is how often the reporter samples paddle tracking.
const trackingSampleInterval = 10

// Input is one tick of controls. Left and Right are -1 (up), 0 or +1 (down)
// and only move human-controlled paddles.
type Input struct {
	Left, Right int
	TogglePause bool
	// NewGame restarts a finished match with this winning score. Only the
	// ReplayChoices are honoured; zero means no choice.
	NewGame int
	Quit    bool
}

// Match is one game of Pong: two paddles, a ball, the score and the rules
// for winning. It advances only through Step.
type Match struct {
	Left, Right *Paddle
	Ball        *Ball

	Scores       [2]int
	WinningScore int
	GameOver     bool
	Winner       Side
	Paused       bool
	Tick         int

	courtW, courtH float64
	rng            *rand.Rand

	Log      *MatchLog
	Feed     *EventFeed
	Reporter *MatchReporter
	sounds   *SoundBank
}

// NewMatch builds a match from cfg. Controllers must already be validated
// by cfg.Validate; an unknown name is still reported here.
func NewMatch(cfg config.Config, rng *rand.Rand) (*Match, error) {
	leftCtl, err := ParseController(cfg.Left)
	if err != nil {
		return nil, fmt.Errorf("left paddle: %w", err)
	}
	rightCtl, err := ParseController(cfg.Right)
	if err != nil {
		return nil, fmt.Errorf("right paddle: %w", err)
	}
	if cfg.WinningScore <= 0 {
		return nil, ErrInvalidWinningScore
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed)) // #nosec G404 -- gameplay only
	}

	w, h := cfg.Court.Width, cfg.Court.Height
	m := &Match{
		Left:         NewPaddle(SideLeft, leftCtl, w, h, cfg.Paddle, cfg.AI),
		Right:        NewPaddle(SideRight, rightCtl, w, h, cfg.Paddle, cfg.AI),
		Ball:         NewBall(math.Floor(float64(w)/2), math.Floor(float64(h)/2), cfg.Ball.DX, cfg.Ball.DY, w, h, cfg.Ball),
		WinningScore: cfg.WinningScore,
		Winner:       SideNone,
		courtW:       float64(w),
		courtH:       float64(h),
		rng:          rng,
		Log:          NewMatchLog(false),
		Feed:         NewEventFeed(),
		Reporter:     NewMatchReporter(reportWindowTicks),
	}
	return m, nil
}

// SetSounds attaches a sound bank; nil silences the match.
func (m *Match) SetSounds(sb *SoundBank) {
	m.sounds = sb
}

// CourtSize returns the playfield dimensions.
func (m *Match) CourtSize() (float64, float64) {
	return m.courtW, m.courtH
}

// PaddleFor returns the paddle on side s.
func (m *Match) PaddleFor(s Side) *Paddle {
	if s == SideRight {
		return m.Right
	}
	return m.Left
}

// Name is how the winner banner refers to a side: "Player" or "AI", or the
// side itself when both paddles share a controller.
func (m *Match) Name(s Side) string {
	if m.Left.Controller == m.Right.Controller {
		if s == SideRight {
			return "Right"
		}
		return "Left"
	}
	return m.PaddleFor(s).Controller.String()
}

// Step advances the match by one fixed tick and returns what happened.
func (m *Match) Step(in Input) []Event {
	var events []Event
	emit := func(e Event) {
		e.Tick = m.Tick
		events = append(events, e)
	}

	if in.Quit {
		emit(Event{Kind: EventQuit, Side: SideNone})
		return m.record(events)
	}

	if m.GameOver {
		if validReplay(in.NewGame) {
			// Restart cannot fail for a replay choice.
			_ = m.Restart(in.NewGame)
			emit(Event{Kind: EventRestart, Side: SideNone, WinningScore: in.NewGame})
		}
		return m.record(events)
	}

	if in.TogglePause {
		m.Paused = !m.Paused
		if m.Paused {
			emit(Event{Kind: EventPause, Side: SideNone})
		} else {
			emit(Event{Kind: EventResume, Side: SideNone})
		}
	}
	if m.Paused {
		return m.record(events)
	}

	m.Tick++
	m.drive(m.Left, in.Left)
	m.drive(m.Right, in.Right)

	b := m.Ball
	if b.Move() {
		emit(Event{Kind: EventWallBounce, Side: SideNone, X: b.X, Y: b.Y, Speed: b.Speed})
	}
	if side, hit, wall := b.CheckCollision(m.Left, m.Right); hit {
		emit(Event{Kind: EventPaddleHit, Side: side, X: b.X, Y: b.Y, Speed: b.Speed})
		if wall {
			emit(Event{Kind: EventWallBounce, Side: SideNone, X: b.X, Y: b.Y, Speed: b.Speed})
		}
		m.Left.Retarget(m.rng)
		m.Right.Retarget(m.rng)
	}

	scorer := SideNone
	switch {
	case b.X <= 0:
		scorer = SideRight
	case b.X >= m.courtW:
		scorer = SideLeft
	}
	if scorer != SideNone {
		m.Scores[scorer]++
		emit(Event{Kind: EventScore, Side: scorer, X: b.X, Y: b.Y, Speed: b.Speed, Score: m.Scores})
		b.Reset(m.rng)
	}

	if m.checkGameOver() {
		emit(Event{Kind: EventGameOver, Side: m.Winner, Score: m.Scores})
	}

	m.Log.AddVerbose(m.Tick, "--", "ball", "position", fmt.Sprintf("(%.1f,%.1f)", b.X, b.Y), b.Speed)
	for _, p := range [...]*Paddle{m.Left, m.Right} {
		m.Log.AddVerbose(m.Tick, p.Side.Label(), "paddle", "position", fmt.Sprintf("y=%.1f", p.Y), p.Y)
	}
	if m.Tick%trackingSampleInterval == 0 {
		m.Reporter.Collect(m.Tick, m)
	}
	return m.record(events)
}

func (m *Match) drive(p *Paddle, dir int) {
	if p.Controller == ControllerAI {
		p.AutoTrack(m.Ball, m.courtH)
		return
	}
	p.Drive(dir, m.courtH)
}

// checkGameOver sets GameOver and Winner once a side reaches the target.
func (m *Match) checkGameOver() bool {
	switch {
	case m.Scores[SideLeft] >= m.WinningScore:
		m.Winner = SideLeft
	case m.Scores[SideRight] >= m.WinningScore:
		m.Winner = SideRight
	default:
		return false
	}
	m.GameOver = true
	return true
}

// record fans events out to the log, feed, reporter and sound bank.
func (m *Match) record(events []Event) []Event {
	for _, e := range events {
		m.Log.AddEvent(e)
		m.Feed.AddEvent(e)
		m.Reporter.OnEvent(e)
		m.sounds.PlayFor(e)
	}
	return events
}

// Restart begins a new game to winningScore: scores cleared, ball served
// from the centre and both paddles recentred. The log and rally report start
// over with the new game.
func (m *Match) Restart(winningScore int) error {
	if winningScore <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWinningScore, winningScore)
	}
	m.WinningScore = winningScore
	m.Scores = [2]int{}
	m.GameOver = false
	m.Winner = SideNone
	m.Paused = false
	m.Ball.Reset(m.rng)
	m.Left.Reset(m.courtH)
	m.Right.Reset(m.courtH)
	m.Log.Reset()
	m.Reporter.Reset(m.Tick)
	return nil
}

func validReplay(n int) bool {
	for _, c := range ReplayChoices {
		if n == c {
			return true
		}
	}
	return false
}
