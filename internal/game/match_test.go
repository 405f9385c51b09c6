package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/pong/internal/config"
)

// humanMatch is a two-human match so paddles only move when told to.
func humanMatch(t *testing.T, opts ...SimOption) *HeadlessSim {
	t.Helper()
	opts = append([]SimOption{WithControllers(config.ControllerHuman, config.ControllerHuman)}, opts...)
	hs, err := NewHeadlessSim(opts...)
	require.NoError(t, err)
	return hs
}

func TestNewMatch_Defaults(t *testing.T) {
	m, err := NewMatch(config.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, 5, m.WinningScore)
	assert.Equal(t, [2]int{0, 0}, m.Scores)
	assert.Equal(t, ControllerHuman, m.Left.Controller)
	assert.Equal(t, ControllerAI, m.Right.Controller)
	assert.Equal(t, 400.0, m.Ball.X)
	assert.Equal(t, 300.0, m.Ball.Y)
	assert.Equal(t, SideNone, m.Winner)
}

func TestNewMatch_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.Left = "robot"
	_, err := NewMatch(cfg, nil)
	assert.True(t, errors.Is(err, ErrUnknownController))

	cfg = config.Default()
	cfg.WinningScore = 0
	_, err = NewMatch(cfg, nil)
	assert.True(t, errors.Is(err, ErrInvalidWinningScore))
}

func TestMatchName(t *testing.T) {
	m, err := NewMatch(config.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Player", m.Name(SideLeft))
	assert.Equal(t, "AI", m.Name(SideRight))

	m.Right.Controller = ControllerHuman
	assert.Equal(t, "Left", m.Name(SideLeft))
	assert.Equal(t, "Right", m.Name(SideRight))
}

func TestStep_RightScoresWhenBallPassesLeft(t *testing.T) {
	hs := humanMatch(t, WithBallVelocity(-7, 0), WithBallAt(400, 50))
	n := hs.RunUntil(func(h *HeadlessSim) bool { return h.Count(EventScore) > 0 }, 200)
	require.Positive(t, n, "expected a point within 200 ticks")

	m := hs.Match
	assert.Equal(t, [2]int{0, 1}, m.Scores)
	assert.Equal(t, 400.0, m.Ball.X, "ball should be back at the centre")
	assert.Greater(t, m.Ball.DX, 0.0, "serve should reverse direction")
	assert.Equal(t, 0, hs.Count(EventPaddleHit))
}

func TestStep_LeftScoresWhenBallPassesRight(t *testing.T) {
	hs := humanMatch(t, WithBallVelocity(7, 0), WithBallAt(400, 50))
	hs.RunUntil(func(h *HeadlessSim) bool { return h.Count(EventScore) > 0 }, 200)
	assert.Equal(t, [2]int{1, 0}, hs.Match.Scores)
	assert.Less(t, hs.Match.Ball.DX, 0.0)
}

func TestStep_PaddleHitReturnsBall(t *testing.T) {
	hs := humanMatch(t, WithBallVelocity(-7, 0), WithBallAt(100, 300))
	hs.RunUntil(func(h *HeadlessSim) bool { return h.Count(EventPaddleHit) > 0 }, 100)
	require.Equal(t, 1, hs.Count(EventPaddleHit))
	assert.Greater(t, hs.Match.Ball.DX, 0.0)
	assert.Equal(t, [2]int{0, 0}, hs.Match.Scores)

	evs := hs.Events()
	last := evs[len(evs)-1]
	assert.Equal(t, EventPaddleHit, last.Kind)
	assert.Equal(t, SideLeft, last.Side)
}

func TestStep_GameOverAtWinningScore(t *testing.T) {
	hs := humanMatch(t, WithWinningScore(3), WithScores(2, 0), WithBallVelocity(7, 0), WithBallAt(700, 50))
	hs.RunUntil(func(h *HeadlessSim) bool { return h.Match.GameOver }, 100)

	m := hs.Match
	require.True(t, m.GameOver)
	assert.Equal(t, SideLeft, m.Winner)
	assert.Equal(t, [2]int{3, 0}, m.Scores)
	assert.Equal(t, 1, hs.Count(EventGameOver))

	// Nothing moves once the match is over.
	tick, x := m.Tick, m.Ball.X
	hs.RunTicks(10)
	for i := 0; i < 10; i++ {
		hs.Step()
	}
	assert.Equal(t, tick, m.Tick)
	assert.Equal(t, x, m.Ball.X)
}

func TestStep_ReplayChoiceRestarts(t *testing.T) {
	hs := humanMatch(t, WithWinningScore(1), WithBallVelocity(7, 0), WithBallAt(700, 50))
	hs.RunUntil(func(h *HeadlessSim) bool { return h.Match.GameOver }, 100)
	require.True(t, hs.Match.GameOver)

	evs := hs.Match.Step(Input{NewGame: 7})
	require.True(t, HasEvent(evs, EventRestart))
	m := hs.Match
	assert.False(t, m.GameOver)
	assert.Equal(t, 7, m.WinningScore)
	assert.Equal(t, [2]int{0, 0}, m.Scores)
	assert.Equal(t, SideNone, m.Winner)
	assert.Equal(t, 250.0, m.Left.Y)
	assert.Equal(t, 400.0, m.Ball.X)
}

func TestStep_InvalidReplayIgnored(t *testing.T) {
	hs := humanMatch(t, WithWinningScore(1), WithBallVelocity(7, 0), WithBallAt(700, 50))
	hs.RunUntil(func(h *HeadlessSim) bool { return h.Match.GameOver }, 100)
	require.True(t, hs.Match.GameOver)

	for _, n := range []int{0, 1, 4, 9} {
		evs := hs.Match.Step(Input{NewGame: n})
		assert.False(t, HasEvent(evs, EventRestart), "choice %d should be ignored", n)
	}
	assert.True(t, hs.Match.GameOver)
}

func TestStep_ReplayIgnoredDuringPlay(t *testing.T) {
	hs := humanMatch(t)
	evs := hs.Match.Step(Input{NewGame: 3})
	assert.False(t, HasEvent(evs, EventRestart))
	assert.Equal(t, 5, hs.Match.WinningScore)
}

func TestStep_PauseFreezes(t *testing.T) {
	hs := humanMatch(t)
	m := hs.Match
	m.Step(Input{})
	evs := m.Step(Input{TogglePause: true})
	require.True(t, HasEvent(evs, EventPause))
	require.True(t, m.Paused)

	tick, x, y := m.Tick, m.Ball.X, m.Left.Y
	for i := 0; i < 20; i++ {
		m.Step(Input{Left: 1})
	}
	assert.Equal(t, tick, m.Tick)
	assert.Equal(t, x, m.Ball.X)
	assert.Equal(t, y, m.Left.Y, "paddles should not move while paused")

	evs = m.Step(Input{TogglePause: true})
	assert.True(t, HasEvent(evs, EventResume))
	assert.False(t, m.Paused)
	assert.Equal(t, tick+1, m.Tick)
}

func TestStep_QuitInAnyState(t *testing.T) {
	hs := humanMatch(t)
	m := hs.Match
	assert.True(t, HasEvent(m.Step(Input{Quit: true}), EventQuit))

	m.Step(Input{TogglePause: true})
	assert.True(t, HasEvent(m.Step(Input{Quit: true}), EventQuit))

	m.GameOver = true
	assert.True(t, HasEvent(m.Step(Input{Quit: true}), EventQuit))
}

func TestStep_HumanAndAIPaddles(t *testing.T) {
	hs, err := NewHeadlessSim(WithControllers(config.ControllerHuman, config.ControllerAI))
	require.NoError(t, err)
	m := hs.Match
	rightY := m.Right.Y

	m.Step(Input{Left: -1, Right: 1})
	assert.Equal(t, 240.0, m.Left.Y, "human paddle follows input")
	// Ball at the centre heading right: the AI only moves toward the ball,
	// never with the ignored Right input beyond that.
	assert.LessOrEqual(t, m.Right.Y-rightY, 6.0)
}

func TestMatchRestart_Invalid(t *testing.T) {
	hs := humanMatch(t)
	err := hs.Match.Restart(0)
	assert.ErrorIs(t, err, ErrInvalidWinningScore)
}

func TestMatchRecord_FansOut(t *testing.T) {
	hs := humanMatch(t, WithBallVelocity(-7, 0), WithBallAt(100, 300))
	hs.RunUntil(func(h *HeadlessSim) bool { return h.Count(EventPaddleHit) > 0 }, 100)

	assert.Equal(t, 1, hs.Log.Count("ball", "paddle_hit"))
	assert.Equal(t, 1, hs.Match.Feed.Len())
	ra, ok := hs.Reporter.Rally(1)
	require.True(t, ok)
	assert.Equal(t, 1, ra.Hits[SideLeft])
}

func TestStep_WallAfterPaddleReturnIsEmitted(t *testing.T) {
	hs := humanMatch(t, WithPaddleY(SideLeft, 0), WithBallVelocity(-20, 0), WithBallAt(44, 12))
	hit := &fakePlayer{}
	wall := &fakePlayer{}
	sb := &SoundBank{}
	sb.players[SoundPaddleHit] = hit
	sb.players[SoundWallBounce] = wall
	hs.Match.SetSounds(sb)

	evs := hs.Step()
	require.Len(t, evs, 2)
	assert.Equal(t, EventPaddleHit, evs[0].Kind)
	assert.Equal(t, EventWallBounce, evs[1].Kind)
	assert.Equal(t, 1, hs.Log.Count("ball", "wall_bounce"))
	assert.Equal(t, 1, wall.plays)
	assert.Equal(t, 1, hit.plays)
}

func TestStep_ReplayStartsAFreshReport(t *testing.T) {
	hs := humanMatch(t, WithWinningScore(1), WithBallVelocity(7, 0), WithBallAt(700, 50))
	hs.RunUntil(func(h *HeadlessSim) bool { return h.Match.GameOver }, 100)
	require.True(t, hs.Match.GameOver)
	require.Equal(t, [2]int{1, 0}, hs.Reporter.Summary().Points)

	hs.Match.Step(Input{NewGame: 3})
	s := hs.Reporter.Summary()
	assert.Equal(t, 0, s.Rallies)
	assert.Equal(t, [2]int{0, 0}, s.Points)
	assert.Empty(t, hs.Reporter.Rallies())
	// Only the restart itself is in the new game's log.
	assert.Len(t, hs.Log.Entries(), 1)
	assert.Equal(t, "restart", hs.Log.Entries()[0].Key)

	// The next rally is timed from the restart, not from its first event.
	// Both paddles move aside so the flat serve scores.
	hs.Match.Left.Y, hs.Match.Right.Y = 0, 0
	restartTick := hs.Match.Tick
	hs.RunUntil(func(h *HeadlessSim) bool { return h.Count(EventScore) > 1 }, 200)
	ra, ok := hs.Reporter.Rally(1)
	require.True(t, ok)
	assert.Equal(t, restartTick, ra.StartTick)
	assert.Equal(t, hs.Match.Tick-restartTick, ra.Ticks())
}

func TestStep_RallyTimedFromServe(t *testing.T) {
	// Left paddle out of the way: the serve goes straight through.
	hs := humanMatch(t, WithPaddleY(SideLeft, 0), WithBallVelocity(-7, 0), WithBallAt(400, 300))
	n := hs.RunUntil(func(h *HeadlessSim) bool { return h.Count(EventScore) > 0 }, 200)
	require.Positive(t, n)

	ra, ok := hs.Reporter.Rally(1)
	require.True(t, ok)
	assert.Equal(t, 0, ra.StartTick)
	assert.Equal(t, n, ra.EndTick)
	assert.Equal(t, n, ra.Ticks())
	assert.Equal(t, SideRight, ra.WonBy)
}
