package game

import "fmt"

// EventKind is something that happened during a tick.
type EventKind int

const (
	EventWallBounce EventKind = iota
	EventPaddleHit
	EventScore
	EventGameOver
	EventRestart
	EventPause
	EventResume
	EventQuit
)

func (k EventKind) String() string {
	switch k {
	case EventWallBounce:
		return "wall_bounce"
	case EventPaddleHit:
		return "paddle_hit"
	case EventScore:
		return "score"
	case EventGameOver:
		return "game_over"
	case EventRestart:
		return "restart"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// category groups kinds for the match log.
func (k EventKind) category() string {
	switch k {
	case EventWallBounce, EventPaddleHit:
		return "ball"
	case EventScore:
		return "score"
	default:
		return "match"
	}
}

// Event is emitted by Match.Step. Side is the paddle hit, the side that
// scored, or the winner, depending on Kind.
type Event struct {
	Tick  int
	Kind  EventKind
	Side  Side
	X, Y  float64
	Speed float64
	// Score holds the left and right scores after a Score or GameOver event.
	Score [2]int
	// WinningScore is set on Restart.
	WinningScore int
}

// describe is the human-readable value recorded in the log and feed.
func (e Event) describe() string {
	switch e.Kind {
	case EventWallBounce:
		return fmt.Sprintf("wall at (%.0f,%.0f)", e.X, e.Y)
	case EventPaddleHit:
		return fmt.Sprintf("%s paddle at y=%.0f speed=%.2f", e.Side, e.Y, e.Speed)
	case EventScore:
		return fmt.Sprintf("%s scores %d-%d", e.Side, e.Score[SideLeft], e.Score[SideRight])
	case EventGameOver:
		return fmt.Sprintf("%s wins %d-%d", e.Side, e.Score[SideLeft], e.Score[SideRight])
	case EventRestart:
		return fmt.Sprintf("first to %d", e.WinningScore)
	default:
		return e.Kind.String()
	}
}

// HasEvent reports whether events contains one of kind k.
func HasEvent(events []Event, k EventKind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}
