package game

import "fmt"

// MatchOutcome is how a match stands: still being played or won by one side.
type MatchOutcome int

const (
	OutcomeOngoing MatchOutcome = iota
	OutcomeLeftWins
	OutcomeRightWins
)

func (o MatchOutcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "ongoing"
	case OutcomeLeftWins:
		return "left_wins"
	case OutcomeRightWins:
		return "right_wins"
	default:
		return "unknown"
	}
}

// MatchOutcomeReason is an outcome along with the score and margin behind it.
type MatchOutcomeReason struct {
	Outcome      MatchOutcome
	Winner       Side
	WinnerName   string
	Score        [2]int
	WinningScore int
	Margin       int
	MarginLabel  string
	Description  string
}

// DetermineOutcome classifies a match by who won and by how much.
// A shutout concedes nothing; a close game is decided by a single point.
func DetermineOutcome(m *Match) MatchOutcomeReason {
	r := MatchOutcomeReason{
		Winner:       SideNone,
		Score:        m.Scores,
		WinningScore: m.WinningScore,
	}
	if !m.GameOver {
		r.Outcome = OutcomeOngoing
		r.Description = fmt.Sprintf("in play %d-%d, first to %d",
			m.Scores[SideLeft], m.Scores[SideRight], m.WinningScore)
		return r
	}

	r.Winner = m.Winner
	r.WinnerName = m.Name(m.Winner)
	if m.Winner == SideLeft {
		r.Outcome = OutcomeLeftWins
	} else {
		r.Outcome = OutcomeRightWins
	}
	r.Margin = m.Scores[m.Winner] - m.Scores[m.Winner.Opponent()]

	switch {
	case m.Scores[m.Winner.Opponent()] == 0:
		r.MarginLabel = "shutout"
	case r.Margin <= 1:
		r.MarginLabel = "close"
	default:
		r.MarginLabel = "comfortable"
	}
	r.Description = fmt.Sprintf("%s (%s) wins %d-%d, %s",
		r.WinnerName, m.Winner, m.Scores[SideLeft], m.Scores[SideRight], r.MarginLabel)
	return r
}
