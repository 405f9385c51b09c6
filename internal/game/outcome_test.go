package game

import (
	"strings"
	"testing"
)

func TestDetermineOutcome(t *testing.T) {
	tests := []struct {
		name       string
		scores     [2]int
		winner     Side
		over       bool
		outcome    MatchOutcome
		margin     string
		descSubstr string
	}{
		{"ongoing", [2]int{2, 1}, SideNone, false, OutcomeOngoing, "", "in play 2-1, first to 5"},
		{"shutout", [2]int{5, 0}, SideLeft, true, OutcomeLeftWins, "shutout", "Player (left) wins 5-0, shutout"},
		{"close", [2]int{4, 5}, SideRight, true, OutcomeRightWins, "close", "AI (right) wins 4-5, close"},
		{"comfortable", [2]int{5, 2}, SideLeft, true, OutcomeLeftWins, "comfortable", "wins 5-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := humanMatch(t)
			m := hs.Match
			m.Right.Controller = ControllerAI
			m.Scores = tt.scores
			m.Winner = tt.winner
			m.GameOver = tt.over

			r := DetermineOutcome(m)
			if r.Outcome != tt.outcome {
				t.Fatalf("outcome %s, want %s", r.Outcome, tt.outcome)
			}
			if r.MarginLabel != tt.margin {
				t.Fatalf("margin %q, want %q", r.MarginLabel, tt.margin)
			}
			if !strings.Contains(r.Description, tt.descSubstr) {
				t.Fatalf("description %q does not contain %q", r.Description, tt.descSubstr)
			}
		})
	}
}

func TestDetermineOutcome_SameControllers(t *testing.T) {
	hs, err := NewHeadlessSim()
	if err != nil {
		t.Fatal(err)
	}
	m := hs.Match
	m.Scores = [2]int{3, 5}
	m.Winner = SideRight
	m.GameOver = true
	r := DetermineOutcome(m)
	if r.WinnerName != "Right" {
		t.Fatalf("AI vs AI winner should be named by side, got %q", r.WinnerName)
	}
	if r.Margin != 2 {
		t.Fatalf("expected margin 2, got %d", r.Margin)
	}
}
