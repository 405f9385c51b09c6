package game

import (
	"fmt"
	"strings"
)

// MatchLogEntry is one recorded event during a match.
type MatchLogEntry struct {
	Tick     int
	Side     string  // "L", "R", or "--" for court-wide events
	Category string  // ball, score, match, paddle
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0142] L  ball      paddle_hit       left paddle at y=311 speed=9.90
func (e MatchLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-2s %-9s %-16s %s",
		e.Tick, e.Side, e.Category, e.Key, e.Value)
}

// MatchLog collects structured events for a match. Unlike EventFeed (HUD
// ring-buffer), MatchLog is unbounded and machine-readable.
type MatchLog struct {
	entries []MatchLogEntry
	verbose bool
}

// NewMatchLog creates a MatchLog. If verbose is true, per-tick ball and
// paddle positions are also recorded.
func NewMatchLog(verbose bool) *MatchLog {
	return &MatchLog{verbose: verbose}
}

// Add records a new entry.
func (ml *MatchLog) Add(tick int, side, category, key, value string, numVal float64) {
	ml.entries = append(ml.entries, MatchLogEntry{
		Tick:     tick,
		Side:     side,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (ml *MatchLog) AddVerbose(tick int, side, category, key, value string, numVal float64) {
	if !ml.verbose {
		return
	}
	ml.Add(tick, side, category, key, value, numVal)
}

// AddEvent records a match event.
func (ml *MatchLog) AddEvent(e Event) {
	num := e.Speed
	switch e.Kind {
	case EventScore, EventGameOver:
		num = float64(e.Score[SideLeft] + e.Score[SideRight])
	case EventRestart:
		num = float64(e.WinningScore)
	}
	ml.Add(e.Tick, e.Side.Label(), e.Kind.category(), e.Kind.String(), e.describe(), num)
}

// Verbose reports whether per-tick entries are recorded.
func (ml *MatchLog) Verbose() bool {
	return ml.verbose
}

// Entries returns all recorded entries.
func (ml *MatchLog) Entries() []MatchLogEntry {
	return ml.entries
}

// Reset drops every entry.
func (ml *MatchLog) Reset() {
	ml.entries = ml.entries[:0]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (ml *MatchLog) Filter(category, key string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterSide returns entries for one side label ("L", "R" or "--").
func (ml *MatchLog) FilterSide(label string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Side == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (ml *MatchLog) FilterTickRange(fromTick, toTick int) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries match the given category and key.
func (ml *MatchLog) Count(category, key string) int {
	return len(ml.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (ml *MatchLog) LastOf(category, key string) (MatchLogEntry, bool) {
	entries := ml.Filter(category, key)
	if len(entries) == 0 {
		return MatchLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// FormatRange returns a log string filtered to a tick range.
func (ml *MatchLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range ml.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
