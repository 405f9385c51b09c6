package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 40
	feedLineHeight = 14
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Side    Side
	Message string
}

// EventFeed is a ring buffer of recent match events shown on the debug panel.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates an event feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest when full.
func (f *EventFeed) Add(tick int, side Side, msg string) {
	f.entries[f.head] = FeedEntry{
		Tick:    tick,
		Side:    side,
		Message: msg,
	}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// AddEvent appends a match event. Wall bounces are too frequent to be useful
// on the panel and are skipped.
func (f *EventFeed) AddEvent(e Event) {
	if e.Kind == EventWallBounce {
		return
	}
	f.Add(e.Tick, e.Side, e.describe())
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Len is the number of buffered entries.
func (f *EventFeed) Len() int {
	return f.count
}

// Draw renders the feed panel with its left edge at panelX.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, float32(panelH), color.RGBA{R: 8, G: 10, B: 14, A: 220}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 2)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for _, e := range entries {
		dot := color.RGBA{R: 150, G: 150, B: 150, A: 255}
		switch e.Side {
		case SideLeft:
			dot = color.RGBA{R: 90, G: 200, B: 120, A: 255}
		case SideRight:
			dot = color.RGBA{R: 220, G: 90, B: 90, A: 255}
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, dot, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y)
		y += feedLineHeight
	}
}
