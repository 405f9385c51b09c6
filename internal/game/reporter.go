package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/kamstrup/intmap"
)

// reportWindowTicks is the default sliding window for tracking samples (~10s at 60TPS).
const reportWindowTicks = 600

// Rally is one exchange, from serve to point.
type Rally struct {
	Index       int
	StartTick   int
	EndTick     int
	Hits        [2]int // paddle hits per side
	WallBounces int
	PeakSpeed   float64
	WonBy       Side
}

// TotalHits is the number of paddle hits in the rally.
func (r Rally) TotalHits() int {
	return r.Hits[SideLeft] + r.Hits[SideRight]
}

// Ticks is the rally's duration.
func (r Rally) Ticks() int {
	return r.EndTick - r.StartTick
}

// TrackingSample captures how far a paddle sat from the incoming ball at one tick.
type TrackingSample struct {
	Tick  int
	Side  Side
	Error float64 // |paddle centre - ball y|
	Speed float64
}

// MatchReporter turns the event stream into rally statistics, and samples
// paddle tracking error periodically.
type MatchReporter struct {
	rallies *intmap.Map[int, *Rally]
	next    int
	open    *Rally
	// serveTick is when the next rally began: match start, the last point or
	// the last restart.
	serveTick   int
	samples     []TrackingSample
	windowTicks int
}

// NewMatchReporter creates a reporter with the given sample window size.
func NewMatchReporter(windowTicks int) *MatchReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &MatchReporter{
		rallies:     intmap.New[int, *Rally](64),
		windowTicks: windowTicks,
	}
}

// OnEvent folds one match event into the rally table.
func (r *MatchReporter) OnEvent(e Event) {
	switch e.Kind {
	case EventWallBounce:
		r.rally().WallBounces++
	case EventPaddleHit:
		ra := r.rally()
		if e.Side == SideLeft || e.Side == SideRight {
			ra.Hits[e.Side]++
		}
		ra.PeakSpeed = math.Max(ra.PeakSpeed, e.Speed)
	case EventScore:
		ra := r.rally()
		ra.EndTick = e.Tick
		ra.WonBy = e.Side
		r.open = nil
		r.serveTick = e.Tick
	case EventRestart:
		r.open = nil
		r.serveTick = e.Tick
	}
}

// Reset drops every rally and sample. The next rally is served at tick.
func (r *MatchReporter) Reset(tick int) {
	r.rallies = intmap.New[int, *Rally](64)
	r.next = 0
	r.open = nil
	r.serveTick = tick
	r.samples = r.samples[:0]
}

// rally returns the open rally, starting one from the last serve if needed.
func (r *MatchReporter) rally() *Rally {
	if r.open != nil {
		return r.open
	}
	r.next++
	ra := &Rally{Index: r.next, StartTick: r.serveTick, WonBy: SideNone}
	r.rallies.Put(ra.Index, ra)
	r.open = ra
	return ra
}

// Collect samples tracking error for every paddle the ball is heading toward.
// Call this periodically (e.g. every 10 ticks).
func (r *MatchReporter) Collect(tick int, m *Match) {
	for _, p := range [...]*Paddle{m.Left, m.Right} {
		if m.Ball.Heading() != p.Side {
			continue
		}
		r.samples = append(r.samples, TrackingSample{
			Tick:  tick,
			Side:  p.Side,
			Error: math.Abs(p.CentreY() - m.Ball.Y),
			Speed: m.Ball.Speed,
		})
	}

	// Prune old samples beyond 2x window to prevent unbounded growth.
	cutoff := tick - 2*r.windowTicks
	drop := 0
	for drop < len(r.samples) && r.samples[drop].Tick < cutoff {
		drop++
	}
	if drop > 0 {
		r.samples = append(r.samples[:0], r.samples[drop:]...)
	}
}

// Rallies returns completed and open rallies in order.
func (r *MatchReporter) Rallies() []Rally {
	out := make([]Rally, 0, r.rallies.Len())
	for i := 1; i <= r.next; i++ {
		if ra, ok := r.rallies.Get(i); ok {
			out = append(out, *ra)
		}
	}
	return out
}

// Rally returns the rally with the given 1-based index.
func (r *MatchReporter) Rally(index int) (Rally, bool) {
	ra, ok := r.rallies.Get(index)
	if !ok {
		return Rally{}, false
	}
	return *ra, true
}

// ReportSummary aggregates a match.
type ReportSummary struct {
	Rallies      int
	Points       [2]int
	Hits         [2]int
	WallBounces  int
	LongestRally int // in paddle hits
	MeanHits     float64
	MeanTicks    float64
	PeakSpeed    float64
	// MeanTrackingError is the average sampled distance between a paddle and
	// the incoming ball over the recent window, per side.
	MeanTrackingError [2]float64
}

// Summary aggregates every completed rally plus the recent tracking samples.
func (r *MatchReporter) Summary() ReportSummary {
	var s ReportSummary
	totalHits, totalTicks := 0, 0
	for _, ra := range r.Rallies() {
		s.Hits[SideLeft] += ra.Hits[SideLeft]
		s.Hits[SideRight] += ra.Hits[SideRight]
		s.WallBounces += ra.WallBounces
		s.PeakSpeed = math.Max(s.PeakSpeed, ra.PeakSpeed)
		if ra.WonBy == SideNone {
			continue
		}
		s.Rallies++
		s.Points[ra.WonBy]++
		totalHits += ra.TotalHits()
		totalTicks += ra.Ticks()
		if ra.TotalHits() > s.LongestRally {
			s.LongestRally = ra.TotalHits()
		}
	}
	if s.Rallies > 0 {
		s.MeanHits = float64(totalHits) / float64(s.Rallies)
		s.MeanTicks = float64(totalTicks) / float64(s.Rallies)
	}

	if n := len(r.samples); n > 0 {
		latest := r.samples[n-1].Tick
		var sum [2]float64
		var cnt [2]int
		for _, smp := range r.samples {
			if smp.Tick < latest-r.windowTicks {
				continue
			}
			sum[smp.Side] += smp.Error
			cnt[smp.Side]++
		}
		for i := range sum {
			if cnt[i] > 0 {
				s.MeanTrackingError[i] = sum[i] / float64(cnt[i])
			}
		}
	}
	return s
}

// Format returns a human-readable multi-line string of the summary.
func (s ReportSummary) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Match Report (%d rallies) ===\n", s.Rallies)
	fmt.Fprintf(&sb, "  points:  left=%d  right=%d\n", s.Points[SideLeft], s.Points[SideRight])
	fmt.Fprintf(&sb, "  hits:    left=%d  right=%d\n", s.Hits[SideLeft], s.Hits[SideRight])
	fmt.Fprintf(&sb, "  rally:   longest=%d hits  mean=%.1f hits / %.0f ticks\n",
		s.LongestRally, s.MeanHits, s.MeanTicks)
	fmt.Fprintf(&sb, "  walls:   %d  peak speed=%.2f px/tick\n", s.WallBounces, s.PeakSpeed)
	fmt.Fprintf(&sb, "  tracking error: left=%.1fpx  right=%.1fpx\n",
		s.MeanTrackingError[SideLeft], s.MeanTrackingError[SideRight])
	return sb.String()
}
