package game

import "testing"

func TestEventFeed_Order(t *testing.T) {
	f := NewEventFeed()
	f.Add(1, SideLeft, "a")
	f.Add(2, SideRight, "b")
	got := f.Recent()
	if len(got) != 2 || got[0].Message != "a" || got[1].Message != "b" {
		t.Fatalf("expected [a b], got %+v", got)
	}
}

func TestEventFeed_Wraps(t *testing.T) {
	f := NewEventFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(i, SideNone, "x")
	}
	if f.Len() != feedMaxEntries {
		t.Fatalf("expected %d entries, got %d", feedMaxEntries, f.Len())
	}
	got := f.Recent()
	if got[0].Tick != 5 {
		t.Fatalf("oldest entry should be tick 5, got %d", got[0].Tick)
	}
	if got[len(got)-1].Tick != feedMaxEntries+4 {
		t.Fatalf("newest entry should be tick %d, got %d", feedMaxEntries+4, got[len(got)-1].Tick)
	}
}

func TestEventFeed_SkipsWallBounces(t *testing.T) {
	f := NewEventFeed()
	f.AddEvent(Event{Tick: 3, Kind: EventWallBounce})
	f.AddEvent(Event{Tick: 4, Kind: EventScore, Side: SideLeft, Score: [2]int{1, 0}})
	if f.Len() != 1 {
		t.Fatalf("expected only the score, got %d entries", f.Len())
	}
	if msg := f.Recent()[0].Message; msg != "left scores 1-0" {
		t.Fatalf("unexpected message %q", msg)
	}
}
