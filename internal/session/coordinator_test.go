package session

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"uno-server/internal/engine"
)

func TestCoordinatorRejectsMalformedInput(t *testing.T) {
	coord := NewCoordinator(newFakeEngine(2))
	cases := []string{
		"",
		"   ",
		"dance",
		"pick now",
		"play",
		"play x",
		"play 1 red extra",
	}
	for _, line := range cases {
		reply, broadcast := coord.Handle(0, line)
		if !contains(reply, "Invalid action") {
			t.Errorf("Handle(%q) reply = %q, want an invalid-action rejection", line, reply)
		}
		if broadcast != "" {
			t.Errorf("Handle(%q) broadcast = %q, want none", line, broadcast)
		}
	}
}

func TestCoordinatorTurnViolation(t *testing.T) {
	eng := newFakeEngine(2)
	applied := 0
	eng.onApply = func(e *fakeEngine, seat int, a engine.Action) error {
		applied++
		return nil
	}
	coord := NewCoordinator(eng)

	reply, broadcast := coord.Handle(1, "play 0")
	if reply != "Not your turn." || broadcast != "" {
		t.Errorf("Handle = %q, %q; want %q and no broadcast", reply, broadcast, "Not your turn.")
	}
	if applied != 0 {
		t.Error("rejected action reached the engine")
	}
}

func TestCoordinatorPick(t *testing.T) {
	coord := NewCoordinator(newFakeEngine(2))
	reply, broadcast := coord.Handle(0, "pick")
	if reply != "You picked a card." {
		t.Errorf("reply = %q", reply)
	}
	if broadcast != "Seat 0 picked a card." {
		t.Errorf("broadcast = %q", broadcast)
	}
}

func TestCoordinatorPlayNamesTheCard(t *testing.T) {
	coord := NewCoordinator(newFakeEngine(2))
	reply, broadcast := coord.Handle(0, "play 1")
	if reply != "You played blue 2." {
		t.Errorf("reply = %q", reply)
	}
	if broadcast != "Seat 0 played blue 2." {
		t.Errorf("broadcast = %q", broadcast)
	}
}

func TestCoordinatorPlayIndexOutOfRange(t *testing.T) {
	eng := newFakeEngine(2)
	applied := 0
	eng.onApply = func(e *fakeEngine, seat int, a engine.Action) error {
		applied++
		return nil
	}
	coord := NewCoordinator(eng)

	for _, line := range []string{"play 2", "play -1", "play 99 red"} {
		reply, broadcast := coord.Handle(0, line)
		if !contains(reply, "Invalid action") || broadcast != "" {
			t.Errorf("Handle(%q) = %q, %q; want rejection and no broadcast", line, reply, broadcast)
		}
	}
	if applied != 0 {
		t.Error("out-of-range play reached the engine")
	}
}

func TestCoordinatorEngineRejection(t *testing.T) {
	eng := newFakeEngine(2)
	eng.onApply = func(e *fakeEngine, seat int, a engine.Action) error {
		return errors.New("card does not match the discard")
	}
	coord := NewCoordinator(eng)

	reply, broadcast := coord.Handle(0, "play 0")
	if !contains(reply, "card does not match the discard") {
		t.Errorf("reply = %q, want the engine's reason", reply)
	}
	if broadcast != "" {
		t.Errorf("broadcast = %q, want none", broadcast)
	}
}

// Concurrent submissions must serialize: at most one Apply at a time,
// and every applied action's author is the engine's current seat at
// that moment.
func TestCoordinatorSerializesApply(t *testing.T) {
	const seats = 4
	const perSeat = 50

	eng := newFakeEngine(seats)
	var inApply atomic.Int32
	var applied atomic.Int32
	eng.onApply = func(e *fakeEngine, seat int, a engine.Action) error {
		if inApply.Add(1) != 1 {
			t.Error("concurrent Apply observed")
		}
		if seat != e.current {
			t.Errorf("applied action from seat %d while seat %d is current", seat, e.current)
		}
		applied.Add(1)
		e.current = (e.current + 1) % e.seats
		inApply.Add(-1)
		return nil
	}
	coord := NewCoordinator(eng)

	var wg sync.WaitGroup
	for seat := 0; seat < seats; seat++ {
		wg.Add(1)
		go func(seat int) {
			defer wg.Done()
			for i := 0; i < perSeat; i++ {
				coord.Handle(seat, "pick")
			}
		}(seat)
	}
	wg.Wait()

	if applied.Load() == 0 {
		t.Error("no action was ever applied")
	}
}

func TestCoordinatorSnapshot(t *testing.T) {
	coord := NewCoordinator(newFakeEngine(3))
	snap := coord.Snapshot()
	if snap.Current != 0 {
		t.Errorf("Current = %d, want 0", snap.Current)
	}
	if len(snap.Hands) != 3 {
		t.Fatalf("hands = %d, want 3", len(snap.Hands))
	}
	if snap.Discard != "red 3 (Color: red)" {
		t.Errorf("Discard = %q", snap.Discard)
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
