package engine

import (
	"errors"
	"testing"

	"uno-server/internal/uno"
)

func TestUnoEngineDealAndHands(t *testing.T) {
	eng, err := NewUno(2, 7)
	if err != nil {
		t.Fatal(err)
	}
	if eng.Seats() != 2 {
		t.Errorf("Seats = %d, want 2", eng.Seats())
	}
	if eng.CurrentSeat() != 0 {
		t.Errorf("CurrentSeat = %d, want 0", eng.CurrentSeat())
	}
	for seat := 0; seat < 2; seat++ {
		if got := len(eng.Hand(seat)); got != 7 {
			t.Errorf("seat %d hand = %d cards, want 7", seat, got)
		}
	}
	if eng.Discard() == "" {
		t.Error("empty discard description")
	}
}

func TestUnoEnginePick(t *testing.T) {
	eng, err := NewUno(2, 7)
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.Apply(0, Action{Kind: Pick}); err != nil {
		t.Fatal(err)
	}
	if got := len(eng.Hand(0)); got != 8 {
		t.Errorf("hand = %d cards after pick, want 8", got)
	}
	if eng.CurrentSeat() != 1 {
		t.Errorf("CurrentSeat = %d after pick, want 1", eng.CurrentSeat())
	}
}

func TestUnoEngineRejectsBadColor(t *testing.T) {
	eng, err := NewUno(2, 7)
	if err != nil {
		t.Fatal(err)
	}
	err = eng.Apply(0, Action{Kind: Play, CardIndex: 0, Color: "purple"})
	if !errors.Is(err, uno.ErrInvalidColor) {
		t.Fatalf("err = %v, want ErrInvalidColor", err)
	}
	if got := len(eng.Hand(0)); got != 7 {
		t.Errorf("hand changed by rejected play: %d cards", got)
	}
}

func TestUnoEngineOutOfTurn(t *testing.T) {
	eng, err := NewUno(2, 7)
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.Apply(1, Action{Kind: Pick}); !errors.Is(err, uno.ErrNotYourTurn) {
		t.Fatalf("err = %v, want ErrNotYourTurn", err)
	}
}
