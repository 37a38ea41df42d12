package session

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"uno-server/internal/engine"
)

// Coordinator serializes and validates per-turn actions. Its mutex is
// the sole serialization point for match state: it stays held from the
// current-player check through Apply, so two seats can never both pass
// the turn check before either mutates state. Neither the rules engine
// nor the store takes its own lock for this.
type Coordinator struct {
	mu  sync.Mutex
	eng engine.Engine
}

func NewCoordinator(eng engine.Engine) *Coordinator {
	return &Coordinator{eng: eng}
}

// Handle processes one raw line from a seat. It returns the private
// reply for that seat and, for successful actions, the broadcast text
// for everyone else (empty otherwise).
func (c *Coordinator) Handle(seat int, rawLine string) (reply, broadcast string) {
	action, perr := parseAction(rawLine)
	if perr != "" {
		return perr, ""
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.eng.CurrentSeat() != seat {
		return "Not your turn.", ""
	}

	switch action.Kind {
	case engine.Pick:
		if err := c.eng.Apply(seat, action); err != nil {
			return fmt.Sprintf("Invalid action: %v.", err), ""
		}
		return "You picked a card.", fmt.Sprintf("Seat %d picked a card.", seat)

	case engine.Play:
		// Capture the card before Apply removes it from the hand.
		hand := c.eng.Hand(seat)
		if action.CardIndex < 0 || action.CardIndex >= len(hand) {
			return fmt.Sprintf("Invalid action: no card at index %d.", action.CardIndex), ""
		}
		card := hand[action.CardIndex]
		if err := c.eng.Apply(seat, action); err != nil {
			return fmt.Sprintf("Invalid action: %v.", err), ""
		}
		return fmt.Sprintf("You played %s.", card), fmt.Sprintf("Seat %d played %s.", seat, card)
	}
	return "Invalid action.", ""
}

// Winner reports the winning seat once a hand has emptied.
func (c *Coordinator) Winner() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eng.Winner()
}

// StateSnapshot is a consistent view of the match for broadcasting.
type StateSnapshot struct {
	Hands   [][]string
	Discard string
	Current int
}

// Snapshot reads hands, discard and turn under the same mutex that
// guards Apply, so broadcasts never observe a half-applied action.
func (c *Coordinator) Snapshot() StateSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := StateSnapshot{
		Discard: c.eng.Discard(),
		Current: c.eng.CurrentSeat(),
	}
	for seat := 0; seat < c.eng.Seats(); seat++ {
		snap.Hands = append(snap.Hands, c.eng.Hand(seat))
	}
	return snap
}

// parseAction turns one inbound line into an action, or a rejection
// message for malformed input.
func parseAction(rawLine string) (engine.Action, string) {
	fields := strings.Fields(strings.TrimSpace(rawLine))
	if len(fields) == 0 {
		return engine.Action{}, "Invalid action: empty command."
	}
	switch strings.ToLower(fields[0]) {
	case "pick":
		if len(fields) != 1 {
			return engine.Action{}, "Invalid action: pick takes no arguments."
		}
		return engine.Action{Kind: engine.Pick}, ""
	case "play":
		if len(fields) < 2 || len(fields) > 3 {
			return engine.Action{}, "Invalid action: usage: play <card_index> [color]."
		}
		index, err := strconv.Atoi(fields[1])
		if err != nil {
			return engine.Action{}, fmt.Sprintf("Invalid action: %q is not a card index.", fields[1])
		}
		a := engine.Action{Kind: engine.Play, CardIndex: index}
		if len(fields) == 3 {
			a.Color = fields[2]
		}
		return a, ""
	}
	return engine.Action{}, fmt.Sprintf("Invalid action: unknown command %q.", fields[0])
}
