// Package engine is the orchestrator-facing façade over the rules
// engine. The session code only sees this interface; card legality and
// turn advancement live behind it.
package engine

import (
	"fmt"

	"uno-server/internal/uno"
)

// ActionKind discriminates the two things a seat can do on its turn.
type ActionKind int

const (
	Pick ActionKind = iota
	Play
)

// Action is one parsed player command.
type Action struct {
	Kind      ActionKind
	CardIndex int
	Color     string // declared color for wilds, empty otherwise
}

// Engine is the typed façade the session orchestrator calls. Apply is
// all-or-nothing: on error the underlying state is unchanged.
type Engine interface {
	Seats() int
	CurrentSeat() int
	// Discard describes the top of the discard pile plus the color in force.
	Discard() string
	// Hand lists the seat's cards, index-aligned with play commands.
	Hand(seat int) []string
	Apply(seat int, a Action) error
	Winner() (seat int, ok bool)
}

// UnoEngine adapts a uno.Game to the Engine interface.
type UnoEngine struct {
	game *uno.Game
}

func NewUno(players int, seed int64) (*UnoEngine, error) {
	g, err := uno.NewGame(players, seed)
	if err != nil {
		return nil, err
	}
	return &UnoEngine{game: g}, nil
}

func (e *UnoEngine) Seats() int       { return e.game.Seats() }
func (e *UnoEngine) CurrentSeat() int { return e.game.CurrentSeat() }

func (e *UnoEngine) Discard() string {
	return fmt.Sprintf("%s (Color: %s)", e.game.TopCard(), e.game.ActiveColor())
}

func (e *UnoEngine) Hand(seat int) []string {
	cards := e.game.Hand(seat)
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func (e *UnoEngine) Apply(seat int, a Action) error {
	switch a.Kind {
	case Pick:
		_, err := e.game.Draw(seat)
		return err
	case Play:
		declared := uno.NoColor
		if a.Color != "" {
			var err error
			declared, err = uno.ParseColor(a.Color)
			if err != nil {
				return err
			}
		}
		return e.game.Play(seat, a.CardIndex, declared)
	}
	return fmt.Errorf("unknown action kind %d", a.Kind)
}

func (e *UnoEngine) Winner() (int, bool) {
	return e.game.Winner()
}
