package uno

import (
	"errors"
	"fmt"
	"strings"
)

// Color is a card color. Wilds carry NoColor until played.
type Color int8

const (
	NoColor Color = iota
	Red
	Yellow
	Green
	Blue
)

var colorNames = map[Color]string{
	NoColor: "wild",
	Red:     "red",
	Yellow:  "yellow",
	Green:   "green",
	Blue:    "blue",
}

func (c Color) String() string {
	if s, ok := colorNames[c]; ok {
		return s
	}
	return "unknown"
}

var ErrInvalidColor = errors.New("invalid color")

// ParseColor maps a player-supplied color name to a playable color.
// "wild"/empty are not accepted here: declared colors must be concrete.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return Red, nil
	case "yellow":
		return Yellow, nil
	case "green":
		return Green, nil
	case "blue":
		return Blue, nil
	}
	return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// Kind is a card face.
type Kind int8

const (
	Number Kind = iota
	Skip
	Reverse
	DrawTwo
	Wild
	WildDrawFour
)

type Card struct {
	Kind   Kind
	Color  Color // NoColor for wilds
	Number int8  // meaningful only when Kind == Number
}

func (c Card) IsWild() bool {
	return c.Kind == Wild || c.Kind == WildDrawFour
}

func (c Card) String() string {
	switch c.Kind {
	case Number:
		return fmt.Sprintf("%s %d", c.Color, c.Number)
	case Skip:
		return fmt.Sprintf("%s skip", c.Color)
	case Reverse:
		return fmt.Sprintf("%s reverse", c.Color)
	case DrawTwo:
		return fmt.Sprintf("%s draw two", c.Color)
	case Wild:
		return "wild"
	case WildDrawFour:
		return "wild draw four"
	}
	return "unknown"
}

// playableOn reports whether c may be placed on top while active is the
// color in force (the top card's own color, or the declared one after a
// wild).
func (c Card) playableOn(top Card, active Color) bool {
	if c.IsWild() {
		return true
	}
	if c.Color == active {
		return true
	}
	if c.Kind == Number && top.Kind == Number && c.Number == top.Number {
		return true
	}
	// Matching symbol of another color: skip on skip, reverse on reverse...
	return c.Kind == top.Kind && c.Kind != Number
}

// NewDeck returns the standard 108-card deck, unshuffled. Per color:
// one 0, two of each 1-9, two skips, two reverses, two draw twos;
// plus four wilds and four wild draw fours.
func NewDeck() []Card {
	deck := make([]Card, 0, 108)
	for _, color := range []Color{Red, Yellow, Green, Blue} {
		deck = append(deck, Card{Kind: Number, Color: color, Number: 0})
		for n := int8(1); n <= 9; n++ {
			deck = append(deck,
				Card{Kind: Number, Color: color, Number: n},
				Card{Kind: Number, Color: color, Number: n})
		}
		for _, k := range []Kind{Skip, Reverse, DrawTwo} {
			deck = append(deck, Card{Kind: k, Color: color}, Card{Kind: k, Color: color})
		}
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, Card{Kind: Wild}, Card{Kind: WildDrawFour})
	}
	return deck
}
