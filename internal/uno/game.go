package uno

import (
	"errors"
	"fmt"
	"math/rand"
)

const startingHandSize = 7

var (
	ErrTooFewPlayers   = errors.New("need at least 2 players")
	ErrTooManyPlayers  = errors.New("too many players for one deck")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrNoSuchCard      = errors.New("no card at that index")
	ErrCardNotPlayable = errors.New("card does not match the discard")
	ErrColorRequired   = errors.New("a color must be declared for a wild")
	ErrGameOver        = errors.New("game is over")
)

// Game holds one match's deck, hands and turn order. It is not safe for
// concurrent use; callers serialize access.
type Game struct {
	deck        []Card
	discard     []Card // last element is the top card
	hands       [][]Card
	current     int
	direction   int // +1 or -1
	activeColor Color
	winner      int // -1 until someone empties a hand
	rng         *rand.Rand
}

// NewGame deals a fresh match. The seed makes deals reproducible; pass
// something time-derived for real play.
func NewGame(players int, seed int64) (*Game, error) {
	if players < 2 {
		return nil, ErrTooFewPlayers
	}
	if players*startingHandSize >= 100 {
		return nil, ErrTooManyPlayers
	}
	g := &Game{
		deck:      NewDeck(),
		hands:     make([][]Card, players),
		direction: 1,
		winner:    -1,
		rng:       rand.New(rand.NewSource(seed)),
	}
	g.rng.Shuffle(len(g.deck), func(i, j int) {
		g.deck[i], g.deck[j] = g.deck[j], g.deck[i]
	})
	for seat := range g.hands {
		g.hands[seat] = make([]Card, 0, startingHandSize)
		for i := 0; i < startingHandSize; i++ {
			g.hands[seat] = append(g.hands[seat], g.deck[0])
			g.deck = g.deck[1:]
		}
	}
	// The first discard must carry a concrete color; bury wilds back in
	// the deck until a colored card turns up.
	for g.deck[0].IsWild() {
		wild := g.deck[0]
		g.deck = append(g.deck[1:], wild)
	}
	g.discard = append(g.discard, g.deck[0])
	g.deck = g.deck[1:]
	g.activeColor = g.discard[len(g.discard)-1].Color
	return g, nil
}

func (g *Game) Seats() int { return len(g.hands) }

// CurrentSeat is the seat that must act next.
func (g *Game) CurrentSeat() int { return g.current }

// TopCard is the card on top of the discard pile.
func (g *Game) TopCard() Card { return g.discard[len(g.discard)-1] }

// ActiveColor is the color in force: the top card's own color, or the
// declared color after a wild.
func (g *Game) ActiveColor() Color { return g.activeColor }

// Hand returns a copy of the seat's cards, index-aligned with play commands.
func (g *Game) Hand(seat int) []Card {
	if seat < 0 || seat >= len(g.hands) {
		return nil
	}
	out := make([]Card, len(g.hands[seat]))
	copy(out, g.hands[seat])
	return out
}

// Winner reports the seat that emptied its hand, once there is one.
func (g *Game) Winner() (int, bool) {
	return g.winner, g.winner >= 0
}

// Play discards the card at index from the seat's hand. Wilds require a
// declared color; non-wilds ignore it. The call is all-or-nothing: on
// any error the game is untouched.
func (g *Game) Play(seat, index int, declared Color) error {
	if g.winner >= 0 {
		return ErrGameOver
	}
	if seat != g.current {
		return ErrNotYourTurn
	}
	hand := g.hands[seat]
	if index < 0 || index >= len(hand) {
		return fmt.Errorf("%w: index %d with %d cards in hand", ErrNoSuchCard, index, len(hand))
	}
	card := hand[index]
	if !card.playableOn(g.TopCard(), g.activeColor) {
		return fmt.Errorf("%w: %s on %s (%s)", ErrCardNotPlayable, card, g.TopCard(), g.activeColor)
	}
	if card.IsWild() {
		if declared == NoColor {
			return ErrColorRequired
		}
	}

	g.hands[seat] = append(hand[:index:index], hand[index+1:]...)
	g.discard = append(g.discard, card)
	if card.IsWild() {
		g.activeColor = declared
	} else {
		g.activeColor = card.Color
	}

	if len(g.hands[seat]) == 0 {
		g.winner = seat
		return nil
	}

	switch card.Kind {
	case Reverse:
		g.direction = -g.direction
		if len(g.hands) == 2 {
			// With two players a reverse plays like a skip.
			g.advance()
		}
	case Skip:
		g.advance()
	case DrawTwo:
		g.advance()
		g.drawInto(g.current, 2)
	case WildDrawFour:
		g.advance()
		g.drawInto(g.current, 4)
	}
	g.advance()
	return nil
}

// Draw takes one card from the deck into the seat's hand and passes the
// turn. The drawn card is kept, never auto-played.
func (g *Game) Draw(seat int) (Card, error) {
	if g.winner >= 0 {
		return Card{}, ErrGameOver
	}
	if seat != g.current {
		return Card{}, ErrNotYourTurn
	}
	drawn, ok := g.drawOne()
	if ok {
		g.hands[seat] = append(g.hands[seat], drawn)
	}
	g.advance()
	return drawn, nil
}

func (g *Game) advance() {
	n := len(g.hands)
	g.current = (g.current + g.direction + n) % n
}

func (g *Game) drawInto(seat, n int) {
	for i := 0; i < n; i++ {
		card, ok := g.drawOne()
		if !ok {
			return
		}
		g.hands[seat] = append(g.hands[seat], card)
	}
}

// drawOne pops the deck, reshuffling the discard pile (minus its top
// card) back in when the deck runs dry. Reports false only when every
// remaining card is in hands.
func (g *Game) drawOne() (Card, bool) {
	if len(g.deck) == 0 {
		if len(g.discard) <= 1 {
			return Card{}, false
		}
		top := g.discard[len(g.discard)-1]
		g.deck = append(g.deck, g.discard[:len(g.discard)-1]...)
		g.discard = []Card{top}
		// Recycled wilds go back colorless.
		for i := range g.deck {
			if g.deck[i].IsWild() {
				g.deck[i].Color = NoColor
			}
		}
		g.rng.Shuffle(len(g.deck), func(i, j int) {
			g.deck[i], g.deck[j] = g.deck[j], g.deck[i]
		})
	}
	card := g.deck[0]
	g.deck = g.deck[1:]
	return card, true
}
