package session

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"uno-server/internal/transport"
)

// NoExclude broadcasts to every seat.
const NoExclude = -1

// Broadcaster fans messages out to registered seats. A broken
// connection is logged and skipped; one dead seat never stalls or
// aborts delivery to the rest.
type Broadcaster struct {
	reg    *Registry
	coord  *Coordinator
	logger *log.Logger
}

func NewBroadcaster(reg *Registry, coord *Coordinator, logger *log.Logger) *Broadcaster {
	return &Broadcaster{reg: reg, coord: coord, logger: logger}
}

// BroadcastAll sends text to every registered seat except excluding
// (NoExclude for none).
func (b *Broadcaster) BroadcastAll(text string, excluding int) {
	b.reg.Each(func(seat int, c transport.Conn, identity string) {
		if seat == excluding {
			return
		}
		if err := c.WriteLine(text); err != nil {
			b.logger.Warn("broadcast send failed", "seat", seat, "user", identity, "err", err)
		}
	})
}

// SendPrivate sends text to one seat.
func (b *Broadcaster) SendPrivate(seat int, text string) {
	c, err := b.reg.Conn(seat)
	if err != nil {
		b.logger.Warn("private send to unknown seat", "seat", seat)
		return
	}
	if err := c.WriteLine(text); err != nil {
		identity, _ := b.reg.Identity(seat)
		b.logger.Warn("private send failed", "seat", seat, "user", identity, "err", err)
	}
}

// BroadcastState sends each seat its own hand, then the shared discard
// description and the turn announcement to everyone.
func (b *Broadcaster) BroadcastState() {
	snap := b.coord.Snapshot()
	b.reg.Each(func(seat int, c transport.Conn, identity string) {
		if seat >= len(snap.Hands) {
			return
		}
		hand := strings.Join(snap.Hands[seat], ", ")
		if err := c.WriteLine(fmt.Sprintf("Your hand (%s): %s", identity, hand)); err != nil {
			b.logger.Warn("hand send failed", "seat", seat, "user", identity, "err", err)
		}
	})
	b.BroadcastAll(fmt.Sprintf("Current card: %s", snap.Discard), NoExclude)
	current, err := b.reg.Identity(snap.Current)
	if err != nil {
		current = fmt.Sprintf("seat %d", snap.Current)
	}
	b.BroadcastAll(fmt.Sprintf("It's %s's turn!", current), NoExclude)
}
