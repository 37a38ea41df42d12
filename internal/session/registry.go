package session

import (
	"errors"
	"sync"

	"uno-server/internal/transport"
)

var (
	ErrSeatTaken   = errors.New("seat already taken")
	ErrUnknownSeat = errors.New("unknown seat")
)

type seatEntry struct {
	conn     transport.Conn
	identity string
	occupied bool
}

// Registry is the single source of truth for who is seated where. It
// guards only its own map; it never touches the network or the engine.
type Registry struct {
	mu    sync.RWMutex
	seats []seatEntry
}

func NewRegistry(seats int) *Registry {
	return &Registry{seats: make([]seatEntry, seats)}
}

// Capacity is the fixed number of seats in the session.
func (r *Registry) Capacity() int {
	return len(r.seats)
}

// Registered counts seats holding an authenticated connection.
func (r *Registry) Registered() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, e := range r.seats {
		if e.occupied {
			n++
		}
	}
	return n
}

func (r *Registry) Register(seat int, c transport.Conn, identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seat < 0 || seat >= len(r.seats) {
		return ErrUnknownSeat
	}
	if r.seats[seat].occupied {
		return ErrSeatTaken
	}
	r.seats[seat] = seatEntry{conn: c, identity: identity, occupied: true}
	return nil
}

func (r *Registry) Conn(seat int) (transport.Conn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if seat < 0 || seat >= len(r.seats) || !r.seats[seat].occupied {
		return nil, ErrUnknownSeat
	}
	return r.seats[seat].conn, nil
}

func (r *Registry) Identity(seat int) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if seat < 0 || seat >= len(r.seats) || !r.seats[seat].occupied {
		return "", ErrUnknownSeat
	}
	return r.seats[seat].identity, nil
}

// Each visits every occupied seat in ascending order with a snapshot of
// its binding.
func (r *Registry) Each(fn func(seat int, c transport.Conn, identity string)) {
	r.mu.RLock()
	snapshot := make([]seatEntry, len(r.seats))
	copy(snapshot, r.seats)
	r.mu.RUnlock()
	for seat, e := range snapshot {
		if e.occupied {
			fn(seat, e.conn, e.identity)
		}
	}
}
