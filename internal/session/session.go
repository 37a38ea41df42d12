// Package session is the orchestrator core: it seats authenticated
// connections, serializes turn-taking against the rules engine, and
// fans state back out to every seat.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"uno-server/internal/engine"
	"uno-server/internal/store"
	"uno-server/internal/transport"
)

// State is the session-level lifecycle phase.
type State int

const (
	AwaitingSeats State = iota
	InProgress
	Finished
)

func (s State) String() string {
	switch s {
	case AwaitingSeats:
		return "awaiting_seats"
	case InProgress:
		return "in_progress"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Session runs one complete match from seat-filling to a declared
// winner. One per process.
type Session struct {
	ID     string
	logger *log.Logger
	store  store.Store
	reg    *Registry
	coord  *Coordinator
	cast   *Broadcaster

	mu      sync.Mutex
	state   State
	claimed int           // seats handed to connections, including ones still authenticating
	ready   chan struct{} // closed exactly once when the last seat registers

	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	finishOnce sync.Once
}

func New(eng engine.Engine, st store.Store, logger *log.Logger) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	reg := NewRegistry(eng.Seats())
	coord := NewCoordinator(eng)
	return &Session{
		ID:     uuid.NewString(),
		logger: logger,
		store:  st,
		reg:    reg,
		coord:  coord,
		cast:   NewBroadcaster(reg, coord, logger),
		ready:  make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// State reports the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Done closes when the session reaches Finished.
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Wait blocks until every seat's read loop has stopped.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Join runs one connection's full life: capacity check, authentication,
// seating, the start barrier, then the per-seat read loop. It blocks
// until the seat's loop ends, so callers run it on the connection's own
// goroutine.
func (s *Session) Join(c transport.Conn) {
	seat, ok := s.claimSeat()
	if !ok {
		_ = c.WriteLine("Game is full. Try again later.")
		_ = c.Close()
		s.logger.Info("connection rejected, seats full", "remote", c.RemoteAddr())
		return
	}

	identity, err := s.authenticate(c)
	if err != nil {
		// The seat stays claimed: mid-auth disconnects do not reopen
		// seating, matching the no-reconnection policy.
		s.logger.Warn("authentication aborted", "seat", seat, "err", err)
		_ = c.Close()
		return
	}
	if err := s.reg.Register(seat, c, identity); err != nil {
		s.logger.Error("seat registration failed", "seat", seat, "user", identity, "err", err)
		_ = c.Close()
		return
	}
	s.logger.Info("seat registered", "seat", seat, "user", identity)

	if s.lastSeatIn() {
		s.cast.BroadcastAll("Game is starting!", NoExclude)
		s.cast.BroadcastState()
	}

	select {
	case <-s.ready:
	case <-s.ctx.Done():
		return
	}

	s.wg.Add(1)
	defer s.wg.Done()
	s.readLoop(seat, c, identity)
}

// claimSeat hands out the next free seat index, or reports that the
// session is full (or already past seating).
func (s *Session) claimSeat() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != AwaitingSeats || s.claimed >= s.reg.Capacity() {
		return 0, false
	}
	seat := s.claimed
	s.claimed++
	return seat, true
}

// lastSeatIn flips AwaitingSeats to InProgress when the final seat has
// registered. The transition fires exactly once: the check and the
// close of the barrier channel happen under one mutex.
func (s *Session) lastSeatIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != AwaitingSeats || s.reg.Registered() < s.reg.Capacity() {
		return false
	}
	s.state = InProgress
	close(s.ready)
	s.logger.Info("all seats filled, match starting", "session", s.ID, "seats", s.reg.Capacity())
	return true
}

// readLoop feeds one seat's inbound lines to the coordinator until the
// connection drops or the session finishes. One seat's exit never tears
// down the others.
func (s *Session) readLoop(seat int, c transport.Conn, identity string) {
	for {
		if s.ctx.Err() != nil {
			return
		}
		line, err := c.ReadLine()
		if err != nil {
			if s.ctx.Err() == nil {
				s.logger.Info("player disconnected", "seat", seat, "user", identity, "err", err)
			}
			_ = c.Close()
			return
		}
		s.logger.Debug("received", "seat", seat, "user", identity, "line", line)

		reply, broadcast := s.coord.Handle(seat, line)
		if reply != "" {
			s.cast.SendPrivate(seat, reply)
		}
		if broadcast != "" {
			s.cast.BroadcastAll(broadcast, seat)
		}

		if winner, ok := s.coord.Winner(); ok {
			s.finish(winner)
			return
		}
		if broadcast != "" {
			// Successful action: everyone sees the new state.
			s.cast.BroadcastState()
		}
	}
}

// finish announces the winner once, persists the result once, and stops
// every read loop.
func (s *Session) finish(winnerSeat int) {
	s.finishOnce.Do(func() {
		s.mu.Lock()
		s.state = Finished
		s.mu.Unlock()

		winner, err := s.reg.Identity(winnerSeat)
		if err != nil {
			s.logger.Error("winner seat has no identity", "seat", winnerSeat, "err", err)
			winner = fmt.Sprintf("seat %d", winnerSeat)
		}
		s.cast.BroadcastAll(fmt.Sprintf("%s wins!", winner), NoExclude)
		s.logger.Info("match finished", "session", s.ID, "winner", winner)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.RecordWin(ctx, winner); err != nil {
			s.logger.Error("recording win failed", "winner", winner, "err", err)
		}

		s.cancel()
		s.reg.Each(func(seat int, c transport.Conn, identity string) {
			_ = c.Close()
		})
	})
}
