package session

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"uno-server/internal/engine"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// fakeConn is an in-memory transport.Conn: tests push inbound lines and
// inspect everything the session wrote.
type fakeConn struct {
	in        chan string
	closed    chan struct{}
	closeOnce sync.Once

	mu  sync.Mutex
	out []string
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:     make(chan string, 64),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) send(lines ...string) {
	for _, l := range lines {
		c.in <- l
	}
}

func (c *fakeConn) ReadLine() (string, error) {
	select {
	case line := <-c.in:
		return line, nil
	case <-c.closed:
		return "", io.EOF
	}
}

func (c *fakeConn) WriteLine(text string) error {
	select {
	case <-c.closed:
		return fmt.Errorf("write on closed conn")
	default:
	}
	c.mu.Lock()
	c.out = append(c.out, text)
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) RemoteAddr() string { return "fake" }

func (c *fakeConn) lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.out))
	copy(out, c.out)
	return out
}

func (c *fakeConn) sawLine(substr string) bool {
	for _, l := range c.lines() {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func (c *fakeConn) countLine(substr string) int {
	n := 0
	for _, l := range c.lines() {
		if strings.Contains(l, substr) {
			n++
		}
	}
	return n
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// fakeEngine is a scripted rules engine: plays succeed when onApply
// allows them, and the test steers current seat, hands and winner.
type fakeEngine struct {
	mu      sync.Mutex
	seats   int
	current int
	hands   [][]string
	winner  int
	onApply func(e *fakeEngine, seat int, a engine.Action) error
}

func newFakeEngine(seats int) *fakeEngine {
	e := &fakeEngine{seats: seats, winner: -1}
	for i := 0; i < seats; i++ {
		e.hands = append(e.hands, []string{"red 1", "blue 2"})
	}
	// Default behavior: any action succeeds and passes the turn.
	e.onApply = func(e *fakeEngine, seat int, a engine.Action) error {
		e.current = (e.current + 1) % e.seats
		return nil
	}
	return e
}

func (e *fakeEngine) Seats() int { return e.seats }

func (e *fakeEngine) CurrentSeat() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

func (e *fakeEngine) Discard() string { return "red 3 (Color: red)" }

func (e *fakeEngine) Hand(seat int) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if seat < 0 || seat >= len(e.hands) {
		return nil
	}
	out := make([]string, len(e.hands[seat]))
	copy(out, e.hands[seat])
	return out
}

func (e *fakeEngine) Apply(seat int, a engine.Action) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.onApply(e, seat, a)
}

func (e *fakeEngine) Winner() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.winner, e.winner >= 0
}
