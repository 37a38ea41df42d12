// Package transport frames the wire protocol: one logical text message
// per line. Fixed-size raw reads are deliberately avoided — a read
// never merges or splits messages across the peer's boundary.
package transport

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
)

// Conn is one participant's message stream. ReadLine blocks until a
// full message arrives; WriteLine is safe for concurrent use, since
// replies and broadcasts come from different goroutines.
type Conn interface {
	ReadLine() (string, error)
	WriteLine(text string) error
	Close() error
	RemoteAddr() string
}

// lineConn frames messages over a byte stream with newline delimiters.
type lineConn struct {
	conn    net.Conn
	scanner *bufio.Scanner

	writeMu sync.Mutex
}

// NewLineConn wraps a net.Conn in newline-delimited framing.
func NewLineConn(c net.Conn) Conn {
	return &lineConn{
		conn:    c,
		scanner: bufio.NewScanner(c),
	}
}

func (l *lineConn) ReadLine() (string, error) {
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(l.scanner.Text(), "\r"), nil
}

func (l *lineConn) WriteLine(text string) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	_, err := fmt.Fprintf(l.conn, "%s\n", text)
	return err
}

func (l *lineConn) Close() error {
	return l.conn.Close()
}

func (l *lineConn) RemoteAddr() string {
	return l.conn.RemoteAddr().String()
}
