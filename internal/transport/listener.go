package transport

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/charmbracelet/log"
)

// Handler consumes one accepted connection. It owns the Conn and runs
// on its own goroutine.
type Handler func(Conn)

// ListenAndServe accepts TCP connections on addr and hands each one,
// line-framed, to handle. It returns when ctx is cancelled or the
// listener fails.
func ListenAndServe(ctx context.Context, addr string, logger *log.Logger, handle Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()
	logger.Info("accepting connections", "addr", addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		logger.Info("connection accepted", "remote", conn.RemoteAddr())
		go handle(NewLineConn(conn))
	}
}
