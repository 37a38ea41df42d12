// Package store is the account gateway: credentials, win counters and
// match history. The session orchestrator only calls it; it never
// reaches back into match state.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownUser        = errors.New("unknown user")
)

// GameRecord is one row of a player's win history.
type GameRecord struct {
	ID     int64     `json:"id"`
	Winner string    `json:"winner"`
	WonAt  time.Time `json:"wonAt"`
}

// PlayerStats is the per-user counter pair kept alongside credentials.
type PlayerStats struct {
	Username    string `json:"username"`
	GamesPlayed int    `json:"gamesPlayed"`
	GamesWon    int    `json:"gamesWon"`
}

type Store interface {
	// Register creates a user; ErrUsernameTaken when the name is in use.
	Register(ctx context.Context, username, password string) error
	// Authenticate checks credentials; ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, username, password string) error
	// RecordWin bumps games_played and games_won and appends a history
	// row, atomically.
	RecordWin(ctx context.Context, username string) error
	HistoryOf(ctx context.Context, username string) ([]GameRecord, error)
	Leaderboard(ctx context.Context, limit int) ([]PlayerStats, error)
	Close() error
}
