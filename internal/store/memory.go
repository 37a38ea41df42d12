package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type userRecord struct {
	passwordHash []byte
	gamesPlayed  int
	gamesWon     int
}

// MemoryStore keeps accounts and history in process memory. It backs
// tests and ephemeral runs; semantics mirror SQLiteStore.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[string]*userRecord
	history []GameRecord
	nextID  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  map[string]*userRecord{},
		nextID: 1,
	}
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[username]; ok {
		return ErrUsernameTaken
	}
	m.users[username] = &userRecord{passwordHash: hash}
	return nil
}

func (m *MemoryStore) Authenticate(ctx context.Context, username, password string) error {
	m.mu.RLock()
	user, ok := m.users[strings.TrimSpace(username)]
	m.mu.RUnlock()
	if !ok {
		return ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(user.passwordHash, []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (m *MemoryStore) RecordWin(ctx context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[username]
	if !ok {
		return ErrUnknownUser
	}
	user.gamesPlayed++
	user.gamesWon++
	m.history = append(m.history, GameRecord{
		ID:     m.nextID,
		Winner: username,
		WonAt:  time.Now().UTC(),
	})
	m.nextID++
	return nil
}

func (m *MemoryStore) HistoryOf(ctx context.Context, username string) ([]GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []GameRecord
	for _, rec := range m.history {
		if rec.Winner == username {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *MemoryStore) Leaderboard(ctx context.Context, limit int) ([]PlayerStats, error) {
	if limit <= 0 {
		limit = 10
	}
	m.mu.RLock()
	out := make([]PlayerStats, 0, len(m.users))
	for name, user := range m.users {
		out = append(out, PlayerStats{
			Username:    name,
			GamesPlayed: user.gamesPlayed,
			GamesWon:    user.gamesWon,
		})
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].GamesWon != out[j].GamesWon {
			return out[i].GamesWon > out[j].GamesWon
		}
		return out[i].Username < out[j].Username
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
