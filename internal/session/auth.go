package session

import (
	"errors"
	"fmt"
	"strings"

	"uno-server/internal/store"
	"uno-server/internal/transport"
)

// authenticate runs the single-exchange login/register dialogue for one
// connection and returns the bound identity. Wrong credentials and
// taken usernames re-prompt; only transport failures end the dialogue.
func (s *Session) authenticate(c transport.Conn) (string, error) {
	for {
		if err := c.WriteLine("Do you want to login or register? (login/register):"); err != nil {
			return "", err
		}
		choice, err := c.ReadLine()
		if err != nil {
			return "", err
		}

		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "login":
			username, password, err := s.promptCredentials(c, "Enter username:", "Enter password:")
			if err != nil {
				return "", err
			}
			authErr := s.store.Authenticate(s.ctx, username, password)
			switch {
			case authErr == nil:
				if err := c.WriteLine(fmt.Sprintf("Welcome back, %s! Here is your game history:", username)); err != nil {
					return "", err
				}
				if err := s.sendHistory(c, username); err != nil {
					return "", err
				}
				return username, nil
			case errors.Is(authErr, store.ErrInvalidCredentials):
				if err := c.WriteLine("Invalid credentials. Try again."); err != nil {
					return "", err
				}
			default:
				return "", fmt.Errorf("authenticate %s: %w", username, authErr)
			}

		case "register":
			username, password, err := s.promptCredentials(c, "Enter a new username:", "Enter a new password:")
			if err != nil {
				return "", err
			}
			regErr := s.store.Register(s.ctx, username, password)
			switch {
			case regErr == nil:
				if err := c.WriteLine(fmt.Sprintf("Registration successful! Welcome, %s.", username)); err != nil {
					return "", err
				}
				return username, nil
			case errors.Is(regErr, store.ErrUsernameTaken):
				if err := c.WriteLine("Username already exists. Try again."); err != nil {
					return "", err
				}
			default:
				return "", fmt.Errorf("register %s: %w", username, regErr)
			}
		}
	}
}

func (s *Session) promptCredentials(c transport.Conn, userPrompt, passPrompt string) (username, password string, err error) {
	if err = c.WriteLine(userPrompt); err != nil {
		return "", "", err
	}
	if username, err = c.ReadLine(); err != nil {
		return "", "", err
	}
	if err = c.WriteLine(passPrompt); err != nil {
		return "", "", err
	}
	if password, err = c.ReadLine(); err != nil {
		return "", "", err
	}
	return strings.TrimSpace(username), strings.TrimSpace(password), nil
}

func (s *Session) sendHistory(c transport.Conn, username string) error {
	records, err := s.store.HistoryOf(s.ctx, username)
	if err != nil {
		s.logger.Error("loading history failed", "user", username, "err", err)
		records = nil
	}
	if len(records) == 0 {
		return c.WriteLine("No games won yet.")
	}
	for _, rec := range records {
		line := fmt.Sprintf("Game ID: %d, Won on: %s", rec.ID, rec.WonAt.Format("2006-01-02 15:04:05"))
		if err := c.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}
