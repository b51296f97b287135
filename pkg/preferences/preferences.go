// Package preferences stores the soft scoring preferences of each chat.
package preferences

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/korjavin/maaqo/pkg/models"
	"github.com/korjavin/maaqo/pkg/storage"
)

// Service reads and writes preferences
type Service struct {
	store storage.KV
}

// New creates a new preferences service
func New(store storage.KV) *Service {
	return &Service{store: store}
}

// Key returns the storage key of a chat's preferences
func Key(chatID int64) string {
	return fmt.Sprintf("chat:%d:preferences", chatID)
}

// Get returns the chat's preferences. Unset preferences are all indifferent.
func (s *Service) Get(chatID int64) (models.Preferences, error) {
	var p models.Preferences
	err := s.store.Get(Key(chatID), &p)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Preferences{}, nil
	}
	if err != nil {
		return models.Preferences{}, fmt.Errorf("failed to load preferences: %w", err)
	}
	return p, nil
}

// Save stores the chat's preferences
func (s *Service) Save(chatID int64, p models.Preferences) error {
	if err := s.store.Set(Key(chatID), p); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// Apply parses settings like "max=30 healthy=yes cheap=any" on top of p.
// "max=off" clears the time ceiling; "any" clears a flag.
func Apply(p models.Preferences, args []string) (models.Preferences, error) {
	for _, arg := range args {
		key, value, ok := strings.Cut(strings.ToLower(arg), "=")
		if !ok {
			return p, fmt.Errorf("expected key=value, got %q", arg)
		}

		switch key {
		case "max", "time", "maxtime":
			if value == "off" || value == "any" {
				p.MaxTime = nil
				continue
			}
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return p, fmt.Errorf("max must be a positive number of minutes, got %q", value)
			}
			p.MaxTime = models.Int(n)
		case "healthy":
			b, err := ParseTriState(value)
			if err != nil {
				return p, err
			}
			p.Healthy = b
		case "cheap", "economical":
			b, err := ParseTriState(value)
			if err != nil {
				return p, err
			}
			p.Economical = b
		default:
			return p, fmt.Errorf("unknown preference %q", key)
		}
	}
	return p, nil
}

// ParseTriState maps yes/no/any to true/false/nil
func ParseTriState(value string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "true", "si", "sí", "1":
		return models.Bool(true), nil
	case "no", "n", "false", "0":
		return models.Bool(false), nil
	case "any", "off", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("expected yes, no or any, got %q", value)
	}
}
