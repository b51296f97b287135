package favorites

import (
	"errors"
	"fmt"
	"sync"

	"github.com/korjavin/maaqo/pkg/logger"
	"github.com/korjavin/maaqo/pkg/storage"
)

// Service keeps each chat's favorite recipe IDs
type Service struct {
	store  storage.KV
	logger *logger.Logger
	mu     sync.Mutex
}

// New creates a new favorites service
func New(store storage.KV, log *logger.Logger) *Service {
	if log == nil {
		log = logger.New("favorites")
	}
	return &Service{
		store:  store,
		logger: log,
	}
}

// Key returns the storage key of a chat's favorites
func Key(chatID int64) string {
	return fmt.Sprintf("chat:%d:favorites", chatID)
}

// List returns the favorite recipe IDs in the order they were added
func (s *Service) List(chatID int64) ([]string, error) {
	var ids []string
	err := s.store.Get(Key(chatID), &ids)
	if errors.Is(err, storage.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Set returns the favorites as a membership set
func (s *Service) Set(chatID int64) (map[string]bool, error) {
	ids, err := s.List(chatID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Add marks a recipe as favorite. It reports false if it already was.
func (s *Service) Add(chatID int64, recipeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.List(chatID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == recipeID {
			return false, nil
		}
	}

	if err := s.store.Set(Key(chatID), append(ids, recipeID)); err != nil {
		s.logger.Error("Failed to save favorites for chat %d: %v", chatID, err)
		return false, fmt.Errorf("failed to save favorites: %w", err)
	}
	return true, nil
}

// Remove unmarks a recipe. It reports false if it was not a favorite.
func (s *Service) Remove(chatID int64, recipeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.List(chatID)
	if err != nil {
		return false, err
	}

	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != recipeID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(ids) {
		return false, nil
	}

	if err := s.store.Set(Key(chatID), kept); err != nil {
		return false, fmt.Errorf("failed to save favorites: %w", err)
	}
	return true, nil
}

// IsFavorite reports whether the recipe is a favorite of the chat
func (s *Service) IsFavorite(chatID int64, recipeID string) (bool, error) {
	set, err := s.Set(chatID)
	if err != nil {
		return false, err
	}
	return set[recipeID], nil
}
