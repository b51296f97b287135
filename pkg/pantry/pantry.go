package pantry

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/korjavin/maaqo/pkg/logger"
	"github.com/korjavin/maaqo/pkg/matching"
	"github.com/korjavin/maaqo/pkg/models"
	"github.com/korjavin/maaqo/pkg/storage"
)

// Service provides pantry management functionality
type Service struct {
	store  storage.KV
	logger *logger.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// New creates a new pantry service
func New(store storage.KV, log *logger.Logger) *Service {
	if log == nil {
		log = logger.New("pantry")
	}
	return &Service{
		store:  store,
		logger: log,
		now:    time.Now,
	}
}

// Key returns the storage key of a chat's pantry
func Key(chatID int64) string {
	return fmt.Sprintf("chat:%d:pantry", chatID)
}

// Get retrieves the pantry for a chat. A chat without one gets an empty pantry.
func (s *Service) Get(chatID int64) (*models.Pantry, error) {
	var p models.Pantry
	err := s.store.Get(Key(chatID), &p)
	if errors.Is(err, storage.ErrNotFound) {
		return &models.Pantry{ChatID: chatID, Ingredients: []string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pantry: %w", err)
	}
	if p.Ingredients == nil {
		p.Ingredients = []string{}
	}
	return &p, nil
}

// List returns the ingredient names in the chat's pantry
func (s *Service) List(chatID int64) ([]string, error) {
	p, err := s.Get(chatID)
	if err != nil {
		return nil, err
	}
	return p.Ingredients, nil
}

// Add adds ingredients to the pantry and returns the ones that were new.
// Names are lowercased and trimmed; entries equal after normalization are
// skipped.
func (s *Service) Add(chatID int64, names ...string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.Get(chatID)
	if err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(p.Ingredients))
	for _, ing := range p.Ingredients {
		have[matching.Normalize(ing)] = true
	}

	var added []string
	for _, name := range names {
		name = clean(name)
		key := matching.Normalize(name)
		if key == "" || have[key] {
			continue
		}
		have[key] = true
		p.Ingredients = append(p.Ingredients, name)
		added = append(added, name)
	}

	if len(added) == 0 {
		return nil, nil
	}

	s.logger.Debug("Adding %d ingredient(s) to pantry of chat %d", len(added), chatID)
	return added, s.save(p)
}

// Remove removes ingredients from the pantry and returns the ones that were there
func (s *Service) Remove(chatID int64, names ...string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.Get(chatID)
	if err != nil {
		return nil, err
	}

	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[matching.Normalize(name)] = true
	}

	kept := make([]string, 0, len(p.Ingredients))
	var removed []string
	for _, ing := range p.Ingredients {
		if drop[matching.Normalize(ing)] {
			removed = append(removed, ing)
			continue
		}
		kept = append(kept, ing)
	}

	if len(removed) == 0 {
		return nil, nil
	}

	p.Ingredients = kept
	return removed, s.save(p)
}

// Clear empties the chat's pantry
func (s *Service) Clear(chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(Key(chatID)); err != nil {
		return fmt.Errorf("failed to clear pantry: %w", err)
	}
	return nil
}

func (s *Service) save(p *models.Pantry) error {
	p.LastUpdated = s.now()
	if err := s.store.Set(Key(p.ChatID), p); err != nil {
		return fmt.Errorf("failed to save pantry: %w", err)
	}
	return nil
}

// clean lowercases and trims a name the way it is stored
func clean(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseList splits free text such as "arroz, pollo\nsal" into ingredient names
func ParseList(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';' || r == '\t'
	})

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimLeft(p, "-*• ")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
