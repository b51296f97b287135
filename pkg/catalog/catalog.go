package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/korjavin/maaqo/pkg/logger"
	"github.com/korjavin/maaqo/pkg/models"
	"github.com/korjavin/maaqo/pkg/storage"
	"github.com/korjavin/maaqo/pkg/validation"
)

const (
	recipesKey     = "catalog:recipes"
	initializedKey = "catalog:initialized"
)

// ErrDuplicate is returned when adding a recipe whose ID is taken
var ErrDuplicate = errors.New("recipe already exists")

// Service provides recipe catalog management. The catalog is stored as one
// ordered list so ranking ties keep a stable order.
type Service struct {
	store  storage.KV
	logger *logger.Logger
	mu     sync.Mutex
}

// New creates a new catalog service
func New(store storage.KV, log *logger.Logger) *Service {
	if log == nil {
		log = logger.New("catalog")
	}
	return &Service{
		store:  store,
		logger: log,
	}
}

// List returns every recipe in catalog order
func (s *Service) List() ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.store.Get(recipesKey, &recipes)
	if errors.Is(err, storage.ErrNotFound) {
		return []models.Recipe{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	return recipes, nil
}

// Get looks up a recipe by ID. ok is false when there is no such recipe.
func (s *Service) Get(id string) (models.Recipe, bool, error) {
	recipes, err := s.List()
	if err != nil {
		return models.Recipe{}, false, err
	}
	for _, r := range recipes {
		if r.ID == id {
			return r, true, nil
		}
	}
	return models.Recipe{}, false, nil
}

func (s *Service) save(recipes []models.Recipe) error {
	if err := s.store.Set(recipesKey, recipes); err != nil {
		return fmt.Errorf("failed to save recipes: %w", err)
	}
	return nil
}

// Add appends a recipe to the catalog
func (s *Service) Add(recipe models.Recipe) error {
	if err := validation.ValidateRecipe(recipe); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.List()
	if err != nil {
		return err
	}
	for _, r := range recipes {
		if r.ID == recipe.ID {
			return fmt.Errorf("%w: %s", ErrDuplicate, recipe.ID)
		}
	}

	s.logger.Info("Adding recipe %s (%s)", recipe.ID, recipe.Name)
	return s.save(append(recipes, recipe))
}

// Update replaces the recipe with the given ID, keeping its position.
// It reports false when the ID is unknown.
func (s *Service) Update(id string, recipe models.Recipe) (bool, error) {
	recipe.ID = id
	if err := validation.ValidateRecipe(recipe); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.List()
	if err != nil {
		return false, err
	}
	for i, r := range recipes {
		if r.ID == id {
			recipes[i] = recipe
			return true, s.save(recipes)
		}
	}
	return false, nil
}

// Delete removes a recipe. It reports false when the ID is unknown.
func (s *Service) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.List()
	if err != nil {
		return false, err
	}
	kept := recipes[:0]
	for _, r := range recipes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(recipes) {
		return false, nil
	}

	s.logger.Info("Deleting recipe %s", id)
	return true, s.save(kept)
}

// EnsureSeeded stores the default recipes on first run. It reports whether
// seeding happened.
func (s *Service) EnsureSeeded() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var initialized bool
	err := s.store.Get(initializedKey, &initialized)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return false, fmt.Errorf("failed to check catalog state: %w", err)
	}
	if initialized {
		return false, nil
	}

	recipes := make([]models.Recipe, 0, len(DefaultRecipes))
	for _, r := range DefaultRecipes {
		if err := validation.ValidateRecipe(r); err != nil {
			s.logger.Warn("Skipping default recipe: %v", err)
			continue
		}
		recipes = append(recipes, r)
	}

	if err := s.save(recipes); err != nil {
		return false, err
	}
	if err := s.store.Set(initializedKey, true); err != nil {
		return false, fmt.Errorf("failed to mark catalog initialized: %w", err)
	}

	s.logger.Info("Seeded catalog with %d recipes", len(recipes))
	return true, nil
}

// MergeResult counts what Merge did
type MergeResult struct {
	Added   int
	Updated int
	Skipped int
}

// Merge updates recipes whose ID is already in the catalog and appends the
// rest. Invalid recipes and repeated IDs within the batch are skipped.
func (s *Service) Merge(recipes []models.Recipe) (MergeResult, error) {
	var res MergeResult
	seen := make(map[string]bool, len(recipes))

	for _, r := range recipes {
		if err := validation.ValidateRecipe(r); err != nil {
			s.logger.Warn("Skipping recipe: %v", err)
			res.Skipped++
			continue
		}
		if seen[r.ID] {
			s.logger.Warn("Skipping repeated recipe %s", r.ID)
			res.Skipped++
			continue
		}
		seen[r.ID] = true

		updated, err := s.Update(r.ID, r)
		if err != nil {
			return res, err
		}
		if updated {
			res.Updated++
			continue
		}
		if err := s.Add(r); err != nil {
			return res, err
		}
		res.Added++
	}
	return res, nil
}

// LoadFile reads a JSON array of recipes
func LoadFile(path string) ([]models.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var recipes []models.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return recipes, nil
}
