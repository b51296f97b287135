// Package cookbook answers the application's recipe questions by loading
// the catalog, pantry, preferences and favorites and running them through
// the matching engine.
package cookbook

import (
	"fmt"

	"github.com/korjavin/maaqo/pkg/logger"
	"github.com/korjavin/maaqo/pkg/matching"
	"github.com/korjavin/maaqo/pkg/models"
)

// DefaultFeaturedLimit is the number of featured recipes when none is given
const DefaultFeaturedLimit = 6

// RecipeSource provides the catalog
type RecipeSource interface {
	List() ([]models.Recipe, error)
}

// PantrySource provides a chat's pantry
type PantrySource interface {
	List(chatID int64) ([]string, error)
}

// PreferenceSource provides a chat's preferences
type PreferenceSource interface {
	Get(chatID int64) (models.Preferences, error)
}

// FavoriteSource provides a chat's favorite recipe IDs
type FavoriteSource interface {
	List(chatID int64) ([]string, error)
}

// Service composes the sources with the matching engine
type Service struct {
	recipes     RecipeSource
	pantry      PantrySource
	preferences PreferenceSource
	favorites   FavoriteSource
	logger      *logger.Logger
}

// New creates a new cookbook service
func New(recipes RecipeSource, pantry PantrySource, preferences PreferenceSource, favorites FavoriteSource, log *logger.Logger) *Service {
	if log == nil {
		log = logger.New("cookbook")
	}
	return &Service{
		recipes:     recipes,
		pantry:      pantry,
		preferences: preferences,
		favorites:   favorites,
		logger:      log,
	}
}

type snapshot struct {
	recipes []models.Recipe
	pantry  []string
	prefs   models.Preferences
}

func (s *Service) load(chatID int64, withPrefs bool) (snapshot, error) {
	var snap snapshot

	recipes, err := s.recipes.List()
	if err != nil {
		return snap, fmt.Errorf("failed to get recipes: %w", err)
	}
	pantry, err := s.pantry.List(chatID)
	if err != nil {
		return snap, fmt.Errorf("failed to get pantry: %w", err)
	}
	snap.recipes = recipes
	snap.pantry = pantry

	if withPrefs {
		prefs, err := s.preferences.Get(chatID)
		if err != nil {
			return snap, fmt.Errorf("failed to get preferences: %w", err)
		}
		snap.prefs = prefs
	}
	return snap, nil
}

func (s *Service) favoriteSet(chatID int64) (map[string]bool, error) {
	ids, err := s.favorites.List(chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Search ranks the catalog for a query and filters. FavoritesOnly keeps only
// the chat's favorites.
func (s *Service) Search(chatID int64, query string, filters models.Filters) ([]models.RankedRecipe, error) {
	snap, err := s.load(chatID, true)
	if err != nil {
		return nil, err
	}

	results := matching.Rank(snap.recipes, snap.pantry, query, filters, snap.prefs)

	if filters.FavoritesOnly {
		favs, err := s.favoriteSet(chatID)
		if err != nil {
			return nil, err
		}
		kept := results[:0]
		for _, r := range results {
			if favs[r.ID] {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	s.logger.Debug("Search %q for chat %d returned %d recipe(s)", query, chatID, len(results))
	return results, nil
}

// AllWithStatus returns every recipe in catalog order with its status and
// preference-free score
func (s *Service) AllWithStatus(chatID int64) ([]models.RankedRecipe, error) {
	snap, err := s.load(chatID, false)
	if err != nil {
		return nil, err
	}

	out := make([]models.RankedRecipe, len(snap.recipes))
	for i, r := range snap.recipes {
		res := matching.Score(r, snap.pantry, models.Preferences{})
		out[i] = models.RankedRecipe{Recipe: r, Score: res.Score, Status: res.Status, Match: res.Match}
	}
	return out, nil
}

// Cookable returns the recipes the chat can cook right now
func (s *Service) Cookable(chatID int64) ([]models.Recipe, error) {
	snap, err := s.load(chatID, false)
	if err != nil {
		return nil, err
	}
	return matching.Cookable(snap.recipes, snap.pantry), nil
}

// AlmostCookable returns the recipes missing one or two ingredients
func (s *Service) AlmostCookable(chatID int64) ([]models.AlmostCookable, error) {
	snap, err := s.load(chatID, false)
	if err != nil {
		return nil, err
	}
	return matching.AlmostCookable(snap.recipes, snap.pantry), nil
}

// Featured returns up to limit recipes: cookable ones first, then the
// almost-cookable ones with the fewest missing ingredients.
func (s *Service) Featured(chatID int64, limit int) ([]models.Recipe, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}

	snap, err := s.load(chatID, false)
	if err != nil {
		return nil, err
	}

	cookable := matching.Cookable(snap.recipes, snap.pantry)
	if len(cookable) >= limit {
		return cookable[:limit], nil
	}

	out := cookable
	for _, item := range matching.AlmostCookable(snap.recipes, snap.pantry) {
		if len(out) == limit {
			break
		}
		out = append(out, item.Recipe)
	}
	return out, nil
}

// Details returns a recipe with its status and match. ok is false when the
// ID is not in the catalog.
func (s *Service) Details(chatID int64, recipeID string) (models.RankedRecipe, bool, error) {
	snap, err := s.load(chatID, true)
	if err != nil {
		return models.RankedRecipe{}, false, err
	}

	for _, r := range snap.recipes {
		if r.ID != recipeID {
			continue
		}
		res := matching.Score(r, snap.pantry, snap.prefs)
		return models.RankedRecipe{Recipe: r, Score: res.Score, Status: res.Status, Match: res.Match}, true, nil
	}
	return models.RankedRecipe{}, false, nil
}

// Favorites returns the chat's favorite recipes ranked by relevance
func (s *Service) Favorites(chatID int64) ([]models.RankedRecipe, error) {
	snap, err := s.load(chatID, true)
	if err != nil {
		return nil, err
	}
	favs, err := s.favoriteSet(chatID)
	if err != nil {
		return nil, err
	}

	var picked []models.Recipe
	for _, r := range snap.recipes {
		if favs[r.ID] {
			picked = append(picked, r)
		}
	}
	return matching.Rank(picked, snap.pantry, "", models.Filters{}, snap.prefs), nil
}
