package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/korjavin/maaqo/pkg/matching"
	"github.com/korjavin/maaqo/pkg/models"
)

// Drafter produces a recipe draft for a dish name, usually through an LLM
type Drafter interface {
	DraftRecipe(ctx context.Context, dishName string) (*models.Recipe, error)
}

// Importer adds drafted recipes to the catalog
type Importer struct {
	catalog *Service
	drafter Drafter
}

// NewImporter creates an importer writing into catalog
func NewImporter(catalog *Service, drafter Drafter) *Importer {
	return &Importer{catalog: catalog, drafter: drafter}
}

// Import drafts a recipe for dishName, assigns it a fresh ID, cleans the
// ingredient list and adds it to the catalog.
func (i *Importer) Import(ctx context.Context, dishName string) (models.Recipe, error) {
	dishName = strings.TrimSpace(dishName)
	if dishName == "" {
		return models.Recipe{}, fmt.Errorf("dish name is required")
	}

	draft, err := i.drafter.DraftRecipe(ctx, dishName)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("failed to draft recipe %q: %w", dishName, err)
	}

	recipe := *draft
	recipe.ID = uuid.NewString()
	if strings.TrimSpace(recipe.Name) == "" {
		recipe.Name = dishName
	}
	recipe.Ingredients = dedupeIngredients(recipe.Ingredients)
	if recipe.Time < 0 {
		recipe.Time = 0
	}

	if err := i.catalog.Add(recipe); err != nil {
		return models.Recipe{}, err
	}

	i.catalog.logger.Info("Imported recipe %s as %s", recipe.Name, recipe.ID)
	return recipe, nil
}

// dedupeIngredients drops blank entries and repeats that normalize equal
func dedupeIngredients(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, ing := range in {
		ing = strings.TrimSpace(ing)
		key := matching.Normalize(ing)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ing)
	}
	return out
}
