package matching

import (
	"strings"

	"github.com/korjavin/maaqo/pkg/models"
)

// Search keeps the recipes whose name contains the whole query, or where
// every query word appears in the name or in one of the ingredients.
// A blank query returns recipes as is. Input order is preserved.
func Search(query string, recipes []models.Recipe) []models.Recipe {
	if strings.TrimSpace(query) == "" {
		return recipes
	}

	q := Normalize(query)
	words := strings.Fields(q)

	out := make([]models.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		if matchesQuery(recipe, q, words) {
			out = append(out, recipe)
		}
	}
	return out
}

func matchesQuery(recipe models.Recipe, query string, words []string) bool {
	name := Normalize(recipe.Name)
	if strings.Contains(name, query) {
		return true
	}

	ingredients := make([]string, len(recipe.Ingredients))
	for i, ingredient := range recipe.Ingredients {
		ingredients[i] = Normalize(ingredient)
	}

	for _, word := range words {
		if strings.Contains(name, word) {
			continue
		}
		found := false
		for _, ingredient := range ingredients {
			if strings.Contains(ingredient, word) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
