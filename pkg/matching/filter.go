package matching

import "github.com/korjavin/maaqo/pkg/models"

// Filter keeps the recipes that satisfy every set constraint. FavoritesOnly
// is left to the caller, which owns the favorites set.
func Filter(recipes []models.Recipe, filters models.Filters) []models.Recipe {
	maxTime, hasMax := timeCeiling(filters.MaxTime)
	if !hasMax && filters.Healthy == nil && filters.Economical == nil {
		return recipes
	}

	out := make([]models.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		if hasMax && recipe.Time > maxTime {
			continue
		}
		if filters.Healthy != nil && recipe.Healthy != *filters.Healthy {
			continue
		}
		if filters.Economical != nil && recipe.Economical != *filters.Economical {
			continue
		}
		out = append(out, recipe)
	}
	return out
}
