package matching

import "github.com/korjavin/maaqo/pkg/models"

// Match computes how many of the recipe's ingredients are in the pantry.
// Duplicate ingredients in the recipe each count on their own. A recipe
// with no ingredients matches 0%.
func Match(recipe models.Recipe, pantry []string) models.IngredientMatch {
	return matchSet(recipe, normalizeSet(pantry))
}

func matchSet(recipe models.Recipe, pantry map[string]struct{}) models.IngredientMatch {
	total := len(recipe.Ingredients)
	missing := make([]string, 0, total)
	available := 0

	for _, ingredient := range recipe.Ingredients {
		name := Normalize(ingredient)
		if _, ok := pantry[name]; ok {
			available++
			continue
		}
		missing = append(missing, name)
	}

	var pct float64
	if total > 0 {
		pct = float64(available) / float64(total) * 100
	}

	return models.IngredientMatch{
		AvailableCount:     available,
		TotalCount:         total,
		MissingCount:       total - available,
		MatchPercentage:    pct,
		MissingIngredients: missing,
	}
}

// Classify maps a match to a cookability status
func Classify(match models.IngredientMatch) models.Status {
	switch {
	case match.TotalCount == 0:
		return models.StatusSuggested
	case match.MissingCount == 0:
		return models.StatusCookable
	case match.MissingCount <= 2:
		return models.StatusAlmostCookable
	default:
		return models.StatusSuggested
	}
}

// StatusOf returns the cookability status of a recipe against the pantry
func StatusOf(recipe models.Recipe, pantry []string) models.Status {
	return Classify(Match(recipe, pantry))
}
