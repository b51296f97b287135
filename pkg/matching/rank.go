package matching

import (
	"sort"

	"github.com/korjavin/maaqo/pkg/models"
)

// Rank searches, filters, scores and sorts the catalog.
//
// Results are ordered by score (descending), then status (cookable first),
// then preparation time (ascending). The sort is stable, so recipes equal on
// all three keys keep their catalog order.
func Rank(recipes []models.Recipe, pantry []string, query string, filters models.Filters, prefs models.Preferences) []models.RankedRecipe {
	results := Search(query, recipes)
	results = Filter(results, filters)
	return SortByRelevance(results, pantry, prefs)
}

// SortByRelevance scores every recipe and sorts them the way Rank does
func SortByRelevance(recipes []models.Recipe, pantry []string, prefs models.Preferences) []models.RankedRecipe {
	set := normalizeSet(pantry)

	ranked := make([]models.RankedRecipe, len(recipes))
	for i, recipe := range recipes {
		res := scoreSet(recipe, set, prefs)
		ranked[i] = models.RankedRecipe{
			Recipe: recipe,
			Score:  res.Score,
			Status: res.Status,
			Match:  res.Match,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Status.Rank() != b.Status.Rank() {
			return a.Status.Rank() > b.Status.Rank()
		}
		return a.Time < b.Time
	})

	return ranked
}

// Cookable returns the recipes that can be cooked with the pantry, in catalog order
func Cookable(recipes []models.Recipe, pantry []string) []models.Recipe {
	set := normalizeSet(pantry)

	out := make([]models.Recipe, 0)
	for _, recipe := range recipes {
		if Classify(matchSet(recipe, set)) == models.StatusCookable {
			out = append(out, recipe)
		}
	}
	return out
}

// AlmostCookable returns the recipes missing one or two ingredients, fewest
// missing first. Equal counts keep catalog order.
func AlmostCookable(recipes []models.Recipe, pantry []string) []models.AlmostCookable {
	set := normalizeSet(pantry)

	out := make([]models.AlmostCookable, 0)
	for _, recipe := range recipes {
		match := matchSet(recipe, set)
		status := Classify(match)
		if status != models.StatusAlmostCookable {
			continue
		}
		out = append(out, models.AlmostCookable{
			Recipe: recipe,
			Status: status,
			Match:  match,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Match.MissingCount < out[j].Match.MissingCount
	})

	return out
}
