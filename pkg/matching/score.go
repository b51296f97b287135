package matching

import "github.com/korjavin/maaqo/pkg/models"

// Score weights
const (
	availabilityWeight = 50.0
	cookableBonus      = 30.0
	almostBonus        = 15.0
	timeFitBonus       = 10.0
	healthyBonus       = 5.0
	economicalBonus    = 5.0
	speedWeight        = 10.0
)

// MaxScore is the highest score a recipe can get
const MaxScore = availabilityWeight + cookableBonus + timeFitBonus + healthyBonus + economicalBonus + speedWeight

// Score computes the relevance of a recipe for the pantry and preferences.
// Preferences left nil add nothing.
func Score(recipe models.Recipe, pantry []string, prefs models.Preferences) models.ScoreResult {
	return scoreSet(recipe, normalizeSet(pantry), prefs)
}

func scoreSet(recipe models.Recipe, pantry map[string]struct{}, prefs models.Preferences) models.ScoreResult {
	match := matchSet(recipe, pantry)
	status := Classify(match)

	score := match.MatchPercentage / 100 * availabilityWeight

	switch status {
	case models.StatusCookable:
		score += cookableBonus
	case models.StatusAlmostCookable:
		score += almostBonus
	}

	if maxTime, ok := timeCeiling(prefs.MaxTime); ok && recipe.Time <= maxTime {
		score += timeFitBonus
		score += (1 - float64(recipe.Time)/float64(maxTime)) * speedWeight
	}

	if prefs.Healthy != nil && *prefs.Healthy == recipe.Healthy {
		score += healthyBonus
	}

	if prefs.Economical != nil && *prefs.Economical == recipe.Economical {
		score += economicalBonus
	}

	return models.ScoreResult{
		Score:  score,
		Status: status,
		Match:  match,
	}
}

// timeCeiling reports the max-time value when it is set. Zero or negative
// ceilings count as unset.
func timeCeiling(maxTime *int) (int, bool) {
	if maxTime == nil || *maxTime <= 0 {
		return 0, false
	}
	return *maxTime, true
}
