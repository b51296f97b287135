package models

import "time"

// Recipe is a catalog entry
type Recipe struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Time        int      `json:"time" validate:"gte=0"` // minutes
	Healthy     bool     `json:"healthy"`
	Economical  bool     `json:"economical"`

	Description string   `json:"description,omitempty"`
	Steps       []string `json:"steps,omitempty"`
	Servings    int      `json:"servings,omitempty" validate:"gte=0"`
}

// Status is the cookability label of a recipe against a pantry
type Status string

const (
	// StatusCookable means every ingredient is in the pantry
	StatusCookable Status = "cookable"
	// StatusAlmostCookable means one or two ingredients are missing
	StatusAlmostCookable Status = "almost_cookable"
	// StatusSuggested means three or more ingredients are missing
	StatusSuggested Status = "suggested"
)

// Rank orders statuses for tie-breaking: cookable > almost_cookable > suggested
func (s Status) Rank() int {
	switch s {
	case StatusCookable:
		return 3
	case StatusAlmostCookable:
		return 2
	case StatusSuggested:
		return 1
	default:
		return 0
	}
}

// Preferences are soft scoring biases. Nil fields are indifferent.
type Preferences struct {
	MaxTime    *int  `json:"max_time,omitempty"`
	Healthy    *bool `json:"healthy,omitempty"`
	Economical *bool `json:"economical,omitempty"`
}

// Filters are hard per-query constraints. Nil fields are unconstrained.
type Filters struct {
	MaxTime       *int  `json:"max_time,omitempty"`
	Healthy       *bool `json:"healthy,omitempty"`
	Economical    *bool `json:"economical,omitempty"`
	FavoritesOnly bool  `json:"favorites_only,omitempty"`
}

// IngredientMatch is the overlap between a recipe and a pantry
type IngredientMatch struct {
	AvailableCount     int      `json:"available_count"`
	TotalCount         int      `json:"total_count"`
	MissingCount       int      `json:"missing_count"`
	MatchPercentage    float64  `json:"match_percentage"`
	MissingIngredients []string `json:"missing_ingredients"`
}

// ScoreResult is a recipe's relevance under a pantry and preferences
type ScoreResult struct {
	Score  float64         `json:"score"`
	Status Status          `json:"status"`
	Match  IngredientMatch `json:"match"`
}

// RankedRecipe is a recipe merged with its score, status and match
type RankedRecipe struct {
	Recipe
	Score  float64         `json:"score"`
	Status Status          `json:"status"`
	Match  IngredientMatch `json:"match"`
}

// AlmostCookable is an entry of the almost-cookable list
type AlmostCookable struct {
	Recipe Recipe          `json:"recipe"`
	Status Status          `json:"status"`
	Match  IngredientMatch `json:"match"`
}

// Int returns a pointer to v. Used to fill optional preference fields.
func Int(v int) *int { return &v }

// Bool returns a pointer to v
func Bool(v bool) *bool { return &v }

// Pantry is a chat's stored ingredient list
type Pantry struct {
	ChatID      int64     `json:"chat_id"`
	Ingredients []string  `json:"ingredients"`
	LastUpdated time.Time `json:"last_updated"`
}
