package messages

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/korjavin/maaqo/pkg/logger"
	"github.com/korjavin/maaqo/pkg/models"
)

type stubGenerator struct {
	msg string
	err error
}

func (s stubGenerator) GenerateChatMessage(ctx context.Context, intent string, data map[string]interface{}) (string, error) {
	return s.msg, s.err
}

func TestWelcomeMessage(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		gen  ChatGenerator
		want string
	}{
		{"no generator", nil, "Welcome to Maaqo"},
		{"generator ok", stubGenerator{msg: "¡Hola cocinero!"}, "¡Hola cocinero!"},
		{"generator fails", stubGenerator{err: errors.New("down")}, "Welcome to Maaqo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.gen, logger.Discard()).GenerateWelcomeMessage(ctx)
			if !strings.Contains(got, tt.want) {
				t.Fatalf("welcome %q does not contain %q", got, tt.want)
			}
			if !strings.Contains(got, "/pantry") {
				t.Fatal("welcome should list commands")
			}
		})
	}
}

func TestFormatDetails(t *testing.T) {
	r := models.RankedRecipe{
		Recipe: models.Recipe{
			ID:          "ceviche",
			Name:        "Ceviche",
			Ingredients: []string{"pescado", "limón"},
			Time:        25,
			Healthy:     true,
			Steps:       []string{"Cortar", "Mezclar"},
		},
		Status: models.StatusAlmostCookable,
		Match: models.IngredientMatch{
			AvailableCount: 1, TotalCount: 2, MissingCount: 1,
			MatchPercentage: 50, MissingIngredients: []string{"limon"},
		},
	}

	got := FormatDetails(r, true)
	for _, want := range []string{"🟡 Ceviche ⭐", "25 minutes", "healthy", "1 / 2", "Missing 1: limon", "• pescado", "2. Mezclar"} {
		if !strings.Contains(got, want) {
			t.Errorf("details missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "economical") {
		t.Errorf("details should not claim economical:\n%s", got)
	}
}

func TestFormatLists(t *testing.T) {
	if got := FormatPantry(nil); !strings.Contains(got, "empty") {
		t.Errorf("empty pantry text: %q", got)
	}
	if got := FormatPantry([]string{"sal"}); !strings.Contains(got, "• sal") {
		t.Errorf("pantry text: %q", got)
	}

	ranked := []models.RankedRecipe{{
		Recipe: models.Recipe{ID: "huevos", Name: "Huevos", Time: 10},
		Score:  80, Status: models.StatusCookable,
		Match:  models.IngredientMatch{MatchPercentage: 100},
	}}
	if got := FormatRanked("Results:", ranked); !strings.Contains(got, "1. ✅ Huevos (10 min) – 100% · score 80.0 [huevos]") {
		t.Errorf("ranked text: %q", got)
	}

	almost := []models.AlmostCookable{{
		Recipe: models.Recipe{ID: "chaufa", Name: "Chaufa"},
		Match:  models.IngredientMatch{MissingIngredients: []string{"sillao", "cebolla china"}},
	}}
	if got := FormatAlmost(almost); !strings.Contains(got, "missing sillao, cebolla china") {
		t.Errorf("almost text: %q", got)
	}

	catalog := []models.RankedRecipe{{
		Recipe: models.Recipe{ID: "causa", Name: "Causa"},
		Status: models.StatusSuggested,
		Match:  models.IngredientMatch{AvailableCount: 1, TotalCount: 5},
	}}
	if got := FormatCatalog(catalog); !strings.Contains(got, "💡 Causa – 1/5 [causa]") {
		t.Errorf("catalog text: %q", got)
	}
	if got := FormatCatalog(nil); !strings.Contains(got, "catalog is empty") {
		t.Errorf("empty catalog text: %q", got)
	}

	prefs := models.Preferences{MaxTime: models.Int(30), Healthy: models.Bool(false)}
	got := FormatPreferences(prefs)
	for _, want := range []string{"max time: 30 min", "healthy: no", "economical: any"} {
		if !strings.Contains(got, want) {
			t.Errorf("preferences missing %q: %q", want, got)
		}
	}
}
