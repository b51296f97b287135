package messages

import (
	"context"
	"fmt"
	"strings"

	"github.com/korjavin/maaqo/pkg/logger"
	"github.com/korjavin/maaqo/pkg/models"
)

// ChatGenerator writes free-form chat messages, usually through an LLM
type ChatGenerator interface {
	GenerateChatMessage(ctx context.Context, intent string, contextData map[string]interface{}) (string, error)
}

// Service provides message generation functionality
type Service struct {
	generator ChatGenerator
	logger    *logger.Logger
}

// New creates a new message service. generator may be nil, in which case
// the built-in texts are used.
func New(generator ChatGenerator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.New("messages")
	}
	return &Service{
		generator: generator,
		logger:    log,
	}
}

const welcomeFallback = "👋 Welcome to Maaqo! Tell me what's in your pantry and I'll tell you what you can cook.\n\n"

// GenerateWelcomeMessage generates a welcome message followed by the command list
func (s *Service) GenerateWelcomeMessage(ctx context.Context) string {
	if s.generator == nil {
		return welcomeFallback + Help()
	}
	msg, err := s.generator.GenerateChatMessage(ctx, "welcome", map[string]interface{}{
		"purpose": "Help people cook with the ingredients they already have in their pantry",
	})
	if err != nil || strings.TrimSpace(msg) == "" {
		s.logger.Error("Failed to generate welcome message: %v", err)
		return welcomeFallback + Help()
	}
	return msg + "\n\n" + Help()
}

// GenerateErrorMessage generates an error message
func (s *Service) GenerateErrorMessage(action string) string {
	return fmt.Sprintf("😢 Sorry, I couldn't %s. Please try again in a moment.", action)
}

// Help lists the commands
func Help() string {
	return strings.Join([]string{
		"Commands:",
		"/pantry – show your pantry",
		"/add arroz, pollo – add ingredients (or /add and send a list)",
		"/remove sal – remove ingredients",
		"/clear – empty the pantry",
		"/cook – recipes you can cook now",
		"/almost – recipes missing 1 or 2 ingredients",
		"/featured – a few picks for you",
		"/recipes – every recipe and how close you are",
		"/search pollo arroz --max=30 --healthy --cheap --fav – search recipes",
		"/recipe <id> – recipe details",
		"/fav <id>, /unfav <id>, /favorites – manage favorites",
		"/prefs max=30 healthy=yes cheap=any – scoring preferences",
		"/import <dish> – add a recipe to the catalog",
	}, "\n")
}

// FormatPantry renders the pantry contents
func FormatPantry(ingredients []string) string {
	if len(ingredients) == 0 {
		return "Your pantry is empty! Add ingredients with /add arroz, pollo, sal."
	}
	return "🧺 Your pantry:\n" + formatIngredients(ingredients)
}

// FormatRanked renders a ranked result list
func FormatRanked(title string, recipes []models.RankedRecipe) string {
	if len(recipes) == 0 {
		return "🔍 No recipes found."
	}

	var b strings.Builder
	b.WriteString(title)
	for i, r := range recipes {
		fmt.Fprintf(&b, "\n%d. %s %s (%d min) – %.0f%% · score %.1f [%s]",
			i+1, statusIcon(r.Status), r.Name, r.Time, r.Match.MatchPercentage, r.Score, r.ID)
	}
	return b.String()
}

// FormatRecipes renders a plain recipe list
func FormatRecipes(title string, recipes []models.Recipe) string {
	if len(recipes) == 0 {
		return "Nothing here yet. Add more ingredients with /add."
	}

	var b strings.Builder
	b.WriteString(title)
	for _, r := range recipes {
		fmt.Fprintf(&b, "\n• %s (%d min) [%s]", r.Name, r.Time, r.ID)
	}
	return b.String()
}

// FormatCatalog renders every recipe with how much of it the pantry covers
func FormatCatalog(recipes []models.RankedRecipe) string {
	if len(recipes) == 0 {
		return "The catalog is empty. Add a recipe with /import <dish>."
	}

	var b strings.Builder
	b.WriteString("📚 Recipes:")
	for _, r := range recipes {
		fmt.Fprintf(&b, "\n%s %s – %d/%d [%s]",
			statusIcon(r.Status), r.Name, r.Match.AvailableCount, r.Match.TotalCount, r.ID)
	}
	return b.String()
}

// FormatAlmost renders the almost-cookable list with what is missing
func FormatAlmost(items []models.AlmostCookable) string {
	if len(items) == 0 {
		return "No recipes are one or two ingredients away."
	}

	var b strings.Builder
	b.WriteString("🛒 Almost there:")
	for _, item := range items {
		fmt.Fprintf(&b, "\n• %s [%s] – missing %s",
			item.Recipe.Name, item.Recipe.ID, strings.Join(item.Match.MissingIngredients, ", "))
	}
	return b.String()
}

// FormatDetails renders a single recipe with its match
func FormatDetails(r models.RankedRecipe, favorite bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s", statusIcon(r.Status), r.Name)
	if favorite {
		b.WriteString(" ⭐")
	}
	fmt.Fprintf(&b, "\n⏱ %d minutes", r.Time)
	if r.Healthy {
		b.WriteString(" · 🥗 healthy")
	}
	if r.Economical {
		b.WriteString(" · 💰 economical")
	}
	if r.Description != "" {
		b.WriteString("\n" + r.Description)
	}

	fmt.Fprintf(&b, "\n\nYou have %d / %d ingredients (%.0f%%)",
		r.Match.AvailableCount, r.Match.TotalCount, r.Match.MatchPercentage)
	if r.Match.MissingCount > 0 {
		fmt.Fprintf(&b, "\nMissing %d: %s", r.Match.MissingCount, strings.Join(r.Match.MissingIngredients, ", "))
	}

	b.WriteString("\n\nIngredients:\n" + formatIngredients(r.Ingredients))

	if len(r.Steps) > 0 {
		b.WriteString("\n\nSteps:")
		for i, step := range r.Steps {
			fmt.Fprintf(&b, "\n%d. %s", i+1, step)
		}
	}
	return b.String()
}

// FormatPreferences renders the chat's preferences
func FormatPreferences(p models.Preferences) string {
	maxTime := "any"
	if p.MaxTime != nil {
		maxTime = fmt.Sprintf("%d min", *p.MaxTime)
	}
	return fmt.Sprintf("⚙️ Preferences\nmax time: %s\nhealthy: %s\neconomical: %s",
		maxTime, triState(p.Healthy), triState(p.Economical))
}

func triState(b *bool) string {
	switch {
	case b == nil:
		return "any"
	case *b:
		return "yes"
	default:
		return "no"
	}
}

func statusIcon(s models.Status) string {
	switch s {
	case models.StatusCookable:
		return "✅"
	case models.StatusAlmostCookable:
		return "🟡"
	default:
		return "💡"
	}
}

// formatIngredients formats a list of ingredients
func formatIngredients(ingredients []string) string {
	var result string
	for _, ingredient := range ingredients {
		result += "• " + ingredient + "\n"
	}
	return strings.TrimSuffix(result, "\n")
}
