// Package commands turns chat commands into reply texts. It holds no
// transport code; the Telegram bot feeds it commands and plain messages.
package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/korjavin/maaqo/pkg/catalog"
	"github.com/korjavin/maaqo/pkg/cookbook"
	"github.com/korjavin/maaqo/pkg/favorites"
	"github.com/korjavin/maaqo/pkg/logger"
	"github.com/korjavin/maaqo/pkg/messages"
	"github.com/korjavin/maaqo/pkg/models"
	"github.com/korjavin/maaqo/pkg/pantry"
	"github.com/korjavin/maaqo/pkg/preferences"
	"github.com/korjavin/maaqo/pkg/state"
	"github.com/korjavin/maaqo/pkg/storage"
)

// IngredientParser extracts ingredient names from free text
type IngredientParser interface {
	ParseIngredientsFromText(ctx context.Context, text string) ([]string, error)
}

// RecipeImporter adds a new recipe to the catalog from a dish name
type RecipeImporter interface {
	Import(ctx context.Context, dishName string) (models.Recipe, error)
}

// Deps are the services a Router talks to. Parser, Importer and Store are
// optional; admin commands are only accepted from Admins.
type Deps struct {
	Cookbook      *cookbook.Service
	Catalog       *catalog.Service
	Pantry        *pantry.Service
	Favorites     *favorites.Service
	Preferences   *preferences.Service
	Messages      *messages.Service
	State         *state.Manager
	Parser        IngredientParser
	Importer      RecipeImporter
	Store         storage.Scanner
	Admins        []int64
	FeaturedLimit int
	Logger        *logger.Logger
}

// Command describes a chat command
type Command struct {
	Name        string
	Description string
	Admin       bool
}

// Router dispatches commands to handlers
type Router struct {
	Deps
	commands []Command
	handlers map[string]handler
	admins   map[int64]bool
}

type handler func(ctx context.Context, chatID int64, args string) (string, error)

// New creates a new router
func New(d Deps) *Router {
	if d.Logger == nil {
		d.Logger = logger.New("commands")
	}
	if d.State == nil {
		d.State = state.New()
	}
	if d.Messages == nil {
		d.Messages = messages.New(nil, d.Logger)
	}
	if d.FeaturedLimit <= 0 {
		d.FeaturedLimit = cookbook.DefaultFeaturedLimit
	}

	r := &Router{
		Deps:     d,
		handlers: make(map[string]handler),
		admins:   make(map[int64]bool, len(d.Admins)),
	}
	for _, id := range d.Admins {
		r.admins[id] = true
	}

	r.register(Command{Name: "start", Description: "Welcome message"}, r.start)
	r.register(Command{Name: "help", Description: "List commands"}, r.help)
	r.register(Command{Name: "pantry", Description: "Show your pantry"}, r.showPantry)
	r.register(Command{Name: "add", Description: "Add ingredients"}, r.add)
	r.register(Command{Name: "remove", Description: "Remove ingredients"}, r.remove)
	r.register(Command{Name: "clear", Description: "Empty the pantry"}, r.clear)
	r.register(Command{Name: "done", Description: "Stop adding ingredients"}, r.done)
	r.register(Command{Name: "cook", Description: "Recipes you can cook now"}, r.cook)
	r.register(Command{Name: "almost", Description: "Recipes missing 1 or 2 ingredients"}, r.almost)
	r.register(Command{Name: "featured", Description: "A few picks for you"}, r.featured)
	r.register(Command{Name: "recipes", Description: "Every recipe with its status"}, r.recipes)
	r.register(Command{Name: "search", Description: "Search recipes"}, r.search)
	r.register(Command{Name: "recipe", Description: "Recipe details"}, r.recipe)
	r.register(Command{Name: "fav", Description: "Add a favorite"}, r.fav)
	r.register(Command{Name: "unfav", Description: "Remove a favorite"}, r.unfav)
	r.register(Command{Name: "favorites", Description: "Your favorite recipes"}, r.favorites)
	r.register(Command{Name: "prefs", Description: "Scoring preferences"}, r.prefs)
	r.register(Command{Name: "import", Description: "Add a recipe to the catalog"}, r.importRecipe)
	r.register(Command{Name: "forget", Description: "Remove a recipe from the catalog", Admin: true}, r.forget)
	r.register(Command{Name: "status", Description: "Catalog and storage status", Admin: true}, r.status)
	return r
}

func (r *Router) register(c Command, h handler) {
	if c.Admin {
		inner := h
		h = func(ctx context.Context, chatID int64, args string) (string, error) {
			if !r.admins[chatID] {
				return "", userErrorf("/%s is only available to admins.", c.Name)
			}
			return inner(ctx, chatID, args)
		}
	}
	r.commands = append(r.commands, c)
	r.handlers[c.Name] = h
}

// Commands lists the public commands in menu order
func (r *Router) Commands() []Command {
	out := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		if !c.Admin {
			out = append(out, c)
		}
	}
	return out
}

// userError is an error whose message is shown to the chat as is
type userError struct{ msg string }

func (e userError) Error() string { return e.msg }

func userErrorf(format string, args ...interface{}) error {
	return userError{msg: fmt.Sprintf(format, args...)}
}

// HandleCommand runs a command and returns the reply text
func (r *Router) HandleCommand(ctx context.Context, chatID int64, command, args string) string {
	command = strings.ToLower(strings.TrimPrefix(command, "/"))
	h, ok := r.handlers[command]
	if !ok {
		return fmt.Sprintf("Unknown command /%s.\n\n%s", command, messages.Help())
	}

	log := r.Logger.With(strconv.FormatInt(chatID, 10))
	log.Info("Handling command: %s", command)

	reply, err := h(ctx, chatID, strings.TrimSpace(args))
	if err != nil {
		var ue userError
		if errors.As(err, &ue) {
			return "⚠️ " + ue.msg
		}
		log.Error("Command /%s failed: %v", command, err)
		return r.Messages.GenerateErrorMessage("handle /" + command)
	}
	return reply
}

// HandleText handles a plain message. ok is false when the chat is not
// expecting input and the message should be ignored.
func (r *Router) HandleText(ctx context.Context, chatID int64, text string) (reply string, ok bool) {
	if r.State.GetState(chatID) != state.StateAddingIngredients {
		return "", false
	}
	r.State.Touch(chatID)

	names := r.parseIngredients(ctx, text)
	if len(names) == 0 {
		return "I couldn't find any ingredients in your message. Please send a list like: arroz, pollo, cebolla", true
	}

	added, err := r.Pantry.Add(chatID, names...)
	if err != nil {
		r.Logger.Error("Failed to add ingredients for chat %d: %v", chatID, err)
		return r.Messages.GenerateErrorMessage("add those ingredients"), true
	}
	return addedReply(added) + "\nSend more, or /done when you're finished.", true
}

// parseIngredients uses the configured parser and falls back to a plain split
func (r *Router) parseIngredients(ctx context.Context, text string) []string {
	if r.Parser != nil {
		names, err := r.Parser.ParseIngredientsFromText(ctx, text)
		if err == nil && len(names) > 0 {
			return names
		}
		if err != nil {
			r.Logger.Warn("Ingredient parser failed, splitting text instead: %v", err)
		}
	}
	return pantry.ParseList(text)
}

func (r *Router) start(ctx context.Context, chatID int64, _ string) (string, error) {
	return r.Messages.GenerateWelcomeMessage(ctx), nil
}

func (r *Router) help(context.Context, int64, string) (string, error) {
	return messages.Help(), nil
}

func (r *Router) showPantry(_ context.Context, chatID int64, _ string) (string, error) {
	items, err := r.Pantry.List(chatID)
	if err != nil {
		return "", err
	}
	return messages.FormatPantry(items), nil
}

func (r *Router) add(_ context.Context, chatID int64, args string) (string, error) {
	if args == "" {
		r.State.SetState(chatID, state.StateAddingIngredients)
		return "📝 Send me the ingredients you have, separated by commas or one per line. Use /done when you're finished.", nil
	}

	added, err := r.Pantry.Add(chatID, pantry.ParseList(args)...)
	if err != nil {
		return "", err
	}
	return addedReply(added), nil
}

func addedReply(added []string) string {
	if len(added) == 0 {
		return "Nothing new: those ingredients are already in your pantry."
	}
	return fmt.Sprintf("✅ Added %d ingredient(s): %s", len(added), strings.Join(added, ", "))
}

func (r *Router) remove(_ context.Context, chatID int64, args string) (string, error) {
	names := pantry.ParseList(args)
	if len(names) == 0 {
		return "", userErrorf("Usage: /remove sal, pimienta")
	}

	removed, err := r.Pantry.Remove(chatID, names...)
	if err != nil {
		return "", err
	}
	if len(removed) == 0 {
		return "None of those were in your pantry.", nil
	}
	return fmt.Sprintf("🗑 Removed: %s", strings.Join(removed, ", ")), nil
}

func (r *Router) clear(_ context.Context, chatID int64, _ string) (string, error) {
	if err := r.Pantry.Clear(chatID); err != nil {
		return "", err
	}
	r.State.ClearState(chatID)
	return "🧹 Pantry cleared.", nil
}

func (r *Router) done(_ context.Context, chatID int64, _ string) (string, error) {
	r.State.ClearState(chatID)
	return "👍 Pantry updated. Try /cook, /almost or /featured.", nil
}

func (r *Router) cook(_ context.Context, chatID int64, _ string) (string, error) {
	recipes, err := r.Cookbook.Cookable(chatID)
	if err != nil {
		return "", err
	}
	return messages.FormatRecipes("✅ You can cook now:", recipes), nil
}

func (r *Router) almost(_ context.Context, chatID int64, _ string) (string, error) {
	items, err := r.Cookbook.AlmostCookable(chatID)
	if err != nil {
		return "", err
	}
	return messages.FormatAlmost(items), nil
}

func (r *Router) featured(_ context.Context, chatID int64, _ string) (string, error) {
	recipes, err := r.Cookbook.Featured(chatID, r.FeaturedLimit)
	if err != nil {
		return "", err
	}
	return messages.FormatRecipes("⭐ Featured for you:", recipes), nil
}

func (r *Router) recipes(_ context.Context, chatID int64, _ string) (string, error) {
	all, err := r.Cookbook.AllWithStatus(chatID)
	if err != nil {
		return "", err
	}
	return messages.FormatCatalog(all), nil
}

func (r *Router) search(_ context.Context, chatID int64, args string) (string, error) {
	query, filters, err := ParseSearch(args)
	if err != nil {
		return "", userError{msg: err.Error()}
	}

	results, err := r.Cookbook.Search(chatID, query, filters)
	if err != nil {
		return "", err
	}
	return messages.FormatRanked("🔎 Results:", results), nil
}

// ParseSearch splits "/search" arguments into the free-text query and
// filter flags: --max=N, --healthy[=yes|no|any], --cheap[=yes|no|any]
// (or --economical) and --fav.
func ParseSearch(args string) (string, models.Filters, error) {
	var filters models.Filters
	var words []string

	for _, tok := range strings.Fields(args) {
		if !strings.HasPrefix(tok, "--") {
			words = append(words, tok)
			continue
		}

		name, value, hasValue := strings.Cut(strings.ToLower(strings.TrimPrefix(tok, "--")), "=")
		switch name {
		case "max":
			n, err := strconv.Atoi(value)
			if !hasValue || err != nil || n <= 0 {
				return "", filters, fmt.Errorf("--max needs a positive number of minutes, e.g. --max=30")
			}
			filters.MaxTime = models.Int(n)
		case "healthy":
			b, err := flagTriState(tok, value, hasValue)
			if err != nil {
				return "", filters, err
			}
			filters.Healthy = b
		case "cheap", "economical":
			b, err := flagTriState(tok, value, hasValue)
			if err != nil {
				return "", filters, err
			}
			filters.Economical = b
		case "fav", "favorites":
			filters.FavoritesOnly = true
		default:
			return "", filters, fmt.Errorf("unknown option %s", tok)
		}
	}
	return strings.Join(words, " "), filters, nil
}

// flagTriState reads a bare flag as "yes" and otherwise defers to
// preferences.ParseTriState
func flagTriState(tok, value string, hasValue bool) (*bool, error) {
	if !hasValue {
		return models.Bool(true), nil
	}
	if value == "" {
		return nil, fmt.Errorf("%s needs yes, no or any", tok)
	}
	b, err := preferences.ParseTriState(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", tok, err)
	}
	return b, nil
}

func (r *Router) recipe(_ context.Context, chatID int64, args string) (string, error) {
	if args == "" {
		return "", userErrorf("Usage: /recipe <id>")
	}

	details, ok, err := r.Cookbook.Details(chatID, args)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", userErrorf("No recipe with id %q.", args)
	}

	fav, err := r.Favorites.IsFavorite(chatID, details.ID)
	if err != nil {
		return "", err
	}
	return messages.FormatDetails(details, fav), nil
}

func (r *Router) fav(_ context.Context, chatID int64, args string) (string, error) {
	if args == "" {
		return "", userErrorf("Usage: /fav <id>")
	}

	recipe, ok, err := r.Catalog.Get(args)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", userErrorf("No recipe with id %q.", args)
	}

	added, err := r.Favorites.Add(chatID, recipe.ID)
	if err != nil {
		return "", err
	}
	if !added {
		return fmt.Sprintf("%s is already a favorite.", recipe.Name), nil
	}
	return fmt.Sprintf("⭐ Added %s to favorites.", recipe.Name), nil
}

func (r *Router) unfav(_ context.Context, chatID int64, args string) (string, error) {
	if args == "" {
		return "", userErrorf("Usage: /unfav <id>")
	}

	removed, err := r.Favorites.Remove(chatID, args)
	if err != nil {
		return "", err
	}
	if !removed {
		return fmt.Sprintf("%s was not a favorite.", args), nil
	}
	return fmt.Sprintf("Removed %s from favorites.", args), nil
}

func (r *Router) favorites(_ context.Context, chatID int64, _ string) (string, error) {
	ranked, err := r.Cookbook.Favorites(chatID)
	if err != nil {
		return "", err
	}
	if len(ranked) == 0 {
		return "No favorites yet. Add one with /fav <id>.", nil
	}
	return messages.FormatRanked("⭐ Your favorites:", ranked), nil
}

func (r *Router) prefs(_ context.Context, chatID int64, args string) (string, error) {
	current, err := r.Preferences.Get(chatID)
	if err != nil {
		return "", err
	}
	if args == "" {
		return messages.FormatPreferences(current), nil
	}

	updated, err := preferences.Apply(current, strings.Fields(args))
	if err != nil {
		return "", userError{msg: err.Error()}
	}
	if err := r.Preferences.Save(chatID, updated); err != nil {
		return "", err
	}
	return "Saved. " + messages.FormatPreferences(updated), nil
}

func (r *Router) importRecipe(ctx context.Context, _ int64, args string) (string, error) {
	if r.Importer == nil {
		return "", userErrorf("Recipe import is not configured.")
	}
	if args == "" {
		return "", userErrorf("Usage: /import <dish name>")
	}

	recipe, err := r.Importer.Import(ctx, args)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📥 Imported %s with %d ingredients. See /recipe %s",
		recipe.Name, len(recipe.Ingredients), recipe.ID), nil
}

func (r *Router) forget(_ context.Context, _ int64, args string) (string, error) {
	if args == "" {
		return "", userErrorf("Usage: /forget <id>")
	}

	deleted, err := r.Catalog.Delete(args)
	if err != nil {
		return "", err
	}
	if !deleted {
		return "", userErrorf("No recipe with id %q.", args)
	}
	return fmt.Sprintf("🗑 Removed %s from the catalog.", args), nil
}

func (r *Router) status(_ context.Context, _ int64, _ string) (string, error) {
	recipes, err := r.Catalog.List()
	if err != nil {
		return "", err
	}
	if r.Store == nil {
		return fmt.Sprintf("📊 %d recipes in the catalog.", len(recipes)), nil
	}

	keys, err := r.Store.List("chat:")
	if err != nil {
		return "", err
	}
	var pantries, favs, prefs int
	for _, key := range keys {
		switch {
		case strings.HasSuffix(key, ":pantry"):
			pantries++
		case strings.HasSuffix(key, ":favorites"):
			favs++
		case strings.HasSuffix(key, ":preferences"):
			prefs++
		}
	}
	return fmt.Sprintf("📊 %d recipes in the catalog\n%d pantries, %d favorite lists, %d preference sets",
		len(recipes), pantries, favs, prefs), nil
}
