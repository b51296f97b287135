package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/korjavin/maaqo/pkg/logger"
	"github.com/korjavin/maaqo/pkg/models"
	"github.com/korjavin/maaqo/pkg/storage"
	"github.com/korjavin/maaqo/pkg/validation"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return New(storage.NewMemoryStore(), logger.Discard())
}

func recipeIDs(recipes []models.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.ID)
	}
	return out
}

func TestListEmpty(t *testing.T) {
	s := newService(t)

	recipes, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recipes) != 0 {
		t.Fatalf("expected empty catalog, got %d", len(recipes))
	}
}

func TestEnsureSeeded(t *testing.T) {
	s := newService(t)

	seeded, err := s.EnsureSeeded()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !seeded {
		t.Fatal("expected first call to seed")
	}

	recipes, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recipes) != len(DefaultRecipes) {
		t.Fatalf("expected %d recipes, got %d", len(DefaultRecipes), len(recipes))
	}

	// Deleting everything must not trigger a reseed.
	for _, r := range recipes {
		if _, err := s.Delete(r.ID); err != nil {
			t.Fatalf("delete %s: %v", r.ID, err)
		}
	}
	seeded, err = s.EnsureSeeded()
	if err != nil {
		t.Fatalf("seed again: %v", err)
	}
	if seeded {
		t.Fatal("expected second call to be a no-op")
	}
	if recipes, _ := s.List(); len(recipes) != 0 {
		t.Fatalf("catalog reseeded with %d recipes", len(recipes))
	}
}

func TestEnsureSeededConcurrent(t *testing.T) {
	s := newService(t)

	const callers = 8
	results := make(chan bool, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seeded, err := s.EnsureSeeded()
			if err != nil {
				t.Errorf("seed: %v", err)
			}
			results <- seeded
		}()
	}
	wg.Wait()
	close(results)

	seededCount := 0
	for seeded := range results {
		if seeded {
			seededCount++
		}
	}
	if seededCount != 1 {
		t.Fatalf("%d callers seeded the catalog, want exactly 1", seededCount)
	}
}

func TestDefaultRecipesAreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range DefaultRecipes {
		if err := validation.ValidateRecipe(r); err != nil {
			t.Errorf("default recipe invalid: %v", err)
		}
		if seen[r.ID] {
			t.Errorf("duplicate default id %s", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestAddGetUpdateDelete(t *testing.T) {
	s := newService(t)

	causa := models.Recipe{ID: "causa", Name: "Causa", Ingredients: []string{"papa", "limon"}, Time: 30}
	chaufa := models.Recipe{ID: "chaufa", Name: "Chaufa", Ingredients: []string{"arroz", "huevo"}, Time: 20}

	for _, r := range []models.Recipe{causa, chaufa} {
		if err := s.Add(r); err != nil {
			t.Fatalf("add %s: %v", r.ID, err)
		}
	}

	if err := s.Add(causa); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	var verr *validation.RecipeError
	if err := s.Add(models.Recipe{ID: "empty", Name: "Empty"}); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	got, ok, err := s.Get("causa")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Name != "Causa" {
		t.Fatalf("unexpected recipe %+v", got)
	}

	_, ok, err = s.Get("missing")
	if err != nil || ok {
		t.Fatalf("expected not found without error, got ok=%v err=%v", ok, err)
	}

	updated := causa
	updated.Name = "Causa Rellena"
	ok, err = s.Update("causa", updated)
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	ok, err = s.Update("missing", updated)
	if err != nil || ok {
		t.Fatalf("update missing: ok=%v err=%v", ok, err)
	}

	recipes, _ := s.List()
	if !reflect.DeepEqual(recipeIDs(recipes), []string{"causa", "chaufa"}) {
		t.Fatalf("update changed order: %v", recipeIDs(recipes))
	}
	if recipes[0].Name != "Causa Rellena" {
		t.Fatalf("update not applied: %+v", recipes[0])
	}

	ok, err = s.Delete("causa")
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	ok, err = s.Delete("causa")
	if err != nil || ok {
		t.Fatalf("delete again: ok=%v err=%v", ok, err)
	}
	recipes, _ = s.List()
	if !reflect.DeepEqual(recipeIDs(recipes), []string{"chaufa"}) {
		t.Fatalf("after delete: %v", recipeIDs(recipes))
	}
}

func TestMerge(t *testing.T) {
	s := newService(t)
	if err := s.Add(models.Recipe{ID: "causa", Name: "Causa", Ingredients: []string{"papa"}, Time: 30}); err != nil {
		t.Fatalf("add: %v", err)
	}

	res, err := s.Merge([]models.Recipe{
		{ID: "chaufa", Name: "Chaufa", Ingredients: []string{"arroz", "huevo"}, Time: 20},
		{ID: "causa", Name: "Causa Limeña", Ingredients: []string{"papa", "limon"}, Time: 35},
		{ID: "chaufa", Name: "Chaufa otra vez", Ingredients: []string{"arroz"}},
		{ID: "vacia", Name: "Vacía"},
	})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if res != (MergeResult{Added: 1, Updated: 1, Skipped: 2}) {
		t.Fatalf("unexpected result %+v", res)
	}

	recipes, _ := s.List()
	if !reflect.DeepEqual(recipeIDs(recipes), []string{"causa", "chaufa"}) {
		t.Fatalf("order = %v", recipeIDs(recipes))
	}
	if recipes[0].Name != "Causa Limeña" || recipes[1].Name != "Chaufa" {
		t.Fatalf("unexpected recipes %+v", recipes)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recipes.json")
	data := `[{"id":"causa","name":"Causa","ingredients":["papa","limon"],"time":30,"healthy":true}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	recipes, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(recipes) != 1 || recipes[0].ID != "causa" || !recipes[0].Healthy || recipes[0].Time != 30 {
		t.Fatalf("unexpected recipes %+v", recipes)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected read error")
	}
}

type fakeDrafter struct {
	recipe *models.Recipe
	err    error
	asked  string
}

func (f *fakeDrafter) DraftRecipe(ctx context.Context, dishName string) (*models.Recipe, error) {
	f.asked = dishName
	return f.recipe, f.err
}

func TestImport(t *testing.T) {
	s := newService(t)
	drafter := &fakeDrafter{recipe: &models.Recipe{
		Name:        "Papa a la Huancaína",
		Ingredients: []string{"papa", " Ají Amarillo", "queso fresco", "ají amarillo", "", "leche"},
		Time:        -3,
		Healthy:     false,
	}}

	imp := NewImporter(s, drafter)
	got, err := imp.Import(context.Background(), "  papa a la huancaina ")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if drafter.asked != "papa a la huancaina" {
		t.Fatalf("drafter asked for %q", drafter.asked)
	}
	if got.ID == "" {
		t.Fatal("expected generated id")
	}
	want := []string{"papa", "Ají Amarillo", "queso fresco", "leche"}
	if !reflect.DeepEqual(got.Ingredients, want) {
		t.Fatalf("ingredients = %v, want %v", got.Ingredients, want)
	}
	if got.Time != 0 {
		t.Fatalf("expected negative time clamped to 0, got %d", got.Time)
	}

	stored, ok, err := s.Get(got.ID)
	if err != nil || !ok || stored.Name != "Papa a la Huancaína" {
		t.Fatalf("imported recipe not stored: %+v ok=%v err=%v", stored, ok, err)
	}
}

func TestImportErrors(t *testing.T) {
	s := newService(t)

	if _, err := NewImporter(s, &fakeDrafter{}).Import(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank dish name")
	}

	boom := errors.New("boom")
	if _, err := NewImporter(s, &fakeDrafter{err: boom}).Import(context.Background(), "rocoto"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped drafter error, got %v", err)
	}

	empty := &fakeDrafter{recipe: &models.Recipe{Name: "Nada"}}
	var verr *validation.RecipeError
	if _, err := NewImporter(s, empty).Import(context.Background(), "nada"); !errors.As(err, &verr) {
		t.Fatalf("expected validation error for empty draft, got %v", err)
	}
}
