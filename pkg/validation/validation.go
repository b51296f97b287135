// Package validation checks catalog records before they are stored.
// It wraps a shared go-playground/validator instance.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/korjavin/maaqo/pkg/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "min":
		return fmt.Sprintf("%s must have at least %s item(s)", e.Field, e.Param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field)
	default:
		return fmt.Sprintf("%s failed %s", e.Field, e.Tag)
	}
}

// RecipeError lists everything wrong with a recipe
type RecipeError struct {
	RecipeID string
	Fields   []FieldError
}

func (e *RecipeError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	id := e.RecipeID
	if id == "" {
		id = "<no id>"
	}
	return fmt.Sprintf("invalid recipe %s: %s", id, strings.Join(msgs, "; "))
}

// Validator returns the shared validator instance
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterStructValidation(recipeStructLevel, models.Recipe{})
	})
	return validate
}

// recipeStructLevel rejects whitespace-only names, which "required" lets through
func recipeStructLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(models.Recipe)
	if strings.TrimSpace(r.Name) == "" && r.Name != "" {
		sl.ReportError(r.Name, "Name", "Name", "notblank", "")
	}
	for i, ing := range r.Ingredients {
		if ing != "" && strings.TrimSpace(ing) == "" {
			sl.ReportError(ing, fmt.Sprintf("Ingredients[%d]", i), "Ingredients", "notblank", "")
		}
	}
}

// ValidateRecipe returns nil or a *RecipeError
func ValidateRecipe(r models.Recipe) error {
	err := Validator().Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate recipe %s: %w", r.ID, err)
	}

	out := &RecipeError{RecipeID: r.ID}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
