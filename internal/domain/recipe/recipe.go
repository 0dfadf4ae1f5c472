package recipe

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/recipedex/internal/domain"
)

// MaxNameLength is the maximum recipe name length in bytes.
const MaxNameLength = 256

// Recipe is the recipe aggregate (immutable value object).
// Timestamps are wall-clock values; their location carries no meaning.
type Recipe struct {
	id                   int64
	name                 string
	variation            int
	description          string
	creationDateTime     time.Time
	lastModifiedDateTime time.Time
	ingredients          []Ingredient
	instructions         []Instruction
}

// New validates and creates a Recipe.
// ID must be positive, name 1-256 bytes, variation non-negative, modification not before creation.
// Ingredient and instruction numbers must be unique within the recipe.
func New(
	id int64, name string, variation int, description string,
	created, modified time.Time,
	ingredients []Ingredient, instructions []Instruction,
) (Recipe, error) {
	if id <= 0 {
		return Recipe{}, fmt.Errorf("recipe ID must be positive, got %d: %w", id, domain.ErrInvalidRecipe)
	}
	if name == "" {
		return Recipe{}, fmt.Errorf("recipe name is required: %w", domain.ErrInvalidRecipe)
	}
	if len(name) > MaxNameLength {
		return Recipe{}, fmt.Errorf("recipe name too long (max %d): %w", MaxNameLength, domain.ErrInvalidRecipe)
	}
	if variation < 0 {
		return Recipe{}, fmt.Errorf("variation must not be negative, got %d: %w", variation, domain.ErrInvalidRecipe)
	}
	if wallClock(modified).Before(wallClock(created)) {
		return Recipe{}, fmt.Errorf("last modification precedes creation: %w", domain.ErrInvalidRecipe)
	}

	seen := make(map[int]bool, len(ingredients))
	for _, ing := range ingredients {
		if seen[ing.Number()] {
			return Recipe{}, fmt.Errorf("duplicate ingredient number %d: %w", ing.Number(), domain.ErrInvalidRecipe)
		}
		seen[ing.Number()] = true
	}
	clear(seen)
	for _, ins := range instructions {
		if seen[ins.Number()] {
			return Recipe{}, fmt.Errorf("duplicate instruction number %d: %w", ins.Number(), domain.ErrInvalidRecipe)
		}
		seen[ins.Number()] = true
	}

	return Reconstruct(id, name, variation, description, created, modified, ingredients, instructions), nil
}

// Reconstruct creates a Recipe without validation (storage hydration).
func Reconstruct(
	id int64, name string, variation int, description string,
	created, modified time.Time,
	ingredients []Ingredient, instructions []Instruction,
) Recipe {
	return Recipe{
		id:                   id,
		name:                 name,
		variation:            variation,
		description:          description,
		creationDateTime:     created,
		lastModifiedDateTime: modified,
		ingredients:          cloneSlice(ingredients),
		instructions:         cloneSlice(instructions),
	}
}

// ID returns the recipe identifier.
func (r Recipe) ID() int64 { return r.id }

// Name returns the recipe name.
func (r Recipe) Name() string { return r.name }

// Variation disambiguates recipes sharing a name.
func (r Recipe) Variation() int { return r.variation }

// Description returns the free-text description.
func (r Recipe) Description() string { return r.description }

// CreationDateTime returns the creation wall-clock time.
func (r Recipe) CreationDateTime() time.Time { return r.creationDateTime }

// LastModifiedDateTime returns the last modification wall-clock time.
func (r Recipe) LastModifiedDateTime() time.Time { return r.lastModifiedDateTime }

// Ingredients returns the ingredients in recipe order.
func (r Recipe) Ingredients() []Ingredient { return cloneSlice(r.ingredients) }

// Instructions returns the instructions in recipe order.
func (r Recipe) Instructions() []Instruction { return cloneSlice(r.instructions) }

// wallClock drops the location of t, keeping its clock reading.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	c := make([]T, len(s))
	copy(c, s)
	return c
}
