package recipe

import (
	"fmt"

	"github.com/kailas-cloud/recipedex/internal/domain"
)

// Ingredient is one line of a recipe's ingredient list (immutable value object).
type Ingredient struct {
	id                *int64
	number            int
	quantitySpecifier QuantitySpecifier
	quantity          *float64
	ingredient        string
}

// NewIngredient validates and creates an Ingredient.
// id and quantity may be nil (not yet persisted / unmeasured).
func NewIngredient(
	id *int64, number int, qs QuantitySpecifier, quantity *float64, ingredient string,
) (Ingredient, error) {
	if number < 0 {
		return Ingredient{}, fmt.Errorf("ingredient number must not be negative, got %d: %w", number, domain.ErrInvalidRecipe)
	}
	if !qs.Valid() {
		return Ingredient{}, fmt.Errorf("unknown quantity specifier %q: %w", qs, domain.ErrInvalidRecipe)
	}
	if quantity != nil && *quantity < 0 {
		return Ingredient{}, fmt.Errorf("quantity must not be negative, got %g: %w", *quantity, domain.ErrInvalidRecipe)
	}
	if ingredient == "" {
		return Ingredient{}, fmt.Errorf("ingredient is required: %w", domain.ErrInvalidRecipe)
	}
	return ReconstructIngredient(id, number, qs, quantity, ingredient), nil
}

// ReconstructIngredient creates an Ingredient without validation (storage hydration).
func ReconstructIngredient(
	id *int64, number int, qs QuantitySpecifier, quantity *float64, ingredient string,
) Ingredient {
	return Ingredient{
		id:                clonePtr(id),
		number:            number,
		quantitySpecifier: qs,
		quantity:          clonePtr(quantity),
		ingredient:        ingredient,
	}
}

// ID returns the ingredient identifier, nil if not yet persisted.
func (i Ingredient) ID() *int64 { return clonePtr(i.id) }

// Number returns the ordinal position within the recipe.
func (i Ingredient) Number() int { return i.number }

// QuantitySpecifier returns the unit or qualifier of the quantity.
func (i Ingredient) QuantitySpecifier() QuantitySpecifier { return i.quantitySpecifier }

// Quantity returns the amount, nil if unmeasured.
func (i Ingredient) Quantity() *float64 { return clonePtr(i.quantity) }

// Ingredient returns the ingredient name or description.
func (i Ingredient) Ingredient() string { return i.ingredient }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
