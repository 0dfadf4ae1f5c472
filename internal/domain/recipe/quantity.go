package recipe

import (
	"fmt"

	"github.com/kailas-cloud/recipedex/internal/domain"
)

// QuantitySpecifier qualifies an ingredient quantity (unit of measure or count noun).
type QuantitySpecifier string

// Supported quantity specifiers.
const (
	Unspecified QuantitySpecifier = "Unspecified"
	Whole       QuantitySpecifier = "Whole"
	Teaspoon    QuantitySpecifier = "Teaspoon"
	Tablespoon  QuantitySpecifier = "Tablespoon"
	Cup         QuantitySpecifier = "Cup"
	Pint        QuantitySpecifier = "Pint"
	Quart       QuantitySpecifier = "Quart"
	Gallon      QuantitySpecifier = "Gallon"
	Ounce       QuantitySpecifier = "Ounce"
	Pound       QuantitySpecifier = "Pound"
	Gram        QuantitySpecifier = "Gram"
	Kilogram    QuantitySpecifier = "Kilogram"
	Milliliter  QuantitySpecifier = "Milliliter"
	Liter       QuantitySpecifier = "Liter"
	Pinch       QuantitySpecifier = "Pinch"
	Dash        QuantitySpecifier = "Dash"
	Slice       QuantitySpecifier = "Slice"
	Clove       QuantitySpecifier = "Clove"
	Can         QuantitySpecifier = "Can"
)

var quantitySpecifiers = map[QuantitySpecifier]struct{}{
	Unspecified: {}, Whole: {}, Teaspoon: {}, Tablespoon: {}, Cup: {}, Pint: {}, Quart: {},
	Gallon: {}, Ounce: {}, Pound: {}, Gram: {}, Kilogram: {}, Milliliter: {}, Liter: {},
	Pinch: {}, Dash: {}, Slice: {}, Clove: {}, Can: {},
}

// Valid reports whether q is a known specifier.
func (q QuantitySpecifier) Valid() bool {
	_, ok := quantitySpecifiers[q]
	return ok
}

// ParseQuantitySpecifier maps a wire value to a QuantitySpecifier. Empty input means Unspecified.
func ParseQuantitySpecifier(s string) (QuantitySpecifier, error) {
	if s == "" {
		return Unspecified, nil
	}
	q := QuantitySpecifier(s)
	if !q.Valid() {
		return "", fmt.Errorf("unknown quantity specifier %q: %w", s, domain.ErrInvalidRecipe)
	}
	return q, nil
}
