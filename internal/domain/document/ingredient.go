package document

import (
	"encoding/json"

	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
)

// IngredientDocument is the nested index form of one recipe ingredient.
type IngredientDocument struct {
	IngredientID      *int64                   `json:"ingredientId,omitempty"`
	IngredientNumber  int                      `json:"ingredientNumber"`
	QuantitySpecifier recipe.QuantitySpecifier `json:"quantitySpecifier"`
	Quantity          *float64                 `json:"quantity,omitempty"`
	Ingredient        string                   `json:"ingredient"`
}

// FromIngredient copies an ingredient verbatim into its document form.
func FromIngredient(ing recipe.Ingredient) IngredientDocument {
	return IngredientDocument{
		IngredientID:      ing.ID(),
		IngredientNumber:  ing.Number(),
		QuantitySpecifier: ing.QuantitySpecifier(),
		Quantity:          ing.Quantity(),
		Ingredient:        ing.Ingredient(),
	}
}

// FromIngredients converts ingredients in source order. The result is never nil.
func FromIngredients(src []recipe.Ingredient) []IngredientDocument {
	out := make([]IngredientDocument, len(src))
	for i, ing := range src {
		out[i] = FromIngredient(ing)
	}
	return out
}

// Kind implements Document.
func (IngredientDocument) Kind() Kind { return KindIngredient }

func (IngredientDocument) sealed() {}

// MarshalJSON writes the document with its _class discriminator.
func (d IngredientDocument) MarshalJSON() ([]byte, error) {
	type plain IngredientDocument
	return json.Marshal(struct {
		Class Kind `json:"_class"`
		plain
	}{KindIngredient, plain(d)})
}

// UnmarshalJSON reads the document and rejects a foreign _class.
func (d *IngredientDocument) UnmarshalJSON(data []byte) error {
	type plain IngredientDocument
	var v struct {
		Class Kind `json:"_class"`
		plain
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if err := checkKind(v.Class, KindIngredient); err != nil {
		return err
	}
	*d = IngredientDocument(v.plain)
	return nil
}
