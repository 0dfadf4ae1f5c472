package document

import (
	"encoding/json"
	"time"

	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
)

// RecipeDocument is the top-level indexable unit of the recipes index.
// Ingredients and Instructions are nested and included in the parent.
// Timestamps are UTC with millisecond precision and travel as epoch milliseconds.
type RecipeDocument struct {
	ID                   int64                 `json:"id"`
	Name                 string                `json:"name"`
	Variation            int                   `json:"variation"`
	Description          string                `json:"description"`
	CreationDateTime     time.Time             `json:"creationDateTime"`
	LastModifiedDateTime time.Time             `json:"lastModifiedDateTime"`
	Ingredients          []IngredientDocument  `json:"ingredients"`
	Instructions         []InstructionDocument `json:"instructions"`
}

// FromRecipe converts a recipe aggregate into its document graph.
// Scalars are copied, timestamps are reinterpreted as UTC wall-clock time and both
// collections keep source order. Ingredients and Instructions are never nil.
func FromRecipe(r recipe.Recipe) RecipeDocument {
	return RecipeDocument{
		ID:                   r.ID(),
		Name:                 r.Name(),
		Variation:            r.Variation(),
		Description:          r.Description(),
		CreationDateTime:     wallClockUTC(r.CreationDateTime()),
		LastModifiedDateTime: wallClockUTC(r.LastModifiedDateTime()),
		Ingredients:          FromIngredients(r.Ingredients()),
		Instructions:         FromInstructions(r.Instructions()),
	}
}

// Kind implements Document.
func (RecipeDocument) Kind() Kind { return KindRecipe }

func (RecipeDocument) sealed() {}

// MarshalJSON writes the document with its _class discriminator, epoch-millisecond
// timestamps and empty (never null) nested arrays.
func (d RecipeDocument) MarshalJSON() ([]byte, error) {
	type plain RecipeDocument
	p := plain(d)
	if p.Ingredients == nil {
		p.Ingredients = []IngredientDocument{}
	}
	if p.Instructions == nil {
		p.Instructions = []InstructionDocument{}
	}
	return json.Marshal(struct {
		Class Kind `json:"_class"`
		plain
		CreationDateTime     int64 `json:"creationDateTime"`
		LastModifiedDateTime int64 `json:"lastModifiedDateTime"`
	}{
		Class:                KindRecipe,
		plain:                p,
		CreationDateTime:     d.CreationDateTime.UnixMilli(),
		LastModifiedDateTime: d.LastModifiedDateTime.UnixMilli(),
	})
}

// UnmarshalJSON reads the document, rejects a foreign _class and restores UTC timestamps.
func (d *RecipeDocument) UnmarshalJSON(data []byte) error {
	type plain RecipeDocument
	var v struct {
		Class Kind `json:"_class"`
		plain
		CreationDateTime     int64 `json:"creationDateTime"`
		LastModifiedDateTime int64 `json:"lastModifiedDateTime"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if err := checkKind(v.Class, KindRecipe); err != nil {
		return err
	}

	*d = RecipeDocument(v.plain)
	d.CreationDateTime = time.UnixMilli(v.CreationDateTime).UTC()
	d.LastModifiedDateTime = time.UnixMilli(v.LastModifiedDateTime).UTC()
	if d.Ingredients == nil {
		d.Ingredients = []IngredientDocument{}
	}
	if d.Instructions == nil {
		d.Instructions = []InstructionDocument{}
	}
	return nil
}

// wallClockUTC keeps the wall-clock fields of t and labels them UTC. No zone conversion happens.
func wallClockUTC(t time.Time) time.Time {
	return time.Date(
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC,
	).Truncate(time.Millisecond)
}
