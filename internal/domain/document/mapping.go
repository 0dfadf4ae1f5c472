package document

import "github.com/elastic/go-elasticsearch/v9/typedapi/types"

// Wire names of the recipes index fields.
const (
	FieldID                   = "id"
	FieldName                 = "name"
	FieldVariation            = "variation"
	FieldDescription          = "description"
	FieldCreationDateTime     = "creationDateTime"
	FieldLastModifiedDateTime = "lastModifiedDateTime"
	FieldIngredients          = "ingredients"
	FieldInstructions         = "instructions"

	FieldIngredientID      = "ingredientId"
	FieldIngredientNumber  = "ingredientNumber"
	FieldQuantitySpecifier = "quantitySpecifier"
	FieldQuantity          = "quantity"
	FieldIngredient        = "ingredient"

	FieldInstructionID     = "instructionId"
	FieldInstructionNumber = "instructionNumber"
	FieldInstruction       = "instruction"
)

// ElasticsearchMapping returns the recipes index mapping. Ingredients and instructions are
// nested (per-item grouping) with include_in_parent, so their sub-fields are also
// searchable as flattened fields of the recipe.
func ElasticsearchMapping() *types.TypeMapping {
	return &types.TypeMapping{
		Properties: map[string]types.Property{
			FieldClass:                types.NewKeywordProperty(),
			FieldID:                   types.NewLongNumberProperty(),
			FieldName:                 types.NewTextProperty(),
			FieldVariation:            types.NewIntegerNumberProperty(),
			FieldDescription:          types.NewTextProperty(),
			FieldCreationDateTime:     epochMillisDate(),
			FieldLastModifiedDateTime: epochMillisDate(),
			FieldIngredients: nestedInParent(map[string]types.Property{
				FieldClass:             types.NewKeywordProperty(),
				FieldIngredientID:      types.NewLongNumberProperty(),
				FieldIngredientNumber:  types.NewIntegerNumberProperty(),
				FieldQuantitySpecifier: types.NewKeywordProperty(),
				FieldQuantity:          types.NewDoubleNumberProperty(),
				FieldIngredient:        types.NewTextProperty(),
			}),
			FieldInstructions: nestedInParent(map[string]types.Property{
				FieldClass:             types.NewKeywordProperty(),
				FieldInstructionID:     types.NewLongNumberProperty(),
				FieldInstructionNumber: types.NewIntegerNumberProperty(),
				FieldInstruction:       types.NewTextProperty(),
			}),
		},
	}
}

// epochMillisDate matches how timestamps are serialized.
func epochMillisDate() *types.DateProperty {
	format := "epoch_millis"
	p := types.NewDateProperty()
	p.Format = &format
	return p
}

func nestedInParent(props map[string]types.Property) *types.NestedProperty {
	includeInParent := true
	p := types.NewNestedProperty()
	p.IncludeInParent = &includeInParent
	p.Properties = props
	return p
}
