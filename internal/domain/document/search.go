package document

import "github.com/kailas-cloud/recipedex/internal/db"

// SearchIndexDefinition describes the recipes index as a Valkey/Redis FT schema over JSON
// documents stored under prefix. Nested sub-fields are exposed through [*] paths and
// parent-qualified aliases, so every ingredient and instruction is searchable from its recipe.
// Enumerated values (_class, quantitySpecifier) are case-sensitive tags matched exactly.
func SearchIndexDefinition(prefix string) *db.IndexDefinition {
	return db.NewIndex(IndexName).
		OnJSON().
		Prefix(prefix).
		TagWithOpts("$."+FieldClass, "", true).As(FieldClass).
		Numeric("$."+FieldID).As(FieldID).Sortable().
		Text("$."+FieldName).As(FieldName).Weight(nameWeight).
		Numeric("$."+FieldVariation).As(FieldVariation).
		Text("$."+FieldDescription).As(FieldDescription).
		Numeric("$."+FieldCreationDateTime).As(FieldCreationDateTime).Sortable().
		Numeric("$."+FieldLastModifiedDateTime).As(FieldLastModifiedDateTime).Sortable().
		Numeric(nestedPath(FieldIngredients, FieldIngredientID)).As(nestedAlias(FieldIngredients, FieldIngredientID)).
		Numeric(nestedPath(FieldIngredients, FieldIngredientNumber)).As(nestedAlias(FieldIngredients, FieldIngredientNumber)).
		TagWithOpts(nestedPath(FieldIngredients, FieldQuantitySpecifier), "", true).As(nestedAlias(FieldIngredients, FieldQuantitySpecifier)).
		Numeric(nestedPath(FieldIngredients, FieldQuantity)).As(nestedAlias(FieldIngredients, FieldQuantity)).
		Text(nestedPath(FieldIngredients, FieldIngredient)).As(nestedAlias(FieldIngredients, FieldIngredient)).
		Numeric(nestedPath(FieldInstructions, FieldInstructionID)).As(nestedAlias(FieldInstructions, FieldInstructionID)).
		Numeric(nestedPath(FieldInstructions, FieldInstructionNumber)).As(nestedAlias(FieldInstructions, FieldInstructionNumber)).
		Text(nestedPath(FieldInstructions, FieldInstruction)).As(nestedAlias(FieldInstructions, FieldInstruction)).
		MustBuild()
}

// nameWeight ranks title matches above description and step text.
const nameWeight = 2

func nestedPath(parent, field string) string { return "$." + parent + "[*]." + field }

func nestedAlias(parent, field string) string { return parent + "_" + field }
