// Package document maps recipe aggregates onto the denormalized documents stored in the
// "recipes" search index.
//
// Every variant carries a "_class" discriminator on the wire. Constructors never accept it;
// it is derived from the Go type on marshal and checked on unmarshal.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
)

// IndexName is the logical search index holding recipe documents.
const IndexName = "recipes"

// FieldClass is the wire name of the type discriminator.
const FieldClass = "_class"

// Kind is the type discriminator of a stored document.
type Kind string

// Document kinds.
const (
	KindRecipe      Kind = "recipe"
	KindIngredient  Kind = "ingredient"
	KindInstruction Kind = "instruction"
)

var (
	// ErrUnknownKind signals a _class value that names no document variant.
	ErrUnknownKind = errors.New("unknown document kind")
	// ErrKindMismatch signals a _class value that differs from the decoded variant.
	ErrKindMismatch = errors.New("document kind mismatch")
)

// Document is the closed set of indexable variants: RecipeDocument, IngredientDocument
// and InstructionDocument.
type Document interface {
	Kind() Kind
	sealed()
}

// Decode reads the discriminator and unmarshals data into the matching variant.
// The returned value is one of RecipeDocument, IngredientDocument, InstructionDocument.
func Decode(data []byte) (Document, error) {
	var head struct {
		Class Kind `json:"_class"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("read %s: %w", FieldClass, err)
	}

	switch head.Class {
	case KindRecipe:
		var d RecipeDocument
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return d, nil
	case KindIngredient:
		var d IngredientDocument
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return d, nil
	case KindInstruction:
		var d InstructionDocument
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, head.Class)
	}
}

func checkKind(got, want Kind) error {
	if got != want {
		return fmt.Errorf("%w: got %q, want %q", ErrKindMismatch, got, want)
	}
	return nil
}
