package domain

import "errors"

var (
	// ErrRecipeNotFound signals a missing recipe document.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrInvalidRecipe signals a recipe that violates domain rules.
	ErrInvalidRecipe = errors.New("invalid recipe")
	// ErrDocumentClassMismatch signals a stored document whose _class is not the expected variant.
	ErrDocumentClassMismatch = errors.New("document class mismatch")
	// ErrStoreUnavailable signals that the document store is not accepting requests.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrBatchTooLarge signals a bulk request above the configured limit.
	ErrBatchTooLarge = errors.New("batch too large")
)
