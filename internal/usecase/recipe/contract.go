package recipe

import (
	"context"

	"github.com/kailas-cloud/recipedex/internal/domain/document"
)

// Repository defines the storage contract for recipe documents.
type Repository interface {
	Save(ctx context.Context, doc document.RecipeDocument) (created bool, err error)
	SaveBatch(ctx context.Context, docs []document.RecipeDocument) error
	Get(ctx context.Context, id int64) (document.RecipeDocument, error)
	Delete(ctx context.Context, id int64) error
}
