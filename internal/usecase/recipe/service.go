package recipe

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recipedex/internal/domain"
	"github.com/kailas-cloud/recipedex/internal/domain/document"
	domrecipe "github.com/kailas-cloud/recipedex/internal/domain/recipe"
	"github.com/kailas-cloud/recipedex/internal/logger"
	"github.com/kailas-cloud/recipedex/internal/metrics"
)

// DefaultMaxBatchSize is the bulk limit used when none is configured.
const DefaultMaxBatchSize = 100

// Service maps recipes to search documents and persists them.
type Service struct {
	repo         Repository
	maxBatchSize int
}

// New creates a recipe indexing service.
func New(repo Repository) *Service {
	return &Service{repo: repo, maxBatchSize: DefaultMaxBatchSize}
}

// WithMaxBatchSize configures the bulk limit.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// Index converts r and writes the document. Returns true if the document was created.
func (s *Service) Index(ctx context.Context, r domrecipe.Recipe) (document.RecipeDocument, bool, error) {
	doc := document.FromRecipe(r)

	created, err := s.repo.Save(ctx, doc)
	if err != nil {
		metrics.DocumentsIndexedTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return document.RecipeDocument{}, false, fmt.Errorf("index recipe %d: %w", doc.ID, err)
	}

	outcome := metrics.OutcomeReplaced
	if created {
		outcome = metrics.OutcomeCreated
	}
	metrics.DocumentsIndexedTotal.WithLabelValues(outcome).Inc()
	observeNested(doc)

	logger.FromContext(ctx).Debug("recipe indexed",
		zap.Int64("recipe_id", doc.ID),
		zap.Bool("created", created),
		zap.Int("ingredients", len(doc.Ingredients)),
		zap.Int("instructions", len(doc.Instructions)),
	)
	return doc, created, nil
}

// IndexBatch converts all recipes and writes them in one pipeline, in input order.
// With duplicate ids the last recipe wins.
func (s *Service) IndexBatch(ctx context.Context, recipes []domrecipe.Recipe) ([]document.RecipeDocument, error) {
	if len(recipes) > s.maxBatchSize {
		return nil, fmt.Errorf("%d recipes, limit %d: %w", len(recipes), s.maxBatchSize, domain.ErrBatchTooLarge)
	}

	docs := make([]document.RecipeDocument, len(recipes))
	for i, r := range recipes {
		docs[i] = document.FromRecipe(r)
	}
	if len(docs) == 0 {
		return docs, nil
	}

	metrics.IndexBatchSize.Observe(float64(len(docs)))
	if err := s.repo.SaveBatch(ctx, docs); err != nil {
		metrics.DocumentsIndexedTotal.WithLabelValues(metrics.OutcomeError).Add(float64(len(docs)))
		return nil, fmt.Errorf("index %d recipes: %w", len(docs), err)
	}

	// A pipelined JSON.SET does not tell inserts from overwrites.
	metrics.DocumentsIndexedTotal.WithLabelValues(metrics.OutcomeBatched).Add(float64(len(docs)))
	for i := range docs {
		observeNested(docs[i])
	}

	logger.FromContext(ctx).Debug("recipe batch indexed", zap.Int("count", len(docs)))
	return docs, nil
}

// Get returns the stored document of a recipe.
func (s *Service) Get(ctx context.Context, id int64) (document.RecipeDocument, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return document.RecipeDocument{}, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return doc, nil
}

// Delete removes the stored document of a recipe.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete recipe %d: %w", id, err)
	}
	return nil
}

func observeNested(doc document.RecipeDocument) {
	metrics.DocumentNestedItems.WithLabelValues(string(document.KindIngredient)).Observe(float64(len(doc.Ingredients)))
	metrics.DocumentNestedItems.WithLabelValues(string(document.KindInstruction)).Observe(float64(len(doc.Instructions)))
}
