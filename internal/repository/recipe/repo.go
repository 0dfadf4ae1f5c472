package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/recipedex/internal/db"
	"github.com/kailas-cloud/recipedex/internal/domain"
	"github.com/kailas-cloud/recipedex/internal/domain/document"
)

// store is the consumer interface for recipe documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Repo implements usecase/recipe.Repository on top of a JSON document store.
type Repo struct {
	store  store
	prefix string
}

// New creates a recipe repository. Documents live under prefix+id.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Save writes the document at the root path. Returns true if the key did not exist before.
func (r *Repo) Save(ctx context.Context, doc document.RecipeDocument) (bool, error) {
	key := r.key(doc.ID)
	data, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("marshal recipe document %d: %w", doc.ID, err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, storeErr("check exists "+key, err)
	}

	if err := r.store.JSONSet(ctx, key, db.RootPath, data); err != nil {
		return false, storeErr("json.set "+key, err)
	}
	return !exists, nil
}

// SaveBatch writes all documents in one pipeline.
func (r *Repo) SaveBatch(ctx context.Context, docs []document.RecipeDocument) error {
	if len(docs) == 0 {
		return nil
	}

	items := make([]db.JSONSetItem, len(docs))
	for i, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal recipe document %d: %w", doc.ID, err)
		}
		items[i] = db.JSONSetItem{Key: r.key(doc.ID), Path: db.RootPath, Data: data}
	}

	if err := r.store.JSONSetMulti(ctx, items); err != nil {
		return storeErr("json.set batch", err)
	}
	return nil
}

// Get loads and decodes the stored document.
func (r *Repo) Get(ctx context.Context, id int64) (document.RecipeDocument, error) {
	key := r.key(id)
	raw, err := r.store.JSONGet(ctx, key, db.RootPath)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return document.RecipeDocument{}, domain.ErrRecipeNotFound
		}
		return document.RecipeDocument{}, storeErr("json.get "+key, err)
	}

	// JSON.GET with a $ path answers with an array of matches.
	var matches []json.RawMessage
	if err := json.Unmarshal(raw, &matches); err != nil {
		return document.RecipeDocument{}, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	if len(matches) == 0 {
		return document.RecipeDocument{}, domain.ErrRecipeNotFound
	}

	decoded, err := document.Decode(matches[0])
	if err != nil {
		if errors.Is(err, document.ErrUnknownKind) || errors.Is(err, document.ErrKindMismatch) {
			return document.RecipeDocument{}, fmt.Errorf("%s: %w: %w", key, domain.ErrDocumentClassMismatch, err)
		}
		return document.RecipeDocument{}, fmt.Errorf("decode %s: %w", key, err)
	}
	doc, ok := decoded.(document.RecipeDocument)
	if !ok {
		return document.RecipeDocument{}, fmt.Errorf("%s holds %q: %w", key, decoded.Kind(), domain.ErrDocumentClassMismatch)
	}
	return doc, nil
}

// Delete removes the stored document.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	key := r.key(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return storeErr("check exists "+key, err)
	}
	if !exists {
		return domain.ErrRecipeNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return storeErr("del "+key, err)
	}
	return nil
}

func (r *Repo) key(id int64) string {
	return r.prefix + strconv.FormatInt(id, 10)
}

func storeErr(op string, err error) error {
	if errors.Is(err, db.ErrUnavailable) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
