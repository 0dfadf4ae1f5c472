package recipe

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/recipedex/internal/db"
	"github.com/kailas-cloud/recipedex/internal/domain/document"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn      func(ctx context.Context, key, path string, data []byte) error
	jsonSetMultiFn func(ctx context.Context, items []db.JSONSetItem) error
	jsonGetFn      func(ctx context.Context, key string, paths ...string) ([]byte, error)
	delFn          func(ctx context.Context, key string) error
	existsFn       func(ctx context.Context, key string) (bool, error)
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error {
	if m.jsonSetMultiFn != nil {
		return m.jsonSetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "recipes:"), ms
}

func testDocument(t *testing.T) document.RecipeDocument {
	t.Helper()
	qty := 1.5
	return document.RecipeDocument{
		ID:                   7,
		Name:                 "Pancakes",
		Description:          "Basic",
		CreationDateTime:     time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC),
		LastModifiedDateTime: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
		Ingredients: []document.IngredientDocument{
			{IngredientNumber: 1, QuantitySpecifier: "Cup", Quantity: &qty, Ingredient: "flour"},
		},
		Instructions: []document.InstructionDocument{
			{InstructionNumber: 1, Instruction: "Mix"},
		},
	}
}
