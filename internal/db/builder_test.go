package db

import (
	"reflect"
	"strings"
	"testing"
)

func TestIndexBuilder_Simple(t *testing.T) {
	idx := NewIndex("test-idx").
		Prefix("doc:").
		Tag("category").
		Numeric("price").
		MustBuild()

	if err := idx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name != "test-idx" {
		t.Errorf("name = %q, want test-idx", idx.Name)
	}
	if idx.StorageType != StorageHash {
		t.Errorf("storage = %q, want HASH", idx.StorageType)
	}
	if len(idx.Fields) != 2 {
		t.Fatalf("fields count = %d, want 2", len(idx.Fields))
	}
	if idx.Fields[0].Name != "category" || idx.Fields[0].Type != IndexFieldTag {
		t.Errorf("field[0] = %+v, want category TAG", idx.Fields[0])
	}
	if idx.Fields[1].Name != "price" || idx.Fields[1].Type != IndexFieldNumeric {
		t.Errorf("field[1] = %+v, want price NUMERIC", idx.Fields[1])
	}
}

func TestIndexBuilder_JSONPathsWithAliases(t *testing.T) {
	idx := NewIndex("recipes").
		OnJSON().
		Prefix("recipes:").
		Text("$.name").As("name").
		Text("$.ingredients[*].ingredient").As("ingredients_ingredient").
		Numeric("$.id").As("id").Sortable().
		MustBuild()

	if idx.StorageType != StorageJSON {
		t.Errorf("storage = %q, want JSON", idx.StorageType)
	}
	if idx.Fields[1].Alias != "ingredients_ingredient" {
		t.Errorf("alias = %q, want ingredients_ingredient", idx.Fields[1].Alias)
	}
	if !idx.Fields[2].Sortable || idx.Fields[0].Sortable {
		t.Errorf("sortable applied to the wrong field: %+v", idx.Fields)
	}
}

func TestIndexBuilder_AsWithoutFieldIsNoop(t *testing.T) {
	b := NewIndex("idx").As("x").Sortable().Tag("t")
	idx := b.MustBuild()
	if idx.Fields[0].Alias != "" || idx.Fields[0].Sortable {
		t.Errorf("modifier leaked onto later field: %+v", idx.Fields[0])
	}
}

func TestIndexBuilder_TagOptions(t *testing.T) {
	idx := NewIndex("tag-idx").
		Prefix("t:").
		TagWithOpts("tags", "|", true).
		MustBuild()

	f := idx.Fields[0]
	if f.TagSeparator != "|" {
		t.Errorf("separator = %q, want |", f.TagSeparator)
	}
	if !f.TagCaseSensitive {
		t.Error("expected TagCaseSensitive=true")
	}
}

func TestIndexBuilder_MultiplePrefixes(t *testing.T) {
	idx := NewIndex("multi-idx").
		Prefix("a:", "b:", "c:").
		Tag("x").
		MustBuild()

	if len(idx.Prefixes) != 3 {
		t.Errorf("prefix count = %d, want 3", len(idx.Prefixes))
	}
}

func TestIndexBuilder_BuildReturnsIndependentCopy(t *testing.T) {
	b := NewIndex("idx").Tag("a")
	first := b.MustBuild()
	b.Tag("b")

	if len(first.Fields) != 1 {
		t.Errorf("built definition changed after further building: %+v", first.Fields)
	}
}

func TestIndexBuilder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder func() (*IndexDefinition, error)
		wantErr string
	}{
		{
			name: "empty name",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("").Tag("x").Build()
			},
			wantErr: "index name is required",
		},
		{
			name: "no fields",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Build()
			},
			wantErr: "at least one field",
		},
		{
			name: "invalid characters",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx with spaces").Tag("x").Build()
			},
			wantErr: "invalid characters",
		},
		{
			name: "json field without path",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").OnJSON().Text("name").Build()
			},
			wantErr: "must be a JSONPath",
		},
		{
			name: "invalid alias",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").OnJSON().Text("$.a.b").As("a.b").Build()
			},
			wantErr: "alias contains invalid characters",
		},
		{
			name: "weight on tag",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Tag("kind").Weight(2).Build()
			},
			wantErr: "TEXT fields only",
		},
		{
			name: "negative weight",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Text("body").Weight(-1).Build()
			},
			wantErr: "must not be negative",
		},
		{
			name: "duplicate alias",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").OnJSON().Text("$.a").As("x").Numeric("$.b").As("x").Build()
			},
			wantErr: "duplicate field name: x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIndexDefinition_Args(t *testing.T) {
	idx := NewIndex("my-idx").
		OnJSON().
		Prefix("doc:").
		TagWithOpts("$.kind", ",", true).As("kind").
		Numeric("$.n").As("n").Sortable().
		MustBuild()

	want := []string{
		"my-idx", "ON", "JSON", "PREFIX", "1", "doc:", "SCHEMA",
		"$.kind", "AS", "kind", "TAG", "SEPARATOR", ",", "CASESENSITIVE",
		"$.n", "AS", "n", "NUMERIC", "SORTABLE",
	}
	if got := idx.Args(); !reflect.DeepEqual(got, want) {
		t.Errorf("args:\ngot  %v\nwant %v", got, want)
	}
}

func TestIndexDefinition_String(t *testing.T) {
	idx := NewIndex("my-idx").
		Prefix("doc:").
		Tag("cat").
		Text("body").
		MustBuild()

	s := idx.String()
	if !strings.HasPrefix(s, "FT.CREATE my-idx ON HASH") {
		t.Errorf("expected FT.CREATE prefix, got %q", s)
	}
	if !strings.HasSuffix(s, "SCHEMA cat TAG body TEXT") {
		t.Errorf("unexpected schema rendering %q", s)
	}
}

func TestIndexDefinition_DuplicateFields(t *testing.T) {
	idx := &IndexDefinition{
		Name: "dup-idx",
		Fields: []IndexField{
			{Name: "field1", Type: IndexFieldTag},
			{Name: "field1", Type: IndexFieldNumeric},
		},
	}

	if err := idx.Validate(); err == nil {
		t.Fatal("expected error for duplicate fields")
	}
}

func TestIndexDefinition_TextOptions(t *testing.T) {
	idx := NewIndex("recipes").
		OnJSON().
		Text("$.name").As("name").Weight(2).
		Text("$.ingredients[*].ingredient").As("ingredient").Weight(1.5).
		MustBuild()

	want := []string{
		"recipes", "ON", "JSON", "SCHEMA",
		"$.name", "AS", "name", "TEXT", "WEIGHT", "2",
		"$.ingredients[*].ingredient", "AS", "ingredient", "TEXT", "WEIGHT", "1.5",
	}
	if got := idx.Args(); !reflect.DeepEqual(got, want) {
		t.Errorf("args:\ngot  %v\nwant %v", got, want)
	}
}
