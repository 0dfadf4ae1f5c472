package chi

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9/typedapi/types"

	"github.com/kailas-cloud/recipedex/internal/domain/document"
	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
)

// ErrorCode is the machine-readable code of an error response.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest            ErrorCode = "bad_request"
	ErrorCodeRouteNotFound         ErrorCode = "route_not_found"
	ErrorCodeMethodNotAllowed      ErrorCode = "method_not_allowed"
	ErrorCodeValidationFailed      ErrorCode = "validation_failed"
	ErrorCodeUnauthorized          ErrorCode = "unauthorized"
	ErrorCodeRecipeNotFound        ErrorCode = "recipe_not_found"
	ErrorCodeDocumentClassMismatch ErrorCode = "document_class_mismatch"
	ErrorCodeBatchTooLarge         ErrorCode = "batch_too_large"
	ErrorCodePayloadTooLarge       ErrorCode = "payload_too_large"
	ErrorCodeStoreUnavailable      ErrorCode = "store_unavailable"
	ErrorCodeInternalError         ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// WallClock is a recipe timestamp. It accepts a zoneless ISO-8601 date-time
// ("2024-03-01T08:30:15") or RFC 3339; an offset, if present, is kept but never applied.
type WallClock struct {
	time.Time
}

var wallClockLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// UnmarshalJSON implements json.Unmarshaler.
func (w *WallClock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	for _, layout := range wallClockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			w.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date-time %q", s)
}

// RecipeRequest is the body of PUT /recipes/{id}.
type RecipeRequest struct {
	Name                 string               `json:"name" validate:"required,max=256"`
	Variation            int                  `json:"variation" validate:"gte=0"`
	Description          string               `json:"description"`
	CreationDateTime     *WallClock           `json:"creationDateTime" validate:"required"`
	LastModifiedDateTime *WallClock           `json:"lastModifiedDateTime" validate:"required"`
	Ingredients          []IngredientRequest  `json:"ingredients" validate:"dive"`
	Instructions         []InstructionRequest `json:"instructions" validate:"dive"`
}

// IngredientRequest is one ingredient line of a recipe payload.
type IngredientRequest struct {
	IngredientID      *int64   `json:"ingredientId" validate:"omitempty,gt=0"`
	IngredientNumber  int      `json:"ingredientNumber" validate:"gte=0"`
	QuantitySpecifier string   `json:"quantitySpecifier" validate:"omitempty,quantity_specifier"`
	Quantity          *float64 `json:"quantity" validate:"omitempty,gte=0"`
	Ingredient        string   `json:"ingredient" validate:"required"`
}

// InstructionRequest is one step of a recipe payload.
type InstructionRequest struct {
	InstructionID     *int64 `json:"instructionId" validate:"omitempty,gt=0"`
	InstructionNumber int    `json:"instructionNumber" validate:"gte=0"`
	Instruction       string `json:"instruction" validate:"required"`
}

// BulkRecipe is one item of POST /recipes/_bulk.
type BulkRecipe struct {
	ID int64 `json:"id" validate:"gt=0"`
	RecipeRequest
}

// BulkRequest is the body of POST /recipes/_bulk.
type BulkRequest struct {
	Recipes []BulkRecipe `json:"recipes" validate:"required,dive"`
}

// BulkResponse lists the indexed documents in request order.
type BulkResponse struct {
	Count int                       `json:"count"`
	Items []document.RecipeDocument `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// SchemaResponse describes the recipes index for both supported engines.
type SchemaResponse struct {
	Index         string             `json:"index"`
	Elasticsearch *types.TypeMapping `json:"elasticsearch"`
	Search        string             `json:"search"`
}

// BuildSchema renders the recipes index schema for documents stored under keyPrefix.
func BuildSchema(keyPrefix string) SchemaResponse {
	return SchemaResponse{
		Index:         document.IndexName,
		Elasticsearch: document.ElasticsearchMapping(),
		Search:        document.SearchIndexDefinition(keyPrefix).String(),
	}
}

// toRecipe builds a validated domain recipe. Errors wrap domain.ErrInvalidRecipe.
func (req RecipeRequest) toRecipe(id int64) (recipe.Recipe, error) {
	ingredients := make([]recipe.Ingredient, len(req.Ingredients))
	for i, in := range req.Ingredients {
		qs, err := recipe.ParseQuantitySpecifier(in.QuantitySpecifier)
		if err != nil {
			return recipe.Recipe{}, fmt.Errorf("ingredients[%d]: %w", i, err)
		}
		ing, err := recipe.NewIngredient(in.IngredientID, in.IngredientNumber, qs, in.Quantity, in.Ingredient)
		if err != nil {
			return recipe.Recipe{}, fmt.Errorf("ingredients[%d]: %w", i, err)
		}
		ingredients[i] = ing
	}

	instructions := make([]recipe.Instruction, len(req.Instructions))
	for i, in := range req.Instructions {
		ins, err := recipe.NewInstruction(in.InstructionID, in.InstructionNumber, in.Instruction)
		if err != nil {
			return recipe.Recipe{}, fmt.Errorf("instructions[%d]: %w", i, err)
		}
		instructions[i] = ins
	}

	var created, modified time.Time
	if req.CreationDateTime != nil {
		created = req.CreationDateTime.Time
	}
	if req.LastModifiedDateTime != nil {
		modified = req.LastModifiedDateTime.Time
	}

	return recipe.New(id, req.Name, req.Variation, req.Description, created, modified, ingredients, instructions)
}

// fieldPath drops the root struct name from a validator namespace:
// "RecipeRequest.ingredients[0].ingredient" becomes "ingredients[0].ingredient".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
