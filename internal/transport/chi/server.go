package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recipedex/internal/domain"
	"github.com/kailas-cloud/recipedex/internal/domain/document"
	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
	logpkg "github.com/kailas-cloud/recipedex/internal/logger"
	healthuc "github.com/kailas-cloud/recipedex/internal/usecase/health"
)

const defaultMaxBodyBytes = 4 << 20

// RecipeService indexes recipes as search documents.
type RecipeService interface {
	Index(ctx context.Context, r recipe.Recipe) (document.RecipeDocument, bool, error)
	IndexBatch(ctx context.Context, recipes []recipe.Recipe) ([]document.RecipeDocument, error)
	Get(ctx context.Context, id int64) (document.RecipeDocument, error)
	Delete(ctx context.Context, id int64) error
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the recipes HTTP API.
type Server struct {
	recipes       RecipeService
	health        HealthChecker
	schema        SchemaResponse
	validate      *validator.Validate
	maxBodyBytes  int64
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(recipes RecipeService, health HealthChecker, schema SchemaResponse, logger *zap.Logger) *Server {
	s := &Server{
		recipes:      recipes,
		health:       health,
		schema:       schema,
		validate:     newValidator(),
		maxBodyBytes: defaultMaxBodyBytes,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrRecipeNotFound, http.StatusNotFound, ErrorCodeRecipeNotFound),
		sentinelHandler(domain.ErrInvalidRecipe, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrBatchTooLarge, http.StatusRequestEntityTooLarge, ErrorCodeBatchTooLarge),
		sentinelHandler(domain.ErrDocumentClassMismatch, http.StatusConflict, ErrorCodeDocumentClassMismatch),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, ErrorCodeStoreUnavailable),
	}
	return s
}

// WithMaxBodyBytes limits request bodies.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Route("/recipes", func(r chi.Router) {
		r.Post("/_bulk", s.BulkIndex)
		r.Put("/{id}", s.IndexRecipe)
		r.Get("/{id}", s.GetRecipe)
		r.Delete("/{id}", s.DeleteRecipe)
	})
	r.Get("/schema", s.Schema)
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
}

// IndexRecipe handles PUT /recipes/{id}.
func (s *Server) IndexRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	var req RecipeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !s.validStruct(w, &req) {
		return
	}

	rec, err := req.toRecipe(id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	doc, created, err := s.recipes.Index(recipeCtx(r, id), rec)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, doc)
}

// BulkIndex handles POST /recipes/_bulk.
func (s *Server) BulkIndex(w http.ResponseWriter, r *http.Request) {
	var req BulkRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !s.validStruct(w, &req) {
		return
	}

	recipes := make([]recipe.Recipe, len(req.Recipes))
	for i, item := range req.Recipes {
		rec, err := item.toRecipe(item.ID)
		if err != nil {
			s.handleDomainError(w, fmt.Errorf("recipes[%d]: %w", i, err))
			return
		}
		recipes[i] = rec
	}

	docs, err := s.recipes.IndexBatch(r.Context(), recipes)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, BulkResponse{Count: len(docs), Items: docs})
}

// GetRecipe handles GET /recipes/{id}.
func (s *Server) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	doc, err := s.recipes.Get(recipeCtx(r, id), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// DeleteRecipe handles DELETE /recipes/{id}.
func (s *Server) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	if err := s.recipes.Delete(recipeCtx(r, id), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Schema handles GET /schema.
func (s *Server) Schema(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.schema)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

func recipeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "recipe id must be a positive integer")
		return 0, false
	}
	return id, true
}

// recipeCtx tags the request logger with the recipe id.
func recipeCtx(r *http.Request, id int64) context.Context {
	return logpkg.With(r.Context(), zap.Int64("recipe_id", id))
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrorCodePayloadTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) validStruct(w http.ResponseWriter, v any) bool {
	err := s.validate.Struct(v)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		s.logger.Error("validator failure", zap.Error(err))
		writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
		return false
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[fieldPath(e.Namespace())] = fmt.Sprintf("failed on '%s' tag", e.Tag())
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    ErrorCodeValidationFailed,
		Message: "invalid recipe",
		Fields:  fields,
	})
	return false
}

// newValidator reports fields by their JSON names and knows the quantity specifiers.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "quantity_specifier", func(fl validator.FieldLevel) bool {
		return recipe.QuantitySpecifier(fl.Field().String()).Valid()
	})
	return v
}

// mustRegister panics when a custom rule cannot be installed.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrRecipeNotFound,
		domain.ErrInvalidRecipe,
		domain.ErrBatchTooLarge,
		domain.ErrDocumentClassMismatch,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
