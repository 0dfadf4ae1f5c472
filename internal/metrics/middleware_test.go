package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_RecordsDurationAndCount(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/recipes/_bulk", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest("POST", "/recipes/_bulk", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	requestsVal := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/recipes/_bulk", "200"))
	if requestsVal < 1 {
		t.Errorf("expected http_requests_total >= 1, got %f", requestsVal)
	}

	durationCount := testutil.CollectAndCount(httpRequestDuration)
	if durationCount == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMetricsMiddleware_DifferentStatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())

	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/notfound", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/error", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	tests := []struct {
		path           string
		expectedStatus string
	}{
		{"/ok", "200"},
		{"/notfound", "404"},
		{"/error", "500"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, http.NoBody)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", tc.path, tc.expectedStatus))
			if val < 1 {
				t.Errorf("expected requests_total for %s with status %s >= 1, got %f", tc.path, tc.expectedStatus, val)
			}
		})
	}
}

func TestMetricsMiddleware_DifferentMethods(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())

	r.Get("/resource", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("get"))
	})
	r.Post("/resource", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("post"))
	})
	r.Delete("/resource", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("delete"))
	})

	methods := []string{"GET", "POST", "DELETE"}

	for _, method := range methods {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/resource", http.NoBody)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(method, "/resource", "200"))
			if val < 1 {
				t.Errorf("expected requests_total for %s >= 1, got %f", method, val)
			}
		})
	}
}

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unmatched"},
		{"/recipes/{id}", "/recipes/{id}"},
		{"/health", "/health"},
	}

	for _, tc := range tests {
		if got := routeLabel(tc.input); got != tc.expected {
			t.Errorf("routeLabel(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestMetricsMiddleware_ImplicitStatusIsOK(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/schema", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/schema", http.NoBody))

	if val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/schema", "200")); val < 1 {
		t.Errorf("expected requests_total for implicit 200 >= 1, got %f", val)
	}
}

func TestMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/no/such/path", http.NoBody))

	if val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")); val < 1 {
		t.Errorf("expected requests_total for unmatched route >= 1, got %f", val)
	}
}

func TestMetricsMiddleware_InFlight(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())

	var during float64
	r.Get("/slow", func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(httpRequestsInFlight)
	})

	before := testutil.ToFloat64(httpRequestsInFlight)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/slow", http.NoBody))

	if during != before+1 {
		t.Errorf("in-flight during request = %f, want %f", during, before+1)
	}
	if after := testutil.ToFloat64(httpRequestsInFlight); after != before {
		t.Errorf("in-flight after request = %f, want %f", after, before)
	}
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/recipes/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/recipes/42", http.NoBody)
	r.ServeHTTP(httptest.NewRecorder(), req)

	val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/recipes/{id}", "200"))
	if val < 1 {
		t.Errorf("expected requests_total for route pattern >= 1, got %f", val)
	}
}

func TestMetricsHandler_ViaPromhttp(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/ping", http.NoBody))

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	body, err := io.ReadAll(rr.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}

	if !strings.Contains(string(body), "recipedex_http_requests_total") {
		t.Error("expected recipedex_http_requests_total in metrics output")
	}
}
