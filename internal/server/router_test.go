package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"long-division-api/internal/calculator"
	"long-division-api/internal/history"
	"long-division-api/internal/observability"
	"long-division-api/internal/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	observability.Logger = zap.NewNop()
	if err := calculator.InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}
	return NewRouter(calculator.NewHandler(history.NewMemoryStore(history.DefaultLimit)))
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterLongDivisionSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/long", `{"dividend":567,"divisor":8}`)
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Result().Body, &payload)

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}

	if got, ok := payload["quotient"].(float64); !ok || got != 70 {
		t.Fatalf("expected quotient 70, got %#v", payload["quotient"])
	}
	if got, ok := payload["remainder"].(float64); !ok || got != 7 {
		t.Fatalf("expected remainder 7, got %#v", payload["remainder"])
	}
}

func TestNewRouterRejectedDivisionCarriesRequestIDHeaderOnly(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/long", `{"dividend":5,"divisor":0}`)
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
	if w.Result().Header.Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header on error responses")
	}
	if got := testutil.ErrorMessage(t, w.Body); got != "cannot divide by zero" {
		t.Fatalf("expected error %q, got %q", "cannot divide by zero", got)
	}
}

func TestNewRouterServesMetrics(t *testing.T) {
	router := newRouter(t)

	testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/calculator/long", `{"dividend":9,"divisor":4}`), router)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/metrics", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	if !strings.Contains(w.Body.String(), "division_history_appends_total") {
		t.Fatal("expected history metrics in /metrics output")
	}
}
