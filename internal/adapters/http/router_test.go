package http_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	adapterhttp "github.com/vilmarcabanero/nx-starter-sub001/internal/adapters/http"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/adapters/http/handlers"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/adapters/http/middleware"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/adapters/storage/memory"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/app"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/platform/health"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := memory.New()

	registry := health.New()
	registry.Register(repo)

	return adapterhttp.NewRouter(
		handlers.NewTodoHandler(app.NewTodoService(repo, logger)),
		handlers.NewHealthHandler(registry),
		middleware.Chain(
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.Logging(logger),
		),
	)
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	router := newRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health/live", "", http.StatusOK},
		{http.MethodGet, "/health/ready", "", http.StatusOK},
		{http.MethodGet, "/api/v1/todos", "", http.StatusOK},
		{http.MethodGet, "/api/v1/todos/stats", "", http.StatusOK},
		{http.MethodPost, "/api/v1/todos", `{"title":"check route table"}`, http.StatusCreated},
		{http.MethodGet, "/api/v1/todos/unknown", "", http.StatusNotFound},
		{http.MethodPost, "/api/v1/todos/unknown/complete", "", http.StatusNotFound},
		{http.MethodPost, "/api/v1/todos/unknown/toggle", "", http.StatusNotFound},
		{http.MethodDelete, "/api/v1/todos/unknown", "", http.StatusNotFound},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		var body io.Reader
		if tt.body != "" {
			body = strings.NewReader(tt.body)
		}
		r := httptest.NewRequest(tt.method, tt.path, body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, w.Code, tt.want)
		}
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	t.Parallel()

	router := newRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/todos", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing, want middleware applied globally")
	}
	if w.Header().Get("X-Correlation-ID") == "" {
		t.Error("X-Correlation-ID header missing, want middleware applied globally")
	}
}
