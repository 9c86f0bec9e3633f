package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/adapters/http/middleware"
)

// appendHeader returns middleware that appends marker to the X-Order header
// on the way in.
func appendHeader(marker string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Order", marker)
			next.ServeHTTP(w, r)
		})
	}
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	handler := middleware.Chain(
		appendHeader("outer"),
		appendHeader("middle"),
		appendHeader("inner"),
	)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	got := w.Header().Values("X-Order")
	want := []string{"outer", "middle", "inner"}
	if len(got) != len(want) {
		t.Fatalf("X-Order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("X-Order[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChain_Empty(t *testing.T) {
	t.Parallel()

	called := false
	handler := middleware.Chain()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if !called {
		t.Error("handler was not called through an empty chain")
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
}
