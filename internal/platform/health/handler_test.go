package health

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestLiveness(t *testing.T) {
	h := New("test")
	w := httptest.NewRecorder()

	h.HandleLiveness(w, httptest.NewRequest("GET", "/health/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
}

func TestReadiness(t *testing.T) {
	t.Run("no checks registered", func(t *testing.T) {
		h := New("test")
		w := httptest.NewRecorder()

		h.HandleReadiness(w, httptest.NewRequest("GET", "/health/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ready"`)
	})

	t.Run("failing check returns 503", func(t *testing.T) {
		h := New("test")
		h.RegisterCheck("weights", func() error { return errors.New("weights do not sum to 1.0") })
		w := httptest.NewRecorder()

		h.HandleReadiness(w, httptest.NewRequest("GET", "/health/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "not_ready")
		assert.Contains(t, w.Body.String(), "weights do not sum to 1.0")
	})

	t.Run("passing check reports up", func(t *testing.T) {
		h := New("test")
		h.RegisterCheck("weights", func() error { return nil })
		w := httptest.NewRecorder()

		h.HandleReadiness(w, httptest.NewRequest("GET", "/health/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"weights":"up"`)
	})
}

func TestStatusRoutes(t *testing.T) {
	h := New("staging")
	r := chi.NewRouter()
	h.Register(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"staging"`)
	assert.Contains(t, w.Body.String(), `"healthy"`)
}
