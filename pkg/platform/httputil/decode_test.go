package httputil

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "sift/pkg/domain-errors"
)

type validatingRequest struct {
	Name string `json:"name"`
}

func (r *validatingRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *validatingRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecodeJSON(t *testing.T) {
	t.Run("valid body decodes", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"alice"}`))
		w := httptest.NewRecorder()

		result, ok := DecodeJSON[validatingRequest](w, req, discardLogger(), context.Background(), "req-1")
		require.True(t, ok)
		assert.Equal(t, "alice", result.Name)
	})

	t.Run("malformed body writes 400", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
		w := httptest.NewRecorder()

		result, ok := DecodeJSON[validatingRequest](w, req, discardLogger(), context.Background(), "req-1")
		assert.False(t, ok)
		assert.Nil(t, result)
		assert.Equal(t, 400, w.Code)
		assert.Contains(t, w.Body.String(), "bad_request")
	})
}

func TestDecodeAndPrepare(t *testing.T) {
	t.Run("normalizes then validates", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"  alice  "}`))
		w := httptest.NewRecorder()

		result, ok := DecodeAndPrepare[validatingRequest](w, req, discardLogger(), context.Background(), "req-1")
		require.True(t, ok)
		assert.Equal(t, "alice", result.Name)
	})

	t.Run("validation failure writes domain error", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"   "}`))
		w := httptest.NewRecorder()

		result, ok := DecodeAndPrepare[validatingRequest](w, req, discardLogger(), context.Background(), "req-1")
		assert.False(t, ok)
		assert.Nil(t, result)
		assert.Equal(t, 400, w.Code)
		assert.Contains(t, w.Body.String(), "validation_error")
		assert.Contains(t, w.Body.String(), "name is required")
	})
}
