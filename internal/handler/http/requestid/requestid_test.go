package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, "abc", FromContext(WithRequestID(context.Background(), "abc")))
	assert.Equal(t, "", FromContext(context.Background()))
	assert.Equal(t, "", FromContext(context.WithValue(context.Background(), RequestIDKey, 12345)))
}

func serve(t *testing.T, header string) (ctxID, respID string) {
	t.Helper()
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return ctxID, rec.Header().Get(RequestIDHeader)
}

func TestMiddleware_PropagatesClientID(t *testing.T) {
	ctxID, respID := serve(t, "edge-1234.abc_Z")

	assert.Equal(t, "edge-1234.abc_Z", ctxID)
	assert.Equal(t, ctxID, respID)
}

func TestMiddleware_GeneratesUUID(t *testing.T) {
	ctxID, respID := serve(t, "")

	_, err := uuid.Parse(ctxID)
	require.NoError(t, err)
	assert.Equal(t, ctxID, respID)
}

func TestMiddleware_ReplacesMalformedID(t *testing.T) {
	tests := map[string]string{
		"newline":  "abc\ninjected=1",
		"spaces":   "a b",
		"too long": strings.Repeat("x", 129),
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			ctxID, respID := serve(t, header)
			assert.NotEqual(t, header, ctxID)
			_, err := uuid.Parse(ctxID)
			assert.NoError(t, err)
			assert.Equal(t, ctxID, respID)
		})
	}
}

func TestMiddleware_UniquePerRequest(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, _ := serve(t, "")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
