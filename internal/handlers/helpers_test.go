package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/handlers"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/utils/authtoken"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// newTestRouter builds a router with the real auth middleware in front of an /api/v1 group.
func newTestRouter(t *testing.T, register func(v1 *gin.RouterGroup)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, handlers.RegisterValidators())

	r := gin.New()
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret, ""))
	register(v1)
	return r
}

// generateTestToken creates a signed JWT whose subject is userID.
func generateTestToken(t *testing.T, userID string) string {
	t.Helper()
	signed, err := authtoken.Issue(authtoken.Params{
		Subject: userID,
		Secret:  testJWTSecret,
		Issuer:  "ledger-test",
		TTL:     time.Hour,
	})
	require.NoError(t, err)
	return signed
}

// doRequest serves one authenticated request. body may be nil, a string, or any JSON-encodable value.
func doRequest(t *testing.T, r *gin.Engine, method, url, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+generateTestToken(t, userID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
