package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/handlers"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newRoutedEngine(t *testing.T, cfg *config.Config, db handlers.Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{
		Account:      new(MockAccountService),
		JournalEntry: new(MockJournalEntryService),
		AutoJournal:  new(MockAutoJournalService),
	}, db)
	return r
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRegisterRoutes_Health(t *testing.T) {
	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}

	up := newRoutedEngine(t, cfg, stubPinger{})
	assert.Equal(t, http.StatusOK, serve(up, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, serve(up, http.MethodGet, "/health/live").Code)
	ready := serve(up, http.MethodGet, "/health/ready")
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.JSONEq(t, `{"status":"ready","database":"ok"}`, ready.Body.String())

	down := newRoutedEngine(t, cfg, stubPinger{err: errors.New("connection refused")})
	assert.Equal(t, http.StatusOK, serve(down, http.MethodGet, "/health/live").Code)
	notReady := serve(down, http.MethodGet, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, notReady.Code)
	assert.NotContains(t, notReady.Body.String(), "connection refused")
}

func TestRegisterRoutes_APIRequiresAuth(t *testing.T) {
	r := newRoutedEngine(t, &config.Config{JWTSecret: testJWTSecret, IsProduction: true}, stubPinger{})

	for _, path := range []string{"/api/v1/accounts", "/api/v1/journal-entries", "/api/v1/auto-journal/patterns"} {
		assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, path).Code, path)
	}
}

func TestRegisterRoutes_SwaggerOnlyOutsideProduction(t *testing.T) {
	prod := newRoutedEngine(t, &config.Config{JWTSecret: testJWTSecret, IsProduction: true}, stubPinger{})
	assert.Equal(t, http.StatusNotFound, serve(prod, http.MethodGet, "/swagger/index.html").Code)

	dev := newRoutedEngine(t, &config.Config{JWTSecret: testJWTSecret}, stubPinger{})
	w := serve(dev, http.MethodGet, "/swagger/index.html")
	require.Equal(t, http.StatusOK, w.Code)
}
