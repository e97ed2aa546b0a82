package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fjod/go_storefront/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTokenParser struct {
	identity *service.Identity
	err      error
}

func (m *mockTokenParser) ParseToken(_ string) (*service.Identity, error) {
	return m.identity, m.err
}

func identityEcho() (http.Handler, *[]*service.Identity) {
	var seen []*service.Identity
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, getIdentityFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
	return h, &seen
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	next, seen := identityEcho()
	parser := &mockTokenParser{identity: &service.Identity{UserID: 7, IsAdmin: true}}
	handler := AuthMiddleware(parser)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, *seen, 1)
	assert.Equal(t, int64(7), (*seen)[0].UserID)
	assert.True(t, (*seen)[0].IsAdmin)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	next, seen := identityEcho()
	handler := AuthMiddleware(&mockTokenParser{})(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, *seen)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	next, seen := identityEcho()
	handler := AuthMiddleware(&mockTokenParser{})(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, *seen)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	next, seen := identityEcho()
	parser := &mockTokenParser{err: fmt.Errorf("token is expired")}
	handler := AuthMiddleware(parser)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, *seen)
}

func TestAdminOnly_AllowsAdmin(t *testing.T) {
	next, _ := identityEcho()
	parser := &mockTokenParser{identity: &service.Identity{UserID: 1, IsAdmin: true}}
	handler := AuthMiddleware(parser)(AdminOnly(next))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminOnly_RejectsRegularUser(t *testing.T) {
	next, seen := identityEcho()
	parser := &mockTokenParser{identity: &service.Identity{UserID: 7}}
	handler := AuthMiddleware(parser)(AdminOnly(next))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, *seen)
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = getRequestID(r.Context())
	})
	handler := RequestIDMiddleware(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, gotID)
	assert.Equal(t, gotID, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDMiddleware_PreservesIncomingID(t *testing.T) {
	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = getRequestID(r.Context())
	})
	handler := RequestIDMiddleware(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-chosen-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "client-chosen-id", gotID)
	assert.Equal(t, "client-chosen-id", rec.Header().Get("X-Request-ID"))
}
