package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/repository"
	"github.com/fjod/go_storefront/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	registerFunc func(ctx context.Context, email, password, name string) (*domain.User, error)
	loginFunc    func(ctx context.Context, email, password string) (string, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	return m.registerFunc(ctx, email, password, name)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return m.loginFunc(ctx, email, password)
}

func TestRegister_Created(t *testing.T) {
	svc := &mockAuthService{
		registerFunc: func(_ context.Context, email, _, name string) (*domain.User, error) {
			return &domain.User{ID: 1, Email: email, Name: name, PasswordHash: "hash"}, nil
		},
	}
	h := NewAuthHandler(svc)

	body := []byte(`{"email":"alice@example.com","password":"secret123","name":"Alice"}`)
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var user domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "alice@example.com", user.Email)
	// the password hash must never appear on the wire
	assert.NotContains(t, rec.Body.String(), "hash")
}

func TestRegister_EmailTakenIs409(t *testing.T) {
	svc := &mockAuthService{
		registerFunc: func(_ context.Context, _, _, _ string) (*domain.User, error) {
			return nil, repository.ErrEmailTaken
		},
	}
	h := NewAuthHandler(svc)

	body := []byte(`{"email":"alice@example.com","password":"secret123","name":"Alice"}`)
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body)))

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "email_taken", resp.Code)
}

func TestRegister_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte(`{{`))))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_ReturnsToken(t *testing.T) {
	svc := &mockAuthService{
		loginFunc: func(_ context.Context, _, _ string) (string, error) {
			return "signed-token", nil
		},
	}
	h := NewAuthHandler(svc)

	body := []byte(`{"email":"alice@example.com","password":"secret123"}`)
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp["token"])
}

func TestLogin_BadCredentialsIs401(t *testing.T) {
	svc := &mockAuthService{
		loginFunc: func(_ context.Context, _, _ string) (string, error) {
			return "", service.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc)

	body := []byte(`{"email":"alice@example.com","password":"wrong"}`)
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body)))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_credentials", resp.Code)
}
