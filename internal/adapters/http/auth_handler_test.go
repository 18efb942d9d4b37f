package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pruefungsplaner/core/internal/domain/entities"
	"github.com/pruefungsplaner/core/internal/infrastructure/logger"
	"github.com/pruefungsplaner/core/internal/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResponse, error)
	loginFn    func(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error)
}

func (s *stubAuthService) Register(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResponse, error) {
	return s.registerFn(ctx, req)
}

func (s *stubAuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error) {
	return s.loginFn(ctx, req)
}

func (s *stubAuthService) RefreshToken(context.Context, string) (*ports.AuthResponse, error) {
	return nil, entities.ErrUnauthorized
}

func (s *stubAuthService) Logout(context.Context, uuid.UUID) error { return nil }

func (s *stubAuthService) ChangePassword(context.Context, uuid.UUID, string, string) error {
	return nil
}

func newAuthTestEnv(svc ports.AuthService) (*echo.Echo, *AuthHandler) {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e, NewAuthHandler(svc, logger.NewNop())
}

func TestRegisterHandler(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, req ports.RegisterRequest) (*ports.AuthResponse, error) {
			assert.Equal(t, "student@example.ch", req.Email)
			return &ports.AuthResponse{
				AccessToken: "token", TokenType: "Bearer",
				User: &entities.User{ID: uuid.New(), Email: req.Email},
			}, nil
		},
	}
	e, h := newAuthTestEnv(svc)

	body := `{"email":"student@example.ch","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Register(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegisterHandlerConflictOnTakenEmail(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterRequest) (*ports.AuthResponse, error) {
			return nil, entities.ErrEmailTaken
		},
	}
	e, h := newAuthTestEnv(svc)

	body := `{"email":"student@example.ch","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Register(e.NewContext(req, rec))
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestLoginHandlerRejectsBadCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, ports.LoginRequest) (*ports.AuthResponse, error) {
			return nil, entities.ErrUnauthorized
		},
	}
	e, h := newAuthTestEnv(svc)

	body := `{"email":"student@example.ch","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
