package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pruefungsplaner/core/internal/domain/entities"
	"github.com/pruefungsplaner/core/internal/infrastructure/config"
	"github.com/pruefungsplaner/core/internal/infrastructure/logger"
	"github.com/pruefungsplaner/core/internal/ports"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*entities.User
	byEmail map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*entities.User),
		byEmail: make(map[string]*entities.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := *user
	f.byID[u.ID] = &u
	f.byEmail[u.Email] = &u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return entities.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return entities.ErrUserNotFound
	}
	delete(f.byID, id)
	delete(f.byEmail, u.Email)
	return nil
}

type fakeAuthRepo struct {
	mu     sync.Mutex
	tokens map[string]*ports.RefreshToken
	nextID int
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{tokens: make(map[string]*ports.RefreshToken)}
}

func (f *fakeAuthRepo) CreateRefreshToken(_ context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.tokens[tokenHash] = &ports.RefreshToken{
		ID:        f.nextID,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeAuthRepo) GetRefreshToken(_ context.Context, tokenHash string) (*ports.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[tokenHash]
	if !ok {
		return nil, entities.ErrUnauthorized
	}
	return t, nil
}

func (f *fakeAuthRepo) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tokens[tokenHash]; ok {
		now := time.Now()
		t.RevokedAt = &now
	}
	return nil
}

func (f *fakeAuthRepo) RevokeAllUserTokens(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, t := range f.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeAuthRepo) CleanupExpiredTokens(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for hash, t := range f.tokens {
		if t.IsExpired() {
			delete(f.tokens, hash)
		}
	}
	return nil
}

func newTestAuthService() (*AuthService, *fakeUserRepo, *fakeAuthRepo) {
	userRepo := newFakeUserRepo()
	authRepo := newFakeAuthRepo()
	cfg := config.JWTConfig{
		Secret:           "test-secret-not-for-production",
		Issuer:           "pruefungsplaner-test",
		ExpiresIn:        15 * time.Minute,
		RefreshExpiresIn: 24 * time.Hour,
	}
	return NewAuthService(userRepo, authRepo, cfg, logger.NewNop()), userRepo, authRepo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, ports.RegisterRequest{
		Email:    "student@example.ch",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Empty(t, resp.User.PasswordHash, "password hash must never leave the service")

	login, err := svc.Login(ctx, ports.LoginRequest{
		Email:    "student@example.ch",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(ctx, ports.LoginRequest{
		Email:    "student@example.ch",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, entities.ErrUnauthorized)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, ports.RegisterRequest{Email: "a@b.ch", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, ports.RegisterRequest{Email: "a@b.ch", Password: "password456"})
	assert.ErrorIs(t, err, entities.ErrEmailTaken)
}

func TestValidateToken(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, ports.RegisterRequest{Email: "a@b.ch", Password: "password123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
	assert.Equal(t, "a@b.ch", claims.Email)

	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, ports.RegisterRequest{Email: "a@b.ch", Password: "password123"})
	require.NoError(t, err)

	rotated, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// The used token is burned.
	_, err = svc.RefreshToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, entities.ErrUnauthorized)

	// The rotated one still works.
	_, err = svc.RefreshToken(ctx, rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, ports.RegisterRequest{Email: "a@b.ch", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.User.ID))

	_, err = svc.RefreshToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, entities.ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, ports.RegisterRequest{Email: "a@b.ch", Password: "password123"})
	require.NoError(t, err)
	userID := resp.User.ID

	assert.ErrorIs(t, svc.ChangePassword(ctx, userID, "wrong", "newpassword1"), entities.ErrUnauthorized)

	require.NoError(t, svc.ChangePassword(ctx, userID, "password123", "newpassword1"))

	_, err = svc.Login(ctx, ports.LoginRequest{Email: "a@b.ch", Password: "password123"})
	assert.ErrorIs(t, err, entities.ErrUnauthorized)

	_, err = svc.Login(ctx, ports.LoginRequest{Email: "a@b.ch", Password: "newpassword1"})
	assert.NoError(t, err)

	// Sessions from before the change are dead.
	_, err = svc.RefreshToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, entities.ErrUnauthorized)
}
