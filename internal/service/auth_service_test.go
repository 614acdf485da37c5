package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"peakbridge/internal/config"
	"peakbridge/internal/domain"
	"peakbridge/internal/port"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[uuid.UUID]*domain.User
}

func (s *stubUserRepo) Create(ctx context.Context, u *domain.User) error { return nil }
func (s *stubUserRepo) Update(ctx context.Context, u *domain.User) error { return nil }

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

var _ port.UserRepository = (*stubUserRepo)(nil)

func testAuthService(users ...*domain.User) AuthService {
	repo := &stubUserRepo{
		byEmail: map[string]*domain.User{},
		byID:    map[uuid.UUID]*domain.User{},
	}
	for _, u := range users {
		repo.byEmail[u.Email] = u
		repo.byID[u.ID] = u
	}
	return NewAuthService(repo, config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		Issuer:             "peakbridge",
	})
}

func testUser(t *testing.T, password string, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "ops@example.com",
		PasswordHash: string(hash),
		FullName:     "Ops",
		IsActive:     active,
	}
}

func TestLoginSuccess(t *testing.T) {
	user := testUser(t, "correct-horse", true)
	svc := testAuthService(user)

	pair, err := svc.Login(context.Background(), LoginInput{Email: user.Email, Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	user := testUser(t, "correct-horse", true)
	svc := testAuthService(user)

	_, err := svc.Login(context.Background(), LoginInput{Email: user.Email, Password: "battery-staple"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := testAuthService()

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	user := testUser(t, "correct-horse", false)
	svc := testAuthService(user)

	_, err := svc.Login(context.Background(), LoginInput{Email: user.Email, Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestRefreshToken(t *testing.T) {
	user := testUser(t, "correct-horse", true)
	svc := testAuthService(user)
	ctx := context.Background()

	pair, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: "correct-horse"})
	require.NoError(t, err)

	fresh, err := svc.RefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	user := testUser(t, "correct-horse", true)
	svc := testAuthService(user)
	ctx := context.Background()

	pair, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: "correct-horse"})
	require.NoError(t, err)

	// Audiences must not be interchangeable.
	_, err = svc.RefreshToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := testAuthService()

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	user := testUser(t, "correct-horse", true)
	svc := testAuthService(user)

	pair, err := svc.Login(context.Background(), LoginInput{Email: user.Email, Password: "correct-horse"})
	require.NoError(t, err)

	other := NewAuthService(&stubUserRepo{}, config.JWTConfig{Secret: "different", AccessTokenExpiry: time.Minute, RefreshTokenExpiry: time.Hour})
	_, err = other.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}
