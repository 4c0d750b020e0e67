package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sanavia/clinica/internal/config"
	"github.com/sanavia/clinica/internal/domain"
	"github.com/sanavia/clinica/pkg/auth"
)

type userRepoMock struct {
	ListFn          func(ctx context.Context) ([]*domain.User, error)
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	UpdateDetailsFn func(ctx context.Context, id uuid.UUID, username, email string, role domain.Role, identNumber string) error
	SetActiveFn     func(ctx context.Context, id uuid.UUID, active bool) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
	RecordLoginFn   func(ctx context.Context, id uuid.UUID) error
}

func (m *userRepoMock) List(ctx context.Context) ([]*domain.User, error) {
	return m.ListFn(ctx)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *userRepoMock) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.GetByUsernameFn(ctx, username)
}

func (m *userRepoMock) UpdateDetails(ctx context.Context, id uuid.UUID, username, email string, role domain.Role, identNumber string) error {
	return m.UpdateDetailsFn(ctx, id, username, email, role, identNumber)
}

func (m *userRepoMock) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.SetActiveFn(ctx, id, active)
}

func (m *userRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFn(ctx, id)
}

func (m *userRepoMock) RecordLogin(ctx context.Context, id uuid.UUID) error {
	if m.RecordLoginFn != nil {
		return m.RecordLoginFn(ctx, id)
	}
	return nil
}

func newUserService(repo UserRepository) *UserService {
	mgr := auth.NewJWTManager(config.JWTConfig{
		Secret:   "test-secret",
		TokenTTL: time.Hour,
		Issuer:   "clinica-test",
	})
	return NewUserService(repo, mgr, zap.NewNop())
}

func hashedUser(password string, active bool) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID:           uuid.New(),
		Username:     "dr.ruiz",
		Email:        "ruiz@clinica.example",
		PasswordHash: string(hash),
		Role:         domain.RoleMedico,
		IsActive:     active,
	}
}

func TestLoginIssuesBearerToken(t *testing.T) {
	user := hashedUser("s3cret", true)
	var loginRecorded bool
	repo := &userRepoMock{
		GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			assert.Equal(t, "dr.ruiz", username)
			return user, nil
		},
		RecordLoginFn: func(ctx context.Context, id uuid.UUID) error {
			loginRecorded = true
			return nil
		},
	}
	svc := newUserService(repo)

	resp, err := svc.Login(context.Background(), "dr.ruiz", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.True(t, loginRecorded)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &userRepoMock{
		GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return hashedUser("s3cret", true), nil
		},
	}
	svc := newUserService(repo)

	_, err := svc.Login(context.Background(), "dr.ruiz", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	repo := &userRepoMock{
		GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	svc := newUserService(repo)

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := &userRepoMock{
		GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return hashedUser("s3cret", false), nil
		},
	}
	svc := newUserService(repo)

	_, err := svc.Login(context.Background(), "dr.ruiz", "s3cret")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestUpdateDetailsValidation(t *testing.T) {
	repo := &userRepoMock{
		UpdateDetailsFn: func(ctx context.Context, id uuid.UUID, username, email string, role domain.Role, identNumber string) error {
			t.Fatal("update must not run when validation fails")
			return nil
		},
	}
	svc := newUserService(repo)

	err := svc.UpdateDetails(context.Background(), uuid.New(), "", "", domain.Role("intruso"), "")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
}
