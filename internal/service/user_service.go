package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sanavia/clinica/internal/domain"
	"github.com/sanavia/clinica/pkg/auth"
)

type UserRepository interface {
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, username, email string, role domain.Role, identNumber string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	RecordLogin(ctx context.Context, id uuid.UUID) error
}

type UserService struct {
	repo       UserRepository
	jwtManager *auth.JWTManager
	log        *zap.Logger
}

func NewUserService(repo UserRepository, jwtManager *auth.JWTManager, log *zap.Logger) *UserService {
	return &UserService{repo: repo, jwtManager: jwtManager, log: log}
}

func (s *UserService) Login(ctx context.Context, username, password string) (*domain.TokenResponse, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		// Dummy hash comparison keeps response time flat so failures do
		// not reveal whether the username exists.
		_, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("failed login attempt", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	_ = s.repo.RecordLogin(ctx, user.ID)

	token, expiresAt, err := s.jwtManager.Generate(domain.Principal{
		ID:       user.ID,
		Username: user.Username,
	})
	if err != nil {
		s.log.Error("failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("generating token: %w", err)
	}

	s.log.Info("user logged in", zap.String("user_id", user.ID.String()))

	return &domain.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) UpdateDetails(ctx context.Context, id uuid.UUID, username, email string, role domain.Role, identNumber string) error {
	var errs []string
	if strings.TrimSpace(username) == "" {
		errs = append(errs, "username is required")
	}
	if strings.TrimSpace(email) == "" {
		errs = append(errs, "email is required")
	}
	if !role.IsValid() {
		errs = append(errs, "role is invalid")
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	return s.repo.UpdateDetails(ctx, id, username, email, role, identNumber)
}

func (s *UserService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
