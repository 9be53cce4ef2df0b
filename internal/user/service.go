package user

import (
	"context"
	"errors"
	"storefront-be/internal/logger"
	"strings"

	"go.uber.org/zap"
)

// TokenIssuer is satisfied by auth.TokenManager.
type TokenIssuer interface {
	Generate(userID uint) (string, error)
	Parse(token string) (uint, error)
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	ResolvePrincipal(ctx context.Context, token string) (*User, error)
}

type service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	log := logger.FromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.Create(ctx, CreateUserParams{
		Email:    email,
		Password: hashed,
		FullName: input.FullName,
		IsAdmin:  input.IsAdmin,
	})
	if err != nil {
		return nil, err
	}

	log.Info("user registered", zap.Uint("user_id", u.ID))
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("login rejected: unknown email")
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Info("login rejected: password mismatch", zap.Uint("user_id", u.ID))
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// ResolvePrincipal maps a bearer token to a live user row. Tokens of deleted
// users are rejected.
func (s *service) ResolvePrincipal(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	id, err := s.tokens.Parse(token)
	if err != nil {
		logger.FromCtx(ctx).Debug("token rejected", zap.Error(err))
		return nil, ErrUnauthorized
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return u, nil
}
