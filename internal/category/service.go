package category

import (
	"context"
	"storefront-be/internal/logger"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, filter string) ([]*Category, error)
	Create(ctx context.Context, name string) (*Category, error)
	Rename(ctx context.Context, id uint, name string) (*Category, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter string) ([]*Category, error) {
	return s.repo.List(ctx, strings.TrimSpace(filter))
}

func (s *service) Create(ctx context.Context, name string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", name),
	)

	name, err := normalizeName(name)
	if err != nil {
		log.Warn("invalid category name")
		return nil, err
	}

	c, err := s.repo.Create(ctx, name)
	if err != nil {
		log.Error("failed to add category", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *service) Rename(ctx context.Context, id uint, name string) (*Category, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	return s.repo.Rename(ctx, id, name)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		return "", ErrInvalidName
	}
	return name, nil
}
