package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrInvalidName      = errors.New("category name must be 2 to 100 characters")

	PgUniqueViolation = "23505"
)
