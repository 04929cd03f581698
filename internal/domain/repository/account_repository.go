package repository

import (
	"context"
	"errors"

	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a unique email constraint is violated.
	ErrDuplicateEmail = errors.New("email already registered")
)

// AccountRepository persists accounts of one kind (buyers or sellers).
// Implementations are bound to a single table at construction time.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id int64) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	// UpdateTokens overwrites the stored session pair, invalidating any
	// previously issued refresh token.
	UpdateTokens(ctx context.Context, id int64, accessToken, refreshToken string) error
	// ClearTokens removes the stored session pair.
	ClearTokens(ctx context.Context, id int64) error
}
