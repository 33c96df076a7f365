package cache

import (
	"context"
	"errors"

	"github.com/sreemonkavungal/BurgerByte/internal/domain"
)

// CartCache keeps a user's cart lines close to the request path. The cache
// is an optimization only; the user document stays the source of truth.
type CartCache interface {
	Get(ctx context.Context, userID string) ([]domain.CartLine, error)
	Set(ctx context.Context, userID string, lines []domain.CartLine) error
	Delete(ctx context.Context, userID string) error
}

var ErrCacheMiss = errors.New("cache miss")
