package catalog

import (
	"context"
	"errors"

	"github.com/yashd04xyz/LC-web/internal/domain"
)

// ListingCache holds filtered catalog listings close to the handler so a
// busy shop page does not hammer the database.
type ListingCache interface {
	Get(ctx context.Context, key string) ([]domain.Product, error)
	Set(ctx context.Context, key string, products []domain.Product) error
	Invalidate(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
