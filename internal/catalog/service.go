package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yashd04xyz/LC-web/internal/domain"
)

// Service is the storefront's Catalog Lookup: the single source of truth
// for current product name, price, and image. Reads go through a Redis
// listing cache with singleflight collapsing concurrent misses, and the
// recommendation path sits behind a circuit breaker because it is pure
// garnish and must degrade to nothing rather than slow a page down.
type Service struct {
	repo    ProductRepository
	cache   ListingCache
	log     *zap.Logger
	sfg     singleflight.Group // prevents cache stampede
	breaker *gobreaker.CircuitBreaker[[]domain.Product]
}

func NewService(repo ProductRepository, cache ListingCache, log *zap.Logger) *Service {
	breaker := gobreaker.NewCircuitBreaker[[]domain.Product](gobreaker.Settings{
		Name:    "catalog-suggestions",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return &Service{
		repo:    repo,
		cache:   cache,
		log:     log,
		breaker: breaker,
	}
}

func filterKey(f domain.ProductFilter) string {
	return fmt.Sprintf("%s|%s|%s|%s|%g|%s",
		f.Category, f.Size, f.Color, f.Occasion, f.MaxPrice, f.Search)
}

// List returns the filtered catalog, read-through cached.
func (s *Service) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	key := filterKey(f)

	// Use singleflight so one cache miss per key hits the database.
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		products, err := s.cache.Get(ctx, key)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.log.Warn("listing cache get failed", zap.Error(err))
		}

		products, err = s.repo.List(ctx, f)
		if err != nil {
			return nil, err
		}

		go func() {
			if setErr := s.cache.Set(context.Background(), key, products); setErr != nil {
				s.log.Warn("listing cache set failed", zap.Error(setErr))
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.Get(ctx, id)
}

// Lookup resolves current prices for a set of product ids. Partial
// results are expected: a vanished product is simply absent from the map
// and will price at zero downstream. A failed lookup degrades to an
// empty map instead of propagating, so a catalog outage cannot block a
// cart summary from rendering.
func (s *Service) Lookup(ctx context.Context, ids []string) map[string]float64 {
	products, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		s.log.Warn("price lookup failed, pricing at zero", zap.Error(err))
		return map[string]float64{}
	}
	prices := make(map[string]float64, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}
	return prices
}

// LookupProducts is Lookup but keeps the whole record, for order lines.
func (s *Service) LookupProducts(ctx context.Context, ids []string) map[string]domain.Product {
	products, err := s.repo.GetMany(ctx, ids)
	if err != nil {
		s.log.Warn("product lookup failed", zap.Error(err))
		return map[string]domain.Product{}
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID
}

// Suggestions picks up to n random products not already in the cart.
// Any failure, including an open breaker, yields an empty set.
func (s *Service) Suggestions(ctx context.Context, excludeIDs []string, n int) []domain.Product {
	products, err := s.breaker.Execute(func() ([]domain.Product, error) {
		return s.repo.List(ctx, domain.ProductFilter{})
	})
	if err != nil {
		s.log.Warn("suggestions unavailable", zap.Error(err))
		return []domain.Product{}
	}

	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	candidates := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if _, ok := excluded[p.ID]; !ok {
			candidates = append(candidates, p)
		}
	}
	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// Seed loads the default catalog when the collection is empty and drops
// any stale cached listings when it actually inserted something.
func (s *Service) Seed(ctx context.Context) (int, error) {
	count, err := s.repo.Seed(ctx, DefaultProducts())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("listing cache invalidate failed", zap.Error(err))
		}
	}
	return count, nil
}
