package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yashd04xyz/LC-web/internal/domain"
	"github.com/yashd04xyz/LC-web/internal/notify"
)

// Store owns a cart's persisted line items. Every mutation in the system
// funnels through Write, so the invariants (unique identity keys,
// quantity >= 1) are re-enforced on every path. The store deliberately
// never returns an error: corrupt or unreachable persistence must not
// take rendering down with it.
type Store struct {
	kv       KV
	notifier *notify.Notifier
	log      *zap.Logger
	now      func() int64
}

func NewStore(kv KV, notifier *notify.Notifier, log *zap.Logger) *Store {
	return &Store{
		kv:       kv,
		notifier: notifier,
		log:      log,
		now:      func() int64 { return time.Now().UnixMilli() },
	}
}

// WithClock overrides the logical clock used for AddedAt stamps.
func (s *Store) WithClock(now func() int64) *Store {
	s.now = now
	return s
}

func cartKey(cartID string) string {
	return fmt.Sprintf("cart:%s", cartID)
}

// Read loads and normalizes the persisted sequence. Unparseable state is
// discarded wholesale, the key erased, and an empty sequence returned.
func (s *Store) Read(ctx context.Context, cartID string) []domain.LineItem {
	data, err := s.kv.Get(ctx, cartKey(cartID))
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.log.Warn("cart read failed, treating as empty",
				zap.String("cart_id", cartID), zap.Error(err))
		}
		return []domain.LineItem{}
	}

	raw, ok := decodeItems(data)
	if !ok {
		s.log.Warn("discarding corrupt cart state",
			zap.String("cart_id", cartID))
		if delErr := s.kv.Del(ctx, cartKey(cartID)); delErr != nil {
			s.log.Warn("failed to erase corrupt cart",
				zap.String("cart_id", cartID), zap.Error(delErr))
		}
		return []domain.LineItem{}
	}
	return normalize(raw, s.now)
}

// Write normalizes, persists, and announces the new state, returning the
// normalized sequence. A persistence failure is logged, not surfaced;
// listeners still see the state the caller just computed so the rendering
// surfaces stay mutually consistent.
func (s *Store) Write(ctx context.Context, cartID string, items []domain.LineItem) []domain.LineItem {
	normalized := normalizeItems(items, s.now)

	data, err := json.Marshal(normalized)
	if err != nil {
		s.log.Error("failed to marshal cart", zap.String("cart_id", cartID), zap.Error(err))
		return normalized
	}
	if err := s.kv.Set(ctx, cartKey(cartID), string(data)); err != nil {
		s.log.Warn("cart persist failed", zap.String("cart_id", cartID), zap.Error(err))
	}

	s.notifier.Publish(cartID, normalized)
	return normalized
}

// WriteRaw accepts an untrusted JSON payload, e.g. a client syncing its
// locally held cart. A payload that is not an array coerces to an empty
// sequence rather than failing the request.
func (s *Store) WriteRaw(ctx context.Context, cartID string, data []byte) []domain.LineItem {
	raw, ok := decodeItems(string(data))
	if !ok {
		raw = nil
	}
	return s.Write(ctx, cartID, normalize(raw, s.now))
}

// Erase deletes the persisted state entirely and announces an empty cart.
func (s *Store) Erase(ctx context.Context, cartID string) []domain.LineItem {
	if err := s.kv.Del(ctx, cartKey(cartID)); err != nil {
		s.log.Warn("cart erase failed", zap.String("cart_id", cartID), zap.Error(err))
	}
	empty := []domain.LineItem{}
	s.notifier.Publish(cartID, empty)
	return empty
}
