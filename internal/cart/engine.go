package cart

import (
	"context"

	"github.com/yashd04xyz/LC-web/internal/domain"
)

// Engine implements the cart mutations. Each operation computes the full
// next state and hands it to the store's write funnel rather than
// patching in place, so no mutation path can bypass normalization.
type Engine struct {
	store *Store
}

func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

func (e *Engine) Items(ctx context.Context, cartID string) []domain.LineItem {
	return e.store.Read(ctx, cartID)
}

// Add merges into an existing line with the same (product, variant)
// identity, incrementing its quantity by max(1, qty), or appends a new
// line stamped with the current clock.
func (e *Engine) Add(ctx context.Context, cartID, productID string, qty int, variantID string) []domain.LineItem {
	if qty < 1 {
		qty = 1
	}
	key := domain.ItemKey{ProductID: productID, VariantID: variantID}

	items := e.store.Read(ctx, cartID)
	merged := false
	for i := range items {
		if items[i].Key() == key {
			items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, domain.LineItem{
			ProductID: productID,
			VariantID: variantID,
			Quantity:  qty,
			AddedAt:   e.store.now(),
		})
	}
	return e.store.Write(ctx, cartID, items)
}

// UpdateQuantity sets the quantity of the identified line. A missing
// identity is a no-op; qty <= 0 removes the line instead of storing a
// non-positive quantity.
func (e *Engine) UpdateQuantity(ctx context.Context, cartID, productID string, qty int, variantID string) []domain.LineItem {
	key := domain.ItemKey{ProductID: productID, VariantID: variantID}

	items := e.store.Read(ctx, cartID)
	found := -1
	for i := range items {
		if items[i].Key() == key {
			found = i
			break
		}
	}
	if found < 0 {
		return items
	}
	if qty <= 0 {
		return e.store.Write(ctx, cartID, append(items[:found], items[found+1:]...))
	}
	items[found].Quantity = qty
	return e.store.Write(ctx, cartID, items)
}

// Remove filters out the identified line; at most one matches.
func (e *Engine) Remove(ctx context.Context, cartID, productID, variantID string) []domain.LineItem {
	key := domain.ItemKey{ProductID: productID, VariantID: variantID}

	items := e.store.Read(ctx, cartID)
	kept := items[:0]
	for _, item := range items {
		if item.Key() != key {
			kept = append(kept, item)
		}
	}
	return e.store.Write(ctx, cartID, kept)
}

// Replace swaps in a full snapshot, e.g. a client syncing its local cart.
// The snapshot passes through the same normalization as every other write.
func (e *Engine) Replace(ctx context.Context, cartID string, items []domain.LineItem) []domain.LineItem {
	return e.store.Write(ctx, cartID, items)
}

// ReplaceRaw is Replace for untrusted JSON payloads.
func (e *Engine) ReplaceRaw(ctx context.Context, cartID string, data []byte) []domain.LineItem {
	return e.store.WriteRaw(ctx, cartID, data)
}

// Clear erases the cart entirely.
func (e *Engine) Clear(ctx context.Context, cartID string) []domain.LineItem {
	return e.store.Erase(ctx, cartID)
}
