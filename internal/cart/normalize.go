package cart

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/yashd04xyz/LC-web/internal/domain"
)

// rawLineItem is the loose shape persisted carts and client snapshots
// arrive in. Fields stay untyped so a numeric product id or a fractional
// quantity from an old client can still be coerced instead of rejected.
// The bare "id" key is accepted because early clients stored the whole
// product object on the line.
type rawLineItem struct {
	ProductID any `json:"product_id"`
	LegacyID  any `json:"id"`
	VariantID any `json:"variant_id"`
	Quantity  any `json:"quantity"`
	AddedAt   any `json:"added_at"`
}

// decodeItems parses a persisted cart payload. A payload that is not a
// JSON array is unrecoverable and reported as such; anything item-level
// is handled by normalization.
func decodeItems(data string) ([]rawLineItem, bool) {
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()
	var raw []rawLineItem
	if err := dec.Decode(&raw); err != nil {
		return nil, false
	}
	return raw, true
}

// normalize coerces raw items into canonical form, enforcing uniqueness
// of (product, variant) and quantity >= 1. Items without a usable
// product id are dropped; duplicate identities merge by summing
// quantities, keeping the earliest AddedAt.
func normalize(raw []rawLineItem, now func() int64) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(raw))
	index := make(map[domain.ItemKey]int, len(raw))

	for _, r := range raw {
		id := coerceString(r.ProductID)
		if id == "" {
			id = coerceString(r.LegacyID)
		}
		if id == "" {
			continue
		}

		item := domain.LineItem{
			ProductID: id,
			VariantID: coerceString(r.VariantID),
			Quantity:  coerceQuantity(r.Quantity),
			AddedAt:   coerceAddedAt(r.AddedAt, now),
		}

		if pos, ok := index[item.Key()]; ok {
			items[pos].Quantity += item.Quantity
			if item.AddedAt < items[pos].AddedAt {
				items[pos].AddedAt = item.AddedAt
			}
			continue
		}
		index[item.Key()] = len(items)
		items = append(items, item)
	}
	return items
}

// normalizeItems runs already-typed items through the same funnel, so
// engine-built state and rehydrated state obey identical rules.
func normalizeItems(in []domain.LineItem, now func() int64) []domain.LineItem {
	raw := make([]rawLineItem, len(in))
	for i, item := range in {
		raw[i] = rawLineItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			AddedAt:   item.AddedAt,
		}
	}
	return normalize(raw, now)
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

func coerceQuantity(v any) int {
	q, ok := coerceNumber(v)
	if !ok {
		return 1
	}
	n := int(math.Floor(q))
	if n < 1 {
		return 1
	}
	return n
}

func coerceAddedAt(v any, now func() int64) int64 {
	ts, ok := coerceNumber(v)
	if !ok || ts <= 0 {
		return now()
	}
	return int64(ts)
}

func coerceNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}
