package domain

// LineItem is one product (optionally a variant of it) held in a cart.
// ProductID and VariantID together form the item's identity: the same
// product added with a different variant is a separate line.
type LineItem struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
	AddedAt   int64  `json:"added_at"`
}

// Key returns the identity key used for merge and lookup. An empty
// VariantID is its own distinct identity.
func (i LineItem) Key() ItemKey {
	return ItemKey{ProductID: i.ProductID, VariantID: i.VariantID}
}

type ItemKey struct {
	ProductID string
	VariantID string
}

// PricedLineItem joins a LineItem against the current catalog price.
// It is derived at totals time and never persisted, so a catalog price
// change is visible on the very next computation.
type PricedLineItem struct {
	LineItem
	UnitPrice    float64 `json:"unit_price"`
	LineTotal    float64 `json:"line_total"`
	PriceMissing bool    `json:"price_missing,omitempty"`
}

// CartTotals is recomputed from scratch on every request, never cached.
type CartTotals struct {
	Items    []PricedLineItem `json:"items"`
	Subtotal float64          `json:"subtotal"`
	Discount float64          `json:"discount"`
	Shipping float64          `json:"shipping"`
	Tax      float64          `json:"tax"`
	Total    float64          `json:"total"`
}
