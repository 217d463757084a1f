package pricing

import (
	"math"

	"github.com/yashd04xyz/LC-web/internal/domain"
)

// Config holds the storefront's pricing knobs. The values are business
// decisions, set explicitly at wiring time rather than inferred.
type Config struct {
	// ShippingThreshold is the subtotal at and above which shipping is
	// free. Zero disables the flat fee entirely.
	ShippingThreshold float64
	// ShippingFlatFee applies when 0 < subtotal < ShippingThreshold.
	ShippingFlatFee float64
	// TaxRate is a fraction of the subtotal, e.g. 0.05.
	TaxRate float64
	// DiscountRate is a storewide fraction off the subtotal, e.g. 0.10.
	DiscountRate float64
}

// DefaultConfig mirrors the storefront's launch values.
func DefaultConfig() Config {
	return Config{
		ShippingThreshold: 1000,
		ShippingFlatFee:   49,
		TaxRate:           0.05,
		DiscountRate:      0,
	}
}

// ComputeTotals joins the line items against current catalog prices and
// derives the order summary. It is pure: the price map is resolved by the
// caller, and nothing here can fail. A product absent from the map (or
// priced non-positively there) prices at zero and is flagged, so one
// vanished catalog entry cannot blank the whole summary.
func ComputeTotals(cfg Config, items []domain.LineItem, prices map[string]float64) domain.CartTotals {
	totals := domain.CartTotals{Items: make([]domain.PricedLineItem, 0, len(items))}

	for _, item := range items {
		price, ok := prices[item.ProductID]
		if !ok || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			price = 0
		}
		line := domain.PricedLineItem{
			LineItem:     item,
			UnitPrice:    price,
			LineTotal:    price * float64(item.Quantity),
			PriceMissing: !ok,
		}
		totals.Items = append(totals.Items, line)
		totals.Subtotal += line.LineTotal
	}

	totals.Discount = math.Round(totals.Subtotal * cfg.DiscountRate)
	if totals.Subtotal > 0 && totals.Subtotal < cfg.ShippingThreshold {
		totals.Shipping = cfg.ShippingFlatFee
	}
	totals.Tax = math.Round(totals.Subtotal * cfg.TaxRate)
	totals.Total = totals.Subtotal - totals.Discount + totals.Shipping + totals.Tax
	return totals
}
