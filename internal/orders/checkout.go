package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yashd04xyz/LC-web/internal/domain"
	"github.com/yashd04xyz/LC-web/internal/pricing"
)

var ErrEmptyCart = errors.New("cart is empty")

// CartAccess is the slice of the cart engine checkout needs.
type CartAccess interface {
	Items(ctx context.Context, cartID string) []domain.LineItem
	Clear(ctx context.Context, cartID string) []domain.LineItem
}

// CatalogAccess resolves current product records; misses are simply
// absent from the map.
type CatalogAccess interface {
	LookupProducts(ctx context.Context, ids []string) map[string]domain.Product
}

// Checkout turns the current cart into a persisted order. The cart is
// only cleared after the order has landed, so a failed submission leaves
// the cart intact for retry.
type Checkout struct {
	carts     CartAccess
	catalog   CatalogAccess
	repo      OrderRepository
	publisher EventPublisher
	cfg       pricing.Config
	log       *zap.Logger
}

func NewCheckout(carts CartAccess, catalog CatalogAccess, repo OrderRepository, publisher EventPublisher, cfg pricing.Config, log *zap.Logger) *Checkout {
	return &Checkout{
		carts:     carts,
		catalog:   catalog,
		repo:      repo,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

func (c *Checkout) Submit(ctx context.Context, cartID, customerName string) (*domain.Order, error) {
	items := c.carts.Items(ctx, cartID)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	products := c.catalog.LookupProducts(ctx, ids)

	prices := make(map[string]float64, len(products))
	for id, p := range products {
		prices[id] = p.Price
	}
	totals := pricing.ComputeTotals(c.cfg, items, prices)

	orderItems := make([]domain.OrderItem, len(totals.Items))
	for i, line := range totals.Items {
		orderItems[i] = domain.OrderItem{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		if p, ok := products[line.ProductID]; ok {
			orderItems[i].ProductName = p.Name
		}
	}

	order := &domain.Order{
		ID:           uuid.New(),
		CartID:       cartID,
		CustomerName: customerName,
		Items:        orderItems,
		Subtotal:     totals.Subtotal,
		Discount:     totals.Discount,
		Shipping:     totals.Shipping,
		Tax:          totals.Tax,
		Total:        totals.Total,
		Currency:     "INR",
		Status:       domain.OrderStatusConfirmed,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := c.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// The order exists from here on; the event and the local clear are
	// best-effort and must not fail the submission.
	event := OrderConfirmedEvent{
		OrderID:     order.ID.String(),
		CartID:      cartID,
		Items:       orderItems,
		TotalAmount: order.Total,
		Currency:    order.Currency,
		ConfirmedAt: order.CreatedAt,
	}
	if err := c.publisher.PublishOrderConfirmed(ctx, event); err != nil {
		c.log.Warn("order event publish failed",
			zap.String("order_id", order.ID.String()), zap.Error(err))
	}

	c.carts.Clear(ctx, cartID)
	return order, nil
}

func (c *Checkout) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return c.repo.GetOrderByID(ctx, id)
}
