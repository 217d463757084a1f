package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yashd04xyz/LC-web/internal/domain"
	"github.com/yashd04xyz/LC-web/internal/pricing"
)

type mockCarts struct {
	items   map[string][]domain.LineItem
	cleared []string
}

func newMockCarts() *mockCarts {
	return &mockCarts{items: make(map[string][]domain.LineItem)}
}

func (m *mockCarts) Items(_ context.Context, cartID string) []domain.LineItem {
	return m.items[cartID]
}

func (m *mockCarts) Clear(_ context.Context, cartID string) []domain.LineItem {
	delete(m.items, cartID)
	m.cleared = append(m.cleared, cartID)
	return nil
}

type mockCatalog struct {
	products map[string]domain.Product
}

func (m *mockCatalog) LookupProducts(_ context.Context, ids []string) map[string]domain.Product {
	out := make(map[string]domain.Product)
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out[id] = p
		}
	}
	return out
}

type mockOrderRepository struct {
	orders map[uuid.UUID]*domain.Order
	err    error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *mockOrderRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	if m.err != nil {
		return m.err
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	if order, ok := m.orders[id]; ok {
		return order, nil
	}
	return nil, ErrOrderNotFound
}

func (m *mockOrderRepository) ListOrdersByCartID(_ context.Context, cartID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range m.orders {
		if o.CartID == cartID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepository) RunMigrations() error { return nil }

func (m *mockOrderRepository) Close() error { return nil }

type mockPublisher struct {
	events []OrderConfirmedEvent
	err    error
}

func (m *mockPublisher) PublishOrderConfirmed(_ context.Context, event OrderConfirmedEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func newTestCheckout(carts *mockCarts, catalog *mockCatalog, repo *mockOrderRepository, pub *mockPublisher) *Checkout {
	return NewCheckout(carts, catalog, repo, pub, pricing.DefaultConfig(), zap.NewNop())
}

func TestSubmit_EmptyCart(t *testing.T) {
	sut := newTestCheckout(newMockCarts(), &mockCatalog{}, newMockOrderRepository(), &mockPublisher{})

	_, err := sut.Submit(context.Background(), "cart_1", "Lydia")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmit_PersistsPublishesAndClears(t *testing.T) {
	carts := newMockCarts()
	carts.items["cart_1"] = []domain.LineItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", VariantID: "gold", Quantity: 1},
	}
	catalog := &mockCatalog{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Blush Evening Dress", Price: 100},
		"p2": {ID: "p2", Name: "Pearl Drop Earrings", Price: 50},
	}}
	repo := newMockOrderRepository()
	pub := &mockPublisher{}
	sut := newTestCheckout(carts, catalog, repo, pub)

	order, err := sut.Submit(context.Background(), "cart_1", "Lydia")
	require.NoError(t, err)

	// subtotal 250, shipping 49 (below 1000), tax round(250*0.05)=13
	assert.Equal(t, 250.0, order.Subtotal)
	assert.Equal(t, 49.0, order.Shipping)
	assert.Equal(t, 13.0, order.Tax)
	assert.Equal(t, 312.0, order.Total)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	assert.Equal(t, "Blush Evening Dress", order.Items[0].ProductName)

	stored, err := repo.GetOrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "cart_1", stored.CartID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, order.ID.String(), pub.events[0].OrderID)
	assert.Equal(t, "cart_1", pub.events[0].CartID)

	assert.Equal(t, []string{"cart_1"}, carts.cleared)
}

func TestSubmit_RepositoryFailureLeavesCart(t *testing.T) {
	carts := newMockCarts()
	carts.items["cart_1"] = []domain.LineItem{{ProductID: "p1", Quantity: 1}}
	catalog := &mockCatalog{products: map[string]domain.Product{
		"p1": {ID: "p1", Price: 100},
	}}
	repo := newMockOrderRepository()
	repo.err = fmt.Errorf("database error")
	sut := newTestCheckout(carts, catalog, repo, &mockPublisher{})

	_, err := sut.Submit(context.Background(), "cart_1", "Lydia")
	require.ErrorContains(t, err, "database error")

	assert.Empty(t, carts.cleared)
	assert.Len(t, carts.items["cart_1"], 1)
}

func TestSubmit_PublishFailureStillConfirms(t *testing.T) {
	carts := newMockCarts()
	carts.items["cart_1"] = []domain.LineItem{{ProductID: "p1", Quantity: 1}}
	catalog := &mockCatalog{products: map[string]domain.Product{
		"p1": {ID: "p1", Price: 100},
	}}
	pub := &mockPublisher{err: fmt.Errorf("broker unreachable")}
	sut := newTestCheckout(carts, catalog, newMockOrderRepository(), pub)

	order, err := sut.Submit(context.Background(), "cart_1", "Lydia")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	assert.Equal(t, []string{"cart_1"}, carts.cleared)
}

func TestSubmit_MissingProductPricedAtZero(t *testing.T) {
	carts := newMockCarts()
	carts.items["cart_1"] = []domain.LineItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "vanished", Quantity: 3},
	}
	catalog := &mockCatalog{products: map[string]domain.Product{
		"p1": {ID: "p1", Price: 100},
	}}
	sut := newTestCheckout(carts, catalog, newMockOrderRepository(), &mockPublisher{})

	order, err := sut.Submit(context.Background(), "cart_1", "Lydia")
	require.NoError(t, err)

	assert.Equal(t, 100.0, order.Subtotal)
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		if item.ProductID == "vanished" {
			assert.Zero(t, item.UnitPrice)
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	sut := newTestCheckout(newMockCarts(), &mockCatalog{}, newMockOrderRepository(), &mockPublisher{})

	_, err := sut.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
