package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/yashd04xyz/LC-web/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

type Credentials struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersByCartID(ctx context.Context, cartID string) ([]*domain.Order, error)
	RunMigrations() error
	Close() error
}
