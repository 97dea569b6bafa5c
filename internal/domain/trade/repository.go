package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/shared"
)

// SalesOrderRepository defines the persistence contract for sales orders
type SalesOrderRepository interface {
	// FindByID retrieves a sales order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)

	// FindByOrderNumber retrieves a sales order by its unique number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*SalesOrder, error)

	// FindByCustomer retrieves sales orders for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[SalesOrder], error)

	// Save persists a sales order and its items
	Save(ctx context.Context, order *SalesOrder) error

	// NextOrderNumber allocates the next sequential order number
	NextOrderNumber(ctx context.Context) (string, error)
}
