package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/shared"
)

// CustomerRepository defines the persistence contract for customers
type CustomerRepository interface {
	// FindByID retrieves a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByCode retrieves a customer by its unique code
	FindByCode(ctx context.Context, code string) (*Customer, error)

	// FindAll retrieves customers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Customer], error)

	// Save persists a customer, inserting or updating as needed
	Save(ctx context.Context, customer *Customer) error

	// ExistsByCode checks whether a customer code is already taken
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
