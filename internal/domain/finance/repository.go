package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LedgerTotals aggregates amounts over all of a customer's receivables
type LedgerTotals struct {
	TotalOriginal    decimal.Decimal
	TotalPaid        decimal.Decimal
	TotalOutstanding decimal.Decimal
	OpenCount        int
}

// ReceivableRepository defines the persistence contract for receivables
type ReceivableRepository interface {
	// FindByID retrieves a receivable by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Receivable, error)

	// FindBySalesOrder retrieves the receivable created for a sales order
	FindBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) (*Receivable, error)

	// FindByCustomer retrieves receivables for a customer, optionally filtered by status
	FindByCustomer(ctx context.Context, customerID uuid.UUID, status *ReceivableStatus, filter shared.Filter) (*shared.Paginated[Receivable], error)

	// FindOutstanding retrieves unpaid and partially paid receivables for a
	// customer ordered by created_at ASC, id ASC
	FindOutstanding(ctx context.Context, customerID uuid.UUID) ([]Receivable, error)

	// Save persists a new receivable
	Save(ctx context.Context, receivable *Receivable) error

	// SaveWithLock updates a receivable guarded by its previous version.
	// Returns a CONCURRENCY_CONFLICT error when another writer got there first.
	SaveWithLock(ctx context.Context, receivable *Receivable) error

	// SumOutstanding returns the total outstanding balance for a customer
	SumOutstanding(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)

	// SummarizeByCustomer returns totals over ALL the customer's receivables,
	// regardless of any page a caller is viewing
	SummarizeByCustomer(ctx context.Context, customerID uuid.UUID) (LedgerTotals, error)
}

// PaymentRecordRepository defines the persistence contract for payment records
type PaymentRecordRepository interface {
	// Save persists a payment record
	Save(ctx context.Context, record *PaymentRecord) error

	// FindByCustomer retrieves payment records for a customer ordered by paid_at DESC
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[PaymentRecord], error)

	// FindByReceivable retrieves payment records applied to a receivable
	FindByReceivable(ctx context.Context, receivableID uuid.UUID) ([]PaymentRecord, error)
}
