package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/finance"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/motogarage/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReceivableRepository implements ReceivableRepository using GORM
type GormReceivableRepository struct {
	db *gorm.DB
}

// NewGormReceivableRepository creates a new GormReceivableRepository
func NewGormReceivableRepository(db *gorm.DB) *GormReceivableRepository {
	return &GormReceivableRepository{db: db}
}

// FindByID finds a receivable by its ID. Returns nil when no receivable exists.
func (r *GormReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Receivable, error) {
	var model models.ReceivableModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySalesOrder finds the receivable opened for a sales order.
// Returns nil when the order has no receivable.
func (r *GormReceivableRepository) FindBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) (*finance.Receivable, error) {
	var model models.ReceivableModel
	if err := r.db.WithContext(ctx).
		Where("sales_order_id = ?", salesOrderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds receivables for a customer, optionally filtered by status
func (r *GormReceivableRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, status *finance.ReceivableStatus, filter shared.Filter) (*shared.Paginated[finance.Receivable], error) {
	countQuery := r.byCustomer(ctx, customerID, status)
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	query := applyFilter(r.byCustomer(ctx, customerID, status), filter, "created_at DESC")
	var receivableModels []models.ReceivableModel
	if err := query.Find(&receivableModels).Error; err != nil {
		return nil, err
	}

	receivables := make([]finance.Receivable, len(receivableModels))
	for i, model := range receivableModels {
		receivables[i] = *model.ToDomain()
	}
	result := shared.NewPaginated(receivables, total, filter.Page, filter.PageSize)
	return &result, nil
}

// FindOutstanding finds unpaid and partially paid receivables for a customer
// in the order payments are allocated
func (r *GormReceivableRepository) FindOutstanding(ctx context.Context, customerID uuid.UUID) ([]finance.Receivable, error) {
	var receivableModels []models.ReceivableModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND paid_amount < original_amount", customerID).
		Order("created_at ASC, id ASC").
		Find(&receivableModels).Error; err != nil {
		return nil, err
	}

	receivables := make([]finance.Receivable, len(receivableModels))
	for i, model := range receivableModels {
		receivables[i] = *model.ToDomain()
	}
	return receivables, nil
}

// Save persists a new receivable
func (r *GormReceivableRepository) Save(ctx context.Context, receivable *finance.Receivable) error {
	model := models.ReceivableModelFromDomain(receivable)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock updates a receivable guarded by its previous version.
// ApplyPayment has already incremented the aggregate version, so the row
// must still carry version-1 for the update to land.
func (r *GormReceivableRepository) SaveWithLock(ctx context.Context, receivable *finance.Receivable) error {
	model := models.ReceivableModelFromDomain(receivable)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", receivable.ID, receivable.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// SumOutstanding returns the total outstanding balance for a customer
func (r *GormReceivableRepository) SumOutstanding(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.ReceivableModel{}).
		Select("SUM(original_amount - paid_amount)").
		Where("customer_id = ? AND paid_amount < original_amount", customerID).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// SummarizeByCustomer aggregates the ledger totals over all the customer's
// receivables in one query, so the summary never depends on pagination
func (r *GormReceivableRepository) SummarizeByCustomer(ctx context.Context, customerID uuid.UUID) (finance.LedgerTotals, error) {
	var row struct {
		TotalOriginal decimal.NullDecimal
		TotalPaid     decimal.NullDecimal
		OpenCount     int
	}
	if err := r.db.WithContext(ctx).
		Model(&models.ReceivableModel{}).
		Select("SUM(original_amount) AS total_original, SUM(paid_amount) AS total_paid, COUNT(*) FILTER (WHERE paid_amount < original_amount) AS open_count").
		Where("customer_id = ?", customerID).
		Scan(&row).Error; err != nil {
		return finance.LedgerTotals{}, err
	}

	totals := finance.LedgerTotals{
		TotalOriginal:    decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
		OpenCount:        row.OpenCount,
	}
	if row.TotalOriginal.Valid {
		totals.TotalOriginal = row.TotalOriginal.Decimal
	}
	if row.TotalPaid.Valid {
		totals.TotalPaid = row.TotalPaid.Decimal
	}
	totals.TotalOutstanding = totals.TotalOriginal.Sub(totals.TotalPaid)
	return totals, nil
}

// byCustomer builds the per-customer query, translating the derived status
// into predicates on the stored amounts
func (r *GormReceivableRepository) byCustomer(ctx context.Context, customerID uuid.UUID, status *finance.ReceivableStatus) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.ReceivableModel{}).
		Where("customer_id = ?", customerID)

	if status == nil {
		return query
	}
	switch *status {
	case finance.ReceivableStatusUnpaid:
		query = query.Where("paid_amount = 0")
	case finance.ReceivableStatusPartial:
		query = query.Where("paid_amount > 0 AND paid_amount < original_amount")
	case finance.ReceivableStatusPaid:
		query = query.Where("paid_amount >= original_amount")
	}
	return query
}
