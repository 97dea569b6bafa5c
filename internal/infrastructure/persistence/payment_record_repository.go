package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/finance"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/motogarage/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentRecordRepository implements PaymentRecordRepository using GORM
type GormPaymentRecordRepository struct {
	db *gorm.DB
}

// NewGormPaymentRecordRepository creates a new GormPaymentRecordRepository
func NewGormPaymentRecordRepository(db *gorm.DB) *GormPaymentRecordRepository {
	return &GormPaymentRecordRepository{db: db}
}

// Save persists a payment record. Records are append-only and never updated.
func (r *GormPaymentRecordRepository) Save(ctx context.Context, record *finance.PaymentRecord) error {
	model := models.PaymentRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByCustomer finds payment records for a customer, newest first
func (r *GormPaymentRecordRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.PaymentRecord], error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentRecordModel{}).
		Where("customer_id = ?", customerID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.PaymentRecordModel{}).
		Where("customer_id = ?", customerID)

	var recordModels []models.PaymentRecordModel
	if err := applyFilter(query, filter, "paid_at DESC").Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]finance.PaymentRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	result := shared.NewPaginated(records, total, filter.Page, filter.PageSize)
	return &result, nil
}

// FindByReceivable finds payment records applied to a receivable, oldest first
func (r *GormPaymentRecordRepository) FindByReceivable(ctx context.Context, receivableID uuid.UUID) ([]finance.PaymentRecord, error) {
	var recordModels []models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("receivable_id = ?", receivableID).
		Order("paid_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]finance.PaymentRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}
