package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/motogarage/backend/internal/domain/trade"
	"github.com/motogarage/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSalesOrderRepository implements SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByID finds a sales order with its items. Returns nil when no order exists.
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	var model models.SalesOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderNumber finds a sales order by its unique number.
// Returns nil when no order exists.
func (r *GormSalesOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*trade.SalesOrder, error) {
	var model models.SalesOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds sales orders for a customer
func (r *GormSalesOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.SalesOrder], error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.SalesOrderModel{}).
		Where("customer_id = ?", customerID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.SalesOrderModel{}).
		Preload("Items").
		Where("customer_id = ?", customerID)

	var orderModels []models.SalesOrderModel
	if err := applyFilter(query, filter, "created_at DESC").Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]trade.SalesOrder, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	result := shared.NewPaginated(orders, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Save creates or updates a sales order together with its items
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	model := models.SalesOrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Replace items so removals on a draft are reflected
		if err := tx.Where("order_id = ?", order.ID).
			Delete(&models.SalesOrderItemModel{}).Error; err != nil {
			return err
		}
		return tx.Save(model).Error
	})
}

// NextOrderNumber allocates the next sequential order number.
// Format: SO-YYYYMMDD-XXXX
func (r *GormSalesOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	date := time.Now().Format("20060102")
	prefix := fmt.Sprintf("SO-%s-", date)

	var maxNumber string
	if err := r.db.WithContext(ctx).
		Model(&models.SalesOrderModel{}).
		Select("order_number").
		Where("order_number LIKE ?", prefix+"%").
		Order("order_number DESC").
		Limit(1).
		Pluck("order_number", &maxNumber).Error; err != nil {
		return "", err
	}

	var nextNum int
	if maxNumber != "" {
		parts := strings.Split(maxNumber, "-")
		if len(parts) == 3 {
			fmt.Sscanf(parts[2], "%d", &nextNum)
		}
	}
	nextNum++

	return fmt.Sprintf("%s%04d", prefix, nextNum), nil
}
