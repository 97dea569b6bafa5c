package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SalesOrderModel is the persistence model for the SalesOrder aggregate root.
type SalesOrderModel struct {
	AggregateModel
	OrderNumber    string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_order_number"`
	CustomerID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	CustomerName   string                `gorm:"type:varchar(200);not null"`
	VehiclePlate   string                `gorm:"type:varchar(20)"`
	Items          []SalesOrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount    decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	PayableAmount  decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Status         trade.OrderStatus     `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Remark         string                `gorm:"type:text"`
	ConfirmedAt    *time.Time            `gorm:"index"`
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// ToDomain converts the persistence model to a domain SalesOrder entity.
func (m *SalesOrderModel) ToDomain() *trade.SalesOrder {
	order := &trade.SalesOrder{
		BaseAggregateRoot: m.ToAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		VehiclePlate:      m.VehiclePlate,
		TotalAmount:       m.TotalAmount,
		DiscountAmount:    m.DiscountAmount,
		PayableAmount:     m.PayableAmount,
		Status:            m.Status,
		Remark:            m.Remark,
		ConfirmedAt:       m.ConfirmedAt,
		CompletedAt:       m.CompletedAt,
		CancelledAt:       m.CancelledAt,
		CancelReason:      m.CancelReason,
		Items:             make([]trade.SalesOrderItem, len(m.Items)),
	}
	for i, item := range m.Items {
		order.Items[i] = *item.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain SalesOrder entity.
func (m *SalesOrderModel) FromDomain(o *trade.SalesOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.CustomerName = o.CustomerName
	m.VehiclePlate = o.VehiclePlate
	m.TotalAmount = o.TotalAmount
	m.DiscountAmount = o.DiscountAmount
	m.PayableAmount = o.PayableAmount
	m.Status = o.Status
	m.Remark = o.Remark
	m.ConfirmedAt = o.ConfirmedAt
	m.CompletedAt = o.CompletedAt
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason
	m.Items = make([]SalesOrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = *SalesOrderItemModelFromDomain(&item)
	}
}

// SalesOrderModelFromDomain creates a new persistence model from a domain SalesOrder entity.
func SalesOrderModelFromDomain(o *trade.SalesOrder) *SalesOrderModel {
	m := &SalesOrderModel{}
	m.FromDomain(o)
	return m
}

// SalesOrderItemModel is the persistence model for the SalesOrderItem entity.
type SalesOrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind        trade.ItemKind  `gorm:"type:varchar(10);not null"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesOrderItemModel) TableName() string {
	return "sales_order_items"
}

// ToDomain converts the persistence model to a domain SalesOrderItem entity.
func (m *SalesOrderItemModel) ToDomain() *trade.SalesOrderItem {
	return &trade.SalesOrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		Kind:        m.Kind,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// SalesOrderItemModelFromDomain creates a new persistence model from a domain SalesOrderItem entity.
func SalesOrderItemModelFromDomain(i *trade.SalesOrderItem) *SalesOrderItemModel {
	return &SalesOrderItemModel{
		ID:          i.ID,
		OrderID:     i.OrderID,
		Kind:        i.Kind,
		Description: i.Description,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		Amount:      i.Amount,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
