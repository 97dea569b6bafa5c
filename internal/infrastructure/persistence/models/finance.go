package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// ReceivableModel is the persistence model for the Receivable aggregate root.
// Status is not stored: it is derived from the amounts, so queries filter on
// paid_amount versus original_amount instead of a status column.
type ReceivableModel struct {
	AggregateModel
	SalesOrderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_receivable_sales_order"`
	OrderNumber    string          `gorm:"type:varchar(50);not null;index"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	OriginalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (ReceivableModel) TableName() string {
	return "receivables"
}

// ToDomain converts the persistence model to a domain Receivable entity.
func (m *ReceivableModel) ToDomain() *finance.Receivable {
	return &finance.Receivable{
		BaseAggregateRoot: m.ToAggregateRoot(),
		SalesOrderID:      m.SalesOrderID,
		OrderNumber:       m.OrderNumber,
		CustomerID:        m.CustomerID,
		OriginalAmount:    m.OriginalAmount,
		PaidAmount:        m.PaidAmount,
	}
}

// FromDomain populates the persistence model from a domain Receivable entity.
func (m *ReceivableModel) FromDomain(r *finance.Receivable) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.SalesOrderID = r.SalesOrderID
	m.OrderNumber = r.OrderNumber
	m.CustomerID = r.CustomerID
	m.OriginalAmount = r.OriginalAmount
	m.PaidAmount = r.PaidAmount
}

// ReceivableModelFromDomain creates a new persistence model from a domain Receivable entity.
func ReceivableModelFromDomain(r *finance.Receivable) *ReceivableModel {
	m := &ReceivableModel{}
	m.FromDomain(r)
	return m
}

// PaymentRecordModel is the persistence model for the append-only PaymentRecord entity.
type PaymentRecordModel struct {
	ID            uuid.UUID             `gorm:"type:uuid;primary_key"`
	ReceivableID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	CustomerID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	PaymentMethod finance.PaymentMethod `gorm:"type:varchar(20);not null"`
	TransactionID string                `gorm:"type:varchar(100)"`
	Notes         string                `gorm:"type:varchar(500)"`
	PaidAt        time.Time             `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentRecordModel) TableName() string {
	return "payment_records"
}

// ToDomain converts the persistence model to a domain PaymentRecord entity.
func (m *PaymentRecordModel) ToDomain() *finance.PaymentRecord {
	return &finance.PaymentRecord{
		ID:            m.ID,
		ReceivableID:  m.ReceivableID,
		CustomerID:    m.CustomerID,
		Amount:        m.Amount,
		PaymentMethod: m.PaymentMethod,
		TransactionID: m.TransactionID,
		Notes:         m.Notes,
		PaidAt:        m.PaidAt,
	}
}

// PaymentRecordModelFromDomain creates a new persistence model from a domain PaymentRecord entity.
func PaymentRecordModelFromDomain(p *finance.PaymentRecord) *PaymentRecordModel {
	return &PaymentRecordModel{
		ID:            p.ID,
		ReceivableID:  p.ReceivableID,
		CustomerID:    p.CustomerID,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		Notes:         p.Notes,
		PaidAt:        p.PaidAt,
	}
}
