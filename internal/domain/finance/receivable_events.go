package finance

import (
	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/motogarage/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ReceivableCreatedEvent is raised when a new receivable is created for a sales order
type ReceivableCreatedEvent struct {
	shared.BaseDomainEvent
	ReceivableID   uuid.UUID       `json:"receivable_id"`
	SalesOrderID   uuid.UUID       `json:"sales_order_id"`
	OrderNumber    string          `json:"order_number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
}

// EventType returns the event type name
func (e *ReceivableCreatedEvent) EventType() string {
	return "ReceivableCreated"
}

// NewReceivableCreatedEvent creates a new ReceivableCreatedEvent
func NewReceivableCreatedEvent(r *Receivable) *ReceivableCreatedEvent {
	return &ReceivableCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ReceivableCreated", "Receivable", r.ID),
		ReceivableID:    r.ID,
		SalesOrderID:    r.SalesOrderID,
		OrderNumber:     r.OrderNumber,
		CustomerID:      r.CustomerID,
		OriginalAmount:  r.OriginalAmount,
	}
}

// ReceivablePartiallyPaidEvent is raised when a payment leaves a balance outstanding
type ReceivablePartiallyPaidEvent struct {
	shared.BaseDomainEvent
	ReceivableID  uuid.UUID       `json:"receivable_id"`
	OrderNumber   string          `json:"order_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	AppliedAmount decimal.Decimal `json:"applied_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Balance       decimal.Decimal `json:"balance"`
}

// EventType returns the event type name
func (e *ReceivablePartiallyPaidEvent) EventType() string {
	return "ReceivablePartiallyPaid"
}

// NewReceivablePartiallyPaidEvent creates a new ReceivablePartiallyPaidEvent
func NewReceivablePartiallyPaidEvent(r *Receivable, applied valueobject.Money) *ReceivablePartiallyPaidEvent {
	return &ReceivablePartiallyPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ReceivablePartiallyPaid", "Receivable", r.ID),
		ReceivableID:    r.ID,
		OrderNumber:     r.OrderNumber,
		CustomerID:      r.CustomerID,
		AppliedAmount:   applied.Amount(),
		PaidAmount:      r.PaidAmount,
		Balance:         r.Balance(),
	}
}

// ReceivableSettledEvent is raised when a receivable becomes fully paid
type ReceivableSettledEvent struct {
	shared.BaseDomainEvent
	ReceivableID   uuid.UUID       `json:"receivable_id"`
	SalesOrderID   uuid.UUID       `json:"sales_order_id"`
	OrderNumber    string          `json:"order_number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
}

// EventType returns the event type name
func (e *ReceivableSettledEvent) EventType() string {
	return "ReceivableSettled"
}

// NewReceivableSettledEvent creates a new ReceivableSettledEvent
func NewReceivableSettledEvent(r *Receivable) *ReceivableSettledEvent {
	return &ReceivableSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ReceivableSettled", "Receivable", r.ID),
		ReceivableID:    r.ID,
		SalesOrderID:    r.SalesOrderID,
		OrderNumber:     r.OrderNumber,
		CustomerID:      r.CustomerID,
		OriginalAmount:  r.OriginalAmount,
	}
}
