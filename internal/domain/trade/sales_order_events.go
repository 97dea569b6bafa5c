package trade

import (
	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SalesOrderCreatedEvent is raised when a new sales order is created
type SalesOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  uuid.UUID `json:"customer_id"`
}

// EventType returns the event type name
func (e *SalesOrderCreatedEvent) EventType() string {
	return "SalesOrderCreated"
}

// NewSalesOrderCreatedEvent creates a new SalesOrderCreatedEvent
func NewSalesOrderCreatedEvent(o *SalesOrder) *SalesOrderCreatedEvent {
	return &SalesOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SalesOrderCreated", "SalesOrder", o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
	}
}

// SalesOrderConfirmedEvent is raised when an order is confirmed and its
// payable amount becomes a debt of the customer
type SalesOrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	PayableAmount decimal.Decimal `json:"payable_amount"`
}

// EventType returns the event type name
func (e *SalesOrderConfirmedEvent) EventType() string {
	return "SalesOrderConfirmed"
}

// NewSalesOrderConfirmedEvent creates a new SalesOrderConfirmedEvent
func NewSalesOrderConfirmedEvent(o *SalesOrder) *SalesOrderConfirmedEvent {
	return &SalesOrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SalesOrderConfirmed", "SalesOrder", o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		PayableAmount:   o.PayableAmount,
	}
}

// SalesOrderCompletedEvent is raised when an order is completed
type SalesOrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
}

// EventType returns the event type name
func (e *SalesOrderCompletedEvent) EventType() string {
	return "SalesOrderCompleted"
}

// NewSalesOrderCompletedEvent creates a new SalesOrderCompletedEvent
func NewSalesOrderCompletedEvent(o *SalesOrder) *SalesOrderCompletedEvent {
	return &SalesOrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SalesOrderCompleted", "SalesOrder", o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
	}
}

// SalesOrderCancelledEvent is raised when a draft order is cancelled
type SalesOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID `json:"order_id"`
	OrderNumber  string    `json:"order_number"`
	CancelReason string    `json:"cancel_reason"`
}

// EventType returns the event type name
func (e *SalesOrderCancelledEvent) EventType() string {
	return "SalesOrderCancelled"
}

// NewSalesOrderCancelledEvent creates a new SalesOrderCancelledEvent
func NewSalesOrderCancelledEvent(o *SalesOrder) *SalesOrderCancelledEvent {
	return &SalesOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SalesOrderCancelled", "SalesOrder", o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CancelReason:    o.CancelReason,
	}
}
