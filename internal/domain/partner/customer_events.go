package partner

import (
	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/shared"
)

// CustomerCreatedEvent is raised when a new customer is registered
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID    `json:"customer_id"`
	Code       string       `json:"code"`
	Name       string       `json:"name"`
	Type       CustomerType `json:"type"`
}

// EventType returns the event type name
func (e *CustomerCreatedEvent) EventType() string {
	return "CustomerCreated"
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CustomerCreated", "Customer", c.ID),
		CustomerID:      c.ID,
		Code:            c.Code,
		Name:            c.Name,
		Type:            c.Type,
	}
}
