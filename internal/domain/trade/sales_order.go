package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/motogarage/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a sales order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusCompleted
	case OrderStatusCompleted, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// ItemKind distinguishes spare parts from labor on an order line
type ItemKind string

const (
	ItemKindPart  ItemKind = "PART"  // Spare part, e.g. brake pads, oil filter
	ItemKindLabor ItemKind = "LABOR" // Service work, e.g. engine tune-up
)

// IsValid checks if the item kind is valid
func (k ItemKind) IsValid() bool {
	return k == ItemKindPart || k == ItemKindLabor
}

// SalesOrderItem represents a line item in a sales order
type SalesOrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	Kind        ItemKind
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal // Quantity * UnitPrice
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSalesOrderItem creates a new sales order item
func NewSalesOrderItem(orderID uuid.UUID, kind ItemKind, description string, quantity decimal.Decimal, unitPrice valueobject.Money) (*SalesOrderItem, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_ITEM_KIND", "Item kind must be 'PART' or 'LABOR'")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &SalesOrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		Kind:        kind,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      quantity.Mul(unitPrice.Amount()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateQuantity updates the item quantity and recalculates the amount
func (i *SalesOrderItem) UpdateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	i.Quantity = quantity
	i.Amount = quantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()

	return nil
}

// GetAmountMoney returns the amount as Money value object
func (i *SalesOrderItem) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(i.Amount)
}

// SalesOrder represents a repair or retail order for one customer.
// Confirming the order fixes its payable amount and opens a receivable
// for that amount; the order itself never tracks payments.
type SalesOrder struct {
	shared.BaseAggregateRoot
	OrderNumber    string
	CustomerID     uuid.UUID
	CustomerName   string
	VehiclePlate   string // License plate of the motorcycle being serviced
	Items          []SalesOrderItem
	TotalAmount    decimal.Decimal // Sum of all items
	DiscountAmount decimal.Decimal // Order-level discount
	PayableAmount  decimal.Decimal // TotalAmount - DiscountAmount
	Status         OrderStatus
	Remark         string
	ConfirmedAt    *time.Time
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string
}

// NewSalesOrder creates a new sales order in DRAFT status
func NewSalesOrder(orderNumber string, customerID uuid.UUID, customerName string) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	order := &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Items:             make([]SalesOrderItem, 0),
		TotalAmount:       decimal.Zero,
		DiscountAmount:    decimal.Zero,
		PayableAmount:     decimal.Zero,
		Status:            OrderStatusDraft,
	}

	order.AddDomainEvent(NewSalesOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a new item to the order. Only allowed in DRAFT status.
func (o *SalesOrder) AddItem(kind ItemKind, description string, quantity decimal.Decimal, unitPrice valueobject.Money) (*SalesOrderItem, error) {
	if o.Status != OrderStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft order")
	}

	item, err := NewSalesOrderItem(o.ID, kind, description, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return item, nil
}

// UpdateItemQuantity updates the quantity of an existing item. Only allowed in DRAFT status.
func (o *SalesOrder) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-draft order")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes an item from the order. Only allowed in DRAFT status.
func (o *SalesOrder) RemoveItem(itemID uuid.UUID) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft order")
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// ApplyDiscount applies an order-level discount. Only allowed in DRAFT status.
func (o *SalesOrder) ApplyDiscount(discount valueobject.Money) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply discount to a non-draft order")
	}
	if discount.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.Amount().GreaterThan(o.TotalAmount) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed total amount")
	}

	o.DiscountAmount = discount.Amount()
	o.PayableAmount = o.TotalAmount.Sub(o.DiscountAmount)
	o.UpdatedAt = time.Now()

	return nil
}

// SetVehiclePlate records the motorcycle being serviced
func (o *SalesOrder) SetVehiclePlate(plate string) error {
	if len(plate) > 20 {
		return shared.NewDomainError("INVALID_PLATE", "Vehicle plate cannot exceed 20 characters")
	}

	o.VehiclePlate = plate
	o.UpdatedAt = time.Now()

	return nil
}

// SetRemark sets the order remark
func (o *SalesOrder) SetRemark(remark string) {
	o.Remark = remark
	o.UpdatedAt = time.Now()
}

// Confirm transitions the order from DRAFT to CONFIRMED and freezes its
// payable amount. The application layer reacts by opening a receivable
// for exactly that amount.
func (o *SalesOrder) Confirm() error {
	if !o.Status.CanTransitionTo(OrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot confirm order without items")
	}
	if o.PayableAmount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Order payable amount must be positive")
	}

	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewSalesOrderConfirmedEvent(o))

	return nil
}

// Complete marks the order as completed (vehicle handed back)
func (o *SalesOrder) Complete() error {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusCompleted
	o.CompletedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewSalesOrderCompletedEvent(o))

	return nil
}

// Cancel cancels a draft order. Confirmed orders already carry a
// receivable and cannot be cancelled here.
func (o *SalesOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewSalesOrderCancelledEvent(o))

	return nil
}

// recalculateTotals recalculates the order totals
func (o *SalesOrder) recalculateTotals() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
	o.PayableAmount = o.TotalAmount.Sub(o.DiscountAmount)

	// Discount set before items could leave payable negative
	if o.PayableAmount.IsNegative() {
		o.DiscountAmount = o.TotalAmount
		o.PayableAmount = decimal.Zero
	}
}

// GetTotalAmountMoney returns total amount as Money
func (o *SalesOrder) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(o.TotalAmount)
}

// GetPayableAmountMoney returns payable amount as Money
func (o *SalesOrder) GetPayableAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(o.PayableAmount)
}

// ItemCount returns the number of items in the order
func (o *SalesOrder) ItemCount() int {
	return len(o.Items)
}
