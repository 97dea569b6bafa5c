package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/motogarage/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ReceivableStatus represents the settlement state of a receivable.
// It is always derived from (original_amount, paid_amount) and never
// stored as an independent source of truth.
type ReceivableStatus string

const (
	ReceivableStatusUnpaid  ReceivableStatus = "UNPAID"  // No payment applied yet
	ReceivableStatusPartial ReceivableStatus = "PARTIAL" // Partially paid, 0 < balance < original
	ReceivableStatusPaid    ReceivableStatus = "PAID"    // Fully paid, balance = 0
)

// IsValid checks if the status is a valid ReceivableStatus
func (s ReceivableStatus) IsValid() bool {
	switch s {
	case ReceivableStatusUnpaid, ReceivableStatusPartial, ReceivableStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of ReceivableStatus
func (s ReceivableStatus) String() string {
	return string(s)
}

// CanApplyPayment returns true if payments can be applied in this status.
// PAID is terminal.
func (s ReceivableStatus) CanApplyPayment() bool {
	return s == ReceivableStatusUnpaid || s == ReceivableStatusPartial
}

// StatusFor derives the receivable status from the amounts
func StatusFor(originalAmount, paidAmount decimal.Decimal) ReceivableStatus {
	if originalAmount.Sub(paidAmount).IsZero() {
		return ReceivableStatusPaid
	}
	if paidAmount.IsZero() {
		return ReceivableStatusUnpaid
	}
	return ReceivableStatusPartial
}

// Receivable tracks the debt position of one sales order.
// One receivable exists per sales order; it is created when the order is
// confirmed and is never deleted, remaining as a historical record once paid.
type Receivable struct {
	shared.BaseAggregateRoot
	SalesOrderID   uuid.UUID       `json:"sales_order_id"`
	OrderNumber    string          `json:"order_number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	OriginalAmount decimal.Decimal `json:"original_amount"` // Immutable after creation
	PaidAmount     decimal.Decimal `json:"paid_amount"`     // Monotonically non-decreasing
}

// NewReceivable creates a new receivable for a confirmed sales order
func NewReceivable(salesOrderID uuid.UUID, orderNumber string, customerID uuid.UUID, originalAmount valueobject.Money) (*Receivable, error) {
	if salesOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALES_ORDER", "Sales order ID cannot be empty")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !originalAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Original amount must be positive")
	}

	r := &Receivable{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SalesOrderID:      salesOrderID,
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		OriginalAmount:    originalAmount.Amount(),
		PaidAmount:        decimal.Zero,
	}

	r.AddDomainEvent(NewReceivableCreatedEvent(r))

	return r, nil
}

// Balance returns the amount still owed: original_amount - paid_amount
func (r *Receivable) Balance() decimal.Decimal {
	return r.OriginalAmount.Sub(r.PaidAmount)
}

// Status derives the settlement status from the current amounts
func (r *Receivable) Status() ReceivableStatus {
	return StatusFor(r.OriginalAmount, r.PaidAmount)
}

// ApplyPayment applies a payment amount to the receivable.
// The amount must be positive and must not exceed the outstanding balance;
// paid_amount never exceeds original_amount and the balance never goes negative.
func (r *Receivable) ApplyPayment(amount valueobject.Money) error {
	if !r.Status().CanApplyPayment() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot apply payment to receivable in %s status", r.Status()))
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(r.Balance()) {
		return shared.NewDomainError("EXCEEDS_BALANCE", fmt.Sprintf("Payment amount %s exceeds outstanding balance %s", amount.Amount(), r.Balance()))
	}

	r.PaidAmount = r.PaidAmount.Add(amount.Amount())
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	if r.Status() == ReceivableStatusPaid {
		r.AddDomainEvent(NewReceivableSettledEvent(r))
	} else {
		r.AddDomainEvent(NewReceivablePartiallyPaidEvent(r, amount))
	}

	return nil
}

// GetOriginalAmountMoney returns the original amount as Money
func (r *Receivable) GetOriginalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(r.OriginalAmount)
}

// GetPaidAmountMoney returns the paid amount as Money
func (r *Receivable) GetPaidAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(r.PaidAmount)
}

// GetBalanceMoney returns the outstanding balance as Money
func (r *Receivable) GetBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyVND(r.Balance())
}

// IsUnpaid returns true if no payment has been applied
func (r *Receivable) IsUnpaid() bool {
	return r.Status() == ReceivableStatusUnpaid
}

// IsPartial returns true if the receivable is partially paid
func (r *Receivable) IsPartial() bool {
	return r.Status() == ReceivableStatusPartial
}

// IsPaid returns true if the receivable is fully paid
func (r *Receivable) IsPaid() bool {
	return r.Status() == ReceivableStatusPaid
}
