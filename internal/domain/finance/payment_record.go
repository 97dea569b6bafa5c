package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/motogarage/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodEWallet      PaymentMethod = "EWALLET"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodEWallet:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentRecord represents one application of money to one receivable.
// Records are append-only; a settlement that touches N receivables
// creates N payment records.
type PaymentRecord struct {
	ID            uuid.UUID       `json:"id"`
	ReceivableID  uuid.UUID       `json:"receivable_id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PaidAt        time.Time       `json:"paid_at"`
}

// NewPaymentRecord creates a new payment record for an applied allocation
func NewPaymentRecord(receivableID, customerID uuid.UUID, amount valueobject.Money, method PaymentMethod, transactionID, notes string) (*PaymentRecord, error) {
	if receivableID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECEIVABLE", "Receivable ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment record amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}

	return &PaymentRecord{
		ID:            uuid.New(),
		ReceivableID:  receivableID,
		CustomerID:    customerID,
		Amount:        amount.Amount(),
		PaymentMethod: method,
		TransactionID: transactionID,
		Notes:         notes,
		PaidAt:        time.Now(),
	}, nil
}

// GetAmountMoney returns the amount as Money
func (p *PaymentRecord) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(p.Amount)
}
