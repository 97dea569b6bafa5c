package finance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/motogarage/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentMode selects how an incoming payment is distributed across a
// customer's receivables. It is a closed set of variants so the policy
// branch is exhaustive at compile time.
type PaymentMode interface {
	paymentMode()
	String() string
}

// OnAccount is the FIFO mode: the payment settles the customer's oldest
// outstanding receivables first.
type OnAccount struct{}

func (OnAccount) paymentMode() {}

// String returns the mode name
func (OnAccount) String() string { return "ON_ACCOUNT" }

// Specific targets the payment entirely at the receivable of one sales order.
type Specific struct {
	SalesOrderID uuid.UUID
}

func (Specific) paymentMode() {}

// String returns the mode name
func (s Specific) String() string { return "SPECIFIC" }

// Allocation represents one application of money to one receivable
type Allocation struct {
	ReceivableID uuid.UUID       `json:"receivable_id"`
	SalesOrderID uuid.UUID       `json:"sales_order_id"`
	OrderNumber  string          `json:"order_number"`
	Amount       decimal.Decimal `json:"amount"` // Always > 0
}

// AllocationPlan is the complete result of a successful allocation decision.
// On success TotalApplied always equals the requested amount and
// RemainingUnapplied is zero; over- and under-allocation are error paths,
// never partial results.
type AllocationPlan struct {
	Allocations        []Allocation    `json:"allocations"`
	TotalApplied       decimal.Decimal `json:"total_applied"`
	RemainingUnapplied decimal.Decimal `json:"remaining_unapplied"`
	FullySettled       []uuid.UUID     `json:"fully_settled"`     // Receivables the plan pays off completely
	PartiallySettled   []uuid.UUID     `json:"partially_settled"` // Receivables left with a balance
}

// Allocate decides how a payment amount is distributed across the given
// receivables. It is a pure function: no I/O, no mutation of its inputs.
// The caller is responsible for passing a fresh snapshot of the customer's
// receivables immediately before applying the plan.
func Allocate(receivables []Receivable, amount valueobject.Money, mode PaymentMode) (*AllocationPlan, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	switch m := mode.(type) {
	case Specific:
		return allocateSpecific(receivables, amount, m.SalesOrderID)
	case OnAccount:
		return allocateOnAccount(receivables, amount)
	default:
		return nil, shared.NewDomainError("INVALID_MODE", "Unknown payment mode")
	}
}

// allocateSpecific applies the entire amount to the receivable of one sales
// order. Overpayment on the target is rejected, never capped or redirected.
func allocateSpecific(receivables []Receivable, amount valueobject.Money, salesOrderID uuid.UUID) (*AllocationPlan, error) {
	var target *Receivable
	for i := range receivables {
		if receivables[i].SalesOrderID == salesOrderID {
			target = &receivables[i]
			break
		}
	}
	if target == nil || target.IsPaid() {
		return nil, shared.NewDomainError("RECEIVABLE_NOT_FOUND", fmt.Sprintf("No open receivable for sales order %s", salesOrderID))
	}
	if amount.Amount().GreaterThan(target.Balance()) {
		return nil, shared.NewDomainError("EXCEEDS_BALANCE",
			fmt.Sprintf("Payment amount %s exceeds outstanding balance %s of order %s", amount.Amount(), target.Balance(), target.OrderNumber))
	}

	plan := &AllocationPlan{
		Allocations: []Allocation{{
			ReceivableID: target.ID,
			SalesOrderID: target.SalesOrderID,
			OrderNumber:  target.OrderNumber,
			Amount:       amount.Amount(),
		}},
		TotalApplied:       amount.Amount(),
		RemainingUnapplied: decimal.Zero,
	}
	if amount.Amount().Equal(target.Balance()) {
		plan.FullySettled = []uuid.UUID{target.ID}
	} else {
		plan.PartiallySettled = []uuid.UUID{target.ID}
	}
	return plan, nil
}

// allocateOnAccount walks the customer's open receivables oldest first and
// applies min(remaining, balance) to each. Paid receivables are skipped
// entirely; they never receive a zero-amount allocation.
func allocateOnAccount(receivables []Receivable, amount valueobject.Money) (*AllocationPlan, error) {
	open := make([]Receivable, 0, len(receivables))
	for _, r := range receivables {
		if r.Status().CanApplyPayment() && r.Balance().IsPositive() {
			open = append(open, r)
		}
	}

	// Oldest debt first; ties broken by ID for determinism
	sort.Slice(open, func(i, j int) bool {
		if !open[i].CreatedAt.Equal(open[j].CreatedAt) {
			return open[i].CreatedAt.Before(open[j].CreatedAt)
		}
		return strings.Compare(open[i].ID.String(), open[j].ID.String()) < 0
	})

	plan := &AllocationPlan{
		Allocations:        make([]Allocation, 0, len(open)),
		TotalApplied:       decimal.Zero,
		RemainingUnapplied: decimal.Zero,
		FullySettled:       make([]uuid.UUID, 0),
		PartiallySettled:   make([]uuid.UUID, 0),
	}

	remaining := amount.Amount()
	for _, r := range open {
		if remaining.IsZero() {
			break
		}

		applied := decimal.Min(remaining, r.Balance())
		plan.Allocations = append(plan.Allocations, Allocation{
			ReceivableID: r.ID,
			SalesOrderID: r.SalesOrderID,
			OrderNumber:  r.OrderNumber,
			Amount:       applied,
		})
		plan.TotalApplied = plan.TotalApplied.Add(applied)
		remaining = remaining.Sub(applied)

		if applied.Equal(r.Balance()) {
			plan.FullySettled = append(plan.FullySettled, r.ID)
		} else {
			plan.PartiallySettled = append(plan.PartiallySettled, r.ID)
		}
	}

	if remaining.IsPositive() {
		return nil, shared.NewDomainError("EXCEEDS_TOTAL_BALANCE",
			fmt.Sprintf("Payment amount %s exceeds total outstanding balance %s", amount.Amount(), plan.TotalApplied))
	}

	return plan, nil
}
