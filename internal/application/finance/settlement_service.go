package finance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/finance"
	"github.com/motogarage/backend/internal/domain/partner"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/motogarage/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentModeOnAccount and PaymentModeSpecific are the wire names of the
// two payment modes accepted by the settlement API.
const (
	PaymentModeOnAccount = "ON_ACCOUNT"
	PaymentModeSpecific  = "SPECIFIC"
)

// PaymentRequest describes an incoming customer payment
type PaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Mode          string          `json:"mode" binding:"required,oneof=ON_ACCOUNT SPECIFIC"`
	SalesOrderID  *uuid.UUID      `json:"sales_order_id,omitempty"`
	PaymentMethod string          `json:"payment_method" binding:"required,oneof=CASH BANK_TRANSFER CARD EWALLET"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// AllocationResponse is one line of an allocation plan in API responses
type AllocationResponse struct {
	ReceivableID uuid.UUID       `json:"receivable_id"`
	SalesOrderID uuid.UUID       `json:"sales_order_id"`
	OrderNumber  string          `json:"order_number"`
	Amount       decimal.Decimal `json:"amount"`
}

// SettlementResult is the outcome of a committed payment
type SettlementResult struct {
	CustomerID       uuid.UUID               `json:"customer_id"`
	Amount           decimal.Decimal         `json:"amount"`
	Mode             string                  `json:"mode"`
	Allocations      []AllocationResponse    `json:"allocations"`
	Receivables      []ReceivableResponse    `json:"receivables"`
	Payments         []PaymentRecordResponse `json:"payments"`
	FullySettled     int                     `json:"fully_settled"`
	PartiallySettled int                     `json:"partially_settled"`
	Message          string                  `json:"message"`
	SettledAt        time.Time               `json:"settled_at"`
}

// AllocationPreview is a dry-run allocation plan. Nothing is persisted;
// the plan reflects the ledger at the moment of the call.
type AllocationPreview struct {
	CustomerID   uuid.UUID            `json:"customer_id"`
	Amount       decimal.Decimal      `json:"amount"`
	Mode         string               `json:"mode"`
	Allocations  []AllocationResponse `json:"allocations"`
	FullySettled int                  `json:"fully_settled"`
}

// SettlementNotification is published after a settlement commits
type SettlementNotification struct {
	CustomerID       uuid.UUID       `json:"customer_id"`
	Amount           decimal.Decimal `json:"amount"`
	Mode             string          `json:"mode"`
	ReceivableIDs    []uuid.UUID     `json:"receivable_ids"`
	FullySettled     int             `json:"fully_settled"`
	PartiallySettled int             `json:"partially_settled"`
	SettledAt        time.Time       `json:"settled_at"`
}

// SettlementNotifier publishes settlement notifications to interested
// consumers (receipt printing, dashboards). Failures must not undo a
// committed settlement.
type SettlementNotifier interface {
	PublishSettlement(ctx context.Context, n SettlementNotification) error
}

// customerLocks serializes settlements per customer. Payments for
// different customers proceed concurrently.
type customerLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newCustomerLocks() *customerLocks {
	return &customerLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (c *customerLocks) get(customerID uuid.UUID) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[customerID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[customerID] = lock
	}
	return lock
}

// SettlementService applies customer payments to receivables. A payment is
// all-or-nothing: either every allocation commits together with its payment
// records, or the ledger is untouched.
type SettlementService struct {
	txScope      TransactionScope
	customerRepo partner.CustomerRepository
	notifier     SettlementNotifier
	events       shared.EventPublisher
	logger       *zap.Logger
	locks        *customerLocks
}

// SettlementServiceOption is a functional option for configuring SettlementService
type SettlementServiceOption func(*SettlementService)

// WithNotifier sets the settlement notifier
func WithNotifier(n SettlementNotifier) SettlementServiceOption {
	return func(s *SettlementService) {
		s.notifier = n
	}
}

// WithEventPublisher sets the publisher for receivable domain events
func WithEventPublisher(p shared.EventPublisher) SettlementServiceOption {
	return func(s *SettlementService) {
		s.events = p
	}
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	txScope TransactionScope,
	customerRepo partner.CustomerRepository,
	logger *zap.Logger,
	opts ...SettlementServiceOption,
) *SettlementService {
	s := &SettlementService{
		txScope:      txScope,
		customerRepo: customerRepo,
		logger:       logger,
		locks:        newCustomerLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ApplyPayment settles a customer payment against their receivables.
// Concurrent payments for the same customer are serialized; an optimistic
// version check on each receivable backstops writers that bypass the lock.
func (s *SettlementService) ApplyPayment(ctx context.Context, customerID uuid.UUID, req PaymentRequest) (*SettlementResult, error) {
	mode, err := s.resolveMode(req)
	if err != nil {
		return nil, err
	}
	method := finance.PaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	amount := valueobject.NewMoneyVND(req.Amount)
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	if _, err := s.findCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	lock := s.locks.get(customerID)
	lock.Lock()
	defer lock.Unlock()

	var (
		plan    *finance.AllocationPlan
		pending []shared.DomainEvent
		touched []*finance.Receivable
		records []*finance.PaymentRecord
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		pending = pending[:0]
		touched = touched[:0]
		records = records[:0]

		receivables, err := repos.ReceivableRepo().FindOutstanding(ctx, customerID)
		if err != nil {
			return err
		}

		plan, err = finance.Allocate(receivables, amount, mode)
		if err != nil {
			return err
		}

		byID := make(map[uuid.UUID]*finance.Receivable, len(receivables))
		for i := range receivables {
			byID[receivables[i].ID] = &receivables[i]
		}

		for _, alloc := range plan.Allocations {
			receivable, ok := byID[alloc.ReceivableID]
			if !ok {
				return shared.NewDomainError("RECEIVABLE_NOT_FOUND", "Allocated receivable is no longer open")
			}

			if err := receivable.ApplyPayment(valueobject.NewMoneyVND(alloc.Amount)); err != nil {
				return err
			}
			if err := repos.ReceivableRepo().SaveWithLock(ctx, receivable); err != nil {
				return err
			}
			pending = append(pending, receivable.GetDomainEvents()...)
			receivable.ClearDomainEvents()
			touched = append(touched, receivable)

			record, err := finance.NewPaymentRecord(receivable.ID, customerID, valueobject.NewMoneyVND(alloc.Amount), method, req.TransactionID, req.Notes)
			if err != nil {
				return err
			}
			if err := repos.PaymentRepo().Save(ctx, record); err != nil {
				return err
			}
			records = append(records, record)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	updated := make([]ReceivableResponse, 0, len(touched))
	for _, r := range touched {
		updated = append(updated, toReceivableResponse(r))
	}
	created := make([]PaymentRecordResponse, 0, len(records))
	for _, p := range records {
		created = append(created, toPaymentRecordResponse(p))
	}

	result := &SettlementResult{
		CustomerID:       customerID,
		Amount:           req.Amount,
		Mode:             mode.String(),
		Allocations:      toAllocationResponses(plan.Allocations),
		Receivables:      updated,
		Payments:         created,
		FullySettled:     len(plan.FullySettled),
		PartiallySettled: len(plan.PartiallySettled),
		Message:          settlementMessage(len(plan.FullySettled), len(plan.PartiallySettled)),
		SettledAt:        time.Now(),
	}

	if s.events != nil && len(pending) > 0 {
		_ = s.events.Publish(ctx, pending...)
	}
	s.publish(ctx, result, plan)

	return result, nil
}

// PreviewAllocation computes the allocation plan a payment would produce
// without persisting anything
func (s *SettlementService) PreviewAllocation(ctx context.Context, customerID uuid.UUID, req PaymentRequest) (*AllocationPreview, error) {
	mode, err := s.resolveMode(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.findCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	var plan *finance.AllocationPlan
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		receivables, err := repos.ReceivableRepo().FindOutstanding(ctx, customerID)
		if err != nil {
			return err
		}
		plan, err = finance.Allocate(receivables, valueobject.NewMoneyVND(req.Amount), mode)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &AllocationPreview{
		CustomerID:   customerID,
		Amount:       req.Amount,
		Mode:         mode.String(),
		Allocations:  toAllocationResponses(plan.Allocations),
		FullySettled: len(plan.FullySettled),
	}, nil
}

func (s *SettlementService) resolveMode(req PaymentRequest) (finance.PaymentMode, error) {
	switch req.Mode {
	case PaymentModeOnAccount:
		if req.SalesOrderID != nil {
			return nil, shared.NewDomainError("INVALID_MODE", "sales_order_id is not allowed for on-account payments")
		}
		return finance.OnAccount{}, nil
	case PaymentModeSpecific:
		if req.SalesOrderID == nil || *req.SalesOrderID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_MODE", "sales_order_id is required for specific payments")
		}
		return finance.Specific{SalesOrderID: *req.SalesOrderID}, nil
	default:
		return nil, shared.NewDomainError("INVALID_MODE", "Mode must be ON_ACCOUNT or SPECIFIC")
	}
}

func (s *SettlementService) findCustomer(ctx context.Context, customerID uuid.UUID) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}
	return customer, nil
}

func (s *SettlementService) publish(ctx context.Context, result *SettlementResult, plan *finance.AllocationPlan) {
	if s.notifier == nil {
		return
	}

	ids := make([]uuid.UUID, 0, len(plan.Allocations))
	for _, alloc := range plan.Allocations {
		ids = append(ids, alloc.ReceivableID)
	}

	n := SettlementNotification{
		CustomerID:       result.CustomerID,
		Amount:           result.Amount,
		Mode:             result.Mode,
		ReceivableIDs:    ids,
		FullySettled:     result.FullySettled,
		PartiallySettled: result.PartiallySettled,
		SettledAt:        result.SettledAt,
	}
	if err := s.notifier.PublishSettlement(ctx, n); err != nil {
		s.logger.Warn("failed to publish settlement notification",
			zap.String("customer_id", result.CustomerID.String()),
			zap.Error(err))
	}
}

func settlementMessage(full, partial int) string {
	switch {
	case full > 0 && partial > 0:
		return fmt.Sprintf("%d receivable(s) settled in full, %d partially paid", full, partial)
	case full > 0:
		return fmt.Sprintf("%d receivable(s) settled in full", full)
	default:
		return fmt.Sprintf("%d receivable(s) partially paid", partial)
	}
}

func toAllocationResponses(allocations []finance.Allocation) []AllocationResponse {
	out := make([]AllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, AllocationResponse{
			ReceivableID: a.ReceivableID,
			SalesOrderID: a.SalesOrderID,
			OrderNumber:  a.OrderNumber,
			Amount:       a.Amount,
		})
	}
	return out
}
