package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/finance"
	"github.com/motogarage/backend/internal/domain/partner"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReceivableResponse represents a receivable in API responses
type ReceivableResponse struct {
	ID             uuid.UUID       `json:"id"`
	SalesOrderID   uuid.UUID       `json:"sales_order_id"`
	OrderNumber    string          `json:"order_number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	Balance        decimal.Decimal `json:"balance"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// LedgerSummary aggregates a customer's debt position
type LedgerSummary struct {
	TotalOriginal    decimal.Decimal `json:"total_original"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	OpenCount        int             `json:"open_count"`
}

// ReceivableLedgerResponse is the customer ledger view: the requested page of
// receivable rows plus summary totals over the customer's entire ledger
type ReceivableLedgerResponse struct {
	Items      []ReceivableResponse `json:"items"`
	Summary    LedgerSummary        `json:"summary"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}

// PaymentRecordResponse represents a payment record in API responses
type PaymentRecordResponse struct {
	ID            uuid.UUID       `json:"id"`
	ReceivableID  uuid.UUID       `json:"receivable_id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PaidAt        time.Time       `json:"paid_at"`
}

// PaymentListResponse is a page of payment records
type PaymentListResponse struct {
	Items      []PaymentRecordResponse `json:"items"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
	TotalPages int                     `json:"total_pages"`
}

// LedgerService provides read access to a customer's receivables and
// payment history. It never mutates state; repeated calls observe the
// same data until a settlement commits.
type LedgerService struct {
	receivableRepo finance.ReceivableRepository
	paymentRepo    finance.PaymentRecordRepository
	customerRepo   partner.CustomerRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	receivableRepo finance.ReceivableRepository,
	paymentRepo finance.PaymentRecordRepository,
	customerRepo partner.CustomerRepository,
) *LedgerService {
	return &LedgerService{
		receivableRepo: receivableRepo,
		paymentRepo:    paymentRepo,
		customerRepo:   customerRepo,
	}
}

// GetReceivables returns a page of the customer's receivables, optionally
// filtered by status. The summary totals always cover the customer's full
// ledger, not just the page being viewed.
func (s *LedgerService) GetReceivables(ctx context.Context, customerID uuid.UUID, status string, filter shared.Filter) (*ReceivableLedgerResponse, error) {
	if _, err := s.findCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	var statusFilter *finance.ReceivableStatus
	if status != "" {
		st := finance.ReceivableStatus(status)
		if !st.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Status must be UNPAID, PARTIAL, or PAID")
		}
		statusFilter = &st
	}

	page, err := s.receivableRepo.FindByCustomer(ctx, customerID, statusFilter, filter)
	if err != nil {
		return nil, err
	}

	totals, err := s.receivableRepo.SummarizeByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resp := &ReceivableLedgerResponse{
		Items:      make([]ReceivableResponse, 0, len(page.Items)),
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		Summary: LedgerSummary{
			TotalOriginal:    totals.TotalOriginal,
			TotalPaid:        totals.TotalPaid,
			TotalOutstanding: totals.TotalOutstanding,
			OpenCount:        totals.OpenCount,
		},
	}
	for i := range page.Items {
		resp.Items = append(resp.Items, toReceivableResponse(&page.Items[i]))
	}

	return resp, nil
}

// GetOutstandingBalance returns the customer's total unsettled debt
func (s *LedgerService) GetOutstandingBalance(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	if _, err := s.findCustomer(ctx, customerID); err != nil {
		return decimal.Zero, err
	}
	return s.receivableRepo.SumOutstanding(ctx, customerID)
}

// ListPayments returns a customer's payment history, newest first
func (s *LedgerService) ListPayments(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*PaymentListResponse, error) {
	if _, err := s.findCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	page, err := s.paymentRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}

	resp := &PaymentListResponse{
		Items:      make([]PaymentRecordResponse, 0, len(page.Items)),
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
	for i := range page.Items {
		resp.Items = append(resp.Items, toPaymentRecordResponse(&page.Items[i]))
	}

	return resp, nil
}

func (s *LedgerService) findCustomer(ctx context.Context, customerID uuid.UUID) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}
	return customer, nil
}

func toReceivableResponse(r *finance.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ID:             r.ID,
		SalesOrderID:   r.SalesOrderID,
		OrderNumber:    r.OrderNumber,
		CustomerID:     r.CustomerID,
		OriginalAmount: r.OriginalAmount,
		PaidAmount:     r.PaidAmount,
		Balance:        r.Balance(),
		Status:         r.Status().String(),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		Version:        r.Version,
	}
}

func toPaymentRecordResponse(p *finance.PaymentRecord) PaymentRecordResponse {
	return PaymentRecordResponse{
		ID:            p.ID,
		ReceivableID:  p.ReceivableID,
		CustomerID:    p.CustomerID,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod.String(),
		TransactionID: p.TransactionID,
		Notes:         p.Notes,
		PaidAt:        p.PaidAt,
	}
}
