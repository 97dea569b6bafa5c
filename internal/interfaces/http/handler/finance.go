package handler

import (
	"github.com/gin-gonic/gin"
	appfinance "github.com/motogarage/backend/internal/application/finance"
)

// FinanceHandler handles receivable and payment API endpoints
type FinanceHandler struct {
	BaseHandler
	settlementService *appfinance.SettlementService
	ledgerService     *appfinance.LedgerService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(settlementService *appfinance.SettlementService, ledgerService *appfinance.LedgerService) *FinanceHandler {
	return &FinanceHandler{
		settlementService: settlementService,
		ledgerService:     ledgerService,
	}
}

// RegisterRoutes registers the receivable and payment endpoints
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers/:id")
	{
		customers.GET("/receivables", h.ListReceivables)
		customers.GET("/balance", h.GetOutstandingBalance)
		customers.GET("/payments", h.ListPayments)
		customers.POST("/payments", h.ApplyPayment)
		customers.POST("/payments/preview", h.PreviewAllocation)
	}
}

// ListReceivables returns a customer's receivable ledger.
// GET /api/v1/customers/:id/receivables?status=UNPAID
func (h *FinanceHandler) ListReceivables(c *gin.Context) {
	customerID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ledger, err := h.ledgerService.GetReceivables(c.Request.Context(), customerID, c.Query("status"), toFilter(listReq))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, ledger, ledger.Total, ledger.Page, ledger.PageSize)
}

// GetOutstandingBalance returns the customer's total open balance.
// GET /api/v1/customers/:id/balance
func (h *FinanceHandler) GetOutstandingBalance(c *gin.Context) {
	customerID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	balance, err := h.ledgerService.GetOutstandingBalance(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"customer_id": customerID, "outstanding_balance": balance})
}

// ListPayments returns a customer's payment history, newest first.
// GET /api/v1/customers/:id/payments
func (h *FinanceHandler) ListPayments(c *gin.Context) {
	customerID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payments, err := h.ledgerService.ListPayments(c.Request.Context(), customerID, toFilter(listReq))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, payments.Total, payments.Page, payments.PageSize)
}

// ApplyPayment settles a payment against the customer's receivables.
// POST /api/v1/customers/:id/payments
func (h *FinanceHandler) ApplyPayment(c *gin.Context) {
	customerID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req appfinance.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.settlementService.ApplyPayment(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// PreviewAllocation returns the allocation plan a payment would produce
// without persisting anything.
// POST /api/v1/customers/:id/payments/preview
func (h *FinanceHandler) PreviewAllocation(c *gin.Context) {
	customerID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req appfinance.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	preview, err := h.settlementService.PreviewAllocation(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, preview)
}
