package handler

import (
	"github.com/gin-gonic/gin"
	apptrade "github.com/motogarage/backend/internal/application/trade"
)

// CancelOrderRequest carries the reason a draft order is cancelled
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// SalesOrderHandler handles sales order API endpoints
type SalesOrderHandler struct {
	BaseHandler
	orderService *apptrade.SalesOrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orderService *apptrade.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{orderService: orderService}
}

// RegisterRoutes registers the order endpoints
func (h *SalesOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/confirm", h.Confirm)
		orders.POST("/:id/complete", h.Complete)
		orders.POST("/:id/cancel", h.Cancel)
	}
	rg.GET("/customers/:id/orders", h.ListByCustomer)
}

// Create opens a draft order.
// POST /api/v1/orders
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req apptrade.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// Get returns a single order with its items.
// GET /api/v1/orders/:id
func (h *SalesOrderHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ListByCustomer returns a customer's orders.
// GET /api/v1/customers/:id/orders
func (h *SalesOrderHandler) ListByCustomer(c *gin.Context) {
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

	orders, err := h.orderService.ListOrders(c.Request.Context(), customerID, toFilter(listReq))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders.Items, orders.Total, orders.Page, orders.PageSize)
}

// Confirm confirms a draft order and opens its receivable.
// POST /api/v1/orders/:id/confirm
func (h *SalesOrderHandler) Confirm(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.ConfirmOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Complete marks a confirmed order's work as done.
// POST /api/v1/orders/:id/complete
func (h *SalesOrderHandler) Complete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.CompleteOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel cancels a draft order.
// POST /api/v1/orders/:id/cancel
func (h *SalesOrderHandler) Cancel(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
