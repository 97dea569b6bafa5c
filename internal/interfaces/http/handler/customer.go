package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apppartner "github.com/motogarage/backend/internal/application/partner"
)

// CustomerHandler handles customer API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *apppartner.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *apppartner.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// RegisterRoutes registers the customer endpoints
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.POST("/:id/activate", h.Activate)
		customers.POST("/:id/deactivate", h.Deactivate)
	}
}

// Create registers a new customer.
// POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req apppartner.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, customer)
}

// Get returns a single customer.
// GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// List returns customers matching the query.
// GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), toFilter(listReq))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, customers.Items, customers.Total, customers.Page, customers.PageSize)
}

// Update changes a customer's profile.
// PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req apppartner.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Activate re-enables a deactivated customer.
// POST /api/v1/customers/:id/activate
func (h *CustomerHandler) Activate(c *gin.Context) {
	h.changeStatus(c, h.customerService.ActivateCustomer)
}

// Deactivate disables a customer. Deactivated customers keep their ledger
// but cannot place new orders.
// POST /api/v1/customers/:id/deactivate
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	h.changeStatus(c, h.customerService.DeactivateCustomer)
}

func (h *CustomerHandler) changeStatus(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*apppartner.CustomerResponse, error)) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}
