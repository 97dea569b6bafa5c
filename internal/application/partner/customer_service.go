package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/partner"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest describes a new customer registration
type CreateCustomerRequest struct {
	Code    string `json:"code" binding:"required,max=50"`
	Name    string `json:"name" binding:"required,max=200"`
	Type    string `json:"type" binding:"required,oneof=individual organization"`
	Phone   string `json:"phone,omitempty" binding:"max=50"`
	Email   string `json:"email,omitempty" binding:"omitempty,email"`
	Address string `json:"address,omitempty" binding:"max=500"`
	City    string `json:"city,omitempty" binding:"max=100"`
	Notes   string `json:"notes,omitempty"`
}

// UpdateCustomerRequest describes customer profile changes
type UpdateCustomerRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	Phone       string           `json:"phone,omitempty" binding:"max=50"`
	Email       string           `json:"email,omitempty" binding:"omitempty,email"`
	Address     string           `json:"address,omitempty" binding:"max=500"`
	City        string           `json:"city,omitempty" binding:"max=100"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty"`
	Address     string          `json:"address,omitempty"`
	City        string          `json:"city,omitempty"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CustomerService provides application-level customer operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	events       shared.EventPublisher
}

// CustomerServiceOption is a functional option for configuring CustomerService
type CustomerServiceOption func(*CustomerService)

// WithEventPublisher sets the publisher for customer domain events
func WithEventPublisher(p shared.EventPublisher) CustomerServiceOption {
	return func(s *CustomerService) {
		s.events = p
	}
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, opts ...CustomerServiceOption) *CustomerService {
	s := &CustomerService{customerRepo: customerRepo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CustomerService) publishEvents(ctx context.Context, customer *partner.Customer) {
	if s.events == nil {
		return
	}
	events := customer.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.events.Publish(ctx, events...)
	customer.ClearDomainEvents()
}

// CreateCustomer registers a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer code is already taken")
	}

	customer, err := partner.NewCustomer(req.Code, req.Name, partner.CustomerType(req.Type))
	if err != nil {
		return nil, err
	}
	if req.Phone != "" || req.Email != "" {
		if err := customer.SetContact(req.Phone, req.Email); err != nil {
			return nil, err
		}
	}
	if req.Address != "" || req.City != "" {
		if err := customer.SetAddress(req.Address, req.City); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, customer)

	return toCustomerResponse(customer), nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// ListCustomers retrieves customers matching the filter
func (s *CustomerService) ListCustomers(ctx context.Context, filter shared.Filter) (*shared.Paginated[CustomerResponse], error) {
	page, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *toCustomerResponse(&page.Items[i]))
	}
	out := shared.Paginated[CustomerResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
	return &out, nil
}

// UpdateCustomer updates a customer's profile
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := customer.Update(req.Name); err != nil {
		return nil, err
	}
	if err := customer.SetContact(req.Phone, req.Email); err != nil {
		return nil, err
	}
	if err := customer.SetAddress(req.Address, req.City); err != nil {
		return nil, err
	}
	if req.CreditLimit != nil {
		if err := customer.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}
	customer.SetNotes(req.Notes)

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	return toCustomerResponse(customer), nil
}

// DeactivateCustomer marks a customer inactive
func (s *CustomerService) DeactivateCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	return s.changeStatus(ctx, id, (*partner.Customer).Deactivate)
}

// ActivateCustomer reactivates a customer
func (s *CustomerService) ActivateCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	return s.changeStatus(ctx, id, (*partner.Customer).Activate)
}

func (s *CustomerService) changeStatus(ctx context.Context, id uuid.UUID, fn func(*partner.Customer) error) (*CustomerResponse, error) {
	customer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(customer); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func (s *CustomerService) find(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}
	return customer, nil
}

func toCustomerResponse(c *partner.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Type:        string(c.Type),
		Status:      string(c.Status),
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		City:        c.City,
		CreditLimit: c.CreditLimit,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
