package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// CustomerType represents the type of customer
type CustomerType string

const (
	CustomerTypeIndividual   CustomerType = "individual"   // Walk-in rider
	CustomerTypeOrganization CustomerType = "organization" // Fleet or delivery company
)

// Customer is the aggregate root for customer-related operations.
// Receivables and payments reference customers by ID only.
type Customer struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	Type        CustomerType
	Status      CustomerStatus
	Phone       string
	Email       string
	Address     string
	City        string
	TaxID       string
	CreditLimit decimal.Decimal // Maximum outstanding debt allowed, zero means no credit sales
	Notes       string
}

// NewCustomer creates a new customer with required fields
func NewCustomer(code, name string, customerType CustomerType) (*Customer, error) {
	if err := validateCustomerCode(code); err != nil {
		return nil, err
	}
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if err := validateCustomerType(customerType); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Type:              customerType,
		Status:            CustomerStatusActive,
		CreditLimit:       decimal.Zero,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// NewIndividualCustomer creates a new individual customer
func NewIndividualCustomer(code, name string) (*Customer, error) {
	return NewCustomer(code, name, CustomerTypeIndividual)
}

// NewOrganizationCustomer creates a new organization customer
func NewOrganizationCustomer(code, name string) (*Customer, error) {
	return NewCustomer(code, name, CustomerTypeOrganization)
}

// Update updates the customer's basic information
func (c *Customer) Update(name string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}

	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContact sets the customer's contact information
func (c *Customer) SetContact(phone, email string) error {
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.Phone = phone
	c.Email = email
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetAddress sets the customer's address information
func (c *Customer) SetAddress(address, city string) error {
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	if len(city) > 100 {
		return shared.NewDomainError("INVALID_CITY", "City cannot exceed 100 characters")
	}

	c.Address = address
	c.City = city
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetTaxID sets the customer's tax identification number
func (c *Customer) SetTaxID(taxID string) error {
	if len(taxID) > 50 {
		return shared.NewDomainError("INVALID_TAX_ID", "Tax ID cannot exceed 50 characters")
	}

	c.TaxID = taxID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetCreditLimit sets the maximum outstanding debt allowed for credit sales
func (c *Customer) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}

	c.CreditLimit = limit
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets the customer's notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate reactivates an inactive customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("INVALID_STATUS", "Customer is already active")
	}

	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate marks the customer inactive. Historical receivables and
// payments are unaffected.
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("INVALID_STATUS", "Customer is already inactive")
	}

	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the customer can place orders and make payments
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// Validation functions

func validateCustomerCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Customer code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Customer code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Customer code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validateCustomerType(t CustomerType) error {
	switch t {
	case CustomerTypeIndividual, CustomerTypeOrganization:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Customer type must be 'individual' or 'organization'")
	}
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
