package models

import (
	"github.com/motogarage/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	AggregateModel
	Code        string                 `gorm:"type:varchar(50);not null;uniqueIndex:idx_customer_code"`
	Name        string                 `gorm:"type:varchar(200);not null"`
	Type        partner.CustomerType   `gorm:"type:varchar(20);not null;default:'individual'"`
	Status      partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Phone       string                 `gorm:"type:varchar(50);index"`
	Email       string                 `gorm:"type:varchar(200);index"`
	Address     string                 `gorm:"type:varchar(500)"`
	City        string                 `gorm:"type:varchar(100)"`
	TaxID       string                 `gorm:"type:varchar(50)"`
	CreditLimit decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	Notes       string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Type:              m.Type,
		Status:            m.Status,
		Phone:             m.Phone,
		Email:             m.Email,
		Address:           m.Address,
		City:              m.City,
		TaxID:             m.TaxID,
		CreditLimit:       m.CreditLimit,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Type = c.Type
	m.Status = c.Status
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
	m.City = c.City
	m.TaxID = c.TaxID
	m.CreditLimit = c.CreditLimit
	m.Notes = c.Notes
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
