// Package customerrepo persists registered customers in the "customers"
// collection. Emails are unique across the collection.
package customerrepo

import (
	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
)

// Collection holds customer documents.
const Collection = "customers"

// UniqueIndexes lists the constraints a store must enforce for this
// repository.
func UniqueIndexes() []ports.UniqueIndex {
	return []ports.UniqueIndex{{Collection: Collection, Field: "email"}}
}

// CustomerDTO is the stored customer document. GST fields are null unless
// the customer asked for a GST invoice.
type CustomerDTO struct {
	ID             string  `json:"_id"`
	CustomerID     string  `json:"customer_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	GSTRequired    bool    `json:"gst_required"`
	GSTNumber      *string `json:"gst_number"`
	CompanyName    *string `json:"company_name"`
	BillingAddress *string `json:"billing_address"`
}

func fromDomain(c *customer.Customer) CustomerDTO {
	gst := c.GST()
	dto := CustomerDTO{
		ID:          c.ID().String(),
		CustomerID:  c.Code().String(),
		Name:        c.Name(),
		Email:       c.Email(),
		Password:    c.PasswordHash(),
		GSTRequired: gst.Required,
	}
	if gst.Required {
		dto.GSTNumber = &gst.Number
		dto.CompanyName = &gst.CompanyName
		dto.BillingAddress = &gst.BillingAddress
	}
	return dto
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}
	code, err := customer.ParseCode(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	gst := customer.GST{Required: dto.GSTRequired}
	if dto.GSTRequired {
		gst.Number = deref(dto.GSTNumber)
		gst.CompanyName = deref(dto.CompanyName)
		gst.BillingAddress = deref(dto.BillingAddress)
	}
	return customer.NewCustomer(id, code, dto.Name, dto.Email, dto.Password, gst)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
