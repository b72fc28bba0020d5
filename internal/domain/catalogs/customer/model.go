// Package customer provides the Customer catalog. Most sales are made to
// walk-in customers without a catalog entry; named customers are used for
// credit sales and purchase history.
package customer

import (
	"context"
	"strings"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/entity"
)

// Customer represents a named sale counterparty.
type Customer struct {
	entity.Catalog

	// Phone is the contact phone number
	Phone string `db:"phone" json:"phone,omitempty"`

	// Email is the contact email
	Email string `db:"email" json:"email,omitempty"`

	// Address is the customer's address
	Address string `db:"address" json:"address,omitempty"`
}

// NewCustomer creates a new Customer with required fields.
func NewCustomer(code, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return apperror.NewValidation("invalid email address").
			WithDetail("field", "email").
			WithDetail("value", c.Email)
	}

	return nil
}
