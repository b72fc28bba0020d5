// Package supplier provides the Supplier catalog: the distributors and
// wholesalers the pharmacy purchases from.
package supplier

import (
	"context"
	"strings"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/entity"
)

// Supplier represents a purchase counterparty.
type Supplier struct {
	entity.Catalog

	// ContactPerson is the supplier's representative
	ContactPerson string `db:"contact_person" json:"contactPerson,omitempty"`

	// Phone is the contact phone number
	Phone string `db:"phone" json:"phone,omitempty"`

	// Email is the contact email
	Email string `db:"email" json:"email,omitempty"`

	// Address is the supplier's address
	Address string `db:"address" json:"address,omitempty"`

	// TaxNumber is the supplier's tax registration number
	TaxNumber *string `db:"tax_number" json:"taxNumber,omitempty"`
}

// NewSupplier creates a new Supplier with required fields.
func NewSupplier(code, name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if s.Email != "" && !strings.Contains(s.Email, "@") {
		return apperror.NewValidation("invalid email address").
			WithDetail("field", "email").
			WithDetail("value", s.Email)
	}

	return nil
}
