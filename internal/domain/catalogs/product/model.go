// Package product provides the Product catalog: the medicines and other
// items the pharmacy buys and sells.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/entity"
	"pharmapos/internal/domain/calc"
)

// Form defines the dosage form of a medicine.
type Form string

const (
	FormTablet     Form = "tablet"
	FormCapsule    Form = "capsule"
	FormSyrup      Form = "syrup"
	FormInjection  Form = "injection"
	FormOintment   Form = "ointment"
	FormDrops      Form = "drops"
	FormSuspension Form = "suspension"
	FormOther      Form = "other"
)

// Product represents a pharmacy item.
type Product struct {
	entity.Catalog

	// GenericName is the active ingredient (e.g. "Paracetamol")
	GenericName string `db:"generic_name" json:"genericName"`

	// Form is the dosage form
	Form Form `db:"form" json:"form"`

	// Strength is the dosage strength (e.g. "500mg")
	Strength string `db:"strength" json:"strength,omitempty"`

	// Barcode is the item barcode (EAN-13, etc.)
	Barcode *string `db:"barcode" json:"barcode,omitempty"`

	// RackLocation is the shelf/rack where the item is stored
	RackLocation string `db:"rack_location" json:"rackLocation,omitempty"`

	// PackSize is the default units per pack (0 disables pack/unit conversion)
	PackSize int `db:"pack_size" json:"packSize"`

	// UnitPurchasePrice is the default purchase price per unit
	UnitPurchasePrice decimal.Decimal `db:"unit_purchase_price" json:"unitPurchasePrice"`

	// UnitSalePrice is the default sale price per unit
	UnitSalePrice decimal.Decimal `db:"unit_sale_price" json:"unitSalePrice"`

	// ReorderLevel triggers the low-stock report when balance drops below it
	ReorderLevel decimal.Decimal `db:"reorder_level" json:"reorderLevel"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name string) *Product {
	return &Product{
		Catalog: entity.NewCatalog(code, name),
		Form:    FormOther,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidForm(p.Form) {
		return apperror.NewValidation("invalid dosage form").
			WithDetail("field", "form").
			WithDetail("value", string(p.Form))
	}

	if p.PackSize < 0 {
		return apperror.NewValidation("pack size cannot be negative").
			WithDetail("field", "packSize")
	}

	if p.UnitPurchasePrice.IsNegative() {
		return apperror.NewValidation("purchase price cannot be negative").
			WithDetail("field", "unitPurchasePrice")
	}

	if p.UnitSalePrice.IsNegative() {
		return apperror.NewValidation("sale price cannot be negative").
			WithDetail("field", "unitSalePrice")
	}

	if p.ReorderLevel.IsNegative() {
		return apperror.NewValidation("reorder level cannot be negative").
			WithDetail("field", "reorderLevel")
	}

	return nil
}

// Defaults returns the per-line defaults the calculator folds into a fresh
// line when this product is selected.
func (p *Product) Defaults() calc.ProductDefaults {
	return calc.ProductDefaults{
		PackSize:          decimal.NewFromInt(int64(p.PackSize)),
		UnitPurchasePrice: p.UnitPurchasePrice,
		UnitSalePrice:     p.UnitSalePrice,
	}
}

func isValidForm(f Form) bool {
	switch f {
	case FormTablet, FormCapsule, FormSyrup, FormInjection,
		FormOintment, FormDrops, FormSuspension, FormOther:
		return true
	}
	return false
}
