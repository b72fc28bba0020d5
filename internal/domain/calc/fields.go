package calc

// Field identifies the form field the user just edited.
// Values match the snake_case names the fields are persisted under.
type Field string

const (
	// FieldNone marks a bulk update (product selection, line load) where no
	// single field is the source of the change.
	FieldNone Field = ""

	// Line fields (pack/unit shape)
	FieldPackSize          Field = "pack_size"
	FieldPackQuantity      Field = "pack_quantity"
	FieldUnitQuantity      Field = "unit_quantity"
	FieldPackPurchasePrice Field = "pack_purchase_price"
	FieldUnitPurchasePrice Field = "unit_purchase_price"
	FieldPackSalePrice     Field = "pack_sale_price"
	FieldUnitSalePrice     Field = "unit_sale_price"
	FieldPackBonus         Field = "pack_bonus"
	FieldUnitBonus         Field = "unit_bonus"

	// Line fields (sale shape)
	FieldQuantity Field = "quantity"
	FieldPrice    Field = "price"

	// Shared line field
	FieldItemDiscountPercent Field = "item_discount_percentage"

	// Footer fields
	FieldDiscountPercent Field = "discount_percentage"
	FieldDiscountAmount  Field = "discount_amount"
	FieldTaxPercent      Field = "tax_percentage"
	FieldTaxAmount       Field = "tax_amount"
)
