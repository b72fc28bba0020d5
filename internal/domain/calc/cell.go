// Package calc implements the line-item and document-footer recalculation
// engine shared by purchase invoices, purchase returns and sale invoices.
//
// The engine is pure: no I/O, no persistence, no shared state. Form handlers
// call it with the current line/footer values and the name of the field the
// user just edited, and render whatever comes back.
package calc

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Cell is a form field value that distinguishes blank from zero.
//
// Blank means "no value entered", which renders as an empty input and is a
// distinct state from numeric zero (a margin of 0% is not the same as an
// undetermined margin). Arithmetic coercion is total: blank or unparseable
// input reads as zero, so recalculation never fails.
//
// The raw text is kept verbatim so the field a user is actively typing in
// is never rewritten mid-keystroke (a trailing "5." stays "5.").
type Cell struct {
	raw string
}

// Blank returns a cell with no value.
func Blank() Cell {
	return Cell{}
}

// Numeric returns a cell holding the given decimal value.
func Numeric(d decimal.Decimal) Cell {
	return Cell{raw: d.String()}
}

// NumericFixed returns a cell holding d formatted with a fixed number of
// decimal places (e.g. "12.50").
func NumericFixed(d decimal.Decimal, places int32) Cell {
	return Cell{raw: d.StringFixed(places)}
}

// FromString returns a cell holding raw user input verbatim.
func FromString(s string) Cell {
	return Cell{raw: s}
}

// IsBlank reports whether the cell holds no value.
func (c Cell) IsBlank() bool {
	return strings.TrimSpace(c.raw) == ""
}

// Raw returns the stored text exactly as entered.
func (c Cell) Raw() string {
	return c.raw
}

// Decimal coerces the cell to a decimal value.
// Blank and unparseable input coerce to zero; in-progress input with a
// trailing decimal point ("5.") parses as the typed prefix.
func (c Cell) Decimal() decimal.Decimal {
	s := strings.TrimSpace(c.raw)
	if s == "" {
		return decimal.Zero
	}
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" || s == "+" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsZero reports whether the cell coerces to zero (blank counts as zero).
func (c Cell) IsZero() bool {
	return c.Decimal().IsZero()
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	return c.raw
}

// MarshalJSON emits the cell as a JSON string; blank becomes "".
// Form fields are strings on the wire, which keeps the blank-vs-zero
// distinction through serialization.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.raw)
}

// UnmarshalJSON accepts a JSON string, number or null.
func (c *Cell) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		c.raw = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		c.raw = s
		return nil
	}
	// Bare number token: keep it as typed.
	c.raw = trimmed
	return nil
}

// Value implements driver.Valuer; blank maps to SQL NULL.
func (c Cell) Value() (driver.Value, error) {
	if c.IsBlank() {
		return nil, nil
	}
	return c.Decimal().String(), nil
}

// Scan implements sql.Scanner; NULL maps to blank.
func (c *Cell) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		c.raw = ""
	case string:
		c.raw = v
	case []byte:
		c.raw = string(v)
	case float64:
		c.raw = decimal.NewFromFloat(v).String()
	case int64:
		c.raw = decimal.NewFromInt(v).String()
	default:
		return fmt.Errorf("unsupported type for Cell: %T", src)
	}
	return nil
}
