// Package docline converts the opaque line identity strings used by the
// calculation engine into typed values for validation and posting.
package docline

import (
	"time"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/id"
)

const (
	expiryLayoutDay   = "2006-01-02"
	expiryLayoutMonth = "2006-01"
)

// ParseProductID parses a line's product reference.
func ParseProductID(s string, lineNo int) (id.ID, error) {
	if s == "" {
		return id.Nil(), apperror.NewValidation("product is required").
			WithDetail("field", "lines").
			WithDetail("lineNo", lineNo)
	}

	productID, err := id.Parse(s)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid product reference").
			WithDetail("field", "lines").
			WithDetail("lineNo", lineNo).
			WithDetail("value", s)
	}

	return productID, nil
}

// ParseExpiry parses a line's expiry. Empty means no expiry tracking for the
// batch. Month precision ("2027-01") normalizes to the last day of the month.
func ParseExpiry(s string, lineNo int) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	if t, err := time.Parse(expiryLayoutDay, s); err == nil {
		return &t, nil
	}

	if t, err := time.Parse(expiryLayoutMonth, s); err == nil {
		eom := t.AddDate(0, 1, -1)
		return &eom, nil
	}

	return nil, apperror.NewValidation("invalid expiry date").
		WithDetail("field", "lines").
		WithDetail("lineNo", lineNo).
		WithDetail("value", s)
}
