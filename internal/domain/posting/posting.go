// Package posting provides the document posting engine.
//
// Posting records a document's register movements; unposting reverses them.
// Both run in a single transaction together with the document update, and
// movements are versioned by posting iteration so re-posting a modified
// document replaces its prior movements.
package posting

import (
	"context"

	"pharmapos/internal/core/entity"
	"pharmapos/internal/core/id"
)

// Postable is implemented by documents that produce register movements.
// entity.Document provides defaults for everything except GetDocumentType
// and GenerateMovements.
type Postable interface {
	GetID() id.ID
	GetDocumentType() string
	GetPostedVersion() int
	IsPosted() bool

	// CanPost validates the document before posting.
	CanPost(ctx context.Context) error

	// GenerateMovements produces the movements for the next posting
	// iteration (PostedVersion+1).
	GenerateMovements(ctx context.Context) (*MovementSet, error)

	MarkPosted()
	MarkUnposted()
}

// MovementSet aggregates movements across registers for one posting.
type MovementSet struct {
	Stock []entity.StockMovement
}

// NewMovementSet creates an empty movement set.
func NewMovementSet() *MovementSet {
	return &MovementSet{}
}

// AddStock appends a stock register movement.
func (m *MovementSet) AddStock(movement entity.StockMovement) {
	m.Stock = append(m.Stock, movement)
}

// IsEmpty reports whether the set contains no movements.
func (m *MovementSet) IsEmpty() bool {
	return len(m.Stock) == 0
}
