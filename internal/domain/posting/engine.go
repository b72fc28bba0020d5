package posting

import (
	"context"
	"fmt"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/tx"
	"pharmapos/internal/domain/registers/stock"
	"pharmapos/pkg/logger"
)

// Engine posts and unposts documents.
type Engine struct {
	stock     *stock.Service
	txManager tx.Manager
}

// NewEngine creates a posting engine.
func NewEngine(stockService *stock.Service, txManager tx.Manager) *Engine {
	return &Engine{
		stock:     stockService,
		txManager: txManager,
	}
}

// Post records the document's movements and marks it posted, atomically
// with the document update performed by updateDoc.
//
// Re-posting an already posted document replaces its prior movements:
// movements carry the posting iteration as recorder_version, and everything
// below the new version is deleted first.
func (e *Engine) Post(ctx context.Context, doc Postable, updateDoc func(ctx context.Context) error) error {
	if err := doc.CanPost(ctx); err != nil {
		return err
	}

	movements, err := doc.GenerateMovements(ctx)
	if err != nil {
		return fmt.Errorf("generate movements: %w", err)
	}

	newVersion := doc.GetPostedVersion() + 1

	err = e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Reverse first so availability checks see the document's own prior
		// expenses as returned.
		if err := e.stock.ReverseMovements(ctx, doc.GetID(), newVersion); err != nil {
			return err
		}

		if err := e.stock.CheckAvailability(ctx, movements.Stock); err != nil {
			return err
		}

		if err := e.stock.RecordMovements(ctx, movements.Stock); err != nil {
			return err
		}

		doc.MarkPosted()
		return updateDoc(ctx)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document posted",
		"document_type", doc.GetDocumentType(),
		"document_id", doc.GetID(),
		"posted_version", doc.GetPostedVersion(),
		"movements", len(movements.Stock),
	)

	return nil
}

// Unpost reverses the document's movements and clears the posted flag,
// atomically with the document update performed by updateDoc.
func (e *Engine) Unpost(ctx context.Context, doc Postable, updateDoc func(ctx context.Context) error) error {
	if !doc.IsPosted() {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"Document is not posted",
		).WithDetail("document_id", doc.GetID().String())
	}

	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := e.stock.ReverseMovements(ctx, doc.GetID(), doc.GetPostedVersion()+1); err != nil {
			return err
		}

		doc.MarkUnposted()
		return updateDoc(ctx)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document unposted",
		"document_type", doc.GetDocumentType(),
		"document_id", doc.GetID(),
	)

	return nil
}
