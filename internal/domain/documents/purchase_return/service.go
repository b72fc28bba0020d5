// Package purchase_return provides the PurchaseReturn document service.
package purchase_return

import (
	"context"
	"fmt"
	"time"

	"pharmapos/internal/core/id"
	"pharmapos/internal/core/numerator"
	"pharmapos/internal/core/tx"
	"pharmapos/internal/domain"
	"pharmapos/internal/domain/posting"
	"pharmapos/pkg/logger"
)

// Service provides business operations for purchase return documents.
type Service struct {
	repo          Repository
	postingEngine *posting.Engine
	numerator     numerator.Generator
	txManager     tx.Manager
	hooks         *domain.HookRegistry[*PurchaseReturn]
}

// NewService creates a new purchase return service.
func NewService(
	repo Repository,
	postingEngine *posting.Engine,
	gen numerator.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:          repo,
		postingEngine: postingEngine,
		numerator:     gen,
		txManager:     txManager,
		hooks:         domain.NewHookRegistry[*PurchaseReturn](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*PurchaseReturn] {
	return s.hooks
}

func (s *Service) ensureNumber(ctx context.Context, doc *PurchaseReturn) error {
	if doc.Number != "" {
		return nil
	}
	cfg := numerator.DefaultConfig(NumberPrefix)
	number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
	if err != nil {
		return fmt.Errorf("generate number: %w", err)
	}
	doc.Number = number
	return nil
}

// Create creates a new purchase return document.
func (s *Service) Create(ctx context.Context, doc *PurchaseReturn) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	doc.RecalcAll()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.ensureNumber(ctx, doc); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "purchase return created",
		"id", doc.ID,
		"number", doc.Number)

	return nil
}

// GetByID retrieves a purchase return with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*PurchaseReturn, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// Update updates a purchase return document.
func (s *Service) Update(ctx context.Context, doc *PurchaseReturn) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	doc.RecalcAll()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
}

// Delete soft-deletes a purchase return.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if doc.Posted {
		return doc.CanModify()
	}

	return s.repo.Delete(ctx, docID)
}

// Post records document movements to the stock register.
func (s *Service) Post(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	updateDoc := func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	}

	return s.postingEngine.Post(ctx, doc, updateDoc)
}

// Unpost reverses document movements.
func (s *Service) Unpost(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	updateDoc := func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	}

	return s.postingEngine.Unpost(ctx, doc, updateDoc)
}

// PostAndSave posts the document and saves changes atomically.
func (s *Service) PostAndSave(ctx context.Context, doc *PurchaseReturn) error {
	doc.RecalcAll()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.ensureNumber(ctx, doc); err != nil {
		return err
	}

	updateDoc := func(ctx context.Context) error {
		if doc.Version == 1 {
			if err := s.repo.Create(ctx, doc); err != nil {
				return err
			}
			return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
		}
		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	}

	return s.postingEngine.Post(ctx, doc, updateDoc)
}

// Copy returns an unsaved draft with the same supplier, lines and footer
// inputs. Number and posting state are reset.
func (s *Service) Copy(ctx context.Context, docID id.ID) (*PurchaseReturn, error) {
	src, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	cp := NewPurchaseReturn(src.SupplierID)
	cp.OriginalInvoiceNumber = src.OriginalInvoiceNumber
	cp.Comment = src.Comment
	cp.Totals.DiscountPercent = src.Totals.DiscountPercent
	cp.Totals.TaxPercent = src.Totals.TaxPercent
	for _, line := range src.Lines {
		cp.AddLine(line.LineItem)
	}

	return cp, nil
}

// List retrieves purchase returns with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseReturn], error) {
	return s.repo.List(ctx, filter)
}
