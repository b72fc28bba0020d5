package supplier

import (
	"context"
	"fmt"
	"time"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/id"
	"pharmapos/internal/core/numerator"
	"pharmapos/internal/core/tx"
	"pharmapos/internal/domain"
)

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Supplier service.
func NewService(repo Repository, gen numerator.Generator, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "supplier",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      gen,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkTaxNumber)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, item *Supplier) error {
	if item.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("SUP"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}

	return s.checkTaxNumber(ctx, item)
}

func (s *Service) checkTaxNumber(ctx context.Context, item *Supplier) error {
	if item.TaxNumber == nil || *item.TaxNumber == "" {
		return nil
	}

	if exists, _ := s.taxNumberExists(ctx, *item.TaxNumber, item.ID); exists {
		return apperror.NewConflict("supplier with this tax number already exists").
			WithDetail("taxNumber", item.TaxNumber)
	}

	return nil
}

// FindByTaxNumber retrieves a supplier by tax registration number.
func (s *Service) FindByTaxNumber(ctx context.Context, taxNumber string) (*Supplier, error) {
	return s.repo.FindByTaxNumber(ctx, taxNumber)
}

func (s *Service) taxNumberExists(ctx context.Context, taxNumber string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByTaxNumber(ctx, taxNumber)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}
