package product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmapos/internal/core/apperror"
	"pharmapos/internal/core/id"
	"pharmapos/internal/core/numerator"
	"pharmapos/internal/domain"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	items map[id.ID]*Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[id.ID]*Product)}
}

func (r *fakeRepo) Create(_ context.Context, p *Product) error {
	r.items[p.ID] = p
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, entityID id.ID) (*Product, error) {
	p, ok := r.items[entityID]
	if !ok {
		return nil, apperror.NewNotFound("product", entityID.String())
	}
	return p, nil
}

func (r *fakeRepo) GetByCode(_ context.Context, code string) (*Product, error) {
	for _, p := range r.items {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("product", code)
}

func (r *fakeRepo) Update(_ context.Context, p *Product) error {
	r.items[p.ID] = p
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, entityID id.ID) error {
	delete(r.items, entityID)
	return nil
}

func (r *fakeRepo) SetDeletionMark(_ context.Context, entityID id.ID, marked bool) error {
	p, ok := r.items[entityID]
	if !ok {
		return apperror.NewNotFound("product", entityID.String())
	}
	p.DeletionMark = marked
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	result := domain.ListResult[*Product]{Limit: filter.Limit, Offset: filter.Offset}
	for _, p := range r.items {
		result.Items = append(result.Items, p)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *fakeRepo) Exists(_ context.Context, entityID id.ID) (bool, error) {
	_, ok := r.items[entityID]
	return ok, nil
}

func (r *fakeRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, err := r.GetByCode(context.Background(), code)
	return err == nil, nil
}

func (r *fakeRepo) FindByBarcode(_ context.Context, barcode string) (*Product, error) {
	for _, p := range r.items {
		if p.Barcode != nil && *p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("product", barcode)
}

func (r *fakeRepo) FindLowStock(_ context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return domain.ListResult[*Product]{Limit: filter.Limit, Offset: filter.Offset}, nil
}

// noopTxManager runs the function without a transaction.
type noopTxManager struct{}

func (noopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *fakeRepo, gen numerator.Generator) *Service {
	return NewService(repo, gen, noopTxManager{})
}

func TestCreateGeneratesCode(t *testing.T) {
	repo := newFakeRepo()
	gen := &numerator.MockGenerator{
		GetNextNumberFunc: func(_ context.Context, cfg numerator.Config, _ *numerator.Options, _ time.Time) (string, error) {
			assert.Equal(t, "MED", cfg.Prefix)
			return "MED-2026-00042", nil
		},
	}
	svc := newTestService(repo, gen)

	p := NewProduct("", "Paracetamol 500mg")
	require.NoError(t, svc.Create(context.Background(), p))

	assert.Equal(t, "MED-2026-00042", p.Code)

	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "MED-2026-00042", stored.Code)
}

func TestCreateKeepsExplicitCode(t *testing.T) {
	repo := newFakeRepo()
	gen := &numerator.MockGenerator{
		GetNextNumberFunc: func(context.Context, numerator.Config, *numerator.Options, time.Time) (string, error) {
			t.Fatal("numerator must not be called when a code is provided")
			return "", nil
		},
	}
	svc := newTestService(repo, gen)

	p := NewProduct("MED-MANUAL", "Ibuprofen 200mg")
	require.NoError(t, svc.Create(context.Background(), p))
	assert.Equal(t, "MED-MANUAL", p.Code)
}

func TestCreateRejectsDuplicateBarcode(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &numerator.MockGenerator{})

	barcode := "4870001234567"

	first := NewProduct("MED-1", "Amoxicillin 250mg")
	first.Barcode = &barcode
	require.NoError(t, svc.Create(context.Background(), first))

	second := NewProduct("MED-2", "Amoxicillin 500mg")
	second.Barcode = &barcode

	err := svc.Create(context.Background(), second)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestCreateRejectsInvalidForm(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &numerator.MockGenerator{})

	p := NewProduct("MED-1", "Paracetamol 500mg")
	p.Form = Form("powder")

	err := svc.Create(context.Background(), p)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestDeleteSetsDeletionMark(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &numerator.MockGenerator{})

	p := NewProduct("MED-1", "Cetirizine 10mg")
	require.NoError(t, svc.Create(context.Background(), p))

	require.NoError(t, svc.Delete(context.Background(), p.ID))

	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, stored.DeletionMark)
}
