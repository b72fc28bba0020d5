// Package numerator adapts the sys_sequences numbering service to the
// domain Generator contract.
package numerator

import (
	"context"
	"time"

	core "pharmapos/internal/core/numerator"
	pkgnumerator "pharmapos/pkg/numerator"
)

// Service implements the domain numerator.Generator contract on top of
// pkg/numerator.
type Service struct {
	svc *pkgnumerator.Service
}

// Compile-time check.
var _ core.Generator = (*Service)(nil)

// NewService creates the generator. The querier is typically the pgx pool;
// strict numbering then takes part in the caller's transaction only through
// the sequence row lock, which is what gapless numbering needs.
func NewService(querier pkgnumerator.Querier) *Service {
	return &Service{svc: pkgnumerator.New(querier)}
}

// GetNextNumber generates the next document number.
func (s *Service) GetNextNumber(ctx context.Context, cfg core.Config, opts *core.Options, period time.Time) (string, error) {
	return s.svc.GetNextNumber(ctx, toConfig(cfg), toOptions(opts), period)
}

// SetNextNumber sets the next number value (for migration purposes).
func (s *Service) SetNextNumber(ctx context.Context, cfg core.Config, period time.Time, value int64) error {
	return s.svc.SetNextNumber(ctx, toConfig(cfg), period, value)
}

func toConfig(cfg core.Config) pkgnumerator.Config {
	return pkgnumerator.Config{
		Prefix:      cfg.Prefix,
		IncludeYear: cfg.IncludeYear,
		PadWidth:    cfg.PadWidth,
		ResetPeriod: cfg.ResetPeriod,
	}
}

func toOptions(opts *core.Options) *pkgnumerator.Options {
	if opts == nil {
		return nil
	}
	return &pkgnumerator.Options{
		Strategy:  pkgnumerator.Strategy(opts.Strategy),
		RangeSize: opts.RangeSize,
	}
}
