package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/domain/core"
	"github.com/raoelg/ttest-to-bayesfactor/internal"
	apperrors "github.com/raoelg/ttest-to-bayesfactor/internal/errors"
	"github.com/raoelg/ttest-to-bayesfactor/models"
	"github.com/raoelg/ttest-to-bayesfactor/ports"
)

// CalculationService runs t-test requests and appends them to the
// calculation ledger when one is configured
type CalculationService struct {
	ttest  *TTestService
	repo   ports.CalculationRepository // nil disables the ledger
	logger *internal.Logger
}

// NewCalculationService creates a calculation service; repo may be nil
func NewCalculationService(ttest *TTestService, repo ports.CalculationRepository, logger *internal.Logger) *CalculationService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CalculationService{ttest: ttest, repo: repo, logger: logger.With("ledger")}
}

// LedgerEnabled reports whether calculations are recorded
func (s *CalculationService) LedgerEnabled() bool {
	return s.repo != nil
}

// Calculate runs req and records it. A ledger failure is logged and does not
// discard the computed output; the returned record is nil in that case.
func (s *CalculationService) Calculate(ctx context.Context, req bayes.TTestRequest) (bayes.Output, *models.Calculation, error) {
	out, err := s.ttest.Run(req)
	if err != nil {
		return bayes.Output{}, nil, err
	}
	if s.repo == nil {
		return out, nil, nil
	}

	calc := models.NewCalculation(req, out)
	if err := s.repo.Record(ctx, calc); err != nil {
		s.logger.Warn("failed to record calculation %s: %v", calc.ID, err)
		return out, nil, nil
	}
	return out, calc, nil
}

// Get returns a recorded calculation
func (s *CalculationService) Get(ctx context.Context, id uuid.UUID) (*models.Calculation, error) {
	if s.repo == nil {
		return nil, apperrors.NotFound("calculation", core.ErrCalculationNotFound)
	}
	return s.repo.GetByID(ctx, id)
}

// Recent lists the newest recorded calculations
func (s *CalculationService) Recent(ctx context.Context, limit int) ([]*models.Calculation, error) {
	if s.repo == nil {
		return []*models.Calculation{}, nil
	}
	return s.repo.ListRecent(ctx, limit)
}

// ByRequest lists the newest recorded calculations of requests equivalent to req
func (s *CalculationService) ByRequest(ctx context.Context, req bayes.TTestRequest, limit int) ([]*models.Calculation, error) {
	if s.repo == nil {
		return []*models.Calculation{}, nil
	}
	return s.repo.ListByRequestHash(ctx, models.Fingerprint(req).String(), limit)
}
