package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/raoelg/ttest-to-bayesfactor/models"
)

// CalculationRepository defines the interface for the calculation ledger.
// Records are written after a computation and never used to answer one.
type CalculationRepository interface {
	// Record appends a calculation
	Record(ctx context.Context, calc *models.Calculation) error

	// GetByID retrieves a calculation by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Calculation, error)

	// ListRecent returns the newest calculations first
	ListRecent(ctx context.Context, limit int) ([]*models.Calculation, error)

	// ListByRequestHash returns the newest calculations with a request fingerprint
	ListByRequestHash(ctx context.Context, hash string, limit int) ([]*models.Calculation, error)
}
