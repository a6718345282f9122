package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/raoelg/ttest-to-bayesfactor/domain/core"
	apperrors "github.com/raoelg/ttest-to-bayesfactor/internal/errors"
	"github.com/raoelg/ttest-to-bayesfactor/models"
	"github.com/raoelg/ttest-to-bayesfactor/ports"
)

const calculationColumns = `id, t, n1, n2, interval_lower, interval_upper, prior,
		       complement, simple, log_bf, prop_error, method, request_hash, created_at`

// CalculationRepositoryImpl implements CalculationRepository for PostgreSQL
type CalculationRepositoryImpl struct {
	db *sqlx.DB
}

// NewCalculationRepository creates a new PostgreSQL calculation repository
func NewCalculationRepository(db *sqlx.DB) ports.CalculationRepository {
	return &CalculationRepositoryImpl{db: db}
}

// Connect opens and pings a PostgreSQL connection
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to connect to database", err)
	}
	return db, nil
}

// Record appends a calculation to the ledger
func (r *CalculationRepositoryImpl) Record(ctx context.Context, calc *models.Calculation) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO calculations (
			id, t, n1, n2, interval_lower, interval_upper, prior,
			complement, simple, log_bf, prop_error, method, request_hash, created_at
		) VALUES (
			:id, :t, :n1, :n2, :interval_lower, :interval_upper, :prior,
			:complement, :simple, :log_bf, :prop_error, :method, :request_hash, :created_at
		)
	`, calc)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return apperrors.DatabaseError("calculation already recorded", err)
		}
		return apperrors.DatabaseError("failed to record calculation", err)
	}
	return nil
}

// GetByID retrieves a calculation by its ID
func (r *CalculationRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Calculation, error) {
	var calc models.Calculation
	err := r.db.GetContext(ctx, &calc, `
		SELECT `+calculationColumns+`
		FROM calculations
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("calculation", core.NewNotFoundError("calculation", id.String()))
	}
	if err != nil {
		return nil, apperrors.DatabaseError("failed to load calculation", err)
	}
	return &calc, nil
}

// ListRecent returns up to limit calculations, newest first
func (r *CalculationRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*models.Calculation, error) {
	if limit <= 0 {
		limit = 50
	}
	calcs := []*models.Calculation{}
	err := r.db.SelectContext(ctx, &calcs, `
		SELECT `+calculationColumns+`
		FROM calculations
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list calculations", err)
	}
	return calcs, nil
}

// ListByRequestHash returns up to limit calculations with the given request
// fingerprint, newest first
func (r *CalculationRepositoryImpl) ListByRequestHash(ctx context.Context, hash string, limit int) ([]*models.Calculation, error) {
	if limit <= 0 {
		limit = 50
	}
	calcs := []*models.Calculation{}
	err := r.db.SelectContext(ctx, &calcs, `
		SELECT `+calculationColumns+`
		FROM calculations
		WHERE request_hash = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, hash, limit)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list calculations", err)
	}
	return calcs, nil
}
