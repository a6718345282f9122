package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/raoelg/ttest-to-bayesfactor/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles the calculation ledger schema
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.1.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in order. Every step is idempotent.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createCalculationsTable(ctx, db); err != nil {
		return errors.DatabaseError("failed to create calculations table", err)
	}

	if err := r.addRequestHashColumn(ctx, db); err != nil {
		return errors.DatabaseError("failed to add request_hash to calculations", err)
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.DatabaseError("failed to create indexes", err)
	}

	return nil
}

func (r *MigrationRunner) createCalculationsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS calculations (
			id             UUID PRIMARY KEY,
			t              DOUBLE PRECISION NOT NULL,
			n1             DOUBLE PRECISION NOT NULL,
			n2             DOUBLE PRECISION NOT NULL,
			interval_lower TEXT,
			interval_upper TEXT,
			prior          TEXT NOT NULL,
			complement     BOOLEAN NOT NULL DEFAULT FALSE,
			simple         BOOLEAN NOT NULL DEFAULT FALSE,
			log_bf         DOUBLE PRECISION,
			prop_error     DOUBLE PRECISION,
			method         TEXT,
			created_at     TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

// addRequestHashColumn upgrades ledgers created before fingerprints were recorded
func (r *MigrationRunner) addRequestHashColumn(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'calculations' AND column_name = 'request_hash'
			) THEN
				ALTER TABLE calculations ADD COLUMN request_hash TEXT NOT NULL DEFAULT '';
			END IF;
		END $$;
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations (created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_calculations_request_hash ON calculations (request_hash);
	`)
	return err
}
