package container

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/internal"
	"github.com/raoelg/ttest-to-bayesfactor/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.AutoMigrate = true
	cfg.Log.Level = internal.LogLevelError
	cfg.Numerics.RelTolerance = 1e-8
	cfg.Numerics.MaxSubdivisions = 500
	cfg.Batch.Concurrency = 2
	cfg.Batch.MaxRows = 100
	return cfg
}

func TestNew(t *testing.T) {
	_, err := New(nil, nil)
	require.Error(t, err)

	c, err := New(testConfig(), internal.Discard)
	require.NoError(t, err)
	assert.False(t, c.Calculations.LedgerEnabled())

	out, err := c.TTest.Run(bayes.NewTTestRequest(2.5, 20))
	require.NoError(t, err)
	assert.Equal(t, bayes.MethodQuadrature, out.Result.Method)

	assert.NoError(t, c.Shutdown(context.Background()))
}

func TestInitWithDatabase(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	mock.ExpectPing()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS calculations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ADD COLUMN request_hash").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectClose()

	c, err := New(testConfig(), internal.Discard)
	require.NoError(t, err)

	require.NoError(t, c.InitWithDatabase(context.Background(), sqlx.NewDb(db, "postgres")))
	assert.True(t, c.Calculations.LedgerEnabled())
	assert.NotNil(t, c.CalculationRepo)

	require.NoError(t, c.Shutdown(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitWithDatabaseSkipsMigration(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	cfg := testConfig()
	cfg.Database.AutoMigrate = false
	c, err := New(cfg, internal.Discard)
	require.NoError(t, err)

	require.NoError(t, c.InitWithDatabase(context.Background(), sqlx.NewDb(db, "postgres")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitWithDatabaseFailures(t *testing.T) {
	c, err := New(testConfig(), internal.Discard)
	require.NoError(t, err)
	assert.Error(t, c.InitWithDatabase(context.Background(), nil))

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing().WillReturnError(assert.AnError)

	err = c.InitWithDatabase(context.Background(), sqlx.NewDb(db, "postgres"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database connection test failed")
	assert.False(t, c.Calculations.LedgerEnabled())
}
