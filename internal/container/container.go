package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/raoelg/ttest-to-bayesfactor/adapters/postgres"
	"github.com/raoelg/ttest-to-bayesfactor/app"
	"github.com/raoelg/ttest-to-bayesfactor/internal"
	"github.com/raoelg/ttest-to-bayesfactor/internal/bayesfactor"
	"github.com/raoelg/ttest-to-bayesfactor/internal/config"
	"github.com/raoelg/ttest-to-bayesfactor/internal/distributions"
	"github.com/raoelg/ttest-to-bayesfactor/internal/migration"
	"github.com/raoelg/ttest-to-bayesfactor/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	CalculationRepo ports.CalculationRepository

	// Numerical engine
	Distributions *distributions.StatisticalDistributions
	Engine        *bayesfactor.Engine
	Orchestrator  *bayesfactor.Orchestrator

	// Services
	TTest        *app.TTestService
	Calculations *app.CalculationService
	Batch        *app.BatchService
}

// New creates a new dependency injection container with the numerical
// engine and services wired; the ledger stays disabled until InitWithDatabase
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewLogger(cfg.Log.Level)
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}
	c.initEngine()
	c.initServices()
	return c, nil
}

// initEngine builds the distributions, estimators and orchestrator
func (c *Container) initEngine() {
	n := c.Config.Numerics
	integrator := distributions.NewAdaptiveIntegrator(n.RelTolerance, n.AbsTolerance, n.MaxSubdivisions)
	c.Distributions = distributions.NewDistributions(integrator)
	c.Engine = bayesfactor.NewEngine(c.Distributions.StudentT, c.Distributions.Cauchy, c.Distributions.Integrator)
	c.Orchestrator = bayesfactor.NewOrchestrator(c.Engine, c.Logger)
}

// initServices (re)builds the services on top of the current repositories
func (c *Container) initServices() {
	c.TTest = app.NewTTestService(c.Orchestrator, c.Logger)
	c.Calculations = app.NewCalculationService(c.TTest, c.CalculationRepo, c.Logger)
	c.Batch = app.NewBatchService(c.TTest, c.Config.Batch.Concurrency)
}

// InitWithDatabase enables the calculation ledger on db
func (c *Container) InitWithDatabase(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	c.DB = db

	// Test database connection
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	if c.Config.Database.AutoMigrate {
		runner := migration.NewRunner()
		if err := runner.Run(ctx, db); err != nil {
			return err
		}
		c.Logger.Info("Calculation ledger schema at version %s", runner.Version())
	}

	c.CalculationRepo = postgres.NewCalculationRepository(db)
	c.initServices()

	c.Logger.Info("Container initialized with calculation ledger")
	return nil
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
