package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/raoelg/ttest-to-bayesfactor/app"
	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/internal"
	"github.com/raoelg/ttest-to-bayesfactor/internal/bayesfactor"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// App serves the calculator page and the JSON API
type App struct {
	router       *chi.Mux
	calculations *app.CalculationService
	batch        *app.BatchService
	templates    *template.Template
	logger       *internal.Logger
	maxBatchRows int
}

// Config holds UI application dependencies and limits
type Config struct {
	Calculations *app.CalculationService
	Batch        *app.BatchService
	Logger       *internal.Logger
	MaxBatchRows int
}

// NewApp creates a new UI application
func NewApp(config Config) (*App, error) {
	templates, err := template.New("").Funcs(template.FuncMap{
		"labels": bayesfactor.Labels,
		"selected": func(a, b bayes.ScaleLabel) bool { return a == b },
	}).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}
	maxRows := config.MaxBatchRows
	if maxRows < 1 {
		maxRows = 10000
	}

	a := &App{
		router:       chi.NewRouter(),
		calculations: config.Calculations,
		batch:        config.Batch,
		templates:    templates,
		logger:       logger.With("http"),
		maxBatchRows: maxRows,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Calculator page
	a.router.Get("/", a.handleIndex)
	a.router.Post("/", a.handleIndexSubmit)

	// API endpoints
	a.router.Route("/api", func(r chi.Router) {
		r.Post("/ttest", a.handleTTest)
		r.Post("/ttest/batch", a.handleTTestBatch)
		r.Get("/calculations", a.handleListCalculations)
		r.Post("/calculations/search", a.handleSearchCalculations)
		r.Get("/calculations/{id}", a.handleGetCalculation)
		r.Get("/priors", a.handlePriors)
	})
}

// ServeHTTP makes App usable as an http.Handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, status int, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("template error for %s: %v", templateName, err)
	}
}
