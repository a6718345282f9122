package ui

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/domain/core"
	"github.com/raoelg/ttest-to-bayesfactor/internal/bayesfactor"
	apperrors "github.com/raoelg/ttest-to-bayesfactor/internal/errors"
)

// CalculationIDHeader carries the ledger id of a recorded calculation
const CalculationIDHeader = "X-Calculation-ID"

const maxBodyBytes = 8 << 20

// handleTTest computes one Bayes factor
func (a *App) handleTTest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		a.writeError(w, apperrors.InvalidInput("failed to read request body"))
		return
	}
	req, err := decodeTTestRequest(body)
	if err != nil {
		a.writeError(w, err)
		return
	}

	out, calc, err := a.calculations.Calculate(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if calc != nil {
		w.Header().Set(CalculationIDHeader, calc.ID.String())
	}
	a.writeJSON(w, http.StatusOK, out)
}

// handleTTestBatch computes many Bayes factors in one request
func (a *App) handleTTestBatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		a.writeError(w, apperrors.InvalidInput("failed to read request body"))
		return
	}
	reqs, err := decodeBatch(body)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if len(reqs) > a.maxBatchRows {
		a.writeError(w, apperrors.InvalidInput("batch exceeds "+strconv.Itoa(a.maxBatchRows)+" requests"))
		return
	}

	report, err := a.batch.Run(r.Context(), reqs)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, report)
}

// handleGetCalculation returns a recorded calculation
func (a *App) handleGetCalculation(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, apperrors.NotFound("calculation", err))
		return
	}
	calc, err := a.calculations.Get(r.Context(), id)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, calc)
}

// handleListCalculations returns the newest recorded calculations
func (a *App) handleListCalculations(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			a.writeError(w, apperrors.InvalidInput("limit must be a positive integer"))
			return
		}
		limit = n
	}
	calcs, err := a.calculations.Recent(r.Context(), limit)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, calcs)
}

// handleSearchCalculations returns recorded calculations of requests
// equivalent to the one in the body
func (a *App) handleSearchCalculations(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		a.writeError(w, apperrors.InvalidInput("failed to read request body"))
		return
	}
	req, err := decodeTTestRequest(body)
	if err != nil {
		a.writeError(w, err)
		return
	}
	calcs, err := a.calculations.ByRequest(r.Context(), req, 50)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, calcs)
}

// handlePriors lists the prior labels with their scales
func (a *App) handlePriors(w http.ResponseWriter, r *http.Request) {
	type prior struct {
		Label     string  `json:"label"`
		OneSample float64 `json:"one_sample"`
		TwoSample float64 `json:"two_sample"`
	}
	var priors []prior
	for _, label := range bayesfactor.Labels() {
		one, _ := bayesfactor.ResolveScale(bayes.FamilyOneSample, label)
		two, _ := bayesfactor.ResolveScale(bayes.FamilyTwoSample, label)
		priors = append(priors, prior{Label: string(label), OneSample: one, TwoSample: two})
	}
	a.writeJSON(w, http.StatusOK, priors)
}
