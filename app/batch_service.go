package app

import (
	"context"
	"math"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
)

// BatchService evaluates many independent t-test requests in parallel
type BatchService struct {
	ttest       *TTestService
	concurrency int
}

// BatchRow is the outcome of one request in a batch
type BatchRow struct {
	Index   int                `json:"row"`
	Request bayes.TTestRequest `json:"-"`
	Output  *bayes.Output      `json:"result,omitempty"`
	Error   string             `json:"error,omitempty"` // validation failure
}

// BatchSummary describes the finite log Bayes factors of a batch
type BatchSummary struct {
	Rows     int     `json:"rows"`
	Computed int     `json:"computed"`
	Failed   int     `json:"failed"`  // sentinel results
	Invalid  int     `json:"invalid"` // validation errors
	Mean     float64 `json:"mean_log_bf"`
	Median   float64 `json:"median_log_bf"`
	Min      float64 `json:"min_log_bf"`
	Max      float64 `json:"max_log_bf"`
}

// BatchReport contains every row and the summary
type BatchReport struct {
	Rows    []BatchRow   `json:"rows"`
	Summary BatchSummary `json:"summary"`
}

// NewBatchService creates a batch service running at most concurrency requests at once
func NewBatchService(ttest *TTestService, concurrency int) *BatchService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BatchService{ttest: ttest, concurrency: concurrency}
}

// Run evaluates reqs. Validation errors are reported per row; only context
// cancellation aborts the batch.
func (s *BatchService) Run(ctx context.Context, reqs []bayes.TTestRequest) (*BatchReport, error) {
	rows := make([]BatchRow, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := BatchRow{Index: i, Request: req}
			out, err := s.ttest.Run(req)
			if err != nil {
				row.Error = err.Error()
			} else {
				row.Output = &out
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &BatchReport{Rows: rows, Summary: summarize(rows)}, nil
}

func summarize(rows []BatchRow) BatchSummary {
	summary := BatchSummary{Rows: len(rows)}
	logBFs := make([]float64, 0, len(rows))
	for _, row := range rows {
		switch {
		case row.Output == nil:
			summary.Invalid++
		case row.Output.Result.IsSentinel():
			summary.Failed++
		default:
			summary.Computed++
			if v := row.Output.Result.LogBF; !math.IsNaN(v) && !math.IsInf(v, 0) {
				logBFs = append(logBFs, v)
			}
		}
	}
	if len(logBFs) == 0 {
		return summary
	}

	summary.Mean, _ = stats.Mean(logBFs)
	summary.Median, _ = stats.Median(logBFs)
	summary.Min, _ = stats.Min(logBFs)
	summary.Max, _ = stats.Max(logBFs)
	return summary
}
