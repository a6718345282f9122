package testkit

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/domain/core"
	apperrors "github.com/raoelg/ttest-to-bayesfactor/internal/errors"
	"github.com/raoelg/ttest-to-bayesfactor/models"
	"github.com/raoelg/ttest-to-bayesfactor/ports"
)

// InMemoryCalculationRepository implements CalculationRepository with in-memory storage
type InMemoryCalculationRepository struct {
	calcs map[uuid.UUID]*models.Calculation
	order []uuid.UUID // insertion order
	mu    sync.RWMutex
}

var _ ports.CalculationRepository = (*InMemoryCalculationRepository)(nil)

func NewInMemoryCalculationRepository() *InMemoryCalculationRepository {
	return &InMemoryCalculationRepository{
		calcs: make(map[uuid.UUID]*models.Calculation),
	}
}

func (s *InMemoryCalculationRepository) Record(ctx context.Context, calc *models.Calculation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.calcs[calc.ID]; exists {
		return apperrors.DatabaseError("calculation already recorded", nil)
	}
	s.calcs[calc.ID] = calc
	s.order = append(s.order, calc.ID)
	return nil
}

func (s *InMemoryCalculationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Calculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	calc, exists := s.calcs[id]
	if !exists {
		return nil, apperrors.NotFound("calculation", core.NewNotFoundError("calculation", id.String()))
	}
	return calc, nil
}

func (s *InMemoryCalculationRepository) ListRecent(ctx context.Context, limit int) ([]*models.Calculation, error) {
	return s.list(limit, func(*models.Calculation) bool { return true }), nil
}

func (s *InMemoryCalculationRepository) ListByRequestHash(ctx context.Context, hash string, limit int) ([]*models.Calculation, error) {
	return s.list(limit, func(c *models.Calculation) bool { return c.RequestHash == hash }), nil
}

// Len returns the number of recorded calculations
func (s *InMemoryCalculationRepository) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// list walks the ledger newest first, by creation time then insertion order
func (s *InMemoryCalculationRepository) list(limit int, keep func(*models.Calculation) bool) []*models.Calculation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	all := make([]*models.Calculation, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		all = append(all, s.calcs[s.order[i]])
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	results := []*models.Calculation{}
	for _, calc := range all {
		if !keep(calc) {
			continue
		}
		results = append(results, calc)
		if len(results) >= limit {
			break
		}
	}
	return results
}

// RequestGenerator produces deterministic streams of valid t-test requests
type RequestGenerator struct {
	rng *rand.Rand
}

// NewRequestGenerator creates a generator for a named stream; equal names and
// seeds give equal streams
func NewRequestGenerator(name string, seed int64) *RequestGenerator {
	if name != "" {
		seed = int64(hashString(name)) + seed
	}
	return &RequestGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Requests returns n requests covering one- and two-sample designs, every
// prior label, point nulls, bounded and half-bounded intervals, and both
// estimators
func (g *RequestGenerator) Requests(n int) []bayes.TTestRequest {
	labels := []bayes.ScaleLabel{bayes.ScaleMedium, bayes.ScaleWide, bayes.ScaleUltrawide}
	reqs := make([]bayes.TTestRequest, n)
	for i := range reqs {
		req := bayes.NewTTestRequest(g.statistic(), float64(5+g.rng.Intn(200)))
		if g.rng.Intn(2) == 0 {
			req.N2 = float64(5 + g.rng.Intn(200))
		}
		req.Prior = labels[g.rng.Intn(len(labels))]

		switch g.rng.Intn(4) {
		case 1:
			w := 0.05 + 0.5*g.rng.Float64()
			req.Interval = []float64{-w, w}
		case 2:
			req.Interval = []float64{math.Inf(-1), 0}
		case 3:
			req.Interval = []float64{0, math.Inf(1)}
		}
		req.Complement = req.Interval != nil && g.rng.Intn(3) == 0
		req.Simple = g.rng.Intn(5) == 0
		reqs[i] = req
	}
	return reqs
}

// statistic draws t mostly from the quadrature range with occasional large values
func (g *RequestGenerator) statistic() float64 {
	if g.rng.Intn(6) == 0 {
		return (16 + 20*g.rng.Float64()) * sign(g.rng)
	}
	return 8 * (g.rng.Float64() - 0.5)
}

func sign(rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
