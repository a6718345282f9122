package testkit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/domain/core"
	apperrors "github.com/raoelg/ttest-to-bayesfactor/internal/errors"
	"github.com/raoelg/ttest-to-bayesfactor/models"
)

func TestInMemoryCalculationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryCalculationRepository()
	out := bayes.NewOutput(bayes.SentinelResult(), false)

	first := models.NewCalculation(bayes.NewTTestRequest(1, 20), out)
	second := models.NewCalculation(bayes.NewTTestRequest(2, 20), out)
	third := models.NewCalculation(bayes.NewTTestRequest(1, 20), out)
	first.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	third.CreatedAt = first.CreatedAt.Add(2 * time.Minute)

	for _, c := range []*models.Calculation{first, second, third} {
		require.NoError(t, repo.Record(ctx, c))
	}
	assert.Equal(t, 3, repo.Len())

	err := repo.Record(ctx, first)
	assert.Equal(t, apperrors.CodeDatabaseError, apperrors.GetCode(err))

	got, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Same(t, second, got)

	_, err = repo.GetByID(ctx, core.NewID())
	assert.True(t, core.IsNotFoundError(err))

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []*models.Calculation{third, second}, recent)

	same, err := repo.ListByRequestHash(ctx, first.RequestHash, 0)
	require.NoError(t, err)
	assert.Equal(t, []*models.Calculation{third, first}, same)

	none, err := repo.ListByRequestHash(ctx, "missing", 10)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRequestGeneratorIsDeterministic(t *testing.T) {
	a := NewRequestGenerator("batch", 7).Requests(50)
	b := NewRequestGenerator("batch", 7).Requests(50)
	c := NewRequestGenerator("other", 7).Requests(50)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestRequestGeneratorCoverage(t *testing.T) {
	reqs := NewRequestGenerator("coverage", 1).Requests(400)

	var twoSample, bounded, halfBounded, complement, simple, large int
	for _, req := range reqs {
		require.GreaterOrEqual(t, req.N1, 5.0)
		if req.N2 > 0 {
			twoSample++
		}
		if len(req.Interval) == 2 {
			iv := bayes.NewNullInterval(req.Interval[0], req.Interval[1])
			if iv.IsBounded() {
				bounded++
			} else {
				halfBounded++
			}
		}
		if req.Complement {
			complement++
		}
		if req.Simple {
			simple++
		}
		if req.T > 15 || req.T < -15 {
			large++
		}
	}
	for name, count := range map[string]int{
		"two-sample": twoSample, "bounded": bounded, "half-bounded": halfBounded,
		"complement": complement, "simple": simple, "large t": large,
	} {
		assert.Positive(t, count, name)
	}
}
