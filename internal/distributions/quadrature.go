package distributions

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/raoelg/ttest-to-bayesfactor/domain/core"
	"github.com/raoelg/ttest-to-bayesfactor/ports"
)

// ErrMaxSubdivisions is returned when the error target is not met within the subdivision budget
var ErrMaxSubdivisions = errors.New("maximum number of subdivisions reached")

const (
	coarsePoints = 10
	finePoints   = 21
)

// legendreRule holds Gauss-Legendre nodes and weights on [-1, 1]
type legendreRule struct {
	x, w []float64
}

func newLegendreRule(n int) legendreRule {
	r := legendreRule{x: make([]float64, n), w: make([]float64, n)}
	quad.Legendre{}.FixedLocations(r.x, r.w, -1, 1)
	return r
}

func (r legendreRule) apply(f func(float64) float64, a, b float64) float64 {
	mid, half := 0.5*(a+b), 0.5*(b-a)
	var sum float64
	for i, x := range r.x {
		sum += r.w[i] * f(mid+half*x)
	}
	return sum * half
}

// panel is a subinterval with its integral estimate and error estimate
type panel struct {
	a, b  float64
	value float64
	err   float64
}

// AdaptiveIntegrator performs globally adaptive Gauss-Legendre quadrature.
// Each panel is estimated with a 10- and a 21-point rule; the panel with the
// largest disagreement is bisected until the summed error estimate is within
// max(AbsTolerance, RelTolerance*|integral|).
//
// An AdaptiveIntegrator is immutable after construction and safe for
// concurrent use.
type AdaptiveIntegrator struct {
	RelTolerance    float64
	AbsTolerance    float64
	MaxSubdivisions int

	coarse legendreRule
	fine   legendreRule
}

// NewAdaptiveIntegrator creates an integrator with the given error targets
func NewAdaptiveIntegrator(relTol, absTol float64, maxSubdivisions int) *AdaptiveIntegrator {
	if maxSubdivisions < 1 {
		maxSubdivisions = 1
	}
	return &AdaptiveIntegrator{
		RelTolerance:    relTol,
		AbsTolerance:    absTol,
		MaxSubdivisions: maxSubdivisions,
		coarse:          newLegendreRule(coarsePoints),
		fine:            newLegendreRule(finePoints),
	}
}

// DefaultIntegrator returns an integrator suitable for likelihood integrals
func DefaultIntegrator() *AdaptiveIntegrator {
	return NewAdaptiveIntegrator(1e-8, 0, 500)
}

var _ ports.Integrator = (*AdaptiveIntegrator)(nil)

// Integrate integrates f over (lower, upper). Infinite bounds are mapped onto
// a finite range before subdivision.
func (ai *AdaptiveIntegrator) Integrate(f func(float64) float64, lower, upper float64) (ports.Integral, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return ports.Integral{}, fmt.Errorf("%w: integration bound is NaN", core.ErrNonFinite)
	}
	if lower == upper {
		return ports.Integral{}, nil
	}
	sign := 1.0
	if upper < lower {
		lower, upper = upper, lower
		sign = -1
	}

	g, a, b := toFiniteRange(f, lower, upper)
	panels := []panel{ai.estimate(g, a, b)}
	for {
		var value, errEst float64
		worst := 0
		for i, p := range panels {
			value += p.value
			errEst += p.err
			if p.err > panels[worst].err {
				worst = i
			}
		}
		if math.IsNaN(value) || math.IsInf(value, 0) || math.IsNaN(errEst) {
			return ports.Integral{}, fmt.Errorf("%w: integral estimate %g", core.ErrNonFinite, value)
		}
		if errEst <= math.Max(ai.AbsTolerance, ai.RelTolerance*math.Abs(value)) {
			return ports.Integral{Value: sign * value, Error: errEst}, nil
		}
		if len(panels) >= ai.MaxSubdivisions {
			return ports.Integral{Value: sign * value, Error: errEst}, ErrMaxSubdivisions
		}

		p := panels[worst]
		mid := 0.5 * (p.a + p.b)
		if mid <= p.a || mid >= p.b {
			// the panel cannot be split any further in floating point
			return ports.Integral{Value: sign * value, Error: errEst}, ErrMaxSubdivisions
		}
		panels[worst] = ai.estimate(g, p.a, mid)
		panels = append(panels, ai.estimate(g, mid, p.b))
	}
}

func (ai *AdaptiveIntegrator) estimate(g func(float64) float64, a, b float64) panel {
	fine := ai.fine.apply(g, a, b)
	coarse := ai.coarse.apply(g, a, b)
	return panel{a: a, b: b, value: fine, err: math.Abs(fine - coarse)}
}

// toFiniteRange rewrites an integral with infinite bounds as one over a
// finite range:
//
//	(-Inf, Inf): x = s/(1-s^2),     s in (-1, 1)
//	(a, Inf):    x = a + s/(1-s),   s in (0, 1)
//	(-Inf, b):   x = b - s/(1-s),   s in (0, 1)
func toFiniteRange(f func(float64) float64, lower, upper float64) (func(float64) float64, float64, float64) {
	lowerInf, upperInf := math.IsInf(lower, -1), math.IsInf(upper, 1)
	switch {
	case lowerInf && upperInf:
		return func(s float64) float64 {
			d := 1 - s*s
			if d <= 0 {
				return 0
			}
			fx := f(s / d)
			if fx == 0 {
				return 0
			}
			return fx * (1 + s*s) / (d * d)
		}, -1, 1
	case upperInf:
		return halfLine(f, lower, 1), 0, 1
	case lowerInf:
		return halfLine(f, upper, -1), 0, 1
	}
	return f, lower, upper
}

func halfLine(f func(float64) float64, origin, dir float64) func(float64) float64 {
	return func(s float64) float64 {
		d := 1 - s
		if d <= 0 {
			return 0
		}
		x := origin + dir*s/d
		if math.IsInf(x, 0) {
			return 0
		}
		fx := f(x)
		if fx == 0 {
			return 0
		}
		return fx / (d * d)
	}
}
