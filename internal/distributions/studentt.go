package distributions

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/raoelg/ttest-to-bayesfactor/ports"
)

// tailCutoff bounds the log-density drop at which the Hermite integrand is truncated
const tailCutoff = 40.0

// StudentT evaluates central and noncentral Student-t distributions. The
// central distribution comes from gonum; the noncentral density uses the
// exact representation
//
//	f(x) = nu^(nu/2) exp(-nu mu^2 / (2(x^2+nu))) / (sqrt(pi) Gamma(nu/2) 2^((nu-1)/2) (x^2+nu)^((nu+1)/2))
//	       * Int_0^Inf y^nu exp(-(y-z)^2/2) dy,     z = mu x / sqrt(x^2+nu)
//
// whose integrand is log-concave, so it is integrated around its peak in log
// space.
type StudentT struct {
	inner *AdaptiveIntegrator
}

// NewStudentT creates a Student-t provider
func NewStudentT() *StudentT {
	return &StudentT{inner: NewAdaptiveIntegrator(1e-10, 0, 200)}
}

var _ ports.StudentTProvider = (*StudentT)(nil)

// PDF returns the density of the t distribution with df degrees of freedom and noncentrality ncp
func (s *StudentT) PDF(x, df, ncp float64) float64 {
	return math.Exp(s.LogPDF(x, df, ncp))
}

// LogPDF returns the log density of the t distribution with df degrees of freedom and noncentrality ncp
func (s *StudentT) LogPDF(x, df, ncp float64) float64 {
	if math.IsNaN(x) || math.IsNaN(ncp) || !(df > 0) {
		return math.NaN()
	}
	if math.IsInf(x, 0) || math.IsInf(ncp, 0) {
		return math.Inf(-1)
	}
	if ncp == 0 {
		return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.LogProb(x)
	}

	a2 := x*x + df
	z := ncp * x / math.Sqrt(a2)
	lgHalf, _ := math.Lgamma(df / 2)
	logC := 0.5*df*math.Log(df) -
		0.5*df*ncp*ncp/a2 -
		0.5*math.Log(math.Pi) -
		lgHalf -
		0.5*(df-1)*math.Ln2 -
		0.5*(df+1)*math.Log(a2)
	if math.IsInf(logC, -1) {
		return logC
	}

	logH, ok := s.logHermiteIntegral(df, z)
	if !ok {
		return math.NaN()
	}
	if d := logC + logH; !math.IsNaN(d) {
		return d
	}
	// the density underflowed
	return math.Inf(-1)
}

// CDF returns the central t distribution function at x
func (s *StudentT) CDF(x, df float64) float64 {
	switch {
	case math.IsNaN(x) || !(df > 0):
		return math.NaN()
	case math.IsInf(x, -1):
		return 0
	case math.IsInf(x, 1):
		return 1
	}
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.CDF(x)
}

// logHermiteIntegral returns log Int_0^Inf y^nu exp(-(y-z)^2/2) dy
func (s *StudentT) logHermiteIntegral(nu, z float64) (float64, bool) {
	// peak of nu*log(y) - (y-z)^2/2 is the positive root of y^2 - z*y - nu
	root := math.Sqrt(z*z + 4*nu)
	var peak float64
	if z >= 0 {
		peak = 0.5 * (z + root)
	} else {
		peak = 2 * nu / (root - z)
	}
	if !(peak > 0) {
		return math.Inf(-1), true
	}
	logPeak := nu*math.Log(peak) - 0.5*(peak-z)*(peak-z)
	if math.IsNaN(logPeak) {
		return 0, false
	}
	if math.IsInf(logPeak, -1) {
		return logPeak, true
	}
	// log integrand relative to the peak, expanded so that the -z^2/2 terms
	// cancel exactly
	rel := func(y float64) float64 {
		if y <= 0 {
			return math.Inf(-1)
		}
		return nu*math.Log(y/peak) - 0.5*(y-peak)*(y+peak-2*z)
	}

	// curvature at the peak is nu/peak^2 + 1; the integrand falls off at
	// least that fast to the left and at least like a unit Gaussian to the right
	width := 1 / math.Sqrt(1+nu/(peak*peak))
	lo := peak - width
	for lo > 0 && rel(lo) > -tailCutoff {
		lo = peak - 2*(peak-lo)
	}
	if lo < 0 {
		lo = 0
	}
	hi := peak + width
	for rel(hi) > -tailCutoff {
		hi = peak + 2*(hi-peak)
	}

	integral, err := s.inner.Integrate(func(y float64) float64 {
		return math.Exp(rel(y))
	}, lo, hi)
	if err != nil || !(integral.Value > 0) {
		return 0, false
	}
	return logPeak + math.Log(integral.Value), true
}
