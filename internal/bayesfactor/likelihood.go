package bayesfactor

import (
	"github.com/raoelg/ttest-to-bayesfactor/ports"
)

// DensityEvaluator computes the likelihood of an observed t-statistic as a
// function of the standardized effect size
type DensityEvaluator struct {
	studentT ports.StudentTProvider
}

// NewDensityEvaluator wraps a Student-t provider
func NewDensityEvaluator(studentT ports.StudentTProvider) *DensityEvaluator {
	return &DensityEvaluator{studentT: studentT}
}

// Likelihood returns the noncentral-t density of t with df degrees of freedom
// and noncentrality delta/rscale, or its natural log when logScale is set
func (d *DensityEvaluator) Likelihood(delta, t, df, rscale float64, logScale bool) float64 {
	ncp := delta / rscale
	if logScale {
		return d.studentT.LogPDF(t, df, ncp)
	}
	return d.studentT.PDF(t, df, ncp)
}
