package bayesfactor

import (
	"math"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
)

type priorKey struct {
	family bayes.Family
	label  bayes.ScaleLabel
}

// priorScales maps a design family and label to a Cauchy scale. Built once,
// never mutated.
var priorScales = func() map[priorKey]float64 {
	widths := map[bayes.ScaleLabel]float64{
		bayes.ScaleUltrawide: math.Sqrt2,
		bayes.ScaleWide:      1,
		bayes.ScaleMedium:    math.Sqrt2 / 2,
	}
	table := make(map[priorKey]float64, 2*len(widths))
	for _, family := range []bayes.Family{bayes.FamilyOneSample, bayes.FamilyTwoSample} {
		for label, scale := range widths {
			table[priorKey{family, label}] = scale
		}
	}
	return table
}()

// ResolveScale returns the Cauchy prior scale for family and label
func ResolveScale(family bayes.Family, label bayes.ScaleLabel) (float64, bool) {
	scale, ok := priorScales[priorKey{family, label}]
	return scale, ok
}

// Labels lists the known prior labels from widest to narrowest
func Labels() []bayes.ScaleLabel {
	return []bayes.ScaleLabel{bayes.ScaleUltrawide, bayes.ScaleWide, bayes.ScaleMedium}
}
