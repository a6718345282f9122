package distributions

import (
	"math"

	"github.com/raoelg/ttest-to-bayesfactor/ports"
)

// Cauchy evaluates the Cauchy distribution function
type Cauchy struct{}

var _ ports.CauchyProvider = Cauchy{}

// CDF returns P(X <= x) for a Cauchy(location, scale) variable. atan2 keeps
// full relative precision in both tails and returns exactly 0 and 1 at the
// infinities.
func (Cauchy) CDF(x, location, scale float64) float64 {
	if math.IsNaN(x) || !(scale > 0) {
		return math.NaN()
	}
	return math.Atan2(1, -(x-location)/scale) / math.Pi
}
