package bayesfactor

import "math"

// LogSumExp returns log(exp(a) + exp(b)) without overflow
func LogSumExp(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	hi, lo := a, b
	if lo > hi {
		hi, lo = lo, hi
	}
	return hi + math.Log1p(math.Exp(lo-hi))
}

// LogDiffExp returns log|exp(a) - exp(b)|. It is NaN when a == b: the
// difference is zero and callers must handle empty mass themselves.
func LogDiffExp(a, b float64) float64 {
	if a == b {
		return math.NaN()
	}
	hi, lo := a, b
	if lo > hi {
		hi, lo = lo, hi
	}
	if math.IsInf(lo, -1) {
		return hi
	}
	return hi + math.Log1p(-math.Exp(lo-hi))
}

// CombineWithError adds two log-scale quantities on the natural scale and
// propagates their relative errors err1 and err2. It returns the log of the
// sum and the relative error of the sum.
func CombineWithError(logX1, logX2, err1, err2 float64) (float64, float64) {
	logSum := LogSumExp(logX1, logX2)
	logAbs := LogSumExp(logX1+math.Log(err1), logX2+math.Log(err2))
	return logSum, math.Exp(logAbs - logSum)
}
