package ports

// StudentTProvider evaluates Student-t densities and distribution functions
type StudentTProvider interface {
	// PDF returns the density at x of a t distribution with df degrees of
	// freedom and noncentrality ncp
	PDF(x, df, ncp float64) float64

	// LogPDF returns the natural log of PDF
	LogPDF(x, df, ncp float64) float64

	// CDF returns the central t distribution function at x
	CDF(x, df float64) float64
}

// CauchyProvider evaluates the Cauchy distribution function
type CauchyProvider interface {
	CDF(x, location, scale float64) float64
}

// Integral is the outcome of a numerical integration
type Integral struct {
	Value float64
	Error float64 // absolute error estimate
}

// Integrator numerically integrates f over (lower, upper); either bound may be infinite
type Integrator interface {
	Integrate(f func(float64) float64, lower, upper float64) (Integral, error)
}
