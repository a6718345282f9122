package distributions

// StatisticalDistributions provides unified access to the distributions and
// the integrator consumed by the Bayes factor engine
type StatisticalDistributions struct {
	StudentT   *StudentT
	Cauchy     Cauchy
	Integrator *AdaptiveIntegrator
}

// NewDistributions creates the default providers around integrator; a nil
// integrator selects DefaultIntegrator
func NewDistributions(integrator *AdaptiveIntegrator) *StatisticalDistributions {
	if integrator == nil {
		integrator = DefaultIntegrator()
	}
	return &StatisticalDistributions{
		StudentT:   NewStudentT(),
		Cauchy:     Cauchy{},
		Integrator: integrator,
	}
}
