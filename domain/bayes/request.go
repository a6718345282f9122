package bayes

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TTestRequest holds every input of a t-test Bayes factor computation.
//
// Defaults (see NewTTestRequest): N2 = 0 (one-sample), Interval = nil (point
// null), Prior = medium, Complement = false, Simple = false.
type TTestRequest struct {
	T          float64    `json:"t"`
	N1         float64    `json:"n1"`
	N2         float64    `json:"n2"`
	Interval   []float64  `json:"-"` // nil means no null interval
	Prior      ScaleLabel `json:"rscale"`
	Complement bool       `json:"complement"`
	Simple     bool       `json:"simple"`
}

// NewTTestRequest returns a request for t and n1 with all defaults applied
func NewTTestRequest(t, n1 float64) TTestRequest {
	return TTestRequest{
		T:     t,
		N1:    n1,
		Prior: ScaleMedium,
	}
}

// Observation returns the statistic and group sizes of the request
func (r TTestRequest) Observation() Observation {
	return Observation{T: r.T, N1: r.N1, N2: r.N2}
}

// PriorLabel returns the requested prior label, medium when unset
func (r TTestRequest) PriorLabel() ScaleLabel {
	if r.Prior == "" {
		return ScaleMedium
	}
	return r.Prior
}

// ParseBound parses an interval bound. Infinite bounds may be written as
// "Inf", "-Inf", "Infinity" or "-Infinity" in any case.
func ParseBound(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty interval bound")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid interval bound %q: %w", s, err)
	}
	return v, nil
}

// ParseInterval parses comma-separated interval text such as "-0.2, 0.2".
// Blank text yields a nil interval.
func ParseInterval(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	bounds := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := ParseBound(p)
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, v)
	}
	return bounds, nil
}

// FormatBound renders a bound so that ParseBound and PostgreSQL both accept it
func FormatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
