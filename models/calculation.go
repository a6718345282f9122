package models

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/domain/core"
)

// Calculation is a ledger record of one t-test Bayes factor request and its output
type Calculation struct {
	ID            uuid.UUID `json:"id" db:"id"`
	T             float64   `json:"t" db:"t"`
	N1            float64   `json:"n1" db:"n1"`
	N2            float64   `json:"n2" db:"n2"`
	IntervalLower *string   `json:"interval_lower,omitempty" db:"interval_lower"` // formatted bound, nil without interval
	IntervalUpper *string   `json:"interval_upper,omitempty" db:"interval_upper"`
	Prior         string    `json:"rscale" db:"prior"`
	Complement    bool      `json:"complement" db:"complement"`
	Simple        bool      `json:"simple" db:"simple"`
	LogBF         *float64  `json:"bf" db:"log_bf"` // nil for non-finite values
	PropError     *float64  `json:"properror" db:"prop_error"`
	Method        *string   `json:"method" db:"method"`
	RequestHash   string    `json:"request_hash" db:"request_hash"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// NewCalculation builds a ledger record for req and its output
func NewCalculation(req bayes.TTestRequest, out bayes.Output) *Calculation {
	c := &Calculation{
		ID:         core.NewID(),
		T:          req.T,
		N1:         req.N1,
		N2:         req.N2,
		Prior:      string(req.PriorLabel()),
		Complement: req.Complement,
		Simple:     req.Simple,
		LogBF:      finite(out.Result.LogBF),
		PropError:  finite(out.Result.PropError),
		CreatedAt:  time.Now().UTC(),
	}
	if len(req.Interval) == 2 {
		lower, upper := bayes.FormatBound(req.Interval[0]), bayes.FormatBound(req.Interval[1])
		c.IntervalLower, c.IntervalUpper = &lower, &upper
	}
	c.RequestHash = Fingerprint(req).String()
	if out.Result.Method != bayes.MethodUndefined {
		m := string(out.Result.Method)
		c.Method = &m
	}
	return c
}

// Output rebuilds the facade output stored in the record
func (c *Calculation) Output() bayes.Output {
	res := bayes.SentinelResult()
	if c.LogBF != nil {
		res.LogBF = *c.LogBF
	}
	if c.PropError != nil {
		res.PropError = *c.PropError
	}
	if c.Method != nil {
		res.Method = bayes.Method(*c.Method)
	}
	return bayes.NewOutput(res, c.Simple)
}

// Request rebuilds the request stored in the record. Bounds that cannot be
// parsed are dropped, which leaves the interval with a single element.
func (c *Calculation) Request() bayes.TTestRequest {
	req := bayes.TTestRequest{
		T:          c.T,
		N1:         c.N1,
		N2:         c.N2,
		Prior:      bayes.ScaleLabel(c.Prior),
		Complement: c.Complement,
		Simple:     c.Simple,
	}
	for _, bound := range []*string{c.IntervalLower, c.IntervalUpper} {
		if bound == nil {
			continue
		}
		if v, err := bayes.ParseBound(*bound); err == nil {
			req.Interval = append(req.Interval, v)
		}
	}
	return req
}

// Fingerprint hashes the inputs that determine the output of req. Requests
// differing only in the order of their interval bounds share a fingerprint.
func Fingerprint(req bayes.TTestRequest) core.RequestHash {
	fields := map[string]interface{}{
		"t":          req.T,
		"n1":         req.N1,
		"n2":         req.N2,
		"rscale":     req.PriorLabel(),
		"complement": req.Complement,
		"simple":     req.Simple,
	}
	switch len(req.Interval) {
	case 0:
		if req.Interval != nil {
			fields["interval"] = "[]"
		}
	case 2:
		iv := bayes.NewNullInterval(req.Interval[0], req.Interval[1])
		fields["interval"] = bayes.FormatBound(iv.Lower) + "," + bayes.FormatBound(iv.Upper)
	default:
		bounds := make([]string, len(req.Interval))
		for i, b := range req.Interval {
			bounds[i] = bayes.FormatBound(b)
		}
		fields["interval"] = strings.Join(bounds, ",")
	}
	return core.ComputeRequestHash(fields)
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
