package bayes

import (
	"encoding/json"
	"math"
)

// Output is the record returned to callers of the t-test facade. Simple
// outputs carry only B10; full outputs carry the log Bayes factor, its
// proportional error and the method.
type Output struct {
	Simple bool
	B10    float64
	Result Result
}

// NewOutput shapes r according to the simple flag
func NewOutput(r Result, simple bool) Output {
	out := Output{Simple: simple, Result: r}
	if simple {
		out.B10 = math.Exp(r.LogBF)
	}
	return out
}

type simpleOutputJSON struct {
	B10 *float64 `json:"B10"`
}

type fullOutputJSON struct {
	BF        *float64 `json:"bf"`
	PropError *float64 `json:"properror"`
	Method    *string  `json:"method"`
}

// MarshalJSON encodes non-finite numbers and an undefined method as null
func (o Output) MarshalJSON() ([]byte, error) {
	if o.Simple {
		return json.Marshal(simpleOutputJSON{B10: finiteOrNil(o.B10)})
	}
	var method *string
	if o.Result.Method != MethodUndefined {
		m := string(o.Result.Method)
		method = &m
	}
	return json.Marshal(fullOutputJSON{
		BF:        finiteOrNil(o.Result.LogBF),
		PropError: finiteOrNil(o.Result.PropError),
		Method:    method,
	})
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
