package ui

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/domain/core"
	apperrors "github.com/raoelg/ttest-to-bayesfactor/internal/errors"
)

// decodeTTestRequest reads a request object such as
//
//	{"t": 2.5, "n1": 20, "interval": ["-Infinity", 0], "rscale": "wide"}
//
// JSON cannot carry infinities, so interval bounds may also be the strings
// "Infinity", "-Infinity", "Inf", "-Inf", or null for an open side.
func decodeTTestRequest(body []byte) (bayes.TTestRequest, error) {
	if !gjson.ValidBytes(body) {
		return bayes.TTestRequest{}, apperrors.InvalidInput("request body is not valid JSON")
	}
	return decodeRequestValue(gjson.ParseBytes(body))
}

func decodeRequestValue(v gjson.Result) (bayes.TTestRequest, error) {
	if !v.IsObject() {
		return bayes.TTestRequest{}, apperrors.InvalidInput("request must be a JSON object")
	}

	t, err := numberField(v, "t", true)
	if err != nil {
		return bayes.TTestRequest{}, err
	}
	n1, err := numberField(v, "n1", true)
	if err != nil {
		return bayes.TTestRequest{}, err
	}
	req := bayes.NewTTestRequest(t, n1)

	if req.N2, err = numberField(v, "n2", false); err != nil {
		return bayes.TTestRequest{}, err
	}
	if req.Interval, err = intervalField(v.Get("interval")); err != nil {
		return bayes.TTestRequest{}, err
	}

	switch rs := v.Get("rscale"); rs.Type {
	case gjson.Null:
	case gjson.String:
		req.Prior = bayes.ScaleLabel(strings.ToLower(rs.String()))
	default:
		return bayes.TTestRequest{}, apperrors.InvalidInput("rscale must be a string")
	}

	if req.Complement, err = boolField(v, "complement"); err != nil {
		return bayes.TTestRequest{}, err
	}
	if req.Simple, err = boolField(v, "simple"); err != nil {
		return bayes.TTestRequest{}, err
	}
	return req, nil
}

// decodeBatch accepts either a JSON array of requests or {"requests": [...]}
func decodeBatch(body []byte) ([]bayes.TTestRequest, error) {
	if !gjson.ValidBytes(body) {
		return nil, apperrors.InvalidInput("request body is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	if root.IsObject() {
		root = root.Get("requests")
	}
	if !root.IsArray() {
		return nil, apperrors.InvalidInput("batch must be a JSON array of requests")
	}

	items := root.Array()
	reqs := make([]bayes.TTestRequest, 0, len(items))
	for i, item := range items {
		req, err := decodeRequestValue(item)
		if err != nil {
			return nil, apperrors.Wrapf(err, "request %d", i)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func numberField(v gjson.Result, name string, required bool) (float64, error) {
	f := v.Get(name)
	switch f.Type {
	case gjson.Number:
		return f.Float(), nil
	case gjson.String:
		x, err := strconv.ParseFloat(strings.TrimSpace(f.String()), 64)
		if err != nil {
			return 0, apperrors.InvalidInput(fmt.Sprintf("%s must be a number", name))
		}
		return x, nil
	case gjson.Null:
		if !required {
			return 0, nil
		}
		return 0, apperrors.InvalidInput(name + " is required")
	}
	return 0, apperrors.InvalidInput(fmt.Sprintf("%s must be a number", name))
}

func boolField(v gjson.Result, name string) (bool, error) {
	f := v.Get(name)
	switch f.Type {
	case gjson.Null:
		return false, nil
	case gjson.True, gjson.False:
		return f.Bool(), nil
	}
	return false, apperrors.InvalidInput(name + " must be a boolean")
}

func intervalField(f gjson.Result) ([]float64, error) {
	switch {
	case f.Type == gjson.Null:
		return nil, nil
	case f.Type == gjson.String:
		bounds, err := bayes.ParseInterval(f.String())
		if err != nil {
			return nil, apperrors.ValidationError(core.ErrIntervalBound)
		}
		return bounds, nil
	case !f.IsArray():
		return nil, apperrors.ValidationError(core.ErrIntervalBound)
	}

	items := f.Array()
	bounds := make([]float64, len(items))
	for i, item := range items {
		switch item.Type {
		case gjson.Number:
			bounds[i] = item.Float()
		case gjson.String:
			b, err := bayes.ParseBound(item.String())
			if err != nil {
				return nil, apperrors.ValidationError(core.ErrIntervalBound)
			}
			bounds[i] = b
		case gjson.Null:
			// Open side: the first element is the lower end
			bounds[i] = math.Inf(1)
			if i == 0 {
				bounds[i] = math.Inf(-1)
			}
		default:
			return nil, apperrors.ValidationError(core.ErrIntervalBound)
		}
	}
	return bounds, nil
}

func statusFor(err error) int {
	if !apperrors.IsAppError(err) {
		// bare domain errors
		switch {
		case core.IsValidationError(err):
			return http.StatusBadRequest
		case core.IsNotFoundError(err):
			return http.StatusNotFound
		}
		return http.StatusInternalServerError
	}
	switch {
	case apperrors.HasCode(err, apperrors.CodeValidationError), apperrors.HasCode(err, apperrors.CodeInvalidInput):
		return http.StatusBadRequest
	case apperrors.HasCode(err, apperrors.CodeNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("failed to encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		a.logger.Error("request failed: %v", err)
	}
	a.writeJSON(w, status, map[string]interface{}{
		"error": err.Error(),
		"code":  apperrors.GetCode(err),
	})
}
