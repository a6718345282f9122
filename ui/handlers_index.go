package ui

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/domain/core"
	apperrors "github.com/raoelg/ttest-to-bayesfactor/internal/errors"
)

// indexForm is the calculator form as submitted, echoed back into the page
type indexForm struct {
	T            string
	N1           string
	N2           string
	NullInterval string
	RScale       bayes.ScaleLabel
	Complement   bool
	Simple       bool
}

type indexPage struct {
	Form   indexForm
	Result string
	Error  string
}

// handleIndex renders the empty calculator
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, http.StatusOK, "index.html", indexPage{
		Form: indexForm{RScale: bayes.ScaleMedium},
	})
}

// handleIndexSubmit evaluates the calculator form and renders the result
func (a *App) handleIndexSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderTemplate(w, http.StatusBadRequest, "index.html", indexPage{Error: "invalid form submission"})
		return
	}

	form := indexForm{
		T:            r.PostFormValue("t"),
		N1:           r.PostFormValue("n1"),
		N2:           r.PostFormValue("n2"),
		NullInterval: r.PostFormValue("nullInterval"),
		RScale:       bayes.ScaleLabel(r.PostFormValue("rscale")),
		Complement:   r.PostFormValue("complement") != "",
		Simple:       r.PostFormValue("simple") != "",
	}
	page := indexPage{Form: form}

	req, err := form.request()
	if err == nil {
		var out bayes.Output
		out, _, err = a.calculations.Calculate(r.Context(), req)
		if err == nil {
			text, _ := json.MarshalIndent(out, "", "  ")
			page.Result = string(text)
			a.renderTemplate(w, http.StatusOK, "index.html", page)
			return
		}
	}

	page.Error = err.Error()
	a.renderTemplate(w, statusFor(err), "index.html", page)
}

// request converts the form fields. A blank n2 means a one-sample test and
// a blank interval means a point null.
func (f indexForm) request() (bayes.TTestRequest, error) {
	t, err := strconv.ParseFloat(strings.TrimSpace(f.T), 64)
	if err != nil {
		return bayes.TTestRequest{}, apperrors.InvalidInput("t must be a number")
	}
	n1, err := strconv.ParseFloat(strings.TrimSpace(f.N1), 64)
	if err != nil {
		return bayes.TTestRequest{}, apperrors.InvalidInput("n1 must be a number")
	}

	req := bayes.NewTTestRequest(t, n1)
	if s := strings.TrimSpace(f.N2); s != "" {
		if req.N2, err = strconv.ParseFloat(s, 64); err != nil {
			return bayes.TTestRequest{}, apperrors.InvalidInput("n2 must be a number")
		}
	}
	if req.Interval, err = bayes.ParseInterval(f.NullInterval); err != nil {
		return bayes.TTestRequest{}, apperrors.ValidationError(core.ErrIntervalBound)
	}
	if f.RScale != "" {
		req.Prior = f.RScale
	}
	req.Complement = f.Complement
	req.Simple = f.Simple
	return req, nil
}
