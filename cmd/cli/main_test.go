package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DATABASE_URL", "")

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestComputeCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantMethod interface{}
	}{
		{"point null", []string{"compute", "--t", "2.5", "--n1", "20"}, "quadrature"},
		{"two-sample interval", []string{"compute", "--t=-1.2", "--n1", "14", "--n2", "16", "--interval", "0.3,-0.3", "--rscale", "wide"}, "quadrature"},
		{"one-sided interval", []string{"compute", "--t", "2.5", "--n1", "20", "--interval=-Infinity, 0"}, "quadrature"},
		{"complement", []string{"compute", "--t", "2", "--n1", "20", "--interval", "-0.1,0.1", "--complement"}, "Savage-Dickey t approximation"},
		{"undefined complement", []string{"compute", "--t", "1", "--n1", "30", "--interval", "Infinity,-Infinity", "--complement"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := execute(t, tt.args...)
			require.Equal(t, 0, code, stderr)

			var out map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(stdout), &out))
			assert.Contains(t, out, "bf")
			assert.Contains(t, out, "properror")
			assert.Equal(t, tt.wantMethod, out["method"])
		})
	}
}

func TestComputeCommandSimple(t *testing.T) {
	code, stdout, stderr := execute(t, "compute", "--t", "2.5", "--n1", "20", "--simple")
	require.Equal(t, 0, code, stderr)

	var out map[string]float64
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Contains(t, out, "B10")
	assert.Greater(t, out["B10"], 0.0)
	assert.False(t, math.IsInf(out["B10"], 0))
}

func TestComputeCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"not enough observations", []string{"compute", "--t", "1", "--n1", "1"}, "not enough observations"},
		{"unknown prior", []string{"compute", "--t", "1", "--n1", "20", "--rscale", "narrow"}, "Unknown prior type"},
		{"single bound", []string{"compute", "--t", "1", "--n1", "20", "--interval", "0.2"}, "argument interval must have two elements"},
		{"unparsable bound", []string{"compute", "--t", "1", "--n1", "20", "--interval", "low,high"}, "low"},
		{"missing statistic", []string{"compute", "--n1", "20"}, `"t"`},
		{"unexpected argument", []string{"compute", "--t", "1", "--n1", "20", "extra"}, "extra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := execute(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "studies.csv")
	require.NoError(t, os.WriteFile(path, []byte(`t,n1,n2,lower,upper,rscale,complement
2.5,20,,,,,
-1.2,14,16,-0.3,0.3,wide,true
1,1,,,,,
`), 0o644))
	out := filepath.Join(dir, "results.xlsx")

	code, stdout, stderr := execute(t, "batch", path, "--out", out)
	require.Equal(t, 0, code, stderr)

	var report struct {
		Rows []struct {
			Row    int             `json:"row"`
			Result json.RawMessage `json:"result"`
			Error  string          `json:"error"`
		} `json:"rows"`
		Summary struct {
			Rows     int `json:"rows"`
			Computed int `json:"computed"`
			Invalid  int `json:"invalid"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Rows, 3)
	assert.Equal(t, 3, report.Summary.Rows)
	assert.Equal(t, 2, report.Summary.Computed)
	assert.Equal(t, 1, report.Summary.Invalid)
	assert.Equal(t, "not enough observations", report.Rows[2].Error)
	assert.FileExists(t, out)
}

func TestBatchCommandErrors(t *testing.T) {
	code, _, stderr := execute(t, "batch")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "accepts 1 arg")

	code, _, _ = execute(t, "batch", filepath.Join(t.TempDir(), "absent.csv"))
	assert.Equal(t, 1, code)
}
