package excel

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/internal"
)

func TestWriteResultsRoundTrip(t *testing.T) {
	computed := bayes.NewOutput(bayes.Result{LogBF: 1.5, PropError: 0.001, Method: bayes.MethodQuadrature}, false)
	sentinel := bayes.NewOutput(bayes.SentinelResult(), false)

	rows := []ResultRow{
		{Request: bayes.NewTTestRequest(2.5, 20), Output: &computed},
		{Request: bayes.TTestRequest{T: 1, N1: 30, Interval: []float64{math.Inf(-1), math.Inf(1)}, Prior: bayes.ScaleWide, Complement: true}, Output: &sentinel},
		{Request: bayes.TTestRequest{T: 1, N1: 1, Prior: bayes.ScaleMedium}, Error: "not enough observations"},
	}

	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, WriteResults(path, rows))

	table, err := NewDataReader(path).WithLogger(internal.Discard).ReadData()
	require.NoError(t, err)
	assert.Equal(t, []string{"t", "n1", "n2", "lower", "upper", "rscale", "complement", "log_bf", "bf10", "properror", "method", "error"}, table.Headers)
	require.Len(t, table.Rows, 3)

	first := table.Rows[0]
	assert.Equal(t, "2.5", first["t"])
	assert.Equal(t, "1.5", first["log_bf"])
	assert.Equal(t, "quadrature", first["method"])
	assert.Equal(t, "", first["lower"])

	second := table.Rows[1]
	assert.Equal(t, "-Infinity", second["lower"])
	assert.Equal(t, "Infinity", second["upper"])
	assert.Equal(t, "", second["log_bf"])
	assert.Equal(t, "", second["method"])

	assert.Equal(t, "not enough observations", table.Rows[2]["error"])

	// the written request columns read back as the same requests
	reqs, err := ParseRequests(table)
	require.NoError(t, err)
	for i, row := range rows {
		assert.Equal(t, row.Request, reqs[i])
	}
}
