package excel

import "github.com/raoelg/ttest-to-bayesfactor/domain/bayes"

// RawRowData represents a row of a request table as header -> cell text
type RawRowData map[string]string

// Table represents a request table read from Sheet1 or a CSV file
type Table struct {
	Headers []string     // Column headers, lowercased
	Rows    []RawRowData // Data rows
}

// Request table columns. Only t and n1 are required.
const (
	ColumnT          = "t"
	ColumnN1         = "n1"
	ColumnN2         = "n2"
	ColumnLower      = "lower"
	ColumnUpper      = "upper"
	ColumnRScale     = "rscale"
	ColumnComplement = "complement"
	ColumnSimple     = "simple"
)

// ResultRow is one evaluated request written back to a workbook
type ResultRow struct {
	Request bayes.TTestRequest
	Output  *bayes.Output // nil when the request was rejected
	Error   string
}
