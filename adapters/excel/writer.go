package excel

import (
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	apperrors "github.com/raoelg/ttest-to-bayesfactor/internal/errors"
)

var resultHeaders = []interface{}{
	ColumnT, ColumnN1, ColumnN2, ColumnLower, ColumnUpper, ColumnRScale,
	ColumnComplement, "log_bf", "bf10", "properror", "method", "error",
}

// WriteResults writes evaluated requests to Sheet1 of a new workbook at path.
// Undefined values are left as empty cells.
func WriteResults(path string, rows []ResultRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetSheetRow(sheet, "A1", &resultHeaders); err != nil {
		return apperrors.Wrap(err, "failed to write header row")
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.Wrap(err, "failed to address result row")
		}
		values := resultValues(row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return apperrors.Wrapf(err, "failed to write result row %d", i+2)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.Wrap(err, "failed to save results workbook")
	}
	return nil
}

func resultValues(row ResultRow) []interface{} {
	req := row.Request
	values := []interface{}{req.T, req.N1, req.N2, nil, nil, string(req.PriorLabel()), req.Complement}
	if len(req.Interval) == 2 {
		values[3] = bayes.FormatBound(req.Interval[0])
		values[4] = bayes.FormatBound(req.Interval[1])
	}

	if row.Output == nil {
		return append(values, nil, nil, nil, nil, row.Error)
	}
	res := row.Output.Result
	return append(values,
		cellValue(res.LogBF),
		cellValue(math.Exp(res.LogBF)),
		cellValue(res.PropError),
		string(res.Method),
		row.Error,
	)
}

func cellValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
