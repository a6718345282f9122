package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/internal"
	apperrors "github.com/raoelg/ttest-to-bayesfactor/internal/errors"
)

// DataReader handles reading request tables from Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		logger:   internal.DefaultLogger.With("DataReader"),
	}
}

// WithLogger replaces the reader's logger
func (r *DataReader) WithLogger(logger *internal.Logger) *DataReader {
	r.logger = logger.With("DataReader")
	return r
}

// ReadRequests reads the file and converts each data row into a request
func (r *DataReader) ReadRequests() ([]bayes.TTestRequest, error) {
	table, err := r.ReadData()
	if err != nil {
		return nil, err
	}
	return ParseRequests(table)
}

// ReadData reads the raw table from Excel or CSV files
func (r *DataReader) ReadData() (*Table, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath))
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	case "xlsx":
		return r.readExcelData()
	default:
		return nil, apperrors.InvalidInput("unsupported file type: " + r.fileType)
	}
}

// readExcelData reads Sheet1 of a workbook
func (r *DataReader) readExcelData() (*Table, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read Sheet1")
	}
	r.logger.Debug("Sheet1 read in %.2fms (%d rows)", float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, apperrors.InvalidInput("Excel file must have at least a header row and one data row")
	}
	return r.processRows(rows), nil
}

// readCSVData reads a comma separated file
func (r *DataReader) readCSVData() (*Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	start := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read CSV file")
	}
	r.logger.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, apperrors.InvalidInput("CSV file must have at least a header row and one data row")
	}
	return r.processRows(rows), nil
}

// processRows converts raw string rows into a Table
func (r *DataReader) processRows(rows [][]string) *Table {
	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(header))
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rowData := make(RawRowData, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Info("%s file processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), len(dataRows))
	return &Table{Headers: headers, Rows: dataRows}
}

// ParseRequests converts table rows into requests. Cells that cannot be
// parsed fail the whole table; semantic checks are left to the facade.
func ParseRequests(table *Table) ([]bayes.TTestRequest, error) {
	if !hasHeader(table.Headers, ColumnT) || !hasHeader(table.Headers, ColumnN1) {
		return nil, apperrors.InvalidInput("request table needs t and n1 columns")
	}

	reqs := make([]bayes.TTestRequest, 0, len(table.Rows))
	for i, row := range table.Rows {
		req, err := parseRow(row)
		if err != nil {
			// +2: header row and 1-based numbering
			return nil, apperrors.Wrapf(err, "row %d", i+2)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func parseRow(row RawRowData) (bayes.TTestRequest, error) {
	t, err := parseNumber(row, ColumnT, true)
	if err != nil {
		return bayes.TTestRequest{}, err
	}
	n1, err := parseNumber(row, ColumnN1, true)
	if err != nil {
		return bayes.TTestRequest{}, err
	}
	req := bayes.NewTTestRequest(t, n1)

	if req.N2, err = parseNumber(row, ColumnN2, false); err != nil {
		return bayes.TTestRequest{}, err
	}
	if label := strings.ToLower(row[ColumnRScale]); label != "" {
		req.Prior = bayes.ScaleLabel(label)
	}
	if req.Complement, err = parseFlag(row, ColumnComplement); err != nil {
		return bayes.TTestRequest{}, err
	}
	if req.Simple, err = parseFlag(row, ColumnSimple); err != nil {
		return bayes.TTestRequest{}, err
	}

	// A single bound is passed through so the facade reports the arity error.
	for _, col := range []string{ColumnLower, ColumnUpper} {
		if row[col] == "" {
			continue
		}
		v, err := bayes.ParseBound(row[col])
		if err != nil {
			return bayes.TTestRequest{}, apperrors.InvalidInput(col + ": " + err.Error())
		}
		req.Interval = append(req.Interval, v)
	}
	return req, nil
}

func parseNumber(row RawRowData, col string, required bool) (float64, error) {
	cell := row[col]
	if cell == "" {
		if required {
			return 0, apperrors.InvalidInput("missing " + col)
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, apperrors.InvalidInput(fmt.Sprintf("invalid %s %q", col, cell))
	}
	return v, nil
}

func parseFlag(row RawRowData, col string) (bool, error) {
	cell := strings.ToLower(row[col])
	switch cell {
	case "", "0", "false", "no":
		return false, nil
	case "1", "true", "yes", "x":
		return true, nil
	}
	return false, apperrors.InvalidInput(fmt.Sprintf("invalid %s flag %q", col, cell))
}

func hasHeader(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
