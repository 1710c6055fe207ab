// Package spreadsheet reads flashcard rows from .xlsx and .csv files.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Row is one card read from a sheet. Line is the 1-based source row.
type Row struct {
	Line        int
	Front       string
	Back        string
	Hint        *string
	Explanation *string
}

// Result holds the usable rows and the lines that were skipped.
type Result struct {
	Rows    []Row
	Skipped []string
}

const (
	colFront = iota
	colBack
	colHint
	colExplanation
)

var headerAliases = map[string]int{
	"front":         colFront,
	"front_content": colFront,
	"question":      colFront,
	"back":          colBack,
	"back_content":  colBack,
	"answer":        colBack,
	"hint":          colHint,
	"explanation":   colExplanation,
	"notes":         colExplanation,
}

// ReadFile picks the reader from the file extension. sheet is ignored for CSV
// and defaults to the first sheet of a workbook.
func ReadFile(path, sheet string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		defer f.Close()
		return readWorkbook(f, sheet)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadCSV reads comma separated rows; rows may have fewer than four columns.
func ReadCSV(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return parseRecords(records), nil
}

// ReadWorkbook reads rows from an xlsx stream.
func ReadWorkbook(r io.Reader, sheet string) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, sheet)
}

func readWorkbook(f *excelize.File, sheet string) (*Result, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return parseRecords(rows), nil
}

func parseRecords(records [][]string) *Result {
	result := &Result{}
	columns := []int{colFront, colBack, colHint, colExplanation}
	start := 0
	if len(records) > 0 {
		if header, ok := headerColumns(records[0]); ok {
			columns = header
			start = 1
		}
	}

	for i := start; i < len(records); i++ {
		line := i + 1
		var fields [4]string
		for idx, cell := range records[i] {
			if idx < len(columns) && columns[idx] >= 0 {
				fields[columns[idx]] = strings.TrimSpace(cell)
			}
		}
		if fields == [4]string{} {
			continue
		}
		if fields[colFront] == "" || fields[colBack] == "" {
			result.Skipped = append(result.Skipped, fmt.Sprintf("row %d: front and back are required", line))
			continue
		}
		result.Rows = append(result.Rows, Row{
			Line:        line,
			Front:       fields[colFront],
			Back:        fields[colBack],
			Hint:        optional(fields[colHint]),
			Explanation: optional(fields[colExplanation]),
		})
	}
	return result
}

// headerColumns maps header cells to fields; unknown headers map to -1.
func headerColumns(row []string) ([]int, bool) {
	columns := make([]int, len(row))
	found := false
	for i, cell := range row {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cell)), " ", "_")
		col, ok := headerAliases[key]
		if !ok {
			columns[i] = -1
			continue
		}
		columns[i] = col
		found = found || col == colFront
	}
	return columns, found
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
