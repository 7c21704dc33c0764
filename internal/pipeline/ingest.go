package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"gstreco/internal"
)

// ReadTable loads one ledger file into a raw table. The format is chosen by
// extension: .xlsx (first sheet) or .csv. Header cleanup happens inside the
// engine, not here.
func ReadTable(path, label string) (internal.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		blob, err := os.ReadFile(path)
		if err != nil {
			return internal.Table{}, err
		}
		return parseXLSX(blob, label)
	case ".csv":
		blob, err := os.ReadFile(path)
		if err != nil {
			return internal.Table{}, err
		}
		return parseCSV(blob, label)
	default:
		return internal.Table{}, fmt.Errorf("unsupported ledger format: %s", path)
	}
}

func parseXLSX(content []byte, label string) (internal.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return internal.Table{}, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return internal.Table{}, fmt.Errorf("%s: workbook has no sheets", label)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return internal.Table{}, err
	}
	if len(rows) == 0 {
		return internal.Table{Label: label}, nil
	}

	t := internal.Table{Label: label, Columns: rows[0]}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func parseCSV(content []byte, label string) (internal.Table, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return internal.Table{}, fmt.Errorf("%s: %w", label, err)
	}
	if len(records) == 0 {
		return internal.Table{Label: label}, nil
	}

	t := internal.Table{Label: label, Columns: records[0]}
	for _, row := range records[1:] {
		if isBlankRow(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
