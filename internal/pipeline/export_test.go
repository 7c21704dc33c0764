package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"gstreco/internal"
)

func TestExportResultToXLSX(t *testing.T) {
	res, err := Reconcile(
		table2B(row2B("A1", "INV/001", "1000")),
		tableBooks(rowBooks("A1", "INV-001", "1050")),
		DefaultOptions(),
	)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "report.xlsx")
	if err := ExportResultToXLSX(res, out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows=%d", len(rows))
	}
	if rows[0][0] != "Supplier GSTIN" || rows[0][len(exportHeaders)-1] != "Linked GSTIN" {
		t.Fatalf("headers=%v", rows[0])
	}

	statusCol := -1
	for i, h := range rows[0] {
		if h == "Match_Status" {
			statusCol = i
		}
	}
	if statusCol < 0 || rows[1][statusCol] != string(internal.StatusExactValueMismatch) {
		t.Fatalf("status cell wrong: %v", rows[1])
	}
}
