package pipeline

import (
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"gstreco/internal"
)

var exportHeaders = []string{
	"Supplier GSTIN", "doc_norm",
	"Document Number_2B", "Document Date_2B", "Supplier Name_2B",
	"IGST Amount_2B", "CGST Amount_2B", "SGST Amount_2B", "Invoice Value_2B",
	"Reference Document No._PUR", "Vendor/Customer Name_PUR",
	"IGST Amount_PUR", "CGST Amount_PUR", "SGST Amount_PUR", "Invoice Value_PUR",
	"IGST Diff", "CGST Diff", "SGST Diff", "Invoice Diff",
	"Match_Status", "Fuzzy Score", "Linked GSTIN",
}

// ExportResultToXLSX writes the reconciled table to a workbook, one row per
// reconciled key with both sides' columns suffixed _2B and _PUR.
func ExportResultToXLSX(res *internal.Result, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range res.Rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.GSTIN)
		set(2, row.DocNorm)
		set(3, row.Doc2B)
		set(4, row.Date2B)
		set(5, row.Name2B)
		set(6, money(row.Amt2B.IGST))
		set(7, money(row.Amt2B.CGST))
		set(8, money(row.Amt2B.SGST))
		set(9, money(row.Amt2B.Invoice))
		set(10, row.DocPUR)
		set(11, row.NamePUR)
		set(12, money(row.AmtPUR.IGST))
		set(13, money(row.AmtPUR.CGST))
		set(14, money(row.AmtPUR.SGST))
		set(15, money(row.AmtPUR.Invoice))
		set(16, money(row.Diff.IGST))
		set(17, money(row.Diff.CGST))
		set(18, money(row.Diff.SGST))
		set(19, money(row.Diff.Invoice))
		set(20, string(row.Status))
		set(21, row.FuzzyScore)
		set(22, row.LinkedGSTIN)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
