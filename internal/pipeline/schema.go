package pipeline

import (
	"fmt"
	"strings"

	"gstreco/internal"
)

// Required columns for each ledger, matching the standard GSTR-2B portal
// export and the purchase register extract.
var (
	Required2B = []string{
		"Supplier GSTIN", "Document Number", "Document Date",
		"Supplier Name", "IGST Amount", "CGST Amount",
		"SGST Amount", "Invoice Value",
	}
	RequiredBooks = []string{
		"GSTIN Of Vendor/Customer", "Reference Document No.",
		"Vendor/Customer Name", "IGST Amount",
		"CGST Amount", "SGST Amount", "Invoice Value",
	}
)

// SchemaError reports every required column absent from one table, not just
// the first. It aborts the run before any matching work.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s is missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// ValidateColumns checks that every required column is present in the table.
// Column labels must already be cleaned.
func ValidateColumns(t internal.Table, required []string) error {
	present := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		present[c] = struct{}{}
	}
	var missing []string
	for _, c := range required {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Table: t.Label, Missing: missing}
	}
	return nil
}
