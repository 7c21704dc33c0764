package pipeline

import (
	"errors"
	"strings"
	"testing"

	"gstreco/internal"
)

func TestValidateColumnsReportsEveryMissingField(t *testing.T) {
	table := internal.Table{
		Label:   "2B File",
		Columns: []string{"Supplier GSTIN", "Document Number", "Supplier Name"},
	}
	err := ValidateColumns(table, Required2B)
	if err == nil {
		t.Fatal("expected error")
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	want := []string{"Document Date", "IGST Amount", "CGST Amount", "SGST Amount", "Invoice Value"}
	if len(schemaErr.Missing) != len(want) {
		t.Fatalf("missing=%v want %v", schemaErr.Missing, want)
	}
	for i, c := range want {
		if schemaErr.Missing[i] != c {
			t.Fatalf("missing=%v want %v", schemaErr.Missing, want)
		}
	}
	if !strings.Contains(err.Error(), "2B File") {
		t.Fatalf("error does not name table: %v", err)
	}
}

func TestValidateColumnsAccepts(t *testing.T) {
	table := internal.Table{Label: "2B File", Columns: append([]string(nil), Required2B...)}
	if err := ValidateColumns(table, Required2B); err != nil {
		t.Fatal(err)
	}
}
