package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstreco/internal"
)

func table2B(rows ...[]string) internal.Table {
	return internal.Table{
		Label:   "2B File",
		Columns: append([]string(nil), Required2B...),
		Rows:    rows,
	}
}

func tableBooks(rows ...[]string) internal.Table {
	return internal.Table{
		Label:   "Purchase File",
		Columns: append([]string(nil), RequiredBooks...),
		Rows:    rows,
	}
}

// Columns: Supplier GSTIN, Document Number, Document Date, Supplier Name,
// IGST, CGST, SGST, Invoice Value.
func row2B(gstin, doc, invoice string) []string {
	return []string{gstin, doc, "01-05-2026", "Acme Traders", "0", "0", "0", invoice}
}

// Columns: GSTIN, Reference Document No., Vendor/Customer Name, IGST, CGST,
// SGST, Invoice Value.
func rowBooks(gstin, doc, invoice string) []string {
	return []string{gstin, doc, "Acme Traders", "0", "0", "0", invoice}
}

func TestReconcileScenarios(t *testing.T) {
	tests := []struct {
		name       string
		gst2b      internal.Table
		books      internal.Table
		wantStatus internal.MatchStatus
		check      func(t *testing.T, res *internal.Result)
	}{
		{
			name:       "document rendering differences normalize to an exact match",
			gst2b:      table2B(row2B("A1", "INV/001", "1000")),
			books:      tableBooks(rowBooks("A1", "INV-001", "1000")),
			wantStatus: internal.StatusExactMatch,
			check: func(t *testing.T, res *internal.Result) {
				assert.Equal(t, "INV001", res.Rows[0].DocNorm)
			},
		},
		{
			name:       "value disagreement beyond tolerance",
			gst2b:      table2B(row2B("A1", "INV/001", "1000")),
			books:      tableBooks(rowBooks("A1", "INV-001", "1050")),
			wantStatus: internal.StatusExactValueMismatch,
			check: func(t *testing.T, res *internal.Result) {
				assert.Equal(t, "50", res.Rows[0].Diff.Invoice.String())
			},
		},
		{
			name:       "typoed document number recovered by fuzzy matching",
			gst2b:      table2B(row2B("A1", "INV002", "500")),
			books:      tableBooks(rowBooks("A1", "INV0O2", "500")),
			wantStatus: internal.StatusFuzzyMatch,
			check: func(t *testing.T, res *internal.Result) {
				assert.GreaterOrEqual(t, res.Rows[0].FuzzyScore, 85.0)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Reconcile(tt.gst2b, tt.books, DefaultOptions())
			require.NoError(t, err)
			require.Len(t, res.Rows, 1)
			assert.Equal(t, tt.wantStatus, res.Rows[0].Status)
			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestReconcileGSTINMismatchScenario(t *testing.T) {
	res, err := Reconcile(
		table2B(row2B("A1", "INV003", "200")),
		tableBooks(rowBooks("B2", "INV003", "205")),
		DefaultOptions(),
	)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	for _, row := range res.Rows {
		assert.Equal(t, internal.StatusGSTINMismatch, row.Status)
	}
	assert.Equal(t, "B2", res.Rows[0].LinkedGSTIN)
	assert.Equal(t, "A1", res.Rows[1].LinkedGSTIN)
	assert.Equal(t, 2, res.Summary.Counts[internal.StatusGSTINMismatch])
}

func TestReconcileSchemaError(t *testing.T) {
	books := tableBooks()
	books.Columns = []string{
		"GSTIN Of Vendor/Customer", "Reference Document No.",
		"Vendor/Customer Name", "IGST Amount", "CGST Amount", "SGST Amount",
	}
	_, err := Reconcile(table2B(row2B("A1", "INV001", "100")), books, DefaultOptions())
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "Purchase File", schemaErr.Table)
	assert.Equal(t, []string{"Invoice Value"}, schemaErr.Missing)
}

func TestReconcileCleansHeaderDrift(t *testing.T) {
	gst2b := table2B(row2B("A1", "INV001", "100"))
	for i, c := range gst2b.Columns {
		gst2b.Columns[i] = "  " + c + " "
	}
	_, err := Reconcile(gst2b, tableBooks(rowBooks("A1", "INV001", "100")), DefaultOptions())
	require.NoError(t, err)
}

func TestReconcileAggregatesLineItems(t *testing.T) {
	res, err := Reconcile(
		table2B(
			row2B("A1", "INV/001", "600"),
			row2B("A1", "INV-001", "400"),
		),
		tableBooks(rowBooks("A1", "INV001", "1000")),
		DefaultOptions(),
	)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, internal.StatusExactMatch, res.Rows[0].Status)
	assert.Equal(t, 2, res.Summary.Rows2B)
	assert.Equal(t, 1, res.Summary.RowsBooks)
}

func TestReconcileCoercionWarnings(t *testing.T) {
	res, err := Reconcile(
		table2B([]string{"A1", "INV001", "01-05-2026", "Acme", "0", "0", "0", "not-a-number"}),
		tableBooks(rowBooks("A1", "INV001", "")),
		DefaultOptions(),
	)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "2B File", res.Warnings[0].Table)
	assert.Equal(t, "Invoice Value", res.Warnings[0].Column)
	// Both sides coerced to zero, so the row still matches.
	assert.Equal(t, internal.StatusExactMatch, res.Rows[0].Status)
}

// Every surviving key appears exactly once and carries exactly one
// non-transient status.
func TestReconcilePartitionAndExhaustiveness(t *testing.T) {
	res, err := Reconcile(
		table2B(
			row2B("A1", "INV001", "1000"),
			row2B("A1", "INV002", "500"),
			row2B("A1", "INV007", "75"),
			row2B("C3", "INV900", "320"),
		),
		tableBooks(
			rowBooks("A1", "INV001", "1000"),
			rowBooks("A1", "INV0O2", "500"),
			rowBooks("B2", "INV900", "321"),
			rowBooks("B2", "INV555", "42"),
		),
		DefaultOptions(),
	)
	require.NoError(t, err)

	seen := make(map[string]int)
	valid := make(map[internal.MatchStatus]bool, len(internal.AllStatuses))
	for _, s := range internal.AllStatuses {
		valid[s] = true
	}
	total := 0
	for _, row := range res.Rows {
		require.Truef(t, valid[row.Status], "row %d has status %q", row.ID, row.Status)
		seen[row.GSTIN+"|"+row.DocNorm]++
		total++
	}
	for key, n := range seen {
		assert.Equalf(t, 1, n, "key %s appears %d times", key, n)
	}

	counted := 0
	for _, n := range res.Summary.Counts {
		counted += n
	}
	assert.Equal(t, total, counted)
	// INV002/INV0O2 fuzzy pair collapses two keys into one surviving row.
	assert.Len(t, res.Rows, 6)
	assert.Equal(t, 1, res.Summary.Counts[internal.StatusExactMatch])
	assert.Equal(t, 1, res.Summary.Counts[internal.StatusFuzzyMatch])
	assert.Equal(t, 2, res.Summary.Counts[internal.StatusGSTINMismatch])
	assert.Equal(t, 1, res.Summary.Counts[internal.StatusOpenIn2B])
	assert.Equal(t, 1, res.Summary.Counts[internal.StatusOpenInBooks])
}
