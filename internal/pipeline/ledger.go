package pipeline

import (
	"github.com/shopspring/decimal"

	"gstreco/internal"
	"gstreco/internal/util"
)

// ledgerColumns names the table columns that feed each LedgerRow field.
// DocDate is optional: the purchase register carries no document date.
type ledgerColumns struct {
	GSTIN   string
	DocNo   string
	DocDate string
	Party   string
}

var (
	columns2B = ledgerColumns{
		GSTIN:   "Supplier GSTIN",
		DocNo:   "Document Number",
		DocDate: "Document Date",
		Party:   "Supplier Name",
	}
	columnsBooks = ledgerColumns{
		GSTIN: "GSTIN Of Vendor/Customer",
		DocNo: "Reference Document No.",
		Party: "Vendor/Customer Name",
	}
)

var moneyColumns = []string{"IGST Amount", "CGST Amount", "SGST Amount", "Invoice Value"}

// mapLedger turns a validated table into typed ledger rows. Monetary cells
// are coerced exactly once here: absent or unparseable values become zero,
// the latter recorded as a warning.
func mapLedger(t internal.Table, cols ledgerColumns) ([]internal.LedgerRow, []internal.CoercionWarning) {
	idx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		idx[c] = i
	}

	cell := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	rows := make([]internal.LedgerRow, 0, len(t.Rows))
	var warnings []internal.CoercionWarning
	for n, raw := range t.Rows {
		doc := cell(raw, cols.DocNo)
		row := internal.LedgerRow{
			GSTIN:     cell(raw, cols.GSTIN),
			DocNumber: doc,
			DocNorm:   util.NormalizeDoc(doc),
			PartyName: cell(raw, cols.Party),
		}
		if cols.DocDate != "" {
			row.DocDate = cell(raw, cols.DocDate)
		}

		targets := []*decimal.Decimal{&row.Amounts.IGST, &row.Amounts.CGST, &row.Amounts.SGST, &row.Amounts.Invoice}
		for i, name := range moneyColumns {
			v := cell(raw, name)
			d, warned := util.ParseMoney(v)
			if warned {
				warnings = append(warnings, internal.CoercionWarning{
					Table:  t.Label,
					Row:    n + 1,
					Column: name,
					Value:  v,
				})
			}
			*targets[i] = d
		}
		rows = append(rows, row)
	}
	return rows, warnings
}
