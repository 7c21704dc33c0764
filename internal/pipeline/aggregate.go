package pipeline

import "gstreco/internal"

type aggKey struct {
	GSTIN   string
	DocNorm string
}

// Aggregate collapses a ledger to one row per (GSTIN, normalized document
// number): monetary fields summed, descriptive fields from the first row
// observed in input order. A ledger already at one row per key passes
// through unchanged.
func Aggregate(rows []internal.LedgerRow) []internal.AggregatedRow {
	out := make([]internal.AggregatedRow, 0, len(rows))
	index := make(map[aggKey]int, len(rows))

	for _, row := range rows {
		key := aggKey{GSTIN: row.GSTIN, DocNorm: row.DocNorm}
		if i, ok := index[key]; ok {
			out[i].Amounts = out[i].Amounts.Add(row.Amounts)
			continue
		}
		index[key] = len(out)
		out = append(out, internal.AggregatedRow{
			GSTIN:     row.GSTIN,
			DocNorm:   row.DocNorm,
			DocNumber: row.DocNumber,
			DocDate:   row.DocDate,
			PartyName: row.PartyName,
			Amounts:   row.Amounts,
		})
	}
	return out
}
