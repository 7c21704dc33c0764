package pipeline

import (
	"github.com/shopspring/decimal"

	"gstreco/internal"
)

// joinLedgers performs a full outer join of the two aggregated ledgers on
// (GSTIN, normalized doc). Rows whose normalized document number is empty
// never join across sides: a blank document number on both ledgers says
// nothing about the rows being the same transaction, so each side's blank
// rows stay one-sided and surface as open.
//
// Row IDs are assigned here and never reassigned; later stages reference
// rows by ID even after consumed rows are dropped.
func joinLedgers(gst2b, books []internal.AggregatedRow) []internal.ReconciledRow {
	out := make([]internal.ReconciledRow, 0, len(gst2b)+len(books))

	booksIndex := make(map[aggKey]int, len(books))
	for i, b := range books {
		if b.DocNorm == "" {
			continue
		}
		booksIndex[aggKey{GSTIN: b.GSTIN, DocNorm: b.DocNorm}] = i
	}

	claimed := make(map[int]bool, len(books))
	for _, a := range gst2b {
		row := internal.ReconciledRow{
			ID:      len(out),
			GSTIN:   a.GSTIN,
			DocNorm: a.DocNorm,
			Doc2B:   a.DocNumber,
			Date2B:  a.DocDate,
			Name2B:  a.PartyName,
			Amt2B:   a.Amounts,
			In2B:    true,
		}
		if a.DocNorm != "" {
			if i, ok := booksIndex[aggKey{GSTIN: a.GSTIN, DocNorm: a.DocNorm}]; ok {
				b := books[i]
				row.DocPUR = b.DocNumber
				row.NamePUR = b.PartyName
				row.AmtPUR = b.Amounts
				row.InBooks = true
				claimed[i] = true
			}
		}
		out = append(out, row)
	}

	for i, b := range books {
		if claimed[i] {
			continue
		}
		out = append(out, internal.ReconciledRow{
			ID:      len(out),
			GSTIN:   b.GSTIN,
			DocNorm: b.DocNorm,
			DocPUR:  b.DocNumber,
			NamePUR: b.PartyName,
			AmtPUR:  b.Amounts,
			InBooks: true,
		})
	}
	return out
}

// classify tags every joined row by provenance and value agreement. Missing
// sides compare as zero. The tolerance boundary is inclusive: a diff of
// exactly tol still matches.
func classify(rows []internal.ReconciledRow, tol decimal.Decimal) []internal.ReconciledRow {
	out := make([]internal.ReconciledRow, len(rows))
	copy(out, rows)
	for i := range out {
		row := &out[i]
		row.Diff = row.AmtPUR.Sub(row.Amt2B)
		switch {
		case row.In2B && row.InBooks:
			if row.Diff.WithinTolerance(tol) {
				row.Status = internal.StatusExactMatch
			} else {
				row.Status = internal.StatusExactValueMismatch
			}
		case row.In2B:
			row.Status = internal.StatusOpenIn2B
		default:
			row.Status = internal.StatusOpenInBooks
		}
	}
	return out
}
