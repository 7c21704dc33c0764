package pipeline

import (
	"github.com/shopspring/decimal"

	"gstreco/internal"
)

// detectGSTINMismatch flags likely GSTIN miscodings: rows still open on both
// sides that share a normalized document number under different GSTINs and
// agree on invoice value within the (looser) mismatch tolerance. Both rows
// are reclassified and cross-linked with the other side's GSTIN. A row is
// flagged at most once per pass.
func detectGSTINMismatch(rows []internal.ReconciledRow, tol decimal.Decimal) []internal.ReconciledRow {
	out := make([]internal.ReconciledRow, len(rows))
	copy(out, rows)

	booksByDoc := make(map[string][]int)
	for i, row := range out {
		if row.Status == internal.StatusOpenInBooks && row.DocNorm != "" {
			booksByDoc[row.DocNorm] = append(booksByDoc[row.DocNorm], i)
		}
	}

	for i := range out {
		left := &out[i]
		if left.Status != internal.StatusOpenIn2B || left.DocNorm == "" {
			continue
		}
		for _, ri := range booksByDoc[left.DocNorm] {
			right := &out[ri]
			if right.Status != internal.StatusOpenInBooks {
				continue
			}
			// Same GSTIN with the same doc would already have joined;
			// the guard only matters for empty-adjacent edge data.
			if right.GSTIN == left.GSTIN {
				continue
			}
			if right.AmtPUR.Invoice.Sub(left.Amt2B.Invoice).Abs().Cmp(tol) > 0 {
				continue
			}
			left.Status = internal.StatusGSTINMismatch
			left.LinkedGSTIN = right.GSTIN
			right.Status = internal.StatusGSTINMismatch
			right.LinkedGSTIN = left.GSTIN
			break
		}
	}
	return out
}
