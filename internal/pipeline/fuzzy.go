package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"gstreco/internal"
	"gstreco/internal/util"
)

type fuzzyMatchPair struct {
	left  int
	right int
	score float64
}

// fuzzyMatch recovers matches hidden by document-number typos. Candidates are
// blocked twice: only rows under the same GSTIN are compared, and only those
// whose invoice values sit within the tax tolerance of each other. Within a
// block the candidate with the highest similarity ratio wins, provided it
// clears the threshold; ties go to the first maximal candidate in ascending
// (DocNorm, ID) order.
//
// Resolution runs in two phases. First, matches are decided read-only against
// the classified table, processing open 2B rows in ascending (GSTIN, DocNorm,
// ID) order with each books row claimable exactly once. Then all copies,
// reclassifications and consumptions are applied together, and consumed books
// rows are dropped from the table.
func fuzzyMatch(rows []internal.ReconciledRow, threshold float64, tol decimal.Decimal) []internal.ReconciledRow {
	var lefts []int
	rightsByGSTIN := make(map[string][]int)
	for i, row := range rows {
		if row.DocNorm == "" {
			continue
		}
		switch row.Status {
		case internal.StatusOpenIn2B:
			lefts = append(lefts, i)
		case internal.StatusOpenInBooks:
			rightsByGSTIN[row.GSTIN] = append(rightsByGSTIN[row.GSTIN], i)
		}
	}

	sort.Slice(lefts, func(a, b int) bool {
		ra, rb := rows[lefts[a]], rows[lefts[b]]
		if ra.GSTIN != rb.GSTIN {
			return ra.GSTIN < rb.GSTIN
		}
		if ra.DocNorm != rb.DocNorm {
			return ra.DocNorm < rb.DocNorm
		}
		return ra.ID < rb.ID
	})
	for _, group := range rightsByGSTIN {
		sort.Slice(group, func(a, b int) bool {
			ra, rb := rows[group[a]], rows[group[b]]
			if ra.DocNorm != rb.DocNorm {
				return ra.DocNorm < rb.DocNorm
			}
			return ra.ID < rb.ID
		})
	}

	// Phase 1: decide matches. Reads only; claims keep each books row
	// available to at most one 2B row.
	claimed := make(map[int]bool)
	var pairs []fuzzyMatchPair
	for _, li := range lefts {
		left := rows[li]
		best := -1
		bestScore := 0.0
		for _, ri := range rightsByGSTIN[left.GSTIN] {
			if claimed[ri] {
				continue
			}
			right := rows[ri]
			if right.AmtPUR.Invoice.Sub(left.Amt2B.Invoice).Abs().Cmp(tol) > 0 {
				continue
			}
			score := util.SimilarityRatio(left.DocNorm, right.DocNorm)
			if score < threshold {
				continue
			}
			if score > bestScore {
				best = ri
				bestScore = score
			}
		}
		if best >= 0 {
			claimed[best] = true
			pairs = append(pairs, fuzzyMatchPair{left: li, right: best, score: bestScore})
		}
	}

	// Phase 2: apply all writes at once.
	out := make([]internal.ReconciledRow, len(rows))
	copy(out, rows)
	for _, p := range pairs {
		left := &out[p.left]
		right := rows[p.right]

		left.DocPUR = right.DocPUR
		left.NamePUR = right.NamePUR
		left.AmtPUR = right.AmtPUR
		left.InBooks = true
		left.Diff = left.AmtPUR.Sub(left.Amt2B)
		left.FuzzyScore = p.score
		if left.Diff.WithinTolerance(tol) {
			left.Status = internal.StatusFuzzyMatch
		} else {
			left.Status = internal.StatusFuzzyValueMismatch
		}
		out[p.right].Status = internal.StatusFuzzyConsumed
	}

	final := make([]internal.ReconciledRow, 0, len(out))
	for _, row := range out {
		if row.Status == internal.StatusFuzzyConsumed {
			continue
		}
		final = append(final, row)
	}
	return final
}
