package pipeline

import (
	"github.com/shopspring/decimal"

	"gstreco/internal"
	"gstreco/internal/util"
)

// Options are the three numeric knobs of the engine.
type Options struct {
	// DocSimilarityThreshold is the minimum similarity ratio (0-100) for a
	// fuzzy document-number match.
	DocSimilarityThreshold float64
	// ValueTolerance bounds per-field diffs for exact/fuzzy value agreement
	// and blocks fuzzy candidates by invoice value. Inclusive.
	ValueTolerance decimal.Decimal
	// GSTINMismatchTolerance bounds the invoice diff for flagging the same
	// document filed under different GSTINs. Wider than ValueTolerance.
	GSTINMismatchTolerance decimal.Decimal
}

// DefaultOptions mirrors the defaults used by the portal tooling.
func DefaultOptions() Options {
	return Options{
		DocSimilarityThreshold: 85,
		ValueTolerance:         decimal.NewFromInt(10),
		GSTINMismatchTolerance: decimal.NewFromInt(20),
	}
}

// Reconcile runs the full pipeline over the two ledgers: header cleanup,
// schema validation, monetary coercion, per-key aggregation, outer join and
// classification, blocked fuzzy matching, and GSTIN-mismatch detection.
//
// The only failure mode is a *SchemaError for either table; unparseable
// monetary cells are recovered as zero and reported on the result. Each stage
// consumes the previous stage's table value and produces a new one, so a run
// is deterministic over its inputs.
func Reconcile(gst2b, books internal.Table, opts Options) (*internal.Result, error) {
	gst2b.Columns = util.CleanHeaders(gst2b.Columns)
	books.Columns = util.CleanHeaders(books.Columns)

	if err := ValidateColumns(gst2b, Required2B); err != nil {
		return nil, err
	}
	if err := ValidateColumns(books, RequiredBooks); err != nil {
		return nil, err
	}

	rows2b, warn2b := mapLedger(gst2b, columns2B)
	rowsBooks, warnBooks := mapLedger(books, columnsBooks)

	agg2b := Aggregate(rows2b)
	aggBooks := Aggregate(rowsBooks)

	table := joinLedgers(agg2b, aggBooks)
	table = classify(table, opts.ValueTolerance)
	table = fuzzyMatch(table, opts.DocSimilarityThreshold, opts.ValueTolerance)
	table = detectGSTINMismatch(table, opts.GSTINMismatchTolerance)

	summary := internal.Summary{
		Rows2B:    len(gst2b.Rows),
		RowsBooks: len(books.Rows),
		Counts:    make(map[internal.MatchStatus]int, len(internal.AllStatuses)),
	}
	for _, row := range table {
		summary.Counts[row.Status]++
	}

	warnings := make([]internal.CoercionWarning, 0, len(warn2b)+len(warnBooks))
	warnings = append(warnings, warn2b...)
	warnings = append(warnings, warnBooks...)

	return &internal.Result{Rows: table, Summary: summary, Warnings: warnings}, nil
}
