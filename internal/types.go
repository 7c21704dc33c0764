package internal

import "github.com/shopspring/decimal"

// MatchStatus classifies one reconciled row. StatusFuzzyConsumed is transient:
// rows carrying it are removed before the result is returned.
type MatchStatus string

const (
	StatusExactMatch         MatchStatus = "Exact Match"
	StatusExactValueMismatch MatchStatus = "Exact Doc - Value Mismatch"
	StatusOpenIn2B           MatchStatus = "Open in 2B"
	StatusOpenInBooks        MatchStatus = "Open in Books"
	StatusFuzzyMatch         MatchStatus = "Fuzzy Match"
	StatusFuzzyValueMismatch MatchStatus = "Fuzzy Doc - Value Mismatch"
	StatusFuzzyConsumed      MatchStatus = "Fuzzy Consumed"
	StatusGSTINMismatch      MatchStatus = "GSTIN Mismatch"
)

// AllStatuses lists every status that can appear in a final result, in report order.
var AllStatuses = []MatchStatus{
	StatusExactMatch,
	StatusExactValueMismatch,
	StatusFuzzyMatch,
	StatusFuzzyValueMismatch,
	StatusGSTINMismatch,
	StatusOpenIn2B,
	StatusOpenInBooks,
}

// Table is one uploaded ledger as it arrives from ingestion: column labels
// plus raw string cells. Label is used in schema error messages.
type Table struct {
	Label   string
	Columns []string
	Rows    [][]string
}

// Amounts carries the monetary fields present on both ledgers.
type Amounts struct {
	IGST    decimal.Decimal
	CGST    decimal.Decimal
	SGST    decimal.Decimal
	Invoice decimal.Decimal
}

// Add returns the field-wise sum of a and b.
func (a Amounts) Add(b Amounts) Amounts {
	return Amounts{
		IGST:    a.IGST.Add(b.IGST),
		CGST:    a.CGST.Add(b.CGST),
		SGST:    a.SGST.Add(b.SGST),
		Invoice: a.Invoice.Add(b.Invoice),
	}
}

// Sub returns a - b field-wise.
func (a Amounts) Sub(b Amounts) Amounts {
	return Amounts{
		IGST:    a.IGST.Sub(b.IGST),
		CGST:    a.CGST.Sub(b.CGST),
		SGST:    a.SGST.Sub(b.SGST),
		Invoice: a.Invoice.Sub(b.Invoice),
	}
}

// WithinTolerance reports whether every field of a is within tol of zero in
// absolute value. The boundary is inclusive.
func (a Amounts) WithinTolerance(tol decimal.Decimal) bool {
	return a.IGST.Abs().Cmp(tol) <= 0 &&
		a.CGST.Abs().Cmp(tol) <= 0 &&
		a.SGST.Abs().Cmp(tol) <= 0 &&
		a.Invoice.Abs().Cmp(tol) <= 0
}

// LedgerRow is one source row after column mapping and monetary coercion.
// Multiple rows may share a (GSTIN, DocNorm) key before aggregation.
type LedgerRow struct {
	GSTIN     string
	DocNumber string
	DocNorm   string
	DocDate   string
	PartyName string
	Amounts   Amounts
}

// AggregatedRow is one row per (GSTIN, DocNorm) on one side: amounts summed,
// descriptive fields taken from the first contributing row.
type AggregatedRow struct {
	GSTIN     string
	DocNorm   string
	DocNumber string
	DocDate   string
	PartyName string
	Amounts   Amounts
}

// ReconciledRow holds both sides of one joined key. ID is a stable arena
// index assigned at join time; it survives every later stage so cross
// references remain valid after consumed rows are dropped.
type ReconciledRow struct {
	ID      int
	GSTIN   string
	DocNorm string

	Doc2B  string
	Date2B string
	Name2B string
	Amt2B  Amounts
	In2B   bool

	DocPUR  string
	NamePUR string
	AmtPUR  Amounts
	InBooks bool

	Diff        Amounts
	Status      MatchStatus
	FuzzyScore  float64
	LinkedGSTIN string
}

// CoercionWarning records a monetary cell that could not be parsed and was
// treated as zero.
type CoercionWarning struct {
	Table  string
	Row    int
	Column string
	Value  string
}

// Summary holds the aggregate counts consumed by presentation code.
type Summary struct {
	Rows2B    int
	RowsBooks int
	Counts    map[MatchStatus]int
}

// Matched returns the number of rows whose documents were paired across both
// ledgers, exactly or fuzzily.
func (s Summary) Matched() int {
	return s.Counts[StatusExactMatch] + s.Counts[StatusExactValueMismatch] +
		s.Counts[StatusFuzzyMatch] + s.Counts[StatusFuzzyValueMismatch]
}

// Result is the reconciled table plus summary counts and recovered warnings.
type Result struct {
	Rows     []ReconciledRow
	Summary  Summary
	Warnings []CoercionWarning
}

// RunRecord is one persisted reconciliation run.
type RunRecord struct {
	ID        int
	TraceID   string
	File2B    string
	FileBooks string
	Output    string
	Counts    map[MatchStatus]int
	Warnings  int
	TotalMs   float64
	CreatedAt string
}
