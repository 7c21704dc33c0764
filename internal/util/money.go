package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

var moneyCleaner = strings.NewReplacer(",", "", "₹", "", " ", "", " ", "")

// ParseMoney coerces one monetary cell to a decimal. Absent cells are zero;
// non-empty cells that fail to parse are zero with warned=true so the caller
// can surface a coercion warning. This is the single coercion point: no later
// stage re-interprets raw cells.
func ParseMoney(raw string) (value decimal.Decimal, warned bool) {
	s := moneyCleaner.Replace(strings.TrimSpace(raw))
	if s == "" {
		return decimal.Zero, false
	}
	// Excel exports sometimes wrap negatives in parentheses.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + strings.Trim(s, "()")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true
	}
	return d, false
}
