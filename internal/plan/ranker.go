package plan

import (
	"cmp"
	"slices"
	"strings"
)

// RankQuotes returns the quotes ordered by rate, then total payment, then
// lender. The input slice is left untouched.
func RankQuotes(quotes []Quote) []Quote {
	ranked := slices.Clone(quotes)
	slices.SortStableFunc(ranked, compareQuotes)

	return ranked
}

func compareQuotes(a, b Quote) int {
	if c := a.RatePercent.Cmp(b.RatePercent); c != 0 {
		return c
	}

	if c := cmp.Compare(a.TotalPayment, b.TotalPayment); c != 0 {
		return c
	}

	if c := strings.Compare(a.LenderID, b.LenderID); c != 0 {
		return c
	}

	return cmp.Compare(a.MonthlyPayment, b.MonthlyPayment)
}
