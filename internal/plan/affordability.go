package plan

import "github.com/shopspring/decimal"

// Affordability compares the heaviest month of the schedule with declared income.
type Affordability struct {
	MonthlyIncome   int64
	PeakObligation  int64
	ObligationRatio decimal.Decimal // percent of income, zero without income
}

func Assess(p Plan, schedule []Segment) Affordability {
	var a Affordability

	for _, in := range p.MonthlyIncomes {
		a.MonthlyIncome += in.Amount
	}

	for _, s := range schedule {
		a.PeakObligation = max(a.PeakObligation, s.MonthlyObligation)
	}

	a.ObligationRatio = decimal.Zero
	if a.MonthlyIncome > 0 {
		a.ObligationRatio = decimal.NewFromInt(a.PeakObligation).
			Mul(decimal.NewFromInt(100)).
			DivRound(decimal.NewFromInt(a.MonthlyIncome), 2)
	}

	return a
}
