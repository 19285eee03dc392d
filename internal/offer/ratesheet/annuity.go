package ratesheet

import "github.com/shopspring/decimal"

const ratePrecision = 12

var (
	one         = decimal.NewFromInt(1)
	monthsInPct = decimal.NewFromInt(1200)
)

// MonthlyPayment returns the fixed instalment in cents that amortises
// principal over term months at the given annual percentage rate:
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1),  r = rate / 1200
//
// The result never drops below ceil(P / n), so term instalments always repay
// at least the principal.
func MonthlyPayment(principal int64, annualRatePercent decimal.Decimal, term int) int64 {
	if principal <= 0 || term <= 0 {
		return 0
	}

	p := decimal.NewFromInt(principal)
	n := decimal.NewFromInt(int64(term))
	minimum := p.Div(n).Ceil().IntPart()

	if !annualRatePercent.IsPositive() {
		return minimum
	}

	r := annualRatePercent.DivRound(monthsInPct, ratePrecision)
	factor := compound(one.Add(r), term)

	return max(p.Mul(r).Mul(factor).DivRound(factor.Sub(one), 0).IntPart(), minimum)
}

// compound raises base to n, rounding each step so long terms stay bounded.
func compound(base decimal.Decimal, n int) decimal.Decimal {
	out := one
	for range n {
		out = out.Mul(base).Round(ratePrecision)
	}

	return out
}
