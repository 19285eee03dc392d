package plan_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finplan/internal/money"
	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

// loan builds a credit whose total payment is monthly × term. Amounts are in major units.
func loan(category plan.CreditCategory, principal, monthly int64, term int) plan.Credit {
	return plan.Credit{
		ID:             uuid.New(),
		Category:       category,
		LenderID:       "bank-a",
		Principal:      money.FromMajor(principal),
		RatePercent:    decimal.RequireFromString("1.10"),
		TermMonths:     term,
		MonthlyPayment: money.FromMajor(monthly),
		TotalPayment:   money.FromMajor(monthly) * int64(term),
	}
}

func housingPlan(price int64) *plan.Plan {
	p, err := plan.New("owner-1", plan.AssetHousing, money.FromMajor(price))
	if err != nil {
		panic(err)
	}

	return p
}
