package plan

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

type amountRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

type creditRequest struct {
	ID             uuid.UUID           `json:"id"`
	LenderID       string              `json:"lender_id"`
	Category       plan.CreditCategory `json:"category"`
	Principal      int64               `json:"principal"`
	RatePercent    decimal.Decimal     `json:"rate_percent"`
	TermMonths     int                 `json:"term_months"`
	MonthlyPayment int64               `json:"monthly_payment"`
	TotalPayment   int64               `json:"total_payment"`
}

type feesRequest struct {
	Notary         int64 `json:"notary"`
	Appraisal      int64 `json:"appraisal"`
	Registry       int64 `json:"registry"`
	BankCommission int64 `json:"bank_commission"`
}

type expensesRequest struct {
	Fees   feesRequest     `json:"fees"`
	Custom []amountRequest `json:"custom"`
}

type planRequest struct {
	AssetType       plan.AssetType   `json:"asset_type" validate:"required"`
	TargetPrice     int64            `json:"target_price"`
	DownPayments    []amountRequest  `json:"down_payments"`
	PrimaryCredit   *creditRequest   `json:"primary_credit"`
	PersonalCredits []creditRequest  `json:"personal_credits"`
	Expenses        *expensesRequest `json:"expenses"`
	MonthlyIncomes  []amountRequest  `json:"monthly_incomes"`
}

func (c creditRequest) toCredit() plan.Credit {
	return plan.Credit{
		ID:             c.ID,
		Category:       c.Category,
		LenderID:       c.LenderID,
		Principal:      c.Principal,
		RatePercent:    c.RatePercent,
		TermMonths:     c.TermMonths,
		MonthlyPayment: c.MonthlyPayment,
		TotalPayment:   c.TotalPayment,
	}
}

func (r planRequest) toInput(ownerID string) plan.Input {
	in := plan.Input{
		OwnerID:     ownerID,
		AssetType:   r.AssetType,
		TargetPrice: r.TargetPrice,
	}

	for _, dp := range r.DownPayments {
		in.DownPayments = append(in.DownPayments, plan.DownPayment{Amount: dp.Amount, Description: dp.Description})
	}

	if r.PrimaryCredit != nil {
		in.PrimaryCredit = new(r.PrimaryCredit.toCredit())
	}

	for _, c := range r.PersonalCredits {
		in.PersonalCredits = append(in.PersonalCredits, c.toCredit())
	}

	if r.Expenses != nil {
		in.Expenses = &plan.ExpensesInput{
			Fees: plan.Fees{
				Notary:         r.Expenses.Fees.Notary,
				Appraisal:      r.Expenses.Fees.Appraisal,
				Registry:       r.Expenses.Fees.Registry,
				BankCommission: r.Expenses.Fees.BankCommission,
			},
		}

		for _, item := range r.Expenses.Custom {
			in.Expenses.Custom = append(in.Expenses.Custom, plan.LineItem{Description: item.Description, Amount: item.Amount})
		}
	}

	for _, income := range r.MonthlyIncomes {
		in.MonthlyIncomes = append(in.MonthlyIncomes, plan.MonthlyIncome{Amount: income.Amount, Description: income.Description})
	}

	return in
}
