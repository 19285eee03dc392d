package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finplan/internal/money"
	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

// planFields holds the raw form input. It lives behind a pointer so the huh
// bindings survive model copies.
type planFields struct {
	Asset string
	Price string
	Downs []*downFields

	Notary         string
	Appraisal      string
	Registry       string
	BankCommission string

	Primary   creditFields
	Personals []*creditFields

	Income string
}

type downFields struct {
	Amount      string
	Description string
}

func newPlanFields() *planFields {
	return &planFields{
		Asset:     string(plan.AssetHousing),
		Downs:     []*downFields{{}},
		Personals: []*creditFields{{}},
	}
}

// addDown appends an empty down payment entry and returns it for binding.
func (f *planFields) addDown() *downFields {
	d := &downFields{}
	f.Downs = append(f.Downs, d)

	return d
}

func (f *planFields) addPersonal() *creditFields {
	c := &creditFields{}
	f.Personals = append(f.Personals, c)

	return c
}

type creditFields struct {
	Lender    string
	Principal string
	Rate      string
	Term      string
	Monthly   string
}

func (c creditFields) empty() bool {
	return strings.TrimSpace(c.Principal) == ""
}

func (c creditFields) toCredit(category plan.CreditCategory) (plan.Credit, error) {
	principal, err := money.Parse(c.Principal)
	if err != nil {
		return plan.Credit{}, fmt.Errorf("principal: %w", err)
	}

	rate := decimal.Zero
	if s := strings.TrimSpace(c.Rate); s != "" {
		rate, err = decimal.NewFromString(strings.ReplaceAll(strings.TrimSuffix(s, "%"), ",", "."))
		if err != nil {
			return plan.Credit{}, fmt.Errorf("rate: %w", err)
		}
	}

	term, err := strconv.Atoi(strings.TrimSpace(c.Term))
	if err != nil {
		return plan.Credit{}, fmt.Errorf("term: %w", err)
	}

	monthly, err := money.Parse(c.Monthly)
	if err != nil {
		return plan.Credit{}, fmt.Errorf("monthly payment: %w", err)
	}

	return plan.Credit{
		Category:       category,
		LenderID:       strings.TrimSpace(c.Lender),
		Principal:      principal,
		RatePercent:    rate,
		TermMonths:     term,
		MonthlyPayment: monthly,
		TotalPayment:   monthly * int64(term),
	}, nil
}

func optionalAmount(s string) (int64, error) {
	v, err := money.Parse(s)
	if errors.Is(err, money.ErrEmptyAmount) {
		return 0, nil
	}

	return v, err
}

// toInput parses the form into a plan input. Amounts are typed in major units.
func (f *planFields) toInput(owner string) (plan.Input, error) {
	in := plan.Input{OwnerID: owner, AssetType: plan.AssetType(f.Asset)}

	price, err := money.Parse(f.Price)
	if err != nil {
		return in, fmt.Errorf("price: %w", err)
	}

	in.TargetPrice = price

	for i, d := range f.Downs {
		amount, err := optionalAmount(d.Amount)
		if err != nil {
			return in, fmt.Errorf("down payment %d: %w", i+1, err)
		}

		if amount == 0 {
			continue
		}

		desc := strings.TrimSpace(d.Description)
		if desc == "" {
			desc = fmt.Sprintf("Down payment %d", len(in.DownPayments)+1)
		}

		in.DownPayments = append(in.DownPayments, plan.DownPayment{Amount: amount, Description: desc})
	}

	if in.AssetType == plan.AssetHousing {
		fees := make([]int64, 4)
		for i, s := range []string{f.Notary, f.Appraisal, f.Registry, f.BankCommission} {
			if fees[i], err = optionalAmount(s); err != nil {
				return in, fmt.Errorf("fees: %w", err)
			}
		}

		in.Expenses = &plan.ExpensesInput{Fees: plan.Fees{
			Notary:         fees[0],
			Appraisal:      fees[1],
			Registry:       fees[2],
			BankCommission: fees[3],
		}}
	}

	if !f.Primary.empty() {
		c, err := f.Primary.toCredit(plan.CategoryPrimary)
		if err != nil {
			return in, fmt.Errorf("primary credit: %w", err)
		}

		in.PrimaryCredit = &c
	}

	for i, pc := range f.Personals {
		if pc.empty() {
			continue
		}

		c, err := pc.toCredit(plan.CategoryPersonal)
		if err != nil {
			return in, fmt.Errorf("personal credit %d: %w", i+1, err)
		}

		in.PersonalCredits = append(in.PersonalCredits, c)
	}

	income, err := optionalAmount(f.Income)
	if err != nil {
		return in, fmt.Errorf("income: %w", err)
	}

	if income > 0 {
		in.MonthlyIncomes = []plan.MonthlyIncome{{Amount: income, Description: "Income"}}
	}

	return in, nil
}
