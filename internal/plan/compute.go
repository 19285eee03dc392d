package plan

import (
	"fmt"
)

// Input is the plain description of a plan, as received from a client.
type Input struct {
	OwnerID         string
	AssetType       AssetType
	TargetPrice     int64
	DownPayments    []DownPayment
	PrimaryCredit   *Credit
	PersonalCredits []Credit
	Expenses        *ExpensesInput
	MonthlyIncomes  []MonthlyIncome
}

type ExpensesInput struct {
	Fees   Fees
	Custom []LineItem
}

// Build assembles a plan from input, reporting every malformed or ineligible
// entry at once as ValidationErrors.
func Build(in Input) (*Plan, error) {
	var errs ValidationErrors

	p := &Plan{OwnerID: in.OwnerID, AssetType: in.AssetType, TargetPrice: in.TargetPrice}

	if !in.AssetType.Valid() {
		errs = append(errs, &ValidationError{Field: "asset_type", Message: "must be housing or vehicle"})
	}

	if in.TargetPrice <= 0 {
		errs = append(errs, &ValidationError{Field: "target_price", Message: "must be greater than zero"})
	}

	for i, dp := range in.DownPayments {
		if err := p.DownPayments.Append(dp); err != nil {
			errs = append(errs, withFieldPrefix(fmt.Sprintf("down_payments[%d]", i), err))
		}
	}

	if in.PrimaryCredit != nil {
		if err := p.SetPrimaryCredit(*in.PrimaryCredit); err != nil {
			errs = append(errs, withFieldPrefix("primary_credit", err))
		}
	}

	for i, c := range in.PersonalCredits {
		if _, err := p.AddPersonalCredit(c); err != nil {
			errs = append(errs, withFieldPrefix(fmt.Sprintf("personal_credits[%d]", i), err))
		}
	}

	if in.Expenses != nil {
		if err := p.SetExpenses(in.Expenses.Fees, in.Expenses.Custom); err != nil {
			errs = append(errs, err)
		}
	}

	for i, income := range in.MonthlyIncomes {
		if _, err := p.AddIncome(income); err != nil {
			errs = append(errs, withFieldPrefix(fmt.Sprintf("monthly_incomes[%d]", i), err))
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return p, nil
}

// Compute builds and snapshots a plan in one step. The error is either
// ValidationErrors or *IncompletePlanError.
func Compute(in Input) (*Snapshot, error) {
	p, err := Build(in)
	if err != nil {
		return nil, err
	}

	return NewSnapshot(*p)
}

// Evaluation is the live view of a plan under edit.
type Evaluation struct {
	RequiredFunding int64
	Reconciliation  Reconciliation
	Schedule        []Segment
	Affordability   Affordability
}

func Evaluate(p Plan) (Evaluation, error) {
	rec, err := Reconcile(p)
	if err != nil {
		return Evaluation{}, err
	}

	schedule := BuildSchedule(p.Credits())

	return Evaluation{
		RequiredFunding: rec.Required,
		Reconciliation:  rec,
		Schedule:        schedule,
		Affordability:   Assess(p, schedule),
	}, nil
}
