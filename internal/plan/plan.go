package plan

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType is the kind of purchase being financed.
type AssetType string

const (
	AssetHousing AssetType = "housing"
	AssetVehicle AssetType = "vehicle"
)

func (a AssetType) Valid() bool {
	return a == AssetHousing || a == AssetVehicle
}

// CreditCategory distinguishes the secured loan tied to the asset from
// unsecured personal loans.
type CreditCategory string

const (
	CategoryPrimary  CreditCategory = "primary"
	CategoryPersonal CreditCategory = "personal"
)

func (c CreditCategory) Valid() bool {
	return c == CategoryPrimary || c == CategoryPersonal
}

// Credit is a loan accepted from a lender quote. Amounts are in cents.
type Credit struct {
	ID             uuid.UUID
	Category       CreditCategory
	LenderID       string
	Principal      int64
	RatePercent    decimal.Decimal // per period
	TermMonths     int
	MonthlyPayment int64
	TotalPayment   int64
}

// Validate checks the shape of the credit, not its eligibility.
func (c Credit) Validate() error {
	switch {
	case !c.Category.Valid():
		return &ValidationError{Field: "category", Message: "must be primary or personal"}
	case c.Principal <= 0:
		return &ValidationError{Field: "principal", Message: "must be greater than zero"}
	case c.TermMonths < 1:
		return &ValidationError{Field: "term_months", Message: "must be at least 1"}
	case c.MonthlyPayment <= 0:
		return &ValidationError{Field: "monthly_payment", Message: "must be greater than zero"}
	case c.TotalPayment < c.Principal:
		return &ValidationError{Field: "total_payment", Message: "must not be less than the principal"}
	case c.RatePercent.IsNegative():
		return &ValidationError{Field: "rate_percent", Message: "must not be negative"}
	}

	return nil
}

// Quote is a single lender offer as returned by an OfferProvider.
type Quote struct {
	LenderID       string
	RatePercent    decimal.Decimal
	MonthlyPayment int64
	TotalPayment   int64
}

// CreditFromQuote turns the quote a user picked into a credit for the plan.
func CreditFromQuote(q Quote, req QuoteRequest) Credit {
	return Credit{
		ID:             uuid.New(),
		Category:       req.Category,
		LenderID:       q.LenderID,
		Principal:      req.Principal,
		RatePercent:    q.RatePercent,
		TermMonths:     req.TermMonths,
		MonthlyPayment: q.MonthlyPayment,
		TotalPayment:   q.TotalPayment,
	}
}

// MonthlyIncome is a recurring income the owner declared for affordability checks.
type MonthlyIncome struct {
	ID          uuid.UUID
	Amount      int64 // Amount in cents
	Description string
}

// Plan is a financing plan under edit. It is not safe for concurrent mutation;
// every derived view (Reconcile, BuildSchedule, NewSnapshot) reads it without
// modifying it.
type Plan struct {
	ID              uuid.UUID
	OwnerID         string
	AssetType       AssetType
	TargetPrice     int64 // in cents
	DownPayments    Ledger
	PrimaryCredit   *Credit
	PersonalCredits []Credit
	Expenses        *ExpenseBreakdown // housing only
	MonthlyIncomes  []MonthlyIncome
	CreatedAt       time.Time
}

// New starts an empty plan for the given asset and price.
func New(ownerID string, asset AssetType, targetPrice int64) (*Plan, error) {
	if !asset.Valid() {
		return nil, &ValidationError{Field: "asset_type", Message: "must be housing or vehicle"}
	}

	if targetPrice <= 0 {
		return nil, &ValidationError{Field: "target_price", Message: "must be greater than zero"}
	}

	return &Plan{
		OwnerID:     ownerID,
		AssetType:   asset,
		TargetPrice: targetPrice,
	}, nil
}

// SetTargetPrice changes the price and re-derives the transfer fee.
func (p *Plan) SetTargetPrice(price int64) error {
	if price <= 0 {
		return &ValidationError{Field: "target_price", Message: "must be greater than zero"}
	}

	p.TargetPrice = price

	if p.Expenses != nil {
		p.Expenses.TransferFee = TransferFee(price)
	}

	return nil
}

// SetExpenses attaches the transaction costs of a housing purchase.
func (p *Plan) SetExpenses(fees Fees, custom []LineItem) error {
	if p.AssetType != AssetHousing {
		return &ValidationError{Field: "expenses", Message: "only apply to housing plans"}
	}

	e, err := NewExpenseBreakdown(p.TargetPrice, fees, custom)
	if err != nil {
		return err
	}

	p.Expenses = e

	return nil
}

// SetPrimaryCredit replaces the secured credit. Vehicle plans are capped by
// the price bracket.
func (p *Plan) SetPrimaryCredit(c Credit) error {
	if c.Category == "" {
		c.Category = CategoryPrimary
	}

	if c.Category != CategoryPrimary {
		return &ValidationError{Field: "category", Message: "primary credit must have the primary category"}
	}

	if err := c.Validate(); err != nil {
		return err
	}

	if p.AssetType == AssetVehicle {
		if err := CheckVehicleCredit(c.Principal, p.TargetPrice); err != nil {
			return err
		}
	}

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	} else if slices.ContainsFunc(p.PersonalCredits, func(other Credit) bool { return other.ID == c.ID }) {
		return &ValidationError{Field: "id", Message: "duplicates another credit"}
	}

	p.PrimaryCredit = &c

	return nil
}

func (p *Plan) ClearPrimaryCredit() {
	p.PrimaryCredit = nil
}

// AddPersonalCredit appends an unsecured credit after checking the personal tiers.
func (p *Plan) AddPersonalCredit(c Credit) (Credit, error) {
	if c.Category == "" {
		c.Category = CategoryPersonal
	}

	if c.Category != CategoryPersonal {
		return Credit{}, &ValidationError{Field: "category", Message: "personal credit must have the personal category"}
	}

	if err := c.Validate(); err != nil {
		return Credit{}, err
	}

	if err := CheckPersonalCredit(c.Principal, c.TermMonths); err != nil {
		return Credit{}, err
	}

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	} else if p.hasCredit(c.ID) {
		return Credit{}, &ValidationError{Field: "id", Message: "duplicates another credit"}
	}

	p.PersonalCredits = append(p.PersonalCredits, c)

	return c, nil
}

func (p *Plan) hasCredit(id uuid.UUID) bool {
	return slices.ContainsFunc(p.Credits(), func(c Credit) bool { return c.ID == id })
}

func (p *Plan) RemovePersonalCredit(id uuid.UUID) bool {
	before := len(p.PersonalCredits)
	p.PersonalCredits = slices.DeleteFunc(p.PersonalCredits, func(c Credit) bool { return c.ID == id })

	return len(p.PersonalCredits) != before
}

// AddIncome records a monthly income.
func (p *Plan) AddIncome(in MonthlyIncome) (MonthlyIncome, error) {
	if in.Amount <= 0 {
		return MonthlyIncome{}, &ValidationError{Field: "amount", Message: "must be greater than zero"}
	}

	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}

	p.MonthlyIncomes = append(p.MonthlyIncomes, in)

	return in, nil
}

// Credits returns the primary credit first, then personal credits in the
// order they were added.
func (p Plan) Credits() []Credit {
	credits := make([]Credit, 0, len(p.PersonalCredits)+1)
	if p.PrimaryCredit != nil {
		credits = append(credits, *p.PrimaryCredit)
	}

	return append(credits, p.PersonalCredits...)
}

func (p Plan) clone() Plan {
	c := p
	c.DownPayments = Ledger{items: slices.Clone(p.DownPayments.items)}
	c.PersonalCredits = slices.Clone(p.PersonalCredits)
	c.MonthlyIncomes = slices.Clone(p.MonthlyIncomes)

	if p.PrimaryCredit != nil {
		primary := *p.PrimaryCredit
		c.PrimaryCredit = &primary
	}

	if p.Expenses != nil {
		e := *p.Expenses
		e.Custom = slices.Clone(p.Expenses.Custom)
		c.Expenses = &e
	}

	return c
}
