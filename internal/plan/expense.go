package plan

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// TransferFeeRate is the fraction of the price charged as property transfer tax.
var TransferFeeRate = decimal.RequireFromString("0.02")

// Fees are the fixed named closing costs of a housing purchase, in cents.
type Fees struct {
	Notary         int64
	Appraisal      int64
	Registry       int64
	BankCommission int64
}

func (f Fees) total() int64 {
	return f.Notary + f.Appraisal + f.Registry + f.BankCommission
}

// LineItem is an extra cost the owner adds by hand.
type LineItem struct {
	Description string
	Amount      int64 // Amount in cents
}

// ExpenseBreakdown holds the transaction costs added on top of a housing price.
type ExpenseBreakdown struct {
	TransferFee int64
	Fees        Fees
	Custom      []LineItem
}

// TransferFee returns price × TransferFeeRate rounded to the cent.
func TransferFee(price int64) int64 {
	return decimal.NewFromInt(price).Mul(TransferFeeRate).Round(0).IntPart()
}

func NewExpenseBreakdown(price int64, fees Fees, custom []LineItem) (*ExpenseBreakdown, error) {
	named := []struct {
		field  string
		amount int64
	}{
		{"notary", fees.Notary},
		{"appraisal", fees.Appraisal},
		{"registry", fees.Registry},
		{"bank_commission", fees.BankCommission},
	}
	for _, fee := range named {
		if fee.amount < 0 {
			return nil, &ValidationError{Field: "expenses." + fee.field, Message: "must not be negative"}
		}
	}

	for i, item := range custom {
		field := fmt.Sprintf("expenses.custom[%d]", i)

		if strings.TrimSpace(item.Description) == "" {
			return nil, &ValidationError{Field: field + ".description", Message: "is required"}
		}

		if item.Amount < 0 {
			return nil, &ValidationError{Field: field + ".amount", Message: "must not be negative"}
		}
	}

	return &ExpenseBreakdown{
		TransferFee: TransferFee(price),
		Fees:        fees,
		Custom:      slices.Clone(custom),
	}, nil
}

func (e ExpenseBreakdown) Total() int64 {
	total := e.TransferFee + e.Fees.total()
	for _, item := range e.Custom {
		total += item.Amount
	}

	return total
}
