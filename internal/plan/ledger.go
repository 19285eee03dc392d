package plan

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// DownPayment is a cash contribution applied directly against the price.
type DownPayment struct {
	ID          uuid.UUID
	Amount      int64 // Amount in cents
	Description string
}

// Ledger is the ordered set of down payments of a plan.
type Ledger struct {
	items []DownPayment
}

func validateDownPayment(dp DownPayment) error {
	if dp.Amount <= 0 {
		return &ValidationError{Field: "amount", Message: "must be greater than zero"}
	}

	if strings.TrimSpace(dp.Description) == "" {
		return &ValidationError{Field: "description", Message: "is required"}
	}

	return nil
}

// Add records a new down payment and returns it with its generated ID.
func (l *Ledger) Add(amount int64, description string) (DownPayment, error) {
	dp := DownPayment{ID: uuid.New(), Amount: amount, Description: description}
	if err := l.Append(dp); err != nil {
		return DownPayment{}, err
	}

	return dp, nil
}

// Append records a down payment keeping its ID, generating one when unset.
// An ID already in the ledger is rejected.
func (l *Ledger) Append(dp DownPayment) error {
	if err := validateDownPayment(dp); err != nil {
		return err
	}

	if dp.ID == uuid.Nil {
		dp.ID = uuid.New()
	} else if slices.ContainsFunc(l.items, func(other DownPayment) bool { return other.ID == dp.ID }) {
		return &ValidationError{Field: "id", Message: "duplicates another down payment"}
	}

	l.items = append(l.items, dp)

	return nil
}

// Remove deletes the down payment with the given ID and reports whether it existed.
func (l *Ledger) Remove(id uuid.UUID) bool {
	idx := slices.IndexFunc(l.items, func(dp DownPayment) bool { return dp.ID == id })
	if idx < 0 {
		return false
	}

	l.items = slices.Delete(l.items, idx, idx+1)

	return true
}

func (l Ledger) Total() int64 {
	var total int64
	for _, dp := range l.items {
		total += dp.Amount
	}

	return total
}

// Items returns a copy of the down payments in insertion order.
func (l Ledger) Items() []DownPayment {
	return slices.Clone(l.items)
}

func (l Ledger) Len() int {
	return len(l.items)
}
