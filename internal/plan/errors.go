package plan

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("plan not found")
	ErrProviderUnavailable = errors.New("offer provider unavailable")
)

// ValidationError reports a malformed down payment, credit or plan field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// EligibilityError reports a credit that breaks a borrowing-limit rule.
type EligibilityError struct {
	Rule   string
	Reason string
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("not eligible (%s): %s", e.Rule, e.Reason)
}

// ValidationErrors collects every problem found while building a plan.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	return v
}

// IncompletePlanError is returned when a snapshot is requested for a plan whose
// sources do not exactly cover the required funding.
type IncompletePlanError struct {
	Reconciliation Reconciliation
}

func (e *IncompletePlanError) Error() string {
	return fmt.Sprintf("plan is not fully funded: %s, remaining %d", e.Reconciliation.State, e.Reconciliation.Remaining)
}

// withFieldPrefix qualifies the field of a validation error, e.g. "amount"
// becomes "down_payments[1].amount". Other errors are returned unchanged.
func withFieldPrefix(prefix string, err error) error {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	return &ValidationError{Field: prefix + "." + ve.Field, Message: ve.Message}
}
