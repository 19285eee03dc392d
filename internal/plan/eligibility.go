package plan

import (
	"fmt"

	"github.com/MrJamesThe3rd/finplan/internal/money"
)

const (
	RulePersonalTier = "personal_tier"
	RuleVehicleCap   = "vehicle_cap"
)

type personalTier struct {
	maxPrincipal int64
	maxTerm      int
}

// personalTiers is evaluated top-down; a principal above the last tier has no product.
var personalTiers = []personalTier{
	{maxPrincipal: money.FromMajor(125_000), maxTerm: 36},
	{maxPrincipal: money.FromMajor(250_000), maxTerm: 24},
	{maxPrincipal: money.FromMajor(500_000), maxTerm: 12},
}

// MaxPersonalTerm returns the longest term offered for a personal loan of the
// given principal, and false when no product exists for it.
func MaxPersonalTerm(principal int64) (int, bool) {
	for _, tier := range personalTiers {
		if principal <= tier.maxPrincipal {
			return tier.maxTerm, true
		}
	}

	return 0, false
}

// CheckPersonalCredit returns nil when a personal loan of this principal and
// term is available, or an *EligibilityError explaining why not.
func CheckPersonalCredit(principal int64, termMonths int) error {
	if principal <= 0 {
		return &ValidationError{Field: "principal", Message: "must be greater than zero"}
	}

	if termMonths < 1 {
		return &ValidationError{Field: "term_months", Message: "must be at least 1"}
	}

	maxTerm, ok := MaxPersonalTerm(principal)
	if !ok {
		return &EligibilityError{
			Rule:   RulePersonalTier,
			Reason: fmt.Sprintf("no personal loan available above %s", money.FormatGrouped(personalTiers[len(personalTiers)-1].maxPrincipal)),
		}
	}

	if termMonths > maxTerm {
		return &EligibilityError{
			Rule:   RulePersonalTier,
			Reason: fmt.Sprintf("term of %d months exceeds the %d month limit for %s", termMonths, maxTerm, money.FormatGrouped(principal)),
		}
	}

	return nil
}

// vehicleBracket caps the secured loan at percent of a price in (above, upTo].
type vehicleBracket struct {
	above   int64
	upTo    int64
	percent int64
}

var vehicleBrackets = []vehicleBracket{
	{above: money.FromMajor(400_000), upTo: money.FromMajor(800_000), percent: 50},
	{above: money.FromMajor(800_000), upTo: money.FromMajor(1_200_000), percent: 30},
	{above: money.FromMajor(1_200_000), upTo: money.FromMajor(2_000_000), percent: 20},
}

// VehicleCreditCap is the most a secured vehicle loan may lend for the price.
// Zero means only personal credit is available.
func VehicleCreditCap(price int64) int64 {
	for _, b := range vehicleBrackets {
		if price > b.above && price <= b.upTo {
			return price * b.percent / 100
		}
	}

	return 0
}

func CheckVehicleCredit(requested, price int64) error {
	limit := VehicleCreditCap(price)
	if requested <= limit {
		return nil
	}

	if limit == 0 {
		return &EligibilityError{
			Rule:   RuleVehicleCap,
			Reason: fmt.Sprintf("no secured vehicle loan for a price of %s, use personal credit", money.FormatGrouped(price)),
		}
	}

	return &EligibilityError{
		Rule:   RuleVehicleCap,
		Reason: fmt.Sprintf("requested %s exceeds the cap of %s", money.FormatGrouped(requested), money.FormatGrouped(limit)),
	}
}
