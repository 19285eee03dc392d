package plan

// State is the outcome of comparing funding sources with the requirement.
type State string

const (
	StateExactMatch State = "exact_match"
	StateShortfall  State = "shortfall"
	StateOverfunded State = "overfunded"
)

// Epsilon is the tolerance, in cents, within which sources match the requirement.
const Epsilon int64 = 1

// Reconciliation is a soft result: Shortfall and Overfunded are normal states
// of a plan under edit, not errors.
type Reconciliation struct {
	State     State
	Required  int64
	Sources   int64
	Remaining int64 // Required - Sources; negative when overfunded
}

func (r Reconciliation) IsExact() bool {
	return r.State == StateExactMatch
}

// FundingSources sums down payments and credit principals.
func FundingSources(p Plan) int64 {
	sources := p.DownPayments.Total()
	for _, c := range p.Credits() {
		sources += c.Principal
	}

	return sources
}

func Reconcile(p Plan) (Reconciliation, error) {
	required, err := RequiredFunding(p)
	if err != nil {
		return Reconciliation{}, err
	}

	sources := FundingSources(p)
	remaining := required - sources

	state := StateExactMatch

	switch {
	case remaining > Epsilon:
		state = StateShortfall
	case remaining < -Epsilon:
		state = StateOverfunded
	}

	return Reconciliation{
		State:     state,
		Required:  required,
		Sources:   sources,
		Remaining: remaining,
	}, nil
}
