package plan

// Snapshot is a fully funded plan frozen for persistence and export. It owns
// copies of every slice in the plan; later edits to the source plan do not
// reach it.
type Snapshot struct {
	Plan            Plan
	RequiredFunding int64
	Reconciliation  Reconciliation
	Schedule        []Segment
	Affordability   Affordability
}

// NewSnapshot freezes the plan. It fails with *IncompletePlanError unless the
// plan reconciles to an exact match.
func NewSnapshot(p Plan) (*Snapshot, error) {
	rec, err := Reconcile(p)
	if err != nil {
		return nil, err
	}

	if !rec.IsExact() {
		return nil, &IncompletePlanError{Reconciliation: rec}
	}

	frozen := p.clone()
	schedule := BuildSchedule(frozen.Credits())

	return &Snapshot{
		Plan:            frozen,
		RequiredFunding: rec.Required,
		Reconciliation:  rec,
		Schedule:        schedule,
		Affordability:   Assess(frozen, schedule),
	}, nil
}
