package plan

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// Segment is a run of months during which the same set of credits is being
// repaid. EndMonth is inclusive.
type Segment struct {
	StartMonth        int
	EndMonth          int
	MonthlyObligation int64 // in cents
	ActiveCreditIDs   []uuid.UUID
}

func (s Segment) Months() int {
	return s.EndMonth - s.StartMonth + 1
}

// BuildSchedule splits the repayment period into segments at every point where
// a credit rolls off. Shorter terms finish first; credits sharing a term roll
// off together. The boundaries and obligations depend only on the set of
// credits, not on their order; order only breaks ties in ActiveCreditIDs.
func BuildSchedule(credits []Credit) []Segment {
	active := make([]Credit, 0, len(credits))
	for _, c := range credits {
		if c.Principal > 0 {
			active = append(active, c)
		}
	}

	segments := []Segment{}
	if len(active) == 0 {
		return segments
	}

	slices.SortStableFunc(active, func(a, b Credit) int {
		return cmp.Compare(a.TermMonths, b.TermMonths)
	})

	start := 1

	for i := 0; i < len(active); {
		term := active[i].TermMonths

		next := i
		for next < len(active) && active[next].TermMonths == term {
			next++
		}

		seg := Segment{
			StartMonth:      start,
			EndMonth:        term,
			ActiveCreditIDs: make([]uuid.UUID, 0, len(active)-i),
		}

		// every credit from i onward has a term >= this boundary
		for _, c := range active[i:] {
			seg.MonthlyObligation += c.MonthlyPayment
			seg.ActiveCreditIDs = append(seg.ActiveCreditIDs, c.ID)
		}

		if seg.EndMonth >= seg.StartMonth {
			segments = append(segments, seg)
			start = term + 1
		}

		i = next
	}

	return segments
}

// ScheduleTotal is the sum of every monthly obligation over the schedule.
func ScheduleTotal(segments []Segment) int64 {
	var total int64
	for _, s := range segments {
		total += int64(s.Months()) * s.MonthlyObligation
	}

	return total
}

// ObligationAt returns the amount due in the given month, zero outside the schedule.
func ObligationAt(segments []Segment, month int) int64 {
	for _, s := range segments {
		if month >= s.StartMonth && month <= s.EndMonth {
			return s.MonthlyObligation
		}
	}

	return 0
}
