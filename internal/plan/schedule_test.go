package plan_test

import (
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

func TestBuildSchedule_TwoCredits(t *testing.T) {
	a := plan.Credit{ID: uuid.New(), Principal: 10_000, TermMonths: 12, MonthlyPayment: 1000}
	b := plan.Credit{ID: uuid.New(), Principal: 30_000, TermMonths: 24, MonthlyPayment: 1500}

	got := plan.BuildSchedule([]plan.Credit{a, b})
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].StartMonth)
	assert.Equal(t, 12, got[0].EndMonth)
	assert.Equal(t, int64(2500), got[0].MonthlyObligation)
	assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, got[0].ActiveCreditIDs)

	assert.Equal(t, 13, got[1].StartMonth)
	assert.Equal(t, 24, got[1].EndMonth)
	assert.Equal(t, int64(1500), got[1].MonthlyObligation)
	assert.Equal(t, []uuid.UUID{b.ID}, got[1].ActiveCreditIDs)
}

func TestBuildSchedule_EdgeCases(t *testing.T) {
	type testCase struct {
		name    string
		credits []plan.Credit
		verify  func(t *testing.T, got []plan.Segment)
	}

	same1 := plan.Credit{ID: uuid.New(), Principal: 1, TermMonths: 18, MonthlyPayment: 200}
	same2 := plan.Credit{ID: uuid.New(), Principal: 1, TermMonths: 18, MonthlyPayment: 300}

	tests := []testCase{
		{
			name:    "Empty",
			credits: nil,
			verify: func(t *testing.T, got []plan.Segment) {
				assert.Empty(t, got)
			},
		},
		{
			name: "OnlyZeroPrincipal",
			credits: []plan.Credit{
				{ID: uuid.New(), Principal: 0, TermMonths: 12, MonthlyPayment: 100},
			},
			verify: func(t *testing.T, got []plan.Segment) {
				assert.Empty(t, got)
			},
		},
		{
			name: "SingleCredit",
			credits: []plan.Credit{
				{ID: uuid.New(), Principal: 5, TermMonths: 60, MonthlyPayment: 700},
			},
			verify: func(t *testing.T, got []plan.Segment) {
				require.Len(t, got, 1)
				assert.Equal(t, 1, got[0].StartMonth)
				assert.Equal(t, 60, got[0].EndMonth)
				assert.Equal(t, int64(700), got[0].MonthlyObligation)
			},
		},
		{
			name:    "SameTermRollOffTogether",
			credits: []plan.Credit{same1, same2},
			verify: func(t *testing.T, got []plan.Segment) {
				require.Len(t, got, 1)
				assert.Equal(t, 18, got[0].EndMonth)
				assert.Equal(t, int64(500), got[0].MonthlyObligation)
				assert.Equal(t, []uuid.UUID{same1.ID, same2.ID}, got[0].ActiveCreditIDs)
			},
		},
		{
			name: "ZeroPrincipalIgnored",
			credits: []plan.Credit{
				{ID: uuid.New(), Principal: 0, TermMonths: 6, MonthlyPayment: 100},
				{ID: uuid.New(), Principal: 9, TermMonths: 12, MonthlyPayment: 50},
			},
			verify: func(t *testing.T, got []plan.Segment) {
				require.Len(t, got, 1)
				assert.Equal(t, 1, got[0].StartMonth)
				assert.Equal(t, int64(50), got[0].MonthlyObligation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.verify(t, plan.BuildSchedule(tt.credits))
		})
	}
}

func randomCredits(r *rand.Rand) []plan.Credit {
	n := 1 + r.IntN(6)
	credits := make([]plan.Credit, n)

	for i := range credits {
		credits[i] = plan.Credit{
			ID:             uuid.New(),
			Principal:      1 + r.Int64N(1_000_000),
			TermMonths:     1 + r.IntN(48),
			MonthlyPayment: 1 + r.Int64N(50_000),
		}
	}

	return credits
}

func TestBuildSchedule_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for range 200 {
		credits := randomCredits(r)
		got := plan.BuildSchedule(credits)
		require.NotEmpty(t, got)

		maxTerm := 0
		for _, c := range credits {
			maxTerm = max(maxTerm, c.TermMonths)
		}

		// contiguous and spanning [1, maxTerm]
		assert.Equal(t, 1, got[0].StartMonth)
		assert.Equal(t, maxTerm, got[len(got)-1].EndMonth)

		for i := 1; i < len(got); i++ {
			assert.Equal(t, got[i-1].EndMonth+1, got[i].StartMonth)
		}

		for _, s := range got {
			assert.GreaterOrEqual(t, s.EndMonth, s.StartMonth)
		}

		// each credit is repaid exactly monthly × term over the schedule
		for _, c := range credits {
			var paid int64

			for _, s := range got {
				for _, id := range s.ActiveCreditIDs {
					if id == c.ID {
						paid += int64(s.Months()) * c.MonthlyPayment
					}
				}
			}

			assert.Equal(t, c.MonthlyPayment*int64(c.TermMonths), paid)
		}
	}
}

func TestBuildSchedule_OrderIndependent(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))

	for range 100 {
		credits := randomCredits(r)
		want := plan.BuildSchedule(credits)

		shuffled := append([]plan.Credit(nil), credits...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := plan.BuildSchedule(shuffled)
		require.Len(t, got, len(want))

		for i := range want {
			assert.Equal(t, want[i].StartMonth, got[i].StartMonth)
			assert.Equal(t, want[i].EndMonth, got[i].EndMonth)
			assert.Equal(t, want[i].MonthlyObligation, got[i].MonthlyObligation)
			assert.ElementsMatch(t, want[i].ActiveCreditIDs, got[i].ActiveCreditIDs)
		}
	}
}

func TestBuildSchedule_Repeatable(t *testing.T) {
	credits := randomCredits(rand.New(rand.NewPCG(1, 1)))

	assert.Equal(t, plan.BuildSchedule(credits), plan.BuildSchedule(credits))
}

func TestScheduleTotalAndObligationAt(t *testing.T) {
	segments := plan.BuildSchedule([]plan.Credit{
		{ID: uuid.New(), Principal: 1, TermMonths: 12, MonthlyPayment: 1000},
		{ID: uuid.New(), Principal: 1, TermMonths: 24, MonthlyPayment: 1500},
	})

	assert.Equal(t, int64(12*1000+24*1500), plan.ScheduleTotal(segments))
	assert.Equal(t, int64(2500), plan.ObligationAt(segments, 1))
	assert.Equal(t, int64(1500), plan.ObligationAt(segments, 13))
	assert.Zero(t, plan.ObligationAt(segments, 25))
}
