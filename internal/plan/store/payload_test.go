package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

func TestPayload_RestoresSnapshot(t *testing.T) {
	primary := plan.Credit{
		Category:       plan.CategoryPrimary,
		LenderID:       "bank-a",
		Principal:      40_000_000,
		TermMonths:     240,
		MonthlyPayment: 300_000,
		TotalPayment:   72_000_000,
	}

	// 600,000 down + 2% transfer fee on 1,000,000
	snap, err := plan.Compute(plan.Input{
		OwnerID:       "owner-1",
		AssetType:     plan.AssetHousing,
		TargetPrice:   100_000_000,
		DownPayments:  []plan.DownPayment{{Amount: 62_000_000, Description: "Savings"}},
		PrimaryCredit: &primary,
		Expenses:      &plan.ExpensesInput{},
		MonthlyIncomes: []plan.MonthlyIncome{
			{Amount: 2_000_000, Description: "Salary"},
		},
	})
	require.NoError(t, err)

	data, err := encodePayload(snap)
	require.NoError(t, err)

	var restored plan.Snapshot
	require.NoError(t, decodePayload(data, &restored))

	assert.Equal(t, snap.Plan.DownPayments.Items(), restored.Plan.DownPayments.Items())
	assert.Equal(t, snap.Schedule, restored.Schedule)
	assert.Equal(t, snap.Reconciliation, restored.Reconciliation)
	assert.Equal(t, snap.Plan.Expenses, restored.Plan.Expenses)
	assert.Equal(t, snap.Plan.PrimaryCredit.Principal, restored.Plan.PrimaryCredit.Principal)
	assert.True(t, snap.Plan.PrimaryCredit.RatePercent.Equal(restored.Plan.PrimaryCredit.RatePercent))
	assert.True(t, snap.Affordability.ObligationRatio.Equal(restored.Affordability.ObligationRatio))
}

func TestDecodePayload_RejectsCorruptDownPayment(t *testing.T) {
	var snap plan.Snapshot

	err := decodePayload([]byte(`{"down_payments":[{"Amount":0,"Description":"x"}]}`), &snap)
	assert.Error(t, err)
}
