package grantview_test

import (
	"testing"

	"github.com/fwojciec/grantview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBudgetContract(t *testing.T) {
	t.Parallel()

	t.Run("consistent analysis passes", func(t *testing.T) {
		t.Parallel()

		b := grantview.BudgetAnalysis{
			TotalBudget: 1000,
			Breakdown: []grantview.BudgetItem{
				{Category: "Personnel", Amount: 600, Percentage: 60},
				{Category: "Travel", Amount: 400, Percentage: 40},
			},
		}

		assert.Empty(t, grantview.CheckBudgetContract(b, grantview.DefaultBudgetTolerance))
	})

	t.Run("rounded percentages within tolerance pass", func(t *testing.T) {
		t.Parallel()

		b := grantview.BudgetAnalysis{
			TotalBudget: 300,
			Breakdown: []grantview.BudgetItem{
				{Category: "A", Amount: 100, Percentage: 33.3},
				{Category: "B", Amount: 100, Percentage: 33.3},
				{Category: "C", Amount: 100, Percentage: 33.3},
			},
		}

		assert.Empty(t, grantview.CheckBudgetContract(b, grantview.DefaultBudgetTolerance))
	})

	t.Run("empty breakdown has nothing to check", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, grantview.CheckBudgetContract(grantview.BudgetAnalysis{TotalBudget: 5}, 0.01))
	})

	t.Run("percentage sum off", func(t *testing.T) {
		t.Parallel()

		b := grantview.BudgetAnalysis{
			TotalBudget: 1000,
			Breakdown: []grantview.BudgetItem{
				{Category: "Personnel", Amount: 600, Percentage: 60},
				{Category: "Travel", Amount: 400, Percentage: 20},
			},
		}

		violations := grantview.CheckBudgetContract(b, grantview.DefaultBudgetTolerance)

		require.Len(t, violations, 1)
		assert.Equal(t, grantview.ErrPercentageSum, violations[0].Reason)
		assert.Equal(t, 80.0, violations[0].Actual)
		assert.Contains(t, violations[0].Error(), "percentages sum to 80")
	})

	t.Run("amount sum off", func(t *testing.T) {
		t.Parallel()

		b := grantview.BudgetAnalysis{
			TotalBudget: 2000,
			Breakdown: []grantview.BudgetItem{
				{Category: "Personnel", Amount: 600, Percentage: 60},
				{Category: "Travel", Amount: 400, Percentage: 40},
			},
		}

		violations := grantview.CheckBudgetContract(b, grantview.DefaultBudgetTolerance)

		require.Len(t, violations, 1)
		assert.Equal(t, grantview.ErrAmountSum, violations[0].Reason)
		assert.Equal(t, 2000.0, violations[0].Expected)
		assert.Equal(t, 1000.0, violations[0].Actual)
	})

	t.Run("per-item violations", func(t *testing.T) {
		t.Parallel()

		b := grantview.BudgetAnalysis{
			TotalBudget: 100,
			Breakdown: []grantview.BudgetItem{
				{Category: "Refund", Amount: -50, Percentage: -50},
				{Category: "Everything", Amount: 150, Percentage: 150},
			},
		}

		violations := grantview.CheckBudgetContract(b, grantview.DefaultBudgetTolerance)

		reasons := make([]grantview.ContractReason, 0, len(violations))
		for _, v := range violations {
			reasons = append(reasons, v.Reason)
		}
		assert.ElementsMatch(t, []grantview.ContractReason{
			grantview.ErrNegativeAmount,
			grantview.ErrPercentageRange,
			grantview.ErrPercentageRange,
		}, reasons)
		assert.Equal(t, 0, violations[0].Item)
		assert.Contains(t, violations[0].Error(), `"Refund"`)
	})
}
