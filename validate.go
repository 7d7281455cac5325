package grantview

import (
	"fmt"
	"math"
)

// ContractReason identifies why a budget analysis breaks the backend contract.
type ContractReason string

// Contract violation reasons.
const (
	ErrPercentageSum   ContractReason = "percentage_sum"
	ErrAmountSum       ContractReason = "amount_sum"
	ErrNegativeAmount  ContractReason = "negative_amount"
	ErrPercentageRange ContractReason = "percentage_range"
)

// DefaultBudgetTolerance is the relative tolerance used by the verify command.
const DefaultBudgetTolerance = 0.01

// ContractViolation describes a single inconsistency in a BudgetAnalysis.
type ContractViolation struct {
	Reason   ContractReason
	Item     int // Index into Breakdown, or -1 for whole-analysis checks
	Category string
	Expected float64
	Actual   float64
}

// Error implements the error interface.
func (v ContractViolation) Error() string {
	switch v.Reason {
	case ErrPercentageSum:
		return fmt.Sprintf("breakdown percentages sum to %g, expected %g", v.Actual, v.Expected)
	case ErrAmountSum:
		return fmt.Sprintf("breakdown amounts sum to %g, expected total budget %g", v.Actual, v.Expected)
	case ErrNegativeAmount:
		return fmt.Sprintf("item %d (%q): amount %g is negative", v.Item, v.Category, v.Actual)
	case ErrPercentageRange:
		return fmt.Sprintf("item %d (%q): percentage %g is outside 0-100", v.Item, v.Category, v.Actual)
	default:
		return fmt.Sprintf("item %d (%q): unknown violation", v.Item, v.Category)
	}
}

// CheckBudgetContract reports where the analysis departs from what the
// backend promises: percentages summing to about 100 and amounts summing to
// about TotalBudget, within the relative tolerance. Returns nil when the
// analysis is consistent or has no breakdown.
//
// Rendering never calls this; displayed values are always the literal ones.
func CheckBudgetContract(b BudgetAnalysis, tolerance float64) []ContractViolation {
	if len(b.Breakdown) == 0 {
		return nil
	}

	var violations []ContractViolation
	var amountSum, percentSum float64

	for i, item := range b.Breakdown {
		amountSum += item.Amount
		percentSum += item.Percentage

		if item.Amount < 0 {
			violations = append(violations, ContractViolation{
				Reason:   ErrNegativeAmount,
				Item:     i,
				Category: item.Category,
				Actual:   item.Amount,
			})
		}
		if item.Percentage < 0 || item.Percentage > 100 {
			violations = append(violations, ContractViolation{
				Reason:   ErrPercentageRange,
				Item:     i,
				Category: item.Category,
				Actual:   item.Percentage,
			})
		}
	}

	if !withinTolerance(percentSum, 100, tolerance) {
		violations = append(violations, ContractViolation{
			Reason:   ErrPercentageSum,
			Item:     -1,
			Expected: 100,
			Actual:   percentSum,
		})
	}
	if !withinTolerance(amountSum, b.TotalBudget, tolerance) {
		violations = append(violations, ContractViolation{
			Reason:   ErrAmountSum,
			Item:     -1,
			Expected: b.TotalBudget,
			Actual:   amountSum,
		})
	}

	return violations
}

func withinTolerance(actual, expected, tolerance float64) bool {
	if expected == 0 {
		return math.Abs(actual) <= tolerance
	}
	return math.Abs(actual-expected) <= math.Abs(expected)*tolerance
}
