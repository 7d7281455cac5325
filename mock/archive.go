package mock

import (
	"context"

	"github.com/fwojciec/grantview"
)

// Compile-time interface verification.
var _ grantview.EvaluationArchive = (*EvaluationArchive)(nil)

// EvaluationArchive is a mock implementation of grantview.EvaluationArchive.
type EvaluationArchive struct {
	FetchEvaluationFn func(ctx context.Context, id string) (*grantview.Evaluation, error)
	ListEvaluationsFn func(ctx context.Context) ([]grantview.Evaluation, error)
	AppendFn          func(evaluations ...grantview.Evaluation) error
}

func (a *EvaluationArchive) FetchEvaluation(ctx context.Context, id string) (*grantview.Evaluation, error) {
	return a.FetchEvaluationFn(ctx, id)
}

func (a *EvaluationArchive) ListEvaluations(ctx context.Context) ([]grantview.Evaluation, error) {
	return a.ListEvaluationsFn(ctx)
}

func (a *EvaluationArchive) Append(evaluations ...grantview.Evaluation) error {
	return a.AppendFn(evaluations...)
}
