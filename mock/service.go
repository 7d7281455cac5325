// Package mock provides test doubles for grantview interfaces.
package mock

import (
	"context"
	"io"

	"github.com/fwojciec/grantview"
)

// Compile-time interface verification.
var _ grantview.EvaluationService = (*EvaluationService)(nil)

// EvaluationService is a mock implementation of grantview.EvaluationService.
type EvaluationService struct {
	SubmitFn          func(ctx context.Context, doc grantview.Document) (string, error)
	FetchEvaluationFn func(ctx context.Context, id string) (*grantview.Evaluation, error)
	ListEvaluationsFn func(ctx context.Context) ([]grantview.Evaluation, error)
	FetchSettingsFn   func(ctx context.Context) (*grantview.Settings, error)
	SaveSettingsFn    func(ctx context.Context, patch grantview.SettingsPatch) (*grantview.Settings, error)
	ReportURLFn       func(ctx context.Context, id string) (string, error)
	DownloadReportFn  func(ctx context.Context, id string, w io.Writer) (string, error)
}

func (s *EvaluationService) Submit(ctx context.Context, doc grantview.Document) (string, error) {
	return s.SubmitFn(ctx, doc)
}

func (s *EvaluationService) FetchEvaluation(ctx context.Context, id string) (*grantview.Evaluation, error) {
	return s.FetchEvaluationFn(ctx, id)
}

func (s *EvaluationService) ListEvaluations(ctx context.Context) ([]grantview.Evaluation, error) {
	return s.ListEvaluationsFn(ctx)
}

func (s *EvaluationService) FetchSettings(ctx context.Context) (*grantview.Settings, error) {
	return s.FetchSettingsFn(ctx)
}

func (s *EvaluationService) SaveSettings(ctx context.Context, patch grantview.SettingsPatch) (*grantview.Settings, error) {
	return s.SaveSettingsFn(ctx, patch)
}

func (s *EvaluationService) ReportURL(ctx context.Context, id string) (string, error) {
	return s.ReportURLFn(ctx, id)
}

func (s *EvaluationService) DownloadReport(ctx context.Context, id string, w io.Writer) (string, error) {
	return s.DownloadReportFn(ctx, id, w)
}
