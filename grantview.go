// Package grantview contains domain types for reviewing grant-proposal evaluations.
//
// Evaluations and Settings are owned by an external backend service; this
// package only describes their shape and the interfaces used to reach them.
package grantview

import (
	"context"
	"io"
)

// Evaluation is the result record produced by the backend for one submitted document.
type Evaluation struct {
	ID              string           `json:"id"`
	FileName        string           `json:"file_name"`
	FileSize        int64            `json:"file_size"`
	Decision        Decision         `json:"decision"`
	OverallScore    float64          `json:"overall_score"`
	Scores          []ScoreDetail    `json:"scores"`
	CritiqueDomains []CritiqueDomain `json:"critique_domains"`
	SectionScores   []SectionScore   `json:"section_scores"`
	FullCritique    FullCritique     `json:"full_critique"`
	BudgetAnalysis  BudgetAnalysis   `json:"budget_analysis"`
	CreatedAt       Timestamp        `json:"created_at"`
	UpdatedAt       Timestamp        `json:"updated_at"`
}

// ScoreDetail is the score for one rubric category with its supporting statements.
// Strengths and Weaknesses are kept in display order.
type ScoreDetail struct {
	Category   string   `json:"category"`
	Score      float64  `json:"score"`
	MaxScore   float64  `json:"maxScore"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// CritiqueDomain scores a cross-cutting quality such as rigor or innovation.
type CritiqueDomain struct {
	Domain string  `json:"domain"`
	Score  float64 `json:"score"`
}

// SectionScore scores one structural section of the document.
type SectionScore struct {
	Section string  `json:"section"`
	Score   float64 `json:"score"`
}

// FullCritique is the narrative part of an evaluation.
type FullCritique struct {
	Summary         string           `json:"summary"`
	Issues          []Issue          `json:"issues"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Issue is a problem found in the document.
type Issue struct {
	Severity    Severity `json:"severity"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
}

// Recommendation is a suggested improvement.
type Recommendation struct {
	Priority       Priority `json:"priority"`
	Recommendation string   `json:"recommendation"`
}

// BudgetAnalysis describes the proposal's requested budget.
//
// Breakdown percentages are expected to sum to about 100 and amounts to about
// TotalBudget. Nothing here enforces that; see CheckBudgetContract.
type BudgetAnalysis struct {
	TotalBudget float64      `json:"totalBudget"`
	Breakdown   []BudgetItem `json:"breakdown"`
	Flags       []BudgetFlag `json:"flags"`
	Summary     string       `json:"summary"`
}

// BudgetItem is one line of the budget breakdown.
type BudgetItem struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// BudgetFlag is an observation about the budget.
type BudgetFlag struct {
	Type    FlagType `json:"type"`
	Message string   `json:"message"`
}

// EvaluationSubmitter sends a document to the backend for evaluation.
type EvaluationSubmitter interface {
	// Submit uploads the document and returns the identifier of the new evaluation.
	// Documents whose type is not allowed are rejected with ErrUnsupportedFileType
	// before any network call.
	Submit(ctx context.Context, doc Document) (string, error)
}

// EvaluationFetcher retrieves a single evaluation.
type EvaluationFetcher interface {
	// FetchEvaluation returns the evaluation with the given id, or an error
	// satisfying errors.Is(err, ErrNotFound).
	FetchEvaluation(ctx context.Context, id string) (*Evaluation, error)
}

// EvaluationLister lists evaluations, newest first.
type EvaluationLister interface {
	ListEvaluations(ctx context.Context) ([]Evaluation, error)
}

// SettingsService reads and updates the singleton Settings record.
type SettingsService interface {
	FetchSettings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, patch SettingsPatch) (*Settings, error)
}

// ReportLocator resolves where the generated report for an evaluation can be downloaded.
type ReportLocator interface {
	ReportURL(ctx context.Context, id string) (string, error)
}

// ReportDownloader fetches the generated report for an evaluation.
type ReportDownloader interface {
	// DownloadReport writes the report to w and returns the file name
	// suggested by the backend.
	DownloadReport(ctx context.Context, id string, w io.Writer) (string, error)
}

// EvaluationService is the full set of backend operations.
type EvaluationService interface {
	EvaluationSubmitter
	EvaluationFetcher
	EvaluationLister
	SettingsService
	ReportLocator
	ReportDownloader
}

// EvaluationArchive stores evaluations locally for offline viewing.
type EvaluationArchive interface {
	EvaluationFetcher
	EvaluationLister
	Append(evaluations ...Evaluation) error
}

// Clipboard provides clipboard operations.
type Clipboard interface {
	Copy(content string) error
}

// Presenter shows an interactive view starting at route and blocks until the user exits.
type Presenter interface {
	Present(ctx context.Context, route Route) error
}
