// Package fixture builds plausible Evaluation records for tests and the
// stand-in backend. Nothing here talks to the real backend, and records built
// here must never be presented as backend results.
package fixture

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/fwojciec/grantview"
)

// Defaults used when no option overrides them.
const (
	DefaultID           = "ev_fixture"
	DefaultFileName     = "proposal.pdf"
	DefaultFileSize     = 2202010 // about 2.1 MB
	DefaultOverallScore = 8.4
)

// DefaultCreatedAt is the creation time of fixture records.
var DefaultCreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// Option configures a fixture Evaluation.
type Option func(*grantview.Evaluation)

// WithID sets the identifier.
func WithID(id string) Option {
	return func(e *grantview.Evaluation) {
		e.ID = id
	}
}

// WithFile sets the source file name and size.
func WithFile(name string, size int64) Option {
	return func(e *grantview.Evaluation) {
		e.FileName = name
		e.FileSize = size
	}
}

// WithOverallScore sets the overall score and the decision it implies.
func WithOverallScore(score float64) Option {
	return func(e *grantview.Evaluation) {
		e.OverallScore = score
		e.Decision = DecisionForScore(score)
	}
}

// WithRandomScore draws an overall score in [7, 10) with one decimal.
func WithRandomScore(r *rand.Rand) Option {
	return func(e *grantview.Evaluation) {
		score := math.Round((r.Float64()*3+7)*10) / 10
		e.OverallScore = score
		e.Decision = DecisionForScore(score)
	}
}

// WithDecision overrides the decision independently of the score.
func WithDecision(d grantview.Decision) Option {
	return func(e *grantview.Evaluation) {
		e.Decision = d
	}
}

// WithCreatedAt sets both timestamps.
func WithCreatedAt(t time.Time) Option {
	return func(e *grantview.Evaluation) {
		e.CreatedAt = grantview.Timestamp{Time: t}
		e.UpdatedAt = grantview.Timestamp{Time: t}
	}
}

// WithBudget replaces the budget analysis.
func WithBudget(b grantview.BudgetAnalysis) Option {
	return func(e *grantview.Evaluation) {
		e.BudgetAnalysis = b
	}
}

// DecisionForScore maps an overall score to a decision: 8.5 and above is
// ACCEPT, 7 and above is REVISE, anything lower is REJECT.
func DecisionForScore(score float64) grantview.Decision {
	switch {
	case score >= 8.5:
		return grantview.DecisionAccept
	case score >= 7:
		return grantview.DecisionRevise
	default:
		return grantview.DecisionReject
	}
}

// Evaluation returns a complete evaluation record.
func Evaluation(opts ...Option) grantview.Evaluation {
	e := grantview.Evaluation{
		ID:              DefaultID,
		FileName:        DefaultFileName,
		FileSize:        DefaultFileSize,
		OverallScore:    DefaultOverallScore,
		Decision:        DecisionForScore(DefaultOverallScore),
		Scores:          Scores(),
		CritiqueDomains: CritiqueDomains(),
		SectionScores:   SectionScores(),
		FullCritique:    FullCritique(),
		BudgetAnalysis:  BudgetAnalysis(),
		CreatedAt:       grantview.Timestamp{Time: DefaultCreatedAt},
		UpdatedAt:       grantview.Timestamp{Time: DefaultCreatedAt},
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Settings returns a saved settings record.
func Settings(maxBudget, chunkSize int64) grantview.Settings {
	return grantview.Settings{
		ID:        "settings_fixture",
		MaxBudget: maxBudget,
		ChunkSize: chunkSize,
		CreatedAt: grantview.Timestamp{Time: DefaultCreatedAt},
		UpdatedAt: grantview.Timestamp{Time: DefaultCreatedAt},
	}
}

// Scores returns the five rubric categories.
func Scores() []grantview.ScoreDetail {
	return []grantview.ScoreDetail{
		{
			Category: "Scientific Merit",
			Score:    8.5,
			MaxScore: 10,
			Strengths: []string{
				"Novel approach to solving a critical problem",
				"Strong theoretical foundation",
				"Clear research objectives",
			},
			Weaknesses: []string{
				"Limited discussion of alternative approaches",
				"Some methodology details need clarification",
			},
		},
		{
			Category: "Innovation",
			Score:    9.0,
			MaxScore: 10,
			Strengths: []string{
				"Groundbreaking methodology",
				"Unique interdisciplinary approach",
				"High potential for transformative impact",
			},
			Weaknesses: []string{
				"Risk assessment could be more comprehensive",
			},
		},
		{
			Category: "Feasibility",
			Score:    7.5,
			MaxScore: 10,
			Strengths: []string{
				"Realistic timeline",
				"Experienced team with relevant expertise",
			},
			Weaknesses: []string{
				"Resource allocation needs better justification",
				"Contingency plans are underdeveloped",
				"Some milestones are overly ambitious",
			},
		},
		{
			Category: "Impact",
			Score:    8.8,
			MaxScore: 10,
			Strengths: []string{
				"Clear societal benefits",
				"Strong dissemination plan",
				"Potential for broad application",
			},
			Weaknesses: []string{
				"Long-term sustainability plan could be stronger",
			},
		},
		{
			Category: "Budget Justification",
			Score:    7.0,
			MaxScore: 10,
			Strengths: []string{
				"Major expenses are explained",
				"Cost-sharing demonstrated",
			},
			Weaknesses: []string{
				"Some line items lack detailed justification",
				"Equipment costs seem high relative to other expenses",
				"Indirect costs need better explanation",
			},
		},
	}
}

// CritiqueDomains returns the seven cross-cutting quality scores.
func CritiqueDomains() []grantview.CritiqueDomain {
	return []grantview.CritiqueDomain{
		{Domain: "Scientific Rigor", Score: 8.5},
		{Domain: "Innovation", Score: 9.0},
		{Domain: "Feasibility", Score: 7.5},
		{Domain: "Impact", Score: 8.8},
		{Domain: "Team Capability", Score: 8.2},
		{Domain: "Resource Planning", Score: 7.3},
		{Domain: "Sustainability", Score: 7.8},
	}
}

// SectionScores returns scores for ten document sections.
func SectionScores() []grantview.SectionScore {
	return []grantview.SectionScore{
		{Section: "Abstract", Score: 8.5},
		{Section: "Objectives", Score: 9.0},
		{Section: "Background", Score: 8.3},
		{Section: "Methodology", Score: 8.0},
		{Section: "Timeline", Score: 7.5},
		{Section: "Team", Score: 8.8},
		{Section: "Budget", Score: 7.0},
		{Section: "Impact", Score: 8.9},
		{Section: "Dissemination", Score: 8.4},
		{Section: "References", Score: 8.7},
	}
}

// FullCritique returns a summary with six issues and seven recommendations.
func FullCritique() grantview.FullCritique {
	return grantview.FullCritique{
		Summary: "This grant proposal demonstrates strong scientific merit and innovation with a novel approach to addressing a critical research gap. " +
			"The research objectives are clearly defined, and the methodology shows promise for generating significant insights. " +
			"However, several areas require attention to strengthen the application.",
		Issues: []grantview.Issue{
			{
				Severity:    grantview.SeverityHigh,
				Category:    "Budget",
				Description: "Equipment costs ($125,000) represent 25% of the total budget but lack detailed justification for specific items and their necessity.",
			},
			{
				Severity:    grantview.SeverityHigh,
				Category:    "Methodology",
				Description: "Statistical power analysis is missing for the proposed sample size. This is critical for demonstrating feasibility of detecting expected effects.",
			},
			{
				Severity:    grantview.SeverityMedium,
				Category:    "Timeline",
				Description: "Milestone 3 (data collection and analysis in 6 months) appears overly ambitious given the proposed sample size and complexity.",
			},
			{
				Severity:    grantview.SeverityMedium,
				Category:    "Risk Management",
				Description: "Contingency plans are mentioned but not detailed. What specific actions will be taken if recruitment falls short or equipment fails?",
			},
			{
				Severity:    grantview.SeverityLow,
				Category:    "References",
				Description: "Several key recent publications (2023-2024) in the field are not cited, suggesting the literature review may not be fully current.",
			},
			{
				Severity:    grantview.SeverityLow,
				Category:    "Dissemination",
				Description: "Open access publication strategy is mentioned but specific journals or repositories are not identified.",
			},
		},
		Recommendations: []grantview.Recommendation{
			{Priority: grantview.PriorityHigh, Recommendation: "Provide itemized equipment list with vendor quotes and detailed justification for each item explaining its necessity for the proposed research."},
			{Priority: grantview.PriorityHigh, Recommendation: "Include statistical power analysis showing that proposed sample size is adequate to detect effects of the anticipated magnitude with 80% power."},
			{Priority: grantview.PriorityHigh, Recommendation: "Revise timeline for Milestone 3 to allow 9-10 months for data collection and analysis, or provide strong justification for compressed timeline."},
			{Priority: grantview.PriorityMedium, Recommendation: "Develop detailed contingency plans with specific trigger points and alternative strategies for common research challenges."},
			{Priority: grantview.PriorityMedium, Recommendation: "Expand the literature review to include recent 2023-2024 publications that demonstrate current state of the field."},
			{Priority: grantview.PriorityLow, Recommendation: "Specify target journals for publication and data repositories for sharing results to strengthen open science commitment."},
			{Priority: grantview.PriorityLow, Recommendation: "Consider adding quarterly progress reports to the dissemination plan to maintain stakeholder engagement throughout the project."},
		},
	}
}

// BudgetAnalysis returns a consistent budget of $485,750 in six categories.
func BudgetAnalysis() grantview.BudgetAnalysis {
	return grantview.BudgetAnalysis{
		TotalBudget: 485750,
		Breakdown: []grantview.BudgetItem{
			{Category: "Personnel", Amount: 245000, Percentage: 50.4},
			{Category: "Equipment", Amount: 125000, Percentage: 25.7},
			{Category: "Supplies", Amount: 45000, Percentage: 9.3},
			{Category: "Travel", Amount: 28000, Percentage: 5.8},
			{Category: "Publication Costs", Amount: 12750, Percentage: 2.6},
			{Category: "Other Direct Costs", Amount: 30000, Percentage: 6.2},
		},
		Flags: []grantview.BudgetFlag{
			{Type: grantview.FlagWarning, Message: "Equipment costs (25.7%) are higher than typical NIH averages (15-20%). Ensure detailed justification is provided."},
			{Type: grantview.FlagInfo, Message: "Personnel costs (50.4%) are within acceptable range for research projects."},
			{Type: grantview.FlagWarning, Message: "Total budget ($485,750) is approaching the maximum allowed ($500,000). Consider if any costs can be optimized."},
		},
		Summary: "The budget is generally well-structured with personnel costs at an appropriate level. " +
			"However, equipment costs require additional justification. Travel and publication budgets appear reasonable. " +
			"Total budget utilizes 97% of available funding.",
	}
}
