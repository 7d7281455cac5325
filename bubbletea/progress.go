package bubbletea

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Stage is one step of the submission progress indicator. The stages are
// cosmetic: they advance on a timer, not on backend progress.
type Stage struct {
	Label    string
	Duration time.Duration
}

// DefaultStages returns the four evaluation stages.
func DefaultStages() []Stage {
	return []Stage{
		{Label: "Analyzing Document", Duration: 1000 * time.Millisecond},
		{Label: "Generating Insights", Duration: 1200 * time.Millisecond},
		{Label: "Computing Scores", Duration: 1000 * time.Millisecond},
		{Label: "Finalizing Evaluation", Duration: 800 * time.Millisecond},
	}
}

// stageProgress is the fraction of the bar filled while stage is current.
func stageProgress(stage, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(stage+1) / float64(total)
}

// advanceStage schedules the move past stage for the given submission attempt.
// The last stage holds until the submission returns.
func advanceStage(screen int64, attempt int, stages []Stage, stage int) tea.Cmd {
	if stage >= len(stages)-1 {
		return nil
	}
	return tea.Tick(stages[stage].Duration, func(time.Time) tea.Msg {
		return stageMsg{scope: scope{screen: screen}, attempt: attempt, stage: stage}
	})
}
