package bubbletea

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/grantview"
)

// NavigateMsg asks the App to mount the screen for Route. Notice, when set,
// is shown once on the new screen.
type NavigateMsg struct {
	Route  grantview.Route
	Notice string
}

func navigate(route grantview.Route, notice string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Route: route, Notice: notice}
	}
}

var lastScreenID atomic.Int64

// nextScreenID returns an identifier unique to one mounted screen.
func nextScreenID() int64 {
	return lastScreenID.Add(1)
}

// scopedMsg is the result of work started by a screen. The App drops scoped
// messages whose screen has been unmounted.
type scopedMsg interface {
	screenID() int64
}

type scope struct {
	screen int64
}

func (s scope) screenID() int64 { return s.screen }

type submittedMsg struct {
	scope
	evaluationID string
	err          error
}

type stageMsg struct {
	scope
	attempt int
	stage   int
}

type evaluationLoadedMsg struct {
	scope
	evaluation *grantview.Evaluation
	err        error
}

type reportLinkMsg struct {
	scope
	url     string
	copied  bool
	copyErr error
	err     error
}

type settingsLoadedMsg struct {
	scope
	settings *grantview.Settings
	err      error
}

type settingsSavedMsg struct {
	scope
	settings *grantview.Settings
	err      error
}

type clearMessageMsg struct {
	scope
	seq int
}
