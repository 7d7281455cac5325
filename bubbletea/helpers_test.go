package bubbletea_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/grantview"
	"github.com/fwojciec/grantview/bubbletea"
	"github.com/fwojciec/grantview/mock"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func asciiRenderer() *lipgloss.Renderer {
	return lipgloss.NewRenderer(nil, termenv.WithProfile(termenv.Ascii))
}

// fastStages keeps submission progress tests quick.
func fastStages() []bubbletea.Stage {
	return []bubbletea.Stage{
		{Label: "Analyzing Document", Duration: time.Millisecond},
		{Label: "Generating Insights", Duration: time.Millisecond},
		{Label: "Computing Scores", Duration: time.Millisecond},
		{Label: "Finalizing Evaluation", Duration: time.Millisecond},
	}
}

func testOptions(extra ...bubbletea.Option) []bubbletea.Option {
	return append([]bubbletea.Option{
		bubbletea.WithRenderer(asciiRenderer()),
		bubbletea.WithStages(fastStages()...),
	}, extra...)
}

// runCmd executes cmd, expanding batches, and returns the messages produced
// within wait. Commands still running after wait, such as timers, are dropped.
func runCmd(t *testing.T, cmd tea.Cmd, wait time.Duration) []tea.Msg {
	t.Helper()

	out := make(chan tea.Msg, 128)
	var wg sync.WaitGroup
	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					run(sub)
				}
				return
			}
			if msg != nil {
				out <- msg
			}
		}()
	}
	run(cmd)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	var msgs []tea.Msg
	deadline := time.After(wait)
	for {
		select {
		case msg := <-out:
			msgs = append(msgs, msg)
		case <-done:
			return drain(out, msgs)
		case <-deadline:
			return drain(out, msgs)
		}
	}
}

func drain(out chan tea.Msg, msgs []tea.Msg) []tea.Msg {
	for {
		select {
		case msg := <-out:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

// feed sends msgs to m in order and batches the resulting commands.
func feed(m tea.Model, msgs []tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, msg := range msgs {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// settle runs commands and feeds their messages back until nothing new arrives
// within wait, or rounds is exhausted. NavigateMsg values are collected
// instead of fed.
func settle(t *testing.T, m tea.Model, cmd tea.Cmd, rounds int, wait time.Duration) (tea.Model, []bubbletea.NavigateMsg) {
	t.Helper()
	var navs []bubbletea.NavigateMsg
	for i := 0; i < rounds && cmd != nil; i++ {
		var pending []tea.Msg
		for _, msg := range runCmd(t, cmd, wait) {
			if nav, ok := msg.(bubbletea.NavigateMsg); ok {
				navs = append(navs, nav)
				continue
			}
			pending = append(pending, msg)
		}
		if len(pending) == 0 {
			break
		}
		m, cmd = feed(m, pending)
	}
	return m, navs
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(keyRunes(string(r)))
	}
	return m
}

// writeDocument creates a file of the given size and returns its path.
func writeDocument(t *testing.T, name string, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(size))
	require.NoError(t, f.Close())
	return path
}

// extensionDetector classifies files by extension, standing in for content sniffing.
func extensionDetector() *mock.MIMEDetector {
	return &mock.MIMEDetector{
		DetectFileFn: func(path string) (string, error) {
			switch strings.ToLower(filepath.Ext(path)) {
			case ".pdf":
				return grantview.MIMETypePDF, nil
			case ".docx":
				return grantview.MIMETypeDOCX, nil
			}
			return "text/plain", nil
		},
	}
}
