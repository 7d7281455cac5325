package bubbletea_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/grantview"
	"github.com/fwojciec/grantview/bubbletea"
	"github.com/fwojciec/grantview/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWait = 50 * time.Millisecond

func newUpload(t *testing.T, submit func(context.Context, grantview.Document) (string, error)) bubbletea.UploadModel {
	t.Helper()
	svc := &mock.EvaluationService{SubmitFn: submit}
	m := bubbletea.NewUploadModel(svc, extensionDetector(), testOptions()...)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(bubbletea.UploadModel)
}

// stage types path into the path input and confirms it.
func stage(m tea.Model, path string) bubbletea.UploadModel {
	m, _ = m.Update(keyRunes("/"))
	m = typeText(m, path)
	m, _ = m.Update(keyType(tea.KeyEnter))
	return m.(bubbletea.UploadModel)
}

func TestUploadModel_StartsEmpty(t *testing.T) {
	t.Parallel()

	m := newUpload(t, nil)

	assert.Equal(t, bubbletea.UploadEmpty, m.State())
	_, ok := m.Document()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "PDF or DOCX")
}

func TestUploadModel_StagesAllowedFile(t *testing.T) {
	t.Parallel()

	path := writeDocument(t, "proposal.pdf", 2202010)
	m := stage(newUpload(t, nil), path)

	require.Equal(t, bubbletea.UploadFileSelected, m.State())
	doc, ok := m.Document()
	require.True(t, ok)
	assert.Equal(t, "proposal.pdf", doc.Name)
	assert.Equal(t, grantview.MIMETypePDF, doc.MIMEType)

	view := m.View()
	assert.Contains(t, view, "proposal.pdf")
	assert.Contains(t, view, "2.10 MB")
}

func TestUploadModel_RejectsDisallowedFile(t *testing.T) {
	t.Parallel()

	t.Run("from empty", func(t *testing.T) {
		t.Parallel()

		path := writeDocument(t, "notes.txt", 10)
		m := stage(newUpload(t, nil), path)

		assert.Equal(t, bubbletea.UploadEmpty, m.State())
		_, ok := m.Document()
		assert.False(t, ok)
	})

	t.Run("keeps the staged file", func(t *testing.T) {
		t.Parallel()

		pdf := writeDocument(t, "proposal.pdf", 100)
		txt := writeDocument(t, "notes.txt", 10)
		m := stage(newUpload(t, nil), pdf)
		m = stage(m, txt)

		assert.Equal(t, bubbletea.UploadFileSelected, m.State())
		doc, _ := m.Document()
		assert.Equal(t, "proposal.pdf", doc.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		m := stage(newUpload(t, nil), "/does/not/exist.pdf")

		assert.Equal(t, bubbletea.UploadEmpty, m.State())
	})
}

func TestUploadModel_ReplaceIsLastWriteWins(t *testing.T) {
	t.Parallel()

	first := writeDocument(t, "first.pdf", 100)
	second := writeDocument(t, "second.docx", 200)

	m := stage(stage(newUpload(t, nil), first), second)

	doc, _ := m.Document()
	assert.Equal(t, "second.docx", doc.Name)
	assert.Equal(t, grantview.MIMETypeDOCX, doc.MIMEType)
}

func TestUploadModel_PastedPathIsStaged(t *testing.T) {
	t.Parallel()

	path := writeDocument(t, "dropped.pdf", 100)
	m := newUpload(t, nil)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("'" + path + "'"), Paste: true})
	m = updated.(bubbletea.UploadModel)

	assert.Equal(t, bubbletea.UploadFileSelected, m.State())
	doc, _ := m.Document()
	assert.Equal(t, "dropped.pdf", doc.Name)
}

func TestUploadModel_RemoveFile(t *testing.T) {
	t.Parallel()

	path := writeDocument(t, "proposal.pdf", 100)
	m := stage(newUpload(t, nil), path)

	updated, _ := m.Update(keyRunes("x"))
	m = updated.(bubbletea.UploadModel)

	assert.Equal(t, bubbletea.UploadEmpty, m.State())
	_, ok := m.Document()
	assert.False(t, ok)
}

func TestUploadModel_EnterWithoutFileDoesNothing(t *testing.T) {
	t.Parallel()

	m := newUpload(t, func(context.Context, grantview.Document) (string, error) {
		t.Fatal("submit must not be called without a staged file")
		return "", nil
	})

	updated, cmd := m.Update(keyType(tea.KeyEnter))

	assert.Equal(t, bubbletea.UploadEmpty, updated.(bubbletea.UploadModel).State())
	assert.Nil(t, cmd)
}

func TestUploadModel_SubmitSuccessNavigatesToResults(t *testing.T) {
	t.Parallel()

	path := writeDocument(t, "proposal.pdf", 100)
	var submitted grantview.Document
	m := stage(newUpload(t, func(_ context.Context, doc grantview.Document) (string, error) {
		submitted = doc
		return "ev_123", nil
	}), path)

	updated, cmd := m.Update(keyType(tea.KeyEnter))
	m = updated.(bubbletea.UploadModel)
	require.Equal(t, bubbletea.UploadSubmitting, m.State())
	assert.Contains(t, m.View(), "Analyzing Document")

	_, navs := settle(t, m, cmd, 10, testWait)

	require.Len(t, navs, 1)
	assert.Equal(t, grantview.ResultsRoute("ev_123"), navs[0].Route)
	assert.Equal(t, "proposal.pdf", submitted.Name)
}

func TestUploadModel_SubmitFailureReturnsToFileSelected(t *testing.T) {
	t.Parallel()

	path := writeDocument(t, "proposal.pdf", 100)
	m := stage(newUpload(t, func(context.Context, grantview.Document) (string, error) {
		return "", errors.New("connection refused")
	}), path)

	updated, cmd := m.Update(keyType(tea.KeyEnter))
	final, navs := settle(t, updated, cmd, 10, testWait)
	m = final.(bubbletea.UploadModel)

	assert.Empty(t, navs)
	assert.Equal(t, bubbletea.UploadFileSelected, m.State())
	assert.Equal(t, "Evaluation failed. Please try again.", m.Failure())
	doc, ok := m.Document()
	require.True(t, ok)
	assert.Equal(t, "proposal.pdf", doc.Name)
	assert.Contains(t, m.View(), "Evaluation failed. Please try again.")
}

func TestUploadModel_StagesAdvanceAndHoldAtLast(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	path := writeDocument(t, "proposal.pdf", 100)
	m := stage(newUpload(t, func(context.Context, grantview.Document) (string, error) {
		<-release
		return "", errors.New("released")
	}), path)

	updated, cmd := m.Update(keyType(tea.KeyEnter))
	assert.Equal(t, 0, updated.(bubbletea.UploadModel).Stage())

	final, _ := settle(t, updated, cmd, 12, testWait)
	m = final.(bubbletea.UploadModel)

	assert.Equal(t, bubbletea.UploadSubmitting, m.State())
	assert.Equal(t, 3, m.Stage())
	assert.Contains(t, m.View(), "Finalizing Evaluation")
}

func TestUploadModel_RetryIgnoresStagesOfFailedAttempt(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	var calls atomic.Int32
	svc := &mock.EvaluationService{
		SubmitFn: func(context.Context, grantview.Document) (string, error) {
			if calls.Add(1) == 1 {
				return "", errors.New("connection refused")
			}
			<-release
			return "ev", nil
		},
	}
	stages := []bubbletea.Stage{
		{Label: "Analyzing Document", Duration: 20 * time.Millisecond},
		{Label: "Generating Insights", Duration: time.Hour},
		{Label: "Computing Scores", Duration: time.Hour},
		{Label: "Finalizing Evaluation", Duration: time.Hour},
	}
	upload := bubbletea.NewUploadModel(svc, extensionDetector(), testOptions(bubbletea.WithStages(stages...))...)
	sized, _ := upload.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m := stage(sized, writeDocument(t, "proposal.pdf", 100))

	var model tea.Model
	model, cmd := m.Update(keyType(tea.KeyEnter))
	msgs := runCmd(t, cmd, 80*time.Millisecond)
	require.Len(t, msgs, 3, "failed submission, spinner tick and first stage tick")

	retried := false
	for _, msg := range msgs {
		model, _ = model.Update(msg)
		if !retried && model.(bubbletea.UploadModel).State() == bubbletea.UploadFileSelected {
			model, _ = model.Update(keyType(tea.KeyEnter))
			retried = true
		}
	}

	m = model.(bubbletea.UploadModel)
	require.True(t, retried)
	assert.Equal(t, bubbletea.UploadSubmitting, m.State())
	assert.Equal(t, 0, m.Stage())
}

func TestUploadModel_IgnoresKeysWhileSubmitting(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	path := writeDocument(t, "proposal.pdf", 100)
	m := stage(newUpload(t, func(context.Context, grantview.Document) (string, error) {
		<-release
		return "ev", nil
	}), path)

	updated, _ := m.Update(keyType(tea.KeyEnter))
	updated, _ = updated.Update(keyRunes("x"))

	assert.Equal(t, bubbletea.UploadSubmitting, updated.(bubbletea.UploadModel).State())
}

func TestUploadState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "empty", bubbletea.UploadEmpty.String())
	assert.Equal(t, "file-selected", bubbletea.UploadFileSelected.String())
	assert.Equal(t, "submitting", bubbletea.UploadSubmitting.String())
}

func TestDefaultStages(t *testing.T) {
	t.Parallel()

	stages := bubbletea.DefaultStages()

	require.Len(t, stages, 4)
	assert.Equal(t, "Analyzing Document", stages[0].Label)
	assert.Equal(t, 1000*time.Millisecond, stages[0].Duration)
	assert.Equal(t, 1200*time.Millisecond, stages[1].Duration)
	assert.Equal(t, "Finalizing Evaluation", stages[3].Label)
	assert.Equal(t, 800*time.Millisecond, stages[3].Duration)
}
