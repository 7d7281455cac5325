package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fwojciec/grantview"
	"github.com/fwojciec/grantview/bubbletea"
	gvhttp "github.com/fwojciec/grantview/http"
	"golang.org/x/sync/errgroup"
)

// ErrContractViolated is returned by Verify when the budget analysis is inconsistent.
var ErrContractViolated = errors.New("budget analysis violates the backend contract")

// ErrNothingToUpdate is returned by SaveSettings for an empty patch.
var ErrNothingToUpdate = errors.New("nothing to update: pass --max-budget or --chunk-size")

// exportConcurrency bounds parallel fetches during export.
const exportConcurrency = 4

// HealthChecker reports whether the backend is up.
type HealthChecker interface {
	Ping(ctx context.Context) (*gvhttp.Health, error)
}

// App encapsulates the command logic for testing.
type App struct {
	Service          grantview.EvaluationService // Backend client
	Detector         grantview.MIMEDetector      // Content sniffing for submitted files
	Archive          grantview.EvaluationArchive // Local archive for export and view
	Presenter        grantview.Presenter         // Terminal UI against the backend
	ArchivePresenter grantview.Presenter         // Terminal UI against the archive
	Clipboard        grantview.Clipboard         // Optional; report links are copied here
	Tokenizer        grantview.Tokenizer         // Optional; highlights JSON output
	Health           HealthChecker
	Render           bubbletea.RenderOptions
	Output           io.Writer
	Logger           *slog.Logger
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

// Run opens the terminal UI at route.
func (a *App) Run(ctx context.Context, route grantview.Route) error {
	return a.Presenter.Present(ctx, route)
}

// Submit validates the file at path, submits it and prints the new id.
func (a *App) Submit(ctx context.Context, path string) (string, error) {
	doc, err := grantview.NewDocument(path, a.Detector)
	if err != nil {
		return "", err
	}
	a.logger().Info("submitting document",
		slog.String("name", doc.Name),
		slog.String("mime", doc.MIMEType),
		slog.Int64("size", doc.Size))

	id, err := a.Service.Submit(ctx, doc)
	if err != nil {
		return "", err
	}
	fmt.Fprintln(a.Output, id)
	return id, nil
}

// Show prints one tab of an evaluation, or the whole record as JSON.
func (a *App) Show(ctx context.Context, id string, tab bubbletea.Tab, asJSON bool) error {
	e, err := a.Service.FetchEvaluation(ctx, id)
	if err != nil {
		return err
	}

	if asJSON {
		data, err := json.MarshalIndent(e, "", "  ")
		if err != nil {
			return err
		}
		out := string(data)
		if a.Tokenizer != nil {
			out = bubbletea.HighlightJSON(out, a.Tokenizer, a.Render.Renderer)
		}
		fmt.Fprintln(a.Output, out)
		return nil
	}

	header, err := bubbletea.RenderHeader(*e, a.Render)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Output, header)
	fmt.Fprintln(a.Output)
	fmt.Fprintln(a.Output, bubbletea.RenderTab(*e, tab, a.Render))
	return nil
}

// List prints a table of evaluations, newest first.
func (a *App) List(ctx context.Context) error {
	list, err := a.Service.ListEvaluations(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.Output, "No evaluations")
		return nil
	}
	fmt.Fprintln(a.Output, evaluationTable(list, a.Render.Renderer))
	return nil
}

func evaluationTable(list []grantview.Evaluation, renderer *lipgloss.Renderer) string {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	header := renderer.NewStyle().Bold(true).Padding(0, 1)
	cell := renderer.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{
			e.ID,
			string(e.Decision),
			grantview.FormatOverallScore(e.OverallScore),
			e.FileName,
			grantview.FormatDate(e.CreatedAt),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(renderer.NewStyle()).
		Headers("ID", "DECISION", "SCORE", "FILE", "CREATED").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}

// ShowSettings prints the backend settings.
func (a *App) ShowSettings(ctx context.Context) error {
	s, err := a.Service.FetchSettings(ctx)
	if err != nil {
		return err
	}
	a.printSettings(*s)
	return nil
}

// SaveSettings sends the fields present in patch and prints the result.
func (a *App) SaveSettings(ctx context.Context, patch grantview.SettingsPatch) error {
	if patch.Empty() {
		return ErrNothingToUpdate
	}
	s, err := a.Service.SaveSettings(ctx, patch)
	if err != nil {
		return err
	}
	a.printSettings(*s)
	return nil
}

func (a *App) printSettings(s grantview.Settings) {
	fmt.Fprintf(a.Output, "Maximum Allowable Budget: %s\n", grantview.FormatCurrency(float64(s.MaxBudget)))
	fmt.Fprintf(a.Output, "Document Chunk Size:      %s\n", grantview.FormatCount(s.ChunkSize))
	if !s.UpdatedAt.IsZero() {
		fmt.Fprintf(a.Output, "Updated:                  %s\n", grantview.FormatDate(s.UpdatedAt))
	}
}

// Report prints the report link for id. With copy set the link is also put
// on the clipboard; with out set the report is downloaded there. When out is
// a directory the backend's file name is used.
func (a *App) Report(ctx context.Context, id string, copyLink bool, out string) error {
	url, err := a.Service.ReportURL(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Output, url)

	if copyLink {
		if a.Clipboard == nil {
			a.logger().Warn("clipboard is not available")
		} else if err := a.Clipboard.Copy(url); err != nil {
			a.logger().Warn("copy report link", slog.String("error", err.Error()))
		} else {
			fmt.Fprintln(a.Output, "Copied to clipboard")
		}
	}

	if out == "" {
		return nil
	}
	var buf bytes.Buffer
	name, err := a.Service.DownloadReport(ctx, id, &buf)
	if err != nil {
		return err
	}
	path := out
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		path = filepath.Join(out, filepath.Base(name))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	fmt.Fprintf(a.Output, "Saved %s\n", path)
	return nil
}

// Export fetches the evaluations concurrently and appends them to the archive
// in the order given. Nothing is written when any fetch fails.
func (a *App) Export(ctx context.Context, ids []string) error {
	evaluations := make([]grantview.Evaluation, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(exportConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			e, err := a.Service.FetchEvaluation(gctx, id)
			if err != nil {
				return fmt.Errorf("export %s: %w", id, err)
			}
			evaluations[i] = *e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := a.Archive.Append(evaluations...); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(a.Output, "Exported %d evaluation(s)\n", len(evaluations))
	return nil
}

// View opens an archived evaluation in the terminal UI without the backend.
func (a *App) View(ctx context.Context, id string) error {
	if _, err := a.Archive.FetchEvaluation(ctx, id); err != nil {
		return err
	}
	return a.ArchivePresenter.Present(ctx, grantview.ResultsRoute(id))
}

// Verify checks the budget analysis of id against the backend contract and
// prints every violation.
func (a *App) Verify(ctx context.Context, id string) error {
	e, err := a.Service.FetchEvaluation(ctx, id)
	if err != nil {
		return err
	}
	violations := grantview.CheckBudgetContract(e.BudgetAnalysis, grantview.DefaultBudgetTolerance)
	if len(violations) == 0 {
		fmt.Fprintf(a.Output, "%s: budget analysis is consistent\n", id)
		return nil
	}
	for _, v := range violations {
		fmt.Fprintf(a.Output, "%s: %s\n", id, v.Error())
	}
	return fmt.Errorf("%s: %d violation(s): %w", id, len(violations), ErrContractViolated)
}

// Status pings the backend and prints its health report.
func (a *App) Status(ctx context.Context) error {
	h, err := a.Health.Ping(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Output, "%s %s: %s (database: %s)\n", h.Service, h.Version, h.Status, h.MongoDB)
	return nil
}
