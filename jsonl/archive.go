// Package jsonl stores evaluations in JSON Lines files for offline viewing.
package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/grantview"
)

// Compile-time interface verification.
var _ grantview.EvaluationArchive = (*Archive)(nil)

// maxLineSize bounds a single record; full critiques can be long.
const maxLineSize = 4 * 1024 * 1024

// Archive is a JSONL file of exported evaluations, one record per line.
// When an id appears more than once the last line wins.
type Archive struct {
	path string
}

// NewArchive creates an Archive backed by the file at path.
func NewArchive(path string) *Archive {
	return &Archive{path: path}
}

// Path returns the archive file path.
func (a *Archive) Path() string {
	return a.path
}

// Load reads every record in file order. Returns empty slice if file doesn't exist.
func (a *Archive) Load() ([]grantview.Evaluation, error) {
	f, err := os.Open(a.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var evaluations []grantview.Evaluation
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var e grantview.Evaluation
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		evaluations = append(evaluations, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return evaluations, nil
}

// Append writes evaluations to the end of the archive, creating parent
// directories if needed. The batch is written whole or not at all.
func (a *Archive) Append(evaluations ...grantview.Evaluation) error {
	var buf bytes.Buffer
	for i, e := range evaluations {
		if e.ID == "" {
			return fmt.Errorf("record %d: cannot archive an evaluation without an id", i)
		}
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}
	if buf.Len() == 0 {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FetchEvaluation returns the latest archived record with the given id.
func (a *Archive) FetchEvaluation(_ context.Context, id string) (*grantview.Evaluation, error) {
	evaluations, err := a.Load()
	if err != nil {
		return nil, err
	}
	for i := len(evaluations) - 1; i >= 0; i-- {
		if evaluations[i].ID == id {
			e := evaluations[i]
			return &e, nil
		}
	}
	return nil, fmt.Errorf("evaluation %q in %s: %w", id, a.path, grantview.ErrNotFound)
}

// ListEvaluations returns the latest record for each id, newest first.
func (a *Archive) ListEvaluations(_ context.Context) ([]grantview.Evaluation, error) {
	evaluations, err := a.Load()
	if err != nil {
		return nil, err
	}

	latest := make(map[string]int, len(evaluations))
	for i, e := range evaluations {
		latest[e.ID] = i
	}
	list := make([]grantview.Evaluation, 0, len(latest))
	for i, e := range evaluations {
		if latest[e.ID] == i {
			list = append(list, e)
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt.Time)
	})
	return list, nil
}
