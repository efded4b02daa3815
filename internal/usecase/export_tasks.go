package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/runoshun/git-board/internal/domain"
	"gopkg.in/yaml.v3"
)

// ExportFormat selects the output of ExportTasks.
type ExportFormat string

// Export formats.
const (
	ExportCSV      ExportFormat = "csv"
	ExportMarkdown ExportFormat = "markdown"
	ExportJSON     ExportFormat = "json"
	ExportYAML     ExportFormat = "yaml"
)

// ExportFormats lists the accepted format names.
func ExportFormats() []ExportFormat {
	return []ExportFormat{ExportCSV, ExportMarkdown, ExportJSON, ExportYAML}
}

// ParseExportFormat parses a format name, accepting "md" and "yml" as aliases.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return ExportCSV, nil
	case "markdown", "md":
		return ExportMarkdown, nil
	case "json":
		return ExportJSON, nil
	case "yaml", "yml":
		return ExportYAML, nil
	default:
		return "", fmt.Errorf("%q (want csv, markdown, json or yaml): %w", s, domain.ErrInvalidExportFormat)
	}
}

const exportTimeLayout = "2006-01-02 15:04:05"

// ExportTasksInput contains the parameters for exporting tasks.
type ExportTasksInput struct {
	Format ExportFormat
}

// ExportTasksOutput contains the rendered export.
type ExportTasksOutput struct {
	Content string
	Count   int // Number of exported tasks
}

// exportRecord is one task in the json and yaml exports.
// Fields are ordered to minimize memory padding.
type exportRecord struct {
	Created     time.Time `json:"created" yaml:"created"`
	Updated     time.Time `json:"updated" yaml:"updated"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Column      string    `json:"column" yaml:"column"`
	Branch      string    `json:"branch,omitempty" yaml:"branch,omitempty"`
	PR          string    `json:"pr,omitempty" yaml:"pr,omitempty"`
	ID          int64     `json:"id" yaml:"id"`
	PRFallback  bool      `json:"prFallback,omitempty" yaml:"prFallback,omitempty"`
}

// ExportTasks renders every task in a machine- or human-readable format.
type ExportTasks struct {
	store domain.Store
}

// NewExportTasks creates a new ExportTasks use case.
func NewExportTasks(store domain.Store) *ExportTasks {
	return &ExportTasks{store: store}
}

// Execute renders the export.
func (uc *ExportTasks) Execute(ctx context.Context, in ExportTasksInput) (*ExportTasksOutput, error) {
	format, err := ParseExportFormat(string(in.Format))
	if err != nil {
		return nil, err
	}
	cols, err := uc.store.ListColumns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	tasks, err := uc.store.ListTasks(ctx, domain.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	var content string
	switch format {
	case ExportCSV:
		content = renderCSV(tasks, cols)
	case ExportMarkdown:
		content = renderMarkdown(tasks, cols)
	case ExportJSON:
		data, err := json.MarshalIndent(toRecords(tasks, cols), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		content = string(data) + "\n"
	case ExportYAML:
		data, err := yaml.Marshal(toRecords(tasks, cols))
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		content = string(data)
	}
	return &ExportTasksOutput{Content: content, Count: len(tasks)}, nil
}

func toRecords(tasks []*domain.Task, cols []domain.Column) []exportRecord {
	records := make([]exportRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, exportRecord{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Column:      domain.ColumnName(cols, t.ColumnID),
			Created:     t.Created.UTC(),
			Updated:     t.Updated.UTC(),
			Branch:      t.BranchName,
			PR:          t.PRURL,
			PRFallback:  t.PRFallback,
		})
	}
	return records
}

func renderCSV(tasks []*domain.Task, cols []domain.Column) string {
	var b strings.Builder
	b.WriteString("ID,Title,Description,Column,Created,Updated,Branch,PR\n")
	for _, t := range tasks {
		fields := []string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			t.Description,
			domain.ColumnName(cols, t.ColumnID),
			t.Created.UTC().Format(exportTimeLayout),
			t.Updated.UTC().Format(exportTimeLayout),
			t.BranchName,
			t.PRURL,
		}
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeCSV(f))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// escapeCSV quotes a field containing a comma, quote, carriage return or
// newline and doubles embedded quotes. CRLF line breaks are written as LF, the
// form CSV readers hand back for quoted line breaks.
func escapeCSV(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if !strings.ContainsAny(s, ",\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func renderMarkdown(tasks []*domain.Task, cols []domain.Column) string {
	var b strings.Builder
	b.WriteString("# ProjectBoard Export\n\n")
	for _, c := range cols {
		var inColumn []*domain.Task
		for _, t := range tasks {
			if t.ColumnID == c.ID {
				inColumn = append(inColumn, t)
			}
		}
		fmt.Fprintf(&b, "## %s (%d)\n\n", c.Name, len(inColumn))
		for _, t := range inColumn {
			fmt.Fprintf(&b, "- **#%d**: %s\n", t.ID, t.Title)
			if t.Description != "" {
				fmt.Fprintf(&b, "  - %s\n", t.Description)
			}
			if t.BranchName != "" {
				fmt.Fprintf(&b, "  - Branch: `%s`\n", t.BranchName)
			}
			if t.PRURL != "" {
				fmt.Fprintf(&b, "  - PR: %s\n", t.PRURL)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}
