package headless

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/entrhq/tilted/pkg/controller"
)

// ExecutionSummary describes one script run
type ExecutionSummary struct {
	Status    string       `json:"status"`
	StartTime time.Time    `json:"start_time"`
	EndTime   time.Time    `json:"end_time"`
	Duration  string       `json:"duration"`
	Total     int          `json:"total"`
	Played    int          `json:"played"`
	Failed    int          `json:"failed"`
	Lines     []LineRecord `json:"lines"`
	Error     string       `json:"error,omitempty"`
}

// LineRecord is the outcome of one script line
type LineRecord struct {
	Input   string `json:"input"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Elapsed string `json:"elapsed,omitempty"`
}

func (s *ExecutionSummary) record(line string, r controller.Result) {
	rec := LineRecord{
		Input:   line,
		Kind:    r.Kind.String(),
		Message: r.Message,
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	if r.Elapsed > 0 {
		rec.Elapsed = r.Elapsed.Round(time.Millisecond).String()
	}

	switch {
	case r.IsError():
		s.Failed++
	case r.Kind == controller.KindMove:
		s.Played++
	}
	s.Lines = append(s.Lines, rec)
}

// ArtifactWriter handles writing execution artifacts
type ArtifactWriter struct {
	outputDir string
}

// NewArtifactWriter creates a new artifact writer
func NewArtifactWriter(outputDir string) *ArtifactWriter {
	return &ArtifactWriter{
		outputDir: outputDir,
	}
}

// WriteAll writes all artifact formats
func (w *ArtifactWriter) WriteAll(summary *ExecutionSummary) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := w.WriteExecutionJSON(summary); err != nil {
		return fmt.Errorf("failed to write execution JSON: %w", err)
	}

	if err := w.WriteSummaryMarkdown(summary); err != nil {
		return fmt.Errorf("failed to write summary markdown: %w", err)
	}

	return nil
}

// WriteExecutionJSON writes the full execution summary as JSON
func (w *ArtifactWriter) WriteExecutionJSON(summary *ExecutionSummary) error {
	path := filepath.Join(w.outputDir, "execution.json")

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal execution summary: %w", err)
	}

	if writeErr := os.WriteFile(path, data, 0600); writeErr != nil {
		return fmt.Errorf("failed to write execution JSON: %w", writeErr)
	}

	return nil
}

// WriteSummaryMarkdown writes a human-readable markdown summary
func (w *ArtifactWriter) WriteSummaryMarkdown(summary *ExecutionSummary) error {
	path := filepath.Join(w.outputDir, "summary.md")

	var md strings.Builder

	md.WriteString("# tilted Script Summary\n\n")
	md.WriteString(fmt.Sprintf("**Status:** %s\n\n", summary.Status))
	md.WriteString(fmt.Sprintf("**Started:** %s\n\n", summary.StartTime.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Duration:** %s\n\n", summary.Duration))
	md.WriteString(fmt.Sprintf("**Played:** %d of %d (%d failed)\n\n", summary.Played, summary.Total, summary.Failed))

	if summary.Error != "" {
		md.WriteString(fmt.Sprintf("❌ **Error:** %s\n\n", summary.Error))
	}

	md.WriteString("## Lines\n\n")
	md.WriteString("| # | Input | Result | Message |\n")
	md.WriteString("|---|---|---|---|\n")
	for i, line := range summary.Lines {
		md.WriteString(fmt.Sprintf("| %d | `%s` | %s | %s |\n", i+1, line.Input, line.Kind, line.Message))
	}

	if writeErr := os.WriteFile(path, []byte(md.String()), 0600); writeErr != nil {
		return fmt.Errorf("failed to write summary markdown: %w", writeErr)
	}
	return nil
}
