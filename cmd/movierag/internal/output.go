package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/paulowiz/genai-fundamentals/internal/graphrag"
	"github.com/paulowiz/genai-fundamentals/internal/types"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	// FormatText is human-readable text output
	FormatText OutputFormat = "text"
	// FormatJSON is structured JSON output
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat validates a --output value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", NewCLIError(ExitUsage, fmt.Sprintf("invalid output format %q (must be text or json)", s))
	}
}

// HealthCheck is one named component status.
type HealthCheck struct {
	Name   string             `json:"name"`
	Status types.HealthStatus `json:"status"`
}

// Formatter renders command results.
type Formatter interface {
	// PrintAnswer prints an answer and, when present, its context records.
	PrintAnswer(answer *graphrag.Answer) error
	// PrintHealth prints component health checks.
	PrintHealth(checks []HealthCheck) error
	// PrintJSON prints arbitrary data as JSON
	PrintJSON(data any) error
}

// NewFormatter returns the formatter for format, writing to w.
func NewFormatter(format OutputFormat, w io.Writer) Formatter {
	if format == FormatJSON {
		return NewJSONFormatter(w)
	}
	return NewTextFormatter(w)
}

// TextFormatter implements Formatter for human-readable text output
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new TextFormatter writing to the given writer
func NewTextFormatter(w io.Writer) *TextFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &TextFormatter{writer: w}
}

// PrintAnswer prints the answer text followed by a CONTEXT: list with one
// record per line.
func (f *TextFormatter) PrintAnswer(answer *graphrag.Answer) error {
	if _, err := fmt.Fprintln(f.writer, answer.Text); err != nil {
		return err
	}
	if answer.Context == nil {
		return nil
	}

	if _, err := fmt.Fprintln(f.writer, "\n"+color.New(color.Bold).Sprint("CONTEXT:")); err != nil {
		return err
	}
	if len(answer.Context) == 0 {
		_, err := fmt.Fprintln(f.writer, "  (no records)")
		return err
	}
	for i, record := range answer.Context {
		if _, err := fmt.Fprintf(f.writer, "  %d. %s\n", i+1, record.String()); err != nil {
			return err
		}
	}
	return nil
}

// PrintHealth prints a table using text/tabwriter for aligned columns
func (f *TextFormatter) PrintHealth(checks []HealthCheck) error {
	tw := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	if _, err := fmt.Fprintln(tw, "COMPONENT\tSTATE\tMESSAGE"); err != nil {
		return err
	}
	for _, check := range checks {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", check.Name, formatState(check.Status.State), check.Status.Message); err != nil {
			return err
		}
	}
	return nil
}

// formatState returns a color-coded health state for terminal output
func formatState(state types.HealthState) string {
	return getStateColor(state).Sprint(state)
}

// getStateColor returns the appropriate color for a health state
func getStateColor(state types.HealthState) *color.Color {
	switch state {
	case types.HealthStateHealthy:
		return color.New(color.FgGreen)
	case types.HealthStateDegraded:
		return color.New(color.FgYellow)
	case types.HealthStateUnhealthy:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.Reset)
	}
}

// PrintJSON prints data as formatted JSON (for text output with JSON content)
func (f *TextFormatter) PrintJSON(data any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// JSONFormatter implements Formatter for structured JSON output
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSONFormatter writing to the given writer
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONFormatter{writer: w}
}

// PrintAnswer encodes the answer as one JSON document.
func (f *JSONFormatter) PrintAnswer(answer *graphrag.Answer) error {
	return f.PrintJSON(answer)
}

// PrintHealth encodes the checks with an overall healthy flag.
func (f *JSONFormatter) PrintHealth(checks []HealthCheck) error {
	healthy := true
	for _, check := range checks {
		if !check.Status.IsHealthy() {
			healthy = false
		}
	}
	return f.PrintJSON(map[string]any{
		"healthy": healthy,
		"checks":  checks,
	})
}

// PrintJSON prints data as formatted JSON
func (f *JSONFormatter) PrintJSON(data any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
