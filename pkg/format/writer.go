package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Style selects how reports are rendered.
type Style string

const (
	StyleText Style = "text"
	StyleJSON Style = "json"
	StyleYAML Style = "yaml"
)

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleText, "":
		return StyleText, nil
	case StyleJSON:
		return StyleJSON, nil
	case StyleYAML, "yml":
		return StyleYAML, nil
	}
	return "", fmt.Errorf("unknown output style %q (must be text, json, or yaml)", s)
}

// Report is the outcome of solving one share document.
type Report struct {
	File      string           `json:"file" yaml:"file"`
	RunID     string           `json:"run,omitempty" yaml:"run,omitempty"`
	N         int              `json:"n" yaml:"n"`
	K         int              `json:"k" yaml:"k"`
	Shares    []ReportShare    `json:"shares,omitempty" yaml:"shares,omitempty"`
	Secret    string           `json:"secret,omitempty" yaml:"secret,omitempty"`
	Error     string           `json:"error,omitempty" yaml:"error,omitempty"`
	Agreement *ReportAgreement `json:"agreement,omitempty" yaml:"agreement,omitempty"`
}

// Failed reports whether the document could not be solved.
func (r *Report) Failed() bool {
	return r.Error != ""
}

// ReportShare is one share used for interpolation, in decimal.
type ReportShare struct {
	X string `json:"x" yaml:"x"`
	Y string `json:"y" yaml:"y"`
}

// ReportAgreement summarises a cross-check over k-subsets.
type ReportAgreement struct {
	Secret     string   `json:"secret" yaml:"secret"`
	Votes      int      `json:"votes" yaml:"votes"`
	Tried      int      `json:"tried" yaml:"tried"`
	Failed     int      `json:"failed" yaml:"failed"`
	Distinct   int      `json:"distinct" yaml:"distinct"`
	Unanimous  bool     `json:"unanimous" yaml:"unanimous"`
	Exhaustive bool     `json:"exhaustive" yaml:"exhaustive"`
	Suspects   []string `json:"suspects,omitempty" yaml:"suspects,omitempty"`
	Untested   []string `json:"untested,omitempty" yaml:"untested,omitempty"`
}

const rule = "===================================="

// Writer renders reports to an io.Writer.
type Writer struct {
	w     io.Writer
	style Style

	heading lipgloss.Style
	failure lipgloss.Style
}

// NewWriter creates a Writer for w. Colours are only used when w is a terminal.
func NewWriter(w io.Writer, style Style) *Writer {
	renderer := lipgloss.NewRenderer(w)
	return &Writer{
		w:       w,
		style:   style,
		heading: renderer.NewStyle().Bold(true),
		failure: renderer.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Write renders every report in order.
func (rw *Writer) Write(reports ...*Report) error {
	switch rw.style {
	case StyleJSON:
		enc := json.NewEncoder(rw.w)
		enc.SetIndent("", "  ")
		for _, r := range reports {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("failed to write json report: %w", err)
			}
		}
		return nil

	case StyleYAML:
		enc := yaml.NewEncoder(rw.w)
		enc.SetIndent(2)
		for _, r := range reports {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("failed to write yaml report: %w", err)
			}
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to write yaml report: %w", err)
		}
		return nil
	}

	for _, r := range reports {
		if err := rw.writeText(r); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

func (rw *Writer) writeText(r *Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "File: %s\n", r.File)

	if r.Failed() {
		fmt.Fprintf(&b, "%s\n", rw.failure.Render("Error: "+r.Error))
	} else {
		fmt.Fprintf(&b, "n = %d k = %d\n", r.N, r.K)
		b.WriteString("Shares used (x,y):\n")
		for _, s := range r.Shares {
			fmt.Fprintf(&b, "(%s, %s)\n", s.X, s.Y)
		}
		fmt.Fprintf(&b, "%s\n", rw.heading.Render("Constant C = "+r.Secret))
	}

	if a := r.Agreement; a != nil {
		fmt.Fprintf(&b, "Agreement: %d/%d subsets (%d failed, %d distinct)\n", a.Votes, a.Tried, a.Failed, a.Distinct)
		if len(a.Suspects) > 0 {
			fmt.Fprintf(&b, "Suspect shares: %s\n", strings.Join(a.Suspects, ", "))
		}
		if !a.Exhaustive {
			fmt.Fprintf(&b, "Search stopped after %d subsets\n", a.Tried)
		}
		if len(a.Untested) > 0 {
			fmt.Fprintf(&b, "Untested shares: %s\n", strings.Join(a.Untested, ", "))
		}
	}

	fmt.Fprintf(&b, "%s\n", rule)

	_, err := io.WriteString(rw.w, b.String())
	return err
}
