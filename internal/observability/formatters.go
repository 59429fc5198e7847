// Package observability provides formatted output utilities for verbose CLI mode
// and a zerolog-backed progress sink.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cv-mission-extractor/internal/analysis"
	"github.com/jonathan/cv-mission-extractor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// shorten cuts s to n runes, marking the cut with "...".
func shorten(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes.
func pad(s string, n int) string {
	if k := utf8.RuneCountInString(s); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(shorten(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs a human-readable summary of an analysis.
func (p *Printer) PrintAnalysis(a *types.CVAnalysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	consultant := a.Consultant
	if consultant == "" {
		consultant = "(unknown)"
	}
	sb.WriteString(fmt.Sprintf("Consultant: %s\n", consultant))
	if a.Contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:      %s\n", a.Contact.Email))
	}
	if a.Contact.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:      %s\n", a.Contact.Phone))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Missions: %d\n", len(a.Missions)))
	count := min(len(a.Missions), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := a.Missions[i]
		sb.WriteString(fmt.Sprintf("  • %s  %s → %s", m.Client, dateOrDash(m.Start), dateOrDash(m.End)))
		if m.IsVerified() {
			sb.WriteString("  ✓")
		}
		sb.WriteString("\n")
		if m.Role != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", m.Role))
		}
		if len(m.TechnicalSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    [%s]\n", shorten(strings.Join(m.TechnicalSkills, ", "), 45)))
		}
	}
	if len(a.Missions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(a.Missions)-maxItemsToShow))
	}

	if len(a.TechnicalSkills) > 0 {
		sb.WriteString("\nTechnical Skills:\n")
		sb.WriteString(fmt.Sprintf("  %s\n", shorten(strings.Join(a.TechnicalSkills, ", "), 52)))
	}
	if len(a.FunctionalSkills) > 0 {
		sb.WriteString("\nFunctional Skills:\n")
		count := min(len(a.FunctionalSkills), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", a.FunctionalSkills[i]))
		}
		if len(a.FunctionalSkills) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(a.FunctionalSkills)-3))
		}
	}

	p.printBox("CV ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

func dateOrDash(d types.DateBound) string {
	if d.IsUnknown() {
		return "?"
	}
	return d.String()
}

// PrintSummary outputs the counters reported when an analysis completes.
func (p *Printer) PrintSummary(s analysis.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Section:    %s\n", s.Section))
	sb.WriteString(fmt.Sprintf("Pages:      %d\n", s.Pages))
	sb.WriteString(fmt.Sprintf("Candidates: %d\n", s.Candidates))
	sb.WriteString(fmt.Sprintf("Missions:   %d (%d verified)\n", s.Missions, s.VerifiedMissions))
	sb.WriteString(fmt.Sprintf("Skills:     %d technical, %d functional\n", s.TechnicalSkills, s.FunctionalSkills))
	sb.WriteString(fmt.Sprintf("Warnings:   %d", s.Warnings))

	p.printBox("EXTRACTION SUMMARY", sb.String())
}

// PrintWarnings outputs the warnings raised during an analysis.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarnings(warnings []*analysis.ExtractionWarning) {
	if len(warnings) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ NO WARNINGS", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d warnings:\n\n", len(warnings)))
	for i, w := range warnings {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", w.Strategy))
		detail := w.Message
		if w.Cause != nil {
			detail += ": " + w.Cause.Error()
		}
		sb.WriteString(fmt.Sprintf("  %s\n", detail))
		if i < len(warnings)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("EXTRACTION WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatch outputs one line per batch result.
func (p *Printer) PrintBatch(results []analysis.Result) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			sb.WriteString(fmt.Sprintf("✗ %s: %s\n", r.Name, r.Err))
			continue
		}
		sb.WriteString(fmt.Sprintf("✓ %s: %d missions, %d skills\n",
			r.Name, len(r.Analysis.Missions), len(r.Analysis.TechnicalSkills)))
	}
	sb.WriteString(fmt.Sprintf("\n%d analysed, %d failed", len(results)-failed, failed))

	p.printBox("BATCH RESULTS", sb.String())
}
