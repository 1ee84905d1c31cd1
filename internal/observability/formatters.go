// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
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

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to max runes, marking the cut with "...".
func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func dates(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	if end == "" {
		end = "Present"
	}
	return fmt.Sprintf(" (%s - %s)", orDash(start), end)
}

// PrintDraft outputs a summary of the editable draft.
func (p *Printer) PrintDraft(d types.ResumeDraft) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(d.Personal.Name)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(d.Personal.Email)))
	sb.WriteString(fmt.Sprintf("Template: %s\n", orDash(d.TemplateID)))
	sb.WriteString("\n")

	if len(d.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(d.Experience)))
		count := min(len(d.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := d.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s at %s%s\n", orDash(e.Title), orDash(e.Company), dates(e.StartDate, e.EndDate)))
		}
		if len(d.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(d.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Skills:   %s\n", orDash(d.Skills)))
	if d.Overlay != nil {
		sb.WriteString(fmt.Sprintf("Overlay:  %d entries, %d skills", len(d.Overlay.DetailedExperience), len(d.Overlay.TechnicalSkills)))
	} else {
		sb.WriteString("Overlay:  none (not tailored yet)")
	}

	p.printBox("RESUME DRAFT", sb.String())
}

// PrintResume outputs the reconciled resume that templates receive.
func (p *Printer) PrintResume(r types.RenderReadyResume) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(r.Name)))
	if r.ProfessionalSummary != "" {
		sb.WriteString(fmt.Sprintf("Summary:  %s\n", r.ProfessionalSummary))
	}
	if len(r.TechnicalSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", strings.Join(r.TechnicalSkills, ", ")))
	}
	sb.WriteString("\n")

	count := min(len(r.Experience), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := r.Experience[i]
		sb.WriteString(fmt.Sprintf("%s at %s%s\n", orDash(e.Title), orDash(e.Company), dates(e.StartDate, e.EndDate)))
		for _, point := range e.Points {
			sb.WriteString(fmt.Sprintf("  • %s\n", point))
		}
		if len(e.Points) == 0 {
			sb.WriteString("  (no points)\n")
		}
	}
	if len(r.Experience) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more positions\n", len(r.Experience)-maxItemsToShow))
	}

	p.printBox("RECONCILED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocument outputs the page layout of a rendered document.
func (p *Printer) PrintDocument(doc *rendering.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Template: %s (%s)\n", doc.Style.Name, doc.TemplateID))
	sb.WriteString(fmt.Sprintf("Target:   %s\n", doc.Target))
	sb.WriteString(fmt.Sprintf("Layout:   %s\n", doc.Style.Layout))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", len(doc.Pages)))

	for _, page := range doc.Pages {
		sb.WriteString(fmt.Sprintf("\nPage %d: %d main, %d sidebar blocks\n", page.Number, len(page.Main), len(page.Sidebar)))
		for _, b := range page.Main {
			sb.WriteString(fmt.Sprintf("  %s\n", describeBlock(b)))
		}
		for _, b := range page.Sidebar {
			sb.WriteString(fmt.Sprintf("  [side] %s\n", describeBlock(b)))
		}
	}

	p.printBox("RENDERED DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

func describeBlock(b rendering.Block) string {
	label := string(b.Kind)
	switch b.Kind {
	case rendering.BlockHeading:
		label += ": " + b.Text
	case rendering.BlockExperience:
		if b.Experience != nil {
			label += ": " + orDash(b.Experience.Title)
			if b.Continued {
				label += " (cont.)"
			}
		}
	case rendering.BlockSkills:
		label += fmt.Sprintf(": %d items", len(b.Items))
	}
	return fmt.Sprintf("%-40s %6.1fpt", clip(label, 40), b.Height)
}

// PrintTemplates outputs the template catalog.
func (p *Printer) PrintTemplates(styles []rendering.Style) {
	if len(styles) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d templates:\n\n", len(styles)))
	for _, s := range styles {
		sb.WriteString(fmt.Sprintf("%-18s %-10s %s\n", s.ID, s.Layout, s.Name))
	}

	p.printBox("TEMPLATES", strings.TrimSuffix(sb.String(), "\n"))
}
