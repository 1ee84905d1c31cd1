package interview

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/reconcile"
	"github.com/jonathan/resume-builder/internal/types"
)

// ResumeContext summarizes a draft for the interviewer. A tailored draft is described
// through its reconciled form; otherwise the raw entries are used.
func ResumeContext(d types.ResumeDraft) string {
	if reconcile.Ready(d) == nil {
		return DescribeResume(reconcile.Reconcile(d))
	}
	return DescribeDraft(d)
}

// DescribeResume renders a render-ready resume as plain text.
func DescribeResume(r types.RenderReadyResume) string {
	var sb strings.Builder
	writeLine(&sb, "Name", r.Name)
	writeLine(&sb, "Summary", r.ProfessionalSummary)
	writeLine(&sb, "Skills", strings.Join(r.TechnicalSkills, ", "))
	for _, e := range r.Experience {
		fmt.Fprintf(&sb, "\n%s\n", position(e.Title, e.Company, e.StartDate, e.EndDate))
		for _, p := range e.Points {
			if p = strings.TrimSpace(p); p != "" {
				fmt.Fprintf(&sb, "- %s\n", p)
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// DescribeDraft renders an untailored draft as plain text.
func DescribeDraft(d types.ResumeDraft) string {
	var sb strings.Builder
	writeLine(&sb, "Name", d.Personal.Name)
	writeLine(&sb, "Skills", d.Skills)
	writeLine(&sb, "Notes", d.FinalThoughts)
	for _, e := range d.Experience {
		fmt.Fprintf(&sb, "\n%s\n", position(e.Title, e.Company, e.StartDate, e.EndDate))
		if desc := strings.TrimSpace(e.Description); desc != "" {
			sb.WriteString(desc)
			sb.WriteString("\n")
		}
	}
	return strings.TrimSpace(sb.String())
}

func writeLine(sb *strings.Builder, label, value string) {
	if value = strings.TrimSpace(value); value != "" {
		fmt.Fprintf(sb, "%s: %s\n", label, value)
	}
}

func position(title, company, start, end string) string {
	line := strings.TrimSpace(title)
	if company = strings.TrimSpace(company); company != "" {
		if line != "" {
			line += " at "
		}
		line += company
	}
	if start = strings.TrimSpace(start); start != "" {
		if end = strings.TrimSpace(end); end == "" {
			end = "Present"
		}
		line += fmt.Sprintf(" (%s - %s)", start, end)
	}
	return line
}
