package interview

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func contextDraft() types.ResumeDraft {
	return types.ResumeDraft{
		Personal: types.PersonalDetails{Name: "Ada Lovelace", Email: "ada@example.com"},
		Experience: []types.ExperienceEntry{
			{ID: "1", Title: "Engineer", Company: "Acme", StartDate: "2020", Description: "Built stuff"},
			{ID: "2", Title: "Intern", Company: "Beta", StartDate: "2018", EndDate: "2019", Description: "Helped out"},
		},
		Skills: "Go, SQL",
	}
}

func TestResumeContext_Untailored(t *testing.T) {
	got := ResumeContext(contextDraft())

	assert.Equal(t, "Name: Ada Lovelace\nSkills: Go, SQL\n\n"+
		"Engineer at Acme (2020 - Present)\nBuilt stuff\n\n"+
		"Intern at Beta (2018 - 2019)\nHelped out", got)
	assert.NotContains(t, got, "ada@example.com")
}

func TestResumeContext_Tailored(t *testing.T) {
	d := contextDraft()
	d.Overlay = &types.AiOverlay{
		ProfessionalSummary: "Engineer who ships.",
		TechnicalSkills:     []string{"Go", "PostgreSQL"},
		DetailedExperience:  []types.ExperiencePoints{{ID: "1", Points: []string{"Led X", "Shipped Y"}}},
	}
	got := ResumeContext(d)

	assert.Contains(t, got, "Summary: Engineer who ships.")
	assert.Contains(t, got, "Skills: Go, PostgreSQL")
	assert.Contains(t, got, "Engineer at Acme (2020 - Present)\n- Led X\n- Shipped Y")
	assert.Contains(t, got, "Intern at Beta (2018 - 2019)\n- Helped out")
	assert.NotContains(t, got, "Built stuff")
}

func TestPosition(t *testing.T) {
	assert.Equal(t, "Acme", position("", "Acme", "", ""))
	assert.Equal(t, "Engineer", position("Engineer", " ", "", "2020"))
	assert.Equal(t, "", DescribeDraft(types.ResumeDraft{}))
}
