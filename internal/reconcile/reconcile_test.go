package reconcile

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDraft() types.ResumeDraft {
	return types.ResumeDraft{
		Personal: types.PersonalDetails{
			Name:     "Ada Lovelace",
			Email:    "ada@example.com",
			Phone:    "555-0100",
			LinkedIn: "linkedin.com/in/ada",
			GitHub:   "github.com/ada",
		},
		Experience: []types.ExperienceEntry{
			{ID: "1", Title: "Engineer", Company: "Acme", StartDate: "2020", EndDate: "2023", Description: "Built stuff"},
			{ID: "2", Title: "Intern", Company: "Beta", Description: "Helped out"},
		},
		Overlay: &types.AiOverlay{
			ProfessionalSummary: "Engineer who ships.",
			TechnicalSkills:     []string{"Go", "Postgres"},
			DetailedExperience: []types.ExperiencePoints{
				{ID: "1", Points: []string{"Led X", "Shipped Y"}},
			},
		},
	}
}

func TestReady(t *testing.T) {
	d := sampleDraft()
	assert.NoError(t, Ready(d))

	d.Overlay = nil
	assert.ErrorIs(t, Ready(d), ErrNoOverlay)
}

func TestReconcile_MatchAndFallback(t *testing.T) {
	got := Reconcile(sampleDraft())

	require.Len(t, got.Experience, 2)
	assert.Equal(t, []string{"Led X", "Shipped Y"}, got.Experience[0].Points)
	assert.Equal(t, []string{"Helped out"}, got.Experience[1].Points)
}

func TestReconcile_EmptyOverlayPointsDoNotFallBack(t *testing.T) {
	d := sampleDraft()
	d.Overlay.DetailedExperience = []types.ExperiencePoints{{ID: "1", Points: []string{}}}

	got := Reconcile(d)

	require.Len(t, got.Experience, 2)
	assert.NotNil(t, got.Experience[0].Points)
	assert.Empty(t, got.Experience[0].Points)
	assert.Equal(t, []string{"Helped out"}, got.Experience[1].Points)
}

func TestReconcile_NilOverlayPointsAreEmpty(t *testing.T) {
	d := sampleDraft()
	d.Overlay.DetailedExperience = []types.ExperiencePoints{{ID: "1"}}

	got := Reconcile(d)
	assert.Equal(t, []string{}, got.Experience[0].Points)
}

func TestReconcile_EmptyDescriptionFallbackIsVerbatim(t *testing.T) {
	d := sampleDraft()
	d.Experience[1].Description = ""

	got := Reconcile(d)
	assert.Equal(t, []string{""}, got.Experience[1].Points)
}

func TestReconcile_IdentityFieldsComeFromDraft(t *testing.T) {
	d := sampleDraft()
	got := Reconcile(d)

	first := got.Experience[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Engineer", first.Title)
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, "2020", first.StartDate)
	assert.Equal(t, "2023", first.EndDate)

	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "555-0100", got.Phone)
	assert.Equal(t, "linkedin.com/in/ada", got.LinkedIn)
	assert.Equal(t, "github.com/ada", got.GitHub)
	assert.Equal(t, "Engineer who ships.", got.ProfessionalSummary)
	assert.Equal(t, []string{"Go", "Postgres"}, got.TechnicalSkills)
}

func TestReconcile_IdentifierCoverage(t *testing.T) {
	overlays := []types.AiOverlay{
		{},
		{DetailedExperience: []types.ExperiencePoints{{ID: "3", Points: []string{"a"}}}},
		{DetailedExperience: []types.ExperiencePoints{{ID: "999", Points: []string{"extra"}}, {ID: "0"}}},
		{DetailedExperience: []types.ExperiencePoints{{ID: "4"}, {ID: "4", Points: []string{"dup"}}}},
	}

	for n := 0; n < 6; n++ {
		for i, overlay := range overlays {
			t.Run(fmt.Sprintf("n=%d/overlay=%d", n, i), func(t *testing.T) {
				d := types.ResumeDraft{Experience: []types.ExperienceEntry{}}
				for j := 0; j < n; j++ {
					d.Experience = append(d.Experience, types.ExperienceEntry{ID: fmt.Sprint(n - j), Description: "d"})
				}
				o := overlay.Clone()
				d.Overlay = &o

				got := Reconcile(d)

				require.Len(t, got.Experience, n)
				for j := range d.Experience {
					assert.Equal(t, d.Experience[j].ID, got.Experience[j].ID)
				}
			})
		}
	}
}

func TestReconcile_DuplicateOverlayIDUsesFirst(t *testing.T) {
	d := sampleDraft()
	d.Overlay.DetailedExperience = []types.ExperiencePoints{
		{ID: "2", Points: []string{"first"}},
		{ID: "2", Points: []string{"second"}},
	}

	got := Reconcile(d)
	assert.Equal(t, []string{"first"}, got.Experience[1].Points)
}

func TestReconcile_Deterministic(t *testing.T) {
	d := sampleDraft()

	a, err := json.Marshal(Reconcile(d))
	require.NoError(t, err)
	b, err := json.Marshal(Reconcile(d))
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
}

func TestReconcile_DoesNotMutateOrAliasDraft(t *testing.T) {
	d := sampleDraft()
	before := d.Clone()

	got := Reconcile(d)
	assert.Equal(t, before, d)

	got.Experience[0].Points[0] = "changed"
	got.TechnicalSkills[0] = "changed"
	assert.Equal(t, "Led X", d.Overlay.DetailedExperience[0].Points[0])
	assert.Equal(t, "Go", d.Overlay.TechnicalSkills[0])
}

func TestReconcile_EmptyExperience(t *testing.T) {
	d := sampleDraft()
	d.Experience = []types.ExperienceEntry{}

	got := Reconcile(d)
	assert.NotNil(t, got.Experience)
	assert.Empty(t, got.Experience)
}
