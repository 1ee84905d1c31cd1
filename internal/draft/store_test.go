package draft

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// fixedGenerator replays ids in order, then repeats the last one.
type fixedGenerator struct {
	ids []string
	pos int
}

func (g *fixedGenerator) NewID() string {
	if g.pos >= len(g.ids) {
		return g.ids[len(g.ids)-1]
	}
	id := g.ids[g.pos]
	g.pos++
	return id
}

func TestNewStore_StartsEmpty(t *testing.T) {
	s := NewStore(nil)
	d := s.Draft()

	assert.Equal(t, types.PersonalDetails{}, d.Personal)
	assert.NotNil(t, d.Experience)
	assert.Empty(t, d.Experience)
	assert.Nil(t, d.Overlay)
	assert.Equal(t, uint64(0), s.Generation())
}

func TestStore_SetPersonalPartialMerge(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.SetPersonal(types.PersonalPatch{Name: strPtr("Ada"), Email: strPtr("ada@example.com")}))
	require.NoError(t, s.SetPersonal(types.PersonalPatch{Phone: strPtr("555-0100")}))

	p := s.Draft().Personal
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "ada@example.com", p.Email)
	assert.Equal(t, "555-0100", p.Phone)
	assert.Empty(t, p.LinkedIn)
}

func TestStore_SetPersonalEmptyStringClears(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.SetPersonal(types.PersonalPatch{GitHub: strPtr("github.com/ada")}))
	require.NoError(t, s.SetPersonal(types.PersonalPatch{GitHub: strPtr("")}))
	assert.Empty(t, s.Draft().Personal.GitHub)
}

func TestStore_AddExperienceAppendsInOrder(t *testing.T) {
	s := NewStore(&SequenceGenerator{})

	id1, err := s.AddExperience(types.ExperienceEntry{Title: "Engineer", Company: "Acme"})
	require.NoError(t, err)
	id2, err := s.AddExperience(types.ExperienceEntry{Title: "Intern", Company: "Beta"})
	require.NoError(t, err)

	d := s.Draft()
	require.Len(t, d.Experience, 2)
	assert.Equal(t, id1, d.Experience[0].ID)
	assert.Equal(t, "Engineer", d.Experience[0].Title)
	assert.Equal(t, id2, d.Experience[1].ID)
	assert.Equal(t, "1", id1)
	assert.Equal(t, "2", id2)
}

func TestStore_AddExperienceIgnoresCallerID(t *testing.T) {
	s := NewStore(&SequenceGenerator{})
	id, err := s.AddExperience(types.ExperienceEntry{ID: "forged"})
	require.NoError(t, err)
	assert.Equal(t, "1", id)
	assert.Equal(t, -1, s.Draft().FindExperience("forged"))
}

func TestStore_AddExperienceIDsPairwiseDistinct(t *testing.T) {
	for _, gen := range []IDGenerator{UUIDGenerator{}, &SequenceGenerator{}} {
		s := NewStore(gen)
		seen := make(map[string]bool)
		for i := 0; i < 200; i++ {
			id, err := s.AddExperience(types.ExperienceEntry{})
			require.NoError(t, err)
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
			if i%3 == 0 {
				require.NoError(t, s.RemoveExperience(id))
			}
		}
	}
}

func TestStore_IDsNeverReusedAfterRemoval(t *testing.T) {
	gen := &fixedGenerator{ids: []string{"a", "a", "b"}}
	s := NewStore(gen)

	id1, err := s.AddExperience(types.ExperienceEntry{})
	require.NoError(t, err)
	require.NoError(t, s.RemoveExperience(id1))

	id2, err := s.AddExperience(types.ExperienceEntry{})
	require.NoError(t, err)
	assert.Equal(t, "a", id1)
	assert.Equal(t, "b", id2)
}

func TestStore_ExhaustedGeneratorFails(t *testing.T) {
	gen := &fixedGenerator{ids: []string{"only"}}
	s := NewStore(gen)

	_, err := s.AddExperience(types.ExperienceEntry{})
	require.NoError(t, err)

	_, err = s.AddExperience(types.ExperienceEntry{})
	require.Error(t, err)
	assert.Len(t, s.Draft().Experience, 1)
}

func TestStore_UpdateExperienceField(t *testing.T) {
	s := NewStore(&SequenceGenerator{})
	id, err := s.AddExperience(types.ExperienceEntry{Title: "Engineer"})
	require.NoError(t, err)

	for _, field := range types.ExperienceFields() {
		require.NoError(t, s.UpdateExperience(id, field, "v-"+string(field)))
	}

	e := s.Draft().Experience[0]
	assert.Equal(t, "v-title", e.Title)
	assert.Equal(t, "v-company", e.Company)
	assert.Equal(t, "v-startDate", e.StartDate)
	assert.Equal(t, "v-endDate", e.EndDate)
	assert.Equal(t, "v-description", e.Description)
}

func TestStore_UpdateUnknownIDLeavesDraftUnchanged(t *testing.T) {
	s := NewStore(&SequenceGenerator{})
	_, err := s.AddExperience(types.ExperienceEntry{Title: "Engineer"})
	require.NoError(t, err)
	before := s.Draft()

	err = s.UpdateExperience("nope", types.FieldTitle, "x")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nope", notFound.ID)
	assert.Equal(t, before, s.Draft())
}

func TestStore_UpdateUnknownField(t *testing.T) {
	s := NewStore(&SequenceGenerator{})
	id, err := s.AddExperience(types.ExperienceEntry{})
	require.NoError(t, err)

	err = s.UpdateExperience(id, "salary", "1")
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestStore_RemoveLastEntryLeavesEmptyList(t *testing.T) {
	s := NewStore(&SequenceGenerator{})
	id, err := s.AddExperience(types.ExperienceEntry{Title: "Only"})
	require.NoError(t, err)

	require.NoError(t, s.RemoveExperience(id))

	d := s.Draft()
	assert.NotNil(t, d.Experience)
	assert.Empty(t, d.Experience)
}

func TestStore_RemoveKeepsOrder(t *testing.T) {
	s := NewStore(&SequenceGenerator{})
	for _, title := range []string{"A", "B", "C"} {
		_, err := s.AddExperience(types.ExperienceEntry{Title: title})
		require.NoError(t, err)
	}
	require.NoError(t, s.RemoveExperience("2"))

	d := s.Draft()
	require.Len(t, d.Experience, 2)
	assert.Equal(t, "A", d.Experience[0].Title)
	assert.Equal(t, "C", d.Experience[1].Title)
}

func TestStore_TextSetters(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.SetSkills("Go, SQL"))
	require.NoError(t, s.SetFinalThoughts("Open to relocation"))
	require.NoError(t, s.SetTemplate("modern"))

	d := s.Draft()
	assert.Equal(t, "Go, SQL", d.Skills)
	assert.Equal(t, "Open to relocation", d.FinalThoughts)
	assert.Equal(t, "modern", d.TemplateID)

	assert.Error(t, s.SetTemplate(""))
	assert.Equal(t, "modern", s.Draft().TemplateID)
}

func TestStore_SetOverlayReplacesWholesale(t *testing.T) {
	s := NewStore(nil)
	first := &types.AiOverlay{
		ProfessionalSummary: "first",
		TechnicalSkills:     []string{"Go"},
		DetailedExperience:  []types.ExperiencePoints{{ID: "1", Points: []string{"a"}}},
	}
	second := &types.AiOverlay{ProfessionalSummary: "second"}

	require.NoError(t, s.SetOverlay(first))
	require.NoError(t, s.SetOverlay(second))

	d := s.Draft()
	require.NotNil(t, d.Overlay)
	assert.Equal(t, "second", d.Overlay.ProfessionalSummary)
	assert.Empty(t, d.Overlay.TechnicalSkills)
	assert.Empty(t, d.Overlay.DetailedExperience)

	// The store holds its own copy.
	second.ProfessionalSummary = "mutated"
	assert.Equal(t, "second", s.Draft().Overlay.ProfessionalSummary)

	require.NoError(t, s.SetOverlay(nil))
	assert.Nil(t, s.Draft().Overlay)
}

func TestStore_Reset(t *testing.T) {
	s := NewStore(&SequenceGenerator{})
	_, err := s.AddExperience(types.ExperienceEntry{Title: "A"})
	require.NoError(t, err)
	require.NoError(t, s.SetSkills("Go"))
	require.NoError(t, s.SetOverlay(&types.AiOverlay{}))

	require.NoError(t, s.Reset())
	assert.Equal(t, Empty(), s.Draft())

	id, err := s.AddExperience(types.ExperienceEntry{})
	require.NoError(t, err)
	assert.Equal(t, "2", id, "ids issued before reset stay retired")
}

func TestStore_DraftIsSnapshot(t *testing.T) {
	s := NewStore(&SequenceGenerator{})
	_, err := s.AddExperience(types.ExperienceEntry{Title: "A"})
	require.NoError(t, err)

	snap := s.Draft()
	snap.Experience[0].Title = "changed"
	assert.Equal(t, "A", s.Draft().Experience[0].Title)
}

func TestStore_LoadFromImportRekeysAndClearsOverlay(t *testing.T) {
	s := NewStore(&SequenceGenerator{})
	_, err := s.AddExperience(types.ExperienceEntry{Title: "Old"})
	require.NoError(t, err)
	require.NoError(t, s.SetTemplate("modern"))
	require.NoError(t, s.SetOverlay(&types.AiOverlay{ProfessionalSummary: "stale"}))

	prefill := types.ResumeDraft{
		Personal: types.PersonalDetails{Name: "Ada"},
		Experience: []types.ExperienceEntry{
			{ID: "x", Title: "Engineer", Points: []string{"p"}},
			{ID: "x", Title: "Intern"},
		},
		Skills: "Go",
	}
	require.NoError(t, s.LoadFromImport(prefill))

	d := s.Draft()
	assert.Equal(t, "Ada", d.Personal.Name)
	assert.Equal(t, "Go", d.Skills)
	assert.Equal(t, "modern", d.TemplateID)
	assert.Nil(t, d.Overlay)
	require.Len(t, d.Experience, 2)
	assert.Equal(t, "2", d.Experience[0].ID)
	assert.Equal(t, "3", d.Experience[1].ID)
	assert.Nil(t, d.Experience[0].Points)
}

func TestRestore_TreatsExistingIDsAsIssued(t *testing.T) {
	persisted := types.ResumeDraft{
		Experience: []types.ExperienceEntry{{ID: "1"}, {ID: "2"}},
	}
	s := Restore(&SequenceGenerator{}, persisted)

	id, err := s.AddExperience(types.ExperienceEntry{})
	require.NoError(t, err)
	assert.Equal(t, "3", id)
}

func TestStore_BeginSubmissionIncrements(t *testing.T) {
	s := NewStore(nil)
	assert.Equal(t, uint64(1), s.BeginSubmission())
	assert.Equal(t, uint64(2), s.BeginSubmission())
	assert.Equal(t, uint64(2), s.Generation())
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	d := types.ResumeDraft{
		Experience: []types.ExperienceEntry{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}},
	}

	next, err := Apply(d, RemoveExperience{ID: "1"})
	require.NoError(t, err)
	require.Len(t, next.Experience, 1)

	require.Len(t, d.Experience, 2)
	assert.Equal(t, "A", d.Experience[0].Title)
	assert.Equal(t, "B", d.Experience[1].Title)
}

func TestApply_AddExperienceRejectsDuplicateID(t *testing.T) {
	d := types.ResumeDraft{Experience: []types.ExperienceEntry{{ID: "1"}}}
	_, err := Apply(d, AddExperience{ID: "1"})
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)

	_, err = Apply(d, AddExperience{})
	assert.ErrorAs(t, err, &inputErr)
}

func TestApply_NilAction(t *testing.T) {
	_, err := Apply(Empty(), nil)
	assert.Error(t, err)
}

func TestStore_SetOverlayMirrorsPoints(t *testing.T) {
	s := NewStore(&SequenceGenerator{})
	first, err := s.AddExperience(types.ExperienceEntry{Title: "Engineer", Description: "Built stuff"})
	require.NoError(t, err)
	second, err := s.AddExperience(types.ExperienceEntry{Title: "Intern", Description: "Helped out"})
	require.NoError(t, err)

	overlay := &types.AiOverlay{DetailedExperience: []types.ExperiencePoints{
		{ID: first, Points: []string{"Led X", "Shipped Y"}},
		{ID: first, Points: []string{"ignored duplicate"}},
		{ID: "unknown", Points: []string{"dropped"}},
	}}
	require.NoError(t, s.SetOverlay(overlay))

	d := s.Draft()
	assert.Equal(t, []string{"Led X", "Shipped Y"}, d.Experience[0].Points)
	assert.Nil(t, d.Experience[1].Points, "entries without a match keep no points")

	overlay.DetailedExperience[0].Points[0] = "mutated"
	assert.Equal(t, "Led X", s.Draft().Experience[0].Points[0])

	require.NoError(t, s.SetOverlay(&types.AiOverlay{DetailedExperience: []types.ExperiencePoints{{ID: second, Points: []string{}}}}))
	d = s.Draft()
	assert.Nil(t, d.Experience[0].Points)
	assert.Equal(t, []string{}, d.Experience[1].Points, "an explicit empty list is kept")

	require.NoError(t, s.SetOverlay(nil))
	for _, e := range s.Draft().Experience {
		assert.Nil(t, e.Points)
	}
}

func TestStore_Rollback(t *testing.T) {
	s := NewStore(&SequenceGenerator{})
	_, err := s.AddExperience(types.ExperienceEntry{Title: "Engineer"})
	require.NoError(t, err)
	cp := s.Checkpoint()
	before := s.Draft()

	s.BeginSubmission()
	require.NoError(t, s.SetSkills("Go"))
	require.NoError(t, s.SetOverlay(&types.AiOverlay{ProfessionalSummary: "s"}))
	id, err := s.AddExperience(types.ExperienceEntry{Title: "Intern"})
	require.NoError(t, err)
	assert.Equal(t, "2", id)

	s.Rollback(cp)
	assert.Equal(t, before, s.Draft())
	assert.Equal(t, uint64(0), s.Generation())

	id, err = s.AddExperience(types.ExperienceEntry{})
	require.NoError(t, err)
	assert.Equal(t, "3", id, "ids issued after the checkpoint stay retired")

	s.Rollback(cp)
	assert.Equal(t, before, s.Draft(), "a checkpoint can be restored more than once")
}
