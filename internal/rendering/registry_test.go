package rendering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStyle(id string) Style {
	return Style{
		ID:         id,
		Name:       "Test",
		Layout:     LayoutSingle,
		Palette:    palette("#000000", "#111111", "#222222", "#333333", "#FFFFFF"),
		FontFamily: fontSans,
		Scale:      scale(10, 1.3, 1.4),
		Sections:   []Section{SectionHeader, SectionSummary, SectionSkills, SectionExperience},
	}
}

func TestDefaultRegistry_HasAllBuiltins(t *testing.T) {
	r := DefaultRegistry()
	ids := r.IDs()

	assert.Len(t, ids, 25)
	assert.IsIncreasing(t, ids)
	for _, id := range []string{"classic", "modern", "minimal", "executive", "creative"} {
		assert.True(t, r.Has(id), id)
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	_, err := DefaultRegistry().Get("does-not-exist")

	var notFound *TemplateNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "does-not-exist", notFound.ID)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestRegistry_GetReturnsCopy(t *testing.T) {
	r := DefaultRegistry()
	s, err := r.Get("classic")
	require.NoError(t, err)
	s.Sections[0] = SectionSkills

	again, err := r.Get("classic")
	require.NoError(t, err)
	assert.Equal(t, SectionHeader, again.Sections[0])
}

func TestNewRegistry_RejectsInvalidStyles(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Style)
		want   string
	}{
		{"empty id", func(s *Style) { s.ID = " " }, "id is required"},
		{"no sections", func(s *Style) { s.Sections = nil }, "section order is empty"},
		{"unknown section", func(s *Style) { s.Sections = append(s.Sections, "hobbies") }, "unknown section"},
		{"repeated section", func(s *Style) { s.Sections = append(s.Sections, SectionSkills) }, "listed twice"},
		{"missing header", func(s *Style) { s.Sections = s.Sections[1:] }, "header section is required"},
		{"bad color", func(s *Style) { s.Palette.Accent = "blue" }, "not #RRGGBB"},
		{"zero scale", func(s *Style) { s.Scale.BasePt = 0 }, "typographic scale"},
		{"unknown layout", func(s *Style) { s.Layout = "three-column" }, "unknown layout"},
		{"sidebar on single column", func(s *Style) { s.Sidebar = []Section{SectionSkills} }, "single-column"},
		{"sidebar without sections", func(s *Style) {
			s.Layout = LayoutSidebarLeft
			s.SideRatio = 0.3
		}, "at least one sidebar section"},
		{"sidebar ratio", func(s *Style) {
			s.Layout = LayoutSidebarRight
			s.Sidebar = []Section{SectionSkills}
			s.SideRatio = 0.9
		}, "side ratio"},
		{"header in sidebar", func(s *Style) {
			s.Layout = LayoutSidebarLeft
			s.Sidebar = []Section{SectionHeader}
			s.SideRatio = 0.3
		}, "header cannot be placed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validStyle("x")
			tt.mutate(&s)

			_, err := NewRegistry([]Style{s})
			require.Error(t, err)
			var styleErr *StyleError
			assert.ErrorAs(t, err, &styleErr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewRegistry_RejectsDuplicateIDs(t *testing.T) {
	_, err := NewRegistry([]Style{validStyle("a"), validStyle("a")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate template id")
}

func TestNewRegistry_RejectsEmpty(t *testing.T) {
	_, err := NewRegistry(nil)
	assert.Error(t, err)
}

func TestRegistry_Verify(t *testing.T) {
	assert.NoError(t, DefaultRegistry().Verify(context.Background(), SampleResume()))
}

func TestStyle_PrimaryFont(t *testing.T) {
	assert.Equal(t, "Helvetica Neue", Style{FontFamily: fontSans}.PrimaryFont())
	assert.Equal(t, "Georgia", Style{FontFamily: fontSerif}.PrimaryFont())
	assert.Equal(t, "Montserrat", Style{FontFamily: fontGeometric}.PrimaryFont())
}
