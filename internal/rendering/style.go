package rendering

import (
	"fmt"
	"regexp"
	"strings"
)

// Section names a content section of a resume.
type Section string

// Resume sections
const (
	SectionHeader     Section = "header"
	SectionSummary    Section = "summary"
	SectionSkills     Section = "skills"
	SectionExperience Section = "experience"
)

// Layout is the column arrangement of a template.
type Layout string

// Column layouts
const (
	LayoutSingle       Layout = "single"
	LayoutSidebarLeft  Layout = "sidebar-left"
	LayoutSidebarRight Layout = "sidebar-right"
)

// Palette holds the template colors as #RRGGBB hex strings.
type Palette struct {
	Primary    string
	Accent     string
	Text       string
	Muted      string
	Background string
}

// Scale is the typographic scale of a template, in points.
type Scale struct {
	BasePt       float64 // body font size
	HeadingRatio float64 // section heading size relative to body
	LineHeight   float64 // line height as a multiple of font size
}

// Style is the declarative descriptor of one template.
type Style struct {
	ID         string
	Name       string
	Layout     Layout
	Sidebar    []Section // sections placed in the side column; sidebar layouts only
	SideRatio  float64   // fraction of the content width used by the side column
	Palette    Palette
	FontFamily string // CSS font stack; the first family is used for DOCX
	Scale      Scale
	Sections   []Section // display order

	HeaderRule        bool
	AccentBar         bool
	SkillChips        bool
	UppercaseHeadings bool
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// HasSidebar reports whether the style uses two columns.
func (s Style) HasSidebar() bool {
	return s.Layout == LayoutSidebarLeft || s.Layout == LayoutSidebarRight
}

// InSidebar reports whether sec is rendered in the side column.
func (s Style) InSidebar(sec Section) bool {
	if !s.HasSidebar() {
		return false
	}
	for _, side := range s.Sidebar {
		if side == sec {
			return true
		}
	}
	return false
}

// PrimaryFont returns the first family of the font stack without quotes.
func (s Style) PrimaryFont() string {
	first, _, _ := strings.Cut(s.FontFamily, ",")
	return strings.Trim(strings.TrimSpace(first), `'"`)
}

// HeadingPt returns the section heading size.
func (s Style) HeadingPt() float64 {
	return s.Scale.BasePt * s.Scale.HeadingRatio
}

// NamePt returns the size used for the candidate's name.
func (s Style) NamePt() float64 {
	return s.HeadingPt() * 1.6
}

func knownSection(sec Section) bool {
	switch sec {
	case SectionHeader, SectionSummary, SectionSkills, SectionExperience:
		return true
	}
	return false
}

// validate checks the descriptor for internal consistency.
func (s Style) validate() error {
	fail := func(format string, args ...any) error {
		return &StyleError{ID: s.ID, Message: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(s.ID) == "" {
		return fail("id is required")
	}
	if s.Name == "" {
		return fail("name is required")
	}
	if s.FontFamily == "" {
		return fail("font family is required")
	}
	if s.Scale.BasePt <= 0 || s.Scale.LineHeight <= 0 || s.Scale.HeadingRatio < 1 {
		return fail("typographic scale must be positive with heading ratio >= 1")
	}

	colors := map[string]string{
		"primary":    s.Palette.Primary,
		"accent":     s.Palette.Accent,
		"text":       s.Palette.Text,
		"muted":      s.Palette.Muted,
		"background": s.Palette.Background,
	}
	for name, c := range colors {
		if !hexColor.MatchString(c) {
			return fail("palette %s color %q is not #RRGGBB", name, c)
		}
	}

	if len(s.Sections) == 0 {
		return fail("section order is empty")
	}
	seen := make(map[Section]bool, len(s.Sections))
	for _, sec := range s.Sections {
		if !knownSection(sec) {
			return fail("unknown section %q", sec)
		}
		if seen[sec] {
			return fail("section %q listed twice", sec)
		}
		seen[sec] = true
	}
	if !seen[SectionHeader] {
		return fail("header section is required")
	}

	switch s.Layout {
	case LayoutSingle:
		if len(s.Sidebar) > 0 {
			return fail("single-column layout cannot have sidebar sections")
		}
	case LayoutSidebarLeft, LayoutSidebarRight:
		if len(s.Sidebar) == 0 {
			return fail("sidebar layout needs at least one sidebar section")
		}
		if s.SideRatio < 0.2 || s.SideRatio > 0.45 {
			return fail("side ratio %.2f outside [0.20, 0.45]", s.SideRatio)
		}
		for _, sec := range s.Sidebar {
			if !seen[sec] {
				return fail("sidebar section %q not in section order", sec)
			}
			if sec == SectionHeader {
				return fail("header cannot be placed in the sidebar")
			}
		}
	default:
		return fail("unknown layout %q", s.Layout)
	}
	return nil
}
