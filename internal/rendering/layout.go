package rendering

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/types"
)

// Layout estimates text extents with an average glyph width; no fonts are loaded.
const (
	avgCharWidth = 0.5  // em
	blockGap     = 8.0  // pt after each block
	bulletIndent = 12.0 // pt
	bulletGap    = 2.0  // pt after each bullet
	chipPadding  = 10.0 // pt of horizontal padding and spacing per skill chip
	ruleHeight   = 6.0  // pt for a header rule or accent bar
)

// Section headings
var sectionTitles = map[Section]string{
	SectionSummary:    "Professional Summary",
	SectionSkills:     "Technical Skills",
	SectionExperience: "Experience",
}

// lineCount estimates how many lines text wraps to in a column of the given width.
func lineCount(text string, width, fontPt float64) int {
	perLine := int(width / (fontPt * avgCharWidth))
	if perLine < 1 {
		perLine = 1
	}
	n := 0
	for _, para := range strings.Split(text, "\n") {
		runes := utf8.RuneCountInString(para)
		if runes == 0 {
			n++
			continue
		}
		n += (runes + perLine - 1) / perLine
	}
	return n
}

func textHeight(text string, width, fontPt, lineHeight float64) float64 {
	return float64(lineCount(text, width, fontPt)) * fontPt * lineHeight
}

// contactLine lists the non-empty contact fields in display order.
func contactLine(r types.RenderReadyResume) []string {
	var out []string
	for _, v := range []string{r.Email, r.Phone, r.LinkedIn, r.GitHub} {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func headerBlock(s Style, r types.RenderReadyResume, width float64) Block {
	lh := s.Scale.LineHeight
	contact := contactLine(r)
	h := s.NamePt() * lh
	if len(contact) > 0 {
		h += textHeight(strings.Join(contact, " | "), width, s.Scale.BasePt, lh)
	}
	if s.HeaderRule || s.AccentBar {
		h += ruleHeight
	}
	return Block{
		Kind:         BlockHeader,
		Section:      SectionHeader,
		Text:         r.Name,
		Contact:      contact,
		Height:       h + blockGap,
		KeepTogether: true,
	}
}

func headingBlock(s Style, sec Section) Block {
	return Block{
		Kind:         BlockHeading,
		Section:      sec,
		Text:         sectionTitles[sec],
		Height:       s.HeadingPt()*s.Scale.LineHeight + 4,
		KeepWithNext: true,
	}
}

func skillsHeight(s Style, skills []string, width float64) float64 {
	base, lh := s.Scale.BasePt, s.Scale.LineHeight
	if !s.SkillChips {
		return textHeight(strings.Join(skills, ", "), width, base, lh)
	}
	rows, x := 1, 0.0
	for _, skill := range skills {
		w := float64(utf8.RuneCountInString(skill))*base*avgCharWidth + chipPadding
		if x > 0 && x+w > width {
			rows++
			x = 0
		}
		x += w
	}
	return float64(rows) * base * (lh + 0.4)
}

func experienceBlock(s Style, e types.RenderedExperience, width float64) Block {
	base, lh := s.Scale.BasePt, s.Scale.LineHeight
	head := base*1.1*lh + base*lh

	exp := e
	exp.Points = append([]string{}, e.Points...)

	bullets := make([]float64, len(exp.Points))
	total := head
	for i, p := range exp.Points {
		bullets[i] = textHeight(p, width-bulletIndent, base, lh) + bulletGap
		total += bullets[i]
	}
	return Block{
		Kind:         BlockExperience,
		Section:      SectionExperience,
		Experience:   &exp,
		Height:       total + blockGap,
		KeepTogether: true,
		head:         head,
		bullets:      bullets,
	}
}

// sectionBlocks lays out one non-header section. Empty sections produce no blocks.
func sectionBlocks(s Style, r types.RenderReadyResume, sec Section, width float64) []Block {
	lh := s.Scale.LineHeight
	switch sec {
	case SectionHeader:
		return []Block{headerBlock(s, r, width)}
	case SectionSummary:
		if strings.TrimSpace(r.ProfessionalSummary) == "" {
			return nil
		}
		return []Block{
			headingBlock(s, sec),
			{
				Kind:    BlockParagraph,
				Section: sec,
				Text:    r.ProfessionalSummary,
				Height:  textHeight(r.ProfessionalSummary, width, s.Scale.BasePt, lh) + blockGap,
			},
		}
	case SectionSkills:
		if len(r.TechnicalSkills) == 0 {
			return nil
		}
		return []Block{
			headingBlock(s, sec),
			{
				Kind:         BlockSkills,
				Section:      sec,
				Items:        append([]string(nil), r.TechnicalSkills...),
				Height:       skillsHeight(s, r.TechnicalSkills, width) + blockGap,
				KeepTogether: true,
			},
		}
	case SectionExperience:
		if len(r.Experience) == 0 {
			return nil
		}
		out := []Block{headingBlock(s, sec)}
		for _, e := range r.Experience {
			out = append(out, experienceBlock(s, e, width))
		}
		return out
	}
	return nil
}

// Paginate distributes blocks over pages whose usable height is avail.
//
// A block that does not fit in the space left on the current page moves to the next
// page whole. Headings stay with the first unit of the block after them. An experience
// block taller than a full page is split between bullets, the heading repeated on each
// part. Other oversized blocks get a page of their own.
func Paginate(blocks []Block, avail float64) [][]Block {
	return paginate(blocks, avail, 0)
}

// paginate is Paginate with offset points already used on the first page.
func paginate(blocks []Block, avail, offset float64) [][]Block {
	if len(blocks) == 0 {
		return nil
	}
	p := &paginator{pages: [][]Block{nil}, used: offset, avail: avail}
	for i, b := range blocks {
		if b.Kind == BlockExperience && b.Height > avail {
			p.split(b)
			continue
		}
		need := b.Height
		if b.KeepWithNext && i+1 < len(blocks) {
			need += leadHeight(blocks[i+1], avail)
		}
		if p.used+need > avail && p.used > 0 {
			p.newPage()
		}
		p.place(b)
	}
	return p.pages
}

type paginator struct {
	pages [][]Block
	used  float64
	avail float64
}

func (p *paginator) newPage() {
	p.pages = append(p.pages, nil)
	p.used = 0
}

func (p *paginator) place(b Block) {
	last := len(p.pages) - 1
	p.pages[last] = append(p.pages[last], b)
	p.used += b.Height
}

// split places an oversized experience block in parts, breaking only between bullets.
func (p *paginator) split(b Block) {
	n := len(b.bullets)
	start := 0
	for first := true; first || start < n; {
		room := p.avail - p.used
		lead := b.head
		if start < n {
			lead += b.bullets[start]
		}
		if lead > room && p.used > 0 {
			p.newPage()
			continue
		}

		h, end := b.head, start
		for end < n && h+b.bullets[end] <= room {
			h += b.bullets[end]
			end++
		}
		if end == start && start < n {
			h += b.bullets[start]
			end++
		}
		p.place(b.part(start, end, !first, h+blockGap))

		start = end
		first = false
		if start < n {
			p.newPage()
		}
	}
}

// leadHeight is the smallest part of b that must share a page with a heading before it.
func leadHeight(b Block, avail float64) float64 {
	if b.Kind == BlockExperience && b.Height > avail {
		lead := b.head
		if len(b.bullets) > 0 {
			lead += b.bullets[0]
		}
		return lead
	}
	if b.Height > avail {
		return avail
	}
	return b.Height
}

// part returns the slice [start, end) of an experience block's bullets as its own block.
func (b Block) part(start, end int, continued bool, height float64) Block {
	exp := *b.Experience
	exp.Points = append([]string{}, b.Experience.Points[start:end]...)
	out := b
	out.Experience = &exp
	out.Continued = continued
	out.Height = height
	out.head = b.head
	out.bullets = append([]float64(nil), b.bullets[start:end]...)
	return out
}
