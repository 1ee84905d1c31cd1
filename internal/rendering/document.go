package rendering

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// Target is the output medium of a render.
type Target string

// Render targets
const (
	TargetScreen Target = "screen"
	TargetPDF    Target = "pdf"
	TargetDOCX   Target = "docx"
)

// Targets lists every supported target.
func Targets() []Target {
	return []Target{TargetScreen, TargetPDF, TargetDOCX}
}

// ParseTarget converts a query value into a Target.
func ParseTarget(s string) (Target, error) {
	for _, t := range Targets() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", &RenderError{Message: fmt.Sprintf("unknown target %q", s)}
}

// BlockKind identifies what a Block draws.
type BlockKind string

// Block kinds
const (
	BlockHeader     BlockKind = "header"
	BlockHeading    BlockKind = "heading"
	BlockParagraph  BlockKind = "paragraph"
	BlockSkills     BlockKind = "skills"
	BlockExperience BlockKind = "experience"
)

// Block is one laid-out unit of a document.
type Block struct {
	Kind    BlockKind
	Section Section

	Text       string                    // heading title or paragraph body
	Contact    []string                  // header only
	Items      []string                  // skills
	Experience *types.RenderedExperience // experience only; Points may be a slice of the entry's points

	Height       float64 // estimated height in points, including trailing gap
	KeepTogether bool    // never split across pages when it fits on one
	KeepWithNext bool    // never end a page with this block
	Continued    bool    // a later part of a split experience block

	head    float64   // experience heading height
	bullets []float64 // experience bullet heights, in order
}

// Page is one page of a document. Screen and DOCX documents have exactly one page.
type Page struct {
	Number  int
	Main    []Block
	Sidebar []Block
}

// Geometry describes the printable page in points.
type Geometry struct {
	Width  float64
	Height float64
	Margin float64
	Gutter float64 // space between columns
}

// Letter is a US Letter page with 48pt margins.
var Letter = Geometry{Width: 612, Height: 792, Margin: 48, Gutter: 18}

// ContentWidth returns the width inside the margins.
func (g Geometry) ContentWidth() float64 {
	return g.Width - 2*g.Margin
}

// ContentHeight returns the height inside the margins.
func (g Geometry) ContentHeight() float64 {
	return g.Height - 2*g.Margin
}

// Columns returns the main and side column widths for s.
func (g Geometry) Columns(s Style) (main, side float64) {
	w := g.ContentWidth()
	if !s.HasSidebar() {
		return w, 0
	}
	side = w * s.SideRatio
	return w - side - g.Gutter, side
}

// Document is the output of Render.
type Document struct {
	TemplateID string
	Target     Target
	Style      Style
	Geometry   Geometry
	Resume     types.RenderReadyResume
	Pages      []Page
	HTML       string // empty for TargetDOCX
}

// Blocks returns the main-column blocks of every page in order.
func (d *Document) Blocks() []Block {
	var out []Block
	for _, p := range d.Pages {
		out = append(out, p.Main...)
	}
	return out
}

// SidebarBlocks returns the side-column blocks of every page in order.
func (d *Document) SidebarBlocks() []Block {
	var out []Block
	for _, p := range d.Pages {
		out = append(out, p.Sidebar...)
	}
	return out
}
