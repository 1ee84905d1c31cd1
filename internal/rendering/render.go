package rendering

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// Render renders resume with a built-in template.
func Render(templateID string, resume types.RenderReadyResume, target Target) (*Document, error) {
	return DefaultRegistry().Render(templateID, resume, target)
}

// Render lays out resume with the template templateID for target.
//
// Screen and DOCX documents are one continuous page; Word paginates DOCX itself using
// the blocks' keep-together hints. PDF documents are paginated on Letter pages.
func (r *Registry) Render(templateID string, resume types.RenderReadyResume, target Target) (*Document, error) {
	style, err := r.Get(templateID)
	if err != nil {
		return nil, err
	}
	switch target {
	case TargetScreen, TargetPDF, TargetDOCX:
	default:
		return nil, &RenderError{Message: fmt.Sprintf("unknown target %q", target)}
	}

	geom := Letter
	mainWidth, sideWidth := geom.Columns(style)

	var header, main, side []Block
	for _, sec := range style.Sections {
		switch {
		case sec == SectionHeader:
			header = append(header, headerBlock(style, resume, geom.ContentWidth()))
		case style.InSidebar(sec):
			side = append(side, sectionBlocks(style, resume, sec, sideWidth)...)
		default:
			main = append(main, sectionBlocks(style, resume, sec, mainWidth)...)
		}
	}

	doc := &Document{
		TemplateID: templateID,
		Target:     target,
		Style:      style,
		Geometry:   geom,
		Resume:     resume,
	}

	if target == TargetPDF {
		doc.Pages = paginatePages(header, main, side, geom.ContentHeight())
	} else {
		doc.Pages = []Page{{Number: 1, Main: append(header, main...), Sidebar: side}}
	}

	if target != TargetDOCX {
		html, err := renderHTML(doc)
		if err != nil {
			return nil, err
		}
		doc.HTML = html
	}
	return doc, nil
}

// paginatePages flows the main and side columns independently below the header,
// which occupies the top of the first page across both columns.
func paginatePages(header, main, side []Block, avail float64) []Page {
	var offset float64
	for _, b := range header {
		offset += b.Height
	}
	mainPages := paginate(main, avail, offset)
	sidePages := paginate(side, avail, offset)

	n := max(len(mainPages), len(sidePages), 1)
	pages := make([]Page, n)
	for i := range pages {
		pages[i].Number = i + 1
		if i < len(mainPages) {
			pages[i].Main = mainPages[i]
		}
		if i < len(sidePages) {
			pages[i].Sidebar = sidePages[i]
		}
	}
	pages[0].Main = append(append([]Block(nil), header...), pages[0].Main...)
	return pages
}
