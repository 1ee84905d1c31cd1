// Package docx writes laid-out resume documents as Word files.
package docx

import (
	"bytes"
	"io"
	"strings"

	"baliance.com/gooxml/color"
	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// ContentType is the MIME type of the files Encode produces.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type writer struct {
	doc   *document.Document
	style rendering.Style
}

// Encode writes doc as a .docx file to w. Sections follow the style's order with
// sidebar sections inlined. Experience paragraphs are kept together so Word does not
// break an entry across pages.
func Encode(w io.Writer, doc *rendering.Document) error {
	if doc == nil {
		return &rendering.RenderError{Message: "nil document"}
	}
	wr := &writer{doc: document.New(), style: doc.Style}

	main, side := doc.Blocks(), doc.SidebarBlocks()
	for _, sec := range doc.Style.Sections {
		for _, blocks := range [][]rendering.Block{main, side} {
			for _, b := range blocks {
				if b.Section == sec {
					wr.block(b)
				}
			}
		}
	}

	if err := wr.doc.Save(w); err != nil {
		return &rendering.RenderError{Message: "failed to write docx", Cause: err}
	}
	return nil
}

// Bytes encodes doc into memory.
func Bytes(doc *rendering.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *writer) text(p document.Paragraph, s string, sizePt float64, hex string, bold bool) {
	run := p.AddRun()
	run.AddText(s)
	props := run.Properties()
	props.SetFontFamily(w.style.PrimaryFont())
	props.SetSize(measurement.Distance(sizePt) * measurement.Point)
	props.SetColor(color.FromHex(hex))
	props.SetBold(bold)
}

func (w *writer) block(b rendering.Block) {
	s := w.style
	base := s.Scale.BasePt

	switch b.Kind {
	case rendering.BlockHeader:
		name := w.doc.AddParagraph()
		name.Properties().SetKeepNext(true)
		w.text(name, b.Text, s.NamePt(), s.Palette.Primary, true)
		if len(b.Contact) > 0 {
			contact := w.doc.AddParagraph()
			w.text(contact, strings.Join(b.Contact, " | "), base, s.Palette.Muted, false)
		}

	case rendering.BlockHeading:
		p := w.doc.AddParagraph()
		p.Properties().SetKeepNext(true)
		title := b.Text
		if s.UppercaseHeadings {
			title = strings.ToUpper(title)
		}
		w.text(p, title, s.HeadingPt(), s.Palette.Primary, true)

	case rendering.BlockParagraph:
		w.text(w.doc.AddParagraph(), b.Text, base, s.Palette.Text, false)

	case rendering.BlockSkills:
		w.text(w.doc.AddParagraph(), strings.Join(b.Items, ", "), base, s.Palette.Text, false)

	case rendering.BlockExperience:
		e := b.Experience
		title := w.doc.AddParagraph()
		title.Properties().SetKeepNext(true)
		w.text(title, e.Title, base*1.1, s.Palette.Text, true)

		meta := w.doc.AddParagraph()
		meta.Properties().SetKeepNext(len(e.Points) > 0)
		w.text(meta, e.Company, base, s.Palette.Accent, false)
		if dates := rendering.DateRange(e.StartDate, e.EndDate); dates != "" {
			w.text(meta, "  "+dates, base, s.Palette.Muted, false)
		}

		for i, point := range e.Points {
			p := w.doc.AddParagraph()
			p.Properties().SetStartIndent(12 * measurement.Point)
			p.Properties().SetKeepOnOnePage(true)
			p.Properties().SetKeepNext(i < len(e.Points)-1)
			w.text(p, "• "+point, base, s.Palette.Text, false)
		}
	}
}
