package rendering

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body class="target-{{.Target}} layout-{{.Layout}}" data-template="{{.TemplateID}}">
{{- range .Pages}}
<section class="page" data-page="{{.Number}}">
{{- range .Header}}{{template "block" .}}{{end}}
<div class="columns">
<div class="main">{{range .Main}}{{template "block" .}}{{end}}</div>
{{- if $.HasSidebar}}
<aside class="side">{{range .Sidebar}}{{template "block" .}}{{end}}</aside>
{{- end}}
</div>
</section>
{{- end}}
</body>
</html>
{{define "block"}}
{{- if eq .Kind "header"}}
<header class="resume-header"><h1>{{.Text}}</h1>{{if .Contact}}<p class="contact">{{join .Contact " | "}}</p>{{end}}</header>
{{- else if eq .Kind "heading"}}
<h2 class="section-heading section-{{.Section}}">{{.Text}}</h2>
{{- else if eq .Kind "paragraph"}}
<p class="summary">{{.Text}}</p>
{{- else if eq .Kind "skills"}}
<ul class="skills">{{range .Items}}<li>{{.}}</li>{{end}}</ul>
{{- else if eq .Kind "experience"}}
<article class="experience{{if .Continued}} continued{{end}}" data-id="{{.Experience.ID}}">
<div class="experience-head"><h3>{{.Experience.Title}}{{if .Continued}} (continued){{end}}</h3>
{{- with .Experience.Company}}<span class="company">{{.}}</span>{{end}}
{{- with dates .Experience}}<span class="dates">{{.}}</span>{{end}}</div>
<ul class="points">{{range .Experience.Points}}<li>{{.}}</li>{{end}}</ul>
</article>
{{- end}}
{{- end}}`

var htmlTemplate = template.Must(template.New("document").Funcs(template.FuncMap{
	"join":  strings.Join,
	"dates": func(e *types.RenderedExperience) string { return DateRange(e.StartDate, e.EndDate) },
}).Parse(documentTemplate))

type htmlPage struct {
	Number  int
	Header  []Block
	Main    []Block
	Sidebar []Block
}

type htmlView struct {
	Title      string
	TemplateID string
	CSS        template.CSS
	Target     Target
	Layout     Layout
	HasSidebar bool
	Pages      []htmlPage
}

// DateRange formats the date span of an entry; an open-ended span reads "Present".
// Every encoder prints dates through it.
func DateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start + " – Present"
	default:
		return start + " – " + end
	}
}

func renderHTML(doc *Document) (string, error) {
	view := htmlView{
		Title:      doc.Resume.Name,
		TemplateID: doc.TemplateID,
		CSS:        template.CSS(stylesheet(doc.Style, doc.Target, doc.Geometry)), //nolint:gosec // built from registry descriptors only
		Target:     doc.Target,
		Layout:     doc.Style.Layout,
		HasSidebar: doc.Style.HasSidebar(),
	}
	if view.Title == "" {
		view.Title = "Resume"
	}
	for _, p := range doc.Pages {
		hp := htmlPage{Number: p.Number, Sidebar: p.Sidebar}
		for _, b := range p.Main {
			if b.Kind == BlockHeader {
				hp.Header = append(hp.Header, b)
			} else {
				hp.Main = append(hp.Main, b)
			}
		}
		view.Pages = append(view.Pages, hp)
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, view); err != nil {
		return "", &RenderError{Message: "failed to execute HTML template", Cause: err}
	}
	return buf.String(), nil
}

// stylesheet builds the CSS for a style. Print targets get page rules and
// explicit breaks matching the computed pagination.
func stylesheet(s Style, target Target, g Geometry) string {
	var b strings.Builder
	p := s.Palette
	lh := s.Scale.LineHeight

	fmt.Fprintf(&b, "body{margin:0;background:%s;color:%s;font-family:%s;font-size:%.1fpt;line-height:%.2f}",
		p.Background, p.Text, s.FontFamily, s.Scale.BasePt, lh)
	fmt.Fprintf(&b, "h1{margin:0;color:%s;font-size:%.1fpt}", p.Primary, s.NamePt())
	fmt.Fprintf(&b, ".contact{margin:0;color:%s}", p.Muted)
	fmt.Fprintf(&b, ".section-heading{margin:4pt 0 0;color:%s;font-size:%.1fpt}", p.Primary, s.HeadingPt())
	fmt.Fprintf(&b, ".experience h3{display:inline;margin:0;font-size:%.1fpt;color:%s}", s.Scale.BasePt*1.1, p.Text)
	fmt.Fprintf(&b, ".company{display:block;color:%s}.dates{float:right;color:%s}", p.Accent, p.Muted)
	b.WriteString(".points{margin:0;padding-left:12pt}.summary{margin:0 0 8pt}")
	b.WriteString(".skills{list-style:none;margin:0 0 8pt;padding:0}")

	if s.SkillChips {
		fmt.Fprintf(&b, ".skills li{display:inline-block;margin:0 4pt 4pt 0;padding:1pt 4pt;border:1px solid %s;border-radius:3pt}", p.Accent)
	} else {
		b.WriteString(`.skills li{display:inline}.skills li+li::before{content:", "}`)
	}
	if s.UppercaseHeadings {
		b.WriteString(".section-heading{text-transform:uppercase;letter-spacing:0.06em}")
	}
	if s.HeaderRule {
		fmt.Fprintf(&b, ".resume-header{border-bottom:1pt solid %s;padding-bottom:4pt;margin-bottom:8pt}", p.Primary)
	}
	if s.AccentBar {
		fmt.Fprintf(&b, ".resume-header{border-left:6pt solid %s;padding-left:8pt;margin-bottom:8pt}", p.Accent)
	}

	if s.HasSidebar() {
		main, side := g.Columns(s)
		if s.Layout == LayoutSidebarLeft {
			fmt.Fprintf(&b, ".columns{display:grid;grid-template-columns:%.0fpt %.0fpt;column-gap:%.0fpt}", side, main, g.Gutter)
			b.WriteString(".side{grid-column:1;grid-row:1}.main{grid-column:2;grid-row:1}")
		} else {
			fmt.Fprintf(&b, ".columns{display:grid;grid-template-columns:%.0fpt %.0fpt;column-gap:%.0fpt}", main, side, g.Gutter)
		}
	}

	switch target {
	case TargetPDF:
		fmt.Fprintf(&b, "@page{size:%.0fpt %.0fpt;margin:%.0fpt}", g.Width, g.Height, g.Margin)
		b.WriteString(".page{break-after:page}.page:last-child{break-after:auto}")
		b.WriteString(".experience,.resume-header,.skills{break-inside:avoid}.section-heading{break-after:avoid}")
	default:
		fmt.Fprintf(&b, ".page{max-width:%.0fpt;margin:0 auto;padding:%.0fpt}", g.Width, g.Margin)
	}
	return b.String()
}
