package compose

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"
)

// RenderHTML produces the complete, self-contained markup document: inline
// styles only, no external references beyond already-absolute image URLs.
// Rendering is deterministic — the same document yields identical bytes.
func RenderHTML(doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := docTmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render document markup: %w", err)
	}
	return buf.String(), nil
}

var docTmpl = template.Must(template.New("booklet").
	Funcs(template.FuncMap{"renderBlock": renderBlock}).
	Parse(docTemplate))

// The single shared page-break rule lives here: every section container is
// a .page, so each section begins on a new printed page without the
// builders managing breaks individually.
const docTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Georgia, 'Times New Roman', serif; font-size: 12pt; color: #1a1a1a; margin: 0; }
  .page { page-break-after: always; padding: 48pt 56pt; min-height: 720pt; position: relative; }
  .running-header, .running-footer { display: flex; justify-content: space-between; font-size: 9pt; color: #555; }
  .running-header { border-bottom: 1px solid #999; padding-bottom: 4pt; margin-bottom: 18pt; }
  .running-footer { border-top: 1px solid #999; padding-top: 4pt; margin-top: 18pt; }
  h1 { font-size: 20pt; text-align: center; margin: 6pt 0; }
  h2 { font-size: 15pt; text-align: center; margin: 4pt 0; }
  h3 { font-size: 12pt; margin: 12pt 0 4pt; border-bottom: 1px solid #ccc; }
  p.centered { text-align: center; }
  .preserve { white-space: pre-wrap; }
  .remark { background: #fff8dc; border-left: 4px solid #f9a825; padding: 8pt 10pt; margin: 10pt 0; }
  table { border-collapse: collapse; width: 100%; }
  table.grid td { padding: 4pt 6pt; vertical-align: top; }
  table.grid td.label { width: 35%; font-weight: bold; }
  table.data th, table.data td { border: 1px solid #888; padding: 6pt; height: 16pt; text-align: left; }
  table.toc td { padding: 4pt 2pt; border-bottom: 1px dotted #aaa; }
  table.toc td.pageno { text-align: right; width: 10%; }
  .entry { margin: 10pt 0; padding-bottom: 8pt; border-bottom: 1px solid #e0e0e0; }
  .entry-head { display: flex; gap: 8pt; align-items: baseline; }
  .entry-date { color: #555; font-size: 10pt; }
  .entry-kind { font-style: italic; color: #555; font-size: 10pt; }
  .badge { color: #fff; font-size: 8pt; padding: 1pt 6pt; border-radius: 8pt; text-transform: uppercase; }
  .entry-desc { margin: 4pt 0; }
  ul.attachments { margin: 2pt 0 0 14pt; font-size: 10pt; color: #333; }
  .signatures { display: flex; gap: 24pt; justify-content: space-around; margin-top: 24pt; }
  .sig-box { text-align: center; min-width: 120pt; }
  .sig-line { border-bottom: 1px solid #1a1a1a; height: 28pt; margin-bottom: 4pt; }
  .sig-role { font-size: 10pt; font-weight: bold; }
  .sig-name { font-size: 10pt; color: #333; }
  .logo { display: block; margin: 0 auto 12pt; }
</style>
</head>
<body>
{{- range .Sections}}
<div class="page" id="{{.ID}}">
<div class="running-header"><span>{{$.HeaderLeft.HTML}}</span><span>{{$.HeaderRight.HTML}}</span></div>
{{- range .Blocks}}
{{renderBlock .}}
{{- end}}
<div class="running-footer"><span>{{$.FooterLeft.HTML}}</span><span class="pageno">Page {{.PageNo}}</span></div>
</div>
{{- end}}
</body>
</html>
`

// renderBlock emits the markup for one block. All user-controlled text
// reaches this function as SafeText and is escaped through its HTML
// accessor; fixed UI strings are escaped anyway, which is harmless.
func renderBlock(b Block) template.HTML {
	var sb strings.Builder
	switch v := b.(type) {
	case Heading:
		level := v.Level
		if level < 1 || level > 3 {
			level = 3
		}
		fmt.Fprintf(&sb, "<h%d>%s</h%d>", level, v.Text.HTML(), level)

	case Paragraph:
		classes := []string{}
		if v.Preserve {
			classes = append(classes, "preserve")
		}
		if v.Centered {
			classes = append(classes, "centered")
		}
		if len(classes) > 0 {
			fmt.Fprintf(&sb, `<p class="%s">%s</p>`, strings.Join(classes, " "), v.Text.HTML())
		} else {
			fmt.Fprintf(&sb, "<p>%s</p>", v.Text.HTML())
		}

	case Remark:
		fmt.Fprintf(&sb, `<div class="remark preserve">%s</div>`, v.Text.HTML())

	case Figure:
		fmt.Fprintf(&sb, `<img class="logo" src="%s" alt="%s" width="%d">`,
			html.EscapeString(v.URL), v.Alt.HTML(), v.Width)

	case LabelGrid:
		sb.WriteString(`<table class="grid">`)
		for _, row := range v.Rows {
			fmt.Fprintf(&sb, `<tr><td class="label">%s</td><td>%s</td></tr>`,
				html.EscapeString(row.Label), row.Value.HTML())
		}
		sb.WriteString("</table>")

	case Table:
		sb.WriteString(`<table class="data"><tr>`)
		for _, h := range v.Header {
			fmt.Fprintf(&sb, "<th>%s</th>", html.EscapeString(h))
		}
		sb.WriteString("</tr>")
		for _, row := range v.Rows {
			sb.WriteString("<tr>")
			for _, cell := range row {
				fmt.Fprintf(&sb, "<td>%s</td>", cell.HTML())
			}
			sb.WriteString("</tr>")
		}
		sb.WriteString("</table>")

	case EntryGroup:
		if !v.Title.IsZero() {
			fmt.Fprintf(&sb, "<h3>%s</h3>", v.Title.HTML())
		}
		for _, e := range v.Entries {
			sb.WriteString(`<div class="entry"><div class="entry-head">`)
			fmt.Fprintf(&sb, `<span class="entry-date">%s</span>`, html.EscapeString(e.Date))
			fmt.Fprintf(&sb, "<strong>%s</strong>", e.Title.HTML())
			fmt.Fprintf(&sb, `<span class="entry-kind">%s</span>`, e.Kind.HTML())
			fmt.Fprintf(&sb, `<span class="badge" style="background:%s">%s</span>`,
				e.StatusColor, html.EscapeString(e.Status))
			sb.WriteString("</div>")
			fmt.Fprintf(&sb, `<div class="entry-desc preserve">%s</div>`, e.Description.HTML())
			if len(e.Attachments) > 0 {
				sb.WriteString(`<ul class="attachments">`)
				for _, a := range e.Attachments {
					fmt.Fprintf(&sb, "<li>%s</li>", a.HTML())
				}
				sb.WriteString("</ul>")
			}
			sb.WriteString("</div>")
		}

	case SignatureGrid:
		sb.WriteString(`<div class="signatures">`)
		for _, box := range v.Boxes {
			sb.WriteString(`<div class="sig-box"><div class="sig-line"></div>`)
			fmt.Fprintf(&sb, `<div class="sig-role">%s</div>`, html.EscapeString(box.Role))
			if !box.Name.IsZero() {
				fmt.Fprintf(&sb, `<div class="sig-name">%s</div>`, box.Name.HTML())
			}
			sb.WriteString("</div>")
		}
		sb.WriteString("</div>")

	case TOC:
		sb.WriteString(`<table class="toc">`)
		for _, item := range v.Items {
			fmt.Fprintf(&sb, `<tr><td>%s</td><td class="pageno">%d</td></tr>`,
				html.EscapeString(item.Title), item.PageNo)
		}
		sb.WriteString("</table>")

	case Spacer:
		fmt.Fprintf(&sb, `<div style="height:%dpt"></div>`, v.Height)
	}
	return template.HTML(sb.String())
}
