// Package markup holds the text-safety boundary and the small formatting
// helpers shared by every section builder. All user-supplied strings enter
// the document model as SafeText; the raw value is only ever released
// through an output-format-specific accessor, so a builder cannot embed an
// unescaped string by accident.
package markup

import (
	"html"
	"html/template"
)

// Placeholder is rendered wherever an optional field is absent. The
// document is a printable form, so missing values become a line to fill in
// by hand rather than an empty gap.
const Placeholder = "______________"

// SafeText wraps a user-supplied string. The zero value is "absent" and
// renders as Placeholder.
type SafeText struct {
	raw string
}

// Text wraps a raw upstream string. This is the single entry point for
// user-controlled text into the document model.
func Text(raw string) SafeText {
	return SafeText{raw: raw}
}

// IsZero reports whether the field was absent or empty upstream.
func (t SafeText) IsZero() bool { return t.raw == "" }

// Raw returns the unescaped value. Only output backends that do not
// interpret markup (the PDF layout engine) may use it.
func (t SafeText) Raw() string { return t.raw }

// HTML returns the value escaped for embedding in HTML text content.
func (t SafeText) HTML() template.HTML {
	return template.HTML(html.EscapeString(t.raw))
}

// OrPlaceholder substitutes the placeholder glyph for an absent value.
func (t SafeText) OrPlaceholder() SafeText {
	if t.IsZero() {
		return SafeText{raw: Placeholder}
	}
	return t
}

// Or returns t, or fallback when t is absent.
func (t SafeText) Or(fallback string) SafeText {
	if t.IsZero() {
		return SafeText{raw: fallback}
	}
	return t
}
