package markup

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Locale selects the calendar-date layout for the viewer. Build one from a
// BCP-47 tag with ParseLocale; the zero value renders ISO dates.
type Locale struct {
	layout string
}

var localeMatcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish, // first tag is the fallback
	language.BritishEnglish,
	language.French,
	language.German,
	language.Swahili,
})

var dateLayouts = map[string]string{
	"en-US": "Jan 2, 2006",
	"en-GB": "2 Jan 2006",
	"fr":    "02/01/2006",
	"de":    "02.01.2006",
	"sw":    "02/01/2006",
}

const isoLayout = "2006-01-02"

// ParseLocale resolves a viewer-supplied language tag to a supported date
// layout. Unknown or empty tags fall back to ISO formatting rather than
// failing the render.
func ParseLocale(tag string) Locale {
	if tag == "" {
		return Locale{layout: isoLayout}
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return Locale{layout: isoLayout}
	}
	matched, _, conf := localeMatcher.Match(parsed)
	if conf == language.No {
		return Locale{layout: isoLayout}
	}
	if layout, ok := dateLayouts[matched.String()]; ok {
		return Locale{layout: layout}
	}
	base, _ := matched.Base()
	if layout, ok := dateLayouts[base.String()]; ok {
		return Locale{layout: layout}
	}
	return Locale{layout: isoLayout}
}

// FormatDate renders a calendar date in the viewer's locale. Zero times
// render as the placeholder glyph; dates carry no time-of-day semantics.
func (l Locale) FormatDate(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	layout := l.layout
	if layout == "" {
		layout = isoLayout
	}
	return t.Format(layout)
}

// FormatSizeKB renders a byte count as kilobytes with one decimal place,
// e.g. 2048 -> "2.0 KB".
func FormatSizeKB(bytes int64) string {
	return fmt.Sprintf("%.1f KB", float64(bytes)/1024.0)
}

// AttachmentLabel derives a display name from an attachment URL: the last
// path segment, percent-decoded. A URL that cannot be decoded degrades to
// the raw URL so the attachment still renders.
func AttachmentLabel(rawURL string) string {
	trimmed := rawURL
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	trimmed = strings.TrimSuffix(trimmed, "/")
	segment := trimmed
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		segment = trimmed[i+1:]
	}
	if segment == "" {
		return rawURL
	}
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return rawURL
	}
	return decoded
}

var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slug converts a display string into a safe file name component.
func Slug(s string) string {
	lower := strings.ToLower(s)
	sanitized := nonAlphanumericRegex.ReplaceAllString(lower, "_")
	sanitized = strings.Trim(sanitized, "_")

	const maxLength = 100
	if len(sanitized) > maxLength {
		sanitized = sanitized[:maxLength]
		sanitized = strings.Trim(sanitized, "_")
	}
	return sanitized
}
