// Package compose turns section fragments into one complete, numbered
// document. The document is a structured section tree rather than raw
// markup so that both the HTML/print path and the native PDF layout
// backend can consume it.
package compose

import "github.com/edulog/bookletflow/internal/markup"

// Block is one layout element inside a section. The set is closed; output
// backends switch over the concrete types.
type Block interface {
	blockNode()
}

// Heading is a section or sub-section title.
type Heading struct {
	Text  markup.SafeText
	Level int // 1 = section title
}

// Paragraph is flowing text. Preserve keeps source newlines intact
// (white-space: pre-wrap semantics) for free-text descriptions.
type Paragraph struct {
	Text     markup.SafeText
	Preserve bool
	Centered bool
}

// Remark is the issuer's overall-remarks block, visually distinguished
// from regular paragraphs.
type Remark struct {
	Text markup.SafeText
}

// Figure references an already-absolute image URL (logo, avatar). The
// document never embeds the binary; backends that cannot reference a URL
// fall back to Alt.
type Figure struct {
	URL   string
	Alt   markup.SafeText
	Width int // points; 0 means backend default
}

// LabelValue is one row of a label/value grid.
type LabelValue struct {
	Label string // fixed UI string, not user text
	Value markup.SafeText
}

// LabelGrid is a two-column attribute grid (profile page, identity block).
type LabelGrid struct {
	Rows []LabelValue
}

// Table is a fixed-shape table. Cells hold user text; header labels are
// fixed UI strings.
type Table struct {
	Header []string
	Rows   [][]markup.SafeText
}

// EntryItem is one rendered activity record.
type EntryItem struct {
	Date        string // already locale-formatted
	Title       markup.SafeText
	Kind        markup.SafeText
	Status      string
	StatusColor string
	Description markup.SafeText
	Attachments []markup.SafeText // "name (N.N KB)" labels, already derived
}

// EntryGroup is one subject's run of activity records. Title is empty for
// the implicit single group of a subject-centric booklet.
type EntryGroup struct {
	Title   markup.SafeText
	Entries []EntryItem
}

// SignatureBox is one labelled signing slot.
type SignatureBox struct {
	Role string // fixed UI string
	Name markup.SafeText
}

// SignatureGrid lays signature boxes side by side.
type SignatureGrid struct {
	Boxes []SignatureBox
}

// TOC is the table-of-contents listing. PageNo values are zero until the
// composer's numbering pass resolves them.
type TOCItem struct {
	Title     string
	SectionID string
	PageNo    int
}

type TOC struct {
	Items []TOCItem
}

// Spacer inserts vertical whitespace, in points.
type Spacer struct {
	Height int
}

func (Heading) blockNode()       {}
func (Paragraph) blockNode()     {}
func (Remark) blockNode()        {}
func (Figure) blockNode()        {}
func (LabelGrid) blockNode()     {}
func (Table) blockNode()         {}
func (EntryGroup) blockNode()    {}
func (SignatureGrid) blockNode() {}
func (TOC) blockNode()           {}
func (Spacer) blockNode()        {}

// Section is one page-equivalent fragment. Each section starts on a new
// printed page; PageNo is assigned by the composer after assembly.
type Section struct {
	ID     string
	Title  string
	PageNo int
	Blocks []Block
}

// Document is the composed, ordered booklet plus its running header and
// footer strings. Header/footer are static per render except the page
// number, which each backend resolves per page container.
type Document struct {
	Title       string
	HeaderLeft  markup.SafeText
	HeaderRight markup.SafeText
	FooterLeft  markup.SafeText
	Sections    []Section
}
