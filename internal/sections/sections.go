// Package sections holds one builder per booklet section. Builders are
// pure: they read DocumentInput, never mutate it, and never fail on
// missing optional data — every optional field has a placeholder fallback.
package sections

// Canonical section identifiers, in composition order.
const (
	IDCover           = "cover"
	IDAcknowledgement = "acknowledgement"
	IDTOC             = "toc"
	IDProfile         = "profile"
	IDActivities      = "activities"
	IDCertificate     = "certificate"
)

// Display titles used by the table of contents and section headings.
const (
	TitleCover           = "Cover Page"
	TitleAcknowledgement = "Acknowledgement"
	TitleTOC             = "Table of Contents"
	TitleProfile         = "Profile / Curriculum Vitae"
	TitleActivities      = "Activity Log"
	TitleCertificate     = "Certificate"
)
