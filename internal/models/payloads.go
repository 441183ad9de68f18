package models

// These structs define the JSON payloads for the HTTP report-generation
// endpoints exposed by cmd/bookletd.

// BookletRequest triggers generation of a single-subject booklet.
type BookletRequest struct {
	SubjectID      string `json:"subjectId"`
	Backend        string `json:"backend"` // "print" or "pdf"
	Locale         string `json:"locale"`
	OverallRemarks string `json:"overallRemarks"`
}

// RosterRequest triggers generation of a roster booklet covering every
// subject supervised by one staff member.
type RosterRequest struct {
	IssuerID       string `json:"issuerId"`
	Backend        string `json:"backend"`
	Locale         string `json:"locale"`
	OverallRemarks string `json:"overallRemarks"`
}

// RasterRequest embeds an already-captured bitmap of a simple tabular
// report into a PDF. The image arrives base64-encoded from the host.
type RasterRequest struct {
	ReportKind  string `json:"reportKind"`
	SubjectName string `json:"subjectName"`
	ImageBase64 string `json:"imageBase64"`
}

// GenerateResponse reports the outcome of one generation cycle.
type GenerateResponse struct {
	Status       string `json:"status"`
	CycleID      string `json:"cycleId"`
	ArtifactPath string `json:"artifactPath,omitempty"`
	Pages        int    `json:"pages,omitempty"`
}
