package sections

import (
	"github.com/edulog/bookletflow/internal/compose"
	"github.com/edulog/bookletflow/internal/markup"
	"github.com/edulog/bookletflow/internal/models"
)

// Cover renders organization/department branding, the subject identity
// block and a fixed set of signature placeholder lines.
func Cover(in *models.DocumentInput, loc markup.Locale) compose.Section {
	blocks := []compose.Block{}

	if in.Organization.LogoURL != "" {
		blocks = append(blocks, compose.Figure{
			URL:   in.Organization.LogoURL,
			Alt:   in.Organization.Name.OrPlaceholder(),
			Width: 96,
		})
	}
	blocks = append(blocks,
		compose.Heading{Text: in.Organization.Name.OrPlaceholder(), Level: 1},
		compose.Heading{Text: in.Department.Name.OrPlaceholder(), Level: 2},
		compose.Spacer{Height: 24},
		compose.Heading{Text: markup.Text("Activity Logbook"), Level: 2},
		compose.Spacer{Height: 24},
	)

	identity := compose.LabelGrid{Rows: []compose.LabelValue{
		{Label: "Name", Value: in.Subject.Name.OrPlaceholder()},
		{Label: "Registration No.", Value: in.Subject.RegNo.OrPlaceholder()},
		{Label: "Program", Value: in.Subject.Program.OrPlaceholder()},
		{Label: "Academic Year", Value: in.Subject.AcademicYear.OrPlaceholder()},
		{Label: "Rotation", Value: rotationWindow(in.Subject, loc)},
	}}
	blocks = append(blocks, identity, compose.Spacer{Height: 48})

	blocks = append(blocks, compose.SignatureGrid{Boxes: []compose.SignatureBox{
		{Role: "Candidate"},
		{Role: "Supervisor", Name: in.Issuer.Name},
	}})

	return compose.Section{ID: IDCover, Title: TitleCover, Blocks: blocks}
}

// rotationWindow formats "start — end" with per-side placeholders so a
// half-known window still reads as a range.
func rotationWindow(s models.Subject, loc markup.Locale) markup.SafeText {
	return markup.Text(loc.FormatDate(s.RotationStart) + " — " + loc.FormatDate(s.RotationEnd))
}
