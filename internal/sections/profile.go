package sections

import (
	"github.com/edulog/bookletflow/internal/compose"
	"github.com/edulog/bookletflow/internal/markup"
	"github.com/edulog/bookletflow/internal/models"
)

// Profile renders the subject's static attributes as a label/value grid,
// plus a fixed-shape blank credentials table. The blank table is a
// deliberate fill-in-the-blank artifact: the upstream data does not carry
// credentials yet, so the printed booklet leaves room to write them in.
func Profile(in *models.DocumentInput, loc markup.Locale) compose.Section {
	s := in.Subject

	grid := compose.LabelGrid{Rows: []compose.LabelValue{
		{Label: "Full Name", Value: s.Name.OrPlaceholder()},
		{Label: "Email", Value: s.Email.OrPlaceholder()},
		{Label: "Registration No.", Value: s.RegNo.OrPlaceholder()},
		{Label: "Alternate Registration No.", Value: s.AltRegNo.OrPlaceholder()},
		{Label: "Program", Value: s.Program.OrPlaceholder()},
		{Label: "Academic Year", Value: s.AcademicYear.OrPlaceholder()},
		{Label: "Rotation Start", Value: markup.Text(loc.FormatDate(s.RotationStart))},
		{Label: "Rotation End", Value: markup.Text(loc.FormatDate(s.RotationEnd))},
		{Label: "Guardian", Value: s.GuardianName.OrPlaceholder()},
		{Label: "Guardian Phone", Value: s.GuardianPhone.OrPlaceholder()},
		{Label: "Emergency Contact", Value: s.EmergencyContact.OrPlaceholder()},
	}}

	blankRow := func() []markup.SafeText {
		return []markup.SafeText{{}, {}, {}}
	}
	credentials := compose.Table{
		Header: []string{"Qualification", "Institution", "Year"},
		Rows: [][]markup.SafeText{
			blankRow(), blankRow(), blankRow(), blankRow(),
		},
	}

	blocks := []compose.Block{
		compose.Heading{Text: markup.Text(TitleProfile), Level: 1},
		compose.Spacer{Height: 24},
		grid,
		compose.Spacer{Height: 24},
		compose.Heading{Text: markup.Text("Academic Credentials"), Level: 2},
		credentials,
	}
	if s.AvatarURL != "" {
		blocks = append([]compose.Block{compose.Figure{URL: s.AvatarURL, Alt: s.Name.OrPlaceholder(), Width: 72}}, blocks...)
	}

	return compose.Section{ID: IDProfile, Title: TitleProfile, Blocks: blocks}
}
