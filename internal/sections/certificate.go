package sections

import (
	"fmt"

	"github.com/edulog/bookletflow/internal/compose"
	"github.com/edulog/bookletflow/internal/markup"
	"github.com/edulog/bookletflow/internal/models"
)

// Certificate renders the closing attestation paragraph and the grid of
// named signature boxes. Box labels are data-driven where a corresponding
// name exists; missing names leave the box blank for hand signing.
func Certificate(in *models.DocumentInput) compose.Section {
	attestation := fmt.Sprintf(
		"This is to certify that %s has satisfactorily completed the logged activities "+
			"recorded in this booklet under the supervision of the Department of %s, %s.",
		in.Subject.Name.OrPlaceholder().Raw(),
		in.Department.Name.OrPlaceholder().Raw(),
		in.Organization.Name.OrPlaceholder().Raw(),
	)

	blocks := []compose.Block{
		compose.Heading{Text: markup.Text(TitleCertificate), Level: 1},
		compose.Spacer{Height: 36},
		compose.Paragraph{Text: markup.Text(attestation), Centered: true},
		compose.Spacer{Height: 72},
		compose.SignatureGrid{Boxes: []compose.SignatureBox{
			{Role: "Candidate", Name: in.Subject.Name},
			{Role: "Supervising Staff", Name: in.Signatories.StaffName.Or(in.Issuer.Name.Raw())},
			{Role: "Head of Department", Name: in.Signatories.HeadOfDepartmentName},
			{Role: "Principal", Name: in.Signatories.PrincipalName},
		}},
	}

	return compose.Section{ID: IDCertificate, Title: TitleCertificate, Blocks: blocks}
}
