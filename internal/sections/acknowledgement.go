package sections

import (
	"github.com/edulog/bookletflow/internal/compose"
	"github.com/edulog/bookletflow/internal/markup"
	"github.com/edulog/bookletflow/internal/models"
)

const acknowledgementBody = "This logbook is a true record of the activities undertaken during the " +
	"training period. The entries herein were logged by the candidate and reviewed through the " +
	"platform's approval workflow. The candidate acknowledges that the contents are accurate and " +
	"complete to the best of their knowledge."

// Acknowledgement renders the static boilerplate paragraph, the signature
// line and the generated-on date captured at aggregation time.
func Acknowledgement(in *models.DocumentInput, loc markup.Locale) compose.Section {
	blocks := []compose.Block{
		compose.Heading{Text: markup.Text(TitleAcknowledgement), Level: 1},
		compose.Spacer{Height: 24},
		compose.Paragraph{Text: markup.Text(acknowledgementBody)},
		compose.Spacer{Height: 48},
		compose.SignatureGrid{Boxes: []compose.SignatureBox{
			{Role: "Candidate", Name: in.Subject.Name},
		}},
		compose.Spacer{Height: 24},
		compose.Paragraph{Text: markup.Text("Generated on " + loc.FormatDate(in.GeneratedAt))},
	}
	return compose.Section{ID: IDAcknowledgement, Title: TitleAcknowledgement, Blocks: blocks}
}
