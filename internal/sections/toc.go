package sections

import (
	"github.com/edulog/bookletflow/internal/compose"
	"github.com/edulog/bookletflow/internal/markup"
	"github.com/edulog/bookletflow/internal/models"
)

// TableOfContents renders the fixed ordered list of section titles. Page
// numbers are forward references; the composer resolves them after the
// numbering pass, once the final section count and order are known.
func TableOfContents(in *models.DocumentInput) compose.Section {
	items := []compose.TOCItem{
		{Title: TitleCover, SectionID: IDCover},
		{Title: TitleAcknowledgement, SectionID: IDAcknowledgement},
		{Title: TitleTOC, SectionID: IDTOC},
	}
	if in.Mode == models.ModeSingleSubject {
		items = append(items, compose.TOCItem{Title: TitleProfile, SectionID: IDProfile})
	}
	items = append(items,
		compose.TOCItem{Title: TitleActivities, SectionID: IDActivities},
		compose.TOCItem{Title: TitleCertificate, SectionID: IDCertificate},
	)

	blocks := []compose.Block{
		compose.Heading{Text: markup.Text(TitleTOC), Level: 1},
		compose.Spacer{Height: 24},
		compose.TOC{Items: items},
	}
	return compose.Section{ID: IDTOC, Title: TitleTOC, Blocks: blocks}
}
