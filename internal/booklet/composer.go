// Package booklet assembles the composed document for one generation
// cycle: it runs the section builders in canonical order, numbers the
// resulting page containers, resolves the table-of-contents references and
// fills the running header/footer.
package booklet

import (
	"fmt"

	"github.com/edulog/bookletflow/internal/compose"
	"github.com/edulog/bookletflow/internal/markup"
	"github.com/edulog/bookletflow/internal/models"
	"github.com/edulog/bookletflow/internal/sections"
)

// Compose builds the complete section tree for a DocumentInput. Given the
// same input it produces an identical document; nothing here reads the
// clock or any other ambient state.
func Compose(in *models.DocumentInput, loc markup.Locale) (*compose.Document, error) {
	secs := []compose.Section{
		sections.Cover(in, loc),
		sections.Acknowledgement(in, loc),
		sections.TableOfContents(in),
	}
	if in.Mode == models.ModeSingleSubject {
		secs = append(secs, sections.Profile(in, loc))
	}

	activities, err := sections.Activities(in, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to build activity section: %w", err)
	}
	secs = append(secs, activities, sections.Certificate(in))

	// Numbering pass. Runs after assembly because the numbers depend on
	// the final section count and order, and before dispatch.
	for i := range secs {
		secs[i].PageNo = i + 1
	}
	resolveTOC(secs)

	doc := &compose.Document{
		Title:       bookletTitle(in),
		HeaderLeft:  headerLeft(in),
		HeaderRight: headerRight(in),
		FooterLeft:  in.Subject.Name.OrPlaceholder(),
		Sections:    secs,
	}
	return doc, nil
}

// resolveTOC writes the assigned page numbers back into the ToC forward
// references. Sections absent from the document keep a zero reference.
func resolveTOC(secs []compose.Section) {
	pages := make(map[string]int, len(secs))
	for _, s := range secs {
		pages[s.ID] = s.PageNo
	}
	for si := range secs {
		for bi, b := range secs[si].Blocks {
			toc, ok := b.(compose.TOC)
			if !ok {
				continue
			}
			items := make([]compose.TOCItem, len(toc.Items))
			copy(items, toc.Items)
			for ii := range items {
				items[ii].PageNo = pages[items[ii].SectionID]
			}
			secs[si].Blocks[bi] = compose.TOC{Items: items}
		}
	}
}

func bookletTitle(in *models.DocumentInput) string {
	if in.Mode == models.ModeRoster {
		return "Roster Activity Booklet"
	}
	return "Activity Logbook"
}

func headerLeft(in *models.DocumentInput) markup.SafeText {
	org := in.Organization.Name.OrPlaceholder().Raw()
	dept := in.Department.Name.Raw()
	if dept == "" {
		return markup.Text(org)
	}
	return markup.Text(org + " — " + dept)
}

// headerRight shows a context-appropriate identifier: the subject id for a
// subject-centric booklet, the staff name for a roster booklet.
func headerRight(in *models.DocumentInput) markup.SafeText {
	if in.Mode == models.ModeRoster {
		return in.Issuer.Name.OrPlaceholder()
	}
	return markup.Text(in.Subject.ID)
}
