package booklet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulog/bookletflow/internal/compose"
	"github.com/edulog/bookletflow/internal/markup"
	"github.com/edulog/bookletflow/internal/models"
	"github.com/edulog/bookletflow/internal/sections"
)

func singleSubjectInput() *models.DocumentInput {
	return &models.DocumentInput{
		CycleID:      "cycle-1",
		Mode:         models.ModeSingleSubject,
		Subject:      models.Subject{ID: "s1", Name: markup.Text("Asha Mwangi")},
		Organization: models.Branding{Name: markup.Text("Coast General Hospital")},
		Department:   models.Branding{Name: markup.Text("Internal Medicine")},
		Entries: []models.ActivityRecord{
			{ID: "a1", Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
				Title: markup.Text("Ward round"), Status: models.StatusApproved},
		},
		GeneratedAt: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

func rosterInput() *models.DocumentInput {
	return &models.DocumentInput{
		CycleID: "cycle-2",
		Mode:    models.ModeRoster,
		Issuer:  models.Issuer{ID: "t9", Name: markup.Text("Dr. K. Otieno")},
		Entries: []models.ActivityRecord{
			{ID: "r1", SubjectID: "s1", SubjectName: markup.Text("Asha"), Status: models.StatusPending},
		},
	}
}

func TestComposeNumbersPagesSequentially(t *testing.T) {
	t.Parallel()

	doc, err := Compose(singleSubjectInput(), markup.ParseLocale("en-US"))
	require.NoError(t, err)

	// Single-subject order: cover, acknowledgement, toc, profile,
	// activities, certificate.
	require.Len(t, doc.Sections, 6)
	for i, sec := range doc.Sections {
		assert.Equal(t, i+1, sec.PageNo, "section %s", sec.ID)
	}
	assert.Equal(t, sections.IDCover, doc.Sections[0].ID)
	assert.Equal(t, sections.IDProfile, doc.Sections[3].ID)
	assert.Equal(t, sections.IDCertificate, doc.Sections[5].ID)
}

func TestComposeRosterSkipsProfile(t *testing.T) {
	t.Parallel()

	doc, err := Compose(rosterInput(), markup.ParseLocale("en-US"))
	require.NoError(t, err)

	require.Len(t, doc.Sections, 5)
	for _, sec := range doc.Sections {
		assert.NotEqual(t, sections.IDProfile, sec.ID)
	}
	assert.Equal(t, "Roster Activity Booklet", doc.Title)
	assert.Equal(t, "Dr. K. Otieno", doc.HeaderRight.Raw())
}

func TestComposeResolvesTOCReferences(t *testing.T) {
	t.Parallel()

	doc, err := Compose(singleSubjectInput(), markup.ParseLocale("en-US"))
	require.NoError(t, err)

	pages := make(map[string]int)
	for _, sec := range doc.Sections {
		pages[sec.ID] = sec.PageNo
	}

	var toc compose.TOC
	var found bool
	for _, sec := range doc.Sections {
		for _, b := range sec.Blocks {
			if tc, ok := b.(compose.TOC); ok {
				toc = tc
				found = true
			}
		}
	}
	require.True(t, found, "no TOC block in composed document")
	require.NotEmpty(t, toc.Items)
	for _, item := range toc.Items {
		assert.Equal(t, pages[item.SectionID], item.PageNo, "toc entry %q", item.Title)
		assert.NotZero(t, item.PageNo, "toc entry %q left unresolved", item.Title)
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	t.Parallel()

	loc := markup.ParseLocale("en-US")
	doc1, err := Compose(singleSubjectInput(), loc)
	require.NoError(t, err)
	doc2, err := Compose(singleSubjectInput(), loc)
	require.NoError(t, err)

	html1, err := compose.RenderHTML(doc1)
	require.NoError(t, err)
	html2, err := compose.RenderHTML(doc2)
	require.NoError(t, err)
	assert.Equal(t, html1, html2)
}

func TestComposeHeaderComposition(t *testing.T) {
	t.Parallel()

	doc, err := Compose(singleSubjectInput(), markup.ParseLocale("en-US"))
	require.NoError(t, err)
	assert.Equal(t, "Coast General Hospital — Internal Medicine", doc.HeaderLeft.Raw())
	assert.Equal(t, "s1", doc.HeaderRight.Raw())
	assert.Equal(t, "Asha Mwangi", doc.FooterLeft.Raw())

	in := singleSubjectInput()
	in.Department = models.Branding{}
	doc, err = Compose(in, markup.ParseLocale("en-US"))
	require.NoError(t, err)
	assert.Equal(t, "Coast General Hospital", doc.HeaderLeft.Raw())
}

func TestComposePropagatesNilEntries(t *testing.T) {
	t.Parallel()

	in := singleSubjectInput()
	in.Entries = nil
	_, err := Compose(in, markup.ParseLocale("en-US"))
	require.Error(t, err)
	assert.ErrorIs(t, err, sections.ErrNilEntries)
}
