package sections

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulog/bookletflow/internal/compose"
	"github.com/edulog/bookletflow/internal/markup"
	"github.com/edulog/bookletflow/internal/models"
)

func subjectInput(entries []models.ActivityRecord) *models.DocumentInput {
	return &models.DocumentInput{
		CycleID: "c1",
		Mode:    models.ModeSingleSubject,
		Subject: models.Subject{ID: "s1", Name: markup.Text("Asha Mwangi")},
		Entries: entries,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestActivitiesNilEntriesIsContractViolation(t *testing.T) {
	t.Parallel()

	in := subjectInput(nil)
	_, err := Activities(in, markup.ParseLocale("en-US"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNilEntries)
}

func TestActivitiesEmptyEntriesRendersEmptyState(t *testing.T) {
	t.Parallel()

	in := subjectInput([]models.ActivityRecord{})
	sec, err := Activities(in, markup.ParseLocale("en-US"))
	require.NoError(t, err)

	var found bool
	for _, b := range sec.Blocks {
		if p, ok := b.(compose.Paragraph); ok && p.Text.Raw() == "No activities have been logged for this period." {
			found = true
		}
	}
	assert.True(t, found, "empty state paragraph missing")
}

func TestActivitiesPreservesInputOrder(t *testing.T) {
	t.Parallel()

	// Later date first on purpose: the builder must not re-sort.
	in := subjectInput([]models.ActivityRecord{
		{ID: "a1", Date: date(2024, time.January, 10), Title: markup.Text("First in input"), Status: models.StatusApproved,
			Attachments: []models.Attachment{{URL: "https://cdn.example.com/reports/Case%20Study.pdf", Size: 2048}}},
		{ID: "a2", Date: date(2024, time.January, 5), Title: markup.Text("Second in input"), Status: models.StatusPending},
	})
	sec, err := Activities(in, markup.ParseLocale("en-US"))
	require.NoError(t, err)

	group := findGroup(t, sec)
	require.Len(t, group.Entries, 2)
	assert.Equal(t, "First in input", group.Entries[0].Title.Raw())
	assert.Equal(t, "Jan 10, 2024", group.Entries[0].Date)
	assert.Equal(t, "Second in input", group.Entries[1].Title.Raw())

	require.Len(t, group.Entries[0].Attachments, 1)
	assert.Equal(t, "Case Study.pdf (2.0 KB)", group.Entries[0].Attachments[0].Raw())
	assert.Empty(t, group.Entries[1].Attachments)
}

func TestActivitiesUntitledFallback(t *testing.T) {
	t.Parallel()

	in := subjectInput([]models.ActivityRecord{
		{ID: "a1", Date: date(2024, time.March, 1), Status: models.StatusPending},
	})
	sec, err := Activities(in, markup.ParseLocale("en-US"))
	require.NoError(t, err)

	group := findGroup(t, sec)
	assert.Equal(t, "(untitled)", group.Entries[0].Title.Raw())
}

func TestActivitiesRemarksRenderFirst(t *testing.T) {
	t.Parallel()

	in := subjectInput([]models.ActivityRecord{
		{ID: "a1", Date: date(2024, time.March, 1), Title: markup.Text("x"), Status: models.StatusApproved},
	})
	in.OverallRemarks = markup.Text("<b>ok</b>")

	sec, err := Activities(in, markup.ParseLocale("en-US"))
	require.NoError(t, err)

	// The remark is the first block after the section heading, before any
	// entry group.
	require.GreaterOrEqual(t, len(sec.Blocks), 2)
	remark, ok := sec.Blocks[1].(compose.Remark)
	require.True(t, ok, "second block should be the remark, got %T", sec.Blocks[1])
	assert.Equal(t, "<b>ok</b>", remark.Text.Raw())
	assert.Equal(t, "&lt;b&gt;ok&lt;/b&gt;", string(remark.Text.HTML()))
}

func TestActivitiesRosterGroupingIsStable(t *testing.T) {
	t.Parallel()

	in := &models.DocumentInput{
		CycleID: "c2",
		Mode:    models.ModeRoster,
		Issuer:  models.Issuer{ID: "t9", Name: markup.Text("Dr. K. Otieno")},
		Entries: []models.ActivityRecord{
			{ID: "r1", SubjectID: "s1", SubjectName: markup.Text("Asha"), Status: models.StatusApproved},
			{ID: "r2", SubjectID: "s2", SubjectName: markup.Text("Brian"), Status: models.StatusPending},
			{ID: "r3", SubjectID: "s1", SubjectName: markup.Text("Asha"), Status: models.StatusRejected},
		},
	}
	sec, err := Activities(in, markup.ParseLocale("en-US"))
	require.NoError(t, err)

	var groups []compose.EntryGroup
	for _, b := range sec.Blocks {
		if g, ok := b.(compose.EntryGroup); ok {
			groups = append(groups, g)
		}
	}
	require.Len(t, groups, 2)
	assert.Equal(t, "Asha", groups[0].Title.Raw())
	assert.Len(t, groups[0].Entries, 2)
	assert.Equal(t, "Brian", groups[1].Title.Raw())
	assert.Len(t, groups[1].Entries, 1)

	// The source slice order is untouched.
	assert.Equal(t, "r1", in.Entries[0].ID)
	assert.Equal(t, "r2", in.Entries[1].ID)
	assert.Equal(t, "r3", in.Entries[2].ID)
}

func findGroup(t *testing.T, sec compose.Section) compose.EntryGroup {
	t.Helper()
	for _, b := range sec.Blocks {
		if g, ok := b.(compose.EntryGroup); ok {
			return g
		}
	}
	t.Fatal("no entry group in section")
	return compose.EntryGroup{}
}
