package sections

import (
	"errors"
	"fmt"

	"github.com/edulog/bookletflow/internal/compose"
	"github.com/edulog/bookletflow/internal/markup"
	"github.com/edulog/bookletflow/internal/models"
)

// ErrNilEntries signals an aggregator contract violation: the entries
// container must exist even when empty. This is a programmer error, not a
// recoverable condition, so it is surfaced rather than silently patched.
var ErrNilEntries = errors.New("document input has nil entries container")

// Activities renders the grouped activity listing. Remarks render once at
// the top when present. In roster mode entries are grouped by subject in
// first-seen order; within each group the aggregator-provided order is
// preserved — no re-sort.
func Activities(in *models.DocumentInput, loc markup.Locale) (compose.Section, error) {
	if in.Entries == nil {
		return compose.Section{}, ErrNilEntries
	}

	blocks := []compose.Block{
		compose.Heading{Text: markup.Text(TitleActivities), Level: 1},
	}

	if !in.OverallRemarks.IsZero() {
		blocks = append(blocks, compose.Remark{Text: in.OverallRemarks})
	}

	if len(in.Entries) == 0 {
		blocks = append(blocks, compose.Paragraph{
			Text:     markup.Text("No activities have been logged for this period."),
			Centered: true,
		})
		return compose.Section{ID: IDActivities, Title: TitleActivities, Blocks: blocks}, nil
	}

	for _, g := range groupEntries(in) {
		entries := make([]compose.EntryItem, 0, len(g.records))
		for _, rec := range g.records {
			entries = append(entries, toEntryItem(rec, loc))
		}
		blocks = append(blocks, compose.EntryGroup{Title: g.title, Entries: entries})
	}

	return compose.Section{ID: IDActivities, Title: TitleActivities, Blocks: blocks}, nil
}

type entryGroup struct {
	title   markup.SafeText
	records []models.ActivityRecord
}

// groupEntries partitions entries by subject in roster mode and returns a
// single untitled group otherwise. Grouping is stable: groups appear in
// first-seen order and records keep their input order; the source slice is
// never reordered.
func groupEntries(in *models.DocumentInput) []entryGroup {
	if in.Mode != models.ModeRoster {
		return []entryGroup{{records: in.Entries}}
	}

	index := make(map[string]int)
	var groups []entryGroup
	for _, rec := range in.Entries {
		i, ok := index[rec.SubjectID]
		if !ok {
			i = len(groups)
			index[rec.SubjectID] = i
			groups = append(groups, entryGroup{title: rec.SubjectName.OrPlaceholder()})
		}
		groups[i].records = append(groups[i].records, rec)
	}
	return groups
}

func toEntryItem(rec models.ActivityRecord, loc markup.Locale) compose.EntryItem {
	labels := make([]markup.SafeText, 0, len(rec.Attachments))
	for _, a := range rec.Attachments {
		labels = append(labels, markup.Text(fmt.Sprintf("%s (%s)", a.Label(), a.DisplaySize())))
	}
	return compose.EntryItem{
		Date:        loc.FormatDate(rec.Date),
		Title:       rec.Title.Or("(untitled)"),
		Kind:        rec.Kind.OrPlaceholder(),
		Status:      string(rec.Status),
		StatusColor: rec.Status.BadgeColor(),
		Description: rec.Description,
		Attachments: labels,
	}
}
