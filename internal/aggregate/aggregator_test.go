package aggregate

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulog/bookletflow/internal/models"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const activityBody = `[
	{"id":"a1","subjectId":"s1","subjectName":"Asha Mwangi","date":"2024-01-10","type":"Clinical","title":"Ward round",
	 "description":"Observed rounds.\nAssisted with notes.","status":"approved",
	 "attachments":[{"url":"https://cdn.example.com/reports/Case%20Study.pdf","contentType":"application/pdf","size":2048}]},
	{"id":"a2","subjectId":"s1","subjectName":"Asha Mwangi","date":"2024-01-05","type":"Lab","title":"",
	 "description":"<script>alert(1)</script>","status":"pending","attachments":[]}
]`

const subjectBody = `{"id":"s1","name":"Asha Mwangi","email":"asha@example.com","regNo":"REG-77",
	"program":"Clinical Medicine","academicYear":"2023/2024","rotationStart":"2024-01-02","rotationEnd":"2024-03-29"}`

const brandingBody = `{"organization":{"name":"Coast Medical College","logoUrl":"https://cdn.example.com/logo.png"},
	"department":{"name":"Internal Medicine"},
	"signatories":{"staff":"Dr. K. Otieno","headOfDepartment":"Prof. L. Peters","principal":"Dr. N. Said"}}`

func newAggregator(t *testing.T, activityURL, profileURL string) *Aggregator {
	t.Helper()
	logger := newTestLogger()
	activity := NewActivityClient(activityURL, "token-1", 5*time.Second, logger)
	profile := NewProfileClient(profileURL, "token-1", 5*time.Second, logger)
	return New(activity, profile, logger)
}

func TestBuildSubjectInput(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/subjects/s1/activities":
			io.WriteString(w, activityBody)
		case "/subjects/s1":
			io.WriteString(w, subjectBody)
		case "/branding":
			io.WriteString(w, brandingBody)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	agg := newAggregator(t, srv.URL, srv.URL)
	input, err := agg.BuildSubjectInput(context.Background(), "s1", "looks good")
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-1", gotAuth)
	assert.Equal(t, models.ModeSingleSubject, input.Mode)
	assert.NotEmpty(t, input.CycleID)
	assert.False(t, input.GeneratedAt.IsZero())

	// Entries keep source order: 2024-01-10 first even though it is later.
	require.Len(t, input.Entries, 2)
	assert.Equal(t, "a1", input.Entries[0].ID)
	assert.Equal(t, "a2", input.Entries[1].ID)
	assert.Equal(t, "Ward round", input.Entries[0].Title.Raw())
	assert.Equal(t, models.StatusApproved, input.Entries[0].Status)

	require.Len(t, input.Entries[0].Attachments, 1)
	assert.Equal(t, "Case Study.pdf", input.Entries[0].Attachments[0].Label())
	assert.Equal(t, "2.0 KB", input.Entries[0].Attachments[0].DisplaySize())
	assert.Empty(t, input.Entries[1].Attachments)

	assert.Equal(t, "Asha Mwangi", input.Subject.Name.Raw())
	assert.Equal(t, "Coast Medical College", input.Organization.Name.Raw())
	assert.Equal(t, "Prof. L. Peters", input.Signatories.HeadOfDepartmentName.Raw())
	assert.Equal(t, "looks good", input.OverallRemarks.Raw())
}

func TestBuildSubjectInputPrimaryFailureAborts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/subjects/s1/activities":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/subjects/s1":
			io.WriteString(w, subjectBody)
		case "/branding":
			io.WriteString(w, brandingBody)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	agg := newAggregator(t, srv.URL, srv.URL)
	input, err := agg.BuildSubjectInput(context.Background(), "s1", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrActivitySource)
	assert.Nil(t, input)
}

func TestBuildSubjectInputSecondaryFailureTolerated(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/subjects/s1/activities":
			io.WriteString(w, activityBody)
		default:
			// Profile and branding are down; only activity data survives.
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	agg := newAggregator(t, srv.URL, srv.URL)
	input, err := agg.BuildSubjectInput(context.Background(), "s1", "")
	require.NoError(t, err)

	assert.Len(t, input.Entries, 2)
	assert.Equal(t, "s1", input.Subject.ID)
	assert.True(t, input.Subject.Name.IsZero())
	assert.True(t, input.Organization.Name.IsZero())
}

func TestBuildSubjectInputZeroEntriesIsValid(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/subjects/s1/activities":
			io.WriteString(w, `[]`)
		case "/subjects/s1":
			io.WriteString(w, subjectBody)
		case "/branding":
			io.WriteString(w, brandingBody)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	agg := newAggregator(t, srv.URL, srv.URL)
	input, err := agg.BuildSubjectInput(context.Background(), "s1", "")
	require.NoError(t, err)
	require.NotNil(t, input.Entries)
	assert.Empty(t, input.Entries)
}

func TestBuildRosterInput(t *testing.T) {
	t.Parallel()

	rosterBody := `[
		{"id":"r1","subjectId":"s1","subjectName":"Asha Mwangi","date":"2024-02-01","type":"Clinical","title":"A","description":"d1","status":"approved","attachments":[]},
		{"id":"r2","subjectId":"s2","subjectName":"Brian Odhiambo","date":"2024-02-02","type":"Clinical","title":"B","description":"d2","status":"pending","attachments":[]},
		{"id":"r3","subjectId":"s1","subjectName":"Asha Mwangi","date":"2024-02-03","type":"Lab","title":"C","description":"d3","status":"rejected","attachments":[]}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/staff/t9/roster/activities":
			io.WriteString(w, rosterBody)
		case "/staff/t9":
			io.WriteString(w, `{"id":"t9","name":"Dr. K. Otieno"}`)
		case "/branding":
			io.WriteString(w, brandingBody)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	agg := newAggregator(t, srv.URL, srv.URL)
	input, err := agg.BuildRosterInput(context.Background(), "t9", "")
	require.NoError(t, err)

	assert.Equal(t, models.ModeRoster, input.Mode)
	assert.Equal(t, "Dr. K. Otieno", input.Issuer.Name.Raw())
	require.Len(t, input.Entries, 3)
	assert.Equal(t, []string{"r1", "r2", "r3"}, []string{input.Entries[0].ID, input.Entries[1].ID, input.Entries[2].ID})
}

func TestParseCalendarDate(t *testing.T) {
	t.Parallel()

	if got := parseCalendarDate("2024-01-10"); got.IsZero() {
		t.Fatal("calendar date should parse")
	}
	got := parseCalendarDate("2024-01-10T15:04:05Z")
	if got.Hour() != 0 {
		t.Errorf("time-of-day should be discarded, got hour %d", got.Hour())
	}
	if !parseCalendarDate("garbage").IsZero() {
		t.Error("unparseable date should be zero")
	}
}
