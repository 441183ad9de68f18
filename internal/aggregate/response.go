package aggregate

import (
	"time"

	"github.com/edulog/bookletflow/internal/markup"
	"github.com/edulog/bookletflow/internal/models"
)

// Wire shapes of the collaborator responses. Every free-text field crosses
// into the document model through markup.Text here, and nowhere else.

type activityDTO struct {
	ID          string          `json:"id"`
	SubjectID   string          `json:"subjectId"`
	SubjectName string          `json:"subjectName"`
	Date        string          `json:"date"` // calendar date, "2006-01-02"
	Kind        string          `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Attachments []attachmentDTO `json:"attachments"`
}

type attachmentDTO struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type subjectDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	RegNo            string `json:"regNo"`
	AltRegNo         string `json:"altRegNo"`
	Program          string `json:"program"`
	AcademicYear     string `json:"academicYear"`
	RotationStart    string `json:"rotationStart"`
	RotationEnd      string `json:"rotationEnd"`
	GuardianName     string `json:"guardianName"`
	GuardianPhone    string `json:"guardianPhone"`
	EmergencyContact string `json:"emergencyContact"`
	AvatarURL        string `json:"avatarUrl"`
}

type staffDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type brandingDTO struct {
	Organization brandingEntryDTO `json:"organization"`
	Department   brandingEntryDTO `json:"department"`
	Signatories  signatoriesDTO   `json:"signatories"`
}

type brandingEntryDTO struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

type signatoriesDTO struct {
	Staff            string `json:"staff"`
	HeadOfDepartment string `json:"headOfDepartment"`
	Principal        string `json:"principal"`
}

func (d activityDTO) toModel() models.ActivityRecord {
	atts := make([]models.Attachment, 0, len(d.Attachments))
	for _, a := range d.Attachments {
		atts = append(atts, models.Attachment{
			URL:         a.URL,
			ContentType: a.ContentType,
			Size:        a.Size,
		})
	}
	return models.ActivityRecord{
		ID:          d.ID,
		SubjectID:   d.SubjectID,
		SubjectName: markup.Text(d.SubjectName),
		Date:        parseCalendarDate(d.Date),
		Kind:        markup.Text(d.Kind),
		Title:       markup.Text(d.Title),
		Description: markup.Text(d.Description),
		Status:      models.WorkflowStatus(d.Status),
		Attachments: atts,
	}
}

func (d subjectDTO) toModel() models.Subject {
	return models.Subject{
		ID:               d.ID,
		Name:             markup.Text(d.Name),
		Email:            markup.Text(d.Email),
		RegNo:            markup.Text(d.RegNo),
		AltRegNo:         markup.Text(d.AltRegNo),
		Program:          markup.Text(d.Program),
		AcademicYear:     markup.Text(d.AcademicYear),
		RotationStart:    parseCalendarDate(d.RotationStart),
		RotationEnd:      parseCalendarDate(d.RotationEnd),
		GuardianName:     markup.Text(d.GuardianName),
		GuardianPhone:    markup.Text(d.GuardianPhone),
		EmergencyContact: markup.Text(d.EmergencyContact),
		AvatarURL:        d.AvatarURL,
	}
}

func (d brandingDTO) toModels() (models.Branding, models.Branding, models.Signatories) {
	org := models.Branding{Name: markup.Text(d.Organization.Name), LogoURL: d.Organization.LogoURL}
	dept := models.Branding{Name: markup.Text(d.Department.Name), LogoURL: d.Department.LogoURL}
	sig := models.Signatories{
		StaffName:            markup.Text(d.Signatories.Staff),
		HeadOfDepartmentName: markup.Text(d.Signatories.HeadOfDepartment),
		PrincipalName:        markup.Text(d.Signatories.Principal),
	}
	return org, dept, sig
}

// parseCalendarDate accepts the collaborator date shapes: a bare calendar
// date or an RFC 3339 timestamp whose time-of-day is ignored. Unparseable
// values become the zero time and render as the placeholder.
func parseCalendarDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Time{}
}
