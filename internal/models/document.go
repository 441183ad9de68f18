package models

import (
	"time"

	"github.com/edulog/bookletflow/internal/markup"
)

// ReportMode states explicitly whether the booklet covers one subject or a
// staff member's whole roster. The activity section groups entries per
// subject only in roster mode.
type ReportMode string

const (
	ModeSingleSubject ReportMode = "SINGLE_SUBJECT"
	ModeRoster        ReportMode = "ROSTER"
)

// Subject is the person the booklet is about. Any field other than ID may
// be absent; absent fields render as a fill-in placeholder line.
type Subject struct {
	ID               string
	Name             markup.SafeText
	Email            markup.SafeText
	RegNo            markup.SafeText
	AltRegNo         markup.SafeText
	Program          markup.SafeText
	AcademicYear     markup.SafeText
	RotationStart    time.Time
	RotationEnd      time.Time
	GuardianName     markup.SafeText
	GuardianPhone    markup.SafeText
	EmergencyContact markup.SafeText
	AvatarURL        string
}

// Issuer is the person producing the booklet on the subject's behalf.
type Issuer struct {
	ID   string
	Name markup.SafeText
}

// Branding carries the display identity of an organization or department.
type Branding struct {
	Name    markup.SafeText
	LogoURL string
}

// Signatories are the named signature boxes on the certificate page, used
// where the profile source supplies a matching name.
type Signatories struct {
	StaffName            markup.SafeText
	HeadOfDepartmentName markup.SafeText
	PrincipalName        markup.SafeText
}

// DocumentInput is the fully aggregated model consumed read-only by every
// section builder. It is built fresh per generation cycle and discarded
// after dispatch; Entries is never mutated after aggregation.
type DocumentInput struct {
	CycleID        string
	Mode           ReportMode
	Subject        Subject
	Issuer         Issuer
	Organization   Branding
	Department     Branding
	Signatories    Signatories
	Entries        []ActivityRecord
	OverallRemarks markup.SafeText
	GeneratedAt    time.Time
}
