// Package aggregate fetches activity records and entity profiles from the
// external collaborators and assembles the immutable DocumentInput for one
// generation cycle.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/edulog/bookletflow/internal/markup"
	"github.com/edulog/bookletflow/internal/models"
)

// ErrActivitySource marks a failure of the primary activity-record fetch.
// Unlike the cosmetic profile/branding reads, this aborts the whole cycle.
var ErrActivitySource = errors.New("activity source failed")

// Aggregator fans out the collaborator reads and builds DocumentInput.
type Aggregator struct {
	activity *ActivityClient
	profile  *ProfileClient
	log      *slog.Logger
}

// New creates an Aggregator.
func New(activity *ActivityClient, profile *ProfileClient, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		activity: activity,
		profile:  profile,
		log:      logger,
	}
}

// BuildSubjectInput assembles the input model for a single-subject booklet.
// The activity fetch is the only hard dependency; profile and branding
// lookups degrade to placeholder values on failure.
func (a *Aggregator) BuildSubjectInput(ctx context.Context, subjectID, remarks string) (*models.DocumentInput, error) {
	cycleID := uuid.NewString()
	logCtx := a.log.With("subjectId", subjectID, "cycleId", cycleID)
	logCtx.Info("Starting aggregation.", "mode", models.ModeSingleSubject)

	input := &models.DocumentInput{
		CycleID:        cycleID,
		Mode:           models.ModeSingleSubject,
		Subject:        models.Subject{ID: subjectID},
		OverallRemarks: markup.Text(remarks),
		GeneratedAt:    time.Now(),
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(4)

	// Primary read. A failure here fails the cycle.
	eg.Go(func() error {
		records, err := a.activity.FetchForSubject(gctx, subjectID)
		if err != nil {
			return fmt.Errorf("%w: subject %s: %w", ErrActivitySource, subjectID, err)
		}
		input.Entries = toRecords(records)
		return nil
	})

	// Secondary reads. Failures are tolerated with placeholder values.
	eg.Go(func() error {
		dto, err := a.profile.FetchSubject(gctx, subjectID)
		if err != nil {
			logCtx.Warn("Subject profile unavailable; continuing with placeholders.", "error", err)
			return nil
		}
		input.Subject = dto.toModel()
		return nil
	})
	eg.Go(a.brandingRead(gctx, logCtx, input))

	if err := eg.Wait(); err != nil {
		logCtx.Error("Aggregation failed.", "error", err)
		return nil, err
	}

	logCtx.Info("Aggregation complete.", "entryCount", len(input.Entries))
	return input, nil
}

// BuildRosterInput assembles the input model for a roster booklet: every
// activity record of the subjects supervised by one staff member, grouped
// per subject at render time.
func (a *Aggregator) BuildRosterInput(ctx context.Context, issuerID, remarks string) (*models.DocumentInput, error) {
	cycleID := uuid.NewString()
	logCtx := a.log.With("issuerId", issuerID, "cycleId", cycleID)
	logCtx.Info("Starting aggregation.", "mode", models.ModeRoster)

	input := &models.DocumentInput{
		CycleID:        cycleID,
		Mode:           models.ModeRoster,
		Issuer:         models.Issuer{ID: issuerID},
		OverallRemarks: markup.Text(remarks),
		GeneratedAt:    time.Now(),
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(4)

	eg.Go(func() error {
		records, err := a.activity.FetchForRoster(gctx, issuerID)
		if err != nil {
			return fmt.Errorf("%w: roster of %s: %w", ErrActivitySource, issuerID, err)
		}
		input.Entries = toRecords(records)
		return nil
	})

	eg.Go(func() error {
		dto, err := a.profile.FetchStaff(gctx, issuerID)
		if err != nil {
			logCtx.Warn("Staff profile unavailable; continuing with placeholders.", "error", err)
			return nil
		}
		input.Issuer = models.Issuer{ID: dto.ID, Name: markup.Text(dto.Name)}
		// The roster booklet is about the staff member.
		input.Subject = models.Subject{ID: dto.ID, Name: markup.Text(dto.Name)}
		return nil
	})
	eg.Go(a.brandingRead(gctx, logCtx, input))

	if err := eg.Wait(); err != nil {
		logCtx.Error("Aggregation failed.", "error", err)
		return nil, err
	}

	logCtx.Info("Aggregation complete.", "entryCount", len(input.Entries))
	return input, nil
}

func (a *Aggregator) brandingRead(ctx context.Context, logCtx *slog.Logger, input *models.DocumentInput) func() error {
	return func() error {
		dto, err := a.profile.FetchBranding(ctx)
		if err != nil {
			logCtx.Warn("Branding unavailable; continuing with placeholders.", "error", err)
			return nil
		}
		input.Organization, input.Department, input.Signatories = dto.toModels()
		return nil
	}
}

// toRecords maps the wire records, keeping source order. The result is
// never nil: zero entries is a valid booklet with an empty activity
// section, and builders rely on a non-nil container.
func toRecords(dtos []activityDTO) []models.ActivityRecord {
	records := make([]models.ActivityRecord, 0, len(dtos))
	for _, d := range dtos {
		records = append(records, d.toModel())
	}
	return records
}
