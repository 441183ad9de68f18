package booklet

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/edulog/bookletflow/internal/aggregate"
	"github.com/edulog/bookletflow/internal/config"
	"github.com/edulog/bookletflow/internal/dispatch"
	"github.com/edulog/bookletflow/internal/markup"
	"github.com/edulog/bookletflow/internal/models"
)

// ErrUnknownBackend reports a request for an output backend this service
// does not offer.
var ErrUnknownBackend = errors.New("unknown output backend")

// Service runs one full generation cycle: aggregate, compose, dispatch.
// Each request owns its own DocumentInput; concurrent cycles are
// independent and nothing is shared between them but the clients.
type Service struct {
	agg           *aggregate.Aggregator
	pdf           *dispatch.PDFRenderer
	raster        *dispatch.RasterDispatcher
	outDir        string
	printCommand  []string
	defaultLocale string
	log           *slog.Logger
}

// NewService wires the aggregator and the output backends from config.
func NewService(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	activity := aggregate.NewActivityClient(cfg.Sources.ActivityBaseURL, cfg.Sources.BearerToken, cfg.Sources.Timeout, logger)
	profile := aggregate.NewProfileClient(cfg.Sources.ProfileBaseURL, cfg.Sources.BearerToken, cfg.Sources.Timeout, logger)

	return &Service{
		agg:           aggregate.New(activity, profile, logger),
		pdf:           dispatch.NewPDFRenderer(cfg.Output.Dir, logger),
		raster:        dispatch.NewRasterDispatcher(cfg.Output.Dir, logger),
		outDir:        cfg.Output.Dir,
		printCommand:  cfg.Output.PrintCommandArgs(),
		defaultLocale: cfg.Output.DefaultLocale,
		log:           logger,
	}, nil
}

// GenerateBooklet produces a single-subject booklet and dispatches it
// through the requested backend.
func (s *Service) GenerateBooklet(ctx context.Context, req *models.BookletRequest) (*models.GenerateResponse, error) {
	input, err := s.agg.BuildSubjectInput(ctx, req.SubjectID, req.OverallRemarks)
	if err != nil {
		return nil, err
	}
	return s.composeAndDispatch(ctx, input, req.Backend, req.Locale)
}

// GenerateRoster produces a roster booklet for one staff member.
func (s *Service) GenerateRoster(ctx context.Context, req *models.RosterRequest) (*models.GenerateResponse, error) {
	input, err := s.agg.BuildRosterInput(ctx, req.IssuerID, req.OverallRemarks)
	if err != nil {
		return nil, err
	}
	return s.composeAndDispatch(ctx, input, req.Backend, req.Locale)
}

// Rasterize embeds a host-captured bitmap of a simple report into a PDF.
func (s *Service) Rasterize(ctx context.Context, req *models.RasterRequest) (*models.GenerateResponse, error) {
	img, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	art, err := s.raster.Save(ctx, img, req.ReportKind, req.SubjectName)
	if err != nil {
		return nil, err
	}
	return &models.GenerateResponse{Status: "success", ArtifactPath: art.Path, Pages: art.Pages}, nil
}

func (s *Service) composeAndDispatch(ctx context.Context, input *models.DocumentInput, backend, locale string) (*models.GenerateResponse, error) {
	if locale == "" {
		locale = s.defaultLocale
	}
	doc, err := Compose(input, markup.ParseLocale(locale))
	if err != nil {
		return nil, err
	}

	renderer, err := s.rendererFor(backend, input)
	if err != nil {
		return nil, err
	}
	art, err := renderer.Render(ctx, doc)
	if err != nil {
		return nil, err
	}

	s.log.Info("Generation cycle complete.",
		"cycleId", input.CycleID,
		"backend", art.Backend,
		"artifact", art.Path,
	)
	return &models.GenerateResponse{
		Status:       "success",
		CycleID:      input.CycleID,
		ArtifactPath: art.Path,
		Pages:        art.Pages,
	}, nil
}

func (s *Service) rendererFor(backend string, input *models.DocumentInput) (dispatch.Renderer, error) {
	switch backend {
	case "", "pdf":
		return s.pdf, nil
	case "print":
		surface := &dispatch.FileSurface{
			Path:         filepath.Join(s.outDir, markup.Slug(bookletTitle(input)+" "+input.Subject.ID)+".html"),
			PrintCommand: s.printCommand,
		}
		return dispatch.NewPrintDispatcher(surface, s.log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
