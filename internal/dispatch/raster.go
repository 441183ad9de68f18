package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/edulog/bookletflow/internal/markup"
)

// a4WidthPt is the fixed page width the captured bitmap is scaled to.
const a4WidthPt = 595.0

// RasterState tracks the raster dispatch lifecycle.
type RasterState int

const (
	RasterIdle RasterState = iota
	RasterCaptured
	RasterEncoded
	RasterSaved
)

func (s RasterState) String() string {
	switch s {
	case RasterCaptured:
		return "CAPTURED"
	case RasterEncoded:
		return "ENCODED"
	case RasterSaved:
		return "SAVED"
	default:
		return "IDLE"
	}
}

// RasterDispatcher embeds an already-captured bitmap of a live report view
// into a PDF, one image per page. Capturing the view is the host's job;
// this path serves the simple tabular reports and does not reflow tall
// content across pages.
type RasterDispatcher struct {
	outDir string
	log    *slog.Logger

	mu    sync.Mutex
	state RasterState
}

// NewRasterDispatcher creates a dispatcher writing artifacts into outDir.
// One dispatcher is shared across concurrent requests.
func NewRasterDispatcher(outDir string, logger *slog.Logger) *RasterDispatcher {
	return &RasterDispatcher{outDir: outDir, log: logger}
}

// State returns the current lifecycle state.
func (d *RasterDispatcher) State() RasterState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *RasterDispatcher) transition(s RasterState) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
	d.log.Debug("Raster dispatch state change.", "state", s.String())
}

// Save validates the bitmap, computes page dimensions from its aspect
// ratio against the fixed page width, embeds it and writes the PDF. The
// artifact name is deterministic: "<kind>-<subject>.pdf" slugs.
func (d *RasterDispatcher) Save(ctx context.Context, img []byte, reportKind, subjectName string) (Artifact, error) {
	defer d.transition(RasterIdle)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to decode captured bitmap: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Artifact{}, fmt.Errorf("captured bitmap has invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	d.transition(RasterCaptured)

	pageH := a4WidthPt * float64(cfg.Height) / float64(cfg.Width)

	// Staging lives under outDir so the final rename stays on one
	// filesystem and concurrent saves never touch a shared temp path.
	tempDir, err := os.MkdirTemp(d.outDir, ".raster-*")
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	imgPath := filepath.Join(tempDir, "capture."+format)
	if err := os.WriteFile(imgPath, img, 0o600); err != nil {
		return Artifact{}, fmt.Errorf("failed to stage bitmap: %w", err)
	}

	imp, err := api.Import(fmt.Sprintf("dim:%d %d, pos:full", int(a4WidthPt), int(pageH)), types.POINTS)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to build import description: %w", err)
	}
	d.transition(RasterEncoded)

	stagePath := filepath.Join(tempDir, "out.pdf")
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ImportImagesFile([]string{imgPath}, stagePath, imp, conf); err != nil {
		return Artifact{}, fmt.Errorf("failed to embed bitmap into PDF: %w", err)
	}
	if err := api.ValidateFile(stagePath, conf); err != nil {
		return Artifact{}, fmt.Errorf("produced PDF failed validation: %w", err)
	}

	outPath := filepath.Join(d.outDir, fmt.Sprintf("%s-%s.pdf", markup.Slug(reportKind), markup.Slug(subjectName)))
	if err := os.Rename(stagePath, outPath); err != nil {
		return Artifact{}, fmt.Errorf("failed to publish PDF artifact: %w", err)
	}
	d.transition(RasterSaved)

	d.log.Info("Raster artifact written.",
		"path", outPath,
		"format", format,
		"pageWidth", int(a4WidthPt),
		"pageHeight", int(pageH),
	)
	return Artifact{Path: outPath, Pages: 1, Backend: "raster"}, nil
}
