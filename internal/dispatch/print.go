package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"

	"github.com/edulog/bookletflow/internal/compose"
)

// ErrSurfaceUnavailable reports that the host rendering surface could not
// be opened. This is typically caused by a host setting outside our
// control, so it is surfaced to the user immediately and never retried.
var ErrSurfaceUnavailable = errors.New("rendering surface unavailable")

// Surface is the host print facility: something that accepts a complete
// markup document and can trigger the native print/save-as-PDF dialog.
type Surface interface {
	// Open prepares the surface and returns a writer for the document.
	Open() (io.WriteCloser, error)
	// TriggerPrint invokes the host print facility on the written document.
	TriggerPrint() error
	// Target names the surface destination for logs and the artifact.
	Target() string
}

// SurfaceState tracks the print dispatch lifecycle.
type SurfaceState int

const (
	StateIdle SurfaceState = iota
	StateOpened
	StateWritten
	StatePrintTriggered
)

func (s SurfaceState) String() string {
	switch s {
	case StateOpened:
		return "OPENED"
	case StateWritten:
		return "WRITTEN"
	case StatePrintTriggered:
		return "PRINT_TRIGGERED"
	default:
		return "IDLE"
	}
}

// PrintDispatcher renders the composed document to markup, writes it to a
// host surface and triggers the host print facility. It returns to Idle
// after every dispatch, successful or not.
type PrintDispatcher struct {
	surface Surface
	log     *slog.Logger

	mu    sync.Mutex
	state SurfaceState
}

// NewPrintDispatcher creates a dispatcher bound to one surface.
func NewPrintDispatcher(surface Surface, logger *slog.Logger) *PrintDispatcher {
	return &PrintDispatcher{surface: surface, log: logger}
}

// State returns the current lifecycle state.
func (d *PrintDispatcher) State() SurfaceState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *PrintDispatcher) transition(s SurfaceState) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
	d.log.Debug("Print dispatch state change.", "state", s.String())
}

// Render implements Renderer.
func (d *PrintDispatcher) Render(ctx context.Context, doc *compose.Document) (Artifact, error) {
	defer d.transition(StateIdle)

	markup, err := compose.RenderHTML(doc)
	if err != nil {
		return Artifact{}, err
	}

	w, err := d.surface.Open()
	if err != nil {
		d.log.Error("Failed to open rendering surface.", "target", d.surface.Target(), "error", err)
		return Artifact{}, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}
	d.transition(StateOpened)

	if _, err := io.WriteString(w, markup); err != nil {
		_ = w.Close()
		return Artifact{}, fmt.Errorf("failed to write document to surface: %w", err)
	}
	if err := w.Close(); err != nil {
		return Artifact{}, fmt.Errorf("failed to finalize surface write: %w", err)
	}
	d.transition(StateWritten)

	if err := d.surface.TriggerPrint(); err != nil {
		return Artifact{}, fmt.Errorf("failed to trigger print: %w", err)
	}
	d.transition(StatePrintTriggered)

	d.log.Info("Document handed to print surface.", "target", d.surface.Target(), "pages", len(doc.Sections))
	return Artifact{Path: d.surface.Target(), Pages: len(doc.Sections), Backend: "print"}, nil
}

// FileSurface is the headless-host surface: the markup is written to a
// file and the print trigger hands the file to a configured host command
// (a browser in kiosk-print mode, lp, or similar).
type FileSurface struct {
	Path         string
	PrintCommand []string // command + args; the file path is appended
}

func (s *FileSurface) Open() (io.WriteCloser, error) {
	f, err := os.Create(s.Path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FileSurface) TriggerPrint() error {
	if len(s.PrintCommand) == 0 {
		// No host command configured: the written file itself is the
		// hand-off target.
		return nil
	}
	args := append(append([]string{}, s.PrintCommand[1:]...), s.Path)
	cmd := exec.Command(s.PrintCommand[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("print command %q: %w", s.PrintCommand[0], err)
	}
	// Reap the child so a long-lived server does not accumulate zombies.
	go func() { _ = cmd.Wait() }()
	return nil
}

func (s *FileSurface) Target() string { return s.Path }
