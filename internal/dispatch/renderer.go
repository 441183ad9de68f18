// Package dispatch holds the output backends that turn a composed
// document into a user-visible or saved artifact: the print surface
// hand-off, the native PDF layout engine and the raster capture embedder.
package dispatch

import (
	"context"

	"github.com/edulog/bookletflow/internal/compose"
)

// Artifact describes the outcome of one dispatch.
type Artifact struct {
	Path    string
	Pages   int
	Backend string
}

// Renderer is an output backend for a composed document. Exactly one
// renderer is active per generation cycle.
type Renderer interface {
	Render(ctx context.Context, doc *compose.Document) (Artifact, error)
}
