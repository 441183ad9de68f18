package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/edulog/bookletflow/internal/aggregate"
	"github.com/edulog/bookletflow/internal/booklet"
	"github.com/edulog/bookletflow/internal/config"
	"github.com/edulog/bookletflow/internal/dispatch"
	"github.com/edulog/bookletflow/internal/models"
	"github.com/edulog/bookletflow/internal/sections"
)

var (
	serviceInstance *booklet.Service
	serviceConfig   *config.Config
	once            sync.Once
	initErr         error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	functions.HTTP("GenerateBooklet", handleGenerateBooklet)
	functions.HTTP("GenerateRoster", handleGenerateRoster)
	functions.HTTP("RasterizeReport", handleRasterizeReport)
}

func main() {
	// Fail fast: a server that cannot load its config should not accept
	// requests only to 500 every one of them.
	once.Do(initService)
	if initErr != nil {
		slog.Error("Critical: service initialization failed", "error", initErr)
		os.Exit(1)
	}
	if err := funcframework.Start(serviceConfig.Server.Port); err != nil {
		slog.Error("Server failed.", "error", err)
		os.Exit(1)
	}
}

func initService() {
	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}
	serviceConfig = cfg
	serviceInstance, initErr = booklet.NewService(cfg, slog.Default())
}

// handleGenerateBooklet triggers a single-subject booklet generation.
func handleGenerateBooklet(w http.ResponseWriter, r *http.Request) {
	once.Do(initService)
	if initErr != nil {
		slog.Error("Critical: service initialization failed", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	var req models.BookletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Could not decode request body", "error", err)
		http.Error(w, "Bad Request: could not parse JSON", http.StatusBadRequest)
		return
	}

	res, err := serviceInstance.GenerateBooklet(r.Context(), &req)
	writeResult(w, res, err)
}

// handleGenerateRoster triggers a roster booklet generation.
func handleGenerateRoster(w http.ResponseWriter, r *http.Request) {
	once.Do(initService)
	if initErr != nil {
		slog.Error("Critical: service initialization failed", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	var req models.RosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Could not decode request body", "error", err)
		http.Error(w, "Bad Request: could not parse JSON", http.StatusBadRequest)
		return
	}

	res, err := serviceInstance.GenerateRoster(r.Context(), &req)
	writeResult(w, res, err)
}

// handleRasterizeReport embeds a host-captured report bitmap into a PDF.
func handleRasterizeReport(w http.ResponseWriter, r *http.Request) {
	once.Do(initService)
	if initErr != nil {
		slog.Error("Critical: service initialization failed", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	var req models.RasterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Could not decode request body", "error", err)
		http.Error(w, "Bad Request: could not parse JSON", http.StatusBadRequest)
		return
	}

	res, err := serviceInstance.Rasterize(r.Context(), &req)
	writeResult(w, res, err)
}

// writeResult maps the error taxonomy onto HTTP statuses. Recoverable
// conditions were already absorbed below; whatever surfaces here is a
// single user-facing failure for the whole cycle.
func writeResult(w http.ResponseWriter, res *models.GenerateResponse, err error) {
	switch {
	case err == nil:
	case errors.Is(err, aggregate.ErrActivitySource):
		http.Error(w, "Bad Gateway: activity source unavailable", http.StatusBadGateway)
		return
	case errors.Is(err, dispatch.ErrSurfaceUnavailable):
		http.Error(w, "Service Unavailable: rendering surface could not be opened", http.StatusServiceUnavailable)
		return
	case errors.Is(err, booklet.ErrUnknownBackend):
		http.Error(w, "Bad Request: "+err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, sections.ErrNilEntries):
		// Aggregator contract violation; not silently patched.
		http.Error(w, "Internal Server Error: invalid document input", http.StatusInternalServerError)
		return
	default:
		http.Error(w, "Internal Server Error: processing failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.Error("Failed to write response", "error", err, "cycleId", res.CycleID)
		http.Error(w, "Internal Server Error: failed to encode response", http.StatusInternalServerError)
	}
}
