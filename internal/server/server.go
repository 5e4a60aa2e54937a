// Package server exposes the blend optimizer over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Qiqian1999/sement/internal/blend"
	"github.com/Qiqian1999/sement/internal/config"
	"github.com/Qiqian1999/sement/internal/optimizer"
	"github.com/Qiqian1999/sement/pkg/constants"
	"github.com/Qiqian1999/sement/pkg/output"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the optimization API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Optimization endpoint (YAML file upload)
	mux.HandleFunc("/api/optimize", h.handleOptimize)

	// Optimization endpoint for JSON payloads
	mux.HandleFunc("/api/editor/optimize", h.handleOptimizeEditor)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type optimizeResponse struct {
	Materials     []materialRow   `json:"materials"`
	ReferenceCost float64         `json:"referenceCost"`
	OptimalCost   float64         `json:"optimalCost"`
	Savings       float64         `json:"savings"`
	Quality       *qualityTargets `json:"quality,omitempty"`
	CSV           string          `json:"csv"`
	Warnings      []string        `json:"warnings,omitempty"`
	Duration      string          `json:"duration"`
}

type materialRow struct {
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	ReferenceRatio float64 `json:"referenceRatio"`
	OptimalRatio   float64 `json:"optimalRatio"`
	ReferenceCost  float64 `json:"referenceCost"`
	OptimalCost    float64 `json:"optimalCost"`
}

type qualityTargets struct {
	StrengthTarget float64 `json:"strengthTarget"`
	FinenessTarget float64 `json:"finenessTarget"`
}

func (h *handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleOptimize")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleOptimize")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", "server.handleOptimize")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleOptimize"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "server.handleOptimize")
		return
	}

	h.runOptimization(w, buf.Bytes(), start, "server.handleOptimize")
}

func (h *handler) handleOptimizeEditor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleOptimizeEditor")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configBytes, err := yaml.Marshal(payload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleOptimizeEditor")
		return
	}

	h.runOptimization(w, configBytes, start, "server.handleOptimizeEditor")
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) runOptimization(w http.ResponseWriter, configBytes []byte, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()

	runner, err := optimizer.NewRunner(h.logger, cfg)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to initialize optimizer: %v", err), op)
		return
	}

	result, err := runner.Run()
	if err != nil {
		h.respondError(w, statusForError(err), err.Error(), op)
		return
	}

	elapsed := time.Since(start)

	response := optimizeResponse{
		Materials:     buildMaterialRows(result),
		ReferenceCost: result.Comparison.ReferenceCost,
		OptimalCost:   result.Comparison.OptimalCost,
		Savings:       result.Comparison.Savings,
		CSV:           output.CsvString(result),
		Warnings:      warnings,
		Duration:      elapsed.String(),
	}
	if result.Quality.StrengthTarget != 0 || result.Quality.FinenessTarget != 0 {
		response.Quality = &qualityTargets{
			StrengthTarget: result.Quality.StrengthTarget,
			FinenessTarget: result.Quality.FinenessTarget,
		}
	}

	h.logger.Info("blend optimization served",
		zap.String("op", op),
		zap.Int("materials", len(response.Materials)),
		zap.Float64("savings", response.Savings),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

// statusForError maps the optimizer error taxonomy onto HTTP status codes.
// Infeasibility is the caller's constraint problem, not a server fault, and
// must arrive as an explicit indicator rather than a zero-filled blend.
func statusForError(err error) int {
	switch {
	case errors.Is(err, blend.ErrConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, blend.ErrInfeasible):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func buildMaterialRows(result *optimizer.Result) []materialRow {
	rows := make([]materialRow, 0, len(result.Materials))
	for i, name := range result.Materials {
		rows = append(rows, materialRow{
			Name:           name,
			Price:          result.Prices[i],
			ReferenceRatio: result.Reference[i],
			OptimalRatio:   result.Optimal[i],
			ReferenceCost:  result.Comparison.ReferenceBreakdown[i],
			OptimalCost:    result.Comparison.OptimalBreakdown[i],
		})
	}
	return rows
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("optimization request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
