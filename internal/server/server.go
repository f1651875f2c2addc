// Package server exposes the scenario comparison over HTTP: a JSON API for
// interactive exploration plus an embedded single-page UI.
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sonnenplan/solar-scenario/internal/compare"
	"github.com/sonnenplan/solar-scenario/internal/config"
	"github.com/sonnenplan/solar-scenario/pkg/constants"
	"github.com/sonnenplan/solar-scenario/pkg/output"
	"github.com/sonnenplan/solar-scenario/pkg/scenario"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the web UI and scenario API.
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

	// Scenario API endpoint for editor-driven parameter payloads
	mux.HandleFunc("/api/scenario", h.handleScenario)

	// Scenario API endpoint (YAML config file upload)
	mux.HandleFunc("/api/scenario/upload", h.handleScenarioUpload)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	return c.Handler(mux)
}

type scenarioResponse struct {
	Scenarios  []string               `json:"scenarios"`
	Rows       []yearRow              `json:"rows"`
	CSV        string                 `json:"csv"`
	Metrics    []scenarioMetrics      `json:"metrics"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

type yearRow struct {
	Year   int             `json:"year"`
	Values []scenarioValue `json:"values"`
}

type scenarioValue struct {
	Production         *float64 `json:"production,omitempty"`
	SelfConsumed       *float64 `json:"selfConsumed,omitempty"`
	Exported           *float64 `json:"exported,omitempty"`
	TotalRevenue       *float64 `json:"totalRevenue,omitempty"`
	NetCashFlow        *float64 `json:"netCashFlow,omitempty"`
	CumulativeCashFlow *float64 `json:"cumulativeCashFlow,omitempty"`
}

type scenarioMetrics struct {
	Label       string  `json:"label"`
	NPV         float64 `json:"npv"`
	PaybackYear *int    `json:"paybackYear"`
	Note        string  `json:"note,omitempty"`
}

func (h *handler) handleScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleScenario")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondError(w, http.StatusBadRequest, "invalid config payload: expected object", "server.handleScenario")
			return
		}
		configPayload = cfgMap
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleScenario")
		return
	}

	h.runScenarios(w, configBytes, configPayload, start, "server.handleScenario")
}

func (h *handler) handleScenarioUpload(w http.ResponseWriter, r *http.Request) {
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
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleScenarioUpload")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleScenarioUpload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", "server.handleScenarioUpload")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleScenarioUpload"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "server.handleScenarioUpload")
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), "server.handleScenarioUpload")
		return
	}

	h.runScenarios(w, configBytes, configMap, start, "server.handleScenarioUpload")
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

func (h *handler) runScenarios(w http.ResponseWriter, configBytes []byte, configMap map[string]interface{}, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()

	results, err := compare.RunScenarios(h.logger, *cfg)
	if err != nil {
		var invalidErr *scenario.InvalidParameterError
		status := http.StatusInternalServerError
		if errors.As(err, &invalidErr) {
			status = http.StatusBadRequest
		}
		h.respondError(w, status, fmt.Sprintf("failed to compute scenarios: %v", err), op)
		return
	}

	elapsed := time.Since(start)

	if configMap == nil {
		configMap = make(map[string]interface{})
	}

	response := scenarioResponse{
		Scenarios:  extractLabels(results),
		Rows:       buildRows(results),
		CSV:        output.CsvString(results),
		Metrics:    buildMetrics(results),
		Warnings:   warnings,
		Duration:   elapsed.String(),
		Config:     configMap,
		ConfigYAML: string(configBytes),
	}

	h.logger.Info("scenarios computed",
		zap.String("op", op),
		zap.Int("scenarios", len(response.Scenarios)),
		zap.Int("rows", len(response.Rows)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("scenario request failed",
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

func extractLabels(results []scenario.Result) []string {
	labels := make([]string, 0, len(results))
	for _, result := range results {
		labels = append(labels, result.Label)
	}
	return labels
}

// buildRows lines the scenario tables up by year. Cumulative cash flow is
// accumulated per scenario, never across the combined table.
func buildRows(results []scenario.Result) []yearRow {
	maxYears := 0
	for _, result := range results {
		if len(result.Years) > maxYears {
			maxYears = len(result.Years)
		}
	}

	cumulative := make([]float64, len(results))

	rows := make([]yearRow, 0, maxYears)
	for yearIndex := 0; yearIndex < maxYears; yearIndex++ {
		row := yearRow{Year: yearIndex}
		for i, result := range results {
			if yearIndex >= len(result.Years) {
				row.Values = append(row.Values, scenarioValue{})
				continue
			}
			record := result.Years[yearIndex]
			cumulative[i] += record.NetCashFlow

			production := record.Production
			selfConsumed := record.SelfConsumed
			exported := record.Exported
			totalRevenue := record.TotalRevenue
			netCashFlow := record.NetCashFlow
			cumulativeCashFlow := cumulative[i]

			row.Values = append(row.Values, scenarioValue{
				Production:         &production,
				SelfConsumed:       &selfConsumed,
				Exported:           &exported,
				TotalRevenue:       &totalRevenue,
				NetCashFlow:        &netCashFlow,
				CumulativeCashFlow: &cumulativeCashFlow,
			})
		}
		rows = append(rows, row)
	}

	return rows
}

func buildMetrics(results []scenario.Result) []scenarioMetrics {
	metrics := make([]scenarioMetrics, 0, len(results))
	for _, result := range results {
		metrics = append(metrics, scenarioMetrics{
			Label:       result.Label,
			NPV:         result.NPV,
			PaybackYear: result.PaybackYear,
			Note:        result.Note,
		})
	}
	return metrics
}
