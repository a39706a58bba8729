package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/campuswatch/campuswatch-be/internal/models"
	"github.com/campuswatch/campuswatch-be/internal/services"
)

// StatsProvider exposes the cached report statistics snapshot.
type StatsProvider interface {
	Snapshot() map[models.ReportStatus]int
}

// ReportHandler handles HTTP requests for crime reports.
type ReportHandler struct {
	service services.ReportServiceProvider
	stats   StatsProvider
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service services.ReportServiceProvider, stats StatsProvider) *ReportHandler {
	return &ReportHandler{service: service, stats: stats}
}

// CreateReportPayload defines the structure for report submissions. A status
// field in the body is accepted but ignored; new reports are always Pending.
type CreateReportPayload struct {
	UserID      string          `json:"userId"`
	Description string          `json:"description"`
	Location    models.Location `json:"location"`
	Status      string          `json:"status,omitempty"`
}

// GetAll handles the request to list every report.
func (h *ReportHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.GetAllReports()
	if err != nil {
		respondServiceError(w, err, "fetching crimes")
		return
	}
	respondJSON(w, http.StatusOK, reports)
}

// Get handles the request to fetch a single report by its id.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	report, err := h.service.GetReportByID(id)
	if err != nil {
		respondServiceError(w, err, "crime")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// GetNearby handles the proximity query. All three parameters are required
// and validated before any storage access.
func (h *ReportHandler) GetNearby(w http.ResponseWriter, r *http.Request) {
	lat, ok1 := queryFloat(r, "latitude")
	lng, ok2 := queryFloat(r, "longitude")
	radius, ok3 := queryFloat(r, "radius")
	if !ok1 || !ok2 || !ok3 {
		respondMessage(w, http.StatusBadRequest, "latitude, longitude and radius are required")
		return
	}

	reports, err := h.service.FindNearby(lat, lng, radius)
	if err != nil {
		respondServiceError(w, err, "fetching nearby crimes")
		return
	}
	respondJSON(w, http.StatusOK, reports)
}

// Create handles a citizen's report submission.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateReportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := h.service.CreateReport(payload.UserID, payload.Description, payload.Location)
	if err != nil {
		respondServiceError(w, err, "creating crime report")
		return
	}

	log.Info().Str("report_id", report.ID).Str("user_id", report.UserID).Msg("Crime report created")
	respondJSON(w, http.StatusCreated, report)
}

// Verify handles the Pending -> Verified transition. The role gate in front
// of this route already restricted it to Police and Admin.
func (h *ReportHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	report, err := h.service.VerifyReport(id)
	if err != nil {
		respondServiceError(w, err, "crime")
		return
	}

	log.Info().Str("report_id", report.ID).Msg("Crime report verified")
	respondJSON(w, http.StatusOK, report)
}

// GetStats serves the cached status counts collected by the monitor.
func (h *ReportHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.stats.Snapshot())
}

func queryFloat(r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
