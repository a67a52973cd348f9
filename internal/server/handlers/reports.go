package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/synsight/synsight/internal/db"
	"github.com/synsight/synsight/internal/reports"
)

type generateReportRequest struct {
	AnalysisID string `json:"analysisId"`
}

type ReportsHandler struct {
	service *reports.Service
}

func NewReportsHandler(service *reports.Service) *ReportsHandler {
	return &ReportsHandler{service: service}
}

// GenerateReport builds an LLM report from a previously stored analysis.
func (h *ReportsHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Report generation is not configured")
		return
	}

	var req generateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AnalysisID == "" {
		respondWithError(w, http.StatusBadRequest, "analysisId is required")
		return
	}

	analysis, err := db.GetAnalysis(r.Context(), req.AnalysisID, userFromRequest(r))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if analysis == nil {
		respondWithError(w, http.StatusNotFound, "Analysis not found")
		return
	}

	report, err := h.service.GenerateReport(r.Context(), analysis, analysis.Query)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, "Report generated successfully", report)
}
