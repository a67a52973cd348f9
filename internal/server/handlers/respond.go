package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/synsight/synsight/internal/analysis"
	"github.com/synsight/synsight/internal/sentiment"
)

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, message string, data any) {
	response, err := json.Marshal(apiResponse{Success: true, Message: message, Data: data})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	if code >= 500 {
		slog.Error("[Server] Request failed", slog.Int("status", code), slog.String("message", message))
	}

	jsonResponse, _ := json.Marshal(apiResponse{Success: false, Message: message})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}

// respondWithAnalysisError maps pipeline failures onto HTTP statuses. The
// error message is surfaced verbatim.
func respondWithAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analysis.ErrNoDataFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, analysis.ErrNoValidContent):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, analysis.ErrConfigurationMissing):
		respondWithError(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, analysis.ErrUpstreamUnavailable):
		respondWithError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, sentiment.ErrScoringUnavailable):
		respondWithError(w, http.StatusInternalServerError, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

func userFromRequest(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}
