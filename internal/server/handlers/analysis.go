package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/synsight/synsight/internal/analysis"
	"github.com/synsight/synsight/internal/db"
	"github.com/synsight/synsight/internal/events"
	"github.com/synsight/synsight/internal/models"
)

const (
	defaultTimeframe = "last7days"
	defaultLanguage  = "en"
)

type analyzeRequest struct {
	Query      string `json:"query"`
	Text       string `json:"text"`
	MaxResults int    `json:"maxResults"`
	Options    struct {
		Timeframe string `json:"timeframe"`
		Language  string `json:"language"`
	} `json:"options"`
}

type analyzeFunc func(ctx context.Context, query string, maxResults int, opts analysis.Options) (*models.AnalysisResult, error)

// AnalysisHandler exposes the sentiment pipeline over HTTP and persists every
// completed platform analysis.
type AnalysisHandler struct {
	orchestrator *analysis.Orchestrator
	publisher    *events.Publisher
}

func NewAnalysisHandler(orchestrator *analysis.Orchestrator, publisher *events.Publisher) *AnalysisHandler {
	return &AnalysisHandler{orchestrator: orchestrator, publisher: publisher}
}

// AnalyzeText classifies a single text directly; nothing is persisted.
func (h *AnalysisHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondWithError(w, http.StatusBadRequest, "Text is required")
		return
	}

	result, err := h.orchestrator.AnalyzeText(r.Context(), req.Text)
	if err != nil {
		respondWithAnalysisError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, "Text analyzed successfully", result)
}

func (h *AnalysisHandler) AnalyzeTwitter(w http.ResponseWriter, r *http.Request) {
	h.analyzePlatform(w, r, h.orchestrator.AnalyzeTwitter)
}

func (h *AnalysisHandler) AnalyzeReddit(w http.ResponseWriter, r *http.Request) {
	h.analyzePlatform(w, r, h.orchestrator.AnalyzeReddit)
}

func (h *AnalysisHandler) AnalyzeBluesky(w http.ResponseWriter, r *http.Request) {
	h.analyzePlatform(w, r, h.orchestrator.AnalyzeBluesky)
}

func (h *AnalysisHandler) AnalyzeMultiPlatform(w http.ResponseWriter, r *http.Request) {
	h.analyzePlatform(w, r, h.orchestrator.AnalyzeMultiPlatform)
}

func (h *AnalysisHandler) analyzePlatform(w http.ResponseWriter, r *http.Request, analyze analyzeFunc) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		respondWithError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	opts := analysis.Options{Timeframe: req.Options.Timeframe, Language: req.Options.Language}
	if opts.Timeframe == "" {
		opts.Timeframe = defaultTimeframe
	}
	if opts.Language == "" {
		opts.Language = defaultLanguage
	}

	start := time.Now()
	result, err := analyze(r.Context(), req.Query, req.MaxResults, opts)
	if err != nil {
		respondWithAnalysisError(w, err)
		return
	}

	doc := buildAnalysisDocument(result, userFromRequest(r), opts, time.Since(start))
	if err := db.SaveAnalysis(r.Context(), doc); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.publisher.PublishAnalysisCompleted(doc)

	respondWithJSON(w, http.StatusOK, "Analysis completed successfully", doc)
}

func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := db.GetAnalysis(r.Context(), id, userFromRequest(r))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if doc == nil {
		respondWithError(w, http.StatusNotFound, "Analysis not found")
		return
	}
	respondWithJSON(w, http.StatusOK, "Analysis fetched successfully", doc)
}

func (h *AnalysisHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := db.ListAnalyses(r.Context(), userFromRequest(r))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, "Analyses fetched successfully", map[string]any{
		"analyses": analyses,
		"total":    len(analyses),
	})
}

func (h *AnalysisHandler) DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deleted, err := db.DeleteAnalysis(r.Context(), id, userFromRequest(r))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		respondWithError(w, http.StatusNotFound, "Analysis not found")
		return
	}
	respondWithJSON(w, http.StatusOK, "Analysis deleted successfully", nil)
}

func (h *AnalysisHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := db.GetStatistics(r.Context(), userFromRequest(r))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, "Statistics fetched successfully", stats)
}

// buildAnalysisDocument wraps a pipeline result into the persisted document,
// deriving the covered date range from the sample posts.
func buildAnalysisDocument(result *models.AnalysisResult, user string, opts analysis.Options, elapsed time.Duration) *models.Analysis {
	doc := &models.Analysis{
		ID:     uuid.NewString(),
		User:   user,
		Query:  result.Query,
		Source: result.Source,
		Sentiment: models.AnalysisSentiment{
			Overall:      result.OverallSentiment,
			Percentages:  result.Percentages,
			Scores:       result.AverageScores,
			Distribution: result.SentimentDistribution,
		},
		TotalAnalyzed:     result.TotalAnalyzed,
		Insights:          result.Insights,
		PlatformBreakdown: result.PlatformBreakdown,
		TopKeywords:       result.TopKeywords,
		SentimentOverTime: result.SentimentOverTime,
		SamplePosts:       result.SamplePosts,
		Metadata: models.AnalysisMetadata{
			Timestamp:        result.Timestamp,
			ProcessingTimeMs: elapsed.Milliseconds(),
			Options: models.AnalysisOptions{
				Timeframe: opts.Timeframe,
				Language:  opts.Language,
			},
		},
		CreatedAt: time.Now(),
	}

	if dr := dateRangeFromSamples(result.SamplePosts); dr != nil {
		doc.DateRange = dr
	}
	return doc
}

func dateRangeFromSamples(samples []models.SamplePost) *models.DateRange {
	var dr models.DateRange
	for _, p := range samples {
		if p.CreatedAt.IsZero() {
			continue
		}
		if dr.Start.IsZero() || p.CreatedAt.Before(dr.Start) {
			dr.Start = p.CreatedAt
		}
		if dr.End.IsZero() || p.CreatedAt.After(dr.End) {
			dr.End = p.CreatedAt
		}
	}
	if dr.Start.IsZero() {
		return nil
	}
	return &dr
}
