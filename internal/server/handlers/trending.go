package handlers

import (
	"net/http"
	"time"

	"github.com/synsight/synsight/internal/trending"
)

type TrendingHandler struct {
	service *trending.Service
}

func NewTrendingHandler(service *trending.Service) *TrendingHandler {
	return &TrendingHandler{service: service}
}

// GetTrending returns the current trending topics. `category` filters the
// list; `withSentiment=true` enriches each topic with a sentiment snapshot.
func (h *TrendingHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	withSentiment := r.URL.Query().Get("withSentiment") == "true"

	var topics any
	var err error
	if withSentiment {
		topics, err = h.service.GetTopicsWithSentiment(r.Context(), category)
	} else {
		topics, err = h.service.GetTopics(r.Context(), category)
	}
	if err != nil {
		respondWithAnalysisError(w, err)
		return
	}

	if category == "" {
		category = "all"
	}
	respondWithJSON(w, http.StatusOK, "Trending topics fetched successfully", map[string]any{
		"topics":    topics,
		"category":  category,
		"timestamp": time.Now(),
	})
}
