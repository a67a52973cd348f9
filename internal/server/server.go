package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/synsight/synsight/internal/analysis"
	"github.com/synsight/synsight/internal/events"
	"github.com/synsight/synsight/internal/reports"
	"github.com/synsight/synsight/internal/server/handlers"
	"github.com/synsight/synsight/internal/trending"
)

// Server is the HTTP front end for the analysis pipeline.
type Server struct {
	server *http.Server
	router *chi.Mux
}

func NewServer(
	orchestrator *analysis.Orchestrator,
	trendingService *trending.Service,
	reportsService *reports.Service,
	publisher *events.Publisher,
) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(180 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	analysisHandler := handlers.NewAnalysisHandler(orchestrator, publisher)
	trendingHandler := handlers.NewTrendingHandler(trendingService)
	reportsHandler := handlers.NewReportsHandler(reportsService)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		r.Route("/v1", func(r chi.Router) {
			r.Route("/analysis", func(r chi.Router) {
				r.Post("/text", analysisHandler.AnalyzeText)
				r.Post("/twitter", analysisHandler.AnalyzeTwitter)
				r.Post("/reddit", analysisHandler.AnalyzeReddit)
				r.Post("/bluesky", analysisHandler.AnalyzeBluesky)
				r.Post("/multi", analysisHandler.AnalyzeMultiPlatform)

				r.Get("/", analysisHandler.ListAnalyses)
				r.Get("/statistics", analysisHandler.GetStatistics)
				r.Get("/{id}", analysisHandler.GetAnalysis)
				r.Delete("/{id}", analysisHandler.DeleteAnalysis)
			})

			r.Get("/trending", trendingHandler.GetTrending)
			r.Post("/reports", reportsHandler.GenerateReport)
		})
	})

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second,
	}

	return &Server{server: httpServer, router: router}
}

func (s *Server) Addr() string { return s.server.Addr }

func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
