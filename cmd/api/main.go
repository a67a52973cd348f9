package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/synsight/synsight/config"
	"github.com/synsight/synsight/internal/analysis"
	"github.com/synsight/synsight/internal/cache"
	"github.com/synsight/synsight/internal/clients"
	"github.com/synsight/synsight/internal/db"
	"github.com/synsight/synsight/internal/events"
	"github.com/synsight/synsight/internal/logging"
	"github.com/synsight/synsight/internal/platforms"
	"github.com/synsight/synsight/internal/reports"
	"github.com/synsight/synsight/internal/sentiment"
	"github.com/synsight/synsight/internal/server"
	"github.com/synsight/synsight/internal/trending"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	scorer := buildScorer()
	db.InitDynamoDB()

	orchestrator := analysis.NewOrchestrator(
		scorer,
		platforms.NewTwitterFetcher(clients.GetTwitterClient()),
		platforms.NewRedditFetcher(),
		platforms.NewBlueskyFetcher(clients.GetBlueskyClient()),
	)

	trendingService := trending.NewService(clients.GetBlueskyClient(), orchestrator, buildCache())

	var reportsService *reports.Service
	if openAI, err := clients.GetOpenAIClient(); err != nil {
		slog.Warn("Report generation disabled", slog.String("error", err.Error()))
	} else {
		reportsService = reports.NewService(openAI.Client)
	}

	publisher, err := events.NewPublisher()
	if err != nil {
		slog.Error("Failed to initialize event publisher", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer publisher.Close()

	srv := server.NewServer(orchestrator, trendingService, reportsService, publisher)

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting API server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", slog.String("error", err.Error()))
			stopChan <- syscall.SIGTERM
		}
	}()

	<-stopChan
	slog.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
	clients.CloseValkey()
	slog.Info("Shutdown complete")
}

// buildScorer selects the sentiment backend. The default is the in-process
// VADER scorer; SENTIMENT_SCORER=subprocess delegates to an external command
// named by SENTIMENT_SCORER_CMD.
func buildScorer() sentiment.Scorer {
	if os.Getenv("SENTIMENT_SCORER") == "subprocess" {
		cmdline := strings.Fields(os.Getenv("SENTIMENT_SCORER_CMD"))
		if len(cmdline) == 0 {
			slog.Error("SENTIMENT_SCORER=subprocess requires SENTIMENT_SCORER_CMD")
			os.Exit(1)
		}
		slog.Info("Using subprocess sentiment scorer", slog.String("command", cmdline[0]))
		return sentiment.NewSubprocessScorer(cmdline[0], cmdline[1:]...)
	}
	return sentiment.NewVaderScorer()
}

// buildCache prefers a shared Valkey cache when VALKEY_INIT_ADDRESS is set,
// falling back to a process-local one.
func buildCache() cache.TTLCache {
	if os.Getenv("VALKEY_INIT_ADDRESS") != "" {
		return cache.NewValkeyCache(clients.InitValkey())
	}
	slog.Info("VALKEY_INIT_ADDRESS not set, using in-memory cache")
	return cache.NewMemoryCache()
}
