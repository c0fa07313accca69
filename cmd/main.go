// zhastar-catalog-service
//
// Backend for the opportunity directory: olympiads, competitions,
// volunteering and universities across Kazakhstan.
//   - category listings with facet filtering
//   - admin insert/delete per category
//   - workspace notes (Redis-persisted)
//   - AI career advisor relay with saved transcript
//
// Publishes EVENT_CATALOG_CHANGED to Redis on every admin write.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zhastar/catalog-service/internal/assistant"
	"zhastar/catalog-service/internal/config"
	"zhastar/catalog-service/internal/db"
	"zhastar/catalog-service/internal/httpapi"
	"zhastar/catalog-service/internal/notes"
	"zhastar/catalog-service/internal/store"
	"zhastar/catalog-service/internal/warmer"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[catalog-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[catalog-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[catalog-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[catalog-service] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[catalog-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[catalog-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[catalog-service] Redis connected ✓")

	// ── Stores ───────────────────────────────────────────────────────────────
	// Cache TTL runs a little past the refresh interval so entries survive
	// until the warmer's next pass.
	cacheTTL := time.Duration(cfg.CacheRefreshMinutes+5) * time.Minute
	records := store.New(pool, rdb, cacheTTL)
	if err := records.EnsureSchema(ctx); err != nil {
		log.Fatalf("[catalog-service] Schema: %v", err)
	}

	blobs := db.NewRedisBlobs(rdb)

	noteStore := notes.NewStore(blobs)
	if err := noteStore.Load(ctx); err != nil {
		log.Fatalf("[catalog-service] Notes load: %v", err)
	}

	history := assistant.NewHistory(blobs)
	if err := history.Load(ctx); err != nil {
		log.Fatalf("[catalog-service] Chat history load: %v", err)
	}

	relay := assistant.NewRelay(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if cfg.OpenAIAPIKey == "" {
		log.Println("[catalog-service] OPENAI_API_KEY not set, assistant disabled")
	}

	// ── Cache warmer ─────────────────────────────────────────────────────────
	warm := warmer.New(records, cfg.CacheRefreshMinutes)
	if err := warm.Start(ctx); err != nil {
		log.Fatalf("[catalog-service] Cache warmer: %v", err)
	}
	defer warm.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	h := httpapi.NewHandler(records, noteStore, relay, history)
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("[catalog-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[catalog-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[catalog-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[catalog-service] Shutdown error: %v", err)
	}
	log.Println("[catalog-service] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "catalog-service",
		"version": version,
	})
}
