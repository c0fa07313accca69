// Package warmer wires up the cron job that periodically rewarms the Redis
// listing cache for every category, so reads rarely hit PostgreSQL cold.
package warmer

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"zhastar/catalog-service/internal/catalog"
	"zhastar/catalog-service/internal/store"
)

// Warmer wraps robfig/cron and manages the rewarm loop.
type Warmer struct {
	cron  *cron.Cron
	store *store.Store
	spec  string // cron spec, e.g. "@every 15m"
}

// New creates a Warmer that fires every intervalMinutes minutes.
func New(st *store.Store, intervalMinutes int) *Warmer {
	return &Warmer{
		cron:  cron.New(cron.WithLogger(cron.DefaultLogger)),
		store: st,
		spec:  fmt.Sprintf("@every %dm", intervalMinutes),
	}
}

// Start registers the job and starts the scheduler. Also runs one rewarm
// immediately so the cache is populated without waiting for the first tick.
func (w *Warmer) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.spec, func() {
		w.runWarm(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	w.cron.Start()
	log.Printf("[warmer] Cron started — spec: %s", w.spec)

	go w.runWarm(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (w *Warmer) Stop() {
	w.cron.Stop()
	log.Println("[warmer] Cron stopped")
}

// runWarm refreshes the cached listing of every category, continuing past
// per-category failures.
func (w *Warmer) runWarm(ctx context.Context) {
	log.Println("[warmer] Rewarm cycle started")

	for _, c := range catalog.Categories {
		n, err := w.store.WarmCategory(ctx, c)
		if err != nil {
			log.Printf("[warmer] WarmCategory(%s) error: %v — continuing", c, err)
			continue
		}
		log.Printf("[warmer] Cached %d record(s) for %s", n, c)
	}

	log.Println("[warmer] Rewarm cycle complete")
}
