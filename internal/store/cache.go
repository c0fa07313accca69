package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"zhastar/catalog-service/internal/catalog"
)

const (
	listingKeyPrefix = "catalog:listing:"

	// EventChannel carries change notifications for SSE forwarding by the
	// gateway.
	EventChannel = "EVENT_CATALOG_CHANGED"
)

func listingKey(c catalog.Category) string {
	return listingKeyPrefix + string(c)
}

// fromCache returns a cached listing snapshot. Any cache failure is a miss:
// the caller falls through to PostgreSQL.
func (s *Store) fromCache(ctx context.Context, c catalog.Category) ([]catalog.Record, bool) {
	if s.rdb == nil {
		return nil, false
	}

	data, err := s.rdb.Get(ctx, listingKey(c)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("listing cache read failed", "category", c, "err", err)
		return nil, false
	}

	var records []catalog.Record
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Warn("listing cache decode failed", "category", c, "err", err)
		return nil, false
	}
	return records, true
}

// fillCache stores a listing snapshot with the configured TTL (non-fatal).
func (s *Store) fillCache(ctx context.Context, c catalog.Category, records []catalog.Record) {
	if s.rdb == nil {
		return
	}

	data, err := json.Marshal(records)
	if err != nil {
		slog.Warn("listing cache encode failed", "category", c, "err", err)
		return
	}
	if err := s.rdb.Set(ctx, listingKey(c), data, s.cacheTTL).Err(); err != nil {
		slog.Warn("listing cache write failed", "category", c, "err", err)
	}
}

// afterWrite drops the category's cached listing and publishes a change
// event. Both are non-fatal: the write itself has already succeeded.
func (s *Store) afterWrite(ctx context.Context, c catalog.Category, id, action string) {
	if s.rdb == nil {
		return
	}

	if err := s.rdb.Del(ctx, listingKey(c)).Err(); err != nil {
		slog.Warn("listing cache invalidate failed", "category", c, "err", err)
	}

	event, _ := json.Marshal(map[string]string{
		"type":     EventChannel,
		"category": string(c),
		"id":       id,
		"action":   action,
	})
	if err := s.rdb.Publish(ctx, EventChannel, event).Err(); err != nil {
		slog.Warn("publish EVENT_CATALOG_CHANGED failed", "err", err)
	}
}

// WarmCategory refreshes the cached listing for one category straight from
// PostgreSQL and returns the number of records cached.
func (s *Store) WarmCategory(ctx context.Context, c catalog.Category) (int, error) {
	records, err := s.listFromDB(ctx, c)
	if err != nil {
		return 0, &FetchError{Category: c, Err: err}
	}
	s.fillCache(ctx, c, records)
	return len(records), nil
}
