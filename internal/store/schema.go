package store

import (
	"context"
	"fmt"
	"strings"
)

// columnTypes maps every known column to its SQL type. Facet-backed columns
// are plain TEXT; value vocabularies live in the facet schemas, not in the
// database.
var columnTypes = map[string]string{
	"id":              "UUID PRIMARY KEY DEFAULT gen_random_uuid()",
	"title":           "TEXT NOT NULL",
	"description":     "TEXT NOT NULL",
	"link":            "TEXT NOT NULL",
	"image_url":       "TEXT",
	"deadline":        "DATE",
	"created_at":      "TIMESTAMPTZ NOT NULL DEFAULT now()",
	"subject":         "TEXT",
	"level":           "TEXT",
	"type":            "TEXT",
	"prize_fund":      "TEXT",
	"organization":    "TEXT",
	"duration":        "TEXT",
	"cause":           "TEXT",
	"ranking":         "TEXT",
	"tuition_type":    "TEXT",
	"programs":        "TEXT",
	"format":          "TEXT",
	"city":            "TEXT",
	"grant_available": "BOOLEAN",
}

// EnsureSchema creates the four category tables if they do not exist yet.
// Called once at startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for c, extra := range categoryColumns {
		defs := make([]string, 0, len(commonColumns)+len(extra))
		for _, col := range append(append([]string{}, commonColumns...), extra...) {
			typ, ok := columnTypes[col]
			if !ok {
				return fmt.Errorf("no column type for %q", col)
			}
			defs = append(defs, col+" "+typ)
		}

		ddl := fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", c, strings.Join(defs, ",\n\t"),
		)
		if _, err := s.pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("create table %s: %w", c, err)
		}
	}
	return nil
}
