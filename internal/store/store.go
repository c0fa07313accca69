// Package store implements the PostgreSQL-backed record store for the
// opportunity catalog. Each category has its own table with its own column
// set; rows are scanned into the open catalog.Record shape. A Redis listing
// cache sits in front of reads and is invalidated by writes.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"zhastar/catalog-service/internal/catalog"
)

// commonColumns exist in every category table; the database assigns id and
// created_at on insert.
var commonColumns = []string{"id", "title", "description", "link", "image_url", "deadline", "created_at"}

// categoryColumns are the per-table extras, matching each category's facet
// schema plus the non-filterable prize_fund/organization/programs fields.
var categoryColumns = map[catalog.Category][]string{
	catalog.CategoryOlympiads:    {"subject", "level", "format", "city", "grant_available"},
	catalog.CategoryCompetitions: {"type", "prize_fund", "format", "city", "grant_available"},
	catalog.CategoryVolunteering: {"organization", "duration", "format", "city", "cause"},
	catalog.CategoryUniversities: {"city", "ranking", "tuition_type", "grant_available", "programs"},
}

func columnsFor(c catalog.Category) []string {
	cols := make([]string, 0, len(commonColumns)+len(categoryColumns[c]))
	cols = append(cols, commonColumns...)
	return append(cols, categoryColumns[c]...)
}

// scanTargets maps a column list onto the matching Record fields, in order.
func scanTargets(r *catalog.Record, cols []string) []any {
	dests := make([]any, 0, len(cols))
	for _, col := range cols {
		switch col {
		case "id":
			dests = append(dests, &r.ID)
		case "title":
			dests = append(dests, &r.Title)
		case "description":
			dests = append(dests, &r.Description)
		case "link":
			dests = append(dests, &r.Link)
		case "image_url":
			dests = append(dests, &r.ImageURL)
		case "deadline":
			dests = append(dests, &r.Deadline)
		case "created_at":
			dests = append(dests, &r.CreatedAt)
		case "subject":
			dests = append(dests, &r.Subject)
		case "level":
			dests = append(dests, &r.Level)
		case "type":
			dests = append(dests, &r.Type)
		case "prize_fund":
			dests = append(dests, &r.PrizeFund)
		case "organization":
			dests = append(dests, &r.Organization)
		case "duration":
			dests = append(dests, &r.Duration)
		case "cause":
			dests = append(dests, &r.Cause)
		case "ranking":
			dests = append(dests, &r.Ranking)
		case "tuition_type":
			dests = append(dests, &r.TuitionType)
		case "programs":
			dests = append(dests, &r.Programs)
		case "format":
			dests = append(dests, &r.Format)
		case "city":
			dests = append(dests, &r.City)
		case "grant_available":
			dests = append(dests, &r.GrantAvailable)
		}
	}
	return dests
}

// Store reads and writes category-scoped opportunity records.
type Store struct {
	pool     *pgxpool.Pool
	rdb      *redis.Client
	cacheTTL time.Duration
}

// New returns a Store. rdb may be nil, which disables the listing cache and
// change events.
func New(pool *pgxpool.Pool, rdb *redis.Client, cacheTTL time.Duration) *Store {
	return &Store{pool: pool, rdb: rdb, cacheTTL: cacheTTL}
}

// List returns all records of a category, newest first, serving from the
// Redis cache when a fresh snapshot is available. Failures are FetchErrors.
func (s *Store) List(ctx context.Context, c catalog.Category) ([]catalog.Record, error) {
	if records, ok := s.fromCache(ctx, c); ok {
		return records, nil
	}

	records, err := s.listFromDB(ctx, c)
	if err != nil {
		return nil, &FetchError{Category: c, Err: err}
	}
	s.fillCache(ctx, c, records)
	return records, nil
}

func (s *Store) listFromDB(ctx context.Context, c catalog.Category) ([]catalog.Record, error) {
	cols := columnsFor(c)
	// The table name is the category, which ParseCategory restricts to the
	// closed enum.
	query := fmt.Sprintf(
		`SELECT %s FROM %s ORDER BY created_at DESC`,
		strings.Join(cols, ", "), c,
	)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", c, err)
	}
	defer rows.Close()

	records := make([]catalog.Record, 0)
	for rows.Next() {
		var r catalog.Record
		if err := rows.Scan(scanTargets(&r, cols)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", c, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Insert validates the draft against the category's schema and inserts it.
// The database assigns id and created_at; the new id is returned.
func (s *Store) Insert(ctx context.Context, c catalog.Category, d Draft) (string, error) {
	if err := d.Validate(c); err != nil {
		return "", err
	}

	cols := []string{"title", "description", "link"}
	args := []any{d.Title, d.Description, d.Link}

	if d.ImageURL != "" {
		cols = append(cols, "image_url")
		args = append(args, d.ImageURL)
	}
	if d.Deadline != "" {
		deadline, _ := time.Parse(deadlineLayout, d.Deadline) // validated above
		cols = append(cols, "deadline")
		args = append(args, deadline)
	}
	if d.GrantAvailable != nil {
		cols = append(cols, "grant_available")
		args = append(args, *d.GrantAvailable)
	}

	// Facet values in schema order so the statement is deterministic.
	for _, f := range catalog.FacetsFor(c) {
		if f.Kind != catalog.FacetString {
			continue
		}
		if v := d.Facets[f.Key]; v != "" {
			cols = append(cols, f.Key)
			args = append(args, v)
		}
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s) RETURNING id`,
		c, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)

	var id string
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return "", &WriteError{Op: "insert", Category: c, Err: err}
	}

	s.afterWrite(ctx, c, id, "inserted")
	return id, nil
}

// Delete removes one record by id within a category. Returns ErrNotFound
// when the id does not exist there.
func (s *Store) Delete(ctx context.Context, c catalog.Category, id string) error {
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c), id)
	if err != nil {
		return &WriteError{Op: "delete", Category: c, Err: err}
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	s.afterWrite(ctx, c, id, "deleted")
	return nil
}
