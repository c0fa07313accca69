// Package catalog implements the filtering core of the opportunity directory:
// the category enum, the per-category facet schemas, the multi-select filter
// engine, and the session state that ties them together. Everything in this
// package is independent of storage and transport.
package catalog

import "fmt"

// Category partitions opportunity records. The set is closed: each category
// has its own table and its own facet schema, and a record never moves
// between categories.
type Category string

const (
	CategoryOlympiads    Category = "olympiads"
	CategoryCompetitions Category = "competitions"
	CategoryVolunteering Category = "volunteering"
	CategoryUniversities Category = "universities"
)

// Categories lists every category in display order. The first entry is the
// default on session start.
var Categories = []Category{
	CategoryOlympiads,
	CategoryCompetitions,
	CategoryVolunteering,
	CategoryUniversities,
}

// ParseCategory converts a raw string to a Category, returning an error for
// unknown values.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	switch c {
	case CategoryOlympiads, CategoryCompetitions, CategoryVolunteering, CategoryUniversities:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}
