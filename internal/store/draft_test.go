package store

import (
	"testing"

	"zhastar/catalog-service/internal/catalog"
)

func validDraft() Draft {
	return Draft{
		Title:       "Республиканская олимпиада по математике",
		Description: "Отборочный этап для учеников 9-11 классов",
		Link:        "https://example.kz/olympiad",
	}
}

func TestDraftValidate_RequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Draft)
	}{
		{"missing title", func(d *Draft) { d.Title = "" }},
		{"blank title", func(d *Draft) { d.Title = "   " }},
		{"missing description", func(d *Draft) { d.Description = "" }},
		{"missing link", func(d *Draft) { d.Link = "" }},
	}
	for _, tc := range cases {
		d := validDraft()
		tc.mutate(&d)
		err := d.Validate(catalog.CategoryOlympiads)
		if err == nil {
			t.Errorf("%s: Validate() = nil, want ValidationError", tc.name)
			continue
		}
		if _, ok := err.(*ValidationError); !ok {
			t.Errorf("%s: Validate() = %T, want *ValidationError", tc.name, err)
		}
	}
}

func TestDraftValidate_Deadline(t *testing.T) {
	d := validDraft()
	d.Deadline = "2026-10-01"
	if err := d.Validate(catalog.CategoryOlympiads); err != nil {
		t.Errorf("valid deadline rejected: %v", err)
	}

	for _, bad := range []string{"01.10.2026", "2026-13-01", "tomorrow"} {
		d.Deadline = bad
		if err := d.Validate(catalog.CategoryOlympiads); err == nil {
			t.Errorf("deadline %q accepted, want ValidationError", bad)
		}
	}
}

func TestDraftValidate_FacetValues(t *testing.T) {
	d := validDraft()
	d.Facets = map[string]string{"subject": "math", "city": "almaty"}
	if err := d.Validate(catalog.CategoryOlympiads); err != nil {
		t.Errorf("valid facets rejected: %v", err)
	}

	// Key from another category's schema.
	d.Facets = map[string]string{"ranking": "top10"}
	if err := d.Validate(catalog.CategoryOlympiads); err == nil {
		t.Error("foreign facet key accepted, want ValidationError")
	}

	// Value outside the facet's option list.
	d.Facets = map[string]string{"subject": "astrology"}
	if err := d.Validate(catalog.CategoryOlympiads); err == nil {
		t.Error("unknown option value accepted, want ValidationError")
	}

	// The boolean facet is set through GrantAvailable, not Facets.
	d.Facets = map[string]string{"grant_available": "true"}
	if err := d.Validate(catalog.CategoryOlympiads); err == nil {
		t.Error("boolean facet via Facets accepted, want ValidationError")
	}
}

func TestDraftValidate_GrantFlagPerCategory(t *testing.T) {
	yes := true

	d := validDraft()
	d.GrantAvailable = &yes
	if err := d.Validate(catalog.CategoryUniversities); err != nil {
		t.Errorf("grant flag on universities rejected: %v", err)
	}

	// Volunteering has no grant facet.
	if err := d.Validate(catalog.CategoryVolunteering); err == nil {
		t.Error("grant flag on volunteering accepted, want ValidationError")
	}
}

// Every column in a category's column list must have a scan destination, and
// exactly one: a mismatch would shift every following column by one.
func TestScanTargets_CoverAllColumns(t *testing.T) {
	for _, c := range catalog.Categories {
		cols := columnsFor(c)
		var r catalog.Record
		dests := scanTargets(&r, cols)
		if len(dests) != len(cols) {
			t.Errorf("category %s: %d scan targets for %d columns", c, len(dests), len(cols))
		}
	}
}

// Per-table extras must cover every facet key of their category's schema.
func TestCategoryColumns_CoverFacetKeys(t *testing.T) {
	for _, c := range catalog.Categories {
		have := map[string]bool{}
		for _, col := range categoryColumns[c] {
			have[col] = true
		}
		for _, f := range catalog.FacetsFor(c) {
			if !have[f.Key] {
				t.Errorf("category %s: facet key %q has no table column", c, f.Key)
			}
		}
	}
}
