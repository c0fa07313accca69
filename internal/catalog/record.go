package catalog

import "time"

// Record is one opportunity. The shape is open rather than a per-category
// type hierarchy: common fields are always populated, category-specific
// fields stay nil outside their owning category. JSON names mirror the
// database columns.
type Record struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Link        string     `json:"link"`
	ImageURL    *string    `json:"image_url,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	// olympiads
	Subject *string `json:"subject,omitempty"`
	Level   *string `json:"level,omitempty"`

	// competitions
	Type      *string `json:"type,omitempty"`
	PrizeFund *string `json:"prize_fund,omitempty"`

	// volunteering
	Organization *string `json:"organization,omitempty"`
	Duration     *string `json:"duration,omitempty"`
	Cause        *string `json:"cause,omitempty"`

	// universities
	Ranking     *string `json:"ranking,omitempty"`
	TuitionType *string `json:"tuition_type,omitempty"`
	Programs    *string `json:"programs,omitempty"`

	// shared across several categories
	Format         *string `json:"format,omitempty"`
	City           *string `json:"city,omitempty"`
	GrantAvailable *bool   `json:"grant_available,omitempty"`
}

// StringField returns the record's value for a string-kind facet key.
// ok is false when the field is absent or key does not name a string field.
func (r *Record) StringField(key string) (string, bool) {
	var p *string
	switch key {
	case "subject":
		p = r.Subject
	case "level":
		p = r.Level
	case "format":
		p = r.Format
	case "city":
		p = r.City
	case "type":
		p = r.Type
	case "cause":
		p = r.Cause
	case "duration":
		p = r.Duration
	case "ranking":
		p = r.Ranking
	case "tuition_type":
		p = r.TuitionType
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

// BoolField returns the record's value for a boolean-kind facet key.
// ok is false when the field is absent, so an active boolean facet excludes
// records that never declared the flag.
func (r *Record) BoolField(key string) (bool, bool) {
	if key != "grant_available" || r.GrantAvailable == nil {
		return false, false
	}
	return *r.GrantAvailable, true
}
