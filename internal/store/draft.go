package store

import (
	"fmt"
	"strings"
	"time"

	"zhastar/catalog-service/internal/catalog"
)

const deadlineLayout = "2006-01-02"

// Draft is an admin-submitted record before the store assigns id and
// created_at. Facets maps facet key to one selected option value for the
// string-kind facets of the target category.
type Draft struct {
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Link           string            `json:"link"`
	ImageURL       string            `json:"image_url,omitempty"`
	Deadline       string            `json:"deadline,omitempty"` // YYYY-MM-DD
	GrantAvailable *bool             `json:"grant_available,omitempty"`
	Facets         map[string]string `json:"facets,omitempty"`
}

// Validate checks the draft against the required-field rules and the
// category's facet schema. All failures are ValidationErrors.
func (d *Draft) Validate(c catalog.Category) error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Msg: "title is required"}
	}
	if strings.TrimSpace(d.Description) == "" {
		return &ValidationError{Msg: "description is required"}
	}
	if strings.TrimSpace(d.Link) == "" {
		return &ValidationError{Msg: "link is required"}
	}

	if d.Deadline != "" {
		if _, err := time.Parse(deadlineLayout, d.Deadline); err != nil {
			return &ValidationError{Msg: fmt.Sprintf("deadline must be YYYY-MM-DD, got %q", d.Deadline)}
		}
	}

	for key, value := range d.Facets {
		facet, ok := catalog.FacetFor(c, key)
		if !ok {
			return &ValidationError{Msg: fmt.Sprintf("%q is not a filter field of category %s", key, c)}
		}
		if facet.Kind != catalog.FacetString {
			return &ValidationError{Msg: fmt.Sprintf("field %q is not set through facets", key)}
		}
		if value != "" && !facet.HasOption(value) {
			return &ValidationError{Msg: fmt.Sprintf("%q is not a valid value for %q", value, key)}
		}
	}

	if d.GrantAvailable != nil {
		if _, ok := catalog.FacetFor(c, "grant_available"); !ok {
			return &ValidationError{Msg: fmt.Sprintf("category %s has no grant flag", c)}
		}
	}

	return nil
}
