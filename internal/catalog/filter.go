package catalog

// Apply narrows records to those matching the selection under the given facet
// schema. Active facets combine with AND; the values inside one facet combine
// with OR. The result preserves the input order and is always a subsequence
// of records; with nothing selected the input is returned unchanged.
func Apply(records []Record, sel *Selection, facets []Facet) []Record {
	if sel == nil || sel.ActiveCount() == 0 {
		return records
	}

	kinds := make(map[string]FacetKind, len(facets))
	for _, f := range facets {
		kinds[f.Key] = f.Kind
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if recordMatches(&r, sel, kinds) {
			out = append(out, r)
		}
	}
	return out
}

func recordMatches(r *Record, sel *Selection, kinds map[string]FacetKind) bool {
	for key, values := range sel.values {
		if len(values) == 0 {
			continue
		}
		if !fieldMatches(r, key, values, kinds[key]) {
			return false
		}
	}
	return true
}

// fieldMatches applies one facet's OR rule to a record. A record whose field
// is absent never matches while the facet is active, for boolean and string
// facets alike. A selection key outside the schema falls through to the
// string rule and matches nothing.
func fieldMatches(r *Record, key string, values []string, kind FacetKind) bool {
	if kind == FacetBool {
		b, ok := r.BoolField(key)
		if !ok {
			return false
		}
		token := "false"
		if b {
			token = "true"
		}
		for _, v := range values {
			if v == token {
				return true
			}
		}
		return false
	}

	got, ok := r.StringField(key)
	if !ok {
		return false
	}
	for _, v := range values {
		if v == got {
			return true
		}
	}
	return false
}
