package catalog

// Selection tracks the option values the user has picked per facet key.
// An empty value list is equivalent to an absent key: the facet is inactive
// and is not consulted during filtering.
type Selection struct {
	values map[string][]string
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{values: make(map[string][]string)}
}

// Toggle adds value under key, or removes it when already selected.
// Toggling the same value twice restores the previous state.
func (s *Selection) Toggle(key, value string) {
	cur := s.values[key]
	for i, v := range cur {
		if v == value {
			s.values[key] = append(cur[:i:i], cur[i+1:]...)
			return
		}
	}
	s.values[key] = append(cur, value)
}

// Select adds value under key; no-op when already selected. Unlike Toggle it
// is idempotent, for callers that receive values as a set rather than as
// individual clicks.
func (s *Selection) Select(key, value string) {
	cur := s.values[key]
	for _, v := range cur {
		if v == value {
			return
		}
	}
	s.values[key] = append(cur, value)
}

// Clear removes value from key's selected values; no-op when absent.
func (s *Selection) Clear(key, value string) {
	cur := s.values[key]
	for i, v := range cur {
		if v == value {
			s.values[key] = append(cur[:i:i], cur[i+1:]...)
			return
		}
	}
}

// Reset drops every selected value.
func (s *Selection) Reset() {
	s.values = make(map[string][]string)
}

// Values returns the selected values for key.
func (s *Selection) Values(key string) []string {
	return s.values[key]
}

// ActiveCount is the total number of selected values across all keys. It
// drives the filter badge in the client, not the filtering logic itself.
func (s *Selection) ActiveCount() int {
	n := 0
	for _, vs := range s.values {
		n += len(vs)
	}
	return n
}
