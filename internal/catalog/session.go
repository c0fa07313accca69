package catalog

import (
	"context"
	"sync"
)

// Lister is the read contract of the record store consumed by Session.
type Lister interface {
	List(ctx context.Context, c Category) ([]Record, error)
}

// Session owns the active category, the filter selection, and the latest
// record snapshot for one client view. Snapshots are immutable once
// delivered: a new fetch replaces the slice, it never mutates it.
//
// Fetches run asynchronously. A completion is keyed by the category it was
// issued for and applied only while that category is still active, so a slow
// response for an abandoned category can never overwrite the current view.
type Session struct {
	mu        sync.Mutex
	lister    Lister
	category  Category
	selection *Selection
	records   []Record
	err       error
	pending   bool
}

// NewSession starts on the default category with nothing loaded; call
// SwitchTo or Refresh to fetch the first snapshot.
func NewSession(lister Lister) *Session {
	return &Session{
		lister:    lister,
		category:  Categories[0],
		selection: NewSelection(),
	}
}

// SwitchTo activates c, unconditionally resets the selection, drops the old
// snapshot, and starts a fetch. The reset happens before the fetch so that a
// facet key from the previous category's schema is never evaluated against
// the new category's records.
func (s *Session) SwitchTo(ctx context.Context, c Category) {
	s.mu.Lock()
	s.category = c
	s.selection.Reset()
	s.records = nil
	s.err = nil
	s.pending = true
	s.mu.Unlock()

	go s.fetch(ctx, c)
}

// Refresh refetches the active category without touching the selection, used
// as the retry affordance after a fetch error.
func (s *Session) Refresh(ctx context.Context) {
	s.mu.Lock()
	c := s.category
	s.pending = true
	s.mu.Unlock()

	go s.fetch(ctx, c)
}

func (s *Session) fetch(ctx context.Context, c Category) {
	records, err := s.lister.List(ctx, c)
	s.deliver(c, records, err)
}

// deliver applies a fetch result. Last write wins by category identity, not
// by arrival order: results for a category the session has moved away from
// are discarded.
func (s *Session) deliver(c Category, records []Record, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c != s.category {
		return
	}
	s.records = records
	s.err = err
	s.pending = false
}

// Category returns the active category.
func (s *Session) Category() Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// Pending reports whether a fetch for the active category is still in flight.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Toggle flips an option value in the facet keyed by key.
func (s *Session) Toggle(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Toggle(key, value)
}

// ClearFilter removes one selected value.
func (s *Session) ClearFilter(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear(key, value)
}

// ClearAllFilters resets the selection to empty.
func (s *Session) ClearAllFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Reset()
}

// ActiveFilterCount is the total number of selected values.
func (s *Session) ActiveFilterCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.ActiveCount()
}

// Visible returns the current snapshot narrowed by the selection. A fetch
// error is returned as-is so the caller can render the retry affordance; the
// session itself stays usable.
func (s *Session) Visible() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return Apply(s.records, s.selection, FacetsFor(s.category)), nil
}
