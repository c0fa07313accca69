// Package notes keeps the user's freeform workspace notes. The whole list
// lives in memory and is written through an injected blob store on every
// mutation, so the logic tests run without Redis.
package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// storageKey is the single blob the note list is persisted under.
const storageKey = "portfolio-notes"

// defaultTitle is given to notes saved without one.
const defaultTitle = "Без названия"

// Category tags a note by purpose.
type Category string

const (
	CategoryGoals     Category = "goals"
	CategoryPortfolio Category = "portfolio"
	CategoryIdeas     Category = "ideas"
	CategoryOther     Category = "other"
)

// ParseCategory converts a raw string to a note Category; empty input
// defaults to goals, anything else unknown is an error.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return CategoryGoals, nil
	}
	c := Category(s)
	switch c {
	case CategoryGoals, CategoryPortfolio, CategoryIdeas, CategoryOther:
		return c, nil
	}
	return "", fmt.Errorf("unknown note category %q", s)
}

// Note is one workspace note. JSON names match the persisted blob shape.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ErrNotFound is returned when a note id does not exist.
var ErrNotFound = errors.New("note not found")

// ErrEmptyNote is returned when a new note has neither title nor content.
var ErrEmptyNote = errors.New("note needs a title or content")

// Blobs is the key-value persistence notes are saved through. Get returns
// (nil, nil) for an absent key.
type Blobs interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}

// Store owns the note list, newest first. A mutation that fails to persist
// leaves the in-memory list unchanged.
type Store struct {
	mu    sync.Mutex
	blobs Blobs
	notes []Note

	now   func() time.Time
	newID func() string
}

// NewStore returns a Store persisting through blobs; call Load before use.
func NewStore(blobs Blobs) *Store {
	return &Store{
		blobs: blobs,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Load reads the persisted list. A missing blob is a first run and leaves
// the list empty.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.blobs.Get(ctx, storageKey)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return fmt.Errorf("decode notes: %w", err)
	}

	s.mu.Lock()
	s.notes = notes
	s.mu.Unlock()
	return nil
}

// List returns a copy of the notes, newest first.
func (s *Store) List() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Add creates a note at the head of the list. A note without a title gets
// the default one; a note with neither title nor content is rejected.
func (s *Store) Add(ctx context.Context, title, content string, category Category) (Note, error) {
	title = strings.TrimSpace(title)
	if title == "" && strings.TrimSpace(content) == "" {
		return Note{}, ErrEmptyNote
	}
	if title == "" {
		title = defaultTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	note := Note{
		ID:        s.newID(),
		Title:     title,
		Content:   content,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	prev := s.notes
	s.notes = append([]Note{note}, s.notes...)

	if err := s.save(ctx); err != nil {
		s.notes = prev
		return Note{}, err
	}
	return note, nil
}

// Update is a partial note edit: nil fields are left unchanged.
type Update struct {
	Title    *string
	Content  *string
	Category *Category
}

// Update applies upd to the note with the given id and bumps UpdatedAt.
func (s *Store) Update(ctx context.Context, id string, upd Update) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID != id {
			continue
		}
		prev := s.notes[i]
		if upd.Title != nil {
			s.notes[i].Title = *upd.Title
		}
		if upd.Content != nil {
			s.notes[i].Content = *upd.Content
		}
		if upd.Category != nil {
			s.notes[i].Category = *upd.Category
		}
		s.notes[i].UpdatedAt = s.now().UTC()

		if err := s.save(ctx); err != nil {
			s.notes[i] = prev
			return Note{}, err
		}
		return s.notes[i], nil
	}
	return Note{}, ErrNotFound
}

// Delete removes the note with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID != id {
			continue
		}
		prev := s.notes
		s.notes = append(s.notes[:i:i], s.notes[i+1:]...)
		if err := s.save(ctx); err != nil {
			s.notes = prev
			return err
		}
		return nil
	}
	return ErrNotFound
}

// ContextText renders the notes for the assistant's system prompt, one
// "CATEGORY: title\ncontent" block per note.
func (s *Store) ContextText() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks := make([]string, 0, len(s.notes))
	for _, n := range s.notes {
		blocks = append(blocks, fmt.Sprintf("%s: %s\n%s", strings.ToUpper(string(n.Category)), n.Title, n.Content))
	}
	return strings.Join(blocks, "\n\n")
}

// save persists the current list; callers hold the lock.
func (s *Store) save(ctx context.Context) error {
	data, err := json.Marshal(s.notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := s.blobs.Set(ctx, storageKey, data); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	return nil
}
