package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// historyKey is the blob the chat transcript is persisted under.
const historyKey = "ai-chat-history"

// Entry is one persisted transcript turn.
type Entry struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Blobs is the persistence contract shared with the notes store. Get returns
// (nil, nil) for an absent key.
type Blobs interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// History keeps the assistant transcript, oldest first, written through on
// every append.
type History struct {
	mu      sync.Mutex
	blobs   Blobs
	entries []Entry
	now     func() time.Time
}

// NewHistory returns a History persisting through blobs; call Load before use.
func NewHistory(blobs Blobs) *History {
	return &History{blobs: blobs, now: time.Now}
}

// Load reads the persisted transcript; a missing blob means no history yet.
func (h *History) Load(ctx context.Context) error {
	data, err := h.blobs.Get(ctx, historyKey)
	if err != nil {
		return fmt.Errorf("load chat history: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("decode chat history: %w", err)
	}

	h.mu.Lock()
	h.entries = entries
	h.mu.Unlock()
	return nil
}

// List returns a copy of the transcript, oldest first.
func (h *History) List() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Append stamps each message and persists the grown transcript.
func (h *History) Append(ctx context.Context, messages ...Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	at := h.now().UTC()
	for _, m := range messages {
		h.entries = append(h.entries, Entry{Role: m.Role, Content: m.Content, Timestamp: at})
	}

	data, err := json.Marshal(h.entries)
	if err != nil {
		return fmt.Errorf("encode chat history: %w", err)
	}
	if err := h.blobs.Set(ctx, historyKey, data); err != nil {
		return fmt.Errorf("save chat history: %w", err)
	}
	return nil
}

// Clear drops the transcript in memory and in persistence.
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil
	if err := h.blobs.Delete(ctx, historyKey); err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	return nil
}
