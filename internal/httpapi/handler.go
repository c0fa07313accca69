// Package httpapi implements the HTTP handlers for the catalog service.
//
// Routes:
//
//	GET    /catalog/{category}          → list records, optionally filtered
//	POST   /catalog/{category}          → admin insert
//	DELETE /catalog/{category}/{id}     → admin delete
//	GET    /catalog/{category}/facets   → the category's filter schema
//	GET    /notes                       → list workspace notes
//	POST   /notes                       → create a note
//	PATCH  /notes/{id}                  → edit a note
//	DELETE /notes/{id}                  → delete a note
//	POST   /assistant/chat              → relay a chat turn to the advisor
//	GET    /assistant/history           → the saved transcript
//	DELETE /assistant/history           → clear the transcript
//
// List filtering accepts repeated query parameters named after the facet keys
// of the category, e.g. /catalog/olympiads?subject=math&subject=physics&city=almaty,
// with the same AND-across-facets / OR-within-facet semantics the client
// applies locally.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"zhastar/catalog-service/internal/assistant"
	"zhastar/catalog-service/internal/catalog"
	"zhastar/catalog-service/internal/notes"
	"zhastar/catalog-service/internal/store"
)

// apologyMessage replaces the assistant reply when the provider fails.
const apologyMessage = "Не удалось получить ответ от ИИ. Проверьте настройки API ключа."

// Catalog is the record-store surface the handler consumes.
type Catalog interface {
	List(ctx context.Context, c catalog.Category) ([]catalog.Record, error)
	Insert(ctx context.Context, c catalog.Category, d store.Draft) (string, error)
	Delete(ctx context.Context, c catalog.Category, id string) error
}

// Notes is the note-store surface the handler consumes.
type Notes interface {
	List() []notes.Note
	Add(ctx context.Context, title, content string, category notes.Category) (notes.Note, error)
	Update(ctx context.Context, id string, upd notes.Update) (notes.Note, error)
	Delete(ctx context.Context, id string) error
	ContextText() string
}

// Completer relays one chat turn to the language-model provider.
type Completer interface {
	Complete(ctx context.Context, transcript []assistant.Message, notesContext string) (string, error)
}

// Transcript persists the assistant conversation.
type Transcript interface {
	List() []assistant.Entry
	Append(ctx context.Context, messages ...assistant.Message) error
	Clear(ctx context.Context) error
}

// Handler holds shared dependencies.
type Handler struct {
	catalog Catalog
	notes   Notes
	relay   Completer
	history Transcript
}

// NewHandler returns a configured Handler.
func NewHandler(cat Catalog, n Notes, relay Completer, history Transcript) *Handler {
	return &Handler{catalog: cat, notes: n, relay: relay, history: history}
}

// RegisterRoutes mounts all catalog-service routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/catalog/", h.handleCatalog)
	mux.HandleFunc("/notes", h.handleNotes)
	mux.HandleFunc("/notes/", h.handleNoteByID)
	mux.HandleFunc("/assistant/chat", h.handleChat)
	mux.HandleFunc("/assistant/history", h.handleHistory)
}

// ─── Catalog routes ──────────────────────────────────────────────────────────

// handleCatalog dispatches /catalog/{category}[/facets|/{id}].
func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 2 || len(parts) > 3 {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}

	c, err := catalog.ParseCategory(parts[1])
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}

	switch {
	case len(parts) == 2 && r.Method == http.MethodGet:
		h.listRecords(w, r, c)
	case len(parts) == 2 && r.Method == http.MethodPost:
		h.insertRecord(w, r, c)
	case len(parts) == 3 && parts[2] == "facets" && r.Method == http.MethodGet:
		jsonOK(w, catalog.FacetsFor(c))
	case len(parts) == 3 && r.Method == http.MethodDelete:
		h.deleteRecord(w, r, c, parts[2])
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request, c catalog.Category) {
	records, err := h.catalog.List(r.Context(), c)
	if err != nil {
		log.Printf("[catalog] list %s error: %v", c, err)
		jsonError(w, "failed to load records", http.StatusInternalServerError)
		return
	}

	facets := catalog.FacetsFor(c)
	sel := catalog.NewSelection()
	query := r.URL.Query()
	for _, f := range facets {
		for _, v := range query[f.Key] {
			sel.Select(f.Key, v)
		}
	}

	jsonOK(w, catalog.Apply(records, sel, facets))
}

func (h *Handler) insertRecord(w http.ResponseWriter, r *http.Request, c catalog.Category) {
	var draft store.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	id, err := h.catalog.Insert(r.Context(), c, draft)
	if err != nil {
		var ve *store.ValidationError
		if errors.As(err, &ve) {
			jsonError(w, ve.Msg, http.StatusBadRequest)
			return
		}
		log.Printf("[catalog] insert %s error: %v", c, err)
		jsonError(w, "failed to save record", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]string{"id": id})
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request, c catalog.Category, id string) {
	if err := h.catalog.Delete(r.Context(), c, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, "record not found", http.StatusNotFound)
			return
		}
		log.Printf("[catalog] delete %s/%s error: %v", c, id, err)
		jsonError(w, "failed to delete record", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]string{"status": "deleted"})
}

// ─── Notes routes ────────────────────────────────────────────────────────────

func (h *Handler) handleNotes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		jsonOK(w, h.notes.List())
	case http.MethodPost:
		h.addNote(w, r)
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) addNote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	category, err := notes.ParseCategory(body.Category)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	note, err := h.notes.Add(r.Context(), body.Title, body.Content, category)
	if err != nil {
		if errors.Is(err, notes.ErrEmptyNote) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("[notes] add error: %v", err)
		jsonError(w, "failed to save note", http.StatusInternalServerError)
		return
	}

	jsonOK(w, note)
}

// handleNoteByID handles PATCH/DELETE /notes/{id}.
func (h *Handler) handleNoteByID(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}
	id := parts[1]

	switch r.Method {
	case http.MethodPatch:
		h.updateNote(w, r, id)
	case http.MethodDelete:
		h.deleteNote(w, r, id)
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		Category *string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	upd := notes.Update{Title: body.Title, Content: body.Content}
	if body.Category != nil {
		category, err := notes.ParseCategory(*body.Category)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		upd.Category = &category
	}

	note, err := h.notes.Update(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, notes.ErrNotFound) {
			jsonError(w, "note not found", http.StatusNotFound)
			return
		}
		log.Printf("[notes] update %s error: %v", id, err)
		jsonError(w, "failed to save note", http.StatusInternalServerError)
		return
	}

	jsonOK(w, note)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.notes.Delete(r.Context(), id); err != nil {
		if errors.Is(err, notes.ErrNotFound) {
			jsonError(w, "note not found", http.StatusNotFound)
			return
		}
		log.Printf("[notes] delete %s error: %v", id, err)
		jsonError(w, "failed to delete note", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]string{"status": "deleted"})
}

// ─── Assistant routes ────────────────────────────────────────────────────────

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Messages     []assistant.Message `json:"messages"`
		NotesContext string              `json:"notesContext"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Messages) == 0 {
		jsonError(w, "body must contain messages", http.StatusBadRequest)
		return
	}

	notesContext := body.NotesContext
	if notesContext == "" {
		notesContext = h.notes.ContextText()
	}

	reply, err := h.relay.Complete(r.Context(), body.Messages, notesContext)
	if err != nil {
		log.Printf("[assistant] completion error: %v", err)
		// The apology lands in the transcript as an assistant turn; the
		// client shows it instead of a reply. No automatic retry.
		h.appendTranscript(r.Context(), body.Messages, apologyMessage)
		jsonError(w, apologyMessage, http.StatusBadGateway)
		return
	}

	h.appendTranscript(r.Context(), body.Messages, reply)
	jsonOK(w, map[string]string{"message": reply})
}

// appendTranscript saves the newest user turn and the assistant reply.
// Persistence failures are logged and swallowed: the reply was already
// produced and must reach the client.
func (h *Handler) appendTranscript(ctx context.Context, messages []assistant.Message, reply string) {
	turns := make([]assistant.Message, 0, 2)
	if last := messages[len(messages)-1]; last.Role == "user" {
		turns = append(turns, last)
	}
	turns = append(turns, assistant.Message{Role: "assistant", Content: reply})

	if err := h.history.Append(ctx, turns...); err != nil {
		log.Printf("[assistant] transcript append failed: %v", err)
	}
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		jsonOK(w, h.history.List())
	case http.MethodDelete:
		if err := h.history.Clear(r.Context()); err != nil {
			log.Printf("[assistant] history clear failed: %v", err)
			jsonError(w, "failed to clear history", http.StatusInternalServerError)
			return
		}
		jsonOK(w, map[string]string{"status": "cleared"})
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
