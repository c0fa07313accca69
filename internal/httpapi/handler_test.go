package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"zhastar/catalog-service/internal/assistant"
	"zhastar/catalog-service/internal/catalog"
	"zhastar/catalog-service/internal/httpapi"
	"zhastar/catalog-service/internal/notes"
	"zhastar/catalog-service/internal/store"
)

// ─── Fakes ────────────────────────────────────────────────────────────────────

type fakeCatalog struct {
	records  map[catalog.Category][]catalog.Record
	inserted []store.Draft
	deleted  []string
	listErr  error
}

func (f *fakeCatalog) List(_ context.Context, c catalog.Category) ([]catalog.Record, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records[c], nil
}

func (f *fakeCatalog) Insert(_ context.Context, c catalog.Category, d store.Draft) (string, error) {
	if err := d.Validate(c); err != nil {
		return "", err
	}
	f.inserted = append(f.inserted, d)
	return "new-id", nil
}

func (f *fakeCatalog) Delete(_ context.Context, _ catalog.Category, id string) error {
	if id == "missing" {
		return store.ErrNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeNotes struct {
	notes []notes.Note
	ctx   string
}

func (f *fakeNotes) List() []notes.Note { return f.notes }

func (f *fakeNotes) Add(_ context.Context, title, content string, category notes.Category) (notes.Note, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(content) == "" {
		return notes.Note{}, notes.ErrEmptyNote
	}
	n := notes.Note{ID: "n1", Title: title, Content: content, Category: category}
	f.notes = append(f.notes, n)
	return n, nil
}

func (f *fakeNotes) Update(_ context.Context, id string, upd notes.Update) (notes.Note, error) {
	for i, n := range f.notes {
		if n.ID == id {
			if upd.Title != nil {
				n.Title = *upd.Title
			}
			if upd.Content != nil {
				n.Content = *upd.Content
			}
			f.notes[i] = n
			return n, nil
		}
	}
	return notes.Note{}, notes.ErrNotFound
}

func (f *fakeNotes) Delete(_ context.Context, id string) error {
	for i, n := range f.notes {
		if n.ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return notes.ErrNotFound
}

func (f *fakeNotes) ContextText() string { return f.ctx }

type fakeRelay struct {
	reply       string
	err         error
	gotContext  string
	gotMessages []assistant.Message
}

func (f *fakeRelay) Complete(_ context.Context, transcript []assistant.Message, notesContext string) (string, error) {
	f.gotMessages = transcript
	f.gotContext = notesContext
	return f.reply, f.err
}

type fakeTranscript struct {
	entries []assistant.Entry
}

func (f *fakeTranscript) List() []assistant.Entry { return f.entries }

func (f *fakeTranscript) Append(_ context.Context, messages ...assistant.Message) error {
	for _, m := range messages {
		f.entries = append(f.entries, assistant.Entry{Role: m.Role, Content: m.Content})
	}
	return nil
}

func (f *fakeTranscript) Clear(_ context.Context) error {
	f.entries = nil
	return nil
}

func newTestHandler() (*httpapi.Handler, *fakeCatalog, *fakeNotes, *fakeRelay, *fakeTranscript) {
	subject := func(s string) *string { return &s }
	city := subject
	cat := &fakeCatalog{records: map[catalog.Category][]catalog.Record{
		catalog.CategoryOlympiads: {
			{ID: "1", Title: "Math", Subject: subject("math"), City: city("almaty")},
			{ID: "2", Title: "Physics", Subject: subject("physics"), City: city("astana")},
		},
	}}
	n := &fakeNotes{ctx: "GOALS: plan\nfinish school"}
	relay := &fakeRelay{reply: "answer"}
	transcript := &fakeTranscript{}
	return httpapi.NewHandler(cat, n, relay, transcript), cat, n, relay, transcript
}

func serve(h *httpapi.Handler, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// ─── Catalog ─────────────────────────────────────────────────────────────────

func TestListRecords(t *testing.T) {
	h, _, _, _, _ := newTestHandler()

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/catalog/olympiads", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []catalog.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestListRecords_QueryFilter(t *testing.T) {
	h, _, _, _, _ := newTestHandler()

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/catalog/olympiads?subject=math", nil))
	var got []catalog.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %+v, want only record 1", got)
	}
}

// A duplicated query parameter must behave like the value given once, not
// cancel the filter out.
func TestListRecords_DuplicatedParamStillFilters(t *testing.T) {
	h, _, _, _, _ := newTestHandler()

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/catalog/olympiads?city=almaty&city=almaty", nil))
	var got []catalog.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %+v, want only the almaty record", got)
	}
}

func TestListRecords_UnknownCategory(t *testing.T) {
	h, _, _, _, _ := newTestHandler()

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/catalog/internships", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestFacetsEndpoint(t *testing.T) {
	h, _, _, _, _ := newTestHandler()

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/catalog/volunteering/facets", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var facets []catalog.Facet
	if err := json.Unmarshal(rec.Body.Bytes(), &facets); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(facets) != 4 || facets[0].Key != "cause" {
		t.Fatalf("unexpected facets %+v", facets)
	}
}

func TestInsertRecord_Validation(t *testing.T) {
	h, cat, _, _, _ := newTestHandler()

	body := strings.NewReader(`{"title":"","description":"d","link":"l"}`)
	rec := serve(h, httptest.NewRequest(http.MethodPost, "/catalog/olympiads", body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(cat.inserted) != 0 {
		t.Fatal("invalid draft must not be stored")
	}
}

func TestInsertRecord_OK(t *testing.T) {
	h, cat, _, _, _ := newTestHandler()

	body := strings.NewReader(`{"title":"T","description":"d","link":"https://x","facets":{"subject":"math"}}`)
	rec := serve(h, httptest.NewRequest(http.MethodPost, "/catalog/olympiads", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if len(cat.inserted) != 1 {
		t.Fatalf("inserted = %d, want 1", len(cat.inserted))
	}
}

func TestDeleteRecord_NotFound(t *testing.T) {
	h, _, _, _, _ := newTestHandler()

	rec := serve(h, httptest.NewRequest(http.MethodDelete, "/catalog/olympiads/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

// ─── Notes ───────────────────────────────────────────────────────────────────

func TestNotesCRUD(t *testing.T) {
	h, _, n, _, _ := newTestHandler()

	body := strings.NewReader(`{"title":"Plan","content":"text","category":"goals"}`)
	rec := serve(h, httptest.NewRequest(http.MethodPost, "/notes", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d, want 200", rec.Code)
	}

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/notes", nil))
	var listed []notes.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed) != 1 || listed[0].Title != "Plan" {
		t.Fatalf("unexpected list %+v", listed)
	}

	body = strings.NewReader(`{"content":"updated"}`)
	rec = serve(h, httptest.NewRequest(http.MethodPatch, "/notes/n1", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d, want 200", rec.Code)
	}

	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/notes/n1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", rec.Code)
	}
	if len(n.notes) != 0 {
		t.Fatal("note not deleted")
	}
}

func TestAddNote_Empty(t *testing.T) {
	h, _, _, _, _ := newTestHandler()

	body := strings.NewReader(`{"title":"  ","content":""}`)
	rec := serve(h, httptest.NewRequest(http.MethodPost, "/notes", body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// ─── Assistant ───────────────────────────────────────────────────────────────

func TestChat_UsesServerNotesWhenContextEmpty(t *testing.T) {
	h, _, _, relay, transcript := newTestHandler()

	body := strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`)
	rec := serve(h, httptest.NewRequest(http.MethodPost, "/assistant/chat", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(relay.gotContext, "GOALS") {
		t.Fatalf("notes context not forwarded, got %q", relay.gotContext)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["message"] != "answer" {
		t.Fatalf("message = %q, want %q", resp["message"], "answer")
	}
	if len(transcript.entries) != 2 || transcript.entries[1].Role != "assistant" {
		t.Fatalf("transcript = %+v, want user + assistant", transcript.entries)
	}
}

func TestChat_ClientContextWins(t *testing.T) {
	h, _, _, relay, _ := newTestHandler()

	body := strings.NewReader(`{"messages":[{"role":"user","content":"hi"}],"notesContext":"custom"}`)
	serve(h, httptest.NewRequest(http.MethodPost, "/assistant/chat", body))
	if relay.gotContext != "custom" {
		t.Fatalf("context = %q, want %q", relay.gotContext, "custom")
	}
}

func TestChat_ProviderFailure(t *testing.T) {
	h, _, _, relay, transcript := newTestHandler()
	relay.err = errors.New("boom")

	body := strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`)
	rec := serve(h, httptest.NewRequest(http.MethodPost, "/assistant/chat", body))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Не удалось получить ответ") {
		t.Fatalf("body = %q, want apology", rec.Body.String())
	}
	last := transcript.entries[len(transcript.entries)-1]
	if last.Role != "assistant" || !strings.Contains(last.Content, "Не удалось") {
		t.Fatalf("apology not recorded, got %+v", last)
	}
}

func TestChat_EmptyMessages(t *testing.T) {
	h, _, _, _, _ := newTestHandler()

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/assistant/chat", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHistoryEndpoints(t *testing.T) {
	h, _, _, _, transcript := newTestHandler()
	transcript.entries = []assistant.Entry{{Role: "user", Content: "hi"}}

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/assistant/history", nil))
	var got []assistant.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}

	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/assistant/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d, want 200", rec.Code)
	}
	if len(transcript.entries) != 0 {
		t.Fatal("history not cleared")
	}
}
