package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/justestif/go-mood-journal/internal/journal"
)

const (
	emptyEntryWarning = "Please write something before analyzing!"
	storageFailure    = "Your entry could not be saved. Check the journal file and try again."
	historyLimit      = 50
	maxHistoryLimit   = 500
)

// Journal is the service behind the handlers.
type Journal interface {
	Analyze(ctx context.Context, text string) (*journal.Result, error)
	History(ctx context.Context, limit int) ([]journal.Entry, error)
}

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	journal   Journal
	templates *Templates
	logger    *log.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(j Journal, templates *Templates, logger *log.Logger) *Handlers {
	return &Handlers{
		journal:   j,
		templates: templates,
		logger:    logger,
	}
}

// Home renders the entry form (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "home", HomePageData{
		PageData: PageData{Title: "Mood Journal", CurrentPath: r.URL.Path},
	})
}

// CreateEntry analyzes and saves the submitted entry (POST /entries).
func (h *Handlers) CreateEntry(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	text := r.PostFormValue("entry")

	data := HomePageData{
		PageData: PageData{Title: "Mood Journal", CurrentPath: r.URL.Path},
		Text:     text,
	}

	result, err := h.journal.Analyze(r.Context(), text)
	switch {
	case errors.Is(err, journal.ErrEmptyEntry):
		data.Flash = &FlashMessage{Type: "warning", Message: emptyEntryWarning}
		h.render(w, http.StatusUnprocessableEntity, "home", data)
		return
	case err != nil:
		h.logger.Error("analyzing entry", "err", err)
		data.Flash = &FlashMessage{Type: "error", Message: storageFailure}
		if result != nil {
			data.Result = newResultData(result)
		}
		h.render(w, http.StatusInternalServerError, "home", data)
		return
	}

	data.Text = ""
	data.Result = newResultData(result)
	data.Flash = &FlashMessage{Type: "success", Message: "Your mood today: " + result.Entry.Mood.Display()}
	h.render(w, http.StatusOK, "home", data)
}

// History lists saved entries (GET /entries).
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journal.History(r.Context(), parseLimit(r))
	if err != nil {
		h.logger.Error("listing entries", "err", err)
		http.Error(w, "Failed to load entries", http.StatusInternalServerError)
		return
	}

	data := HistoryPageData{
		PageData: PageData{Title: "Past entries", CurrentPath: r.URL.Path},
		Entries:  make([]EntryData, len(entries)),
	}
	for i, e := range entries {
		data.Entries[i] = newEntryData(e)
	}
	h.render(w, http.StatusOK, "history", data)
}

// apiEntryRequest is the body of POST /api/entries.
type apiEntryRequest struct {
	Text string `json:"text"`
}

// apiEntry is an entry in API responses.
type apiEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
	Mood      string    `json:"mood"`
}

// apiPlaylist is a playlist recommendation in API responses.
type apiPlaylist struct {
	Name          string `json:"name"`
	URL           string `json:"url"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	Found         bool   `json:"found"`
}

type apiEntryResponse struct {
	Entry    apiEntry     `json:"entry"`
	Playlist *apiPlaylist `json:"playlist,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// APICreateEntry is the JSON form of CreateEntry (POST /api/entries).
func (h *Handlers) APICreateEntry(w http.ResponseWriter, r *http.Request) {
	var req apiEntryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	result, err := h.journal.Analyze(r.Context(), req.Text)
	switch {
	case errors.Is(err, journal.ErrEmptyEntry):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	case err != nil:
		h.logger.Error("analyzing entry", "err", err)
		resp := apiEntryResponse{Error: "entry not saved"}
		if result != nil {
			resp.Entry = toAPIEntry(result.Entry)
		}
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	writeJSON(w, http.StatusCreated, apiEntryResponse{
		Entry: toAPIEntry(result.Entry),
		Playlist: &apiPlaylist{
			Name:          result.Playlist.Name,
			URL:           result.Playlist.URL,
			CoverImageURL: result.Playlist.CoverImageURL,
			Found:         result.Playlist.Found(),
		},
	})
}

// APIHistory is the JSON form of History (GET /api/entries).
func (h *Handlers) APIHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journal.History(r.Context(), parseLimit(r))
	if err != nil {
		h.logger.Error("listing entries", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load entries"})
		return
	}

	out := make([]apiEntry, len(entries))
	for i, e := range entries {
		out[i] = toAPIEntry(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) render(w http.ResponseWriter, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.Render(w, page, data); err != nil {
		h.logger.Error("rendering template", "page", page, "err", err)
	}
}

func toAPIEntry(e journal.Entry) apiEntry {
	return apiEntry{Timestamp: e.Timestamp, Text: e.Text, Mood: string(e.Mood)}
}

// parseLimit reads ?limit=N, falling back to historyLimit.
func parseLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return historyLimit
	}
	return min(limit, maxHistoryLimit)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
