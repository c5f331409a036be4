package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/justestif/go-mood-journal/internal/journal"
	"github.com/justestif/go-mood-journal/internal/mood"
)

// Templates manages HTML template rendering.
type Templates struct {
	templates map[string]*template.Template
	funcs     template.FuncMap
}

// NewTemplates creates a new template manager by loading templates from the given filesystem.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{
		templates: make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page template with the given data.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}

	// Execute the "base" template which includes the page content
	return tmpl.ExecuteTemplate(w, "base", data)
}

// load parses all page templates, each together with the layouts and partials.
func (t *Templates) load(templatesFS fs.FS) error {
	layouts, err := fs.Glob(templatesFS, "layouts/*.html")
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}

	partials, err := fs.Glob(templatesFS, "partials/*.html")
	if err != nil {
		return fmt.Errorf("finding partials: %w", err)
	}

	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page templates found")
	}

	commonFiles := append(layouts, partials...)

	for _, page := range pages {
		name := filepath.Base(page)
		name = name[:len(name)-len(".html")]

		files := append([]string{page}, commonFiles...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		t.templates[name] = tmpl
	}

	return nil
}

// defaultFuncs returns the default template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// moodColor returns the background colour for a mood label.
		"moodColor": func(l mood.Label) template.CSS {
			return template.CSS(l.Color())
		},

		// formatTimestamp formats a time the way entries are stored.
		"formatTimestamp": func(t time.Time) string {
			return t.Format(journal.TimestampLayout)
		},
	}
}

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	Flash       *FlashMessage
	CurrentPath string
}

// FlashMessage represents a temporary notification message.
type FlashMessage struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// HomePageData contains data for the entry form.
type HomePageData struct {
	PageData
	Text   string      // Text to refill the form with
	Result *ResultData // Outcome of the last submission, if any
}

// ResultData describes an analyzed entry.
type ResultData struct {
	Mood     mood.Label
	Playlist PlaylistData
}

// PlaylistData describes a recommended playlist.
type PlaylistData struct {
	Name          string
	URL           string
	CoverImageURL string
	Found         bool
}

// HistoryPageData contains data for the history page.
type HistoryPageData struct {
	PageData
	Entries []EntryData
}

// EntryData contains data for a single entry in templates.
type EntryData struct {
	Timestamp time.Time
	Text      string
	Mood      mood.Label
}

func newResultData(r *journal.Result) *ResultData {
	return &ResultData{
		Mood: r.Entry.Mood,
		Playlist: PlaylistData{
			Name:          r.Playlist.Name,
			URL:           r.Playlist.URL,
			CoverImageURL: r.Playlist.CoverImageURL,
			Found:         r.Playlist.Found(),
		},
	}
}

func newEntryData(e journal.Entry) EntryData {
	return EntryData{Timestamp: e.Timestamp, Text: e.Text, Mood: e.Mood}
}
