package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/justestif/go-mood-journal/internal/config"
	"github.com/justestif/go-mood-journal/internal/db"
	"github.com/justestif/go-mood-journal/internal/journal"
	"github.com/justestif/go-mood-journal/internal/mood"
	"github.com/justestif/go-mood-journal/internal/playlist"
	"github.com/justestif/go-mood-journal/internal/spotify"
	"github.com/justestif/go-mood-journal/internal/web"
	webfs "github.com/justestif/go-mood-journal/web"
)

// appContext is passed to every command's Run method.
type appContext struct {
	configPath string
	logger     *log.Logger
}

// loadConfig reads the config; withSpotify also requires credentials.
func (a *appContext) loadConfig(withSpotify bool) (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if withSpotify {
		if err := cfg.RequireSpotify(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// openStore returns the PostgreSQL store when a database URL is configured,
// the CSV file otherwise. The returned func releases it.
func (a *appContext) openStore(ctx context.Context, cfg *config.Config) (journal.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		a.logger.Debug("using CSV journal", "path", cfg.JournalPath)
		return journal.NewCSVStore(cfg.JournalPath), func() {}, nil
	}

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("migrating database: %w", err)
	}
	a.logger.Debug("using PostgreSQL journal")
	return database.Entries(), database.Close, nil
}

// newService wires the classifier, store and playlist router together.
func (a *appContext) newService(ctx context.Context, cfg *config.Config, store journal.Store) (*journal.Service, error) {
	client, err := spotify.NewWithCredentials(ctx, spotify.Credentials{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		TokenTimeout: cfg.SearchTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating spotify client: %w", err)
	}

	searcher := playlist.NewCachedSearcher(client, cfg.CacheTTL())
	router := playlist.New(searcher, append(cfg.PlaylistOptions(), playlist.WithLogger(a.logger))...)
	classifier := mood.New(cfg.MoodOptions()...)

	return journal.NewService(classifier, store, router, journal.WithLogger(a.logger)), nil
}

type serveCmd struct {
	Addr string `help:"Listen address (overrides config)." placeholder:"HOST:PORT"`
}

func (c *serveCmd) Run(app *appContext) error {
	ctx := context.Background()

	cfg, err := app.loadConfig(true)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}

	store, closeStore, err := app.openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	svc, err := app.newService(ctx, cfg, store)
	if err != nil {
		return err
	}

	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}
	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:        cfg.Addr,
		Journal:     svc,
		TemplatesFS: templates,
		StaticFS:    static,
		Logger:      app.logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}

const emptyEntryWarning = "Please write something before analyzing!"

type writeCmd struct {
	Text []string `arg:"" optional:"" help:"Entry text. Read from stdin when omitted."`

	out io.Writer
}

func (c *writeCmd) stdout() io.Writer {
	if c.out != nil {
		return c.out
	}
	return os.Stdout
}

func (c *writeCmd) Run(app *appContext) error {
	ctx := context.Background()

	text, err := c.entryText(os.Stdin)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(c.stdout(), emptyEntryWarning)
		return nil
	}

	cfg, err := app.loadConfig(true)
	if err != nil {
		return err
	}

	store, closeStore, err := app.openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	svc, err := app.newService(ctx, cfg, store)
	if err != nil {
		return err
	}

	result, err := svc.Analyze(ctx, text)
	if errors.Is(err, journal.ErrEmptyEntry) {
		fmt.Fprintln(c.stdout(), emptyEntryWarning)
		return nil
	}
	if result != nil {
		printResult(c.stdout(), result)
	}
	return err
}

func (c *writeCmd) entryText(stdin io.Reader) (string, error) {
	if len(c.Text) > 0 {
		return strings.Join(c.Text, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading entry from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func printResult(w io.Writer, result *journal.Result) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Mood:    "), moodStyle(result.Entry.Mood).Render(result.Entry.Mood.Display()))
	if result.Playlist.Name == "" {
		return
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Playlist:"), result.Playlist.Name)
	if result.Playlist.Found() {
		fmt.Fprintf(w, "          %s\n", linkStyle.Render(result.Playlist.URL))
	}
}

type historyCmd struct {
	Limit int `help:"Maximum number of entries to show (0 for all)." default:"20"`
}

func (c *historyCmd) Run(app *appContext) error {
	ctx := context.Background()

	cfg, err := app.loadConfig(false)
	if err != nil {
		return err
	}

	store, closeStore, err := app.openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	entries, err := store.List(ctx, c.Limit)
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No entries yet.")
		return nil
	}
	printEntries(os.Stdout, entries)
	return nil
}

func printEntries(w io.Writer, entries []journal.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s  %s\n",
			labelStyle.Render(e.Timestamp.Format(journal.TimestampLayout)),
			moodStyle(e.Mood).Width(12).Render(e.Mood.Display()),
			e.Text)
	}
}
