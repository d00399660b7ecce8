package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/colorvault/internal/catalog"
	"github.com/opencode-ai/colorvault/internal/config"
	"github.com/opencode-ai/colorvault/internal/consent"
	"github.com/opencode-ai/colorvault/internal/db"
	"github.com/opencode-ai/colorvault/internal/events"
	"github.com/opencode-ai/colorvault/internal/logging"
	"github.com/opencode-ai/colorvault/internal/models"
	"github.com/opencode-ai/colorvault/internal/palettes"
	"github.com/opencode-ai/colorvault/internal/session"
	"github.com/opencode-ai/colorvault/internal/theme"
)

// app holds the services one command invocation works with.
type app struct {
	cfg      *config.Config
	db       *db.DB
	kv       *db.KVRepository
	events   *db.EventRepository
	recorder *events.Recorder
	consent  *consent.Gate
	palettes *palettes.Repository
	ctrl     *session.Controller
	theme    *theme.Preference
	logger   zerolog.Logger
}

func openDatabase(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, &PreflightError{
			Message:  fmt.Sprintf("cannot open database: %v", err),
			Hint:     "Check database.path in the config file or COLORVAULT_DATABASE_PATH",
			NextStep: "colorvault --log-level debug list",
		}
	}
	if _, err := database.MigrateUp(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}

func openApp(ctx context.Context) (*app, error) {
	cfg := GetConfig()
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, database), nil
}

func newApp(cfg *config.Config, database *db.DB) *app {
	logger := logging.Component("cli")
	kv := db.NewKVRepository(database)
	eventRepo := db.NewEventRepository(database)
	recorder := events.NewRecorder(eventRepo, logging.Component("events"))
	gate := consent.New(kv)
	repo := palettes.NewRepository(
		catalog.New(cfg.Catalog.Source, cfg.Catalog.Timeout),
		kv,
		gate,
		palettes.WithRecorder(recorder),
	)

	return &app{
		cfg:      cfg,
		db:       database,
		kv:       kv,
		events:   eventRepo,
		recorder: recorder,
		consent:  gate,
		palettes: repo,
		ctrl:     session.New(repo, gate, session.WithRecorder(recorder)),
		theme:    theme.NewPreference(theme.NewStore(kv), cfg.UI.ThemeToggleEnabled, cfg.UI.DefaultTheme),
		logger:   logger,
	}
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to close database")
	}
}

// load publishes the startup collection into the controller.
func (a *app) load(ctx context.Context) []models.Palette {
	step := startProgress("Loading palettes")
	a.ctrl.Load(ctx)
	step.Done()
	return a.ctrl.Displayed()
}

// edit runs one edit session: enter, mutate, commit. A failed mutation
// abandons the draft without committing.
func (a *app) edit(ctx context.Context, mutate func(*session.Controller) error) (session.CommitResult, error) {
	if a.ctrl.IsLoading() {
		a.load(ctx)
	}
	if err := a.ctrl.EnterEdit(); err != nil {
		return session.CommitResult{}, err
	}
	if err := mutate(a.ctrl); err != nil {
		return session.CommitResult{}, err
	}
	result, err := a.ctrl.ExitEdit(ctx)
	if err != nil {
		return result, err
	}
	reportCommit(result)
	return result, nil
}

func reportCommit(result session.CommitResult) {
	switch {
	case result.Persisted:
		return
	case result.ConsentMissing:
		fmt.Fprintln(os.Stderr, colorize("Warning: storage consent not granted; this change was not saved.", colorYellow))
		fmt.Fprintln(os.Stderr, "Run 'colorvault consent grant' to keep your palettes.")
	default:
		fmt.Fprintln(os.Stderr, colorize("Warning: the collection could not be saved.", colorYellow))
	}
}

// findPalette resolves a palette by id, 1-based position or case-insensitive name.
func findPalette(collection []models.Palette, ref string) (models.Palette, int, error) {
	ref = strings.TrimSpace(ref)
	for i, p := range collection {
		if p.ID == ref {
			return p, i, nil
		}
	}
	if pos, err := strconv.Atoi(ref); err == nil && pos >= 1 && pos <= len(collection) {
		return collection[pos-1], pos - 1, nil
	}

	match := -1
	for i, p := range collection {
		if strings.EqualFold(p.Name, ref) {
			if match >= 0 {
				return models.Palette{}, -1, fmt.Errorf("palette name %q is ambiguous; use the id", ref)
			}
			match = i
		}
	}
	if match < 0 {
		return models.Palette{}, -1, fmt.Errorf("%w: %s", session.ErrPaletteNotFound, ref)
	}
	return collection[match], match, nil
}
