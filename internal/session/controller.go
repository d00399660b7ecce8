// Package session owns the gallery's view/edit state machine.
//
// A Controller holds the active collection and, while editing, a draft copy.
// Mutations apply only to the draft; leaving edit mode commits the draft
// wholesale and persists it when consent allows. A Controller is meant to be
// driven by one caller at a time and is not safe for concurrent use.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/colorvault/internal/events"
	"github.com/opencode-ai/colorvault/internal/logging"
	"github.com/opencode-ai/colorvault/internal/models"
	"github.com/opencode-ai/colorvault/internal/reorder"
)

// Controller errors. Mode errors mean the caller routed an operation that the
// current state does not allow.
var (
	ErrNotEditing       = errors.New("not in edit mode")
	ErrAlreadyEditing   = errors.New("already in edit mode")
	ErrNotLoaded        = errors.New("palettes not loaded")
	ErrPaletteNotFound  = errors.New("palette not found")
	ErrDuplicatePalette = errors.New("palette id already in collection")
	ErrNotPermutation   = errors.New("new order is not a permutation of the draft")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrNoPendingDelete  = errors.New("no delete pending")
)

// Repository supplies and stores the collection.
type Repository interface {
	Load(ctx context.Context) []models.Palette
	Persist(ctx context.Context, collection []models.Palette) bool
}

// ConsentGate reports and grants storage consent.
type ConsentGate interface {
	HasConsent(ctx context.Context) bool
	Grant(ctx context.Context) error
}

// CommitResult reports what happened to a committed draft. The in-memory
// commit always happens; Persisted is false when the change lives only for
// this session.
type CommitResult struct {
	Persisted      bool
	ConsentMissing bool
}

// SessionOnly reports whether the committed collection will be lost on restart.
func (r CommitResult) SessionOnly() bool {
	return !r.Persisted
}

// Controller is the palette session state machine.
type Controller struct {
	repo     Repository
	consent  ConsentGate
	recorder *events.Recorder
	logger   zerolog.Logger

	loading bool
	mode    models.Mode
	active  []models.Palette
	draft   []models.Palette

	pendingDelete *models.Palette
	// journal holds draft events until commit; a draft touches no storage.
	journal []func(context.Context, events.Repository) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithRecorder records committed edits as activity events.
func WithRecorder(recorder *events.Recorder) Option {
	return func(c *Controller) {
		c.recorder = recorder
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates a Controller in view mode. Call Load before reading Displayed.
func New(repo Repository, consent ConsentGate, opts ...Option) *Controller {
	c := &Controller{
		repo:    repo,
		consent: consent,
		logger:  logging.Component("session"),
		loading: true,
		mode:    models.ModeView,
		active:  []models.Palette{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load runs the repository startup sequence and publishes the result as the
// active collection.
func (c *Controller) Load(ctx context.Context) {
	c.loading = true
	c.Publish(c.repo.Load(ctx))
}

// Publish installs an already loaded collection as the active one and ends
// the loading state. Callers that load off the UI goroutine use it to hand
// the result back.
func (c *Controller) Publish(collection []models.Palette) {
	if collection == nil {
		collection = []models.Palette{}
	}
	c.active = models.ClonePalettes(collection)
	c.loading = false
	c.logger.Debug().Int("count", len(collection)).Msg("palettes loaded")
}

// IsLoading reports whether Load has not completed yet.
func (c *Controller) IsLoading() bool {
	return c.loading
}

// Mode returns the current mode.
func (c *Controller) Mode() models.Mode {
	return c.mode
}

// Editing reports whether the controller is in edit mode.
func (c *Controller) Editing() bool {
	return c.mode == models.ModeEdit
}

// Displayed returns the collection consumers should show: the draft while
// editing, the active collection otherwise. The slice is always a copy.
func (c *Controller) Displayed() []models.Palette {
	return models.ClonePalettes(c.displayed())
}

func (c *Controller) displayed() []models.Palette {
	if c.mode == models.ModeEdit {
		return c.draft
	}
	return c.active
}

// Lookup finds a displayed palette by id.
func (c *Controller) Lookup(id string) (models.Palette, bool) {
	idx := indexOf(c.displayed(), id)
	if idx < 0 {
		return models.Palette{}, false
	}
	return c.displayed()[idx].Clone(), true
}

// EnterEdit clones the active collection into a fresh draft.
func (c *Controller) EnterEdit() error {
	if c.loading {
		return ErrNotLoaded
	}
	if c.mode == models.ModeEdit {
		return ErrAlreadyEditing
	}
	c.draft = models.ClonePalettes(c.active)
	if c.draft == nil {
		c.draft = []models.Palette{}
	}
	c.pendingDelete = nil
	c.journal = nil
	c.mode = models.ModeEdit
	return nil
}

// ExitEdit commits the draft as the new active collection and persists it
// when consent has been given. The transition happens whatever the outcome.
func (c *Controller) ExitEdit(ctx context.Context) (CommitResult, error) {
	if c.mode != models.ModeEdit {
		return CommitResult{}, ErrNotEditing
	}

	c.active = c.draft
	c.draft = nil
	c.pendingDelete = nil
	c.mode = models.ModeView

	var result CommitResult
	if c.consent != nil && c.consent.HasConsent(ctx) {
		result.Persisted = c.repo.Persist(ctx, c.active)
		if !result.Persisted {
			c.logger.Warn().Msg("changes committed for this session only: storage unavailable")
		}
	} else {
		result.ConsentMissing = true
		c.logger.Info().Msg("changes committed for this session only: consent not given")
	}

	journal := c.journal
	c.journal = nil
	ids := models.PaletteIDs(c.active)
	for _, record := range journal {
		c.recorder.Record(ctx, record)
	}
	c.recorder.Record(ctx, func(ctx context.Context, repo events.Repository) error {
		return events.LogCollectionCommitted(ctx, repo, ids, result.Persisted)
	})

	return result, nil
}

// AddPalette appends p to the draft.
func (c *Controller) AddPalette(p models.Palette) error {
	if c.mode != models.ModeEdit {
		return ErrNotEditing
	}
	if indexOf(c.draft, p.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicatePalette, p.ID)
	}
	p = p.Clone()
	c.draft = append(c.draft, p)
	c.journal = append(c.journal, func(ctx context.Context, repo events.Repository) error {
		return events.LogPaletteAdded(ctx, repo, p)
	})
	return nil
}

// ReplacePalette swaps the draft palette with p's id for p, keeping its position.
func (c *Controller) ReplacePalette(p models.Palette) error {
	if c.mode != models.ModeEdit {
		return ErrNotEditing
	}
	idx := indexOf(c.draft, p.ID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPaletteNotFound, p.ID)
	}
	c.draft[idx] = p.Clone()
	return nil
}

// DeletePalette removes the first draft palette with the given id.
func (c *Controller) DeletePalette(id string) error {
	if c.mode != models.ModeEdit {
		return ErrNotEditing
	}
	idx := indexOf(c.draft, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPaletteNotFound, id)
	}

	removed := c.draft[idx]
	next := make([]models.Palette, 0, len(c.draft)-1)
	next = append(next, c.draft[:idx]...)
	next = append(next, c.draft[idx+1:]...)
	c.draft = next

	if c.pendingDelete != nil && c.pendingDelete.ID == id {
		c.pendingDelete = nil
	}
	c.journal = append(c.journal, func(ctx context.Context, repo events.Repository) error {
		return events.LogPaletteDeleted(ctx, repo, removed)
	})
	return nil
}

// RequestDelete stages a delete awaiting confirmation and returns the palette.
func (c *Controller) RequestDelete(id string) (models.Palette, error) {
	if c.mode != models.ModeEdit {
		return models.Palette{}, ErrNotEditing
	}
	idx := indexOf(c.draft, id)
	if idx < 0 {
		return models.Palette{}, fmt.Errorf("%w: %s", ErrPaletteNotFound, id)
	}
	p := c.draft[idx].Clone()
	c.pendingDelete = &p
	return p.Clone(), nil
}

// PendingDelete returns the palette awaiting delete confirmation.
func (c *Controller) PendingDelete() (models.Palette, bool) {
	if c.pendingDelete == nil {
		return models.Palette{}, false
	}
	return c.pendingDelete.Clone(), true
}

// ConfirmDelete applies the staged delete.
func (c *Controller) ConfirmDelete() error {
	if c.mode != models.ModeEdit {
		return ErrNotEditing
	}
	if c.pendingDelete == nil {
		return ErrNoPendingDelete
	}
	id := c.pendingDelete.ID
	c.pendingDelete = nil
	return c.DeletePalette(id)
}

// CancelDelete discards the staged delete, if any.
func (c *Controller) CancelDelete() {
	c.pendingDelete = nil
}

// Reorder replaces the draft with newOrder, which must hold exactly the
// draft's ids.
func (c *Controller) Reorder(newOrder []models.Palette) error {
	if c.mode != models.ModeEdit {
		return ErrNotEditing
	}
	if !isPermutation(c.draft, newOrder) {
		return ErrNotPermutation
	}
	c.setOrder(models.ClonePalettes(newOrder))
	return nil
}

// Move relocates the draft palette at from to index to.
func (c *Controller) Move(from, to int) error {
	if c.mode != models.ModeEdit {
		return ErrNotEditing
	}
	if !reorder.InRange(len(c.draft), from, to) {
		return fmt.Errorf("%w: move %d -> %d in %d palettes", ErrIndexOutOfRange, from, to, len(c.draft))
	}
	if from == to {
		return nil
	}
	c.setOrder(reorder.MoveItem(c.draft, from, to))
	return nil
}

func (c *Controller) setOrder(order []models.Palette) {
	c.draft = order
	ids := models.PaletteIDs(order)
	c.journal = append(c.journal, func(ctx context.Context, repo events.Repository) error {
		return events.LogReordered(ctx, repo, ids)
	})
}

// AcceptConsent grants consent and saves the active collection right away.
// It reports whether the save succeeded.
func (c *Controller) AcceptConsent(ctx context.Context) (bool, error) {
	if c.consent == nil {
		return false, fmt.Errorf("consent gate is not configured")
	}
	if err := c.consent.Grant(ctx); err != nil {
		return false, err
	}
	c.recorder.Record(ctx, func(ctx context.Context, repo events.Repository) error {
		return events.LogConsentChanged(ctx, repo, true)
	})
	return c.repo.Persist(ctx, c.active), nil
}

func indexOf(collection []models.Palette, id string) int {
	for i, p := range collection {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func isPermutation(current, next []models.Palette) bool {
	if len(current) != len(next) {
		return false
	}
	counts := make(map[string]int, len(current))
	for _, p := range current {
		counts[p.ID]++
	}
	for _, p := range next {
		if counts[p.ID] == 0 {
			return false
		}
		counts[p.ID]--
	}
	return true
}
