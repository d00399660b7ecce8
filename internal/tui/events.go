package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/colorvault/internal/models"
	"github.com/opencode-ai/colorvault/internal/theme"
)

// PalettesLoadedMsg carries the startup collection.
type PalettesLoadedMsg struct {
	Palettes []models.Palette
}

// ThemeChangedMsg reports a change of the ambient dark preference.
type ThemeChangedMsg struct {
	Dark bool
}

// ConsentSavedMsg reports the outcome of accepting consent.
type ConsentSavedMsg struct {
	Saved bool
	Err   error
}

// LoadPalettes returns a tea.Cmd that runs the startup load off the update loop.
func LoadPalettes(ctx context.Context, load func(context.Context) []models.Palette) tea.Cmd {
	return func() tea.Msg {
		if load == nil {
			return PalettesLoadedMsg{}
		}
		return PalettesLoadedMsg{Palettes: load(ctx)}
	}
}

// themeSubscription bridges a theme.Signal to the program. Changes are
// buffered in a channel and delivered one message at a time.
type themeSubscription struct {
	changes     chan bool
	done        chan struct{}
	once        sync.Once
	unsubscribe func()
}

func subscribeTheme(signal theme.Signal) *themeSubscription {
	sub := &themeSubscription{changes: make(chan bool, 1), done: make(chan struct{})}
	if signal == nil {
		sub.unsubscribe = func() {}
		return sub
	}
	sub.unsubscribe = signal.Subscribe(func(dark bool) {
		// Keep only the latest value.
		select {
		case <-sub.changes:
		default:
		}
		select {
		case sub.changes <- dark:
		default:
		}
	})
	return sub
}

// wait returns a tea.Cmd that blocks until the next change.
func (s *themeSubscription) wait() tea.Cmd {
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case dark := <-s.changes:
			return ThemeChangedMsg{Dark: dark}
		case <-s.done:
			return nil
		}
	}
}

// Close releases the subscription and unblocks a pending wait.
func (s *themeSubscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.unsubscribe()
		close(s.done)
	})
}
