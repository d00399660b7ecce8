package theme

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DefaultPollInterval is how often TerminalSignal re-checks the background.
const DefaultPollInterval = 2 * time.Second

// Signal is the host's ambient dark-mode preference.
type Signal interface {
	Dark() bool
	// Subscribe calls fn whenever the preference changes. The returned func
	// releases the subscription and may be called more than once.
	Subscribe(fn func(dark bool)) (unsubscribe func())
}

// StaticSignal never changes.
type StaticSignal bool

// Dark reports the fixed value.
func (s StaticSignal) Dark() bool { return bool(s) }

// Subscribe never calls fn.
func (StaticSignal) Subscribe(func(bool)) func() { return func() {} }

// TerminalSignal watches the terminal background. Polling runs only while at
// least one subscriber is attached.
type TerminalSignal struct {
	detect   func() bool
	interval time.Duration

	mu        sync.Mutex
	dark      bool
	listeners map[int]func(bool)
	nextID    int
	stop      chan struct{}
}

// NewTerminalSignal creates a signal that queries the background of stdout
// on every poll.
func NewTerminalSignal(interval time.Duration) *TerminalSignal {
	return newTerminalSignal(detectBackground(rendererFor(os.Stdout)), interval)
}

// detectBackground asks a new renderer each time. A lipgloss Renderer
// answers HasDarkBackground once and caches the result.
func detectBackground(newRenderer func() *lipgloss.Renderer) func() bool {
	return func() bool {
		return newRenderer().HasDarkBackground()
	}
}

// rendererFor is the renderer factory for an arbitrary output.
func rendererFor(out io.Writer) func() *lipgloss.Renderer {
	return func() *lipgloss.Renderer {
		return lipgloss.NewRenderer(out)
	}
}

func newTerminalSignal(detect func() bool, interval time.Duration) *TerminalSignal {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &TerminalSignal{
		detect:    detect,
		interval:  interval,
		dark:      detect(),
		listeners: make(map[int]func(bool)),
	}
}

// Dark returns the last observed value.
func (s *TerminalSignal) Dark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Subscribe registers fn and starts polling if needed.
func (s *TerminalSignal) Subscribe(fn func(dark bool)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	if s.stop == nil {
		s.stop = make(chan struct{})
		go s.poll(s.stop)
	}
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			if len(s.listeners) == 0 && s.stop != nil {
				close(s.stop)
				s.stop = nil
			}
		})
	}
}

// Listeners returns the number of live subscriptions.
func (s *TerminalSignal) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *TerminalSignal) poll(stop <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.check(stop)
		}
	}
}

func (s *TerminalSignal) check(stop <-chan struct{}) {
	dark := s.detect()

	s.mu.Lock()
	select {
	case <-stop:
		s.mu.Unlock()
		return
	default:
	}
	if dark == s.dark {
		s.mu.Unlock()
		return
	}
	s.dark = dark
	listeners := make([]func(bool), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(dark)
	}
}
