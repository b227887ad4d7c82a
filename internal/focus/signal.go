package focus

import (
	"sync"
	"time"
)

// DefaultClearDelay is how long focus must hold before the signal returns
// to safe. Going unsafe is never delayed.
const DefaultClearDelay = 100 * time.Millisecond

// Key is one keyboard event as reported by the shell.
type Key struct {
	Name  string // "PrintScreen", "3", "s", "p", ...
	Meta  bool
	Shift bool
	Ctrl  bool
}

// screenshot reports whether k matches a known capture chord.
func (k Key) screenshot() bool {
	switch {
	case k.Name == "PrintScreen":
		return true
	case k.Meta && k.Shift && (k.Name == "3" || k.Name == "4" || k.Name == "s"):
		return true
	case k.Ctrl && k.Name == "p":
		return true
	}
	return false
}

// Option configures a Signal.
type Option func(*Signal)

// WithClearDelay overrides the safe-again debounce. Zero makes the
// transition synchronous, which tests rely on.
func WithClearDelay(d time.Duration) Option {
	return func(s *Signal) { s.clearDelay = d }
}

// WithClipboard installs the best-effort clipboard overwrite invoked on a
// detected screenshot chord.
func WithClipboard(fn func(text string)) Option {
	return func(s *Signal) { s.clipboard = fn }
}

// Signal is the observable safe-to-render boolean. One instance serves the
// whole process.
type Signal struct {
	mu         sync.Mutex
	focused    bool
	visible    bool
	latched    bool // screenshot chord seen; clears on next focus/visibility
	safe       bool
	clearDelay time.Duration
	pending    *time.Timer
	clipboard  func(string)
	subs       map[int]func(bool)
	nextSub    int
}

// New returns a Signal that starts safe (focused, visible).
func New(opts ...Option) *Signal {
	s := &Signal{
		focused:    true,
		visible:    true,
		safe:       true,
		clearDelay: DefaultClearDelay,
		subs:       make(map[int]func(bool)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Safe reports the current value.
func (s *Signal) Safe() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.safe
}

// Subscribe registers fn for every change of the safe value. fn runs
// synchronously on the goroutine that caused the change, in registration
// order. The returned cancel removes the subscription.
func (s *Signal) Subscribe(fn func(safe bool)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// FocusGained reports the window regaining focus.
func (s *Signal) FocusGained() {
	s.mu.Lock()
	s.focused = true
	s.latched = false
	s.recompute()
}

// FocusLost reports the window losing focus.
func (s *Signal) FocusLost() {
	s.mu.Lock()
	s.focused = false
	s.recompute()
}

// VisibilityChanged reports the document being hidden or shown.
func (s *Signal) VisibilityChanged(visible bool) {
	s.mu.Lock()
	s.visible = visible
	if visible {
		s.latched = false
	} else {
		s.focused = false
	}
	s.recompute()
}

// KeyDown feeds one keyboard event. Recognized screenshot chords force the
// signal unsafe until focus or visibility is re-established, and overwrite
// the clipboard to cheapen a capture that slips through.
func (s *Signal) KeyDown(k Key) {
	if !k.screenshot() {
		return
	}
	s.mu.Lock()
	s.latched = true
	clip := s.clipboard
	s.recompute()
	if clip != nil {
		clip(" ")
	}
}

// recompute derives safe from the inputs and notifies on change. Called
// with mu held; releases it.
func (s *Signal) recompute() {
	raw := s.focused && s.visible && !s.latched

	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}

	if !raw {
		if !s.safe {
			s.mu.Unlock()
			return
		}
		s.safe = false
		subs := s.snapshot()
		s.mu.Unlock()
		for _, fn := range subs {
			fn(false)
		}
		return
	}

	if s.safe {
		s.mu.Unlock()
		return
	}
	if s.clearDelay == 0 {
		s.safe = true
		subs := s.snapshot()
		s.mu.Unlock()
		for _, fn := range subs {
			fn(true)
		}
		return
	}
	s.pending = time.AfterFunc(s.clearDelay, s.clearPending)
	s.mu.Unlock()
}

// clearPending completes a debounced return to safe if the inputs still
// allow it.
func (s *Signal) clearPending() {
	s.mu.Lock()
	s.pending = nil
	if s.safe || !(s.focused && s.visible && !s.latched) {
		s.mu.Unlock()
		return
	}
	s.safe = true
	subs := s.snapshot()
	s.mu.Unlock()
	for _, fn := range subs {
		fn(true)
	}
}

// snapshot copies subscribers in registration order. Called with mu held.
func (s *Signal) snapshot() []func(bool) {
	out := make([]func(bool), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
