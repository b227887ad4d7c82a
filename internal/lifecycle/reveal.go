package lifecycle

import (
	"sync"

	"ephemera/internal/focus"
)

// RevealState classifies an image message's content visibility.
type RevealState int

const (
	Hidden RevealState = iota
	Visible
)

func (s RevealState) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

// Gate is the hold-to-reveal mechanism for one image message. Content is
// Visible only while a hold gesture is active and the focus signal is safe,
// both continuously; this is a gate re-evaluated on every input change, not
// a toggle. Releasing the hold, any keypress, a context-menu attempt, or
// the signal going unsafe forces Hidden synchronously.
type Gate struct {
	mu       sync.Mutex
	holding  bool
	safe     bool
	state    RevealState
	onChange func(RevealState)
	unsub    func()
	closed   bool
}

// NewGate wires a gate to the focus signal. onChange observes every state
// change, synchronously with the input that caused it.
func NewGate(sig *focus.Signal, onChange func(RevealState)) *Gate {
	g := &Gate{
		safe:     sig.Safe(),
		onChange: onChange,
	}
	g.unsub = sig.Subscribe(func(safe bool) {
		g.mu.Lock()
		g.safe = safe
		if !safe {
			g.holding = false
		}
		g.reevaluate()
	})
	return g
}

// State returns the current reveal state.
func (g *Gate) State() RevealState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// HoldStart begins the hold gesture. It has no effect while the signal is
// unsafe: revealing requires both conditions from the start.
func (g *Gate) HoldStart() {
	g.mu.Lock()
	if g.safe {
		g.holding = true
	}
	g.reevaluate()
}

// HoldEnd releases the hold gesture.
func (g *Gate) HoldEnd() {
	g.mu.Lock()
	g.holding = false
	g.reevaluate()
}

// KeyDown forces Hidden; holding through a keypress would leave content on
// screen while a capture chord is typed.
func (g *Gate) KeyDown() {
	g.mu.Lock()
	g.holding = false
	g.reevaluate()
}

// ContextMenu forces Hidden on a right-click attempt.
func (g *Gate) ContextMenu() {
	g.mu.Lock()
	g.holding = false
	g.reevaluate()
}

// reevaluate recomputes the gate. Called with mu held; releases it.
func (g *Gate) reevaluate() {
	next := Hidden
	if g.holding && g.safe {
		next = Visible
	}
	if next == g.state {
		g.mu.Unlock()
		return
	}
	g.state = next
	cb := g.onChange
	g.mu.Unlock()
	if cb != nil {
		cb(next)
	}
}

// close detaches the gate from the signal. Idempotent; invoked when the
// owning message leaves the list.
func (g *Gate) close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	unsub := g.unsub
	g.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Preview is the full-screen image viewer. It shares the gate semantics
// and adds one rule: losing focus closes the preview entirely rather than
// merely hiding the content. Releasing the hold also closes it.
type Preview struct {
	mu      sync.Mutex
	gate    *Gate
	onClose func()
	closed  bool
	unsub   func()
}

// NewPreview opens a preview wired to the signal. onVisible observes the
// content gate; onClose fires exactly once when the preview ends.
func NewPreview(sig *focus.Signal, onVisible func(RevealState), onClose func()) *Preview {
	p := &Preview{onClose: onClose}
	p.gate = NewGate(sig, onVisible)
	p.unsub = sig.Subscribe(func(safe bool) {
		if !safe {
			p.Close()
		}
	})
	return p
}

// Visible reports whether the previewed content is currently revealed.
func (p *Preview) Visible() bool {
	return p.gate.State() == Visible
}

// HoldStart begins the hold gesture within the preview. Ignored once the
// preview has closed.
func (p *Preview) HoldStart() {
	if p.Closed() {
		return
	}
	p.gate.HoldStart()
}

// HoldEnd releases the hold and closes the preview.
func (p *Preview) HoldEnd() {
	p.gate.HoldEnd()
	p.Close()
}

// KeyDown hides content on any key; Escape closes the preview.
func (p *Preview) KeyDown(name string) {
	p.gate.KeyDown()
	if name == "Escape" {
		p.Close()
	}
}

// Close ends the preview. Safe to call repeatedly.
func (p *Preview) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	unsub := p.unsub
	onClose := p.onClose
	p.mu.Unlock()

	p.gate.HoldEnd()
	p.gate.close()
	if unsub != nil {
		unsub()
	}
	if onClose != nil {
		onClose()
	}
}

// Closed reports whether the preview has ended.
func (p *Preview) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
