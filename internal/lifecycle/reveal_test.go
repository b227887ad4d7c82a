package lifecycle

import (
	"testing"

	"ephemera/internal/domain"
	"ephemera/internal/focus"
)

func syncSignal() *focus.Signal {
	return focus.New(focus.WithClearDelay(0))
}

func TestGate_HoldAndFocusBothRequired(t *testing.T) {
	sig := syncSignal()
	g := NewGate(sig, nil)

	if g.State() != Hidden {
		t.Fatal("gate must start hidden")
	}

	g.HoldStart()
	if g.State() != Visible {
		t.Fatal("hold while focused should reveal")
	}

	g.HoldEnd()
	if g.State() != Hidden {
		t.Fatal("releasing the hold must hide")
	}

	// Holding with focus lost: never visible.
	sig.FocusLost()
	g.HoldStart()
	if g.State() != Hidden {
		t.Fatal("hold without focus revealed content")
	}

	// Focus returning does not resurrect a hold that never engaged.
	sig.FocusGained()
	if g.State() != Hidden {
		t.Fatal("focus return revealed without an active hold")
	}
}

func TestGate_FocusLossWhileHolding(t *testing.T) {
	sig := syncSignal()

	var states []RevealState
	g := NewGate(sig, func(s RevealState) { states = append(states, s) })

	g.HoldStart()
	sig.FocusLost() // synchronously forces hidden and drops the hold

	if g.State() != Hidden {
		t.Fatal("focus loss left gate visible")
	}

	// Regaining focus alone must not re-reveal: the hold was cancelled.
	sig.FocusGained()
	if g.State() != Hidden {
		t.Fatal("gate re-revealed without a new hold")
	}

	if len(states) != 2 || states[0] != Visible || states[1] != Hidden {
		t.Fatalf("state sequence: %v", states)
	}
}

func TestGate_KeypressAndContextMenuForceHidden(t *testing.T) {
	sig := syncSignal()

	g := NewGate(sig, nil)
	g.HoldStart()
	g.KeyDown()
	if g.State() != Hidden {
		t.Fatal("keypress did not hide")
	}

	g.HoldStart()
	g.ContextMenu()
	if g.State() != Hidden {
		t.Fatal("context menu did not hide")
	}
}

func TestGate_TruthTable(t *testing.T) {
	cases := []struct {
		hold, safe bool
		want       RevealState
	}{
		{false, false, Hidden},
		{false, true, Hidden},
		{true, false, Hidden},
		{true, true, Visible},
	}
	for _, tc := range cases {
		sig := syncSignal()
		g := NewGate(sig, nil)
		if !tc.safe {
			sig.FocusLost()
		}
		if tc.hold {
			g.HoldStart()
		}
		// A hold attempted while unsafe never engages, so the gate reads
		// hidden for every row but hold+safe.
		if got := g.State(); got != tc.want {
			t.Errorf("hold=%v safe=%v: got %v, want %v", tc.hold, tc.safe, got, tc.want)
		}
	}
}

func TestList_ImageMessagesGetGates(t *testing.T) {
	sig := syncSignal()
	clock := newFakeClock()
	l := NewList(nil,
		WithClock(clock),
		WithGateFactory(func() *Gate { return NewGate(sig, nil) }),
	)

	img := l.Add(domain.Envelope{Kind: domain.ContentImage, Content: "data:..."}, "A", false, clock.Now())
	txt := l.Add(textEnv("hi"), "A", false, clock.Now())

	if img.Reveal() == nil {
		t.Fatal("image message missing reveal gate")
	}
	if txt.Reveal() != nil {
		t.Fatal("text message should not carry a gate")
	}

	// Expiry detaches the gate from the signal.
	gate := img.Reveal()
	clock.advance(TTL)
	if !gate.closed {
		t.Fatal("gate not closed on expiry")
	}
}

func TestPreview_FocusLossClosesEntirely(t *testing.T) {
	sig := syncSignal()

	closed := false
	p := NewPreview(sig, nil, func() { closed = true })

	p.HoldStart()
	if !p.Visible() {
		t.Fatal("preview hold should reveal")
	}

	sig.FocusLost()
	if !closed || !p.Closed() {
		t.Fatal("focus loss must close the preview, not just hide it")
	}
	if p.Visible() {
		t.Fatal("closed preview still visible")
	}
}

func TestPreview_ReleaseCloses(t *testing.T) {
	sig := syncSignal()

	closes := 0
	p := NewPreview(sig, nil, func() { closes++ })

	p.HoldStart()
	p.HoldEnd()
	if closes != 1 {
		t.Fatalf("closes: %d", closes)
	}

	// Further input is inert; onClose fires once.
	p.HoldStart()
	p.Close()
	if closes != 1 {
		t.Fatalf("closes after re-close: %d", closes)
	}
}

func TestPreview_EscapeCloses(t *testing.T) {
	sig := syncSignal()

	closed := false
	p := NewPreview(sig, nil, func() { closed = true })

	p.KeyDown("a")
	if p.Closed() {
		t.Fatal("ordinary key closed the preview")
	}
	p.KeyDown("Escape")
	if !closed {
		t.Fatal("escape did not close")
	}
}
