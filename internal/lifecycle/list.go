package lifecycle

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"ephemera/internal/domain"
)

const (
	// TTL is a message's total visible window.
	TTL = 5 * time.Minute
	// FadeLead is how long before expiry the fade begins. Fading is purely
	// visual; nothing is gated on it.
	FadeLead = time.Second
	// CountdownInterval is the sampling period of the remaining-time value.
	CountdownInterval = 100 * time.Millisecond
)

// State classifies a displayed message within its visible window.
type State int

const (
	Fresh State = iota
	Fading
	Expired
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Fading:
		return "fading"
	case Expired:
		return "expired"
	}
	return "unknown"
}

// Event is one lifecycle transition, delivered to the List's observer.
type Event struct {
	ID    string
	State State
}

// Message is one displayed message. It exists only in this client's list:
// the id is local and no cross-client message identity exists.
type Message struct {
	ID         string
	Envelope   domain.Envelope
	Sender     domain.Identity
	Mine       bool
	ReceivedAt time.Time

	list        *List
	state       State
	fadeTimer   Timer
	expireTimer Timer
	reveal      *Gate
}

// State returns the message's current lifecycle state.
func (m *Message) State() State {
	m.list.mu.Lock()
	defer m.list.mu.Unlock()
	return m.state
}

// Remaining is the presentation countdown: time left of the TTL at now,
// floored at zero. Sampling it never affects the transition timers.
func (m *Message) Remaining(now time.Time) time.Duration {
	left := TTL - now.Sub(m.ReceivedAt)
	if left < 0 {
		left = 0
	}
	return left
}

// Reveal returns the message's reveal gate, or nil for text messages.
func (m *Message) Reveal() *Gate { return m.reveal }

// stopTimers cancels pending transitions. Called with the list lock held.
func (m *Message) stopTimers() {
	if m.fadeTimer != nil {
		m.fadeTimer.Stop()
	}
	if m.expireTimer != nil {
		m.expireTimer.Stop()
	}
	if m.reveal != nil {
		m.reveal.close()
	}
}

// ListOption configures a List.
type ListOption func(*List)

// WithClock substitutes the scheduling clock.
func WithClock(c Clock) ListOption {
	return func(l *List) { l.clock = c }
}

// WithGateFactory installs the constructor for image reveal gates. Absent a
// factory, image messages carry no gate.
func WithGateFactory(fn func() *Gate) ListOption {
	return func(l *List) { l.newGate = fn }
}

// List owns the live messages and is their only mutator. Transitions,
// additions, and removals are serialized under one lock.
type List struct {
	mu       sync.Mutex
	clock    Clock
	onChange func(Event)
	newGate  func() *Gate
	msgs     map[string]*Message
	order    []string
}

// NewList builds an empty list. onChange observes every transition; it runs
// on the goroutine that triggered it, after the list has been updated.
func NewList(onChange func(Event), opts ...ListOption) *List {
	l := &List{
		clock:    SystemClock{},
		onChange: onChange,
		msgs:     make(map[string]*Message),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add creates a Displayed Message and schedules its lifecycle. receivedAt
// anchors the timers: a stale buffered packet fades immediately (zero
// delay, never negative) and still expires by receivedAt+TTL.
func (l *List) Add(env domain.Envelope, sender domain.Identity, mine bool, receivedAt time.Time) *Message {
	m := &Message{
		ID:         uuid.NewString(),
		Envelope:   env,
		Sender:     sender,
		Mine:       mine,
		ReceivedAt: receivedAt,
		list:       l,
		state:      Fresh,
	}

	age := l.clock.Now().Sub(receivedAt)
	fadeDelay := TTL - age - FadeLead
	if fadeDelay < 0 {
		fadeDelay = 0
	}
	expireDelay := TTL - age
	if expireDelay < 0 {
		expireDelay = 0
	}

	l.mu.Lock()
	if env.Kind == domain.ContentImage && l.newGate != nil {
		m.reveal = l.newGate()
	}
	l.msgs[m.ID] = m
	l.order = append(l.order, m.ID)
	l.mu.Unlock()

	// Registered after insertion so an instantly-firing timer finds the
	// message present. Handles stored under the lock; stopping an
	// already-fired timer is harmless.
	fade := l.clock.AfterFunc(fadeDelay, func() { l.transition(m.ID, Fading) })
	expire := l.clock.AfterFunc(expireDelay, func() { l.transition(m.ID, Expired) })
	l.mu.Lock()
	if _, live := l.msgs[m.ID]; live {
		m.fadeTimer = fade
		m.expireTimer = expire
	} else {
		fade.Stop()
		expire.Stop()
	}
	l.mu.Unlock()

	return m
}

// Remove deletes a message ahead of its expiry, cancelling its timers so no
// callback fires against a dead entry. Expiry itself uses the same path.
func (l *List) Remove(id string) {
	l.mu.Lock()
	m, ok := l.msgs[id]
	if !ok {
		l.mu.Unlock()
		return
	}
	l.drop(m)
	l.mu.Unlock()
}

// drop unlinks m. Called with the lock held.
func (l *List) drop(m *Message) {
	m.stopTimers()
	delete(l.msgs, m.ID)
	for i, id := range l.order {
		if id == m.ID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// transition advances a message's state. Regressions and transitions on
// removed messages are ignored; Expired removes the message before the
// observer sees the event.
func (l *List) transition(id string, next State) {
	l.mu.Lock()
	m, ok := l.msgs[id]
	if !ok || next <= m.state {
		l.mu.Unlock()
		return
	}
	m.state = next
	if next == Expired {
		l.drop(m)
	}
	cb := l.onChange
	l.mu.Unlock()

	if cb != nil {
		cb(Event{ID: id, State: next})
	}
}

// Messages returns the live messages in receipt order.
func (l *List) Messages() []*Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Message, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.msgs[id])
	}
	return out
}

// Len reports the number of live messages.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.msgs)
}

// RunCountdown samples every live message's remaining time on a fixed
// interval and hands it to fn, until stop closes. Presentation only: the
// sampler reads the clock, never the timers.
func (l *List) RunCountdown(stop <-chan struct{}, fn func(id string, left time.Duration)) {
	t := l.clock.NewTicker(CountdownInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-t.C():
			for _, m := range l.Messages() {
				fn(m.ID, m.Remaining(now))
			}
		}
	}
}
