package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"ephemera/internal/crypto"
	"ephemera/internal/domain"
	"ephemera/internal/lifecycle"
	"ephemera/internal/packet"
)

// Status is the connection state gating the send affordance.
type Status int

const (
	Connecting Status = iota
	Connected
	Disconnected
)

func (s Status) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	}
	return "unknown"
}

// ErrNotConnected reports a send attempted while the link is down.
var ErrNotConnected = errors.New("session: not connected")

// Hooks observe the session. All run on the session's dispatch goroutine
// (or the caller's, for local sends); nil hooks are skipped.
type Hooks struct {
	OnStatus   func(Status)
	OnPresence func(count int)
	OnMessage  func(*lifecycle.Message)
}

// Session binds one participant to one room.
type Session struct {
	identity  domain.Identity
	key       crypto.Key
	transport domain.Transport
	list      *lifecycle.List
	hooks     Hooks

	mu      sync.Mutex
	status  Status
	dropped atomic.Uint64
}

// New assembles a session. The key comes from the room binding and is
// immutable for the session's lifetime.
func New(identity domain.Identity, key crypto.Key, t domain.Transport, list *lifecycle.List, hooks Hooks) *Session {
	return &Session{
		identity:  identity,
		key:       key,
		transport: t,
		list:      list,
		hooks:     hooks,
		status:    Connecting,
	}
}

// Identity returns this participant's display label.
func (s *Session) Identity() domain.Identity { return s.identity }

// Status returns the current connection state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Dropped counts inbound frames discarded for failing authentication or
// parsing. Diagnostics only; dropped packets are permanently lost.
func (s *Session) Dropped() uint64 { return s.dropped.Load() }

// Run connects and dispatches inbound frames until the link closes or ctx
// is done. It returns nil on a clean remote close.
func (s *Session) Run(ctx context.Context) error {
	s.setStatus(Connecting)
	if err := s.transport.Connect(ctx); err != nil {
		s.setStatus(Disconnected)
		return err
	}
	s.setStatus(Connected)

	defer s.setStatus(Disconnected)
	for {
		select {
		case <-ctx.Done():
			s.transport.Close()
			return ctx.Err()
		case frame, ok := <-s.transport.Frames():
			if !ok {
				return nil
			}
			s.dispatch(frame)
		}
	}
}

// Send seals content and fires it at the room, then echoes it into the
// local list. Any failure leaves local state untouched: nothing sent,
// nothing displayed, the error surfaces to the shell as a notice.
func (s *Session) Send(kind domain.ContentKind, content string) (*lifecycle.Message, error) {
	if s.Status() != Connected {
		return nil, ErrNotConnected
	}

	payload, err := json.Marshal(domain.Envelope{Kind: kind, Content: content})
	if err != nil {
		return nil, fmt.Errorf("session: marshal envelope: %w", err)
	}
	box, err := crypto.Encrypt(string(payload), s.key)
	if err != nil {
		return nil, fmt.Errorf("session: encrypt: %w", err)
	}
	frame, err := packet.EncodePacket(domain.WirePacket{
		Nonce:      box.Nonce,
		Ciphertext: box.Ciphertext,
		Sender:     s.identity.String(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.transport.Send(frame); err != nil {
		return nil, err
	}

	// The relay never echoes to the sender; the local list is the echo.
	m := s.list.Add(domain.Envelope{Kind: kind, Content: content}, s.identity, true, time.Now())
	if s.hooks.OnMessage != nil {
		s.hooks.OnMessage(m)
	}
	return m, nil
}

// dispatch handles one inbound frame: presence first, then decrypt.
func (s *Session) dispatch(frame []byte) {
	in, err := packet.Decode(frame)
	if err != nil {
		s.dropped.Add(1)
		return
	}
	if in.Presence != nil {
		if s.hooks.OnPresence != nil {
			s.hooks.OnPresence(in.Presence.Count)
		}
		return
	}

	plaintext := crypto.Decrypt(in.Packet.Nonce, in.Packet.Ciphertext, s.key)
	if plaintext == crypto.DecryptFailed {
		s.dropped.Add(1)
		return
	}

	env := packet.ParseEnvelope(plaintext)
	m := s.list.Add(env, domain.Identity(in.Packet.Sender), false, time.Now())
	if s.hooks.OnMessage != nil {
		s.hooks.OnMessage(m)
	}
}

func (s *Session) setStatus(next Status) {
	s.mu.Lock()
	if s.status == next {
		s.mu.Unlock()
		return
	}
	s.status = next
	s.mu.Unlock()
	if s.hooks.OnStatus != nil {
		s.hooks.OnStatus(next)
	}
}
