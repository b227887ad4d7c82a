package app

import (
	"ephemera/internal/domain"
	"ephemera/internal/focus"
	"ephemera/internal/identity"
	"ephemera/internal/lifecycle"
	"ephemera/internal/room"
	"ephemera/internal/session"
	"ephemera/internal/transport"
)

// Wire bundles the assembled client for the CLI.
type Wire struct {
	Binding  room.Binding
	Identity domain.Identity
	Focus    *focus.Signal
	List     *lifecycle.List
	Session  *session.Session
}

// NewWire constructs the dependency graph from cfg. Binding runs here,
// exactly once, before any connection exists; an invalid key fragment
// fails the whole build and no transport is opened.
func NewWire(cfg Config) (*Wire, error) {
	binding, err := room.Bind(cfg.URL)
	if err != nil {
		return nil, err
	}

	id := identity.Generate()
	sig := focus.New()
	list := lifecycle.NewList(cfg.OnLifecycle,
		lifecycle.WithGateFactory(func() *lifecycle.Gate {
			return lifecycle.NewGate(sig, nil)
		}),
	)

	ws := transport.NewWS(cfg.RelayHost, binding.Room)
	sess := session.New(id, binding.Key, ws, list, cfg.Hooks)

	return &Wire{
		Binding:  binding,
		Identity: id,
		Focus:    sig,
		List:     list,
		Session:  sess,
	}, nil
}
