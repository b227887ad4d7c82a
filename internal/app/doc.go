// Package app wires the client dependency graph for the CLI.
//
// It resolves the room binding from a URL, mints the session identity, and
// builds the focus signal, lifecycle list, transport, and session from
// Config, exposing them via the Wire struct for commands to use.
package app
