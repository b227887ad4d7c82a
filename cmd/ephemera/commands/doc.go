// Package commands implements the ephemera CLI.
//
// Two entry points exist: "open" mints a fresh room and prints the
// shareable URL, "join" binds a URL someone shared. Both drop into the same
// chat loop: stdin lines are sealed and sent, inbound packets are decrypted
// and printed until they expire. The CLI is a thin stand-in for a richer
// shell; the reveal gate and focus machinery live in the library.
package commands
