// Package identity mints display pseudonyms and their visual accents.
//
// A pseudonym is an "Adjective Animal" pair picked fresh per session. It is
// a label, nothing more: two participants can collide and anyone can type
// anyone else's name. Accent derives a stable gradient color pair from the
// label so a given sender looks consistent across clients without any
// coordination.
package identity
