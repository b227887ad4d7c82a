// Package main runs the ephemera blind relay.
//
// HTTP API
//
//	GET /ws?room={id}
//	    Upgrade to a websocket attached to room {id}. Every text frame
//	    received is broadcast verbatim to all other members of the room;
//	    presence frames {"type":"presence","count":N} are pushed to all
//	    members (including the newcomer) whenever the count changes.
//
//	GET /healthz
//	    Liveness probe, always 200.
//
//	GET /metrics
//	    Prometheus metrics: open rooms, attached connections, forwarded
//	    frame totals.
//
// Behaviour
//
//   - The relay never parses, validates, or decrypts payloads. It holds no
//     keys and cannot read traffic; compromise yields ciphertext and
//     connection metadata only.
//   - Per room, the 20 most recent raw frames are kept in memory to smooth
//     reloads. Nothing replays them and they die with the room.
//   - All state is in memory and lost on process exit. Rooms close when
//     their last connection leaves.
//
// Configuration is flags over environment (EPHEMERA_*) over defaults:
// listen address, per-frame read limit, and log level.
package main
