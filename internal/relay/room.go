package relay

import (
	"github.com/sirupsen/logrus"

	"ephemera/internal/domain"
	"ephemera/internal/packet"
)

// RecentCap bounds the per-room ring buffer of raw frames. Oldest entries
// are silently dropped past the cap; this is not a durability guarantee.
const RecentCap = 20

// sendBuffer is the per-connection outbound queue. A connection whose
// queue is full is dropped from the room.
const sendBuffer = 256

// connection is the room's view of one client. id is relay-assigned and
// never correlated with the self-reported sender label inside payloads.
type connection struct {
	id   string
	send chan []byte
}

func newConnection(id string) *connection {
	return &connection{id: id, send: make(chan []byte, sendBuffer)}
}

// inbound pairs a raw frame with the connection it came from.
type inbound struct {
	raw  []byte
	from *connection
}

// Room is one relay room: an actor whose run loop is the only goroutine
// touching its state. No locks, no cross-room sharing.
type Room struct {
	id domain.RoomID

	register   chan *connection
	unregister chan *connection
	forward    chan inbound
	quit       chan struct{}

	conns  map[*connection]struct{}
	recent [][]byte

	log     *logrus.Entry
	metrics *Metrics
}

func newRoom(id domain.RoomID, log *logrus.Entry, m *Metrics) *Room {
	return &Room{
		id:         id,
		register:   make(chan *connection),
		unregister: make(chan *connection),
		forward:    make(chan inbound),
		quit:       make(chan struct{}),
		conns:      make(map[*connection]struct{}),
		log:        log,
		metrics:    m,
	}
}

// run owns the room state until quit closes.
func (r *Room) run() {
	for {
		select {
		case <-r.quit:
			for c := range r.conns {
				close(c.send)
			}
			return
		case c := <-r.register:
			r.conns[c] = struct{}{}
			r.log.WithFields(logrus.Fields{"conn": c.id, "count": len(r.conns)}).Info("connection joined")
			r.broadcastPresence()
		case c := <-r.unregister:
			if _, ok := r.conns[c]; !ok {
				continue
			}
			delete(r.conns, c)
			close(c.send)
			r.log.WithFields(logrus.Fields{"conn": c.id, "count": len(r.conns)}).Info("connection left")
			r.broadcastPresence()
		case in := <-r.forward:
			r.relay(in)
		}
	}
}

// relay broadcasts raw bytes to all-but-sender and records them in the
// ring buffer. The payload is never inspected.
func (r *Room) relay(in inbound) {
	dropped := false
	for c := range r.conns {
		if c == in.from {
			continue
		}
		if !r.deliver(c, in.raw) {
			dropped = true
		}
	}
	if len(r.recent) >= RecentCap {
		r.recent = r.recent[1:]
	}
	r.recent = append(r.recent, in.raw)
	if r.metrics != nil {
		r.metrics.ForwardedFrames.Inc()
	}
	if dropped {
		r.broadcastPresence()
	}
}

// broadcastPresence sends the updated count to every member, newcomers
// included. Repeats if the broadcast itself evicts someone, so the last
// frame everyone sees carries the true count.
func (r *Room) broadcastPresence() {
	for {
		frame, err := packet.EncodePresence(len(r.conns))
		if err != nil {
			r.log.WithError(err).Error("encode presence")
			return
		}
		dropped := false
		for c := range r.conns {
			if !r.deliver(c, frame) {
				dropped = true
			}
		}
		if !dropped {
			return
		}
	}
}

// deliver enqueues one frame, evicting receivers that cannot keep up.
// At-most-once: there is no retry and nothing blocks the actor.
func (r *Room) deliver(c *connection, frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		delete(r.conns, c)
		close(c.send)
		r.log.WithField("conn", c.id).Warn("dropping slow connection")
		return false
	}
}
