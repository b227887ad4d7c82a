package relay

import (
	"sync"

	"github.com/sirupsen/logrus"

	"ephemera/internal/domain"
)

// Hub tracks the live rooms. Room lifetimes are reference-counted under the
// hub lock: the first join spawns the room actor, the last leave tears it
// down. Room state itself is only ever touched by the room's goroutine.
type Hub struct {
	mu    sync.Mutex
	rooms map[domain.RoomID]*roomRef

	log     *logrus.Logger
	metrics *Metrics
}

type roomRef struct {
	room *Room
	refs int
}

// NewHub returns an empty hub.
func NewHub(log *logrus.Logger, m *Metrics) *Hub {
	return &Hub{
		rooms:   make(map[domain.RoomID]*roomRef),
		log:     log,
		metrics: m,
	}
}

// Join attaches a connection to a room, creating the room on first use.
func (h *Hub) Join(id domain.RoomID, c *connection) *Room {
	h.mu.Lock()
	ref, ok := h.rooms[id]
	if !ok {
		ref = &roomRef{room: newRoom(id, h.log.WithField("room", id.String()), h.metrics)}
		h.rooms[id] = ref
		go ref.room.run()
		h.log.WithField("room", id.String()).Info("room opened")
		if h.metrics != nil {
			h.metrics.Rooms.Inc()
		}
	}
	ref.refs++
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.Connections.Inc()
	}
	ref.room.register <- c
	return ref.room
}

// Leave detaches a connection. The last leave stops the room actor and
// discards its state, ring buffer included.
func (h *Hub) Leave(r *Room, c *connection) {
	r.unregister <- c

	h.mu.Lock()
	ref, ok := h.rooms[r.id]
	if ok {
		ref.refs--
		if ref.refs == 0 {
			delete(h.rooms, r.id)
			close(r.quit)
			h.log.WithField("room", r.id.String()).Info("room closed")
			if h.metrics != nil {
				h.metrics.Rooms.Dec()
			}
		}
	}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.Connections.Dec()
	}
}

// RoomCount reports the number of live rooms.
func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}
