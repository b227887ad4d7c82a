package relay

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"ephemera/internal/domain"
)

// DefaultReadLimit bounds one inbound frame. Oversized frames kill the
// offending connection only; within the limit the relay forwards anything
// as-is, since it cannot interpret content anyway.
const DefaultReadLimit = 1 << 20

// Server exposes the relay over HTTP: /ws upgrades into a room, /healthz
// answers liveness probes, /metrics serves Prometheus.
type Server struct {
	hub       *Hub
	upgrader  websocket.Upgrader
	log       *logrus.Logger
	readLimit int64
	registry  *prometheus.Registry
}

// NewServer builds a relay server with its own metrics registry.
func NewServer(log *logrus.Logger, readLimit int64) *Server {
	if readLimit <= 0 {
		readLimit = DefaultReadLimit
	}
	registry := prometheus.NewRegistry()
	return &Server{
		hub: NewHub(log, NewMetrics(registry)),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Rooms are joined by URL capability, not origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:       log,
		readLimit: readLimit,
		registry:  registry,
	}
}

// Hub exposes the room hub, mainly for tests.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the relay's HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		http.Error(w, "room is required", http.StatusBadRequest)
		return
	}

	sock, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	sock.SetReadLimit(s.readLimit)

	c := newConnection(uuid.NewString())
	room := s.hub.Join(domain.RoomID(roomID), c)

	go s.writePump(sock, c)
	s.readPump(sock, room, c)
}

// readPump feeds inbound frames to the room actor until the socket dies,
// then detaches the connection.
func (s *Server) readPump(sock *websocket.Conn, room *Room, c *connection) {
	defer func() {
		s.hub.Leave(room, c)
		sock.Close()
	}()
	for {
		_, raw, err := sock.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.log.WithError(err).WithField("conn", c.id).Debug("read error")
			}
			return
		}
		room.forward <- inbound{raw: raw, from: c}
	}
}

// writePump drains the connection's queue onto the socket. A closed queue
// (room shutdown or slow-receiver eviction) closes the socket.
func (s *Server) writePump(sock *websocket.Conn, c *connection) {
	defer sock.Close()
	for frame := range c.send {
		if err := sock.WriteMessage(websocket.TextMessage, frame); err != nil {
			s.log.WithError(err).WithField("conn", c.id).Debug("write error")
			return
		}
	}
	sock.WriteMessage(websocket.CloseMessage, []byte{})
}