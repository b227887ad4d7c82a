package relay

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"ephemera/internal/domain"
	"ephemera/internal/packet"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func startRoom(t *testing.T) *Room {
	t.Helper()
	r := newRoom("testroom", testLogger().WithField("room", "testroom"), nil)
	go r.run()
	t.Cleanup(func() { close(r.quit) })
	return r
}

// recv pops one frame from a connection's queue.
func recv(t *testing.T, c *connection) []byte {
	t.Helper()
	select {
	case frame, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		return frame
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

func recvPresence(t *testing.T, c *connection) int {
	t.Helper()
	in, err := packet.Decode(recv(t, c))
	require.NoError(t, err)
	require.NotNil(t, in.Presence, "expected presence frame")
	return in.Presence.Count
}

func join(t *testing.T, r *Room, id string) *connection {
	t.Helper()
	c := newConnection(id)
	r.register <- c
	return c
}

func TestRoom_ForwardExcludesSender(t *testing.T) {
	r := startRoom(t)

	a := join(t, r, "a")
	require.Equal(t, 1, recvPresence(t, a))
	b := join(t, r, "b")
	require.Equal(t, 2, recvPresence(t, a))
	require.Equal(t, 2, recvPresence(t, b))
	c := join(t, r, "c")
	require.Equal(t, 3, recvPresence(t, a))
	require.Equal(t, 3, recvPresence(t, b))
	require.Equal(t, 3, recvPresence(t, c))

	payload := []byte(`{"nonce":"bm8=","ciphertext":"Y3Q=","sender":"A"}`)
	r.forward <- inbound{raw: payload, from: a}

	require.Equal(t, payload, recv(t, b))
	require.Equal(t, payload, recv(t, c))

	// The sender gets nothing back.
	select {
	case frame := <-a.send:
		t.Fatalf("sender received its own frame: %s", frame)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRoom_ForwardsOpaqueBytesVerbatim(t *testing.T) {
	r := startRoom(t)

	a := join(t, r, "a")
	recvPresence(t, a)
	b := join(t, r, "b")
	recvPresence(t, a)
	recvPresence(t, b)

	// Not JSON, not a packet: the relay must not care.
	junk := []byte{0x00, 0xff, 0x13, 0x37}
	r.forward <- inbound{raw: junk, from: a}
	require.Equal(t, junk, recv(t, b))
}

func TestRoom_PresenceOnLeave(t *testing.T) {
	r := startRoom(t)

	a := join(t, r, "a")
	recvPresence(t, a)
	b := join(t, r, "b")
	recvPresence(t, a)
	recvPresence(t, b)

	r.unregister <- b
	require.Equal(t, 1, recvPresence(t, a))
}

func TestRoom_RingBufferCap(t *testing.T) {
	r := newRoom("testroom", testLogger().WithField("room", "testroom"), nil)
	a := newConnection("a")
	r.conns[a] = struct{}{}

	// Drive the actor loop by hand: state is only ours because run was
	// never started.
	for i := 0; i < RecentCap+15; i++ {
		r.relay(inbound{raw: []byte(fmt.Sprintf("frame-%d", i)), from: a})
	}

	require.Len(t, r.recent, RecentCap)
	// Oldest evicted first: the buffer holds the final RecentCap frames.
	require.Equal(t, []byte("frame-15"), r.recent[0])
	require.Equal(t, []byte(fmt.Sprintf("frame-%d", RecentCap+14)), r.recent[RecentCap-1])
}

func TestRoom_SlowReceiverDropped(t *testing.T) {
	r := newRoom("testroom", testLogger().WithField("room", "testroom"), nil)
	a := newConnection("a")
	slow := &connection{id: "slow", send: make(chan []byte)} // no buffer, nobody reading
	r.conns[a] = struct{}{}
	r.conns[slow] = struct{}{}

	r.relay(inbound{raw: []byte("x"), from: a})

	require.NotContains(t, r.conns, slow)
	require.Contains(t, r.conns, a)
	// Eviction re-announced the corrected count to the survivors.
	require.Equal(t, 1, recvPresence(t, a))
}

func TestHub_RoomLifetime(t *testing.T) {
	hub := NewHub(testLogger(), nil)

	a := newConnection("a")
	room := hub.Join("r1", a)
	require.Equal(t, 1, hub.RoomCount())
	require.Equal(t, 1, recvPresence(t, a))

	b := newConnection("b")
	require.Same(t, room, hub.Join("r1", b))
	require.Equal(t, 1, hub.RoomCount())

	hub.Leave(room, a)
	require.Equal(t, 1, hub.RoomCount())
	hub.Leave(room, b)
	require.Equal(t, 0, hub.RoomCount())
}

func TestHub_RoomsAreIsolated(t *testing.T) {
	hub := NewHub(testLogger(), nil)

	a := newConnection("a")
	b := newConnection("b")
	r1 := hub.Join("r1", a)
	r2 := hub.Join("r2", b)
	require.NotSame(t, r1, r2)
	require.Equal(t, 1, recvPresence(t, a))
	require.Equal(t, 1, recvPresence(t, b))

	r1.forward <- inbound{raw: []byte("only r1"), from: a}

	select {
	case frame := <-b.send:
		t.Fatalf("frame crossed rooms: %s", frame)
	case <-time.After(50 * time.Millisecond):
	}

	hub.Leave(r1, a)
	hub.Leave(r2, b)
}

func TestPresenceFrameShape(t *testing.T) {
	frame, err := packet.EncodePresence(4)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(frame, &decoded))
	require.Equal(t, domain.TypePresence, decoded["type"])
	require.EqualValues(t, 4, decoded["count"])
}
