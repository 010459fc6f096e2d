package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NZUMAN2/transera-crm-sub001/pkg/logger"
)

func newRunningHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(logger.NewNop())
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func dialTestHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		client := NewClient(hub, conn)
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcastsToConnectedClients(t *testing.T) {
	hub := newRunningHub(t)
	conn := dialTestHub(t, hub)

	// Give the register message time to land before publishing
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	hub.Publish("candidate_created", map[string]interface{}{"id": float64(42)})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))

	assert.Equal(t, "candidate_created", event.Type)
	assert.NotZero(t, event.Timestamp)
	data, ok := event.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(42), data["id"])
}

func TestHubFansOutToAllClients(t *testing.T) {
	hub := newRunningHub(t)
	first := dialTestHub(t, hub)
	second := dialTestHub(t, hub)

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		time.Second, 10*time.Millisecond)

	hub.Publish("job_created", "payload")

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var event Event
		require.NoError(t, conn.ReadJSON(&event))
		assert.Equal(t, "job_created", event.Type)
	}
}

func TestHubDropsDisconnectedClients(t *testing.T) {
	hub := newRunningHub(t)
	conn := dialTestHub(t, hub)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestHubPublishNeverBlocks(t *testing.T) {
	// No Run loop draining the channel: publishes beyond the buffer must be
	// dropped, not block the caller.
	hub := NewHub(logger.NewNop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.Publish("event", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a saturated hub")
	}
}
