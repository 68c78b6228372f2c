package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

func dial(t *testing.T, srv *httptest.Server, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if conn != nil {
		t.Cleanup(func() { conn.Close() })
	}
	return conn, resp, err
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub([]string{"http://localhost:3000"})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := dial(t, srv, http.Header{"Origin": {"http://localhost:3000"}})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast(model.ChangeEvent{Command: "runPolicy", Timestamp: 1741953600000})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got model.ChangeEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, model.ChangeEvent{Command: "runPolicy", Timestamp: 1741953600000}, got)
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	hub := NewHub([]string{"http://localhost:3000"})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	_, resp, err := dial(t, srv, http.Header{"Origin": {"http://evil.example"}})

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, hub.Len())
}

func TestHub_Disconnect(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := dial(t, srv, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()

	assert.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_Close(t *testing.T) {
	hub := NewHub([]string{"*"})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := dial(t, srv, http.Header{"Origin": {"http://anywhere.example"}})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
	assert.Equal(t, 0, hub.Len())
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub := NewHub(nil)
	c := &client{remote: "192.0.2.1:4000", send: make(chan model.ChangeEvent, 1)}
	hub.clients[c] = struct{}{}
	c.send <- model.ChangeEvent{Command: "first"}

	hub.Broadcast(model.ChangeEvent{Command: "second"})

	assert.Equal(t, 0, hub.Len())
	first, ok := <-c.send
	assert.True(t, ok)
	assert.Equal(t, "first", first.Command)
	_, ok = <-c.send
	assert.False(t, ok, "send channel should be closed")
}
