package realtime

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"appwatch/internal/models"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

// statusServer upgrades one connection, pushes the given updates in order and
// keeps the socket open until the client hangs up.
func statusServer(t *testing.T, gotUser chan<- string, updates []models.StatusUpdate) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser <- r.URL.Query().Get("userId")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		for _, upd := range updates {
			if err := conn.WriteJSON(upd); err != nil {
				return
			}
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func testListener(srv *httptest.Server) *Listener {
	return NewListener(wsURL(srv), log.NewWithOptions(io.Discard, log.Options{}))
}

func TestUpdatesArriveInOrder(t *testing.T) {
	pushed := []models.StatusUpdate{
		{SiteUUID: "A", Status: "checking"},
		{SiteUUID: "A", Status: "online",
			Routes: []models.RouteStatusUpdate{{RouteID: "r1", Status: "success", Response: "200 OK"}}},
		{SiteUUID: "B", Status: "offline"},
	}

	gotUser := make(chan string, 1)
	srv := statusServer(t, gotUser, pushed)
	defer srv.Close()

	l := testListener(srv)
	require.NoError(t, l.Connect(context.Background(), "u1"))
	defer l.Close()

	assert.Equal(t, "u1", <-gotUser)
	assert.Equal(t, StateConnected, l.State())

	for i, want := range pushed {
		select {
		case got := <-l.Updates():
			assert.Equal(t, want, got, "update %d", i)
		case <-time.After(2 * time.Second):
			t.Fatalf("update %d never arrived", i)
		}
	}
	assert.Equal(t, StateReceiving, l.State())
}

func TestCloseEndsTheStream(t *testing.T) {
	gotUser := make(chan string, 1)
	srv := statusServer(t, gotUser, nil)
	defer srv.Close()

	l := testListener(srv)
	require.NoError(t, l.Connect(context.Background(), "u1"))
	<-gotUser

	updates := l.Updates()
	l.Close()

	select {
	case _, open := <-updates:
		assert.False(t, open, "channel must close when the connection ends")
	case <-time.After(2 * time.Second):
		t.Fatal("update channel never closed")
	}

	assert.Equal(t, StateDisconnected, l.State())
	assert.NoError(t, l.Err(), "a deliberate close is not a stream error")
}

func TestServerDropSetsErr(t *testing.T) {
	gotUser := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser <- r.URL.Query().Get("userId")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close() // drop immediately, no close handshake
	}))
	defer srv.Close()

	l := testListener(srv)
	require.NoError(t, l.Connect(context.Background(), "u1"))
	<-gotUser

	select {
	case _, open := <-l.Updates():
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("update channel never closed")
	}
	assert.Error(t, l.Err())
	assert.Equal(t, StateDisconnected, l.State())
}

func TestConnectTwiceIsIdempotent(t *testing.T) {
	gotUser := make(chan string, 2)
	srv := statusServer(t, gotUser, nil)
	defer srv.Close()

	l := testListener(srv)
	require.NoError(t, l.Connect(context.Background(), "u1"))
	defer l.Close()
	require.NoError(t, l.Connect(context.Background(), "u1"))

	<-gotUser
	select {
	case u := <-gotUser:
		t.Errorf("second dial reached the server (userId=%q)", u)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestConnectRefused(t *testing.T) {
	l := NewListener("ws://127.0.0.1:1", log.NewWithOptions(io.Discard, log.Options{}))
	assert.Error(t, l.Connect(context.Background(), "u1"))
	assert.Equal(t, StateDisconnected, l.State())
}
