package devserver

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + ReloadPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(msg)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub_Broadcast(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	srv := httptest.NewServer((&Server{Dir: t.TempDir(), Hub: hub}).Handler())
	defer srv.Close()

	hub.Broadcast("build-1")
	conn := dialHub(t, srv)

	if got := readMessage(t, conn); got != "build-1" {
		t.Errorf("first message = %q, want current build", got)
	}
	if hub.Clients() != 1 {
		t.Errorf("Clients() = %d, want 1", hub.Clients())
	}

	hub.Broadcast("build-2")
	if got := readMessage(t, conn); got != "build-2" {
		t.Errorf("message = %q, want build-2", got)
	}
}

func TestHub_NoBuildYet(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	waitFor(t, func() bool { return hub.Clients() == 1 })
	hub.Broadcast("first")
	if got := readMessage(t, conn); got != "first" {
		t.Errorf("message = %q, want first", got)
	}
}

func TestHub_Disconnect(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	srv := httptest.NewServer((&Server{Dir: t.TempDir(), Hub: hub}).Handler())
	defer srv.Close()

	conn := dialHub(t, srv)
	waitFor(t, func() bool { return hub.Clients() == 1 })

	_ = conn.Close()
	waitFor(t, func() bool { return hub.Clients() == 0 })
}

func TestHub_Close(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	srv := httptest.NewServer((&Server{Dir: t.TempDir(), Hub: hub}).Handler())
	defer srv.Close()

	conn := dialHub(t, srv)
	waitFor(t, func() bool { return hub.Clients() == 1 })

	hub.Close()
	if hub.Clients() != 0 {
		t.Errorf("Clients() = %d after Close", hub.Clients())
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("read error = %v, want going away close", err)
	}

	// New pages are refused after Close.
	late := dialHub(t, srv)
	_ = late.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := late.ReadMessage(); err == nil {
		t.Error("expected closed connection for late client")
	}
}
