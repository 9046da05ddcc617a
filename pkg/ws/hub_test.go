package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func TestHubBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zap.NewNop())
	go hub.Run(ctx)

	ts := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer conn.Close()

	// Give the hub time to register the client before broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for hub.clientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	payload := map[string]int{"round": 7}
	hub.Broadcast(payload)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read broadcast: %v", err)
	}

	var got map[string]int
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("Failed to unmarshal broadcast: %v", err)
	}
	if got["round"] != 7 {
		t.Errorf("Expected round 7, got %d", got["round"])
	}
}

func TestHubShutdownDisconnectsClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hub := NewHub(zap.NewNop())
	go hub.Run(ctx)

	ts := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.clientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()

	// The hub closes every client's send channel; the write pump then
	// sends a close frame and the read fails.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	if hub.clientCount() != 0 {
		t.Errorf("Expected no clients after shutdown, got %d", hub.clientCount())
	}
}

func TestClientTeardownAfterShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hub := NewHub(zap.NewNop())
	go hub.Run(ctx)

	ts := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.clientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()

	select {
	case <-hub.done:
	case <-time.After(2 * time.Second):
		t.Fatal("Hub never stopped")
	}

	// The client's read pump fails once the connection drops; with the
	// hub gone its unregister must not block, so a fresh connection
	// attempt still completes promptly instead of hanging in the handler.
	conn.Close()

	conn2, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial after shutdown: %v", err)
	}
	defer conn2.Close()

	// The stopped hub refuses the connection by closing it.
	_ = conn2.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn2.ReadMessage(); err == nil {
		t.Error("Expected the stopped hub to close the connection")
	}
	if hub.clientCount() != 0 {
		t.Errorf("Expected no clients after shutdown, got %d", hub.clientCount())
	}
}

func TestBroadcastUnmarshalable(t *testing.T) {
	hub := NewHub(zap.NewNop())

	// Channels cannot be marshaled; nothing should be queued.
	hub.Broadcast(make(chan int))

	select {
	case <-hub.broadcast:
		t.Error("Expected nothing queued for an unmarshalable value")
	default:
	}
}
