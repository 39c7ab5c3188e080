package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nhooyr.io/websocket"
)

func readEvent(ctx context.Context, t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	return e
}

func TestSessionWS(t *testing.T) {
	e := newTestEnv(t)
	s := e.createSession(t, 2, 1000)

	srv := httptest.NewServer(e.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + srv.URL[len("http"):] + "/api/sessions/" + s.ID + "/ws"

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	first := readEvent(ctx, t, conn)
	if first.Type != EventState || first.State == nil || first.State.Round != 1 {
		t.Fatalf("first event = %+v, want full state", first)
	}

	rec := e.do(t, http.MethodPost, "/api/sessions/"+s.ID+"/guess", `{"code":"GH"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("guess status = %d", rec.Code)
	}

	// Message is set before the history grows.
	msg := readEvent(ctx, t, conn)
	if msg.Type != EventMessage || msg.Message == "" {
		t.Fatalf("event = %+v, want message", msg)
	}
	guesses := readEvent(ctx, t, conn)
	if guesses.Type != EventGuesses || len(guesses.Guesses) != 1 || guesses.Guesses[0].Code != "GH" {
		t.Fatalf("event = %+v, want guesses", guesses)
	}

	if rec := e.do(t, http.MethodDelete, "/api/sessions/"+s.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if ev := readEvent(ctx, t, conn); ev.Type != EventAbandoned {
		t.Fatalf("event = %+v, want abandoned", ev)
	}

	_, _, err = conn.Read(ctx)
	if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
		t.Fatalf("close err = %v, want normal closure", err)
	}
}

func TestSessionWSDeletedBeforeSubscribe(t *testing.T) {
	e := newTestEnv(t)
	s := e.createSession(t, 2, 1000)

	sess, ok := e.registry.Get(s.ID)
	if !ok {
		t.Fatal("session not registered")
	}
	if !e.registry.Delete(s.ID) {
		t.Fatal("delete failed")
	}

	srv := httptest.NewServer(withSession(sess, handleSessionWS(slog.New(slog.DiscardHandler), e.registry, e.broker)))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+srv.URL[len("http"):], nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	if ev := readEvent(ctx, t, conn); ev.Type != EventAbandoned {
		t.Fatalf("event = %+v, want abandoned", ev)
	}
	_, _, err = conn.Read(ctx)
	if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
		t.Fatalf("close err = %v, want normal closure", err)
	}
}
