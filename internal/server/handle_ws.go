package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
)

// handleSessionWS streams the same events as handleEvents over a
// WebSocket. Client messages are ignored.
func handleSessionWS(logger *slog.Logger, reg *Registry, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ch := broker.Subscribe(sess.id)
		defer broker.Unsubscribe(sess.id, ch)

		ctx := conn.CloseRead(r.Context())

		if _, ok := reg.Get(sess.id); !ok {
			if err := writeWS(ctx, conn, encodeEvent(Event{Type: EventAbandoned})); err != nil {
				logger.Debug("websocket write failed", "error", err)
				return
			}
			conn.Close(websocket.StatusNormalClosure, "session abandoned")
			return
		}

		st := sess.state()
		if err := writeWS(ctx, conn, encodeEvent(Event{Type: EventState, State: &st})); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return
		}

		for {
			select {
			case <-ctx.Done():
				logger.Debug("websocket read ended", "error", ctx.Err())
				return
			case msg := <-ch:
				if err := writeWS(ctx, conn, msg); err != nil {
					logger.Debug("websocket write failed", "error", err)
					return
				}
				if msg.Type == EventAbandoned {
					conn.Close(websocket.StatusNormalClosure, "session abandoned")
					return
				}
			}
		}
	}
}

func writeWS(ctx context.Context, conn *websocket.Conn, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, msg.Data)
}
