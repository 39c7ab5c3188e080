package server

import (
	"fmt"
	"net/http"
	"time"
)

func handleEvents(reg *Registry, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		ch := broker.Subscribe(sess.id)
		defer broker.Unsubscribe(sess.id, ch)

		// Deleted before we subscribed: its abandoned event is already gone.
		if _, ok := reg.Get(sess.id); !ok {
			writeSSE(w, encodeEvent(Event{Type: EventAbandoned}))
			flusher.Flush()
			return
		}

		st := sess.state()
		writeSSE(w, encodeEvent(Event{Type: EventState, State: &st}))
		flusher.Flush()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case msg := <-ch:
				writeSSE(w, msg)
				flusher.Flush()
				if msg.Type == EventAbandoned {
					return
				}
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}

func writeSSE(w http.ResponseWriter, msg Message) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Type, msg.Data)
}
