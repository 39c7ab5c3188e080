package server

import (
	"encoding/json"
	"sync"

	"github.com/playperu/geoguess/internal/geoguess"
)

// Event types pushed to session subscribers.
const (
	EventState     = "state"
	EventScores    = "scores"
	EventTurn      = "turn"
	EventRound     = "round"
	EventGuesses   = "guesses"
	EventMessage   = "message"
	EventEnded     = "ended"
	EventAsset     = "asset"
	EventAbandoned = "abandoned"
)

// Event is the payload published to session subscribers. Only the fields
// relevant to Type are set.
type Event struct {
	Type       string               `json:"type"`
	Round      int                  `json:"round,omitempty"`
	Player     int                  `json:"player,omitempty"`
	Scores     []int                `json:"scores,omitempty"`
	Guesses    []GuessRow           `json:"guesses,omitempty"`
	Message    string               `json:"message,omitempty"`
	Placements []geoguess.Placement `json:"placements,omitempty"`
	Asset      *geoguess.Asset      `json:"asset,omitempty"`
	State      *StateResponse       `json:"state,omitempty"`
}

// Message is an encoded Event as delivered to subscribers.
type Message struct {
	Type string
	Data []byte
}

// Broker is an in-process pub/sub for session events, keyed by session ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan Message]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan Message]struct{}),
	}
}

// Subscribe returns a channel that receives events for the given session.
func (b *Broker) Subscribe(sessionID string) chan Message {
	ch := make(chan Message, 32)
	b.mu.Lock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan Message]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the session's subscribers.
func (b *Broker) Unsubscribe(sessionID string, ch chan Message) {
	b.mu.Lock()
	delete(b.subs[sessionID], ch)
	if len(b.subs[sessionID]) == 0 {
		delete(b.subs, sessionID)
	}
	b.mu.Unlock()
}

// Subscribers reports how many channels listen on a session.
func (b *Broker) Subscribers(sessionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[sessionID])
}

// Publish sends an event to all subscribers of the given session.
func (b *Broker) Publish(sessionID string, event Event) {
	msg := encodeEvent(event)
	b.mu.RLock()
	for ch := range b.subs[sessionID] {
		select {
		case ch <- msg:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}

func encodeEvent(event Event) Message {
	data, _ := json.Marshal(event)
	return Message{Type: event.Type, Data: data}
}
