package server

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playperu/geoguess/internal/game"
	"github.com/playperu/geoguess/internal/geoguess"
)

// session is one live game behind the API. mu serializes every call into
// the controller, which is not safe for concurrent use.
type session struct {
	id   string
	mu   sync.Mutex
	ctrl *game.Controller

	unsubs     []func()
	lastActive time.Time
}

func (s *session) do(fn func(c *game.Controller)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	fn(s.ctrl)
}

func (s *session) state() StateResponse {
	var st StateResponse
	s.do(func(c *game.Controller) { st = newStateResponse(c.State()) })
	return st
}

func (s *session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// watch forwards every cell change of the session to the broker.
func (s *session) watch(broker *Broker) {
	sess := s.ctrl.Session()
	publish := func(e Event) { broker.Publish(s.id, e) }

	s.unsubs = append(s.unsubs,
		sess.Scores.Subscribe(func(scores, _ []int) {
			publish(Event{Type: EventScores, Scores: scores})
		}),
		sess.Turn.Subscribe(func(turn, _ int) {
			publish(Event{Type: EventTurn, Player: turn + 1})
		}),
		sess.Round.Subscribe(func(round, _ int) {
			publish(Event{Type: EventRound, Round: round})
		}),
		sess.Guesses.Subscribe(func(guesses, _ []geoguess.IncorrectGuess) {
			publish(Event{Type: EventGuesses, Guesses: guessRows(guesses)})
		}),
		sess.Message.Subscribe(func(msg, _ string) {
			publish(Event{Type: EventMessage, Message: msg})
		}),
		sess.Ended.Subscribe(func(ended, _ bool) {
			if ended {
				publish(Event{Type: EventEnded, Placements: sess.Placements()})
			}
		}),
		s.ctrl.Asset.Subscribe(func(asset, _ geoguess.Asset) {
			if asset.Code != "" {
				publish(Event{Type: EventAsset, Asset: &asset})
			}
		}),
	)
}

func (s *session) unwatch() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}

// Registry holds the live sessions keyed by ID.
type Registry struct {
	atlas  *geoguess.Atlas
	assets game.AssetSource
	broker *Broker
	logger *slog.Logger
	limit  int

	newRand func() game.Rand

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewRegistry(atlas *geoguess.Atlas, assets game.AssetSource, broker *Broker, logger *slog.Logger, suggestionLimit int) *Registry {
	return &Registry{
		atlas:    atlas,
		assets:   assets,
		broker:   broker,
		logger:   logger,
		limit:    suggestionLimit,
		newRand:  newSeededRand,
		sessions: make(map[string]*session),
	}
}

// Create starts a new session. Invalid configurations are returned as
// errors and nothing is registered.
func (r *Registry) Create(ctx context.Context, players, scoreToWin int) (*session, error) {
	id := uuid.NewString()
	ctrl := game.NewController(r.atlas, r.newRand(), r.assets, r.logger.With("session", id), r.limit)
	s := &session{id: id, ctrl: ctrl, lastActive: time.Now()}
	s.watch(r.broker)

	var err error
	s.do(func(c *game.Controller) { err = c.Start(ctx, players, scoreToWin) })
	if err != nil {
		s.unwatch()
		return nil, err
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return s, nil
}

func (r *Registry) Get(id string) (*session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete abandons a session and tells its subscribers.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return false
	}

	s.do(func(c *game.Controller) {
		s.unwatch()
		c.Abandon()
	})
	r.broker.Publish(id, Event{Type: EventAbandoned})
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep abandons sessions untouched for longer than ttl and returns how
// many were removed.
func (r *Registry) Sweep(now time.Time, ttl time.Duration) int {
	r.mu.RLock()
	var stale []string
	for id, s := range r.sessions {
		if now.Sub(s.idleSince()) > ttl {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()

	n := 0
	for _, id := range stale {
		if r.Delete(id) {
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep periodically until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, ttl time.Duration) error {
	ticker := time.NewTicker(max(ttl/4, time.Second))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := r.Sweep(now, ttl); n > 0 {
				r.logger.Info("expired idle sessions", "count", n, "remaining", r.Len())
			}
		}
	}
}

// newSeededRand returns a math/rand source seeded from crypto/rand.
func newSeededRand() game.Rand {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
}
