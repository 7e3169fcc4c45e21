package mux

import (
	"context"
	"net/http"
	"showdown-server/internal/config"
	"showdown-server/pkg/poker/handrank"
	"showdown-server/pkg/round"
	"sync"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const ctxRoundKey ctxKey = iota

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string

	// maxHands caps the number of hands a round accepts
	maxHands int

	mu     sync.Mutex
	rounds map[string]*liveRound
}

// liveRound is one round in progress. mu serializes all parsing and
// ranking; a Round is not safe for concurrent use.
type liveRound struct {
	mu       sync.Mutex
	round    *round.Round
	hands    []*round.Hand
	watchers []*watcher
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	this := &Mux{
		Router:   gmux.NewRouter(),
		version:  version,
		maxHands: config.Instance().MaxHandsPerRound,
		rounds:   make(map[string]*liveRound),
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodPost).Path("/round").Handler(this.postRound())

	rr := r.PathPrefix("/round/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
	rr.Use(this.roundMiddleware)

	rr.Methods(http.MethodPost).Path("/hand").Handler(this.postRoundHand())
	rr.Methods(http.MethodPost).Path("/showdown").Handler(this.postRoundShowdown())
	rr.Methods(http.MethodPost).Path("/reset").Handler(this.postRoundReset())
	rr.Methods(http.MethodGet).Path("/ws").Handler(this.getRoundWS())

	return this
}

func (m *Mux) roundMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		lr, ok := m.rounds[gmux.Vars(r)["uuid"]]
		m.mu.Unlock()

		if !ok {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxRoundKey, lr)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func newLiveRound() *liveRound {
	return &liveRound{
		round: round.New(round.ClassifierFunc(handrank.New)),
	}
}
