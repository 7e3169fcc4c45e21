package mux

import (
	"errors"
	"fmt"
	"net/http"
	"showdown-server/pkg/round"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type createRoundResponse struct {
	ID string `json:"id"`
}

type postHandPayload struct {
	Line string `json:"line"`
}

type showdownResponse struct {
	Hands []*round.Hand `json:"hands"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (m *Mux) postRound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()

		m.mu.Lock()
		m.rounds[id] = newLiveRound()
		m.mu.Unlock()

		logrus.WithField("round", id).Info("round created")
		writeJSON(w, http.StatusCreated, createRoundResponse{ID: id})
	}
}

func (m *Mux) postRoundHand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postHandPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		lr := r.Context().Value(ctxRoundKey).(*liveRound)

		lr.mu.Lock()
		defer lr.mu.Unlock()

		if len(lr.hands) >= m.maxHands {
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("round is limited to %d hands", m.maxHands))
			return
		}

		hand, err := lr.round.ParseHand(payload.Line)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		lr.hands = append(lr.hands, hand)
		writeJSON(w, http.StatusCreated, hand)
	}
}

func (m *Mux) postRoundShowdown() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lr := r.Context().Value(ctxRoundKey).(*liveRound)

		lr.mu.Lock()
		defer lr.mu.Unlock()

		if len(lr.hands) == 0 {
			writeJSONError(w, http.StatusBadRequest, errors.New("no hands have been submitted"))
			return
		}

		hands, err := lr.round.RankHands(lr.hands)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		lr.hands = hands
		payload := showdownResponse{Hands: hands}
		lr.broadcast(payload)

		writeJSON(w, http.StatusOK, payload)
	}
}

func (m *Mux) postRoundReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lr := r.Context().Value(ctxRoundKey).(*liveRound)

		lr.mu.Lock()
		defer lr.mu.Unlock()

		lr.round.Reset()
		lr.hands = nil

		writeJSON(w, http.StatusOK, statusResponse{Status: "OK"})
	}
}
