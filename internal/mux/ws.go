package mux

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// sendBuffer is the number of showdown results a slow watcher may lag behind
const sendBuffer = 4

// watcher is a spectator websocket connection on a single round
type watcher struct {
	conn *websocket.Conn
	send chan interface{}
}

// broadcast sends the payload to every watcher on the round.
// Watchers too far behind are skipped. The caller must hold lr.mu.
func (lr *liveRound) broadcast(payload interface{}) {
	for _, wt := range lr.watchers {
		select {
		case wt.send <- payload:
		default:
			logrus.WithField("watcher", wt.conn.RemoteAddr()).Warn("watcher is lagging, dropping message")
		}
	}
}

func (lr *liveRound) addWatcher(wt *watcher) {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	lr.watchers = append(lr.watchers, wt)
}

func (lr *liveRound) removeWatcher(wt *watcher) {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	for i, w := range lr.watchers {
		if w == wt {
			lr.watchers = append(lr.watchers[:i], lr.watchers[i+1:]...)
			return
		}
	}
}

func (m *Mux) getRoundWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		lr := r.Context().Value(ctxRoundKey).(*liveRound)

		wt := &watcher{
			conn: conn,
			send: make(chan interface{}, sendBuffer),
		}
		lr.addWatcher(wt)

		defer func() {
			lr.removeWatcher(wt)
			_ = conn.Close()
		}()

		go m.webSocketWriteLoop(wt)
		m.webSocketReadLoop(wt)
	}
}

func (m *Mux) webSocketWriteLoop(wt *watcher) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = wt.conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = wt.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wt.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case msg := <-wt.send:
			_ = wt.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wt.conn.WriteJSON(msg); err != nil {
				logrus.WithError(err).Error("could not write message")
				return
			}
		}
	}
}

// webSocketReadLoop drains the connection so pong frames are processed.
// Watchers are read-only; any payload they send is discarded.
func (m *Mux) webSocketReadLoop(wt *watcher) {
	for {
		if _, _, err := wt.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).Debug("watcher closed unexpectedly")
			}

			return
		}
	}
}
