package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"snake-survival/internal/leaderboard"
)

// subscriberBuffer bounds the per-connection backlog; subscribers that fall
// further behind are dropped.
const subscriberBuffer = 16

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is public and read-only.
	CheckOrigin: func(*http.Request) bool { return true },
}

type subscriber struct {
	conn *websocket.Conn
	send chan leaderboard.Entry
}

// LiveHub pushes newly accepted entries to websocket subscribers.
type LiveHub struct {
	register   chan *subscriber
	unregister chan *subscriber
	broadcast  chan leaderboard.Entry
	done       chan struct{}
}

// NewLiveHub creates a hub; the caller must start Run.
func NewLiveHub() *LiveHub {
	return &LiveHub{
		register:   make(chan *subscriber),
		unregister: make(chan *subscriber),
		broadcast:  make(chan leaderboard.Entry, subscriberBuffer),
		done:       make(chan struct{}),
	}
}

// Run owns the subscriber set until Close. All membership changes go through
// the hub goroutine, so no locking is needed.
func (h *LiveHub) Run() {
	subscribers := make(map[*subscriber]struct{})
	defer func() {
		for sub := range subscribers {
			close(sub.send)
		}
	}()

	for {
		select {
		case sub := <-h.register:
			subscribers[sub] = struct{}{}
		case sub := <-h.unregister:
			if _, ok := subscribers[sub]; ok {
				delete(subscribers, sub)
				close(sub.send)
			}
		case entry := <-h.broadcast:
			for sub := range subscribers {
				select {
				case sub.send <- entry:
				default:
					// Too far behind; cut the subscriber loose.
					delete(subscribers, sub)
					close(sub.send)
				}
			}
		case <-h.done:
			return
		}
	}
}

// Broadcast queues an entry for all subscribers. Never blocks the submitter;
// if the hub itself is saturated the entry is dropped from the feed only,
// not from the leaderboard.
func (h *LiveHub) Broadcast(entry leaderboard.Entry) {
	select {
	case h.broadcast <- entry:
	default:
		log.Warn("live feed saturated, dropping broadcast", "score", entry.Score)
	}
}

// Close stops the hub goroutine and closes all subscriber channels.
func (h *LiveHub) Close() {
	close(h.done)
}

// handleSubscribe upgrades the connection and streams entries until the
// client goes away.
func (h *LiveHub) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket upgrade failed", "err", err)
		return
	}

	sub := &subscriber{conn: conn, send: make(chan leaderboard.Entry, subscriberBuffer)}
	select {
	case h.register <- sub:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writeLoop(sub)
	h.readLoop(sub)
}

// writeLoop drains the send channel to the socket. Exits when the hub closes
// the channel or the write fails.
func (h *LiveHub) writeLoop(sub *subscriber) {
	defer sub.conn.Close()
	for entry := range sub.send {
		if err := sub.conn.WriteJSON(entry); err != nil {
			return
		}
	}
	sub.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
}

// readLoop discards client frames; its job is noticing disconnects.
func (h *LiveHub) readLoop(sub *subscriber) {
	defer func() {
		select {
		case h.unregister <- sub:
		case <-h.done:
		}
		sub.conn.Close()
	}()
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}
