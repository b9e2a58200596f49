// Package websocket implements the hub that pushes freshly recomputed round
// results to watchers. Every time a score is entered, the handlers rerun the
// engine and broadcast the new leaderboard, match standings and side-bet
// outcomes to every client watching that round, so a phone on the 14th tee
// shows the same numbers as the one that just entered the score — without
// polling.
//
// The hub only ever carries engine output. Score entry itself goes through
// the HTTP API; clients cannot write through the socket.
package websocket

import "sync"

// Client is one connected watcher of a single round.
type Client struct {
	RoundID string      // which round this client is watching
	Send    chan []byte // outgoing frames; the hub writes, the socket goroutine drains
}

// Update is one recomputed result snapshot destined for every watcher of a
// round. Data is the JSON-encoded results payload built by the handlers.
type Update struct {
	RoundID string
	Data    []byte
}

// Hub tracks every open connection, grouped by round. All map access happens
// under the mutex on the Run goroutine, fed through channels.
type Hub struct {
	watchers map[string]map[*Client]bool

	updates    chan *Update
	register   chan *Client
	unregister chan *Client

	mu sync.Mutex
}

// NewHub returns a hub ready to Run. The update channel is buffered so a
// score-entry handler never blocks on a momentarily busy hub; register and
// unregister stay unbuffered because connection lifecycle must apply
// synchronously.
func NewHub() *Hub {
	return &Hub{
		watchers:   make(map[string]map[*Client]bool),
		updates:    make(chan *Update, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the hub's event loop; call it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.watchers[client.RoundID] == nil {
				h.watchers[client.RoundID] = make(map[*Client]bool)
			}
			h.watchers[client.RoundID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.watchers[client.RoundID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.watchers, client.RoundID)
					}
				}
			}
			h.mu.Unlock()

		case update := <-h.updates:
			h.mu.Lock()
			clients := h.watchers[update.RoundID]
			for client := range clients {
				select {
				case client.Send <- update.Data:
				default:
					// The client's buffer is full; it is too slow to
					// keep, so drop it rather than stall the round.
					delete(clients, client)
					close(client.Send)
				}
			}
			if len(clients) == 0 {
				delete(h.watchers, update.RoundID)
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues a recomputed results payload for every watcher of the
// round. Called by the score-entry handler after the engine reruns.
func (h *Hub) Publish(roundID string, data []byte) {
	h.updates <- &Update{RoundID: roundID, Data: data}
}

// Register adds a newly connected watcher.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a watcher whose connection closed.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
