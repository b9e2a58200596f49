// live.go — the websocket endpoint that streams recomputed round results to
// watchers. The socket is one-way: score entry goes through the HTTP API,
// and every accepted score fans out a fresh LiveUpdate to everyone watching
// that round.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"

	"github.com/trentd187/golf-wager/internal/logger"
	"github.com/trentd187/golf-wager/internal/websocket"
)

// RequireWebSocketUpgrade rejects plain HTTP requests on websocket routes.
func RequireWebSocketUpgrade(c *fiber.Ctx) error {
	if fiberws.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// RoundLive returns the handler for GET /ws/rounds/:id. Each connection is
// registered with the hub under its round and drains the hub's updates until
// either side closes.
func RoundLive(hub *websocket.Hub) fiber.Handler {
	return fiberws.New(func(conn *fiberws.Conn) {
		roundID := conn.Params("id")
		client := &websocket.Client{
			RoundID: roundID,
			Send:    make(chan []byte, 16),
		}
		hub.Register(client)
		logger.WithRound(roundID).Debug("watcher connected")

		// Reader goroutine: we ignore inbound frames but need the read
		// loop running to notice the peer going away.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					hub.Unregister(client)
					return
				}
			}
		}()

		for data := range client.Send {
			if err := conn.WriteMessage(fiberws.TextMessage, data); err != nil {
				break
			}
		}
		hub.Unregister(client)
		logger.WithRound(roundID).Debug("watcher disconnected")
	})
}
