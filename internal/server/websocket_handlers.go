package server

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles GET /api/ws: the feed event stream. Clients hold
// the connection open and refresh their feed when events arrive; nothing the
// client writes is interpreted.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDVal := conn.Locals("userID")
		userID, ok := userIDVal.(string)
		if !ok || userID == "" {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("websocket: failed to register user %s: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		welcome, merr := json.Marshal(map[string]interface{}{
			"type":    "connected",
			"payload": map[string]interface{}{"user_id": userID},
		})
		if merr == nil {
			client.TrySend(welcome)
		}

		go client.WritePump()

		// Read pump runs in the handler goroutine; it returns when the
		// connection drops and unregisters the client.
		client.ReadPump()
	})
}
