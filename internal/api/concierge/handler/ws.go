package conciergeHandler

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"

	"ConciergeGolang/internal/api/concierge"
	contextPkg "ConciergeGolang/pkg/context"
	"ConciergeGolang/pkg/log"
)

type wsError struct {
	Error string `json:"error"`
}

// ChatStream runs the same classify-and-respond cycle as the HTTP endpoint
// over one long-lived websocket, so the kiosk client avoids a request
// round-trip per message. Each frame is one MessageRequest.
func (h *ConciergeHandler) ChatStream(conn *websocket.Conn) {
	defer conn.Close()

	for {
		var req concierge.MessageRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithFields(log.Fields{
					"error": err.Error(),
				}).Warn("Websocket chat closed unexpectedly")
			}
			return
		}

		if err := h.validator.Struct(req); err != nil {
			if writeErr := conn.WriteJSON(wsError{Error: "Validation failed: " + err.Error()}); writeErr != nil {
				return
			}
			continue
		}

		c, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), req.SessionID), 30*time.Second)
		res, err := h.conciergeService.HandleMessage(c, req)
		cancel()

		if err != nil {
			if writeErr := conn.WriteJSON(wsError{Error: err.Error()}); writeErr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(res); err != nil {
			h.log.WithFields(log.Fields{
				"session_id": req.SessionID,
				"error":      err.Error(),
			}).Warn("Failed to write websocket reply")
			return
		}
	}
}
