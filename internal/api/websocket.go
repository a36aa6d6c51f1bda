package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"grimm.is/spagen/internal/generator"
	"grimm.is/spagen/internal/i18n"
	"grimm.is/spagen/internal/metrics"
)

const wsWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Enforce same-origin policy for WebSocket upgrades
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			// No origin header (safe)
			return true
		}

		// Allow localhost for development/proxying
		if strings.Contains(origin, "://localhost:") || strings.Contains(origin, "://127.0.0.1:") {
			return true
		}

		// Strict same-origin check for others
		host := r.Host
		if len(origin) > 7 && origin[:7] == "http://" {
			return origin[7:] == host
		}
		if len(origin) > 8 && origin[:8] == "https://" {
			return origin[8:] == host
		}
		return false
	},
}

// Live preview message types.
const (
	WSTypeDocument = "document"
	WSTypeError    = "error"
)

// WSMessage is one reply on the live preview socket.
type WSMessage struct {
	Type   string          `json:"type"`
	Data   *RenderResponse `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
	Fields []string        `json:"fields,omitempty"`
}

// handleWS renders every text frame the client sends and answers with the
// document or the reason it could not be rendered.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.registry.WSClients.Inc()
	defer s.registry.WSClients.Dec()

	conn.SetReadLimit(s.config.MaxBodyBytes)
	p := i18n.GetPrinter(r.Context())

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read failed", "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var reply WSMessage
		var v generator.FormValues
		if err := json.Unmarshal(data, &v); err != nil {
			s.collector.ObserveFailure(metrics.SourceWebSocket, "bad_json")
			reply = WSMessage{Type: WSTypeError, Error: p.Sprintf(i18n.MsgInvalidBody, err)}
		} else if resp, err := s.render(r, v, metrics.SourceWebSocket); err != nil {
			reply = WSMessage{Type: WSTypeError, Error: err.Error()}
			var missing *generator.MissingFieldsError
			if errors.As(err, &missing) {
				reply.Error = p.Sprintf(i18n.MsgMissingFields, strings.Join(missing.Fields, ", "))
				reply.Fields = missing.Fields
			}
		} else {
			reply = WSMessage{Type: WSTypeDocument, Data: &resp}
		}

		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Debug("websocket write failed", "error", err)
			return
		}
	}
}
