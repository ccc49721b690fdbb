package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hospitalops/pulse/pkg/domain/interfaces"
	"github.com/hospitalops/pulse/pkg/domain/model/auth"
	websocket_model "github.com/hospitalops/pulse/pkg/domain/model/websocket"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/utils/logging"
)

// Handler upgrades dashboard connections and wires them into the hub.
type Handler struct {
	hub      *Hub
	useCases interfaces.AlertUsecases
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, useCases interfaces.AlertUsecases) *Handler {
	return &Handler{
		hub:      hub,
		useCases: useCases,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The dashboard is served from the same origin; bearer auth
				// happens before the upgrade.
				return true
			},
		},
	}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
)

// HandleAlertStream handles websocket connections for the alert stream.
func (h *Handler) HandleAlertStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.From(ctx)

	userID := auth.UserIDFromContext(ctx)
	if userID == types.EmptyUserID {
		logger.Warn("missing user in websocket request")
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("failed to upgrade connection",
			"error", err,
			"user_id", userID)
		// Upgrader may have already written headers
		return
	}

	logger.Info("WebSocket connection established", "user_id", userID)

	client := h.hub.NewClient(conn, userID)
	h.hub.Register(client)

	go h.writePump(client)
	go h.readPump(client)
}

// readPump pumps messages from the websocket connection to the hub.
func (h *Handler) readPump(client *Client) {
	logger := logging.From(client.ctx)

	defer func() {
		h.hub.Unregister(client)
		if err := client.conn.Close(); err != nil {
			logger.Debug("failed to close connection in readPump", "error", err)
		}
	}()

	client.conn.SetReadLimit(maxMessageSize)
	if err := client.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Error("failed to set read deadline", "error", err)
		return
	}
	client.conn.SetPongHandler(func(string) error {
		if err := client.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Error("failed to set read deadline in pong handler", "error", err)
		}
		return nil
	})

	for {
		select {
		case <-client.ctx.Done():
			return
		default:
		}

		_, messageBytes, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("unexpected WebSocket close", "error", err)
			}
			break
		}

		var ev websocket_model.Event
		if err := ev.FromBytes(messageBytes); err != nil {
			logger.Warn("invalid message format", "error", err)
			h.sendErrorToClient(client, "Invalid message format")
			continue
		}

		if !ev.IsValidClientType() {
			logger.Warn("invalid message type", "type", ev.Type)
			h.sendErrorToClient(client, "Invalid message type")
			continue
		}

		switch ev.Type {
		case websocket_model.EventPing:
			h.sendToClient(client, websocket_model.PongEvent())

		case websocket_model.EventAcknowledgeAlert:
			if err := h.handleAcknowledge(client, &ev); err != nil {
				logger.Error("failed to handle acknowledge", "error", err, "alert_id", ev.AlertID)
				h.sendErrorToClient(client, "Failed to acknowledge alert")
			}
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (h *Handler) writePump(client *Client) {
	logger := logging.From(client.ctx)

	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		if err := client.conn.Close(); err != nil {
			logger.Debug("failed to close connection in writePump", "error", err)
		}
	}()

	// Snapshot the channel once: the hub nils the field under client.mu
	// when it drops the client, and a closed channel ends the pump anyway.
	client.mu.Lock()
	send := client.send
	client.mu.Unlock()
	if send == nil {
		return
	}

	for {
		select {
		case <-client.ctx.Done():
			return

		case message, ok := <-send:
			if err := client.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Error("failed to set write deadline", "error", err)
				return
			}
			if !ok {
				// The hub closed the channel
				if err := client.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Debug("failed to write close message", "error", err)
				}
				return
			}

			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Error("failed to write message", "error", err)
				return
			}

			// Flush queued messages as separate websocket frames
			n := len(send)
			for i := 0; i < n; i++ {
				queued := <-send
				if err := client.conn.WriteMessage(websocket.TextMessage, queued); err != nil {
					logger.Error("failed to write queued message", "error", err)
					return
				}
			}

		case <-ticker.C:
			if err := client.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Error("failed to set write deadline for ping", "error", err)
				return
			}
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleAcknowledge applies an acknowledge-alert message from a dashboard.
// The usecase broadcasts the authoritative alert-updated event to every
// session, which is how simultaneously open dashboards converge.
func (h *Handler) handleAcknowledge(client *Client, ev *websocket_model.Event) error {
	ctx := client.ctx

	if _, err := h.useCases.AcknowledgeAlert(ctx, ev.AlertID, client.userID); err != nil {
		return err
	}
	return nil
}

func (h *Handler) sendErrorToClient(client *Client, message string) {
	h.sendToClient(client, websocket_model.ErrorEvent(message))
}

func (h *Handler) sendToClient(client *Client, ev *websocket_model.Event) {
	data, err := ev.ToBytes()
	if err != nil {
		return
	}

	client.mu.Lock()
	send := client.send
	client.mu.Unlock()
	if send == nil {
		return
	}

	select {
	case send <- data:
	default:
		// Client's send channel is full, ignore
	}
}
