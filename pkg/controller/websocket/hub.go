package websocket

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hospitalops/pulse/pkg/domain/interfaces"
	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	websocket_model "github.com/hospitalops/pulse/pkg/domain/model/websocket"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/utils/logging"
)

// Hub maintains the set of connected dashboard sessions and broadcasts
// alert events to all of them. Every dashboard sees every alert, so there
// is a single broadcast group.
type Hub struct {
	// Registered clients indexed by client ID
	clients map[string]*Client

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Message to broadcast to all connected clients
	broadcast chan []byte

	// Mutex to protect concurrent access to the clients map
	mu sync.RWMutex

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	hub *Hub

	conn *websocket.Conn

	// Buffered channel of outbound messages
	send chan []byte

	// User behind the connection
	userID types.UserID

	// Unique client ID for this connection
	clientID string

	ctx    context.Context
	cancel context.CancelFunc

	// Mutex to protect send channel against double close
	mu sync.Mutex
}

const (
	// Maximum message size allowed from peer (64KB)
	maxMessageSize = 64 * 1024

	// Buffer size for client send channel
	clientSendBufferSize = 256
)

var _ interfaces.AlertNotifier = &Hub{}

func NewHub(ctx context.Context) *Hub {
	ctx, cancel := context.WithCancel(ctx)
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	logger := logging.From(h.ctx)
	logger.Info("WebSocket hub started")

	defer func() {
		logger.Info("WebSocket hub stopped")
		h.cancel()
	}()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastToAll(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	logger := logging.From(h.ctx)

	h.clients[client.clientID] = client

	logger.Info("Dashboard client registered",
		"user_id", client.userID,
		"client_id", client.clientID,
		"total_clients", len(h.clients))

	welcome := websocket_model.StatusEvent("Connected to alert stream")
	if data, err := welcome.ToBytes(); err == nil {
		select {
		case client.send <- data:
		default:
			h.closeClientSend(client)
			delete(h.clients, client.clientID)
		}
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	logger := logging.From(h.ctx)

	if _, exists := h.clients[client.clientID]; exists {
		delete(h.clients, client.clientID)
		h.closeClientSend(client)

		logger.Info("Dashboard client unregistered",
			"user_id", client.userID,
			"client_id", client.clientID,
			"remaining_clients", len(h.clients))
	}

	client.cancel()
}

func (h *Hub) closeClientSend(client *Client) {
	client.mu.Lock()
	defer client.mu.Unlock()
	if client.send != nil {
		close(client.send)
		client.send = nil
	}
}

func (h *Hub) broadcastToAll(message []byte) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		client.mu.Lock()
		send := client.send
		client.mu.Unlock()
		if send == nil {
			continue
		}

		select {
		case send <- message:
		default:
			// Client's send channel is full. Remove it inline: this runs
			// on the hub loop, the only reader of the unregister channel,
			// so going through Unregister would block the loop on itself.
			h.mu.Lock()
			delete(h.clients, client.clientID)
			h.mu.Unlock()
			h.closeClientSend(client)
			client.cancel()

			logging.From(h.ctx).Warn("Dropping slow dashboard client",
				"user_id", client.userID,
				"client_id", client.clientID)
		}
	}
}

// Broadcast sends a raw message to all connected clients.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	case <-h.ctx.Done():
	}
}

// NotifyNewAlert broadcasts a new-alert event to every session.
func (h *Hub) NotifyNewAlert(a *alert.Alert) {
	h.sendEvent(websocket_model.NewAlertEvent(a))
}

// NotifyAlertUpdated broadcasts an alert-updated event to every session.
func (h *Hub) NotifyAlertUpdated(a *alert.Alert) {
	h.sendEvent(websocket_model.AlertUpdatedEvent(a))
}

func (h *Hub) sendEvent(ev *websocket_model.Event) {
	data, err := ev.ToBytes()
	if err != nil {
		logging.From(h.ctx).Error("failed to marshal event", logging.ErrAttr(err))
		return
	}
	h.Broadcast(data)
}

// ClientCount returns the number of connected dashboard sessions.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// NewClient creates a client for an upgraded connection.
func (h *Hub) NewClient(conn *websocket.Conn, userID types.UserID) *Client {
	ctx, cancel := context.WithCancel(h.ctx)

	return &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, clientSendBufferSize),
		userID:   userID,
		clientID: generateClientID(userID),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Register registers a client with the hub.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
		h.closeClientSend(client)
	}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// Close gracefully shuts down the hub.
func (h *Hub) Close() error {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		client.cancel()
		h.closeClientSend(client)
	}
	h.clients = make(map[string]*Client)

	return nil
}

func generateClientID(userID types.UserID) string {
	timestamp := time.Now().Unix()
	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		// Fallback to timestamp-based ID if random generation fails
		return fmt.Sprintf("client_%s_%d", userID, timestamp)
	}
	return fmt.Sprintf("client_%s_%d_%s", userID, timestamp, hex.EncodeToString(randomBytes))
}
