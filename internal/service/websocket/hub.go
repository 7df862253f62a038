package websocket

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yedell/color-challenge/internal/dto"
	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/model"
	"github.com/yedell/color-challenge/internal/service/render"
)

// HubService mirrors the viewer to websocket clients. It broadcasts every
// presented frame and turns client commands into viewer keys.
type HubService struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	keys       chan model.Key
	done       chan struct{}
	mutex      sync.RWMutex
	last       []byte
	encode     render.Encoder
	logger     *logger.Logger
}

// NewHubService creates a hub encoding frames with encode.
func NewHubService(encode render.Encoder, logger *logger.Logger) *HubService {
	return &HubService{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		keys:       make(chan model.Key, 1),
		done:       make(chan struct{}),
		encode:     encode,
		logger:     logger,
	}
}

// Run serves the hub until ctx ends, then disconnects every client.
func (h *HubService) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			last := h.last
			h.mutex.Unlock()
			h.logger.Info("Client connected. Total: %d", h.GetClientCount())
			if last != nil {
				h.send(client, last)
			}

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mutex.Unlock()
			h.logger.Info("Client disconnected. Total: %d", h.GetClientCount())

		case message := <-h.broadcast:
			h.mutex.Lock()
			h.last = message
			clients := make([]*websocket.Conn, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mutex.Unlock()
			for _, client := range clients {
				h.send(client, message)
			}

		case <-ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			h.mutex.Unlock()
			h.logger.Info("Hub stopped")
			return
		}
	}
}

// send writes message to client, dropping the client when it fails.
func (h *HubService) send(client *websocket.Conn, message []byte) {
	if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
		h.logger.Error("Error sending message: %v", err)
		h.mutex.Lock()
		delete(h.clients, client)
		h.mutex.Unlock()
		client.Close()
	}
}

// Register adds a client. It is a no-op once the hub stopped.
func (h *HubService) Register(client *websocket.Conn) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

func (h *HubService) Unregister(client *websocket.Conn) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends message to every client.
func (h *HubService) Broadcast(ctx context.Context, message []byte) error {
	select {
	case h.broadcast <- message:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Present encodes the view and broadcasts it as a dto.FrameMessage.
func (h *HubService) Present(ctx context.Context, view model.View) error {
	image, err := h.encode(view.Frame)
	if err != nil {
		return err
	}
	message, err := json.Marshal(dto.FrameMessage{
		Seq:   view.Frame.Seq,
		Color: view.Color,
		Title: view.Title,
		Image: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal frame %d: %w", view.Frame.Seq, err)
	}
	return h.Broadcast(ctx, message)
}

// PushKey queues a command from a client. While a key is still pending,
// further keys are dropped.
func (h *HubService) PushKey(key model.Key) bool {
	select {
	case h.keys <- key:
		return true
	default:
		h.logger.Warning("Dropping remote key %s: previous key still pending", key)
		return false
	}
}

// WaitKey returns the next key pushed by a client.
func (h *HubService) WaitKey(ctx context.Context) (model.Key, error) {
	select {
	case key := <-h.keys:
		return key, nil
	case <-ctx.Done():
		return model.KeyOther, ctx.Err()
	}
}

// GetClientCount returns the number of connected clients.
func (h *HubService) GetClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
