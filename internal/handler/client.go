package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/model"
	wsservice "github.com/yedell/color-challenge/internal/service/websocket"
)

const (
	// viewerReadLimit caps the size of a client command.
	viewerReadLimit = 512
	// viewerIdleTimeout drops clients that stay silent for this long.
	viewerIdleTimeout = 10 * time.Minute
)

// Upgrader upgrades HTTP connections to WebSocket; CheckOrigin allows all origins.
var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ViewWebsocketHandler registers viewer connections in the HubService so
// they receive every displayed frame. Text messages "next" and "quit" drive
// the viewer like the keyboard does.
func ViewWebsocketHandler(hub *wsservice.HubService, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		connection.SetReadLimit(viewerReadLimit)
		connection.SetReadDeadline(time.Now().Add(viewerIdleTimeout))

		hub.Register(connection)
		defer hub.Unregister(connection)

		logger.Info("Viewer connected from %s", r.RemoteAddr)

		for {
			messageType, message, err := connection.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Info("Viewer disconnected normally")
				} else {
					logger.Warning("Viewer disconnected: %v", err)
				}
				return
			}
			connection.SetReadDeadline(time.Now().Add(viewerIdleTimeout))

			if messageType != websocket.TextMessage {
				continue
			}
			key := model.ParseKey(string(message))
			if key == model.KeyOther {
				logger.Warning("Ignoring viewer command %q", message)
				continue
			}
			hub.PushKey(key)
		}
	}
}
