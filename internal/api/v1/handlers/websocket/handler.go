// Package websocket carries the interactive variant of the chat
// endpoint: one localized exchange per frame over a persistent
// connection, with ping/pong keepalive.
package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lokbasha/lokbasha/internal/connections"
	"github.com/lokbasha/lokbasha/internal/infrastructure/genai"
	"github.com/lokbasha/lokbasha/internal/services/localize"
	"github.com/lokbasha/lokbasha/internal/services/session"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The widget may be embedded on third-party pages.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type inboundFrame struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

type outboundFrame struct {
	Reply    string `json:"reply,omitempty"`
	Language string `json:"language,omitempty"`
	Pivoted  bool   `json:"pivoted,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HandleChat upgrades the request and answers chat frames until the
// client goes away.
func HandleChat(manager *connections.Manager, localizeService *localize.Service, sessionService *session.Service, w http.ResponseWriter, r *http.Request) {
	claims, err := sessionService.ValidateSession(r)
	if err != nil {
		http.Error(w, "Service temporarily unavailable", http.StatusServiceUnavailable)
		return
	}
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	if !manager.Add(conn, claims.SessionID) {
		log.Warn().Str("client_ip", r.RemoteAddr).Msg("Session already has an active chat connection")
		conn.WriteJSON(outboundFrame{Error: "This session already has an active chat connection"})
		conn.Close()
		return
	}
	defer func() {
		manager.Remove(conn)
		conn.Close()
	}()

	timeouts := manager.GetTimeouts()
	conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))
	})

	// Keepalive pings run alongside the read loop.
	done := make(chan struct{})
	defer close(done)
	go pingLoop(conn, timeouts, done)

	log.Info().
		Str("client_ip", r.RemoteAddr).
		Int("active_connections", manager.Count()).
		Msg("WebSocket chat connected")

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("WebSocket closed unexpectedly")
			}
			return
		}

		history, err := sessionService.History(r.Context(), claims.SessionID)
		if err != nil {
			history = nil
		}

		result, err := localizeService.Localize(r.Context(), frame.Message, frame.Language, history)

		conn.SetWriteDeadline(time.Now().Add(timeouts.WriteWait))
		if err != nil {
			if writeErr := conn.WriteJSON(outboundFrame{Error: err.Error()}); writeErr != nil {
				return
			}
			continue
		}

		if err := sessionService.AppendHistory(r.Context(), claims.SessionID,
			genai.Message{Role: "user", Content: frame.Message},
			genai.Message{Role: "assistant", Content: result.Reply},
		); err != nil {
			log.Error().Err(err).Msg("Failed to store session history")
		}

		if err := conn.WriteJSON(outboundFrame{
			Reply:    result.Reply,
			Language: result.Language,
			Pivoted:  result.Pivoted,
		}); err != nil {
			return
		}
	}
}

func pingLoop(conn *websocket.Conn, timeouts connections.TimeoutConfig, done <-chan struct{}) {
	ticker := time.NewTicker(timeouts.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(timeouts.WriteWait)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}
