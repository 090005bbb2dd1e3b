package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/gameofy/backend/internal/domain"
	"github.com/gameofy/backend/internal/service/game"
	"github.com/gameofy/backend/internal/service/matchmaking"
	"github.com/gameofy/backend/internal/service/session"
)

const (
	readDeadline = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler holds the WebSocket endpoint's dependencies.
type Handler struct {
	ConnManager    *ConnectionManager
	Matchmaking    *matchmaking.MatchmakingQueue
	SessionManager *game.SessionManager
	AuthService    *session.AuthService
	Upgrader       websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, mq *matchmaking.MatchmakingQueue, sm *game.SessionManager, as *session.AuthService) *Handler {
	return &Handler{
		ConnManager:    cm,
		Matchmaking:    mq,
		SessionManager: sm,
		AuthService:    as,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades the HTTP request and hands it to the connection loop.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection.
// The first message must be an init carrying a valid JWT.
func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(readDeadline))

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for range ticker.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}()

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	var userID int64
	var username string
	var sessionID string

	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[WS] Read error during init: %v", err)
		conn.Close()
		return
	}

	var message domain.ClientMessage
	if err := json.Unmarshal(data, &message); err != nil {
		log.Printf("[WS] Invalid JSON during init: %v", err)
		conn.Close()
		return
	}

	if message.Type != "init" || message.JWT == "" {
		log.Printf("[WS] Missing initialization or token")
		conn.Close()
		return
	}

	claims, err := h.AuthService.ValidateToken(message.JWT)
	if err != nil {
		log.Printf("[WS] Invalid token during init: %v", err)
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "Invalid token or session expired"})
		conn.Close()
		return
	}
	userID = claims.UserID
	username = claims.Username
	sessionID = claims.SessionID

	log.Printf("[WS] Connection initialized for user: %s (ID: %d)", username, userID)

	h.ConnManager.AddConnection(userID, conn, username)

	defer func() {
		log.Printf("[WS] Connection closed for user %s", username)
		h.Matchmaking.RemovePlayer(userID)

		if gameSession, exists := h.SessionManager.GetSessionByUserID(userID); exists {
			gameSession.HandleDisconnect(userID, h.ConnManager, h.SessionManager)
		}

		h.ConnManager.RemoveConnectionIfMatching(userID, conn)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] User disconnected unexpectedly: %v", err)
			}
			break
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			continue
		}

		// Per-message session validation: a login from another device
		// invalidates this connection on its next message.
		if msg.JWT != "" {
			claims, err := h.AuthService.ValidateToken(msg.JWT)
			if err != nil {
				log.Printf("[WS] Invalid token for user %d: %v", userID, err)
				h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "Session invalidated"})
				return
			}
			if claims.UserID != userID {
				log.Printf("[WS] User mismatch: expected %d, got %d", userID, claims.UserID)
				h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "User mismatch"})
				return
			}
			sessionID = claims.SessionID
		} else if !h.sessionStillActive(userID, sessionID) {
			return
		}

		h.processMessage(userID, msg)
	}
}

// sessionStillActive confirms the connection's session is both live and the
// user's current one.
func (h *Handler) sessionStillActive(userID int64, sessionID string) bool {
	sess, err := h.AuthService.GetSession(sessionID)
	if err != nil {
		log.Printf("[WS] Session lookup error for sessionID=%s, userID=%d: %v", sessionID, userID, err)
		h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "Session lookup failed"})
		return false
	}
	if sess == nil || !sess.IsActive {
		log.Printf("[WS] Session gone or inactive: sessionID=%s, userID=%d", sessionID, userID)
		h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "Session expired or logged out"})
		return false
	}

	activeSession, err := h.AuthService.GetActiveSession(userID)
	if err != nil {
		log.Printf("[WS] Active session lookup error for userID=%d: %v", userID, err)
		return true
	}
	if activeSession == nil {
		log.Printf("[WS] No active session found for userID=%d", userID)
		h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "No active session"})
		return false
	}
	if activeSession.SessionID != sessionID {
		log.Printf("[WS] Session mismatch: current=%s, active=%s, userID=%d - User logged in from another device",
			sessionID, activeSession.SessionID, userID)
		h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "Logged in from another device"})
		return false
	}
	return true
}

// processMessage routes game actions.
func (h *Handler) processMessage(userID int64, msg domain.ClientMessage) {
	switch msg.Type {
	case "find_match":
		// End any session the user is still attached to before queueing
		h.SessionManager.ForceCleanupForUser(userID, h.ConnManager)

		username, _ := h.ConnManager.GetUsername(userID)
		if err := h.Matchmaking.AddPlayerToQueue(userID, username); err != nil {
			h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "Failed to join queue"})
		} else {
			h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "queue_joined"})
		}

	case "play_bot":
		h.SessionManager.ForceCleanupForUser(userID, h.ConnManager)

		username, _ := h.ConnManager.GetUsername(userID)
		h.Matchmaking.EnqueueBotMatch(userID, username, msg.Difficulty)

	case "cancel_search":
		h.Matchmaking.RemovePlayer(userID)
		h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "queue_left"})

	case "make_move":
		gameSession, exists := h.SessionManager.GetSessionByUserID(userID)
		if !exists {
			h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "Game not found"})
			return
		}
		if msg.Cell == nil {
			h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "Missing cell"})
			return
		}

		if err := gameSession.HandleMove(userID, *msg.Cell, h.ConnManager); err != nil {
			h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: err.Error()})
		}

	case "request_rematch":
		gameSession, exists := h.SessionManager.GetSessionByUserID(userID)
		if !exists {
			h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "Game not found"})
			return
		}
		if err := gameSession.HandleRematchRequest(userID, h.ConnManager, h.SessionManager); err != nil {
			h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: err.Error()})
		}

	case "rematch_response":
		gameSession, exists := h.SessionManager.GetSessionByUserID(userID)
		if !exists {
			h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "Game not found"})
			return
		}
		if err := gameSession.HandleRematchResponse(userID, msg.RematchResponse, h.ConnManager, h.SessionManager); err != nil {
			h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: err.Error()})
		}

	case "abandon_game":
		gameSession, exists := h.SessionManager.GetSessionByUserID(userID)
		if !exists {
			return
		}
		gameSession.TerminateSessionByAbandonment(userID, h.ConnManager)
	}
}
