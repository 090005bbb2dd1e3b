package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gameofy/backend/internal/domain"
)

const writeTimeout = 10 * time.Second

// ConnectionManager tracks active WebSocket connections per user.
type ConnectionManager struct {
	connections map[int64]*websocket.Conn
	usernames   map[int64]string

	// conn.WriteJSON is not safe for concurrent use, so every socket gets
	// its own write mutex.
	writeMu map[int64]*sync.Mutex

	mu sync.RWMutex // protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[int64]*websocket.Conn),
		usernames:   make(map[int64]string),
		writeMu:     make(map[int64]*sync.Mutex),
	}
}

// AddConnection registers a connection, closing any previous one the user had.
func (cm *ConnectionManager) AddConnection(userID int64, conn *websocket.Conn, username string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[userID]; exists {
		oldConn.Close()
	}

	cm.connections[userID] = conn
	cm.usernames[userID] = username
	cm.writeMu[userID] = &sync.Mutex{}
}

// RemoveConnection closes and forgets a user's connection.
func (cm *ConnectionManager) RemoveConnection(userID int64) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, exists := cm.connections[userID]; exists {
		conn.Close()
		delete(cm.connections, userID)
		delete(cm.usernames, userID)
		delete(cm.writeMu, userID)
	}
}

// RemoveConnectionIfMatching only removes the given socket, so cleanup of a
// stale connection cannot tear down a newer one.
func (cm *ConnectionManager) RemoveConnectionIfMatching(userID int64, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if currentConn, exists := cm.connections[userID]; exists && currentConn == conn {
		currentConn.Close()
		delete(cm.connections, userID)
		delete(cm.usernames, userID)
		delete(cm.writeMu, userID)
	}
}

func (cm *ConnectionManager) IsCurrentConnection(userID int64, conn *websocket.Conn) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	currentConn, exists := cm.connections[userID]
	return exists && currentConn == conn
}

// SendMessage writes a JSON message to one user's socket.
func (cm *ConnectionManager) SendMessage(userID int64, message domain.ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[userID]
	mu, muExists := cm.writeMu[userID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil // user disconnected, ignore
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(message)
}

// BroadcastMessage sends a message to all connected users.
func (cm *ConnectionManager) BroadcastMessage(message domain.ServerMessage) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	for userID := range cm.connections {
		// one slow user must not block the broadcast
		go func(uid int64) {
			cm.SendMessage(uid, message)
		}(userID)
	}
}

// DisconnectUser notifies the user and closes their socket.
func (cm *ConnectionManager) DisconnectUser(userID int64, reason string) {
	_ = cm.SendMessage(userID, domain.ServerMessage{
		Type:    "force_disconnect",
		Message: reason,
	})
	cm.RemoveConnection(userID)
}

// GetUsername returns the username for a connected user.
func (cm *ConnectionManager) GetUsername(userID int64) (string, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	name, exists := cm.usernames[userID]
	return name, exists
}
