package game

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// SessionManager tracks the live game sessions and the user-to-game index.
type SessionManager struct {
	Session    map[string]*GameSession
	UserToGame map[int64]string
	mu         sync.RWMutex
	repo       GameRepository
}

func NewSessionManager(repo GameRepository) *SessionManager {
	return &SessionManager{
		Session:    make(map[string]*GameSession),
		UserToGame: make(map[int64]string),
		repo:       repo,
	}
}

func (sm *SessionManager) CreateSession(player1ID int64, player1Username string, player2ID *int64, player2Username string, botDifficulty string, conn ConnectionManagerInterface) *GameSession {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session := NewGameSession(player1ID, player1Username, player2ID, player2Username, botDifficulty, conn, sm.repo, sm)
	gameID := session.GameID
	sm.Session[gameID] = session
	sm.UserToGame[player1ID] = gameID

	if player2ID != nil {
		sm.UserToGame[*player2ID] = gameID
	}

	log.Printf("[SESSION] Created session %s: %s (ID: %d) vs %s (ID: %v)\n",
		gameID, player1Username, player1ID, player2Username, player2ID)
	return session
}

func (sm *SessionManager) GetSessionByUserID(userID int64) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	gameID, exists := sm.UserToGame[userID]
	if !exists {
		return nil, false
	}

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) GetSessionByGameIDAndUserID(gameID string, userID int64) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	if !exists {
		return nil, false
	}

	if session.Player1ID == userID {
		return session, true
	}
	if session.Player2ID != nil && *session.Player2ID == userID {
		return session, true
	}

	return nil, false
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.Session[gameID]
	if !exists {
		return fmt.Errorf("session not found")
	}

	log.Printf("[SESSION] Removing session %s", gameID)

	delete(sm.UserToGame, session.Player1ID)
	if session.Player2ID != nil {
		delete(sm.UserToGame, *session.Player2ID)
	}

	delete(sm.Session, gameID)

	return nil
}

// ForceCleanupForUser ends whatever game the user is in. Called when a player
// joins the matchmaking queue while still attached to a session.
func (sm *SessionManager) ForceCleanupForUser(userID int64, conn ConnectionManagerInterface) {
	session, exists := sm.GetSessionByUserID(userID)
	if !exists {
		return
	}

	gameID := session.GameID

	session.mu.Lock()
	gameFinished := session.Game.IsFinished()

	if gameFinished {
		// Finished game lingering in its rematch window
		log.Printf("[SESSION] Cleaning up finished session %s for user %d (joining queue)", gameID, userID)
		if session.PostGameTimer != nil {
			session.PostGameTimer.Stop()
			session.PostGameTimer = nil
		}
		if session.RematchRequestTimer != nil {
			session.RematchRequestTimer.Stop()
			session.RematchRequestTimer = nil
		}
		session.RematchRequester = nil
		session.cleanupConnections(conn)
		session.mu.Unlock()
	} else {
		log.Printf("[SESSION] Abandoning active session %s for user %d (joining queue)", gameID, userID)
		session.mu.Unlock()
		session.TerminateSessionByAbandonment(userID, conn)
	}

	sm.RemoveSession(gameID)
}

// LiveGame is a spectator-facing summary of an ongoing human match.
type LiveGame struct {
	GameID    string
	Player1   string
	Player2   string
	MoveCount int
	StartedAt time.Time
}

// GetActiveGames lists ongoing human-vs-human matches. Bot games are not
// spectatable.
func (sm *SessionManager) GetActiveGames() []LiveGame {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	games := make([]LiveGame, 0)
	for _, session := range sm.Session {
		if session.IsBot() || session.Game.IsFinished() {
			continue
		}
		games = append(games, LiveGame{
			GameID:    session.GameID,
			Player1:   session.Player1Username,
			Player2:   session.Player2Username,
			MoveCount: session.Game.MoveCount,
			StartedAt: session.CreatedAt,
		})
	}
	return games
}

// CleanupOldSessions drops finished sessions past their rematch window and
// active sessions nobody has touched for a day.
func (sm *SessionManager) CleanupOldSessions() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := time.Now()

	for gameID, session := range sm.Session {
		stale := false
		if session.Game.IsFinished() {
			stale = now.Sub(session.FinishedAt) > 1*time.Hour
		} else {
			stale = now.Sub(session.CreatedAt) > 24*time.Hour
		}
		if !stale {
			continue
		}

		delete(sm.Session, gameID)
		delete(sm.UserToGame, session.Player1ID)
		if session.Player2ID != nil {
			delete(sm.UserToGame, *session.Player2ID)
		}
		count++
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
}
