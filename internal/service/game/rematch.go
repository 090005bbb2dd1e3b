package game

import (
	"fmt"
	"log"
	"time"

	"github.com/gameofy/backend/internal/config"
	"github.com/gameofy/backend/internal/domain"
)

// StartPostGameTimer opens the rematch window. When it expires the session is
// torn down and both connections are closed.
func (gs *GameSession) StartPostGameTimer(conn ConnectionManagerInterface) {
	gs.PostGameTimer = time.AfterFunc(config.AppConfig.RematchWindow, func() {
		gs.mu.Lock()

		log.Printf("[POST_GAME] Rematch window expired for game %s, closing connections", gs.GameID)

		if gs.RematchRequestTimer != nil {
			gs.RematchRequestTimer.Stop()
			gs.RematchRequestTimer = nil
		}

		gs.cleanupConnections(conn)
		gameID := gs.GameID
		sm := gs.sessionManager
		gs.mu.Unlock()

		// Remove session so UserToGame doesn't linger
		if sm != nil {
			sm.RemoveSession(gameID)
		}
	})
	log.Printf("[POST_GAME] Started post-game timer for game %s", gs.GameID)
}

// HandleRematchRequest processes a rematch request from a player. Bot games
// restart immediately; human games ask the opponent first.
func (gs *GameSession) HandleRematchRequest(userID int64, conn ConnectionManagerInterface, sessionManager *SessionManager) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if !gs.Game.IsFinished() {
		return fmt.Errorf("cannot request rematch - game still in progress")
	}

	if _, isPlayer := gs.GetPlayerID(userID); !isPlayer {
		return fmt.Errorf("you are not a player in this game")
	}

	if gs.RematchRequester != nil {
		return fmt.Errorf("rematch already requested")
	}

	requesterUsername := gs.GetUsernameByUserID(userID)

	if gs.IsBot() {
		log.Printf("[REMATCH] Bot game rematch requested by %s (ID: %d)", requesterUsername, userID)
		return gs.CreateRematchGame(conn, sessionManager)
	}

	gs.RematchRequester = &userID
	opponentID := gs.GetOpponentID(userID)

	if opponentID == nil {
		return fmt.Errorf("opponent not found")
	}

	log.Printf("[REMATCH] %s (ID: %d) requested rematch in game %s", requesterUsername, userID, gs.GameID)

	conn.SendMessage(*opponentID, domain.ServerMessage{
		Type:             "rematch_request",
		RematchRequester: requesterUsername,
		RematchTimeout:   int(rematchAcceptWait.Seconds()),
	})

	gs.RematchRequestTimer = time.AfterFunc(rematchAcceptWait, func() {
		gs.mu.Lock()

		log.Printf("[REMATCH] Request timeout for game %s", gs.GameID)

		allowRematch := false
		timeoutMsg := domain.ServerMessage{
			Type:         "rematch_timeout",
			Message:      "Rematch request timed out",
			AllowRematch: &allowRematch,
		}
		conn.SendMessage(userID, timeoutMsg)
		conn.SendMessage(*opponentID, timeoutMsg)

		gs.RematchRequester = nil
		gs.cleanupConnections(conn)

		if gs.PostGameTimer != nil {
			gs.PostGameTimer.Stop()
			gs.PostGameTimer = nil
		}

		gameID := gs.GameID
		gs.mu.Unlock()

		sessionManager.RemoveSession(gameID)
	})

	return nil
}

// HandleRematchResponse processes the opponent's accept/decline.
func (gs *GameSession) HandleRematchResponse(userID int64, response string, conn ConnectionManagerInterface, sessionManager *SessionManager) error {
	gs.mu.Lock()

	if gs.RematchRequester == nil {
		gs.mu.Unlock()
		return fmt.Errorf("no pending rematch request")
	}

	if userID == *gs.RematchRequester {
		gs.mu.Unlock()
		return fmt.Errorf("cannot respond to your own rematch request")
	}

	if _, isPlayer := gs.GetPlayerID(userID); !isPlayer {
		gs.mu.Unlock()
		return fmt.Errorf("you are not a player in this game")
	}

	if gs.RematchRequestTimer != nil {
		gs.RematchRequestTimer.Stop()
		gs.RematchRequestTimer = nil
	}

	requesterID := *gs.RematchRequester
	responderUsername := gs.GetUsernameByUserID(userID)

	if response == "accept" {
		log.Printf("[REMATCH] %s (ID: %d) accepted rematch in game %s", responderUsername, userID, gs.GameID)

		acceptedMsg := domain.ServerMessage{
			Type:    "rematch_accepted",
			Message: "Rematch accepted",
		}
		conn.SendMessage(requesterID, acceptedMsg)
		conn.SendMessage(userID, acceptedMsg)

		gs.mu.Unlock()
		return gs.CreateRematchGame(conn, sessionManager)
	}

	log.Printf("[REMATCH] %s (ID: %d) declined rematch in game %s", responderUsername, userID, gs.GameID)

	allowRematch := false
	declinedMsg := domain.ServerMessage{
		Type:         "rematch_declined",
		Message:      "Rematch request declined",
		AllowRematch: &allowRematch,
	}
	conn.SendMessage(requesterID, declinedMsg)
	conn.SendMessage(userID, declinedMsg)

	gs.RematchRequester = nil
	gs.cleanupConnections(conn)

	if gs.PostGameTimer != nil {
		gs.PostGameTimer.Stop()
		gs.PostGameTimer = nil
	}

	gameID := gs.GameID
	gs.mu.Unlock()
	sessionManager.RemoveSession(gameID)
	return nil
}

func (gs *GameSession) CancelRematchRequest(conn ConnectionManagerInterface) {
	if gs.RematchRequester == nil {
		return
	}

	log.Printf("[REMATCH] Cancelling rematch request for game %s", gs.GameID)

	if gs.RematchRequestTimer != nil {
		gs.RematchRequestTimer.Stop()
		gs.RematchRequestTimer = nil
	}

	requesterID := *gs.RematchRequester
	opponentID := gs.GetOpponentID(requesterID)

	if opponentID != nil && !gs.IsBot() {
		conn.SendMessage(*opponentID, domain.ServerMessage{
			Type:    "rematch_cancelled",
			Message: "Rematch request cancelled",
		})
	}

	gs.RematchRequester = nil
}

// CreateRematchGame tears the finished session down and starts a fresh one
// with the same seats.
func (gs *GameSession) CreateRematchGame(conn ConnectionManagerInterface, sessionManager *SessionManager) error {
	if gs.PostGameTimer != nil {
		gs.PostGameTimer.Stop()
		gs.PostGameTimer = nil
	}
	if gs.RematchRequestTimer != nil {
		gs.RematchRequestTimer.Stop()
		gs.RematchRequestTimer = nil
	}

	log.Printf("[REMATCH] Starting new game for %s and %s", gs.Player1Username, gs.Player2Username)

	sessionManager.RemoveSession(gs.GameID)
	sessionManager.CreateSession(gs.Player1ID, gs.Player1Username, gs.Player2ID, gs.Player2Username, gs.BotDifficulty, conn)

	return nil
}
