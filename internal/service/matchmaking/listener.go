package matchmaking

import (
	"log"

	"github.com/gameofy/backend/internal/service/game"
)

// MatchMakingListener consumes matches from the queue and spins up game
// sessions. Runs for the lifetime of the server.
func MatchMakingListener(queue *MatchmakingQueue, cm game.ConnectionManagerInterface, sm *game.SessionManager) {
	for match := range queue.MatchChannel {
		log.Printf("[MATCHMAKING] Match found: %s (ID: %d) vs %s (ID: %v)",
			match.Player1Username, match.Player1ID, match.Player2Username, match.Player2ID)

		// End any session the players are still attached to
		sm.ForceCleanupForUser(match.Player1ID, cm)
		if match.Player2ID != nil {
			sm.ForceCleanupForUser(*match.Player2ID, cm)
		}

		// CreateSession sends the game_start messages
		session := sm.CreateSession(match.Player1ID, match.Player1Username,
			match.Player2ID, match.Player2Username, match.BotDifficulty, cm)

		log.Printf("[MATCHMAKING] Match started between %s (ID: %d) and %s (ID: %v) with game ID %s",
			match.Player1Username, match.Player1ID, match.Player2Username, match.Player2ID, session.GameID)
	}
}
