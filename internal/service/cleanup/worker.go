package cleanup

import (
	"log"
	"time"

	"github.com/gameofy/backend/internal/repository/postgres"
	"github.com/gameofy/backend/internal/service/game"
)

const (
	runInterval    = 1 * time.Hour
	sessionMaxDays = 30
)

// Worker periodically evicts stale in-memory game sessions and expired login
// sessions from the database.
type Worker struct {
	SessionManager    *game.SessionManager
	SessionRepository *postgres.SessionRepo
}

func NewWorker(sm *game.SessionManager, sr *postgres.SessionRepo) *Worker {
	return &Worker{SessionManager: sm, SessionRepository: sr}
}

// Start runs one cleanup immediately and then on a fixed interval.
func (w *Worker) Start() {
	go w.runCleanup()

	ticker := time.NewTicker(runInterval)
	go func() {
		for range ticker.C {
			w.runCleanup()
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

func (w *Worker) runCleanup() {
	log.Println("[CLEANUP] Starting scheduled cleanup task...")

	w.SessionManager.CleanupOldSessions()

	deletedCount, err := w.SessionRepository.CleanupOldSessions(sessionMaxDays)
	if err != nil {
		log.Printf("[CLEANUP] Error cleaning up DB sessions: %v", err)
	} else if deletedCount > 0 {
		log.Printf("[CLEANUP] Removed %d expired sessions from database", deletedCount)
	}
}
