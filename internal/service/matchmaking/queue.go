package matchmaking

import (
	"sync"
	"time"

	"github.com/gameofy/backend/internal/domain"
)

// botFallbackWait is how long a player sits alone in the queue before being
// paired with a bot.
const botFallbackWait = 10 * time.Second

type Match struct {
	Player1ID       int64
	Player1Username string
	Player2ID       *int64 // nil for a bot opponent
	Player2Username string
	BotDifficulty   string
}

// MatchmakingQueue pairs waiting players first-come-first-served and falls
// back to a bot when nobody shows up.
type MatchmakingQueue struct {
	waiting      map[int64]string // userID -> username
	timers       map[int64]*time.Timer
	mu           sync.Mutex
	MatchChannel chan Match
}

func NewMatchmakingQueue() *MatchmakingQueue {
	return &MatchmakingQueue{
		waiting:      make(map[int64]string),
		timers:       make(map[int64]*time.Timer),
		MatchChannel: make(chan Match, 100),
	}
}

// AddPlayerToQueue enqueues a player. If someone is already waiting the two
// are matched immediately, otherwise a bot-fallback timer starts.
func (m *MatchmakingQueue) AddPlayerToQueue(userID int64, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.waiting[userID]; exists {
		return nil
	}

	for opponentID, opponentUsername := range m.waiting {
		delete(m.waiting, opponentID)
		m.stopAndDeleteTimer(opponentID)

		m.MatchChannel <- Match{
			Player1ID:       opponentID,
			Player1Username: opponentUsername,
			Player2ID:       &userID,
			Player2Username: username,
		}
		return nil
	}

	m.waiting[userID] = username
	m.timers[userID] = time.AfterFunc(botFallbackWait, func() {
		m.handleTimeout(userID)
	})
	return nil
}

// EnqueueBotMatch skips the queue and pairs the player against the bot at the
// requested difficulty.
func (m *MatchmakingQueue) EnqueueBotMatch(userID int64, username, difficulty string) {
	if _, ok := domain.BotNames[difficulty]; !ok {
		difficulty = "medium"
	}
	m.MatchChannel <- Match{
		Player1ID:       userID,
		Player1Username: username,
		Player2ID:       nil,
		Player2Username: domain.GetBotName(difficulty),
		BotDifficulty:   difficulty,
	}
}

func (m *MatchmakingQueue) handleTimeout(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	username, exists := m.waiting[userID]
	if !exists {
		return
	}

	delete(m.waiting, userID)
	m.stopAndDeleteTimer(userID)

	m.MatchChannel <- Match{
		Player1ID:       userID,
		Player1Username: username,
		Player2ID:       nil,
		Player2Username: domain.GetBotName("medium"),
		BotDifficulty:   "medium",
	}
}

// RemovePlayer drops a player from the queue, stopping their fallback timer.
func (m *MatchmakingQueue) RemovePlayer(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.waiting, userID)
	m.stopAndDeleteTimer(userID)
}

// WaitingCount reports how many players are in the queue.
func (m *MatchmakingQueue) WaitingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.waiting)
}

func (m *MatchmakingQueue) stopAndDeleteTimer(userID int64) {
	if timer := m.timers[userID]; timer != nil {
		timer.Stop()
	}
	delete(m.timers, userID)
}
