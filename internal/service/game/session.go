package game

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gameofy/backend/internal/config"
	"github.com/gameofy/backend/internal/domain"
	"github.com/gameofy/backend/internal/repository/postgres"
	"github.com/gameofy/backend/internal/service/bot"
	"github.com/gameofy/backend/pkg/uid"
)

// End-of-game reasons as stored and sent to clients.
const (
	ReasonEdgesConnected = "edges_connected"
	ReasonBoardFull      = "board_full"
	ReasonDisconnect     = "disconnect"
	ReasonSurrender      = "surrender"
)

const (
	rematchAcceptWait = 10 * time.Second
	botMoveDelay      = 500 * time.Millisecond
)

type ConnectionManagerInterface interface {
	SendMessage(userID int64, message domain.ServerMessage) error
	RemoveConnection(userID int64)
}

type GameRepository interface {
	SaveGame(res *postgres.GameResult, board []int) error
}

// GameSession is one live match: the game state, the two seats, and the
// post-game rematch bookkeeping. Player2ID is nil for bot games.
type GameSession struct {
	GameID              string
	Player1ID           int64
	Player1Username     string
	Player2ID           *int64
	Player2Username     string
	Game                *domain.Game
	PlayerMapping       map[int64]domain.PlayerID
	Reason              string
	CreatedAt           time.Time
	FinishedAt          time.Time
	BotDifficulty       string
	PostGameTimer       *time.Timer
	RematchRequester    *int64
	RematchRequestTimer *time.Timer
	mu                  sync.Mutex
	repo                GameRepository
	sessionManager      *SessionManager
}

func NewGameSession(player1ID int64, player1Username string, player2ID *int64, player2Username string, botDifficulty string, conn ConnectionManagerInterface, repo GameRepository, sm *SessionManager) *GameSession {
	gameID := uid.GenerateGameID()
	newGame := domain.NewGame(config.AppConfig.BoardSize)

	mapping := make(map[int64]domain.PlayerID)
	mapping[player1ID] = domain.Player1
	if player2ID != nil {
		mapping[*player2ID] = domain.Player2
	}

	gs := &GameSession{
		GameID:          gameID,
		Player1ID:       player1ID,
		Player1Username: player1Username,
		Player2ID:       player2ID,
		Player2Username: player2Username,
		Game:            newGame,
		PlayerMapping:   mapping,
		BotDifficulty:   botDifficulty,
		CreatedAt:       time.Now(),
		repo:            repo,
		sessionManager:  sm,
	}

	conn.SendMessage(player1ID, domain.ServerMessage{
		Type:        "game_start",
		GameID:      gs.GameID,
		Opponent:    player2Username,
		YourPlayer:  int(domain.Player1),
		CurrentTurn: int(gs.Game.CurrentPlayer),
		Board:       gs.Game.Board.CellInts(),
		BoardSize:   gs.Game.Board.Size,
	})

	if player2ID != nil {
		conn.SendMessage(*player2ID, domain.ServerMessage{
			Type:        "game_start",
			GameID:      gs.GameID,
			Opponent:    player1Username,
			YourPlayer:  int(domain.Player2),
			CurrentTurn: int(gs.Game.CurrentPlayer),
			Board:       gs.Game.Board.CellInts(),
			BoardSize:   gs.Game.Board.Size,
		})
	}

	return gs
}

func (gs *GameSession) GetPlayerID(userID int64) (domain.PlayerID, bool) {
	playerID, exists := gs.PlayerMapping[userID]
	return playerID, exists
}

func (gs *GameSession) GetUsername(playerID domain.PlayerID) string {
	if playerID == domain.Player1 {
		return gs.Player1Username
	}
	return gs.Player2Username
}

func (gs *GameSession) GetUsernameByUserID(userID int64) string {
	if userID == gs.Player1ID {
		return gs.Player1Username
	}
	return gs.Player2Username
}

func (gs *GameSession) GetOpponentUsername(userID int64) string {
	if userID == gs.Player1ID {
		return gs.Player2Username
	}
	return gs.Player1Username
}

func (gs *GameSession) GetOpponentID(userID int64) *int64 {
	if userID == gs.Player1ID {
		return gs.Player2ID
	}
	return &gs.Player1ID
}

func (gs *GameSession) IsBot() bool {
	return gs.Player2ID == nil
}

func (gs *GameSession) cleanupConnections(conn ConnectionManagerInterface) {
	conn.RemoveConnection(gs.Player1ID)
	if gs.Player2ID != nil {
		conn.RemoveConnection(*gs.Player2ID)
	}
}

// broadcast sends a message to both seats; bot games only have one.
func (gs *GameSession) broadcast(conn ConnectionManagerInterface, msg domain.ServerMessage) {
	conn.SendMessage(gs.Player1ID, msg)
	if gs.Player2ID != nil {
		conn.SendMessage(*gs.Player2ID, msg)
	}
}

// saveGameAsync persists the finished game off the hot path so game_over
// messages are not delayed by the database.
func (gs *GameSession) saveGameAsync(winnerID *int64, winnerUsername string) {
	res := &postgres.GameResult{
		GameID:          gs.GameID,
		Player1ID:       gs.Player1ID,
		Player1Username: gs.Player1Username,
		Player2ID:       gs.Player2ID,
		Player2Username: gs.Player2Username,
		WinnerID:        winnerID,
		WinnerUsername:  winnerUsername,
		Reason:          gs.Reason,
		TotalMoves:      gs.Game.MoveCount,
		DurationSeconds: int(gs.FinishedAt.Sub(gs.CreatedAt).Seconds()),
		BoardSize:       gs.Game.Board.Size,
		CreatedAt:       gs.CreatedAt,
		FinishedAt:      gs.FinishedAt,
	}
	board := gs.Game.Board.CellInts()

	go func() {
		if err := gs.repo.SaveGame(res, board); err != nil {
			log.Printf("[GAME] Error saving game %s: %v", res.GameID, err)
		} else {
			log.Printf("[GAME] Game %s saved successfully", res.GameID)
		}
	}()
}

// finishGameLocked wraps up a concluded game: records the outcome, tells both
// players, saves, and opens the rematch window. Caller holds gs.mu.
func (gs *GameSession) finishGameLocked(winnerID *int64, winnerUsername, reason string, conn ConnectionManagerInterface) {
	gs.FinishedAt = time.Now()
	gs.Reason = reason

	allowRematch := true
	gs.broadcast(conn, domain.ServerMessage{
		Type:         "game_over",
		Winner:       winnerUsername,
		Reason:       reason,
		Board:        gs.Game.Board.CellInts(),
		BoardSize:    gs.Game.Board.Size,
		AllowRematch: &allowRematch,
	})

	gs.saveGameAsync(winnerID, winnerUsername)
	gs.StartPostGameTimer(conn)
}

// HandleMove applies a player's stone placement and advances the game,
// triggering the bot's reply when applicable.
func (gs *GameSession) HandleMove(userID int64, cell domain.Coordinates, conn ConnectionManagerInterface) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	playerID, exists := gs.GetPlayerID(userID)
	if !exists {
		return fmt.Errorf("player not found in game")
	}

	if err := gs.Game.MakeMove(playerID, cell); err != nil {
		return err
	}

	gs.broadcast(conn, domain.ServerMessage{
		Type:      "move_made",
		Cell:      &cell,
		Player:    int(playerID),
		Board:     gs.Game.Board.CellInts(),
		BoardSize: gs.Game.Board.Size,
		NextTurn:  int(gs.Game.CurrentPlayer),
	})

	switch gs.Game.Status {
	case domain.StatusWon:
		winnerID := userID
		gs.finishGameLocked(&winnerID, gs.GetUsername(gs.Game.Winner), ReasonEdgesConnected, conn)
		return nil
	case domain.StatusDraw:
		gs.finishGameLocked(nil, "draw", ReasonBoardFull, conn)
		return nil
	}

	if gs.IsBot() && gs.Game.CurrentPlayer == domain.Player2 {
		go func() {
			// Small delay to feel natural
			time.Sleep(botMoveDelay)
			if err := gs.HandleBotMove(conn); err != nil {
				log.Printf("[BOT] Error handling bot move: %v", err)
			}
		}()
	}

	return nil
}

// HandleBotMove computes and applies the bot's reply. Entered from its own
// goroutine, so it re-checks the turn under the lock.
func (gs *GameSession) HandleBotMove(conn ConnectionManagerInterface) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.Game.CurrentPlayer != domain.Player2 || !gs.IsBot() || gs.Game.IsFinished() {
		return nil
	}

	difficulty := gs.BotDifficulty
	if difficulty == "" {
		difficulty = "medium"
	}

	move := bot.CalculateBestMove(gs.Game, difficulty, config.AppConfig.BotTimeBudgetMs)
	if move == nil {
		return fmt.Errorf("bot found no move in game %s", gs.GameID)
	}
	if err := gs.Game.MakeMove(domain.Player2, *move); err != nil {
		return err
	}

	gs.broadcast(conn, domain.ServerMessage{
		Type:      "move_made",
		Cell:      move,
		Player:    int(domain.Player2),
		Board:     gs.Game.Board.CellInts(),
		BoardSize: gs.Game.Board.Size,
		NextTurn:  int(gs.Game.CurrentPlayer),
	})

	switch gs.Game.Status {
	case domain.StatusWon:
		gs.finishGameLocked(nil, gs.Player2Username, ReasonEdgesConnected, conn)
	case domain.StatusDraw:
		gs.finishGameLocked(nil, "draw", ReasonBoardFull, conn)
	}

	return nil
}

// HandleDisconnect ends an active game by abandonment, or tears down a
// lingering finished session.
func (gs *GameSession) HandleDisconnect(userID int64, conn ConnectionManagerInterface, sessionManager *SessionManager) error {
	gs.mu.Lock()

	if gs.Game.IsFinished() {
		if gs.RematchRequester != nil {
			gs.CancelRematchRequest(conn)
		}
		if gs.PostGameTimer != nil {
			gs.PostGameTimer.Stop()
			gs.PostGameTimer = nil
		}
		gs.cleanupConnections(conn)
		gameID := gs.GameID
		gs.mu.Unlock()
		sessionManager.RemoveSession(gameID)
		return nil
	}

	username := gs.GetUsernameByUserID(userID)
	opponentID := gs.GetOpponentID(userID)
	opponentUsername := gs.GetOpponentUsername(userID)

	log.Printf("[DISCONNECT] Player %s (ID: %d) disconnected from game %s - ending by abandonment", username, userID, gs.GameID)

	gs.FinishedAt = time.Now()
	gs.Reason = ReasonDisconnect

	allowRematch := false
	gs.broadcast(conn, domain.ServerMessage{
		Type:         "game_over",
		Winner:       opponentUsername,
		Reason:       ReasonDisconnect,
		AllowRematch: &allowRematch,
	})

	gs.saveGameAsync(opponentID, opponentUsername)

	gs.cleanupConnections(conn)
	gameID := gs.GameID
	gs.mu.Unlock()
	sessionManager.RemoveSession(gameID)

	return nil
}

// TerminateSessionByAbandonment ends an active game because a player walked
// away (for example to join the matchmaking queue mid-game).
func (gs *GameSession) TerminateSessionByAbandonment(abandoningUserID int64, conn ConnectionManagerInterface) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	abandoningUsername := gs.GetUsernameByUserID(abandoningUserID)
	opponentUsername := gs.GetOpponentUsername(abandoningUserID)
	opponentID := gs.GetOpponentID(abandoningUserID)

	log.Printf("[TERMINATE] Game %s terminated by abandonment from %s (ID: %d)",
		gs.GameID, abandoningUsername, abandoningUserID)

	gs.FinishedAt = time.Now()
	gs.Reason = ReasonSurrender

	allowRematch := false
	gs.broadcast(conn, domain.ServerMessage{
		Type:         "game_over",
		Winner:       opponentUsername,
		Reason:       ReasonSurrender,
		AllowRematch: &allowRematch,
	})

	gs.saveGameAsync(opponentID, opponentUsername)

	return nil
}
