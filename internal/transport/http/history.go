package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gameofy/backend/internal/repository/postgres"
)

type HistoryHandler struct {
	GameRepo *postgres.GameRepo
}

func NewHistoryHandler(gameRepo *postgres.GameRepo) *HistoryHandler {
	return &HistoryHandler{GameRepo: gameRepo}
}

type gameHistoryItem struct {
	ID               string    `json:"id"`
	OpponentUsername string    `json:"opponentUsername"`
	Result           string    `json:"result"` // "win", "loss", "draw"
	EndReason        string    `json:"endReason"`
	CreatedAt        time.Time `json:"createdAt"`
	MovesCount       int       `json:"movesCount"`
}

func (h *HistoryHandler) GetHistory(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rawHistory, err := h.GameRepo.GetUserGameHistory(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	history := make([]gameHistoryItem, 0, len(rawHistory))
	for _, game := range rawHistory {
		item := gameHistoryItem{
			ID:         game.GameID,
			EndReason:  game.Reason,
			CreatedAt:  game.CreatedAt,
			MovesCount: game.TotalMoves,
		}

		if game.Player1ID == userID {
			item.OpponentUsername = game.Player2Username
		} else {
			item.OpponentUsername = game.Player1Username
		}

		switch {
		case game.WinnerID != nil && *game.WinnerID == userID:
			item.Result = "win"
		case game.WinnerID == nil && game.Player2ID == nil && game.WinnerUsername != "" && game.WinnerUsername != "draw":
			// bot games store the bot's name as winner with no winner ID
			item.Result = "loss"
		case game.WinnerID == nil:
			item.Result = "draw"
		default:
			item.Result = "loss"
		}

		history = append(history, item)
	}

	c.JSON(http.StatusOK, history)
}

func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	gameID := c.Param("id")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	game, err := h.GameRepo.GetGameByID(gameID)
	if err != nil || game == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	board, size, err := h.GameRepo.GetGameBoard(gameID)
	if err != nil {
		c.JSON(http.StatusOK, game)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"game":       game,
		"boardState": board,
		"boardSize":  size,
	})
}
