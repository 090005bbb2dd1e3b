package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gameofy/backend/internal/service/game"
)

type WatchHandler struct {
	SessionManager *game.SessionManager
}

func NewWatchHandler(sm *game.SessionManager) *WatchHandler {
	return &WatchHandler{SessionManager: sm}
}

type liveGameResponse struct {
	GameID    string `json:"gameId"`
	Player1   string `json:"player1"`
	Player2   string `json:"player2"`
	MoveCount int    `json:"moveCount"`
	StartedAt string `json:"startedAt"`
}

// GetLiveGames returns all active PvP games available for spectating.
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	activeGames := h.SessionManager.GetActiveGames()

	response := make([]liveGameResponse, 0, len(activeGames))
	for _, g := range activeGames {
		response = append(response, liveGameResponse{
			GameID:    g.GameID,
			Player1:   g.Player1,
			Player2:   g.Player2,
			MoveCount: g.MoveCount,
			StartedAt: g.StartedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, response)
}
