package bot

import (
	"time"

	"github.com/gameofy/backend/internal/domain"
)

// Engine is the search-backed move picker. It is stateless between calls:
// every ChooseMove builds a fresh snapshot from the game and discards it.
type Engine struct {
	budget time.Duration
}

func NewEngine(maxTimeMs int) *Engine {
	return &Engine{budget: time.Duration(maxTimeMs) * time.Millisecond}
}

// ChooseMove returns the engine's move for the player whose turn it is, or
// nil when the game has already concluded.
func (e *Engine) ChooseMove(g *domain.Game) *domain.Coordinates {
	botPlayer, ok := g.NextPlayer()
	if !ok {
		return nil
	}

	state := newSearchState(g, botPlayer)

	if idx := tacticalMove(state); idx >= 0 {
		coords := state.coords[idx]
		return &coords
	}

	best := iterativeDeepening(state, e.budget)
	coords := state.coords[best]
	return &coords
}

// CalculateBestMove selects the best move based on difficulty. budgetMs is
// the "hard" search budget; the easier levels use fractions of it or skip
// deep search entirely.
func CalculateBestMove(g *domain.Game, difficulty string, budgetMs int) *domain.Coordinates {
	switch difficulty {
	case "easy":
		return easyMove(g)
	case "medium":
		return NewEngine(budgetMs / 4).ChooseMove(g)
	case "hard":
		return NewEngine(budgetMs).ChooseMove(g)
	default:
		return NewEngine(budgetMs / 4).ChooseMove(g)
	}
}
