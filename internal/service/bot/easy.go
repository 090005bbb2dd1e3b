package bot

import (
	"math/rand"

	"github.com/gameofy/backend/internal/domain"
)

// easyMove never searches: it takes an instant win or forced block when one
// exists, otherwise a random available cell.
func easyMove(g *domain.Game) *domain.Coordinates {
	botPlayer, ok := g.NextPlayer()
	if !ok {
		return nil
	}

	state := newSearchState(g, botPlayer)

	if idx := tacticalMove(state); idx >= 0 {
		coords := state.coords[idx]
		return &coords
	}

	moves := state.collectMoves(nil)
	if len(moves) == 0 {
		return nil
	}

	coords := state.coords[moves[rand.Intn(len(moves))]]
	return &coords
}
