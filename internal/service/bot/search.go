package bot

import (
	"log"
	"time"
)

// maxSearchDepth bounds iterative deepening; in practice the time budget
// stops the search long before this.
const maxSearchDepth = 100

// winConfirmedMargin: once a root score lands this close to WinScore the
// line is a forced win and deeper iterations cannot improve it.
const winConfirmedMargin = 100

// minimax is plain alpha-beta over the shared snapshot. Depth zero falls
// through to the static evaluation regardless of whose turn it is.
func minimax(s *searchState, depth, alpha, beta int, maximizing bool) int {
	if depth == 0 {
		return evaluate(s)
	}

	moves := s.collectMoves(nil)

	if maximizing {
		bestScore := -infinity
		for _, idx := range moves {
			s.makeMove(idx, s.botID)
			score := minimax(s, depth-1, alpha, beta, false)
			s.undoMove(idx)

			if score > bestScore {
				bestScore = score
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				break
			}
		}
		return bestScore
	}

	worstScore := infinity
	for _, idx := range moves {
		s.makeMove(idx, s.oppID)
		score := minimax(s, depth-1, alpha, beta, true)
		s.undoMove(idx)

		if score < worstScore {
			worstScore = score
		}
		if score < beta {
			beta = score
		}
		if beta <= alpha {
			break
		}
	}
	return worstScore
}

// searchBestMove picks the best root move at a fixed depth. The previous
// iteration's best move is scanned first; on equal scores the earlier
// scanned cell wins, so the hint also breaks ties.
func searchBestMove(s *searchState, depth, pvMove int) (bestMove, bestScore int) {
	moves := s.collectMoves(nil)
	if len(moves) == 0 {
		panic("bot: search invoked with no available moves")
	}

	if pvMove >= 0 {
		for i, m := range moves {
			if m == pvMove {
				moves[0], moves[i] = moves[i], moves[0]
				break
			}
		}
	}

	// TODO: order the remaining moves (neighbor-of-own-stone first) to
	// tighten pruning beyond the PV hint.

	bestMove = moves[0]
	bestScore = -infinity

	for _, idx := range moves {
		s.makeMove(idx, s.botID)
		score := minimax(s, depth-1, -infinity, infinity, false)
		s.undoMove(idx)

		if score > bestScore {
			bestScore = score
			bestMove = idx
		}
	}

	return bestMove, bestScore
}

// iterativeDeepening re-runs the fixed-depth search at increasing depth
// until the wall-clock budget runs out or a forced win is confirmed. The
// budget is soft: it is checked between depths, never mid-recursion, so one
// depth always runs to completion once started.
func iterativeDeepening(s *searchState, budget time.Duration) int {
	start := time.Now()

	bestMove := s.available.firstOne()
	if bestMove < 0 {
		panic("bot: no available moves to search")
	}
	pvMove := -1

	for depth := 1; depth <= maxSearchDepth; depth++ {
		if time.Since(start) >= budget {
			log.Printf("[BOT] time limit reached before depth %d", depth)
			break
		}

		move, score := searchBestMove(s, depth, pvMove)
		bestMove = move
		pvMove = move

		log.Printf("[BOT] depth %d: best move = %d, score = %d", depth, move, score)

		if score >= WinScore-winConfirmedMargin {
			log.Printf("[BOT] winning line confirmed at depth %d", depth)
			break
		}

		if time.Since(start) >= budget {
			log.Printf("[BOT] time limit reached after depth %d", depth)
			break
		}
	}

	return bestMove
}
