package bot

import (
	"testing"
	"time"
)

// plainMinimax is the reference implementation without pruning, used to
// verify that alpha-beta returns identical scores.
func plainMinimax(s *searchState, depth int, maximizing bool) int {
	if depth == 0 {
		return evaluate(s)
	}

	moves := s.collectMoves(nil)

	if maximizing {
		best := -infinity
		for _, idx := range moves {
			s.makeMove(idx, s.botID)
			if score := plainMinimax(s, depth-1, false); score > best {
				best = score
			}
			s.undoMove(idx)
		}
		return best
	}

	worst := infinity
	for _, idx := range moves {
		s.makeMove(idx, s.oppID)
		if score := plainMinimax(s, depth-1, true); score < worst {
			worst = score
		}
		s.undoMove(idx)
	}
	return worst
}

func TestMinimaxDepthZeroEqualsEvaluate(t *testing.T) {
	s := newEmptyState(3)
	s.makeMove(s.available.firstOne(), s.botID)

	want := evaluate(s)
	for _, maximizing := range []bool{true, false} {
		if got := minimax(s, 0, -infinity, infinity, maximizing); got != want {
			t.Errorf("minimax depth 0 (maximizing=%v) = %d, want %d", maximizing, got, want)
		}
	}
}

func TestAlphaBetaMatchesExhaustiveSearch(t *testing.T) {
	s := newEmptyState(3)

	// A mid-game position with stones from both sides.
	moves := s.collectMoves(nil)
	s.makeMove(moves[0], s.botID)
	s.makeMove(moves[1], s.oppID)
	s.makeMove(moves[3], s.botID)

	for depth := 1; depth <= 3; depth++ {
		for _, maximizing := range []bool{true, false} {
			pruned := minimax(s, depth, -infinity, infinity, maximizing)
			full := plainMinimax(s, depth, maximizing)
			if pruned != full {
				t.Errorf("depth %d maximizing=%v: pruned=%d exhaustive=%d",
					depth, maximizing, pruned, full)
			}
		}
	}
}

func TestMinimaxLeavesBoardUntouched(t *testing.T) {
	s := newEmptyState(3)
	s.makeMove(s.available.firstOne(), s.botID)

	ownerBefore := append([]uint8(nil), s.owner...)
	availBefore := s.available.count()

	minimax(s, 3, -infinity, infinity, true)

	for i := range ownerBefore {
		if s.owner[i] != ownerBefore[i] {
			t.Fatalf("cell %d changed owner across a search", i)
		}
	}
	if s.available.count() != availBefore {
		t.Fatal("availability changed across a search")
	}
}

func TestSearchBestMoveReturnsAvailableCell(t *testing.T) {
	s := newEmptyState(3)

	move, score := searchBestMove(s, 2, -1)

	if !s.available.test(move) {
		t.Fatalf("chosen move %d is not available", move)
	}
	if score <= LoseScore {
		t.Errorf("empty board scored as a forced loss (%d)", score)
	}
}

func TestSearchBestMoveHonorsPVHint(t *testing.T) {
	s := newEmptyState(3)

	var second int
	count := 0
	s.forEachAvailable(func(idx int) bool {
		count++
		if count == 2 {
			second = idx
			return false
		}
		return true
	})

	// The hint changes scan order, never legality of the result.
	move, _ := searchBestMove(s, 1, second)
	if !s.available.test(move) {
		t.Errorf("move %d with PV hint is not available", move)
	}
}

func TestIterativeDeepeningZeroBudgetFallsBack(t *testing.T) {
	s := newEmptyState(3)

	move := iterativeDeepening(s, 0)

	if !s.available.test(move) {
		t.Errorf("zero-budget fallback move %d is not available", move)
	}
}

func TestIterativeDeepeningFindsMoveWithinBudget(t *testing.T) {
	s := newEmptyState(4)
	s.makeMove(cellIndex(1, 1, 1, 4), s.oppID)

	start := time.Now()
	move := iterativeDeepening(s, 50*time.Millisecond)
	elapsed := time.Since(start)

	if !s.available.test(move) {
		t.Fatalf("move %d is not available", move)
	}
	// Soft budget: one depth may overshoot, but on a 10-cell board this
	// should stay well under a second.
	if elapsed > 5*time.Second {
		t.Errorf("search ran %v on a tiny board", elapsed)
	}
}
