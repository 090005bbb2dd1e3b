package bot

import "testing"

func TestEvaluateEmptyBoardIsZero(t *testing.T) {
	s := newEmptyState(3)
	if score := evaluate(s); score != 0 {
		t.Errorf("empty board evaluates to %d, want 0", score)
	}
}

func TestEvaluateChangesAfterMove(t *testing.T) {
	s := newEmptyState(3)
	before := evaluate(s)

	s.makeMove(s.available.firstOne(), s.botID)
	after := evaluate(s)

	if before == after {
		t.Error("evaluation did not react to a placed stone")
	}
	if after <= 0 {
		t.Errorf("lone bot stone evaluates to %d, want > 0", after)
	}
}

func TestPositionStrengthZeroWithoutStones(t *testing.T) {
	s := newEmptyState(3)
	if got := positionStrength(s, s.botID); got != 0 {
		t.Errorf("strength without stones = %d, want 0", got)
	}
}

func TestPositionStrengthGrowsWithStones(t *testing.T) {
	s := newEmptyState(4)

	s.makeMove(cellIndex(1, 1, 1, 4), s.botID)
	one := positionStrength(s, s.botID)

	s.makeMove(cellIndex(1, 2, 0, 4), s.botID)
	two := positionStrength(s, s.botID)

	if !(two > one && one > 0) {
		t.Errorf("strength did not grow: 0 stones=0, 1 stone=%d, 2 stones=%d", one, two)
	}
}

func TestPositionStrengthRewardsClustering(t *testing.T) {
	s := newEmptyState(5)

	// A tight triangle: every stone has two friendly neighbors.
	cluster := []int{
		cellIndex(1, 1, 2, 5),
		cellIndex(1, 2, 1, 5),
		cellIndex(2, 1, 1, 5),
	}
	for _, idx := range cluster {
		s.makeMove(idx, s.botID)
	}
	clustered := positionStrength(s, s.botID)
	for _, idx := range cluster {
		s.undoMove(idx)
	}

	// Same stone count, no two adjacent.
	scattered := []int{
		cellIndex(0, 0, 4, 5),
		cellIndex(0, 4, 0, 5),
		cellIndex(4, 0, 0, 5),
	}
	for _, idx := range scattered {
		s.makeMove(idx, s.botID)
	}
	spread := positionStrength(s, s.botID)

	if clustered <= spread-2*edgeWeight {
		// The corners touch two edges each, worth at most 2*edgeWeight more
		// in edge coverage; connectivity must still dominate.
		t.Errorf("clustered=%d not rewarded over scattered=%d", clustered, spread)
	}
}

func TestEvaluateIsZeroSum(t *testing.T) {
	s := newEmptyState(4)
	s.makeMove(cellIndex(1, 1, 1, 4), s.botID)
	s.makeMove(cellIndex(2, 0, 1, 4), s.oppID)

	fromBot := evaluate(s)

	// Mirror the same position with the ids swapped.
	m := newEmptyState(4)
	m.makeMove(cellIndex(1, 1, 1, 4), m.oppID)
	m.makeMove(cellIndex(2, 0, 1, 4), m.botID)

	if fromBot != -evaluate(m) {
		t.Errorf("heuristic is not symmetric: %d vs %d", fromBot, evaluate(m))
	}
}

func TestEvaluateShortCircuitsOnWin(t *testing.T) {
	s := newEmptyState(3)
	for _, idx := range []int{
		cellIndex(0, 0, 2, 3),
		cellIndex(0, 1, 1, 3),
		cellIndex(0, 2, 0, 3),
	} {
		s.makeMove(idx, s.botID)
	}

	if got := evaluate(s); got != WinScore {
		t.Errorf("won board evaluates to %d, want %d", got, WinScore)
	}
}
