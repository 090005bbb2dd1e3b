package bot

import (
	"testing"

	"github.com/gameofy/backend/internal/domain"
)

func newEmptyState(size int) *searchState {
	return newSearchState(domain.NewGame(size), domain.Player1)
}

func cellIndex(x, y, z, size int) int {
	return domain.Coordinates{X: x, Y: y, Z: z}.Index(size)
}

func TestNewSearchStateInitialization(t *testing.T) {
	s := newEmptyState(3)

	if s.botID != 1 || s.oppID != 2 {
		t.Fatalf("player ids = (%d, %d), want (1, 2)", s.botID, s.oppID)
	}

	// Exactly the playable triangle is available, all of it empty.
	if got, want := s.available.count(), 6; got != want {
		t.Fatalf("available cells = %d, want %d", got, want)
	}
	s.forEachAvailable(func(idx int) bool {
		if s.owner[idx] != 0 {
			t.Errorf("available cell %d is not empty", idx)
		}
		if !s.coords[idx].IsValid(3) {
			t.Errorf("available cell %d decodes to invalid coords %+v", idx, s.coords[idx])
		}
		return true
	})

	// Neighbor lists only reference valid cells.
	for idx, ns := range s.neighbors {
		for _, n := range ns {
			if !s.coords[n].IsValid(3) {
				t.Errorf("cell %d lists invalid neighbor %d", idx, n)
			}
		}
	}
}

func TestMakeUndoIsExactInverse(t *testing.T) {
	s := newEmptyState(4)

	ownerBefore := append([]uint8(nil), s.owner...)
	availBefore := append([]uint64(nil), s.available.words...)

	idx := s.available.firstOne()
	s.makeMove(idx, s.botID)

	if s.owner[idx] != s.botID {
		t.Fatalf("owner[%d] = %d after make, want %d", idx, s.owner[idx], s.botID)
	}
	if s.available.test(idx) {
		t.Fatal("cell still available after make")
	}

	s.undoMove(idx)

	for i := range ownerBefore {
		if s.owner[i] != ownerBefore[i] {
			t.Fatalf("owner[%d] changed across make/undo", i)
		}
	}
	for i := range availBefore {
		if s.available.words[i] != availBefore[i] {
			t.Fatalf("availability word %d changed across make/undo", i)
		}
	}
}

func TestOwnerAndAvailabilityStayComplementary(t *testing.T) {
	s := newEmptyState(4)

	moves := s.collectMoves(nil)
	players := []uint8{s.botID, s.oppID}
	for i, idx := range moves[:4] {
		s.makeMove(idx, players[i%2])
	}
	s.undoMove(moves[1])

	for idx := range s.owner {
		if !s.coords[idx].IsValid(4) {
			if s.available.test(idx) {
				t.Fatalf("invalid cell %d reported available", idx)
			}
			continue
		}
		if (s.owner[idx] == 0) != s.available.test(idx) {
			t.Fatalf("cell %d: owner=%d available=%v", idx, s.owner[idx], s.available.test(idx))
		}
	}
}

func TestMakeMoveOnTakenCellPanics(t *testing.T) {
	s := newEmptyState(3)
	idx := s.available.firstOne()
	s.makeMove(idx, s.botID)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on makeMove over an occupied cell")
		}
	}()
	s.makeMove(idx, s.oppID)
}

func TestUndoMoveOnEmptyCellPanics(t *testing.T) {
	s := newEmptyState(3)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on undoMove of an empty cell")
		}
	}()
	s.undoMove(s.available.firstOne())
}

func TestCheckWinEmptyBoard(t *testing.T) {
	s := newEmptyState(3)
	if s.checkWin(s.botID) || s.checkWin(s.oppID) {
		t.Error("empty board reported a win")
	}
}

func TestCheckWinConnectedChain(t *testing.T) {
	s := newEmptyState(3)
	for _, idx := range []int{
		cellIndex(0, 0, 2, 3),
		cellIndex(0, 1, 1, 3),
		cellIndex(0, 2, 0, 3),
	} {
		s.makeMove(idx, s.botID)
	}

	if !s.checkWin(s.botID) {
		t.Error("connected chain touching all edges not detected")
	}
	if s.checkWin(s.oppID) {
		t.Error("opponent win reported with no opponent stones")
	}
}

func TestCheckWinIgnoresDisconnectedEdgeStones(t *testing.T) {
	s := newEmptyState(3)
	// The three corners each touch two edges but are pairwise disconnected.
	for _, idx := range []int{
		cellIndex(0, 0, 2, 3),
		cellIndex(0, 2, 0, 3),
		cellIndex(2, 0, 0, 3),
	} {
		s.makeMove(idx, s.botID)
	}

	if s.checkWin(s.botID) {
		t.Error("disconnected corners reported a win")
	}
}

func TestDFSAccumulatesEdgesOfComponent(t *testing.T) {
	s := newEmptyState(4)

	a := cellIndex(0, 0, 3, 4) // edges A|B
	b := cellIndex(0, 1, 2, 4) // edge A
	s.makeMove(a, s.botID)
	s.makeMove(b, s.botID)

	for i := range s.visited {
		s.visited[i] = false
	}
	got := s.dfsCollectEdges(a, s.botID)
	want := s.edges[a] | s.edges[b]
	if got != want {
		t.Errorf("dfs edge mask = %03b, want %03b", got, want)
	}
}
