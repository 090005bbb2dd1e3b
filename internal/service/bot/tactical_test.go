package bot

import "testing"

func TestTacticalMoveFindsInstantWin(t *testing.T) {
	s := newEmptyState(3)

	// Bot chain already touches sides A and B; one cell on side C next to
	// the chain completes the connection.
	s.makeMove(cellIndex(0, 0, 2, 3), s.botID)
	s.makeMove(cellIndex(0, 1, 1, 3), s.botID)
	s.makeMove(cellIndex(2, 0, 0, 3), s.oppID)

	idx := tacticalMove(s)
	if idx < 0 {
		t.Fatal("tactical scan missed an instant win")
	}

	s.makeMove(idx, s.botID)
	if !s.checkWin(s.botID) {
		t.Errorf("tactical move %d does not actually win", idx)
	}
}

func TestTacticalMoveBlocksOpponentWin(t *testing.T) {
	s := newEmptyState(3)

	// Opponent threatens to connect; bot has no win of its own.
	s.makeMove(cellIndex(0, 0, 2, 3), s.oppID)
	s.makeMove(cellIndex(0, 1, 1, 3), s.oppID)
	s.makeMove(cellIndex(2, 0, 0, 3), s.botID)

	idx := tacticalMove(s)
	if idx < 0 {
		t.Fatal("tactical scan missed a forced block")
	}

	// The chosen cell must be one the opponent could have won with.
	s.makeMove(idx, s.oppID)
	if !s.checkWin(s.oppID) {
		t.Errorf("blocked cell %d was not a winning cell for the opponent", idx)
	}
}

func TestTacticalMovePrefersOwnWinOverBlock(t *testing.T) {
	s := newEmptyState(3)

	// Both sides are one move from connecting.
	s.makeMove(cellIndex(0, 0, 2, 3), s.botID)
	s.makeMove(cellIndex(0, 1, 1, 3), s.botID)
	s.makeMove(cellIndex(1, 0, 1, 3), s.oppID)
	s.makeMove(cellIndex(1, 1, 0, 3), s.oppID)

	idx := tacticalMove(s)
	if idx < 0 {
		t.Fatal("tactical scan found nothing")
	}

	s.makeMove(idx, s.botID)
	if !s.checkWin(s.botID) {
		t.Errorf("bot blocked at %d instead of taking its own win", idx)
	}
}

func TestTacticalMoveNoneOnQuietBoard(t *testing.T) {
	s := newEmptyState(4)
	s.makeMove(cellIndex(1, 1, 1, 4), s.botID)
	s.makeMove(cellIndex(0, 0, 3, 4), s.oppID)

	if idx := tacticalMove(s); idx != -1 {
		t.Errorf("quiet board produced tactical move %d", idx)
	}
}

func TestTacticalMoveRestoresBoard(t *testing.T) {
	s := newEmptyState(4)
	s.makeMove(cellIndex(1, 1, 1, 4), s.botID)

	ownerBefore := append([]uint8(nil), s.owner...)
	availBefore := s.available.count()

	tacticalMove(s)

	for i := range ownerBefore {
		if s.owner[i] != ownerBefore[i] {
			t.Fatalf("cell %d changed owner across the scan", i)
		}
	}
	if s.available.count() != availBefore {
		t.Fatal("availability changed across the scan")
	}
}
