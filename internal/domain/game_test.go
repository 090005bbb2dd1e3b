package domain

import "testing"

func TestGameTurnEnforcement(t *testing.T) {
	g := NewGame(3)

	if err := g.MakeMove(Player2, Coordinates{X: 0, Y: 0, Z: 2}); err != ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if err := g.MakeMove(Player1, Coordinates{X: 0, Y: 0, Z: 2}); err != nil {
		t.Fatalf("legal first move rejected: %v", err)
	}
	if g.CurrentPlayer != Player2 {
		t.Errorf("turn did not pass to player 2")
	}
	if err := g.MakeMove(Player2, Coordinates{X: 0, Y: 0, Z: 2}); err != ErrCellOccupied {
		t.Fatalf("expected ErrCellOccupied, got %v", err)
	}
	if err := g.MakeMove(Player2, Coordinates{X: 5, Y: 5, Z: -8}); err != ErrInvalidCell {
		t.Fatalf("expected ErrInvalidCell, got %v", err)
	}
}

func TestGameEndsOnConnection(t *testing.T) {
	g := NewGame(3)

	moves := []struct {
		player PlayerID
		cell   Coordinates
	}{
		{Player1, Coordinates{X: 0, Y: 0, Z: 2}},
		{Player2, Coordinates{X: 2, Y: 0, Z: 0}},
		{Player1, Coordinates{X: 0, Y: 1, Z: 1}},
		{Player2, Coordinates{X: 1, Y: 0, Z: 1}},
		{Player1, Coordinates{X: 0, Y: 2, Z: 0}},
	}
	for _, m := range moves {
		if err := g.MakeMove(m.player, m.cell); err != nil {
			t.Fatalf("move %+v: %v", m, err)
		}
	}

	if g.Status != StatusWon || g.Winner != Player1 {
		t.Fatalf("expected player 1 win, got status=%s winner=%d", g.Status, g.Winner)
	}
	if _, ok := g.NextPlayer(); ok {
		t.Error("finished game still reports a player to move")
	}
	if err := g.MakeMove(Player2, Coordinates{X: 1, Y: 1, Z: 0}); err != ErrGameFinished {
		t.Errorf("expected ErrGameFinished after the win, got %v", err)
	}
	if g.MoveCount != 5 {
		t.Errorf("move count = %d, want 5", g.MoveCount)
	}
}

func TestAvailableCellsShrinkWithMoves(t *testing.T) {
	g := NewGame(4)
	before := len(g.Board.AvailableCells())
	if before != 10 {
		t.Fatalf("fresh size-4 board has %d available cells, want 10", before)
	}
	if err := g.MakeMove(Player1, Coordinates{X: 1, Y: 1, Z: 1}); err != nil {
		t.Fatal(err)
	}
	if after := len(g.Board.AvailableCells()); after != before-1 {
		t.Errorf("available cells went %d -> %d, want %d", before, after, before-1)
	}
}
