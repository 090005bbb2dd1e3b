package domain

import "testing"

func place(t *testing.T, b *Board, p PlayerID, cells ...Coordinates) {
	t.Helper()
	for _, c := range cells {
		if err := b.Place(c, p); err != nil {
			t.Fatalf("placing %+v: %v", c, err)
		}
	}
}

func TestWinRequiresAllThreeSides(t *testing.T) {
	b := NewBoard(3)
	// A connected chain down side A: touches A three times, B and C once.
	place(t, b, Player1,
		Coordinates{X: 0, Y: 0, Z: 2},
		Coordinates{X: 0, Y: 1, Z: 1},
		Coordinates{X: 0, Y: 2, Z: 0},
	)
	if !HasConnectedAllSides(b, Player1) {
		t.Error("side-A chain reaches corners on B and C, expected a win")
	}
	if HasConnectedAllSides(b, Player2) {
		t.Error("player without stones cannot have won")
	}
}

func TestIsolatedStoneDoesNotWin(t *testing.T) {
	b := NewBoard(3)
	place(t, b, Player1, Coordinates{X: 1, Y: 1, Z: 0})
	if HasConnectedAllSides(b, Player1) {
		t.Error("single stone on one side reported a win")
	}
}

func TestDisconnectedCornersDoNotWin(t *testing.T) {
	b := NewBoard(3)
	// Three corners jointly touch every side but form three components.
	place(t, b, Player1,
		Coordinates{X: 0, Y: 0, Z: 2},
		Coordinates{X: 0, Y: 2, Z: 0},
		Coordinates{X: 2, Y: 0, Z: 0},
	)
	if HasConnectedAllSides(b, Player1) {
		t.Error("disconnected corners reported a win")
	}
}

func TestWinAcrossTheMiddle(t *testing.T) {
	b := NewBoard(4)
	place(t, b, Player2,
		Coordinates{X: 0, Y: 1, Z: 2},
		Coordinates{X: 1, Y: 1, Z: 1},
		Coordinates{X: 1, Y: 0, Z: 2},
		Coordinates{X: 1, Y: 2, Z: 0},
	)
	if !HasConnectedAllSides(b, Player2) {
		t.Error("central component touching A, B and C should win")
	}
	// Opponent stones elsewhere must not affect the result.
	place(t, b, Player1, Coordinates{X: 3, Y: 0, Z: 0})
	if !HasConnectedAllSides(b, Player2) {
		t.Error("opponent stone changed an existing win")
	}
}
