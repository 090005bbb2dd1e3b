package domain

// Game tracks one match of Y: the board, whose turn it is, and how it ended.
type Game struct {
	Board         *Board
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	MoveCount     int
}

func NewGame(size int) *Game {
	return &Game{
		Board:         NewBoard(size),
		CurrentPlayer: Player1,
		Status:        StatusActive,
		Winner:        Empty,
		MoveCount:     0,
	}
}

// NextPlayer returns the player to move, or false once the game is over.
func (g *Game) NextPlayer() (PlayerID, bool) {
	if g.IsFinished() {
		return Empty, false
	}
	return g.CurrentPlayer, true
}

// MakeMove places a stone for player at the given cell and advances the turn.
func (g *Game) MakeMove(player PlayerID, c Coordinates) error {
	if g.Status != StatusActive {
		return ErrGameFinished
	}
	if player != g.CurrentPlayer {
		return ErrNotYourTurn
	}

	if err := g.Board.Place(c, player); err != nil {
		return err
	}
	g.MoveCount++

	if HasConnectedAllSides(g.Board, player) {
		g.Status = StatusWon
		g.Winner = player
		return nil
	}

	// A full Y board always contains a winning group, so this is a safety
	// terminal state rather than a reachable outcome.
	if g.Board.IsFull() {
		g.Status = StatusDraw
		return nil
	}

	g.CurrentPlayer = g.CurrentPlayer.Other()
	return nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
