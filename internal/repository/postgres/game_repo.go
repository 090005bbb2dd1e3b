package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gameofy/backend/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// GameResult is a finished game as stored in the database. The board is the
// flat cell array of the final position; cells outside the playable triangle
// stay zero.
type GameResult struct {
	GameID          string
	Player1ID       int64
	Player1Username string
	Player2ID       *int64
	Player2Username string
	WinnerID        *int64
	WinnerUsername  string
	Reason          string
	TotalMoves      int
	DurationSeconds int
	BoardSize       int
	CreatedAt       time.Time
	FinishedAt      time.Time
}

// SaveGame persists a finished game and updates both players' stats and
// ratings in one transaction. Rating adjustments only apply to human
// opponents; bot games (player2ID nil) count toward stats but not Elo.
func (r *GameRepo) SaveGame(res *GameResult, board []int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	draw := res.WinnerID == nil && res.Reason == "board_full"

	player1Won := res.WinnerID != nil && *res.WinnerID == res.Player1ID
	if err := r.recordResultTx(tx, res.Player1ID, player1Won, draw); err != nil {
		return err
	}

	if res.Player2ID != nil {
		player2Won := res.WinnerID != nil && *res.WinnerID == *res.Player2ID
		if err := r.recordResultTx(tx, *res.Player2ID, player2Won, draw); err != nil {
			return err
		}
		if err := r.applyRatingsTx(tx, res.Player1ID, *res.Player2ID, res.WinnerID); err != nil {
			return err
		}
	}

	boardJSON, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	// UPSERT so a re-save after a race (both players disconnecting at once)
	// overwrites instead of failing.
	query := `
	INSERT INTO games (game_id, player1_id, player1_username, player2_id, player2_username, winner_id, winner_username, reason, total_moves, duration_seconds, board_size, board_state, created_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (game_id) DO UPDATE SET
		winner_id = EXCLUDED.winner_id,
		winner_username = EXCLUDED.winner_username,
		reason = EXCLUDED.reason,
		total_moves = EXCLUDED.total_moves,
		duration_seconds = EXCLUDED.duration_seconds,
		finished_at = EXCLUDED.finished_at,
		board_state = EXCLUDED.board_state;
	`

	var winnerUsername interface{}
	if res.WinnerUsername != "" {
		winnerUsername = res.WinnerUsername
	}

	_, err = tx.Exec(query, res.GameID, res.Player1ID, res.Player1Username, res.Player2ID, res.Player2Username,
		res.WinnerID, winnerUsername, res.Reason, res.TotalMoves, res.DurationSeconds, res.BoardSize, boardJSON,
		res.CreatedAt, res.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *GameRepo) recordResultTx(tx *sql.Tx, userID int64, won, drawn bool) error {
	query := `
	UPDATE players
	SET games_played = games_played + 1,
	    games_won = games_won + CASE WHEN $2 THEN 1 ELSE 0 END,
	    games_drawn = games_drawn + CASE WHEN $3 THEN 1 ELSE 0 END
	WHERE id = $1;
	`
	if _, err := tx.Exec(query, userID, won, drawn); err != nil {
		return fmt.Errorf("failed to update player stats: %w", err)
	}
	return nil
}

func (r *GameRepo) applyRatingsTx(tx *sql.Tx, player1ID, player2ID int64, winnerID *int64) error {
	var rating1, rating2 int
	err := tx.QueryRow(`SELECT rating FROM players WHERE id = $1 FOR UPDATE;`, player1ID).Scan(&rating1)
	if err != nil {
		return fmt.Errorf("failed to load rating: %w", err)
	}
	err = tx.QueryRow(`SELECT rating FROM players WHERE id = $1 FOR UPDATE;`, player2ID).Scan(&rating2)
	if err != nil {
		return fmt.Errorf("failed to load rating: %w", err)
	}

	score1 := 0.5
	switch {
	case winnerID != nil && *winnerID == player1ID:
		score1 = 1.0
	case winnerID != nil && *winnerID == player2ID:
		score1 = 0.0
	}

	new1 := domain.CalculateElo(rating1, rating2, score1)
	new2 := domain.CalculateElo(rating2, rating1, 1.0-score1)

	if _, err := tx.Exec(`UPDATE players SET rating = $2 WHERE id = $1;`, player1ID, new1); err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}
	if _, err := tx.Exec(`UPDATE players SET rating = $2 WHERE id = $1;`, player2ID, new2); err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}
	return nil
}

const gameSelectFields = `game_id, player1_id, player1_username, player2_id, player2_username,
	       winner_id, winner_username, reason, total_moves, duration_seconds, board_size,
	       created_at, finished_at`

func scanGame(row interface{ Scan(dest ...any) error }) (*GameResult, error) {
	var result GameResult
	var player2ID, winnerID sql.NullInt64
	var winnerUsername sql.NullString

	err := row.Scan(
		&result.GameID,
		&result.Player1ID,
		&result.Player1Username,
		&player2ID,
		&result.Player2Username,
		&winnerID,
		&winnerUsername,
		&result.Reason,
		&result.TotalMoves,
		&result.DurationSeconds,
		&result.BoardSize,
		&result.CreatedAt,
		&result.FinishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if player2ID.Valid {
		id := player2ID.Int64
		result.Player2ID = &id
	}
	if winnerID.Valid {
		id := winnerID.Int64
		result.WinnerID = &id
	}
	if winnerUsername.Valid {
		result.WinnerUsername = winnerUsername.String
	}
	return &result, nil
}

// GetGameByID retrieves game details by gameID, or nil when unknown.
func (r *GameRepo) GetGameByID(gameID string) (*GameResult, error) {
	query := `SELECT ` + gameSelectFields + ` FROM games WHERE game_id = $1;`
	result, err := scanGame(r.DB.QueryRow(query, gameID))
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return result, nil
}

// GetUserGameHistory retrieves all games for a user on either side of the board.
func (r *GameRepo) GetUserGameHistory(userID int64) ([]GameResult, error) {
	query := `SELECT ` + gameSelectFields + ` FROM games
	WHERE player1_id = $1 OR player2_id = $1
	ORDER BY finished_at DESC;`

	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	var games []GameResult
	for rows.Next() {
		result, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, *result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game rows: %w", err)
	}
	return games, nil
}

// GetGameBoard retrieves the final board of a game as a flat cell array with
// its side length. An unknown game yields an empty default-size board.
func (r *GameRepo) GetGameBoard(gameID string) ([]int, int, error) {
	query := `SELECT board_state, board_size FROM games WHERE game_id = $1;`

	var boardJSON []byte
	var size int
	err := r.DB.QueryRow(query, gameID).Scan(&boardJSON, &size)
	if err == sql.ErrNoRows || (err == nil && boardJSON == nil) {
		size = domain.DefaultBoardSize
		return make([]int, size*size), size, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get board state: %w", err)
	}

	var board []int
	if err := json.Unmarshal(boardJSON, &board); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal board state: %w", err)
	}
	return board, size, nil
}
