package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gameofy/backend/internal/domain"
)

type SessionRepo struct {
	DB *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{DB: db}
}

const sessionSelectFields = `id, user_id, session_id, device_info, ip_address, created_at, expires_at, last_activity, is_active`

func scanSession(row interface{ Scan(dest ...any) error }) (*domain.UserSession, error) {
	var s domain.UserSession
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.SessionID,
		&s.DeviceInfo,
		&s.IPAddress,
		&s.CreatedAt,
		&s.ExpiresAt,
		&s.LastActivity,
		&s.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSession records a new login session.
func (r *SessionRepo) CreateSession(userID int64, sessionID, deviceInfo, ipAddress string, expiresAt time.Time) error {
	query := `
	INSERT INTO user_sessions (user_id, session_id, device_info, ip_address, expires_at)
	VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := r.DB.Exec(query, userID, sessionID, deviceInfo, ipAddress, expiresAt); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSessionByID retrieves a session by session_id, or nil when unknown.
func (r *SessionRepo) GetSessionByID(sessionID string) (*domain.UserSession, error) {
	query := `SELECT ` + sessionSelectFields + ` FROM user_sessions WHERE session_id = $1;`
	session, err := scanSession(r.DB.QueryRow(query, sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// GetActiveSessionByUserID retrieves the active session for a user, if any.
func (r *SessionRepo) GetActiveSessionByUserID(userID int64) (*domain.UserSession, error) {
	query := `SELECT ` + sessionSelectFields + ` FROM user_sessions
	WHERE user_id = $1 AND is_active = TRUE
	LIMIT 1;`
	session, err := scanSession(r.DB.QueryRow(query, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	return session, nil
}

// RevokeSession marks a specific session as inactive.
func (r *SessionRepo) RevokeSession(sessionID string) error {
	query := `UPDATE user_sessions SET is_active = FALSE WHERE session_id = $1;`
	if _, err := r.DB.Exec(query, sessionID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// RevokeAllUserSessions marks every active session of a user as inactive.
// Used on login so each account holds a single live session.
func (r *SessionRepo) RevokeAllUserSessions(userID int64) error {
	query := `UPDATE user_sessions SET is_active = FALSE WHERE user_id = $1 AND is_active = TRUE;`
	if _, err := r.DB.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to revoke user sessions: %w", err)
	}
	return nil
}

// TouchSession updates the last_activity timestamp.
func (r *SessionRepo) TouchSession(sessionID string) error {
	query := `UPDATE user_sessions SET last_activity = CURRENT_TIMESTAMP WHERE session_id = $1;`
	if _, err := r.DB.Exec(query, sessionID); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

// CleanupOldSessions deletes inactive sessions older than the given number of days.
func (r *SessionRepo) CleanupOldSessions(olderThanDays int) (int64, error) {
	query := `
	DELETE FROM user_sessions
	WHERE is_active = FALSE
	AND created_at < NOW() - INTERVAL '1 day' * $1;
	`
	result, err := r.DB.Exec(query, olderThanDays)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old sessions: %w", err)
	}
	return result.RowsAffected()
}
