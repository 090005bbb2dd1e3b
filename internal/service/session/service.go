package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gameofy/backend/internal/domain"
	"github.com/gameofy/backend/pkg/auth"
)

const sessionKeyPrefix = "session:"
const blockedSessionKeyPrefix = "blocked_session:"
const sessionTTL = 30 * 24 * time.Hour // 30 days
const blocklistTTL = 1 * time.Hour

type SessionRepository interface {
	CreateSession(userID int64, sessionID, deviceInfo, ipAddress string, expiresAt time.Time) error
	GetSessionByID(sessionID string) (*domain.UserSession, error)
	GetActiveSessionByUserID(userID int64) (*domain.UserSession, error)
	RevokeAllUserSessions(userID int64) error
	RevokeSession(sessionID string) error
	TouchSession(sessionID string) error
}

type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// AuthService handles login session logic. The cache is optional; with a nil
// cache every lookup goes straight to the database.
type AuthService struct {
	repo  SessionRepository
	cache CacheRepository
}

func NewAuthService(repo SessionRepository, cache CacheRepository) *AuthService {
	return &AuthService{
		repo:  repo,
		cache: cache,
	}
}

// SetSession stores a new login session in the database and warms the cache.
func (s *AuthService) SetSession(session *domain.UserSession) error {
	err := s.repo.CreateSession(
		session.UserID,
		session.SessionID,
		session.DeviceInfo,
		session.IPAddress,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store session in database: %w", err)
	}
	if s.cache != nil {
		if err := s.setSessionInCache(session); err != nil {
			log.Printf("[SESSION] Warning: Failed to store session in cache: %v", err)
		}
	}
	return nil
}

func (s *AuthService) setSessionInCache(session *domain.UserSession) error {
	sessionData, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.cache.Set(context.Background(), sessionKeyPrefix+session.SessionID, sessionData, sessionTTL)
}

func (s *AuthService) getSessionFromCache(sessionID string) (*domain.UserSession, error) {
	data, err := s.cache.Get(context.Background(), sessionKeyPrefix+sessionID)
	if err != nil {
		return nil, err
	}
	var session domain.UserSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSession looks a session up cache-first, repopulating the cache on a miss.
func (s *AuthService) GetSession(sessionID string) (*domain.UserSession, error) {
	if s.cache != nil {
		session, err := s.getSessionFromCache(sessionID)
		if err == nil && session != nil {
			return session, nil
		}
	}
	session, err := s.repo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session != nil && s.cache != nil {
		if err := s.setSessionInCache(session); err != nil {
			log.Printf("[SESSION] Warning: Failed to populate cache: %v", err)
		}
	}
	return session, nil
}

func (s *AuthService) GetActiveSession(userID int64) (*domain.UserSession, error) {
	return s.repo.GetActiveSessionByUserID(userID)
}

// BlocklistSession adds a session ID to the Redis blocklist with a TTL.
func (s *AuthService) BlocklistSession(sessionID string, ttl time.Duration) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(context.Background(), blockedSessionKeyPrefix+sessionID, "1", ttl)
}

// IsSessionBlocked checks if a session ID is in the blocklist.
func (s *AuthService) IsSessionBlocked(sessionID string) bool {
	if s.cache == nil {
		return false
	}
	val, err := s.cache.Get(context.Background(), blockedSessionKeyPrefix+sessionID)
	return err == nil && val != ""
}

// InvalidateSession marks a session inactive and adds it to the blocklist so
// tokens minted against it stop working before the cache entry expires.
func (s *AuthService) InvalidateSession(sessionID string) error {
	if err := s.repo.RevokeSession(sessionID); err != nil {
		return fmt.Errorf("failed to revoke session in database: %w", err)
	}
	if s.cache != nil {
		s.cache.Del(context.Background(), sessionKeyPrefix+sessionID)
	}
	return s.BlocklistSession(sessionID, blocklistTTL)
}

// InvalidateAllUserSessions revokes every session of a user and blocklists the
// active one. Called on a fresh login to enforce one live session per account.
func (s *AuthService) InvalidateAllUserSessions(userID int64) error {
	activeSession, _ := s.repo.GetActiveSessionByUserID(userID)

	if err := s.repo.RevokeAllUserSessions(userID); err != nil {
		return fmt.Errorf("failed to revoke user sessions in database: %w", err)
	}

	if activeSession != nil && activeSession.IsActive {
		s.BlocklistSession(activeSession.SessionID, blocklistTTL)
		if s.cache != nil {
			s.cache.Del(context.Background(), sessionKeyPrefix+activeSession.SessionID)
		}
	}
	return nil
}

// UpdateSessionActivity refreshes last_activity and keeps the cache in sync.
func (s *AuthService) UpdateSessionActivity(sessionID string) error {
	if err := s.repo.TouchSession(sessionID); err != nil {
		return err
	}
	if s.cache != nil {
		session, err := s.repo.GetSessionByID(sessionID)
		if err == nil && session != nil {
			if err := s.setSessionInCache(session); err != nil {
				log.Printf("[SESSION] Warning: Failed to update session in cache: %v", err)
			}
		}
	}
	return nil
}

// ValidateToken verifies the JWT and confirms the backing session is still
// live, not blocklisted, and not expired.
func (s *AuthService) ValidateToken(tokenString string) (*auth.Claims, error) {
	claims, err := auth.ValidateJWT(tokenString)
	if err != nil {
		return nil, err
	}
	if s.IsSessionBlocked(claims.SessionID) {
		return nil, errors.New("session is blocked/revoked")
	}
	session, err := s.GetSession(claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	if session == nil || !session.IsActive {
		return nil, errors.New("session invalidated")
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, errors.New("session expired")
	}
	return claims, nil
}
