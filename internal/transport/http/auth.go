package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gameofy/backend/internal/domain"
	"github.com/gameofy/backend/internal/repository/postgres"
	"github.com/gameofy/backend/internal/service/session"
	"github.com/gameofy/backend/pkg/auth"
	"github.com/gameofy/backend/pkg/httputil"
)

type Disconnector interface {
	DisconnectUser(userID int64, reason string)
}

type AuthHandler struct {
	UserRepo    *postgres.UserRepo
	AuthService *session.AuthService
	ConnManager Disconnector
	Cache       session.CacheRepository
}

func NewAuthHandler(userRepo *postgres.UserRepo, authService *session.AuthService, cm Disconnector, cache session.CacheRepository) *AuthHandler {
	return &AuthHandler{
		UserRepo:    userRepo,
		AuthService: authService,
		ConnManager: cm,
		Cache:       cache,
	}
}

// issueSession invalidates any previous login, records a fresh session, and
// returns a JWT bound to it. The auth cookie is set on the response.
func (h *AuthHandler) issueSession(c *gin.Context, userID int64, username string) (string, error) {
	h.AuthService.InvalidateAllUserSessions(userID)
	if h.ConnManager != nil {
		h.ConnManager.DisconnectUser(userID, "Logged in from another device")
	}

	sessionID := auth.GenerateToken()
	now := time.Now()
	err := h.AuthService.SetSession(&domain.UserSession{
		UserID:       userID,
		SessionID:    sessionID,
		DeviceInfo:   c.Request.UserAgent(),
		IPAddress:    c.ClientIP(),
		CreatedAt:    now,
		ExpiresAt:    now.Add(auth.TokenTTL),
		LastActivity: now,
		IsActive:     true,
	})
	if err != nil {
		return "", err
	}

	token, err := auth.GenerateJWT(userID, username, sessionID)
	if err != nil {
		return "", err
	}

	httputil.SetAuthCookie(c.Writer, token, int(auth.TokenTTL.Seconds()))
	return token, nil
}

func validUsername(username string) (string, string) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", "Username is required"
	}
	if len(username) < 3 || len(username) > 50 {
		return "", "Username must be between 3 and 50 characters"
	}
	if domain.IsBotName(username) || strings.ToUpper(username) == "BOT" {
		return "", "This username is reserved"
	}
	return username, ""
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	username, problem := validUsername(req.Username)
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": problem})
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
		return
	}

	if existing, _ := h.UserRepo.GetUserByIdentifier(username); existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken"})
		return
	}
	if existing, _ := h.UserRepo.GetUserByEmail(req.Email); existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken"})
		return
	}

	hashedPwd, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	userID, err := h.UserRepo.CreateUser(username, req.Name, hashedPwd, req.Email, "", "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := h.issueSession(c, userID, username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":       userID,
			"username": username,
			"name":     req.Name,
			"email":    req.Email,
			"rating":   1000,
			"wins":     0,
			"losses":   0,
			"draws":    0,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.UserRepo.GetUserByIdentifier(req.Username)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.issueSession(c, user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user.UserResponse(),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, ok := c.Get("session_id"); ok {
		if sid, ok := sessionID.(string); ok {
			h.AuthService.InvalidateSession(sid)
		}
	}
	httputil.ClearAuthCookie(c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	token, err := httputil.GetTokenFromRequest(c.Request)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token not found"})
		return
	}

	cacheKey := fmt.Sprintf("user_profile:%d", userID)
	if h.Cache != nil {
		cachedData, err := h.Cache.Get(c.Request.Context(), cacheKey)
		if err == nil && cachedData != "" {
			var response map[string]interface{}
			if err := json.Unmarshal([]byte(cachedData), &response); err == nil {
				response["token"] = token
				c.Header("X-Cache", "HIT")
				c.JSON(http.StatusOK, response)
				return
			}
		}
	}

	user, err := h.UserRepo.GetUserByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	response := user.UserResponse()

	// Cache the profile without the token
	if h.Cache != nil {
		if data, err := json.Marshal(response); err == nil {
			h.Cache.Set(c.Request.Context(), cacheKey, data, time.Hour)
		}
	}

	response["token"] = token
	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) Leaderboard(c *gin.Context) {
	stats, err := h.UserRepo.GetLeaderboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
