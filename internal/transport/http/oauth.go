package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gameofy/backend/internal/config"
	"github.com/gameofy/backend/internal/domain"
	"github.com/gameofy/backend/internal/repository/postgres"
	"github.com/gameofy/backend/internal/service/session"
	"github.com/gameofy/backend/pkg/auth"
)

type OAuthHandler struct {
	UserRepo    *postgres.UserRepo
	AuthService *session.AuthService
	Config      *config.OAuthConfig
	ConnManager Disconnector
	Auth        *AuthHandler
}

func NewOAuthHandler(userRepo *postgres.UserRepo, authService *session.AuthService, cfg *config.OAuthConfig, cm Disconnector, authHandler *AuthHandler) *OAuthHandler {
	return &OAuthHandler{
		UserRepo:    userRepo,
		AuthService: authService,
		Config:      cfg,
		ConnManager: cm,
		Auth:        authHandler,
	}
}

// GoogleLogin redirects the user to Google.
func (h *OAuthHandler) GoogleLogin(c *gin.Context) {
	url := h.Config.GoogleLoginConfig.AuthCodeURL("state")
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback handles the response from Google. Unknown emails get an
// account created on the spot; either way the user ends up logged in.
func (h *OAuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	token, err := h.Config.GoogleLoginConfig.Exchange(context.Background(), code)
	if err != nil {
		log.Printf("[OAUTH] Failed to exchange token: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, config.AppConfig.FrontendURL+"/login?error=auth_failed")
		return
	}

	userInfo, err := config.GetGoogleUserInfo(token.AccessToken)
	if err != nil {
		log.Printf("[OAUTH] Failed to get user info: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, config.AppConfig.FrontendURL+"/login?error=user_info_failed")
		return
	}

	user, _ := h.UserRepo.GetUserByGoogleID(userInfo.ID)
	if user == nil {
		user, _ = h.UserRepo.GetUserByEmail(userInfo.Email)
		if user != nil {
			// Existing password account logging in via Google for the first time
			if err := h.UserRepo.LinkGoogleAccount(userInfo.Email, userInfo.ID); err != nil {
				log.Printf("[OAUTH] Failed to link Google ID: %v", err)
			}
		}
	}

	if user == nil {
		user, err = h.createGoogleUser(userInfo)
		if err != nil {
			log.Printf("[OAUTH] Failed to create account for %s: %v", userInfo.Email, err)
			c.Redirect(http.StatusTemporaryRedirect, config.AppConfig.FrontendURL+"/login?error=signup_failed")
			return
		}
	}

	if _, err := h.Auth.issueSession(c, user.ID, user.Username); err != nil {
		log.Printf("[OAUTH] Failed to create session: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, config.AppConfig.FrontendURL+"/login?error=server_error")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, config.AppConfig.FrontendURL+"/dashboard")
}

// createGoogleUser registers a new account from a Google profile, deriving a
// unique username from the email's local part.
func (h *OAuthHandler) createGoogleUser(userInfo *config.GoogleUser) (*postgres.User, error) {
	base := sanitizeUsername(strings.SplitN(userInfo.Email, "@", 2)[0])

	username := base
	for i := 0; ; i++ {
		if i > 0 {
			username = fmt.Sprintf("%s%d", base, i)
		}
		existing, err := h.UserRepo.GetUserByUsername(username)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			break
		}
	}

	// Random password hash placeholder; these accounts log in via Google only
	hashedPwd, err := auth.HashPassword(auth.GenerateToken())
	if err != nil {
		return nil, err
	}

	userID, err := h.UserRepo.CreateUser(username, userInfo.Name, hashedPwd, userInfo.Email, userInfo.ID, userInfo.Picture)
	if err != nil {
		return nil, err
	}

	return h.UserRepo.GetUserByID(userID)
}

func sanitizeUsername(s string) string {
	var b strings.Builder
	for _, ch := range strings.ToLower(s) {
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '_' {
			b.WriteRune(ch)
		}
	}
	name := b.String()
	if len(name) < 3 || domain.IsBotName(name) {
		name = "player_" + name
	}
	if len(name) > 50 {
		name = name[:50]
	}
	return name
}
