package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/gameofy/backend/internal/config"
	"github.com/gameofy/backend/internal/repository/postgres"
	"github.com/gameofy/backend/internal/repository/redis"
	"github.com/gameofy/backend/internal/service/cleanup"
	"github.com/gameofy/backend/internal/service/game"
	"github.com/gameofy/backend/internal/service/matchmaking"
	"github.com/gameofy/backend/internal/service/session"
	transportHttp "github.com/gameofy/backend/internal/transport/http"
	"github.com/gameofy/backend/internal/transport/http/middleware"
	"github.com/gameofy/backend/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	if err := postgres.InitDB(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer postgres.CloseDB()

	gameRepo := postgres.NewGameRepo(postgres.DB)
	userRepo := postgres.NewUserRepo(postgres.DB)
	sessionRepo := postgres.NewSessionRepo(postgres.DB)

	if err := redis.InitRedis(); err != nil {
		log.Printf("Failed to initialize Redis: %v", err)
	}
	defer redis.CloseRedis()

	var cache session.CacheRepository
	if redis.IsRedisEnabled() && redis.RedisClient != nil {
		cache = redis.NewRedisCache(redis.RedisClient)
	}

	authService := session.NewAuthService(sessionRepo, cache)
	sessionManager := game.NewSessionManager(gameRepo)
	connManager := websocket.NewConnectionManager()
	matchmakingQueue := matchmaking.NewMatchmakingQueue()

	cleanupWorker := cleanup.NewWorker(sessionManager, sessionRepo)
	go cleanupWorker.Start()

	go matchmaking.MatchMakingListener(matchmakingQueue, connManager, sessionManager)

	authHandler := transportHttp.NewAuthHandler(userRepo, authService, connManager, cache)
	oauthHandler := transportHttp.NewOAuthHandler(userRepo, authService, &cfg.OAuthConfig, connManager, authHandler)
	historyHandler := transportHttp.NewHistoryHandler(gameRepo)
	watchHandler := transportHttp.NewWatchHandler(sessionManager)
	wsHandler := websocket.NewHandler(connManager, matchmakingQueue, sessionManager, authService)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware())

	authMW := middleware.AuthMiddleware(authService)

	// Public routes
	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)
	router.GET("/api/leaderboard", authHandler.Leaderboard)

	router.GET("/api/auth/google/login", oauthHandler.GoogleLogin)
	router.GET("/api/auth/google/callback", oauthHandler.GoogleCallback)

	// Protected routes
	protected := router.Group("/")
	protected.Use(authMW)
	{
		protected.POST("/api/auth/logout", authHandler.Logout)
		protected.GET("/api/auth/me", authHandler.Me)

		protected.GET("/api/history", historyHandler.GetHistory)
		protected.GET("/api/history/:id", historyHandler.GetGameDetails)

		protected.GET("/api/watch", watchHandler.GetLiveGames)
	}

	// WebSocket route (auth handled inside the WS handler itself)
	router.GET("/ws", wsHandler.HandleWebSocket)

	// Serve static frontend files (SPA fallback)
	if _, err := os.Stat("./static"); err == nil {
		router.Static("/assets", "./static/assets")

		router.GET("/", func(c *gin.Context) {
			c.File("./static/index.html")
		})

		router.NoRoute(func(c *gin.Context) {
			path := "./static" + c.Request.URL.Path

			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				c.File(path)
				return
			}

			if strings.HasPrefix(c.Request.URL.Path, "/assets/") || strings.HasSuffix(c.Request.URL.Path, ".css") || strings.HasSuffix(c.Request.URL.Path, ".js") {
				c.Status(http.StatusNotFound)
				return
			}

			c.File("./static/index.html")
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
