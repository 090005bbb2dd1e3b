package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                 string
	BoardSize            int
	BotTimeBudgetMs      int
	RematchWindow        time.Duration
	AllowedOrigins       []string
	OAuthConfig          OAuthConfig
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	FrontendURL          string
	JWTSecret            string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	boardSize := GetEnvAsInt("BOARD_SIZE", 9)
	if boardSize < 2 {
		log.Printf("BOARD_SIZE %d too small, using 9", boardSize)
		boardSize = 9
	}
	botTimeBudgetMs := GetEnvAsInt("BOT_TIME_BUDGET_MS", 2000)

	rematchWindowSec := GetEnvAsInt("REMATCH_WINDOW_SECONDS", 30)

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + Localhost + CSV values)
	allowedOrigins := []string{
		frontendURL,
		"http://localhost:5173", // Local development
	}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Database Config
	dbURL := GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", ""))
	dbMaxOpenConns := GetEnvAsInt("DB_MAX_OPEN_CONNS", 25)
	dbMaxIdleConns := GetEnvAsInt("DB_MAX_IDLE_CONNS", 25)
	dbConnMaxLifetimeMin := GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")

	oauthConfig := LoadOAuthConfig()

	AppConfig = &Config{
		Port:                 port,
		BoardSize:            boardSize,
		BotTimeBudgetMs:      botTimeBudgetMs,
		RematchWindow:        time.Duration(rematchWindowSec) * time.Second,
		AllowedOrigins:       allowedOrigins,
		OAuthConfig:          *oauthConfig,
		DatabaseURL:          dbURL,
		DBMaxOpenConns:       dbMaxOpenConns,
		DBMaxIdleConns:       dbMaxIdleConns,
		DBConnMaxLifetimeMin: dbConnMaxLifetimeMin,
		FrontendURL:          frontendURL,
		JWTSecret:            jwtSecret,
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
