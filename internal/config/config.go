package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string

	// Insights horizons and live stream
	OverviewHours     int
	StaffPlanHours    int
	BroadcastInterval time.Duration
	DefaultServiceID  string

	// WebSocket timeouts
	WSReadTimeout  time.Duration
	WSWriteTimeout time.Duration
	PingPeriod     time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64

	// Auth for admin routes
	AuthIssuer string
	SkipAuth   bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Port:             getEnv("PORT", "8000"),
		AllowedOrigins:   strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DefaultServiceID: getEnv("DEFAULT_SERVICE_ID", "general"),
		AuthIssuer:       getEnv("AUTH_ISSUER", ""),
		SkipAuth:         getEnv("SKIP_AUTH", "false") == "true",
	}

	overviewHours, err := strconv.Atoi(getEnv("OVERVIEW_HOURS", "8"))
	if err != nil || overviewHours < 1 {
		return nil, fmt.Errorf("invalid OVERVIEW_HOURS: %q", getEnv("OVERVIEW_HOURS", "8"))
	}
	config.OverviewHours = overviewHours

	staffPlanHours, err := strconv.Atoi(getEnv("STAFF_PLAN_HOURS", "24"))
	if err != nil || staffPlanHours < 1 {
		return nil, fmt.Errorf("invalid STAFF_PLAN_HOURS: %q", getEnv("STAFF_PLAN_HOURS", "24"))
	}
	config.StaffPlanHours = staffPlanHours

	broadcastSecs, err := strconv.Atoi(getEnv("BROADCAST_INTERVAL", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid BROADCAST_INTERVAL: %w", err)
	}
	config.BroadcastInterval = time.Duration(broadcastSecs) * time.Second

	wsReadTimeout, err := strconv.Atoi(getEnv("WS_READ_TIMEOUT", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid WS_READ_TIMEOUT: %w", err)
	}
	config.WSReadTimeout = time.Duration(wsReadTimeout) * time.Second

	wsWriteTimeout, err := strconv.Atoi(getEnv("WS_WRITE_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid WS_WRITE_TIMEOUT: %w", err)
	}
	config.WSWriteTimeout = time.Duration(wsWriteTimeout) * time.Second

	// Calculate WebSocket constants
	config.PongWait = config.WSReadTimeout
	config.PingPeriod = (config.PongWait * 9) / 10 // Must be less than pongWait
	config.WriteWait = config.WSWriteTimeout
	config.MaxMessageSize = 512

	// Trim spaces from allowed origins
	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
