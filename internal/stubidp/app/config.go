package app

import (
	"os"
	"strconv"
	"time"

	"github.com/lanternsec/fusionkit/pkg/jwtx"
)

type Config struct {
	APIKey        string // Optional: API key callers must present (generated when unset)
	TenantID      string // Optional: tenant id callers must present (generated when unset)
	ApplicationID string // Optional: application id tokens are issued for (generated when unset)
	JWTSecret     string // Optional: HS256 signing secret, min 32 bytes (generated when unset)

	Issuer        string // Optional: issuer claim for tokens (default: fusionkit-stubidp)
	DatabaseFile  string // Optional: path to SQLite database file (default: ./stubidp.db)
	KickstartFile string // Optional: path to a kickstart YAML applied at boot
	Pepper        string // Optional: pepper mixed into password hashes

	AccessTokenTTL    time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTokenTTL   time.Duration // Optional: refresh token lifetime (default: 30 days)
	MinPasswordLength int           // Optional: registration password policy (default: 8)
	MaxFailedAttempts int           // Optional: failures before lockout (default: 5)
	LockoutDuration   time.Duration // Optional: how long a lockout holds (default: 15m)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 9011)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		APIKey:        os.Getenv("STUBIDP_API_KEY"),
		TenantID:      os.Getenv("STUBIDP_TENANT_ID"),
		ApplicationID: os.Getenv("STUBIDP_APPLICATION_ID"),
		JWTSecret:     os.Getenv("STUBIDP_JWT_SECRET"),

		Issuer:        getEnvOrDefault("STUBIDP_ISSUER", "fusionkit-stubidp"),
		DatabaseFile:  getEnvOrDefault("STUBIDP_DATABASE_FILE", "stubidp.db"),
		KickstartFile: os.Getenv("STUBIDP_KICKSTART_FILE"),
		Pepper:        os.Getenv("STUBIDP_PEPPER"),

		AccessTokenTTL:    getEnvDurationOrDefault("STUBIDP_ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL:   getEnvDurationOrDefault("STUBIDP_REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),
		MinPasswordLength: getEnvIntOrDefault("STUBIDP_MIN_PASSWORD_LENGTH", 0), // 0 = service default
		MaxFailedAttempts: getEnvIntOrDefault("STUBIDP_MAX_FAILED_ATTEMPTS", 0), // 0 = service default
		LockoutDuration:   getEnvDurationOrDefault("STUBIDP_LOCKOUT_DURATION", 0),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 9011),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
