package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded if present; variables already set in the process win.
var envFile = ".env"

// parseEnv overlays values from the process environment. A .env file in the
// working directory is read first without overriding existing variables.
//
// Recognised variables:
//
//	ADDRESS, DATABASE_DSN, SECRET_KEY, ALGORITHM, ACCESS_TOKEN_EXPIRE_MINUTES,
//	COOKIE_SECURE, DEFAULT_PUBLIC_PATHS, CORS_ALLOWED_ORIGINS, GIN_MODE
//
// Malformed numeric or boolean values are ignored and the previous value is kept.
func parseEnv(config *Config) {
	_ = godotenv.Load(envFile)

	config.EndpointAddrHTTP = getEnv("ADDRESS", config.EndpointAddrHTTP)
	config.DatabaseDSN = getEnv("DATABASE_DSN", config.DatabaseDSN)
	config.SecretKey = getEnv("SECRET_KEY", config.SecretKey)
	config.Algorithm = getEnv("ALGORITHM", config.Algorithm)
	config.GinMode = getEnv("GIN_MODE", config.GinMode)

	if v, ok := getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES"); ok {
		config.AccessTokenValidityDuration = time.Duration(v) * time.Minute
	}
	if v, ok := getEnvAsBool("COOKIE_SECURE"); ok {
		config.CookieSecure = v
	}
	if v := os.Getenv("DEFAULT_PUBLIC_PATHS"); v != "" {
		config.PublicPaths = splitList(v)
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		config.CORSAllowedOrigins = splitList(v)
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string) (int, bool) {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0, false
	}
	return value, true
}

func getEnvAsBool(key string) (bool, bool) {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return false, false
	}
	return value, true
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
