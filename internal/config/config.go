package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every runtime setting of the server.
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	JWTSecret   string
	TokenExpiry time.Duration

	// Empty RedisURL keeps game sessions in process memory.
	RedisURL       string
	GameSessionTTL time.Duration

	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int

	SMTPHost         string
	SMTPPort         string
	SMTPSender       string
	SMTPPassword     string
	SafetyAlertEmail string

	LogLevel string
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017/"),
		DBName:           getEnv("DB_NAME", "mental_wellness"),
		JWTSecret:        getEnv("JWT_SECRET", "change-me"),
		TokenExpiry:      getDuration("TOKEN_EXPIRY", 24*time.Hour),
		RedisURL:         getEnv("REDIS_URL", ""),
		GameSessionTTL:   getDuration("GAME_SESSION_TTL", 2*time.Hour),
		AllowedOrigins:   getList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RateLimitRPS:     getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:   getInt("RATE_LIMIT_BURST", 20),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPSender:       getEnv("SMTP_SENDER", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SafetyAlertEmail: getEnv("SAFETY_ALERT_EMAIL", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("Invalid duration %q, using default", v)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("Invalid integer %q, using default", v)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logrus.WithField("key", key).Warnf("Invalid number %q, using default", v)
		return fallback
	}
	return f
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
