package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	TokenTTL      time.Duration
	AllowOrigins  []string
	ResetTokenTTL time.Duration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFrom      string
	AsaasBaseURL  string
	AsaasAPIKey   string
	LogMirrorAddr string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	return Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   must("DATABASE_URL"),
		JWTSecret:     must("JWT_SECRET"),
		TokenTTL:      duration("TOKEN_TTL", 0),
		AllowOrigins:  splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		ResetTokenTTL: duration("RESET_TOKEN_TTL", time.Hour),
		SMTPHost:      getenv("SMTP_HOST", ""),
		SMTPPort:      getenv("SMTP_PORT", ""),
		SMTPUsername:  getenv("SMTP_USERNAME", ""),
		SMTPPassword:  getenv("SMTP_PASSWORD", ""),
		SMTPFrom:      getenv("SMTP_FROM", ""),
		AsaasBaseURL:  getenv("ASAAS_BASE_URL", "https://www.asaas.com/api/v3"),
		AsaasAPIKey:   getenv("ASAAS_API_KEY", ""),
		LogMirrorAddr: getenv("LOG_MIRROR_ADDR", ""),
	}
}

// duration parses a Go duration from the environment, falling back to d on
// absence or a bad value. TOKEN_TTL defaults to zero: sessions stay valid
// until the signing secret rotates.
func duration(k string, d time.Duration) time.Duration {
	raw := os.Getenv(k)
	if raw == "" {
		return d
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		log.Printf("Warning: invalid %s=%q, using %s", k, raw, d)
		return d
	}
	return v
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
