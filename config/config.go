package config

import (
	"os"
	"strings"
)

// Config collects everything the process reads from the environment.
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	JWTSecret     string
	OmisePublic   string
	OmiseSecret   string
	ClientBaseURL string
	CORSOrigins   []string
	GCSBucket     string
	SMTPAddr      string
	EmailFrom     string
	EmailPass     string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDB:       getEnv("MONGODB_DB", "scholarhub_db"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		OmisePublic:   getEnv("OMISE_PUBLIC_KEY", ""),
		OmiseSecret:   getEnv("OMISE_SECRET_KEY", ""),
		ClientBaseURL: getEnv("CLIENT_BASE_URL", "http://localhost:5173"),
		CORSOrigins:   splitEnv("CORS_ORIGINS", "http://localhost:5173"),
		GCSBucket:     getEnv("GCS_BUCKET", "scholarhub-images"),
		SMTPAddr:      getEnv("SMTP_ADDR", "smtp.gmail.com:587"),
		EmailFrom:     getEnv("EMAIL_FROM", ""),
		EmailPass:     getEnv("EMAIL_PASS", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitEnv(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
