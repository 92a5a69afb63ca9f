package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port              string
	DBPath            string
	JWTSecret         []byte
	AdminUsername     string
	AdminPasswordHash string
	SeedDemoData      bool
	EmailFrom         string
	EmailPass         string
	PayoutDelay       time.Duration
	CORSOrigin        string
}

func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "./gradkart.db"),
		JWTSecret:     []byte(getEnv("JWT_SECRET", "")),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		SeedDemoData:  getEnv("SEED_DEMO_DATA", "false") == "true",
		EmailFrom:     os.Getenv("EMAIL_FROM"),
		EmailPass:     os.Getenv("EMAIL_PASS"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}

	if len(cfg.JWTSecret) == 0 {
		log.Println("Warning: JWT_SECRET not set, sessions will not survive a restart")
		cfg.JWTSecret = []byte(time.Now().Format(time.RFC3339Nano))
	}

	// ADMIN_PASSWORD_HASH takes precedence; otherwise hash the plain
	// ADMIN_PASSWORD (default matches the stock console credential).
	cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	if cfg.AdminPasswordHash == "" {
		plain := getEnv("ADMIN_PASSWORD", "gradkart2024")
		hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash admin password:", err)
		}
		cfg.AdminPasswordHash = string(hashed)
	}

	payoutHours, err := strconv.Atoi(getEnv("PAYOUT_DELAY_HOURS", "48"))
	if err != nil || payoutHours < 0 {
		payoutHours = 48
	}
	cfg.PayoutDelay = time.Duration(payoutHours) * time.Hour

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
