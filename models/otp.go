package models

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"
	"time"

	"gradkart/database"
)

// OTPTTL is how long an issued code stays valid.
const OTPTTL = 5 * time.Minute

// IssueOTP generates a 6-digit code for a key (an email for signup, a
// withdrawal intent ID for payouts) and stores it with an opaque payload the
// verify step needs. Re-issuing for the same key replaces the old code.
func IssueOTP(key string, payload []byte) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if payload == nil {
		payload = []byte("{}")
	}
	_, err = db.DB().Exec(`
		INSERT INTO otps (key, code, payload, expires_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET code = excluded.code,
			payload = excluded.payload, expires_at = excluded.expires_at
	`, key, code, string(payload), time.Now().UTC().Add(OTPTTL))
	if err != nil {
		return "", fmt.Errorf("failed to store OTP: %w", err)
	}
	return code, nil
}

// ConsumeOTP checks a code against the stored one and, on success, deletes
// it and returns the payload. A wrong or expired code is ErrInvalidOTP.
func ConsumeOTP(key, code string) ([]byte, error) {
	var stored, payload string
	var expiresAt time.Time
	err := db.DB().QueryRow(`
		SELECT code, payload, expires_at FROM otps WHERE key = ?
	`, key).Scan(&stored, &payload, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidOTP
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read OTP: %w", err)
	}

	if stored != code || time.Now().UTC().After(expiresAt) {
		return nil, ErrInvalidOTP
	}

	if _, err := db.DB().Exec(`DELETE FROM otps WHERE key = ?`, key); err != nil {
		return nil, fmt.Errorf("failed to consume OTP: %w", err)
	}
	return []byte(payload), nil
}
