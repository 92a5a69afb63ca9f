package models

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"gradkart/database"
)

const shutdownKey = "shutdown"

// ShutdownSettings is the maintenance banner: while enabled, marketplace
// writes are refused and clients show the message.
type ShutdownSettings struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message,omitempty"`
}

func GetShutdownSettings() (*ShutdownSettings, error) {
	var value string
	err := db.DB().QueryRow(`SELECT value FROM settings WHERE key = ?`, shutdownKey).Scan(&value)
	if err == sql.ErrNoRows {
		return &ShutdownSettings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shutdown settings: %w", err)
	}

	var s ShutdownSettings
	if err := json.Unmarshal([]byte(value), &s); err != nil {
		return &ShutdownSettings{}, nil
	}
	return &s, nil
}

func SetShutdownSettings(s ShutdownSettings) error {
	value, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode shutdown settings: %w", err)
	}
	_, err = db.DB().Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, shutdownKey, string(value))
	if err != nil {
		return fmt.Errorf("failed to save shutdown settings: %w", err)
	}
	return nil
}
