package models

import (
	"database/sql"
	"fmt"

	"gradkart/database"

	"github.com/google/uuid"
)

type Address struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Label     string `json:"label,omitempty"`
	Line1     string `json:"line1"`
	Line2     string `json:"line2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	Pincode   string `json:"pincode,omitempty"`
	IsDefault bool   `json:"isDefault"`
}

// CreateAddress adds a delivery address. Making it the default clears the
// flag on the user's other addresses.
func CreateAddress(a Address) (*Address, error) {
	a.ID = uuid.NewString()

	tx, err := db.DB().Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin address insert: %w", err)
	}
	defer tx.Rollback()

	if a.IsDefault {
		if _, err := tx.Exec(`UPDATE addresses SET is_default = 0 WHERE user_id = ?`, a.UserID); err != nil {
			return nil, fmt.Errorf("failed to clear default address: %w", err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO addresses (id, user_id, label, line1, line2, city, state, pincode, is_default)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.UserID, a.Label, a.Line1, a.Line2, a.City, a.State, a.Pincode, boolToInt(a.IsDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to insert address: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit address: %w", err)
	}
	return &a, nil
}

func ListAddresses(userID string) ([]Address, error) {
	rows, err := db.DB().Query(`
		SELECT id, user_id, label, line1, line2, city, state, pincode, is_default
		FROM addresses WHERE user_id = ? ORDER BY is_default DESC, label
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	var addrs []Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, *a)
	}
	return addrs, rows.Err()
}

func scanAddress(row interface{ Scan(...any) error }) (*Address, error) {
	var a Address
	var isDefault int
	err := row.Scan(&a.ID, &a.UserID, &a.Label, &a.Line1, &a.Line2, &a.City,
		&a.State, &a.Pincode, &isDefault)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan address: %w", err)
	}
	a.IsDefault = isDefault != 0
	return &a, nil
}

func DeleteAddress(id, userID string) error {
	res, err := db.DB().Exec(`DELETE FROM addresses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
