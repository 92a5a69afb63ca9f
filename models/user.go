package models

import (
	"database/sql"
	"fmt"
	"time"

	"gradkart/database"

	"github.com/google/uuid"
)

// UserStatus is the approval-gate state set by the admin console.
type UserStatus string

const (
	UserPending  UserStatus = "pending"
	UserApproved UserStatus = "approved"
	UserRejected UserStatus = "rejected"
)

type User struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	College          string     `json:"college"`
	PasswordHash     string     `json:"-"`
	Status           UserStatus `json:"status"`
	VerificationType string     `json:"verificationType"`
	IsBlocked        bool       `json:"isBlocked"`
	BlockReason      string     `json:"blockReason,omitempty"`
	BlockedAt        *time.Time `json:"blockedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

const userColumns = `id, name, email, phone, college, password_hash, status,
	verification_type, is_blocked, block_reason, blocked_at, created_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	var blocked int
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.College,
		&u.PasswordHash, &u.Status, &u.VerificationType, &blocked,
		&u.BlockReason, &u.BlockedAt, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	u.IsBlocked = blocked != 0
	return &u, nil
}

// CreateUser inserts a new signup in the pending state and opens an empty
// wallet for it.
func CreateUser(name, email, phone, college, passwordHash, verificationType string) (*User, error) {
	existing, err := GetUserByEmail(email)
	if err != nil && err != ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	u := &User{
		ID:               uuid.NewString(),
		Name:             name,
		Email:            email,
		Phone:            phone,
		College:          college,
		PasswordHash:     passwordHash,
		Status:           UserPending,
		VerificationType: verificationType,
		CreatedAt:        time.Now().UTC(),
	}

	tx, err := db.DB().Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO users (id, name, email, phone, college, password_hash, status, verification_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Name, u.Email, u.Phone, u.College, u.PasswordHash, u.Status, u.VerificationType, u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	if _, err := tx.Exec(`INSERT INTO wallets (user_id) VALUES (?)`, u.ID); err != nil {
		return nil, fmt.Errorf("failed to open wallet: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit user: %w", err)
	}
	return u, nil
}

func GetUserByID(id string) (*User, error) {
	row := db.DB().QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func GetUserByEmail(email string) (*User, error) {
	row := db.DB().QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func ListUsers() ([]User, error) {
	rows, err := db.DB().Query(`SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// SetUserStatus moves a user through the approval gate. Only pending users
// can be approved or rejected; a rejected user goes back to pending when
// they retry signup verification.
func SetUserStatus(id string, status UserStatus) error {
	res, err := db.DB().Exec(`UPDATE users SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// BlockUser blocks a user with a reason. Blocking is independent of the
// approval status and always wins over it.
func BlockUser(id, reason string) error {
	res, err := db.DB().Exec(`
		UPDATE users SET is_blocked = 1, block_reason = ?, blocked_at = ? WHERE id = ?
	`, reason, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func UnblockUser(id string) error {
	res, err := db.DB().Exec(`
		UPDATE users SET is_blocked = 0, block_reason = '', blocked_at = NULL WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to unblock user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
