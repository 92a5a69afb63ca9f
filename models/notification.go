package models

import (
	"fmt"
	"log"
	"time"

	"gradkart/database"

	"github.com/google/uuid"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notify writes a notification row. It logs and swallows failures so a dead
// notification never fails the operation that triggered it.
func Notify(userID, kind, title, body string) {
	_, err := db.DB().Exec(`
		INSERT INTO notifications (id, user_id, kind, title, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), userID, kind, title, body, time.Now().UTC())
	if err != nil {
		log.Println("Failed to write notification:", err)
	}
}

func ListNotifications(userID string) ([]Notification, error) {
	rows, err := db.DB().Query(`
		SELECT id, user_id, kind, title, body, read, created_at
		FROM notifications WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var items []Notification
	for rows.Next() {
		var n Notification
		var read int
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Body, &read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Read = read != 0
		items = append(items, n)
	}
	return items, rows.Err()
}

func MarkNotificationRead(id, userID string) error {
	res, err := db.DB().Exec(`
		UPDATE notifications SET read = 1 WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// PruneNotifications deletes read notifications older than the cutoff and
// returns how many were removed.
func PruneNotifications(cutoff time.Time) (int64, error) {
	res, err := db.DB().Exec(`
		DELETE FROM notifications WHERE read = 1 AND created_at < ?
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune notifications: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
