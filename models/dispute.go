package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"gradkart/database"

	"github.com/google/uuid"
)

type DisputeStatus string

const (
	DisputePending       DisputeStatus = "pending"
	DisputeInvestigating DisputeStatus = "investigating"
	DisputeResolved      DisputeStatus = "resolved"
	DisputeClosed        DisputeStatus = "closed"
)

type DisputePriority string

const (
	PriorityLow    DisputePriority = "low"
	PriorityMedium DisputePriority = "medium"
	PriorityHigh   DisputePriority = "high"
)

type Dispute struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	OrderID     *string         `json:"orderId,omitempty"`
	Type        string          `json:"type"`
	Subject     string          `json:"subject"`
	Description string          `json:"description"`
	Evidence    []string        `json:"evidence"`
	Status      DisputeStatus   `json:"status"`
	Priority    DisputePriority `json:"priority"`
	Resolution  string          `json:"resolution,omitempty"`
	ResolvedAt  *time.Time      `json:"resolvedAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// DisputePriorityFor derives the triage priority from the dispute type.
func DisputePriorityFor(disputeType string) DisputePriority {
	switch disputeType {
	case "fraud":
		return PriorityHigh
	case "payment":
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// CreateDispute files a dispute. Evidence items are inline data URLs.
func CreateDispute(userID, orderID, disputeType, subject, description string, evidence []string) (*Dispute, error) {
	d := &Dispute{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        disputeType,
		Subject:     subject,
		Description: description,
		Evidence:    evidence,
		Status:      DisputePending,
		Priority:    DisputePriorityFor(disputeType),
		CreatedAt:   time.Now().UTC(),
	}
	if d.Evidence == nil {
		d.Evidence = []string{}
	}
	if orderID != "" {
		if _, err := GetOrderByID(orderID); err != nil {
			return nil, err
		}
		d.OrderID = &orderID
	}

	evidenceJSON, err := json.Marshal(d.Evidence)
	if err != nil {
		return nil, fmt.Errorf("failed to encode evidence: %w", err)
	}

	_, err = db.DB().Exec(`
		INSERT INTO disputes (id, user_id, order_id, type, subject, description, evidence, status, priority, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.UserID, d.OrderID, d.Type, d.Subject, d.Description, string(evidenceJSON), d.Status, d.Priority, d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert dispute: %w", err)
	}
	return d, nil
}

const disputeColumns = `id, user_id, order_id, type, subject, description,
	evidence, status, priority, resolution, resolved_at, created_at`

func scanDispute(row interface{ Scan(...any) error }) (*Dispute, error) {
	var d Dispute
	var evidence string
	err := row.Scan(&d.ID, &d.UserID, &d.OrderID, &d.Type, &d.Subject,
		&d.Description, &evidence, &d.Status, &d.Priority, &d.Resolution,
		&d.ResolvedAt, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan dispute: %w", err)
	}
	if err := json.Unmarshal([]byte(evidence), &d.Evidence); err != nil {
		d.Evidence = nil
	}
	return &d, nil
}

func GetDisputeByID(id string) (*Dispute, error) {
	row := db.DB().QueryRow(`SELECT `+disputeColumns+` FROM disputes WHERE id = ?`, id)
	return scanDispute(row)
}

func ListDisputesByUser(userID string) ([]Dispute, error) {
	return queryDisputes(`SELECT `+disputeColumns+` FROM disputes WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func ListAllDisputes() ([]Dispute, error) {
	return queryDisputes(`SELECT ` + disputeColumns + ` FROM disputes ORDER BY created_at DESC`)
}

func queryDisputes(query string, args ...any) ([]Dispute, error) {
	rows, err := db.DB().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query disputes: %w", err)
	}
	defer rows.Close()

	var disputes []Dispute
	for rows.Next() {
		d, err := scanDispute(rows)
		if err != nil {
			return nil, err
		}
		disputes = append(disputes, *d)
	}
	return disputes, rows.Err()
}

// InvestigateDispute moves a pending dispute into investigation.
func InvestigateDispute(id string) error {
	return updateDisputeStatus(id, DisputeInvestigating, "", false)
}

// ResolveDispute records the admin's free-text resolution.
func ResolveDispute(id, resolution string) error {
	return updateDisputeStatus(id, DisputeResolved, resolution, true)
}

// CloseDispute closes a dispute without a resolution text.
func CloseDispute(id string) error {
	return updateDisputeStatus(id, DisputeClosed, "", true)
}

func updateDisputeStatus(id string, status DisputeStatus, resolution string, terminal bool) error {
	query := `UPDATE disputes SET status = ?`
	args := []any{status}
	if resolution != "" {
		query += `, resolution = ?`
		args = append(args, resolution)
	}
	if terminal {
		query += `, resolved_at = ?`
		args = append(args, time.Now().UTC())
	}
	query += ` WHERE id = ? AND status NOT IN (?, ?)`
	args = append(args, id, DisputeResolved, DisputeClosed)

	res, err := db.DB().Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update dispute: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBadTransition
	}
	return nil
}
