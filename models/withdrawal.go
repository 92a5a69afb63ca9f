package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"gradkart/database"

	"github.com/google/uuid"
)

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

const (
	WithdrawalMethodUPI  = "upi"
	WithdrawalMethodBank = "bank"
)

// Destination holds the payout target. UPI uses only the VPA field; bank
// transfers use the account fields.
type Destination struct {
	VPA           string `json:"vpa,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	IFSC          string `json:"ifsc,omitempty"`
}

type WithdrawalRequest struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	Amount      int64            `json:"amount"`
	Method      string           `json:"method"`
	Destination Destination      `json:"destination"`
	Status      WithdrawalStatus `json:"status"`
	AdminNote   string           `json:"adminNote,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	ProcessedAt *time.Time       `json:"processedAt,omitempty"`
}

// CreateWithdrawal debits the withdrawable balance, records the pending
// wallet transaction and files the request for admin review, all in one
// transaction. The transaction and the request share one ID so either side
// can be traced to the other.
func CreateWithdrawal(userID string, amount int64, method string, dest Destination) (*WithdrawalRequest, error) {
	if amount <= 0 {
		return nil, ErrInsufficientBalance
	}

	destJSON, err := json.Marshal(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to encode destination: %w", err)
	}

	tx, err := db.DB().Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin withdrawal: %w", err)
	}
	defer tx.Rollback()

	// Conditional debit: fails when the balance would go negative.
	res, err := tx.Exec(`
		UPDATE wallets SET withdrawable = withdrawable - ?
		WHERE user_id = ? AND withdrawable >= ?
	`, amount, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to debit wallet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrInsufficientBalance
	}

	w := &WithdrawalRequest{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      amount,
		Method:      method,
		Destination: dest,
		Status:      WithdrawalPending,
		CreatedAt:   time.Now().UTC(),
	}

	_, err = tx.Exec(`
		INSERT INTO wallet_transactions (id, user_id, type, amount, status, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, w.ID, userID, TxnWithdrawal, -amount, TxnPendingStatus, "Withdrawal via "+method, w.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record withdrawal transaction: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO withdrawal_requests (id, user_id, amount, method, destination, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, w.ID, w.UserID, w.Amount, w.Method, string(destJSON), w.Status, w.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert withdrawal request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit withdrawal: %w", err)
	}
	return w, nil
}

func scanWithdrawal(row interface{ Scan(...any) error }) (*WithdrawalRequest, error) {
	var w WithdrawalRequest
	var dest string
	err := row.Scan(&w.ID, &w.UserID, &w.Amount, &w.Method, &dest, &w.Status,
		&w.AdminNote, &w.CreatedAt, &w.ProcessedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan withdrawal: %w", err)
	}
	if err := json.Unmarshal([]byte(dest), &w.Destination); err != nil {
		w.Destination = Destination{}
	}
	return &w, nil
}

const withdrawalColumns = `id, user_id, amount, method, destination, status,
	admin_note, created_at, processed_at`

func GetWithdrawalByID(id string) (*WithdrawalRequest, error) {
	row := db.DB().QueryRow(`SELECT `+withdrawalColumns+` FROM withdrawal_requests WHERE id = ?`, id)
	return scanWithdrawal(row)
}

func ListWithdrawalsByUser(userID string) ([]WithdrawalRequest, error) {
	return queryWithdrawals(`SELECT `+withdrawalColumns+` FROM withdrawal_requests WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func ListAllWithdrawals() ([]WithdrawalRequest, error) {
	return queryWithdrawals(`SELECT ` + withdrawalColumns + ` FROM withdrawal_requests ORDER BY created_at DESC`)
}

func queryWithdrawals(query string, args ...any) ([]WithdrawalRequest, error) {
	rows, err := db.DB().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawals: %w", err)
	}
	defer rows.Close()

	var reqs []WithdrawalRequest
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *w)
	}
	return reqs, rows.Err()
}

// ApproveWithdrawal settles a pending request: the request is approved and
// the matching wallet transaction completes.
func ApproveWithdrawal(id, note string) error {
	return settleWithdrawal(id, note, WithdrawalApproved)
}

// RejectWithdrawal refunds a pending request: the held amount goes back to
// the withdrawable balance and the transaction is marked refunded.
func RejectWithdrawal(id, note string) error {
	return settleWithdrawal(id, note, WithdrawalRejected)
}

func settleWithdrawal(id, note string, status WithdrawalStatus) error {
	w, err := GetWithdrawalByID(id)
	if err != nil {
		return err
	}

	tx, err := db.DB().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin settle: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE withdrawal_requests SET status = ?, admin_note = ?, processed_at = ?
		WHERE id = ? AND status = ?
	`, status, note, time.Now().UTC(), id, WithdrawalPending)
	if err != nil {
		return fmt.Errorf("failed to settle withdrawal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBadTransition
	}

	txnStatus := TxnCompletedStatus
	if status == WithdrawalRejected {
		txnStatus = TxnRefundedStatus
		_, err = tx.Exec(`
			UPDATE wallets SET withdrawable = withdrawable + ? WHERE user_id = ?
		`, w.Amount, w.UserID)
		if err != nil {
			return fmt.Errorf("failed to refund wallet: %w", err)
		}
	}
	if _, err := tx.Exec(`UPDATE wallet_transactions SET status = ? WHERE id = ?`, txnStatus, id); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settle: %w", err)
	}
	return nil
}
