package models

import (
	"database/sql"
	"fmt"
	"time"

	"gradkart/database"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TxnSaleCredit   TransactionType = "sale-credit"
	TxnAdminCredit  TransactionType = "admin-credit"
	TxnAdminRestore TransactionType = "admin-restore"
	TxnPurchase     TransactionType = "purchase"
	TxnWithdrawal   TransactionType = "withdrawal"
	TxnCashback     TransactionType = "cashback"
)

type TransactionStatus string

const (
	TxnPendingStatus   TransactionStatus = "pending"
	TxnCompletedStatus TransactionStatus = "completed"
	TxnRefundedStatus  TransactionStatus = "refunded"
)

// Wallet balances: withdrawable can leave the platform, usable can only be
// spent on it (cashback and goodwill credits).
type Wallet struct {
	UserID       string `json:"userId"`
	Withdrawable int64  `json:"withdrawable"`
	Usable       int64  `json:"usable"`
}

type WalletTransaction struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Type      TransactionType   `json:"type"`
	Amount    int64             `json:"amount"`
	Status    TransactionStatus `json:"status"`
	Note      string            `json:"note,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

func GetWallet(userID string) (*Wallet, error) {
	var w Wallet
	err := db.DB().QueryRow(`
		SELECT user_id, withdrawable, usable FROM wallets WHERE user_id = ?
	`, userID).Scan(&w.UserID, &w.Withdrawable, &w.Usable)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &w, nil
}

func ListWallets() ([]Wallet, error) {
	rows, err := db.DB().Query(`SELECT user_id, withdrawable, usable FROM wallets`)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []Wallet
	for rows.Next() {
		var w Wallet
		if err := rows.Scan(&w.UserID, &w.Withdrawable, &w.Usable); err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

func ListWalletTransactions(userID string) ([]WalletTransaction, error) {
	rows, err := db.DB().Query(`
		SELECT id, user_id, type, amount, status, note, created_at
		FROM wallet_transactions WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []WalletTransaction
	for rows.Next() {
		var t WalletTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Status, &t.Note, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// CreditWallet adds to one balance and records the transaction atomically.
// toUsable picks the usable balance instead of withdrawable.
func CreditWallet(userID string, amount int64, txnType TransactionType, note string, toUsable bool) (*WalletTransaction, error) {
	tx, err := db.DB().Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin credit: %w", err)
	}
	defer tx.Rollback()

	t, err := creditWalletTx(tx, userID, amount, txnType, note, toUsable)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit credit: %w", err)
	}
	return t, nil
}

func creditWalletTx(tx *sql.Tx, userID string, amount int64, txnType TransactionType, note string, toUsable bool) (*WalletTransaction, error) {
	column := "withdrawable"
	if toUsable {
		column = "usable"
	}
	res, err := tx.Exec(`UPDATE wallets SET `+column+` = `+column+` + ? WHERE user_id = ?`, amount, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	t := &WalletTransaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      txnType,
		Amount:    amount,
		Status:    TxnCompletedStatus,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
	_, err = tx.Exec(`
		INSERT INTO wallet_transactions (id, user_id, type, amount, status, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.UserID, t.Type, t.Amount, t.Status, t.Note, t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record credit: %w", err)
	}
	return t, nil
}

// CreditSale pays a completed order into the seller's withdrawable balance
// inside the caller's transaction.
func CreditSale(tx *sql.Tx, sellerID string, amount int64, orderID string) error {
	_, err := creditWalletTx(tx, sellerID, amount, TxnSaleCredit, "Sale of order "+orderID, false)
	return err
}
