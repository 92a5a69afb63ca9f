package models

import "testing"

func TestWithdrawalExceedingBalance(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	user := mustCreateUser(t, "User", "user@test.in")
	if _, err := CreditWallet(user.ID, 500, TxnAdminCredit, "test credit", false); err != nil {
		t.Fatalf("CreditWallet failed: %v", err)
	}

	_, err := CreateWithdrawal(user.ID, 501, WithdrawalMethodUPI, Destination{VPA: "user@upi"})
	if err != ErrInsufficientBalance {
		t.Errorf("Expected ErrInsufficientBalance, got %v", err)
	}

	wallet, err := GetWallet(user.ID)
	if err != nil {
		t.Fatalf("GetWallet failed: %v", err)
	}
	if wallet.Withdrawable != 500 {
		t.Errorf("Failed withdrawal must not touch the balance, got %d", wallet.Withdrawable)
	}
}

func TestWithdrawalDebitsAndFilesRequestAtomically(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	user := mustCreateUser(t, "User", "user@test.in")
	if _, err := CreditWallet(user.ID, 1000, TxnSaleCredit, "sale", false); err != nil {
		t.Fatalf("CreditWallet failed: %v", err)
	}

	req, err := CreateWithdrawal(user.ID, 600, WithdrawalMethodBank, Destination{
		AccountName:   "Test User",
		AccountNumber: "1234567890",
		IFSC:          "HDFC0001234",
	})
	if err != nil {
		t.Fatalf("CreateWithdrawal failed: %v", err)
	}
	if req.Status != WithdrawalPending {
		t.Errorf("Expected pending request, got %s", req.Status)
	}

	wallet, err := GetWallet(user.ID)
	if err != nil {
		t.Fatalf("GetWallet failed: %v", err)
	}
	if wallet.Withdrawable != 400 {
		t.Errorf("Expected withdrawable 400 after debit, got %d", wallet.Withdrawable)
	}

	// The wallet transaction and the request share one ID.
	txns, err := ListWalletTransactions(user.ID)
	if err != nil {
		t.Fatalf("ListWalletTransactions failed: %v", err)
	}
	var found bool
	for _, txn := range txns {
		if txn.ID == req.ID {
			found = true
			if txn.Type != TxnWithdrawal {
				t.Errorf("Expected withdrawal transaction, got %s", txn.Type)
			}
			if txn.Status != TxnPendingStatus {
				t.Errorf("Expected pending transaction, got %s", txn.Status)
			}
			if txn.Amount != -600 {
				t.Errorf("Expected amount -600, got %d", txn.Amount)
			}
		}
	}
	if !found {
		t.Error("Expected a wallet transaction sharing the request ID")
	}
}

func TestRejectWithdrawalRefunds(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	user := mustCreateUser(t, "User", "user@test.in")
	if _, err := CreditWallet(user.ID, 1000, TxnSaleCredit, "sale", false); err != nil {
		t.Fatalf("CreditWallet failed: %v", err)
	}

	req, err := CreateWithdrawal(user.ID, 600, WithdrawalMethodUPI, Destination{VPA: "user@upi"})
	if err != nil {
		t.Fatalf("CreateWithdrawal failed: %v", err)
	}

	if err := RejectWithdrawal(req.ID, "Details did not match"); err != nil {
		t.Fatalf("RejectWithdrawal failed: %v", err)
	}

	wallet, err := GetWallet(user.ID)
	if err != nil {
		t.Fatalf("GetWallet failed: %v", err)
	}
	if wallet.Withdrawable != 1000 {
		t.Errorf("Expected refund back to 1000, got %d", wallet.Withdrawable)
	}

	// Settling twice must fail and not refund again.
	if err := RejectWithdrawal(req.ID, "again"); err != ErrBadTransition {
		t.Errorf("Expected ErrBadTransition on second settle, got %v", err)
	}
}

func TestApproveWithdrawalCompletesTransaction(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	user := mustCreateUser(t, "User", "user@test.in")
	if _, err := CreditWallet(user.ID, 1000, TxnSaleCredit, "sale", false); err != nil {
		t.Fatalf("CreditWallet failed: %v", err)
	}

	req, err := CreateWithdrawal(user.ID, 250, WithdrawalMethodUPI, Destination{VPA: "user@upi"})
	if err != nil {
		t.Fatalf("CreateWithdrawal failed: %v", err)
	}
	if err := ApproveWithdrawal(req.ID, "Paid out"); err != nil {
		t.Fatalf("ApproveWithdrawal failed: %v", err)
	}

	got, err := GetWithdrawalByID(req.ID)
	if err != nil {
		t.Fatalf("GetWithdrawalByID failed: %v", err)
	}
	if got.Status != WithdrawalApproved {
		t.Errorf("Expected approved, got %s", got.Status)
	}
	if got.ProcessedAt == nil {
		t.Error("Expected processedAt to be set")
	}

	txns, err := ListWalletTransactions(user.ID)
	if err != nil {
		t.Fatalf("ListWalletTransactions failed: %v", err)
	}
	for _, txn := range txns {
		if txn.ID == req.ID && txn.Status != TxnCompletedStatus {
			t.Errorf("Expected completed transaction, got %s", txn.Status)
		}
	}
}

func TestCreditWalletUsableBalance(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	user := mustCreateUser(t, "User", "user@test.in")
	if _, err := CreditWallet(user.ID, 50, TxnCashback, "cashback", true); err != nil {
		t.Fatalf("CreditWallet failed: %v", err)
	}

	wallet, err := GetWallet(user.ID)
	if err != nil {
		t.Fatalf("GetWallet failed: %v", err)
	}
	if wallet.Usable != 50 || wallet.Withdrawable != 0 {
		t.Errorf("Expected usable=50 withdrawable=0, got usable=%d withdrawable=%d",
			wallet.Usable, wallet.Withdrawable)
	}
}
