package models

import (
	"testing"

	"gradkart/database"
)

func setupTestDB(t *testing.T) {
	// Use in-memory database for tests
	if err := db.InitDB(":memory:"); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
}

func cleanupTestDB(t *testing.T) {
	db.CloseDB()
}

func mustCreateUser(t *testing.T, name, email string) *User {
	t.Helper()
	u, err := CreateUser(name, email, "9876543210", "IIT Delhi", "hash", "email")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return u
}

func mustApproveUser(t *testing.T, id string) {
	t.Helper()
	if err := SetUserStatus(id, UserApproved); err != nil {
		t.Fatalf("SetUserStatus failed: %v", err)
	}
}

func mustCreateListing(t *testing.T, sellerID string, price int64) *Listing {
	t.Helper()
	l, err := CreateListing(sellerID, "MacBook Air M1", "electronics", price, "good", "Lightly used", nil)
	if err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}
	return l
}
