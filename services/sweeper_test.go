package services

import (
	"testing"
	"time"

	"gradkart/database"
	"gradkart/models"
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

func deliveredOrder(t *testing.T) (*models.Order, string) {
	t.Helper()
	seller, err := models.CreateUser("Seller", "seller@test.in", "9000000000", "IIT Delhi", "hash", "email")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	buyer, err := models.CreateUser("Buyer", "buyer@test.in", "9000000001", "IIT Delhi", "hash", "email")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	listing, err := models.CreateListing(seller.ID, "Drafter", "stationery", 600, "good", "", nil)
	if err != nil {
		t.Fatalf("CreateListing failed: %v", err)
	}
	order, err := models.Checkout(listing.ID, buyer.ID, "", models.DeliveryPickup, "upi")
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if _, err := models.ShipOrder(order.ID, seller.ID); err != nil {
		t.Fatalf("ShipOrder failed: %v", err)
	}
	if _, err := models.DeliverOrder(order.ID, buyer.ID); err != nil {
		t.Fatalf("DeliverOrder failed: %v", err)
	}
	return order, seller.ID
}

func TestReleasePayoutsCompletesOverdueOrders(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	order, sellerID := deliveredOrder(t)

	// Backdate delivery past the payout delay.
	stale := time.Now().UTC().Add(-49 * time.Hour)
	if _, err := db.DB().Exec(`UPDATE orders SET updated_at = ? WHERE id = ?`, stale, order.ID); err != nil {
		t.Fatalf("Failed to backdate order: %v", err)
	}

	NewSweeper(48 * time.Hour).ReleasePayouts()

	got, err := models.GetOrderByID(order.ID)
	if err != nil {
		t.Fatalf("GetOrderByID failed: %v", err)
	}
	if got.Status != models.OrderCompleted {
		t.Errorf("Expected completed order, got %s", got.Status)
	}

	wallet, err := models.GetWallet(sellerID)
	if err != nil {
		t.Fatalf("GetWallet failed: %v", err)
	}
	if wallet.Withdrawable != 600 {
		t.Errorf("Expected sale credit of 600, got %d", wallet.Withdrawable)
	}
}

func TestReleasePayoutsLeavesRecentDeliveriesAlone(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	order, sellerID := deliveredOrder(t)

	NewSweeper(48 * time.Hour).ReleasePayouts()

	got, err := models.GetOrderByID(order.ID)
	if err != nil {
		t.Fatalf("GetOrderByID failed: %v", err)
	}
	if got.Status != models.OrderDelivered {
		t.Errorf("Expected order still delivered, got %s", got.Status)
	}

	wallet, err := models.GetWallet(sellerID)
	if err != nil {
		t.Fatalf("GetWallet failed: %v", err)
	}
	if wallet.Withdrawable != 0 {
		t.Errorf("Expected no credit yet, got %d", wallet.Withdrawable)
	}
}

func TestPruneNotifications(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	user, err := models.CreateUser("User", "user@test.in", "9000000000", "IIT Delhi", "hash", "email")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	models.Notify(user.ID, "test", "Old read", "")
	models.Notify(user.ID, "test", "Old unread", "")
	models.Notify(user.ID, "test", "Fresh read", "")

	items, err := models.ListNotifications(user.ID)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	stale := time.Now().UTC().Add(-31 * 24 * time.Hour)
	for _, n := range items {
		if n.Title != "Fresh read" {
			if _, err := db.DB().Exec(`UPDATE notifications SET created_at = ? WHERE id = ?`, stale, n.ID); err != nil {
				t.Fatalf("Failed to backdate notification: %v", err)
			}
		}
		if n.Title != "Old unread" {
			if err := models.MarkNotificationRead(n.ID, user.ID); err != nil {
				t.Fatalf("MarkNotificationRead failed: %v", err)
			}
		}
	}

	NewSweeper(48 * time.Hour).PruneNotifications()

	items, err = models.ListNotifications(user.ID)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 notifications left, got %d", len(items))
	}
	for _, n := range items {
		if n.Title == "Old read" {
			t.Error("Expected the old read notification to be pruned")
		}
	}
}
