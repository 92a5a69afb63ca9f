package models

import (
	"testing"
	"time"

	"gradkart/database"
)

func TestOrderTotal(t *testing.T) {
	cases := []struct {
		price    int64
		delivery string
		want     int64
	}{
		{45000, DeliveryPickup, 45900},
		{45000, DeliveryGradkart, 45999},
		{1000, DeliveryPickup, 1020},
		{1000, DeliveryGradkart, 1119},
		{75, DeliveryPickup, 77}, // 2% of 75 is 1.5, rounded to 2
	}
	for _, tc := range cases {
		if got := OrderTotal(tc.price, tc.delivery); got != tc.want {
			t.Errorf("OrderTotal(%d, %s) = %d, want %d", tc.price, tc.delivery, got, tc.want)
		}
	}
}

func TestCheckoutMarksListingSold(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	seller := mustCreateUser(t, "Seller", "seller@test.in")
	buyer := mustCreateUser(t, "Buyer", "buyer@test.in")
	listing := mustCreateListing(t, seller.ID, 45000)

	order, err := Checkout(listing.ID, buyer.ID, "", DeliveryPickup, "upi")
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if order.Amount != 45900 {
		t.Errorf("Expected total 45900, got %d", order.Amount)
	}
	if order.Status != OrderConfirmed {
		t.Errorf("Expected confirmed order, got %s", order.Status)
	}

	got, err := GetListingByID(listing.ID)
	if err != nil {
		t.Fatalf("GetListingByID failed: %v", err)
	}
	if got.Status != ListingSold {
		t.Errorf("Expected listing sold after checkout, got %s", got.Status)
	}
	if got.SoldTo != buyer.ID {
		t.Errorf("Expected soldTo %s, got %s", buyer.ID, got.SoldTo)
	}
}

func TestDoubleCheckoutFails(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	seller := mustCreateUser(t, "Seller", "seller@test.in")
	buyerA := mustCreateUser(t, "Buyer A", "a@test.in")
	buyerB := mustCreateUser(t, "Buyer B", "b@test.in")
	listing := mustCreateListing(t, seller.ID, 1000)

	if _, err := Checkout(listing.ID, buyerA.ID, "", DeliveryPickup, "upi"); err != nil {
		t.Fatalf("First checkout failed: %v", err)
	}
	if _, err := Checkout(listing.ID, buyerB.ID, "", DeliveryPickup, "upi"); err != ErrListingUnavailable {
		t.Errorf("Expected ErrListingUnavailable on second checkout, got %v", err)
	}
}

func TestCheckoutWithAcceptedOffer(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	seller := mustCreateUser(t, "Seller", "seller@test.in")
	buyer := mustCreateUser(t, "Buyer", "buyer@test.in")
	listing := mustCreateListing(t, seller.ID, 1000)

	offer, err := CreateOffer(listing.ID, buyer.ID, 950, "")
	if err != nil {
		t.Fatalf("CreateOffer failed: %v", err)
	}
	if _, err := AcceptOffer(offer.ID, seller.ID); err != nil {
		t.Fatalf("AcceptOffer failed: %v", err)
	}

	order, err := Checkout(listing.ID, buyer.ID, offer.ID, DeliveryPickup, "upi")
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if order.Price != 950 {
		t.Errorf("Expected order priced at the offer amount 950, got %d", order.Price)
	}
	if order.Amount != 950+PlatformFee(950) {
		t.Errorf("Expected total %d, got %d", 950+PlatformFee(950), order.Amount)
	}
}

func TestCheckoutWithPendingOfferRejected(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	seller := mustCreateUser(t, "Seller", "seller@test.in")
	buyer := mustCreateUser(t, "Buyer", "buyer@test.in")
	listing := mustCreateListing(t, seller.ID, 1000)

	offer, err := CreateOffer(listing.ID, buyer.ID, 950, "")
	if err != nil {
		t.Fatalf("CreateOffer failed: %v", err)
	}
	if _, err := Checkout(listing.ID, buyer.ID, offer.ID, DeliveryPickup, "upi"); err != ErrBadTransition {
		t.Errorf("Expected ErrBadTransition for a pending offer, got %v", err)
	}
}

func TestCancelOrderReopensListing(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	seller := mustCreateUser(t, "Seller", "seller@test.in")
	buyer := mustCreateUser(t, "Buyer", "buyer@test.in")
	listing := mustCreateListing(t, seller.ID, 1000)

	order, err := Checkout(listing.ID, buyer.ID, "", DeliveryPickup, "upi")
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	cancelled, err := CancelOrder(order.ID, buyer.ID, "Changed my mind")
	if err != nil {
		t.Fatalf("CancelOrder failed: %v", err)
	}
	if cancelled.Status != OrderCancelled {
		t.Errorf("Expected cancelled order, got %s", cancelled.Status)
	}

	got, err := GetListingByID(listing.ID)
	if err != nil {
		t.Fatalf("GetListingByID failed: %v", err)
	}
	if got.Status != ListingActive {
		t.Errorf("Expected listing active after cancel, got %s", got.Status)
	}
}

func TestCancelOrderOutsideWindow(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	seller := mustCreateUser(t, "Seller", "seller@test.in")
	buyer := mustCreateUser(t, "Buyer", "buyer@test.in")
	listing := mustCreateListing(t, seller.ID, 1000)

	order, err := Checkout(listing.ID, buyer.ID, "", DeliveryPickup, "upi")
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	// Backdate the order past the cancellation window.
	stale := time.Now().UTC().Add(-25 * time.Hour)
	if _, err := db.DB().Exec(`UPDATE orders SET created_at = ? WHERE id = ?`, stale, order.ID); err != nil {
		t.Fatalf("Failed to backdate order: %v", err)
	}

	if _, err := CancelOrder(order.ID, buyer.ID, "Too late"); err != ErrCancelWindowClosed {
		t.Errorf("Expected ErrCancelWindowClosed, got %v", err)
	}
}

func TestCancelShippedOrderRejected(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	seller := mustCreateUser(t, "Seller", "seller@test.in")
	buyer := mustCreateUser(t, "Buyer", "buyer@test.in")
	listing := mustCreateListing(t, seller.ID, 1000)

	order, err := Checkout(listing.ID, buyer.ID, "", DeliveryPickup, "upi")
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if _, err := ShipOrder(order.ID, seller.ID); err != nil {
		t.Fatalf("ShipOrder failed: %v", err)
	}

	if _, err := CancelOrder(order.ID, buyer.ID, ""); err != ErrCancelWindowClosed {
		t.Errorf("Expected ErrCancelWindowClosed for shipped order, got %v", err)
	}
}

func TestCompleteOrderCreditsSeller(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	seller := mustCreateUser(t, "Seller", "seller@test.in")
	buyer := mustCreateUser(t, "Buyer", "buyer@test.in")
	listing := mustCreateListing(t, seller.ID, 1000)

	order, err := Checkout(listing.ID, buyer.ID, "", DeliveryGradkart, "upi")
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if _, err := ShipOrder(order.ID, seller.ID); err != nil {
		t.Fatalf("ShipOrder failed: %v", err)
	}
	if _, err := DeliverOrder(order.ID, buyer.ID); err != nil {
		t.Fatalf("DeliverOrder failed: %v", err)
	}
	if _, err := CompleteOrder(order.ID); err != nil {
		t.Fatalf("CompleteOrder failed: %v", err)
	}

	wallet, err := GetWallet(seller.ID)
	if err != nil {
		t.Fatalf("GetWallet failed: %v", err)
	}
	// The seller is credited the item price, not the buyer's fees.
	if wallet.Withdrawable != 1000 {
		t.Errorf("Expected withdrawable 1000, got %d", wallet.Withdrawable)
	}

	// Completing twice must not double-credit.
	if _, err := CompleteOrder(order.ID); err != ErrBadTransition {
		t.Errorf("Expected ErrBadTransition on second completion, got %v", err)
	}
}
