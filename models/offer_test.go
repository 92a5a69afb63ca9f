package models

import "testing"

func TestCreateOfferBelowFloorRejected(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	seller := mustCreateUser(t, "Seller", "seller@test.in")
	buyer := mustCreateUser(t, "Buyer", "buyer@test.in")
	listing := mustCreateListing(t, seller.ID, 1000)

	if _, err := CreateOffer(listing.ID, buyer.ID, 899, ""); err != ErrOfferTooLow {
		t.Errorf("Expected ErrOfferTooLow for 899 on 1000, got %v", err)
	}
	if _, err := CreateOffer(listing.ID, buyer.ID, 900, ""); err != nil {
		t.Errorf("Expected 90%% offer to be accepted, got %v", err)
	}
}

func TestCreateOfferLimit(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	seller := mustCreateUser(t, "Seller", "seller@test.in")
	buyer := mustCreateUser(t, "Buyer", "buyer@test.in")
	listing := mustCreateListing(t, seller.ID, 1000)

	for i := 0; i < MaxOffersPerListing; i++ {
		if _, err := CreateOffer(listing.ID, buyer.ID, 950, ""); err != nil {
			t.Fatalf("Offer %d failed: %v", i+1, err)
		}
	}
	if _, err := CreateOffer(listing.ID, buyer.ID, 960, ""); err != ErrOfferLimit {
		t.Errorf("Expected ErrOfferLimit on 4th offer, got %v", err)
	}
}

func TestRejectedOffersDoNotCountTowardLimit(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	seller := mustCreateUser(t, "Seller", "seller@test.in")
	buyer := mustCreateUser(t, "Buyer", "buyer@test.in")
	listing := mustCreateListing(t, seller.ID, 1000)

	for i := 0; i < MaxOffersPerListing; i++ {
		o, err := CreateOffer(listing.ID, buyer.ID, 950, "")
		if err != nil {
			t.Fatalf("Offer failed: %v", err)
		}
		if _, err := RejectOffer(o.ID, seller.ID); err != nil {
			t.Fatalf("RejectOffer failed: %v", err)
		}
	}

	if _, err := CreateOffer(listing.ID, buyer.ID, 950, ""); err != nil {
		t.Errorf("Rejected offers should not count toward the cap, got %v", err)
	}
}

func TestCreateOfferOnOwnListing(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	seller := mustCreateUser(t, "Seller", "seller@test.in")
	listing := mustCreateListing(t, seller.ID, 1000)

	if _, err := CreateOffer(listing.ID, seller.ID, 950, ""); err != ErrOwnListing {
		t.Errorf("Expected ErrOwnListing, got %v", err)
	}
}

func TestAcceptOfferLeavesCompetingOffersPending(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	seller := mustCreateUser(t, "Seller", "seller@test.in")
	buyerA := mustCreateUser(t, "Buyer A", "a@test.in")
	buyerB := mustCreateUser(t, "Buyer B", "b@test.in")
	listing := mustCreateListing(t, seller.ID, 1000)

	offerA, err := CreateOffer(listing.ID, buyerA.ID, 950, "")
	if err != nil {
		t.Fatalf("Offer A failed: %v", err)
	}
	offerB, err := CreateOffer(listing.ID, buyerB.ID, 920, "")
	if err != nil {
		t.Fatalf("Offer B failed: %v", err)
	}

	if _, err := AcceptOffer(offerA.ID, seller.ID); err != nil {
		t.Fatalf("AcceptOffer failed: %v", err)
	}

	got, err := GetOfferByID(offerB.ID)
	if err != nil {
		t.Fatalf("GetOfferByID failed: %v", err)
	}
	if got.Status != OfferPending {
		t.Errorf("Expected competing offer to stay pending, got %s", got.Status)
	}
}

func TestAcceptOfferIsTerminal(t *testing.T) {
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
	if _, err := RejectOffer(offer.ID, seller.ID); err != ErrOfferNotPending {
		t.Errorf("Expected ErrOfferNotPending after acceptance, got %v", err)
	}
}

func TestDecideOfferRequiresOwner(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	seller := mustCreateUser(t, "Seller", "seller@test.in")
	buyer := mustCreateUser(t, "Buyer", "buyer@test.in")
	listing := mustCreateListing(t, seller.ID, 1000)

	offer, err := CreateOffer(listing.ID, buyer.ID, 950, "")
	if err != nil {
		t.Fatalf("CreateOffer failed: %v", err)
	}
	if _, err := AcceptOffer(offer.ID, buyer.ID); err != ErrNotYours {
		t.Errorf("Expected ErrNotYours when a non-owner accepts, got %v", err)
	}
}

func TestMinOfferAmount(t *testing.T) {
	cases := []struct {
		price, want int64
	}{
		{1000, 900},
		{999, 900},
		{45000, 40500},
		{1, 1},
	}
	for _, tc := range cases {
		if got := MinOfferAmount(tc.price); got != tc.want {
			t.Errorf("MinOfferAmount(%d) = %d, want %d", tc.price, got, tc.want)
		}
	}
}
