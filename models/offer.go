package models

import (
	"database/sql"
	"fmt"
	"time"

	"gradkart/database"

	"github.com/google/uuid"
)

type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
)

// MaxOffersPerListing caps how many non-rejected offers a buyer may hold on
// one listing.
const MaxOffersPerListing = 3

type Offer struct {
	ID        string      `json:"id"`
	ListingID string      `json:"listingId"`
	BuyerID   string      `json:"buyerId"`
	Amount    int64       `json:"amount"`
	Comment   string      `json:"comment,omitempty"`
	Status    OfferStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// MinOfferAmount is the lowest acceptable offer for a listing price: 90%,
// rounded up so the floor is never undercut by integer division.
func MinOfferAmount(price int64) int64 {
	return (price*90 + 99) / 100
}

// CreateOffer validates and records a buyer's offer. The floor and the cap
// are enforced here so no client can bypass them.
func CreateOffer(listingID, buyerID string, amount int64, comment string) (*Offer, error) {
	listing, err := GetListingByID(listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != ListingActive {
		return nil, ErrListingUnavailable
	}
	if listing.SellerID == buyerID {
		return nil, ErrOwnListing
	}
	if amount < MinOfferAmount(listing.Price) {
		return nil, ErrOfferTooLow
	}

	var live int
	err = db.DB().QueryRow(`
		SELECT COUNT(*) FROM offers
		WHERE listing_id = ? AND buyer_id = ? AND status != ?
	`, listingID, buyerID, OfferRejected).Scan(&live)
	if err != nil {
		return nil, fmt.Errorf("failed to count offers: %w", err)
	}
	if live >= MaxOffersPerListing {
		return nil, ErrOfferLimit
	}

	o := &Offer{
		ID:        uuid.NewString(),
		ListingID: listingID,
		BuyerID:   buyerID,
		Amount:    amount,
		Comment:   comment,
		Status:    OfferPending,
		CreatedAt: time.Now().UTC(),
	}
	_, err = db.DB().Exec(`
		INSERT INTO offers (id, listing_id, buyer_id, amount, comment, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.ListingID, o.BuyerID, o.Amount, o.Comment, o.Status, o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert offer: %w", err)
	}
	return o, nil
}

func GetOfferByID(id string) (*Offer, error) {
	row := db.DB().QueryRow(`
		SELECT id, listing_id, buyer_id, amount, comment, status, created_at
		FROM offers WHERE id = ?
	`, id)
	return scanOffer(row)
}

func scanOffer(row interface{ Scan(...any) error }) (*Offer, error) {
	var o Offer
	err := row.Scan(&o.ID, &o.ListingID, &o.BuyerID, &o.Amount, &o.Comment, &o.Status, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan offer: %w", err)
	}
	return &o, nil
}

func ListOffersByListing(listingID string) ([]Offer, error) {
	return queryOffers(`
		SELECT id, listing_id, buyer_id, amount, comment, status, created_at
		FROM offers WHERE listing_id = ? ORDER BY created_at DESC
	`, listingID)
}

func ListOffersByBuyer(buyerID string) ([]Offer, error) {
	return queryOffers(`
		SELECT id, listing_id, buyer_id, amount, comment, status, created_at
		FROM offers WHERE buyer_id = ? ORDER BY created_at DESC
	`, buyerID)
}

func queryOffers(query string, args ...any) ([]Offer, error) {
	rows, err := db.DB().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	var offers []Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *o)
	}
	return offers, rows.Err()
}

// AcceptOffer marks a pending offer accepted. Acceptance is terminal for
// that offer; competing pending offers on the listing stay pending until
// checkout takes the listing off the market.
func AcceptOffer(offerID, sellerID string) (*Offer, error) {
	return decideOffer(offerID, sellerID, OfferAccepted)
}

// RejectOffer marks a pending offer rejected.
func RejectOffer(offerID, sellerID string) (*Offer, error) {
	return decideOffer(offerID, sellerID, OfferRejected)
}

func decideOffer(offerID, sellerID string, status OfferStatus) (*Offer, error) {
	offer, err := GetOfferByID(offerID)
	if err != nil {
		return nil, err
	}
	listing, err := GetListingByID(offer.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != sellerID {
		return nil, ErrNotYours
	}

	res, err := db.DB().Exec(`
		UPDATE offers SET status = ? WHERE id = ? AND status = ?
	`, status, offerID, OfferPending)
	if err != nil {
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrOfferNotPending
	}
	offer.Status = status
	return offer, nil
}

// GetAcceptedOffer returns the buyer's accepted offer on a listing, used by
// checkout to price the order.
func GetAcceptedOffer(listingID, buyerID string) (*Offer, error) {
	row := db.DB().QueryRow(`
		SELECT id, listing_id, buyer_id, amount, comment, status, created_at
		FROM offers WHERE listing_id = ? AND buyer_id = ? AND status = ?
		ORDER BY created_at DESC LIMIT 1
	`, listingID, buyerID, OfferAccepted)
	return scanOffer(row)
}
