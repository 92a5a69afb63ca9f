package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gradkart/database"

	"github.com/google/uuid"
)

type ListingStatus string

const (
	ListingActive  ListingStatus = "active"
	ListingSold    ListingStatus = "sold"
	ListingRemoved ListingStatus = "removed"
	ListingPending ListingStatus = "pending"
)

type Listing struct {
	ID            string        `json:"id"`
	SellerID      string        `json:"sellerId"`
	Title         string        `json:"title"`
	Category      string        `json:"category"`
	Price         int64         `json:"price"`
	Condition     string        `json:"condition"`
	Description   string        `json:"description"`
	Images        []string      `json:"images"`
	Status        ListingStatus `json:"status"`
	Views         int64         `json:"views"`
	Likes         int64         `json:"likes"`
	SoldTo        string        `json:"soldTo,omitempty"`
	SoldAt        *time.Time    `json:"soldAt,omitempty"`
	RemovedReason string        `json:"removedReason,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type ListingComment struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listingId"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

const listingColumns = `id, seller_id, title, category, price, condition,
	description, images, status, views, likes, sold_to, sold_at,
	removed_reason, created_at`

func scanListing(row interface{ Scan(...any) error }) (*Listing, error) {
	var l Listing
	var images string
	err := row.Scan(&l.ID, &l.SellerID, &l.Title, &l.Category, &l.Price,
		&l.Condition, &l.Description, &images, &l.Status, &l.Views,
		&l.Likes, &l.SoldTo, &l.SoldAt, &l.RemovedReason, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan listing: %w", err)
	}
	if err := json.Unmarshal([]byte(images), &l.Images); err != nil {
		l.Images = nil
	}
	return &l, nil
}

// CreateListing posts a new active listing. Images are inline data URLs,
// stored as-is.
func CreateListing(sellerID, title, category string, price int64, condition, description string, images []string) (*Listing, error) {
	l := &Listing{
		ID:          uuid.NewString(),
		SellerID:    sellerID,
		Title:       title,
		Category:    category,
		Price:       price,
		Condition:   condition,
		Description: description,
		Images:      images,
		Status:      ListingActive,
		CreatedAt:   time.Now().UTC(),
	}
	if l.Images == nil {
		l.Images = []string{}
	}
	imagesJSON, err := json.Marshal(l.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to encode images: %w", err)
	}

	_, err = db.DB().Exec(`
		INSERT INTO listings (id, seller_id, title, category, price, condition, description, images, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.SellerID, l.Title, l.Category, l.Price, l.Condition, l.Description, string(imagesJSON), l.Status, l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert listing: %w", err)
	}
	return l, nil
}

func GetListingByID(id string) (*Listing, error) {
	row := db.DB().QueryRow(`SELECT `+listingColumns+` FROM listings WHERE id = ?`, id)
	return scanListing(row)
}

// SearchListings returns active listings, optionally filtered by keyword
// (title/description/category) and category list.
func SearchListings(keyword string, categories []string) ([]Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE status = ?`
	args := []any{ListingActive}

	if keyword != "" {
		query += ` AND (title LIKE ? OR description LIKE ? OR category LIKE ?)`
		like := "%" + keyword + "%"
		args = append(args, like, like, like)
	}
	if len(categories) > 0 {
		query += ` AND category IN (?` + strings.Repeat(",?", len(categories)-1) + `)`
		for _, cat := range categories {
			args = append(args, cat)
		}
	}
	query += ` ORDER BY created_at DESC`

	return queryListings(query, args...)
}

func ListListingsBySeller(sellerID string) ([]Listing, error) {
	return queryListings(`SELECT `+listingColumns+` FROM listings WHERE seller_id = ? ORDER BY created_at DESC`, sellerID)
}

func ListAllListings() ([]Listing, error) {
	return queryListings(`SELECT ` + listingColumns + ` FROM listings ORDER BY created_at DESC`)
}

func queryListings(query string, args ...any) ([]Listing, error) {
	rows, err := db.DB().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *l)
	}
	return listings, rows.Err()
}

// IncrementViews bumps the view counter.
func IncrementViews(id string) error {
	_, err := db.DB().Exec(`UPDATE listings SET views = views + 1 WHERE id = ?`, id)
	return err
}

// LikeListing bumps the like counter.
func LikeListing(id string) error {
	res, err := db.DB().Exec(`UPDATE listings SET likes = likes + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to like listing: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func AddListingComment(listingID, userID, text string) (*ListingComment, error) {
	if _, err := GetListingByID(listingID); err != nil {
		return nil, err
	}
	c := &ListingComment{
		ID:        uuid.NewString(),
		ListingID: listingID,
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.DB().Exec(`
		INSERT INTO listing_comments (id, listing_id, user_id, text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.ListingID, c.UserID, c.Text, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}
	return c, nil
}

func ListListingComments(listingID string) ([]ListingComment, error) {
	rows, err := db.DB().Query(`
		SELECT id, listing_id, user_id, text, created_at
		FROM listing_comments WHERE listing_id = ? ORDER BY created_at
	`, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []ListingComment
	for rows.Next() {
		var c ListingComment
		if err := rows.Scan(&c.ID, &c.ListingID, &c.UserID, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// MarkListingSold is the conditional sale transition: it only succeeds while
// the listing is still active, so a second concurrent buyer gets
// ErrListingUnavailable instead of silently double-selling.
func MarkListingSold(tx *sql.Tx, listingID, buyerID string) error {
	res, err := tx.Exec(`
		UPDATE listings SET status = ?, sold_to = ?, sold_at = ?
		WHERE id = ? AND status = ?
	`, ListingSold, buyerID, time.Now().UTC(), listingID, ListingActive)
	if err != nil {
		return fmt.Errorf("failed to mark listing sold: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrListingUnavailable
	}
	return nil
}

// SellerMarkSold lets a seller close their own listing as sold outside the
// checkout flow (for deals struck in person).
func SellerMarkSold(listingID, sellerID string) error {
	l, err := GetListingByID(listingID)
	if err != nil {
		return err
	}
	if l.SellerID != sellerID {
		return ErrNotYours
	}

	tx, err := db.DB().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin mark sold: %w", err)
	}
	defer tx.Rollback()

	if err := MarkListingSold(tx, listingID, ""); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit mark sold: %w", err)
	}
	return nil
}

// ReopenListing puts a sold listing back on the market after its order is
// cancelled inside the cancellation window.
func ReopenListing(tx *sql.Tx, listingID string) error {
	_, err := tx.Exec(`
		UPDATE listings SET status = ?, sold_to = '', sold_at = NULL
		WHERE id = ? AND status = ?
	`, ListingActive, listingID, ListingSold)
	if err != nil {
		return fmt.Errorf("failed to reopen listing: %w", err)
	}
	return nil
}

// RemoveListing takes a listing off the market. Sellers remove their own;
// the admin console passes a moderation reason.
func RemoveListing(id, reason string) error {
	res, err := db.DB().Exec(`
		UPDATE listings SET status = ?, removed_reason = ? WHERE id = ? AND status != ?
	`, ListingRemoved, reason, id, ListingSold)
	if err != nil {
		return fmt.Errorf("failed to remove listing: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// RestoreListing is the admin undo for RemoveListing.
func RestoreListing(id string) error {
	res, err := db.DB().Exec(`
		UPDATE listings SET status = ?, removed_reason = '' WHERE id = ? AND status = ?
	`, ListingActive, id, ListingRemoved)
	if err != nil {
		return fmt.Errorf("failed to restore listing: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
