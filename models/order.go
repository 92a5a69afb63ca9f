package models

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"gradkart/database"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
	OrderCompleted OrderStatus = "completed"
)

const (
	DeliveryPickup   = "pickup"
	DeliveryGradkart = "gradkart"

	// GradkartDeliveryFee is the flat doorstep delivery charge in rupees.
	GradkartDeliveryFee int64 = 99
	// PlatformFeePercent is the commission charged on the product price.
	PlatformFeePercent = 2

	// CancelWindow is how long a buyer has to cancel after placing an order.
	CancelWindow = 24 * time.Hour
)

type Order struct {
	ID             string      `json:"id"`
	ProductID      string      `json:"productId"`
	BuyerID        string      `json:"buyerId"`
	SellerID       string      `json:"sellerId"`
	SellerName     string      `json:"sellerName"`
	Price          int64       `json:"price"`
	Amount         int64       `json:"amount"`
	DeliveryMethod string      `json:"deliveryMethod"`
	PaymentMethod  string      `json:"paymentMethod"`
	OfferID        *string     `json:"offerId,omitempty"`
	Status         OrderStatus `json:"status"`
	CancelReason   string      `json:"cancelReason,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// PlatformFee is the marketplace commission on a product price.
func PlatformFee(price int64) int64 {
	return int64(math.Round(float64(price) * float64(PlatformFeePercent) / 100))
}

// OrderTotal is what the buyer pays: product price, delivery charge for
// doorstep delivery, and the platform fee on the product price.
func OrderTotal(price int64, deliveryMethod string) int64 {
	total := price + PlatformFee(price)
	if deliveryMethod == DeliveryGradkart {
		total += GradkartDeliveryFee
	}
	return total
}

// Checkout places an order for a listing. If offerID is non-empty it must be
// the buyer's accepted offer on that listing and prices the order; otherwise
// the listing price is used. The order insert and the sale transition commit
// in one transaction, so a failed checkout leaves no partial state and a
// second checkout of the same listing fails with ErrListingUnavailable.
func Checkout(listingID, buyerID, offerID, deliveryMethod, paymentMethod string) (*Order, error) {
	listing, err := GetListingByID(listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID == buyerID {
		return nil, ErrOwnListing
	}
	if listing.Status != ListingActive {
		return nil, ErrListingUnavailable
	}

	price := listing.Price
	var offerRef *string
	if offerID != "" {
		offer, err := GetOfferByID(offerID)
		if err != nil {
			return nil, err
		}
		if offer.ListingID != listingID || offer.BuyerID != buyerID {
			return nil, ErrNotYours
		}
		if offer.Status != OfferAccepted {
			return nil, ErrBadTransition
		}
		price = offer.Amount
		offerRef = &offer.ID
	}

	seller, err := GetUserByID(listing.SellerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := &Order{
		ID:             uuid.NewString(),
		ProductID:      listingID,
		BuyerID:        buyerID,
		SellerID:       listing.SellerID,
		SellerName:     seller.Name,
		Price:          price,
		Amount:         OrderTotal(price, deliveryMethod),
		DeliveryMethod: deliveryMethod,
		PaymentMethod:  paymentMethod,
		OfferID:        offerRef,
		Status:         OrderConfirmed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	tx, err := db.DB().Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin checkout: %w", err)
	}
	defer tx.Rollback()

	if err := MarkListingSold(tx, listingID, buyerID); err != nil {
		return nil, err
	}

	_, err = tx.Exec(`
		INSERT INTO orders (id, product_id, buyer_id, seller_id, seller_name, price, amount,
			delivery_method, payment_method, offer_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.ProductID, o.BuyerID, o.SellerID, o.SellerName, o.Price, o.Amount,
		o.DeliveryMethod, o.PaymentMethod, o.OfferID, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}
	return o, nil
}

const orderColumns = `id, product_id, buyer_id, seller_id, seller_name, price,
	amount, delivery_method, payment_method, offer_id, status, cancel_reason,
	created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.ProductID, &o.BuyerID, &o.SellerID, &o.SellerName,
		&o.Price, &o.Amount, &o.DeliveryMethod, &o.PaymentMethod, &o.OfferID, &o.Status,
		&o.CancelReason, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return &o, nil
}

func GetOrderByID(id string) (*Order, error) {
	row := db.DB().QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	return scanOrder(row)
}

func ListOrdersByBuyer(buyerID string) ([]Order, error) {
	return queryOrders(`SELECT `+orderColumns+` FROM orders WHERE buyer_id = ? ORDER BY created_at DESC`, buyerID)
}

func ListOrdersBySeller(sellerID string) ([]Order, error) {
	return queryOrders(`SELECT `+orderColumns+` FROM orders WHERE seller_id = ? ORDER BY created_at DESC`, sellerID)
}

func ListAllOrders() ([]Order, error) {
	return queryOrders(`SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`)
}

func queryOrders(query string, args ...any) ([]Order, error) {
	rows, err := db.DB().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// CancelOrder cancels a buyer's order. Only pending or confirmed orders can
// be cancelled, and only within CancelWindow of placement. The listing goes
// back on the market in the same transaction.
func CancelOrder(orderID, buyerID, reason string) (*Order, error) {
	o, err := GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != buyerID {
		return nil, ErrNotYours
	}
	if o.Status != OrderPending && o.Status != OrderConfirmed {
		return nil, ErrCancelWindowClosed
	}
	if time.Since(o.CreatedAt) >= CancelWindow {
		return nil, ErrCancelWindowClosed
	}

	tx, err := db.DB().Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin cancel: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	res, err := tx.Exec(`
		UPDATE orders SET status = ?, cancel_reason = ?, updated_at = ?
		WHERE id = ? AND status IN (?, ?)
	`, OrderCancelled, reason, now, orderID, OrderPending, OrderConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrCancelWindowClosed
	}

	if err := ReopenListing(tx, o.ProductID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cancel: %w", err)
	}
	o.Status = OrderCancelled
	o.CancelReason = reason
	o.UpdatedAt = now
	return o, nil
}

// ShipOrder is the seller's confirmed→shipped transition.
func ShipOrder(orderID, sellerID string) (*Order, error) {
	return transitionOrder(orderID, sellerID, false, OrderConfirmed, OrderShipped)
}

// DeliverOrder is the buyer's shipped→delivered transition.
func DeliverOrder(orderID, buyerID string) (*Order, error) {
	return transitionOrder(orderID, buyerID, true, OrderShipped, OrderDelivered)
}

func transitionOrder(orderID, actorID string, actorIsBuyer bool, from, to OrderStatus) (*Order, error) {
	o, err := GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	owner := o.SellerID
	if actorIsBuyer {
		owner = o.BuyerID
	}
	if owner != actorID {
		return nil, ErrNotYours
	}

	now := time.Now().UTC()
	res, err := db.DB().Exec(`
		UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?
	`, to, now, orderID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrBadTransition
	}
	o.Status = to
	o.UpdatedAt = now
	return o, nil
}

// CompleteOrder finalizes a delivered order and credits the sale price to
// the seller's withdrawable balance in the same transaction.
func CompleteOrder(orderID string) (*Order, error) {
	o, err := GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}

	tx, err := db.DB().Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin completion: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	res, err := tx.Exec(`
		UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?
	`, OrderCompleted, now, orderID, OrderDelivered)
	if err != nil {
		return nil, fmt.Errorf("failed to complete order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrBadTransition
	}

	if err := CreditSale(tx, o.SellerID, o.Price, o.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit completion: %w", err)
	}
	o.Status = OrderCompleted
	o.UpdatedAt = now
	return o, nil
}

// ListDeliveredOrdersBefore returns delivered orders last updated before the
// cutoff, for the payout sweep.
func ListDeliveredOrdersBefore(cutoff time.Time) ([]Order, error) {
	return queryOrders(`
		SELECT `+orderColumns+` FROM orders WHERE status = ? AND updated_at < ?
	`, OrderDelivered, cutoff)
}
