package controllers

import (
	"fmt"
	"net/http"

	"gradkart/models"

	"github.com/gin-gonic/gin"
)

// CheckoutSummary returns the price breakdown the checkout page shows. An
// accepted offer replaces the listing price.
func CheckoutSummary(c *gin.Context) {
	listing, err := models.GetListingByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	price := listing.Price
	if offer, err := models.GetAcceptedOffer(listing.ID, c.GetString("user_id")); err == nil {
		price = offer.Amount
	}

	deliveryMethod := c.DefaultQuery("delivery", models.DeliveryPickup)
	var deliveryFee int64
	if deliveryMethod == models.DeliveryGradkart {
		deliveryFee = models.GradkartDeliveryFee
	}

	c.JSON(http.StatusOK, gin.H{
		"price":       price,
		"deliveryFee": deliveryFee,
		"platformFee": models.PlatformFee(price),
		"total":       models.OrderTotal(price, deliveryMethod),
	})
}

// Checkout places the order and takes the listing off the market in one
// atomic step. A listing that was just bought by someone else comes back as
// a conflict instead of a silent double sale.
func Checkout(c *gin.Context) {
	type CheckoutInput struct {
		OfferID        string `json:"offerId"`
		DeliveryMethod string `json:"deliveryMethod" binding:"required,oneof=pickup gradkart"`
		PaymentMethod  string `json:"paymentMethod" binding:"required"`
	}

	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	order, err := models.Checkout(c.Param("id"), c.GetString("user_id"),
		input.OfferID, input.DeliveryMethod, input.PaymentMethod)
	switch err {
	case nil:
	case models.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	case models.ErrListingUnavailable:
		c.JSON(http.StatusConflict, gin.H{"error": "This item has already been sold"})
		return
	case models.ErrOwnListing:
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot buy your own listing"})
		return
	case models.ErrNotYours, models.ErrBadTransition:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Offer is not valid for this checkout"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order. Please try again."})
		return
	}

	models.Notify(order.SellerID, "order", "Item sold",
		fmt.Sprintf("Your item was bought for ₹%d", order.Price))

	c.JSON(http.StatusCreated, order)
}
