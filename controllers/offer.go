package controllers

import (
	"fmt"
	"net/http"

	"gradkart/models"

	"github.com/gin-gonic/gin"
)

// CreateOffer submits a buyer's offer on a listing. The 90% floor and the
// three-offer cap are enforced in the store, not just in the form.
func CreateOffer(c *gin.Context) {
	type OfferInput struct {
		Amount  int64  `json:"amount" binding:"required,gt=0"`
		Comment string `json:"comment"`
	}

	var input OfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	offer, err := models.CreateOffer(c.Param("id"), c.GetString("user_id"), input.Amount, input.Comment)
	switch err {
	case nil:
	case models.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	case models.ErrListingUnavailable:
		c.JSON(http.StatusConflict, gin.H{"error": "Listing is no longer available"})
		return
	case models.ErrOwnListing:
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot make an offer on your own listing"})
		return
	case models.ErrOfferTooLow:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Offer must be at least 90% of the listing price"})
		return
	case models.ErrOfferLimit:
		c.JSON(http.StatusBadRequest, gin.H{"error": "You already have 3 offers on this listing"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit offer"})
		return
	}

	listing, lerr := models.GetListingByID(offer.ListingID)
	if lerr == nil {
		models.Notify(listing.SellerID, "offer",
			fmt.Sprintf("New offer on %s", listing.Title),
			fmt.Sprintf("A buyer offered ₹%d", offer.Amount))
	}

	c.JSON(http.StatusCreated, offer)
}

// ListingOffers returns the offers on the seller's own listing.
func ListingOffers(c *gin.Context) {
	listing, err := models.GetListingByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if listing.SellerID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your listing"})
		return
	}

	offers, err := models.ListOffersByListing(listing.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get offers"})
		return
	}
	if offers == nil {
		offers = []models.Offer{}
	}
	c.JSON(http.StatusOK, offers)
}

// MyOffers returns the offers the signed-in buyer has made.
func MyOffers(c *gin.Context) {
	offers, err := models.ListOffersByBuyer(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get offers"})
		return
	}
	if offers == nil {
		offers = []models.Offer{}
	}
	c.JSON(http.StatusOK, offers)
}

// AcceptOffer lets the seller accept a pending offer; the buyer can then
// check out at the offered amount.
func AcceptOffer(c *gin.Context) {
	decideOffer(c, true)
}

// RejectOffer lets the seller reject a pending offer.
func RejectOffer(c *gin.Context) {
	decideOffer(c, false)
}

func decideOffer(c *gin.Context, accept bool) {
	var offer *models.Offer
	var err error
	if accept {
		offer, err = models.AcceptOffer(c.Param("offerId"), c.GetString("user_id"))
	} else {
		offer, err = models.RejectOffer(c.Param("offerId"), c.GetString("user_id"))
	}

	switch err {
	case nil:
	case models.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
		return
	case models.ErrNotYours:
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your listing"})
		return
	case models.ErrOfferNotPending:
		c.JSON(http.StatusConflict, gin.H{"error": "Offer is not pending"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update offer"})
		return
	}

	if accept {
		models.Notify(offer.BuyerID, "offer", "Offer accepted",
			fmt.Sprintf("Your offer of ₹%d was accepted. You can now check out.", offer.Amount))
	} else {
		models.Notify(offer.BuyerID, "offer", "Offer rejected",
			fmt.Sprintf("Your offer of ₹%d was rejected.", offer.Amount))
	}

	c.JSON(http.StatusOK, offer)
}
