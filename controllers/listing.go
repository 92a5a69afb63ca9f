package controllers

import (
	"net/http"
	"strings"

	"gradkart/models"

	"github.com/gin-gonic/gin"
)

// CreateListing posts an item for sale.
func CreateListing(c *gin.Context) {
	type ListingInput struct {
		Title       string   `json:"title" binding:"required"`
		Category    string   `json:"category" binding:"required"`
		Price       int64    `json:"price" binding:"required,gt=0"`
		Condition   string   `json:"condition"`
		Description string   `json:"description"`
		Images      []string `json:"images"`
	}

	var input ListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	listing, err := models.CreateListing(c.GetString("user_id"), input.Title,
		input.Category, input.Price, input.Condition, input.Description, input.Images)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// GetListings returns active listings, filtered by ?q= and ?categories=a,b.
func GetListings(c *gin.Context) {
	keyword := c.Query("q")
	var categories []string
	if raw := c.Query("categories"); raw != "" {
		categories = strings.Split(raw, ",")
	}

	listings, err := models.SearchListings(keyword, categories)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listings"})
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	c.JSON(http.StatusOK, listings)
}

// GetListing returns one listing with its comments, bumping the view count.
func GetListing(c *gin.Context) {
	id := c.Param("id")
	listing, err := models.GetListingByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	_ = models.IncrementViews(id)
	listing.Views++

	comments, err := models.ListListingComments(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get comments"})
		return
	}
	if comments == nil {
		comments = []models.ListingComment{}
	}

	c.JSON(http.StatusOK, gin.H{"listing": listing, "comments": comments})
}

// MyListings returns the seller's own listings in every status.
func MyListings(c *gin.Context) {
	listings, err := models.ListListingsBySeller(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listings"})
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	c.JSON(http.StatusOK, listings)
}

// LikeListing bumps the like counter.
func LikeListing(c *gin.Context) {
	if err := models.LikeListing(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Liked"})
}

// AddComment posts a comment on a listing.
func AddComment(c *gin.Context) {
	type CommentInput struct {
		Text string `json:"text" binding:"required"`
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	comment, err := models.AddListingComment(c.Param("id"), c.GetString("user_id"), input.Text)
	if err == models.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// MarkSold closes the seller's own listing as sold.
func MarkSold(c *gin.Context) {
	err := models.SellerMarkSold(c.Param("id"), c.GetString("user_id"))
	switch err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "Listing marked sold"})
	case models.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
	case models.ErrNotYours:
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your listing"})
	case models.ErrListingUnavailable:
		c.JSON(http.StatusConflict, gin.H{"error": "Listing is not active"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
	}
}

// DeleteListing takes the seller's own listing off the market.
func DeleteListing(c *gin.Context) {
	listing, err := models.GetListingByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if listing.SellerID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your listing"})
		return
	}

	if err := models.RemoveListing(listing.ID, "Removed by seller"); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Listing cannot be removed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing removed"})
}
