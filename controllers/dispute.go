package controllers

import (
	"net/http"

	"gradkart/models"

	"github.com/gin-gonic/gin"
)

// CreateDispute files a dispute. Priority is derived from the type: fraud is
// high, payment is medium, everything else low.
func CreateDispute(c *gin.Context) {
	type DisputeInput struct {
		OrderID     string   `json:"orderId"`
		Type        string   `json:"type" binding:"required"`
		Subject     string   `json:"subject" binding:"required"`
		Description string   `json:"description"`
		Evidence    []string `json:"evidence"`
	}

	var input DisputeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	dispute, err := models.CreateDispute(c.GetString("user_id"), input.OrderID,
		input.Type, input.Subject, input.Description, input.Evidence)
	if err == models.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to file dispute"})
		return
	}
	c.JSON(http.StatusCreated, dispute)
}

// MyDisputes returns the signed-in user's disputes.
func MyDisputes(c *gin.Context) {
	disputes, err := models.ListDisputesByUser(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get disputes"})
		return
	}
	if disputes == nil {
		disputes = []models.Dispute{}
	}
	c.JSON(http.StatusOK, disputes)
}
