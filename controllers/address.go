package controllers

import (
	"net/http"

	"gradkart/models"

	"github.com/gin-gonic/gin"
)

// MyAddresses lists the user's delivery addresses, default first.
func MyAddresses(c *gin.Context) {
	addrs, err := models.ListAddresses(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get addresses"})
		return
	}
	if addrs == nil {
		addrs = []models.Address{}
	}
	c.JSON(http.StatusOK, addrs)
}

// AddAddress saves a delivery address.
func AddAddress(c *gin.Context) {
	type AddressInput struct {
		Label     string `json:"label"`
		Line1     string `json:"line1" binding:"required"`
		Line2     string `json:"line2"`
		City      string `json:"city" binding:"required"`
		State     string `json:"state"`
		Pincode   string `json:"pincode"`
		IsDefault bool   `json:"isDefault"`
	}

	var input AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	addr, err := models.CreateAddress(models.Address{
		UserID:    c.GetString("user_id"),
		Label:     input.Label,
		Line1:     input.Line1,
		Line2:     input.Line2,
		City:      input.City,
		State:     input.State,
		Pincode:   input.Pincode,
		IsDefault: input.IsDefault,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save address"})
		return
	}
	c.JSON(http.StatusCreated, addr)
}

// DeleteAddress removes one of the user's addresses.
func DeleteAddress(c *gin.Context) {
	if err := models.DeleteAddress(c.Param("id"), c.GetString("user_id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}
