package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gradkart/models"

	"github.com/gin-gonic/gin"
)

// ExportCollection serializes one collection to a downloadable JSON file,
// matching the console's per-collection export buttons.
func ExportCollection(c *gin.Context) {
	name := c.Param("collection")

	var data any
	var err error
	switch name {
	case "users":
		data, err = models.ListUsers()
	case "listings":
		data, err = models.ListAllListings()
	case "orders":
		data, err = models.ListAllOrders()
	case "disputes":
		data, err = models.ListAllDisputes()
	case "wallets":
		data, err = models.ListWallets()
	case "withdrawals":
		data, err = models.ListAllWithdrawals()
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown collection"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export " + name})
		return
	}

	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export " + name})
		return
	}
	// A collection with no rows marshals as null; export an empty array.
	if string(body) == "null" {
		body = []byte("[]")
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", name))
	c.Data(http.StatusOK, "application/json", body)
}
