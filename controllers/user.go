package controllers

import (
	"net/http"

	"gradkart/models"

	"github.com/gin-gonic/gin"
)

// Me returns the signed-in user's profile.
func Me(c *gin.Context) {
	user, err := models.GetUserByID(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// MyStatus is the approval-gate check the pending screen polls. The redirect
// tells the client which screen applies; a block always wins over the
// approval status.
func MyStatus(c *gin.Context) {
	user, err := models.GetUserByID(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	redirect := "/pending-approval"
	switch {
	case user.IsBlocked:
		redirect = "/blocked"
	case user.Status == models.UserApproved:
		redirect = "/approved"
	case user.Status == models.UserRejected:
		redirect = "/rejected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      user.Status,
		"isBlocked":   user.IsBlocked,
		"blockReason": user.BlockReason,
		"redirect":    redirect,
	})
}
