package controllers

import (
	"net/http"

	"gradkart/models"

	"github.com/gin-gonic/gin"
)

// MyNotifications returns the user's notifications, newest first.
func MyNotifications(c *gin.Context) {
	items, err := models.ListNotifications(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}
	if items == nil {
		items = []models.Notification{}
	}
	c.JSON(http.StatusOK, items)
}

// ReadNotification marks one notification read.
func ReadNotification(c *gin.Context) {
	if err := models.MarkNotificationRead(c.Param("id"), c.GetString("user_id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked read"})
}

// ShutdownStatus is the public maintenance banner check.
func ShutdownStatus(c *gin.Context) {
	settings, err := models.GetShutdownSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get status"})
		return
	}
	c.JSON(http.StatusOK, settings)
}
