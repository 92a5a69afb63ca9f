package controllers

import (
	"net/http"

	"gradkart/models"

	"github.com/gin-gonic/gin"
)

// MyOrders returns the signed-in buyer's orders.
func MyOrders(c *gin.Context) {
	orders, err := models.ListOrdersByBuyer(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get orders"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// SellerOrders returns orders for the signed-in user's listings.
func SellerOrders(c *gin.Context) {
	orders, err := models.ListOrdersBySeller(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get orders"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order to either party of the sale.
func GetOrder(c *gin.Context) {
	order, err := models.GetOrderByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	userID := c.GetString("user_id")
	if order.BuyerID != userID && order.SellerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// CancelOrder cancels the buyer's order inside the 24-hour window and puts
// the listing back on the market.
func CancelOrder(c *gin.Context) {
	type CancelInput struct {
		Reason string `json:"reason"`
	}
	var input CancelInput
	_ = c.ShouldBindJSON(&input)

	order, err := models.CancelOrder(c.Param("id"), c.GetString("user_id"), input.Reason)
	switch err {
	case nil:
	case models.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	case models.ErrNotYours:
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
		return
	case models.ErrCancelWindowClosed:
		c.JSON(http.StatusConflict, gin.H{"error": "Order can no longer be cancelled"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}

	models.Notify(order.SellerID, "order", "Order cancelled",
		"The buyer cancelled the order; your listing is active again.")
	c.JSON(http.StatusOK, order)
}

// ShipOrder is the seller marking the order on its way.
func ShipOrder(c *gin.Context) {
	order, err := models.ShipOrder(c.Param("id"), c.GetString("user_id"))
	if !respondOrderTransition(c, order, err) {
		return
	}
	models.Notify(order.BuyerID, "order", "Order shipped", "Your order is on its way.")
	c.JSON(http.StatusOK, order)
}

// DeliverOrder is the buyer confirming receipt.
func DeliverOrder(c *gin.Context) {
	order, err := models.DeliverOrder(c.Param("id"), c.GetString("user_id"))
	if !respondOrderTransition(c, order, err) {
		return
	}
	models.Notify(order.SellerID, "order", "Order delivered",
		"The buyer confirmed delivery. Payment will be released to your wallet shortly.")
	c.JSON(http.StatusOK, order)
}

func respondOrderTransition(c *gin.Context, order *models.Order, err error) bool {
	switch err {
	case nil:
		return true
	case models.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case models.ErrNotYours:
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
	case models.ErrBadTransition:
		c.JSON(http.StatusConflict, gin.H{"error": "Order is not in the right state"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
	}
	return false
}
