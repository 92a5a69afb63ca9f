package routes

import (
	"time"

	"gradkart/controllers"
	"gradkart/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, corsOrigin string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	SetupAuthRoutes(r)
	SetupMarketRoutes(r)
	SetupAdminRoutes(r)
}

func SetupMarketRoutes(r *gin.Engine) {
	// Public browse surface
	r.GET("/listings", controllers.GetListings)
	r.GET("/status/shutdown", controllers.ShutdownStatus)

	// Signed-in but not necessarily approved: the pending screen polls
	// status here, and notifications still work for rejected users.
	account := r.Group("/", middlewares.AuthMiddleware())
	{
		account.GET("/me", controllers.Me)
		account.GET("/me/status", controllers.MyStatus)
		account.GET("/notifications", controllers.MyNotifications)
		account.POST("/notifications/:id/read", controllers.ReadNotification)
	}

	// Approved marketplace surface, closed during maintenance.
	market := r.Group("/", middlewares.AuthMiddleware(), middlewares.ApprovedMiddleware(), middlewares.ShutdownGuard())
	{
		market.GET("/listings/:id", controllers.GetListing)
		market.POST("/listings", controllers.CreateListing)
		market.GET("/my/listings", controllers.MyListings)
		market.POST("/listings/:id/like", controllers.LikeListing)
		market.POST("/listings/:id/comments", controllers.AddComment)
		market.POST("/listings/:id/sold", controllers.MarkSold)
		market.DELETE("/listings/:id", controllers.DeleteListing)

		market.POST("/listings/:id/offers", controllers.CreateOffer)
		market.GET("/listings/:id/offers", controllers.ListingOffers)
		market.GET("/my/offers", controllers.MyOffers)
		market.POST("/offers/:offerId/accept", controllers.AcceptOffer)
		market.POST("/offers/:offerId/reject", controllers.RejectOffer)

		market.GET("/checkout/:id", controllers.CheckoutSummary)
		market.POST("/checkout/:id", controllers.Checkout)
		market.GET("/my/orders", controllers.MyOrders)
		market.GET("/my/sales", controllers.SellerOrders)
		market.GET("/orders/:id", controllers.GetOrder)
		market.POST("/orders/:id/cancel", controllers.CancelOrder)
		market.POST("/orders/:id/ship", controllers.ShipOrder)
		market.POST("/orders/:id/deliver", controllers.DeliverOrder)

		market.POST("/disputes", controllers.CreateDispute)
		market.GET("/my/disputes", controllers.MyDisputes)

		market.GET("/wallet", controllers.GetWallet)
		market.POST("/wallet/withdraw", controllers.RequestWithdrawal)
		market.POST("/wallet/withdraw/verify", controllers.VerifyWithdrawal)
		market.GET("/my/withdrawals", controllers.MyWithdrawals)

		market.GET("/addresses", controllers.MyAddresses)
		market.POST("/addresses", controllers.AddAddress)
		market.DELETE("/addresses/:id", controllers.DeleteAddress)
	}
}
