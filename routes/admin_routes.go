package routes

import (
	"gradkart/controllers"
	"gradkart/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAdminRoutes(r *gin.Engine) {
	r.POST("/admin/login", controllers.AdminLogin)

	admin := r.Group("/admin", middlewares.AdminMiddleware())
	{
		admin.GET("/dashboard", controllers.AdminDashboard)

		admin.GET("/users", controllers.AdminListUsers)
		admin.POST("/users/:id/approve", controllers.ApproveUser)
		admin.POST("/users/:id/reject", controllers.RejectUser)
		admin.POST("/users/:id/block", controllers.BlockUser)
		admin.POST("/users/:id/unblock", controllers.UnblockUser)
		admin.POST("/users/:id/credit", controllers.AdminCreditWallet)

		admin.GET("/listings", controllers.AdminListListings)
		admin.POST("/listings/:id/remove", controllers.AdminRemoveListing)
		admin.POST("/listings/:id/restore", controllers.AdminRestoreListing)

		admin.GET("/disputes", controllers.AdminListDisputes)
		admin.POST("/disputes/:id/investigate", controllers.InvestigateDispute)
		admin.POST("/disputes/:id/resolve", controllers.ResolveDispute)
		admin.POST("/disputes/:id/close", controllers.CloseDispute)

		admin.GET("/withdrawals", controllers.AdminListWithdrawals)
		admin.POST("/withdrawals/:id/approve", controllers.ApproveWithdrawal)
		admin.POST("/withdrawals/:id/reject", controllers.RejectWithdrawal)

		admin.GET("/shutdown", controllers.GetShutdown)
		admin.PUT("/shutdown", controllers.SetShutdown)

		admin.GET("/export/:collection", controllers.ExportCollection)
	}
}
