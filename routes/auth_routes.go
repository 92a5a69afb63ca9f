package routes

import (
	"gradkart/controllers"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(r *gin.Engine) {
	// Public auth routes
	r.POST("/signup", controllers.Signup)
	r.POST("/signup/verify", controllers.VerifySignup)
	r.POST("/login", controllers.Login)
	r.POST("/logout", controllers.Logout)
}
