package middlewares

import (
	"net/http"

	"gradkart/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var jwtSecret []byte

// Init sets the token signing secret. Call once from main before the router
// starts.
func Init(secret []byte) {
	jwtSecret = secret
}

func parseToken(c *gin.Context) (jwt.MapClaims, bool) {
	tokenString, err := c.Cookie("token")
	if err != nil {
		return nil, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

// AuthMiddleware requires a valid user session cookie and puts user_id in
// the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			c.Abort()
			return
		}
		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// AdminMiddleware requires a session carrying the admin claim.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			c.Abort()
			return
		}
		if admin, _ := claims["admin"].(bool); !admin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ApprovedMiddleware gates marketplace routes on the approval state. A block
// wins over any approval status; pending and rejected users are told which
// screen to show.
func ApprovedMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := models.GetUserByID(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			c.Abort()
			return
		}
		if user.IsBlocked {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account blocked", "redirect": "/blocked", "reason": user.BlockReason})
			c.Abort()
			return
		}
		if user.Status != models.UserApproved {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account not approved", "redirect": "/" + string(user.Status)})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ShutdownGuard refuses marketplace writes while the maintenance banner is
// enabled.
func ShutdownGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}
		settings, err := models.GetShutdownSettings()
		if err == nil && settings.Enabled {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Marketplace is temporarily closed", "message": settings.Message})
			c.Abort()
			return
		}
		c.Next()
	}
}
