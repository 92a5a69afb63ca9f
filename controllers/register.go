package controllers

import (
	"encoding/json"
	"net/http"

	"gradkart/models"
	"gradkart/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

type pendingSignup struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	College          string `json:"college"`
	PasswordHash     string `json:"passwordHash"`
	VerificationType string `json:"verificationType"`
}

// Signup starts registration. Email-verified signups get an OTP and are only
// persisted once verified; ID-verified signups go straight into the pending
// queue for the admin to check the uploaded ID.
func Signup(c *gin.Context) {
	type SignupInput struct {
		Name             string `json:"name" binding:"required"`
		Email            string `json:"email" binding:"required,email"`
		Phone            string `json:"phone" binding:"required"`
		College          string `json:"college" binding:"required"`
		Password         string `json:"password" binding:"required,min=6"`
		VerificationType string `json:"verificationType"`
	}

	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}
	if input.VerificationType != "id" {
		input.VerificationType = "email"
	}

	if existing, err := models.GetUserByEmail(input.Email); err == nil && existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	if input.VerificationType == "id" {
		user, err := models.CreateUser(input.Name, input.Email, input.Phone, input.College, hashed, "id")
		if err == models.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Account created, pending approval", "userId": user.ID})
		return
	}

	payload, err := json.Marshal(pendingSignup{
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		College:          input.College,
		PasswordHash:     hashed,
		VerificationType: "email",
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start signup"})
		return
	}

	otp, err := models.IssueOTP("signup:"+input.Email, payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start signup"})
		return
	}
	if err := utils.SendOTPEmail(input.Email, "Signup", otp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to email"})
}

// VerifySignup completes an email-verified registration.
func VerifySignup(c *gin.Context) {
	type VerifyInput struct {
		Email string `json:"email" binding:"required,email"`
		OTP   string `json:"otp" binding:"required,len=6"`
	}

	var input VerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	payload, err := models.ConsumeOTP("signup:"+input.Email, input.OTP)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired OTP"})
		return
	}

	var pending pendingSignup
	if err := json.Unmarshal(payload, &pending); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete signup"})
		return
	}

	user, err := models.CreateUser(pending.Name, pending.Email, pending.Phone, pending.College, pending.PasswordHash, pending.VerificationType)
	if err == models.ErrEmailTaken {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account created, pending approval", "userId": user.ID})
}
