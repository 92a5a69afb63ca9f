package controllers

import (
	"encoding/json"
	"net/http"

	"gradkart/models"
	"gradkart/utils"

	"github.com/gin-gonic/gin"
)

// GetWallet returns balances and the transaction history.
func GetWallet(c *gin.Context) {
	userID := c.GetString("user_id")
	wallet, err := models.GetWallet(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		return
	}
	txns, err := models.ListWalletTransactions(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions"})
		return
	}
	if txns == nil {
		txns = []models.WalletTransaction{}
	}
	c.JSON(http.StatusOK, gin.H{"wallet": wallet, "transactions": txns})
}

type withdrawalIntent struct {
	Amount      int64              `json:"amount"`
	Method      string             `json:"method"`
	Destination models.Destination `json:"destination"`
}

// RequestWithdrawal starts a payout: it checks the balance, stores the
// intent and sends an OTP to the account email. Nothing is debited until the
// code is verified.
func RequestWithdrawal(c *gin.Context) {
	type WithdrawInput struct {
		Amount        int64  `json:"amount" binding:"required,gt=0"`
		Method        string `json:"method" binding:"required,oneof=upi bank"`
		VPA           string `json:"vpa"`
		AccountName   string `json:"accountName"`
		AccountNumber string `json:"accountNumber"`
		IFSC          string `json:"ifsc"`
	}

	var input WithdrawInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}
	if input.Method == models.WithdrawalMethodUPI && input.VPA == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UPI ID is required"})
		return
	}
	if input.Method == models.WithdrawalMethodBank &&
		(input.AccountName == "" || input.AccountNumber == "" || input.IFSC == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bank account details are required"})
		return
	}

	userID := c.GetString("user_id")
	wallet, err := models.GetWallet(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		return
	}
	if input.Amount > wallet.Withdrawable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount exceeds withdrawable balance"})
		return
	}

	payload, err := json.Marshal(withdrawalIntent{
		Amount: input.Amount,
		Method: input.Method,
		Destination: models.Destination{
			VPA:           input.VPA,
			AccountName:   input.AccountName,
			AccountNumber: input.AccountNumber,
			IFSC:          input.IFSC,
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start withdrawal"})
		return
	}

	otp, err := models.IssueOTP("withdraw:"+userID, payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start withdrawal"})
		return
	}

	user, err := models.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := utils.SendOTPEmail(user.Email, "Withdrawal", otp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to email"})
}

// VerifyWithdrawal checks the OTP and, in one transaction, debits the
// balance, records the pending wallet transaction and files the request for
// admin review. Transaction and request share an ID.
func VerifyWithdrawal(c *gin.Context) {
	type VerifyInput struct {
		OTP string `json:"otp" binding:"required,len=6"`
	}

	var input VerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	userID := c.GetString("user_id")
	payload, err := models.ConsumeOTP("withdraw:"+userID, input.OTP)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired OTP"})
		return
	}

	var intent withdrawalIntent
	if err := json.Unmarshal(payload, &intent); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete withdrawal"})
		return
	}

	req, err := models.CreateWithdrawal(userID, intent.Amount, intent.Method, intent.Destination)
	if err == models.ErrInsufficientBalance {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount exceeds withdrawable balance"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete withdrawal"})
		return
	}

	c.JSON(http.StatusCreated, req)
}

// MyWithdrawals returns the user's withdrawal requests.
func MyWithdrawals(c *gin.Context) {
	reqs, err := models.ListWithdrawalsByUser(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get withdrawals"})
		return
	}
	if reqs == nil {
		reqs = []models.WithdrawalRequest{}
	}
	c.JSON(http.StatusOK, reqs)
}
