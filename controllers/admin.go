package controllers

import (
	"net/http"

	"gradkart/models"

	"github.com/gin-gonic/gin"
)

// AdminDashboard returns the counts the console landing page shows.
func AdminDashboard(c *gin.Context) {
	users, err := models.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	listings, err := models.ListAllListings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	disputes, err := models.ListAllDisputes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	withdrawals, err := models.ListAllWithdrawals()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	var pendingUsers, pendingDisputes, pendingWithdrawals int
	for _, u := range users {
		if u.Status == models.UserPending && !u.IsBlocked {
			pendingUsers++
		}
	}
	for _, d := range disputes {
		if d.Status == models.DisputePending || d.Status == models.DisputeInvestigating {
			pendingDisputes++
		}
	}
	for _, w := range withdrawals {
		if w.Status == models.WithdrawalPending {
			pendingWithdrawals++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"users":              len(users),
		"listings":           len(listings),
		"pendingUsers":       pendingUsers,
		"pendingDisputes":    pendingDisputes,
		"pendingWithdrawals": pendingWithdrawals,
	})
}

// AdminListUsers returns every user for the moderation table.
func AdminListUsers(c *gin.Context) {
	users, err := models.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get users"})
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// ApproveUser moves a signup through the approval gate.
func ApproveUser(c *gin.Context) {
	setStatus(c, models.UserApproved, "Account approved",
		"Welcome to GradKart! Your account has been approved.")
}

// RejectUser rejects a signup.
func RejectUser(c *gin.Context) {
	setStatus(c, models.UserRejected, "Account rejected",
		"Your signup was rejected. You can contact support to retry verification.")
}

func setStatus(c *gin.Context, status models.UserStatus, title, body string) {
	id := c.Param("id")
	if err := models.SetUserStatus(id, status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	models.Notify(id, "account", title, body)
	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

// BlockUser blocks a user with a reason. Blocked users are turned away from
// every marketplace route regardless of approval status.
func BlockUser(c *gin.Context) {
	type BlockInput struct {
		Reason string `json:"reason" binding:"required"`
	}
	var input BlockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A block reason is required"})
		return
	}

	if err := models.BlockUser(c.Param("id"), input.Reason); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User blocked"})
}

// UnblockUser lifts a block.
func UnblockUser(c *gin.Context) {
	if err := models.UnblockUser(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unblocked"})
}

// AdminListListings returns every listing for moderation.
func AdminListListings(c *gin.Context) {
	listings, err := models.ListAllListings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listings"})
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	c.JSON(http.StatusOK, listings)
}

// AdminRemoveListing takes a listing down with a moderation reason.
func AdminRemoveListing(c *gin.Context) {
	type RemoveInput struct {
		Reason string `json:"reason"`
	}
	var input RemoveInput
	_ = c.ShouldBindJSON(&input)
	if input.Reason == "" {
		input.Reason = "Removed by moderation"
	}

	if err := models.RemoveListing(c.Param("id"), input.Reason); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found or already sold"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing removed"})
}

// AdminRestoreListing undoes a removal.
func AdminRestoreListing(c *gin.Context) {
	if err := models.RestoreListing(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing is not removed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing restored"})
}

// AdminListDisputes returns every dispute.
func AdminListDisputes(c *gin.Context) {
	disputes, err := models.ListAllDisputes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get disputes"})
		return
	}
	if disputes == nil {
		disputes = []models.Dispute{}
	}
	c.JSON(http.StatusOK, disputes)
}

// InvestigateDispute moves a dispute into investigation.
func InvestigateDispute(c *gin.Context) {
	if err := models.InvestigateDispute(c.Param("id")); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Dispute cannot be updated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dispute under investigation"})
}

// ResolveDispute records a free-text resolution and notifies the filer.
func ResolveDispute(c *gin.Context) {
	type ResolveInput struct {
		Resolution string `json:"resolution" binding:"required"`
	}
	var input ResolveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A resolution is required"})
		return
	}

	dispute, err := models.GetDisputeByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dispute not found"})
		return
	}
	if err := models.ResolveDispute(dispute.ID, input.Resolution); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Dispute cannot be resolved"})
		return
	}

	models.Notify(dispute.UserID, "dispute", "Dispute resolved", input.Resolution)
	c.JSON(http.StatusOK, gin.H{"message": "Dispute resolved"})
}

// CloseDispute closes a dispute without a resolution.
func CloseDispute(c *gin.Context) {
	if err := models.CloseDispute(c.Param("id")); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Dispute cannot be closed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dispute closed"})
}

// AdminListWithdrawals returns every withdrawal request.
func AdminListWithdrawals(c *gin.Context) {
	reqs, err := models.ListAllWithdrawals()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get withdrawals"})
		return
	}
	if reqs == nil {
		reqs = []models.WithdrawalRequest{}
	}
	c.JSON(http.StatusOK, reqs)
}

// ApproveWithdrawal settles a pending payout.
func ApproveWithdrawal(c *gin.Context) {
	settleWithdrawal(c, true)
}

// RejectWithdrawal refunds a pending payout back to the wallet.
func RejectWithdrawal(c *gin.Context) {
	settleWithdrawal(c, false)
}

func settleWithdrawal(c *gin.Context, approve bool) {
	type NoteInput struct {
		Note string `json:"note"`
	}
	var input NoteInput
	_ = c.ShouldBindJSON(&input)

	req, err := models.GetWithdrawalByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Withdrawal not found"})
		return
	}

	if approve {
		err = models.ApproveWithdrawal(req.ID, input.Note)
	} else {
		err = models.RejectWithdrawal(req.ID, input.Note)
	}
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Withdrawal is not pending"})
		return
	}

	if approve {
		models.Notify(req.UserID, "wallet", "Withdrawal approved", "Your payout has been processed.")
	} else {
		models.Notify(req.UserID, "wallet", "Withdrawal rejected",
			"Your withdrawal was rejected and the amount returned to your wallet.")
	}
	c.JSON(http.StatusOK, gin.H{"message": "Withdrawal updated"})
}

// AdminCreditWallet puts goodwill or restored money into a user's wallet.
func AdminCreditWallet(c *gin.Context) {
	type CreditInput struct {
		Amount   int64  `json:"amount" binding:"required,gt=0"`
		Type     string `json:"type" binding:"required,oneof=admin-credit admin-restore cashback"`
		Note     string `json:"note"`
		ToUsable bool   `json:"toUsable"`
	}

	var input CreditInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	userID := c.Param("id")
	_, err := models.CreditWallet(userID, input.Amount,
		models.TransactionType(input.Type), input.Note, input.ToUsable)
	if err == models.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to credit wallet"})
		return
	}

	models.Notify(userID, "wallet", "Wallet credited", input.Note)
	c.JSON(http.StatusOK, gin.H{"message": "Wallet credited"})
}

// GetShutdown returns the maintenance banner for the console.
func GetShutdown(c *gin.Context) {
	settings, err := models.GetShutdownSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SetShutdown enables or disables the maintenance banner. While enabled,
// marketplace writes are refused.
func SetShutdown(c *gin.Context) {
	var input models.ShutdownSettings
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := models.SetShutdownSettings(input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings saved"})
}
