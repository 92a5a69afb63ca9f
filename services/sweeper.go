package services

import (
	"log"
	"time"

	"gradkart/models"

	"github.com/robfig/cron/v3"
)

// NotificationRetention is how long read notifications are kept.
const NotificationRetention = 30 * 24 * time.Hour

// Sweeper runs the scheduled maintenance jobs: releasing seller payouts for
// delivered orders and pruning old notifications.
type Sweeper struct {
	cron        *cron.Cron
	payoutDelay time.Duration
}

func NewSweeper(payoutDelay time.Duration) *Sweeper {
	return &Sweeper{
		cron:        cron.New(),
		payoutDelay: payoutDelay,
	}
}

// Start schedules the jobs and runs them once immediately so a restart does
// not delay overdue payouts.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc("@every 10m", s.ReleasePayouts); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@daily", s.PruneNotifications); err != nil {
		return err
	}
	s.cron.Start()

	go func() {
		s.ReleasePayouts()
		s.PruneNotifications()
	}()
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// ReleasePayouts completes delivered orders past the payout delay, crediting
// each sale to the seller's wallet.
func (s *Sweeper) ReleasePayouts() {
	cutoff := time.Now().UTC().Add(-s.payoutDelay)
	orders, err := models.ListDeliveredOrdersBefore(cutoff)
	if err != nil {
		log.Println("Payout sweep failed:", err)
		return
	}

	for _, o := range orders {
		if _, err := models.CompleteOrder(o.ID); err != nil {
			log.Printf("Failed to complete order %s: %v", o.ID, err)
			continue
		}
		models.Notify(o.SellerID, "wallet", "Payment released",
			"The payment for your sale has been added to your wallet.")
	}
	if len(orders) > 0 {
		log.Printf("Payout sweep completed %d order(s)", len(orders))
	}
}

// PruneNotifications drops read notifications older than the retention
// window.
func (s *Sweeper) PruneNotifications() {
	n, err := models.PruneNotifications(time.Now().UTC().Add(-NotificationRetention))
	if err != nil {
		log.Println("Notification prune failed:", err)
		return
	}
	if n > 0 {
		log.Printf("Pruned %d notification(s)", n)
	}
}
