package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"threadart-backend/internal/logger"
)

// SendPendingWithdrawalsDigest mails the admin a summary of withdrawal
// requests still awaiting manual payout. Read-only: the ledger is never
// touched from a job.
func (jr *JobRunner) SendPendingWithdrawalsDigest() {
	jr.runWithRecovery("SendPendingWithdrawalsDigest", func() {
		ctx := context.Background()

		withdrawals, err := jr.store.Ledger().ListPendingWithdrawals(ctx)
		if err != nil {
			logger.Error("Failed to list pending withdrawals", "error", err)
			return
		}
		if len(withdrawals) == 0 {
			logger.Info("No pending withdrawals, skipping digest")
			return
		}

		var b strings.Builder
		var totalCents int64
		fmt.Fprintf(&b, "Pending withdrawal requests: %d\n\n", len(withdrawals))
		for _, w := range withdrawals {
			// Withdrawal amounts are stored negative.
			amount := -w.AmountCents
			totalCents += amount
			fmt.Fprintf(&b, "- user %d: $%.2f requested on %s\n",
				w.UserID, float64(amount)/100, w.CreatedOn.Format("2006-01-02"))
		}
		fmt.Fprintf(&b, "\nTotal owed: $%.2f\n", float64(totalCents)/100)

		subject := fmt.Sprintf("[ThreadArt] %d pending withdrawals", len(withdrawals))
		if err := jr.emailSvc.SendAdminDigest(ctx, jr.config.Marketplace.AdminEmail, subject, b.String()); err != nil {
			logger.Error("Failed to send pending withdrawals digest", "error", err)
			return
		}

		logger.Info("Sent pending withdrawals digest",
			"count", len(withdrawals),
			"total_cents", totalCents)
	})
}

// SendStaleOrdersDigest mails the admin the orders that have sat in pending
// longer than the configured threshold.
func (jr *JobRunner) SendStaleOrdersDigest() {
	jr.runWithRecovery("SendStaleOrdersDigest", func() {
		ctx := context.Background()

		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Marketplace.StaleOrderDays)
		orders, err := jr.store.Orders().ListStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale pending orders", "error", err)
			return
		}
		if len(orders) == 0 {
			logger.Info("No stale pending orders, skipping digest")
			return
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Orders pending for more than %d days: %d\n\n",
			jr.config.Marketplace.StaleOrderDays, len(orders))
		for _, o := range orders {
			fmt.Fprintf(&b, "- %s: $%.2f placed on %s (%s)\n",
				o.Number, float64(o.TotalCents)/100, o.CreatedOn.Format("2006-01-02"), o.CustomerEmail)
		}

		subject := fmt.Sprintf("[ThreadArt] %d stale pending orders", len(orders))
		if err := jr.emailSvc.SendAdminDigest(ctx, jr.config.Marketplace.AdminEmail, subject, b.String()); err != nil {
			logger.Error("Failed to send stale orders digest", "error", err)
			return
		}

		logger.Info("Sent stale orders digest", "count", len(orders), "cutoff", cutoff)
	})
}
