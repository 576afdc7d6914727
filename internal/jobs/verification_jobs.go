package jobs

import (
	"context"
	"time"

	"daanbridge-backend/internal/logger"
)

// SendReviewReminders emails NGOs whose verification review falls due
// within the next 7 days
func (jr *JobRunner) SendReviewReminders() {
	jr.runWithRecovery("SendReviewReminders", func() {
		ctx := context.Background()

		cutoff := time.Now().AddDate(0, 0, 7)
		ngos, err := jr.store.NGORepository.ListDueForReview(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list NGOs due for review", "error", err)
			return
		}

		sent := 0
		for _, ngo := range ngos {
			result, err := jr.store.NGORepository.GetVerificationResult(ctx, ngo.ID)
			if err != nil {
				logger.Error("Failed to load verification result",
					"ngo_id", ngo.ID,
					"error", err)
				continue
			}

			if err := jr.services.Email.SendReviewReminder(ctx, ngo.ContactEmail, ngo.Name, result.NextReviewDate); err != nil {
				logger.Error("Failed to send review reminder",
					"ngo_id", ngo.ID,
					"email", ngo.ContactEmail,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Review reminders sent", "due", len(ngos), "sent", sent)
	})
}

// ScanFraudAlerts sweeps every NGO's recent activity and emails the
// platform admin for each alert raised
func (jr *JobRunner) ScanFraudAlerts() {
	jr.runWithRecovery("ScanFraudAlerts", func() {
		ctx := context.Background()
		adminEmail := jr.config.Scheduler.AdminEmail

		totalAlerts := 0
		for page := int32(1); ; page++ {
			ngos, _, err := jr.store.NGORepository.List(ctx, page, 100)
			if err != nil {
				logger.Error("Failed to list NGOs for fraud scan", "page", page, "error", err)
				return
			}
			if len(ngos) == 0 {
				break
			}

			for _, ngo := range ngos {
				alerts, err := jr.services.NGO.ScanFraudAlerts(ctx, ngo.ID)
				if err != nil {
					logger.Error("Fraud scan failed", "ngo_id", ngo.ID, "error", err)
					continue
				}

				for i := range alerts {
					totalAlerts++
					if adminEmail == "" {
						continue
					}
					if err := jr.services.Email.SendFraudAlert(ctx, adminEmail, &alerts[i]); err != nil {
						logger.Error("Failed to email fraud alert",
							"ngo_id", ngo.ID,
							"alert_type", alerts[i].Type,
							"error", err)
					}
				}
			}

			if len(ngos) < 100 {
				break
			}
		}

		logger.Info("Fraud scan completed", "alerts", totalAlerts)
	})
}
