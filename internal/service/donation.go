package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"daanbridge-backend/internal/audit"
	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/logger"
	"daanbridge-backend/internal/repository"
)

var ErrInvalidPaymentSignature = errors.New("payment signature verification failed")

type donationService struct {
	donationRepo     repository.DonationRepository
	projectRepo      repository.ProjectRepository
	ngoRepo          repository.NGORepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	badges           *BadgeService
	scorer           *VerificationScorer
	emailSvc         EmailService
	auditRecorder    *audit.Recorder
	webhookSecret    []byte
}

func NewDonationService(
	donationRepo repository.DonationRepository,
	projectRepo repository.ProjectRepository,
	ngoRepo repository.NGORepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	badges *BadgeService,
	scorer *VerificationScorer,
	emailSvc EmailService,
	auditRecorder *audit.Recorder,
	webhookSecret string,
) DonationService {
	return &donationService{
		donationRepo:     donationRepo,
		projectRepo:      projectRepo,
		ngoRepo:          ngoRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		badges:           badges,
		scorer:           scorer,
		emailSvc:         emailSvc,
		auditRecorder:    auditRecorder,
		webhookSecret:    []byte(webhookSecret),
	}
}

func (s *donationService) CreateOrder(ctx context.Context, donorID, projectID int32, amount int64, message string) (*domain.Donation, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("donation amount must be positive")
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}
	if project.Status != domain.ProjectStatusActive {
		return nil, fmt.Errorf("project %d is not accepting donations", projectID)
	}

	donation := &domain.Donation{
		DonorID:   donorID,
		NGOID:     project.NGOID,
		ProjectID: projectID,
		Amount:    amount,
		Status:    domain.DonationStatusPending,
		OrderID:   "order_" + uuid.NewString(),
		Message:   message,
	}
	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}

	logger.Info("Donation order created", "donation_id", donation.ID, "donor_id", donorID, "amount", amount)
	return donation, nil
}

func (s *donationService) CompletePayment(ctx context.Context, orderID, paymentID, signature string) (*domain.Donation, []domain.Badge, error) {
	if !s.verifySignature(orderID, paymentID, signature) {
		return nil, nil, ErrInvalidPaymentSignature
	}

	donation, err := s.donationRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("donation not found for order %s: %w", orderID, err)
	}
	if donation.Status == domain.DonationStatusCompleted {
		// Gateway callbacks can be delivered more than once
		return donation, nil, nil
	}

	// Snapshot stats before completion so newly crossed badges can be
	// detected afterwards; the badge engine itself is stateless
	before, err := s.donationRepo.GetDonorStats(ctx, donation.DonorID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load donor stats: %w", err)
	}

	donation.Status = domain.DonationStatusCompleted
	donation.PaymentID = paymentID
	donation.ReceiptNumber = s.scorer.ReceiptNumber(donation.NGOID, donation.ID)
	donation.DonatedOn = time.Now()
	if err := s.donationRepo.Update(ctx, donation); err != nil {
		return nil, nil, fmt.Errorf("failed to complete donation: %w", err)
	}

	if err := s.projectRepo.AddRaisedAmount(ctx, donation.ProjectID, donation.Amount); err != nil {
		logger.Warn("Failed to update project raised amount", "project_id", donation.ProjectID, "error", err)
	}

	after, err := s.donationRepo.GetDonorStats(ctx, donation.DonorID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload donor stats: %w", err)
	}

	newBadges := s.badges.CheckNewBadges(before.DonationCount, after.DonationCount, before.TotalAmount, after.TotalAmount)
	s.notifyDonor(ctx, donation, newBadges)
	s.appendAudit(ctx, donation)

	logger.Info("Donation completed", "donation_id", donation.ID, "donor_id", donation.DonorID,
		"amount", donation.Amount, "new_badges", len(newBadges))
	return donation, newBadges, nil
}

func (s *donationService) GetDonation(ctx context.Context, donorID, donationID int32) (*domain.Donation, error) {
	donation, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, fmt.Errorf("donation not found: %w", err)
	}
	if donation.DonorID != donorID {
		return nil, fmt.Errorf("donation %d does not belong to donor %d", donationID, donorID)
	}
	return donation, nil
}

func (s *donationService) ListDonations(ctx context.Context, donorID int32, page, pageSize int32) ([]domain.Donation, int32, error) {
	return s.donationRepo.ListByDonor(ctx, donorID, page, pageSize)
}

// verifySignature checks the gateway callback HMAC: hex(SHA256-HMAC of
// "{orderID}|{paymentID}" under the webhook secret).
func (s *donationService) verifySignature(orderID, paymentID, signature string) bool {
	if len(s.webhookSecret) == 0 {
		// No secret configured: dev mode, accept everything
		return true
	}
	mac := hmac.New(sha256.New, s.webhookSecret)
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// notifyDonor sends the confirmation email, a notification row and one
// email/notification per newly earned badge. Failures are logged, never
// propagated: the donation is already completed.
func (s *donationService) notifyDonor(ctx context.Context, donation *domain.Donation, newBadges []domain.Badge) {
	donor, err := s.userRepo.GetByID(ctx, donation.DonorID)
	if err != nil {
		logger.Warn("Failed to load donor for notifications", "donor_id", donation.DonorID, "error", err)
		return
	}
	project, err := s.projectRepo.GetByID(ctx, donation.ProjectID)
	if err != nil {
		logger.Warn("Failed to load project for notifications", "project_id", donation.ProjectID, "error", err)
		return
	}

	if err := s.emailSvc.SendDonationConfirmation(ctx, donor.Email, donor.Name, project.Title, donation.Amount, donation.ReceiptNumber); err != nil {
		logger.Warn("Failed to send donation confirmation", "donation_id", donation.ID, "error", err)
	}
	note := &domain.Notification{
		UserID:  donor.ID,
		Type:    domain.NotificationDonationConfirmed,
		Title:   "Donation confirmed",
		Message: fmt.Sprintf("Your donation of ₹%d to %q was received. Receipt: %s", donation.Amount, project.Title, donation.ReceiptNumber),
	}
	if err := s.notificationRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create donation notification", "donation_id", donation.ID, "error", err)
	}

	for _, badge := range newBadges {
		if err := s.emailSvc.SendBadgeEarned(ctx, donor.Email, donor.Name, badge.Name, badge.Icon); err != nil {
			logger.Warn("Failed to send badge email", "badge", badge.ID, "error", err)
		}
		badgeNote := &domain.Notification{
			UserID:  donor.ID,
			Type:    domain.NotificationBadgeEarned,
			Title:   "New badge earned",
			Message: fmt.Sprintf("Congratulations! You earned the %s badge %s", badge.Name, badge.Icon),
		}
		if err := s.notificationRepo.Create(ctx, badgeNote); err != nil {
			logger.Warn("Failed to create badge notification", "badge", badge.ID, "error", err)
		}
	}
}

func (s *donationService) appendAudit(ctx context.Context, donation *domain.Donation) {
	_, err := s.auditRecorder.Record(ctx, "donation_completed", map[string]any{
		"donation_id": donation.ID,
		"donor_id":    donation.DonorID,
		"ngo_id":      donation.NGOID,
		"amount":      donation.Amount,
		"receipt":     donation.ReceiptNumber,
	})
	if err != nil {
		logger.Warn("Failed to append audit record", "donation_id", donation.ID, "error", err)
	}
}
