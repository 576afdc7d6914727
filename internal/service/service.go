package service

import (
	"context"
	"time"

	"daanbridge-backend/internal/audit"
	"daanbridge-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)                                                   // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, *domain.DonorStats, error)
	UpdateProfile(ctx context.Context, userID int32, name, email, phone string, isAnonymous bool) error
	GetDonorStats(ctx context.Context, userID int32) (*domain.DonorStats, error)
}

type NGOService interface {
	Register(ctx context.Context, userID int32, ngo *domain.NGO) error
	GetNGO(ctx context.Context, id int32) (*domain.NGO, *domain.VerificationResult, error)
	ListNGOs(ctx context.Context, page, pageSize int32) ([]domain.NGO, int32, error)
	UpdateNGO(ctx context.Context, userID int32, ngo *domain.NGO) error
	SubmitDocument(ctx context.Context, userID, ngoID int32, doc *domain.NGODocument) error
	UpdateCompliance(ctx context.Context, userID, ngoID int32, bundle *domain.DocumentBundle) error

	// VerifyNGO recomputes the verification result from the full stored
	// document bundle and persists it
	VerifyNGO(ctx context.Context, ngoID int32) (*domain.VerificationResult, error)
	ScanFraudAlerts(ctx context.Context, ngoID int32) ([]domain.FraudAlert, error)
}

type ProjectService interface {
	CreateProject(ctx context.Context, userID int32, project *domain.Project) error
	GetProject(ctx context.Context, id int32) (*domain.Project, []domain.ProjectUpdate, error)
	ListProjects(ctx context.Context, category string, page, pageSize int32) ([]domain.Project, int32, error)
	ListNGOProjects(ctx context.Context, ngoID int32) ([]domain.Project, error)
	UpdateProject(ctx context.Context, userID int32, project *domain.Project) error
	PostUpdate(ctx context.Context, userID int32, update *domain.ProjectUpdate) error
}

type DonationService interface {
	// CreateOrder opens a PENDING donation and returns it with a fresh
	// gateway order id
	CreateOrder(ctx context.Context, donorID, projectID int32, amount int64, message string) (*domain.Donation, error)

	// CompletePayment verifies the gateway callback signature, marks the
	// donation COMPLETED and returns the badges crossed by this donation
	CompletePayment(ctx context.Context, orderID, paymentID, signature string) (*domain.Donation, []domain.Badge, error)

	GetDonation(ctx context.Context, donorID, donationID int32) (*domain.Donation, error)
	ListDonations(ctx context.Context, donorID int32, page, pageSize int32) ([]domain.Donation, int32, error)
}

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, category domain.LeaderboardCategory, period domain.LeaderboardPeriod, limit int) ([]domain.RankedEntry, error)
	GetDonorRank(ctx context.Context, donorID int32, category domain.LeaderboardCategory) (int32, error) // 0 when absent
	CheckEligibility(ctx context.Context, donorID int32) (*domain.LeaderboardEligibility, error)
	RefreshCache(ctx context.Context) error
}

type CertificateService interface {
	// GenerateCertificate assembles the 80G tax certificate for a completed
	// donation, including the amount in words
	GenerateCertificate(ctx context.Context, donorID, donationID int32) (*domain.TaxCertificate, error)
	EmailCertificate(ctx context.Context, donorID, donationID int32) error
}

type AuditService interface {
	// Trail returns stored audit records in chain order together with the
	// index of the first broken link, -1 when the chain is consistent
	Trail(ctx context.Context, limit int32) ([]*audit.Record, int, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendDonationConfirmation(ctx context.Context, email, donorName, projectTitle string, amount int64, receiptNumber string) error
	SendBadgeEarned(ctx context.Context, email, donorName, badgeName, badgeIcon string) error
	SendTaxCertificate(ctx context.Context, email, donorName string, certificate *domain.TaxCertificate) error
	SendVerificationStatus(ctx context.Context, email, ngoName string, level domain.VerificationLevel, complianceScore int) error
	SendReviewReminder(ctx context.Context, email, ngoName string, reviewDate time.Time) error
	SendFraudAlert(ctx context.Context, adminEmail string, alert *domain.FraudAlert) error
}
