package repository

import (
	"context"
	"time"

	"daanbridge-backend/internal/audit"
	"daanbridge-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type NGORepository interface {
	Create(ctx context.Context, ngo *domain.NGO) error
	GetByID(ctx context.Context, id int32) (*domain.NGO, error)
	GetByUserID(ctx context.Context, userID int32) (*domain.NGO, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.NGO, int32, error)
	Update(ctx context.Context, ngo *domain.NGO) error

	// Documents and compliance
	SaveDocument(ctx context.Context, ngoID int32, doc *domain.NGODocument) error
	GetDocumentBundle(ctx context.Context, ngoID int32) (*domain.DocumentBundle, error)
	UpdateComplianceFlags(ctx context.Context, ngoID int32, bundle *domain.DocumentBundle) error

	// Verification results
	SaveVerificationResult(ctx context.Context, result *domain.VerificationResult) error
	GetVerificationResult(ctx context.Context, ngoID int32) (*domain.VerificationResult, error)
	ListDueForReview(ctx context.Context, before time.Time) ([]domain.NGO, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int32) (*domain.Project, error)
	List(ctx context.Context, category string, page, pageSize int32) ([]domain.Project, int32, error)
	ListByNGO(ctx context.Context, ngoID int32) ([]domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	AddRaisedAmount(ctx context.Context, projectID int32, amount int64) error

	// Proof-of-impact updates
	CreateUpdate(ctx context.Context, update *domain.ProjectUpdate) error
	ListUpdates(ctx context.Context, projectID int32) ([]domain.ProjectUpdate, error)
}

type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) error
	GetByID(ctx context.Context, id int32) (*domain.Donation, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Donation, error)
	Update(ctx context.Context, donation *domain.Donation) error
	ListByDonor(ctx context.Context, donorID int32, page, pageSize int32) ([]domain.Donation, int32, error)

	// GetDonorStats aggregates completed donations for one donor
	GetDonorStats(ctx context.Context, donorID int32) (*domain.DonorStats, error)

	// Leaderboard returns aggregate rows for completed donations since the
	// given time, already sorted by the category's metric
	Leaderboard(ctx context.Context, category domain.LeaderboardCategory, since time.Time) ([]domain.LeaderboardEntry, error)

	// ListActivity returns the NGO's dated activity events since the given
	// time, consumed by the fraud-alert scan
	ListActivity(ctx context.Context, ngoID int32, since time.Time) ([]domain.ActivityEvent, error)
}

// AuditRepository persists the append-only audit chain. Append and
// LastHash satisfy audit.Store; List returns records in insertion order so
// audit.VerifyChain can walk them.
type AuditRepository interface {
	Append(ctx context.Context, record *audit.Record) error
	LastHash(ctx context.Context) (string, error)
	List(ctx context.Context, limit int32) ([]*audit.Record, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
