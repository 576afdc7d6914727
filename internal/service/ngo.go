package service

import (
	"context"
	"fmt"
	"time"

	"daanbridge-backend/internal/audit"
	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/logger"
	"daanbridge-backend/internal/repository"
)

type ngoService struct {
	ngoRepo       repository.NGORepository
	userRepo      repository.UserRepository
	donationRepo  repository.DonationRepository
	scorer        *VerificationScorer
	emailSvc      EmailService
	auditRecorder *audit.Recorder
}

func NewNGOService(
	ngoRepo repository.NGORepository,
	userRepo repository.UserRepository,
	donationRepo repository.DonationRepository,
	scorer *VerificationScorer,
	emailSvc EmailService,
	auditRecorder *audit.Recorder,
) NGOService {
	return &ngoService{
		ngoRepo:       ngoRepo,
		userRepo:      userRepo,
		donationRepo:  donationRepo,
		scorer:        scorer,
		emailSvc:      emailSvc,
		auditRecorder: auditRecorder,
	}
}

func (s *ngoService) Register(ctx context.Context, userID int32, ngo *domain.NGO) error {
	if ngo.Name == "" || ngo.RegistrationNumber == "" {
		return fmt.Errorf("ngo name and registration number are required")
	}
	ngo.UserID = userID
	if err := s.ngoRepo.Create(ctx, ngo); err != nil {
		return fmt.Errorf("failed to register ngo: %w", err)
	}
	logger.Info("NGO registered", "ngo_id", ngo.ID, "user_id", userID)
	return nil
}

func (s *ngoService) GetNGO(ctx context.Context, id int32) (*domain.NGO, *domain.VerificationResult, error) {
	ngo, err := s.ngoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("ngo not found: %w", err)
	}

	// A missing verification result just means the NGO has not been
	// reviewed yet
	result, err := s.ngoRepo.GetVerificationResult(ctx, id)
	if err != nil {
		return ngo, nil, nil
	}
	return ngo, result, nil
}

func (s *ngoService) ListNGOs(ctx context.Context, page, pageSize int32) ([]domain.NGO, int32, error) {
	return s.ngoRepo.List(ctx, page, pageSize)
}

func (s *ngoService) UpdateNGO(ctx context.Context, userID int32, ngo *domain.NGO) error {
	existing, err := s.ngoRepo.GetByID(ctx, ngo.ID)
	if err != nil {
		return fmt.Errorf("ngo not found: %w", err)
	}
	if existing.UserID != userID {
		return fmt.Errorf("user %d does not manage ngo %d", userID, ngo.ID)
	}
	return s.ngoRepo.Update(ctx, ngo)
}

func (s *ngoService) SubmitDocument(ctx context.Context, userID, ngoID int32, doc *domain.NGODocument) error {
	if err := s.requireManager(ctx, userID, ngoID); err != nil {
		return err
	}

	// Freshly submitted documents are unverified until the next review
	doc.Verified = false
	doc.VerifiedDate = time.Time{}
	if err := s.ngoRepo.SaveDocument(ctx, ngoID, doc); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	logger.Info("NGO document submitted", "ngo_id", ngoID, "type", doc.Type)
	return nil
}

func (s *ngoService) UpdateCompliance(ctx context.Context, userID, ngoID int32, bundle *domain.DocumentBundle) error {
	if err := s.requireManager(ctx, userID, ngoID); err != nil {
		return err
	}
	return s.ngoRepo.UpdateComplianceFlags(ctx, ngoID, bundle)
}

// VerifyNGO recomputes the verification result from the full stored
// document bundle, persists it, appends an audit record and notifies the
// NGO contact.
func (s *ngoService) VerifyNGO(ctx context.Context, ngoID int32) (*domain.VerificationResult, error) {
	ngo, err := s.ngoRepo.GetByID(ctx, ngoID)
	if err != nil {
		return nil, fmt.Errorf("ngo not found: %w", err)
	}

	bundle, err := s.ngoRepo.GetDocumentBundle(ctx, ngoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load document bundle: %w", err)
	}

	result := s.scorer.Score(ngoID, bundle)

	if err := s.ngoRepo.SaveVerificationResult(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to persist verification result: %w", err)
	}
	for _, doc := range result.Documents {
		if err := s.ngoRepo.SaveDocument(ctx, ngoID, doc); err != nil {
			logger.Warn("Failed to persist document verification", "ngo_id", ngoID, "type", doc.Type, "error", err)
		}
	}

	if _, err := s.auditRecorder.Record(ctx, "ngo_verified", map[string]any{
		"ngo_id":           ngoID,
		"level":            result.VerificationLevel,
		"compliance_score": result.ComplianceScore,
		"fraud_risk":       result.FraudRiskScore,
	}); err != nil {
		logger.Warn("Failed to append audit record", "ngo_id", ngoID, "error", err)
	}

	if err := s.emailSvc.SendVerificationStatus(ctx, ngo.ContactEmail, ngo.Name, result.VerificationLevel, result.ComplianceScore); err != nil {
		logger.Warn("Failed to send verification status email", "ngo_id", ngoID, "error", err)
	}

	logger.Info("NGO verified", "ngo_id", ngoID, "level", result.VerificationLevel,
		"compliance_score", result.ComplianceScore, "fraud_risk", result.FraudRiskScore)
	return result, nil
}

func (s *ngoService) ScanFraudAlerts(ctx context.Context, ngoID int32) ([]domain.FraudAlert, error) {
	since := time.Now().AddDate(0, 0, -30)
	activities, err := s.donationRepo.ListActivity(ctx, ngoID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load ngo activity: %w", err)
	}
	return s.scorer.FraudAlerts(ngoID, activities), nil
}

func (s *ngoService) requireManager(ctx context.Context, userID, ngoID int32) error {
	ngo, err := s.ngoRepo.GetByID(ctx, ngoID)
	if err != nil {
		return fmt.Errorf("ngo not found: %w", err)
	}
	if ngo.UserID != userID {
		return fmt.Errorf("user %d does not manage ngo %d", userID, ngoID)
	}
	return nil
}
