package service

import (
	"context"
	"fmt"

	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/logger"
	"daanbridge-backend/internal/repository"
	"daanbridge-backend/internal/utils"
)

type certificateService struct {
	donationRepo repository.DonationRepository
	userRepo     repository.UserRepository
	ngoRepo      repository.NGORepository
	projectRepo  repository.ProjectRepository
	emailSvc     EmailService
}

func NewCertificateService(
	donationRepo repository.DonationRepository,
	userRepo repository.UserRepository,
	ngoRepo repository.NGORepository,
	projectRepo repository.ProjectRepository,
	emailSvc EmailService,
) CertificateService {
	return &certificateService{
		donationRepo: donationRepo,
		userRepo:     userRepo,
		ngoRepo:      ngoRepo,
		projectRepo:  projectRepo,
		emailSvc:     emailSvc,
	}
}

func (s *certificateService) GenerateCertificate(ctx context.Context, donorID, donationID int32) (*domain.TaxCertificate, error) {
	donation, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, fmt.Errorf("donation not found: %w", err)
	}
	if donation.DonorID != donorID {
		return nil, fmt.Errorf("donation %d does not belong to donor %d", donationID, donorID)
	}
	if donation.Status != domain.DonationStatusCompleted {
		return nil, fmt.Errorf("certificate requires a completed donation, status is %s", donation.Status)
	}

	donor, err := s.userRepo.GetByID(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("donor not found: %w", err)
	}
	ngo, err := s.ngoRepo.GetByID(ctx, donation.NGOID)
	if err != nil {
		return nil, fmt.Errorf("ngo not found: %w", err)
	}
	project, err := s.projectRepo.GetByID(ctx, donation.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}

	donationDate := donation.DonatedOn.Format("2006-01-02")
	certNumber, err := utils.GenerateCertificateNumber(ngo.RegistrationNumber, donationDate, int(donation.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to generate certificate number: %w", err)
	}

	amountWords, err := utils.NumberToWords(donation.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to convert amount to words: %w", err)
	}

	// Tax eligibility follows from the NGO's verified 80G certificate
	taxEligible := false
	if result, err := s.ngoRepo.GetVerificationResult(ctx, ngo.ID); err == nil {
		if doc, ok := result.Documents[domain.Doc80GCertificate]; ok && doc.Verified {
			taxEligible = true
		}
	}

	date, _ := utils.ParseDate(donationDate)
	return &domain.TaxCertificate{
		CertificateNumber: certNumber,
		DonorName:         donor.Name,
		NGOName:           ngo.Name,
		NGORegistration:   ngo.RegistrationNumber,
		ProjectTitle:      project.Title,
		Amount:            donation.Amount,
		AmountInWords:     amountWords + " Rupees Only",
		DonationDate:      donationDate,
		ReceiptNumber:     donation.ReceiptNumber,
		TaxEligible:       taxEligible,
		FinancialYear:     utils.FinancialYear(date),
	}, nil
}

func (s *certificateService) EmailCertificate(ctx context.Context, donorID, donationID int32) error {
	certificate, err := s.GenerateCertificate(ctx, donorID, donationID)
	if err != nil {
		return err
	}

	donor, err := s.userRepo.GetByID(ctx, donorID)
	if err != nil {
		return fmt.Errorf("donor not found: %w", err)
	}

	if err := s.emailSvc.SendTaxCertificate(ctx, donor.Email, donor.Name, certificate); err != nil {
		return fmt.Errorf("failed to email certificate: %w", err)
	}

	logger.Info("Tax certificate emailed", "donor_id", donorID, "donation_id", donationID, "certificate", certificate.CertificateNumber)
	return nil
}
