package service

import (
	"math/rand"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"daanbridge-backend/internal/domain"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestScorer() *VerificationScorer {
	return NewVerificationScorer(func() time.Time { return fixedNow }, rand.New(rand.NewSource(1)))
}

func bundleWith(docs map[domain.DocumentType]*domain.NGODocument) *domain.DocumentBundle {
	if docs == nil {
		docs = map[domain.DocumentType]*domain.NGODocument{}
	}
	for docType, doc := range docs {
		doc.Type = docType
	}
	return &domain.DocumentBundle{Documents: docs}
}

func TestValidateDocuments(t *testing.T) {
	scorer := newTestScorer()

	t.Run("Registration certificate needs 10 characters", func(t *testing.T) {
		bundle := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.DocRegistrationCertificate: {RegistrationNumber: "REG/2015/NGO/001"},
		})
		scorer.ValidateDocuments(bundle)
		assert.True(t, bundle.Documents[domain.DocRegistrationCertificate].Verified)
		assert.Equal(t, fixedNow, bundle.Documents[domain.DocRegistrationCertificate].VerifiedDate)

		short := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.DocRegistrationCertificate: {RegistrationNumber: "REG123"},
		})
		scorer.ValidateDocuments(short)
		assert.False(t, short.Documents[domain.DocRegistrationCertificate].Verified)
	})

	t.Run("PAN format", func(t *testing.T) {
		valid := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.DocPANCard: {PAN: "AAACX1234F"},
		})
		scorer.ValidateDocuments(valid)
		assert.True(t, valid.Documents[domain.DocPANCard].Verified)

		invalid := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.DocPANCard: {PAN: "aaacx1234f"},
		})
		scorer.ValidateDocuments(invalid)
		assert.False(t, invalid.Documents[domain.DocPANCard].Verified)
	})

	t.Run("12A prefix and 80G substring", func(t *testing.T) {
		bundle := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.Doc12ACertificate: {CertificateNumber: "12A/DEL/2020/0042"},
			domain.Doc80GCertificate: {CertificateNumber: "DIT(E)/80G/2021/117"},
		})
		scorer.ValidateDocuments(bundle)
		assert.True(t, bundle.Documents[domain.Doc12ACertificate].Verified)
		assert.True(t, bundle.Documents[domain.Doc80GCertificate].Verified)

		wrong := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.Doc12ACertificate: {CertificateNumber: "DEL/12A/2020"},
		})
		scorer.ValidateDocuments(wrong)
		assert.False(t, wrong.Documents[domain.Doc12ACertificate].Verified)
	})

	t.Run("Audit reports within two years", func(t *testing.T) {
		recent := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.DocAuditReports: {AuditYear: 2022},
		})
		scorer.ValidateDocuments(recent)
		assert.True(t, recent.Documents[domain.DocAuditReports].Verified)

		stale := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.DocAuditReports: {AuditYear: 2021},
		})
		scorer.ValidateDocuments(stale)
		assert.False(t, stale.Documents[domain.DocAuditReports].Verified)
	})

	t.Run("Unknown type never verifies", func(t *testing.T) {
		bundle := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.DocumentType("mystery_certificate"): {CertificateNumber: "X"},
		})
		scorer.ValidateDocuments(bundle)
		assert.False(t, bundle.Documents[domain.DocumentType("mystery_certificate")].Verified)
	})
}

func TestCalculateVerificationLevel(t *testing.T) {
	scorer := newTestScorer()

	verified := func(docType domain.DocumentType) *domain.NGODocument {
		return &domain.NGODocument{Type: docType, Verified: true}
	}

	t.Run("Basic without required documents", func(t *testing.T) {
		bundle := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.Doc80GCertificate: verified(domain.Doc80GCertificate),
		})
		bundle.ComplianceScore = 95
		assert.Equal(t, domain.VerificationBasic, scorer.CalculateVerificationLevel(bundle))
	})

	t.Run("Premium with tax document and high compliance", func(t *testing.T) {
		bundle := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.DocRegistrationCertificate: verified(domain.DocRegistrationCertificate),
			domain.DocPANCard:                 verified(domain.DocPANCard),
			domain.Doc80GCertificate:          verified(domain.Doc80GCertificate),
		})
		bundle.ComplianceScore = 85
		assert.Equal(t, domain.VerificationPremium, scorer.CalculateVerificationLevel(bundle))
	})

	t.Run("Verified when compliance below 80", func(t *testing.T) {
		bundle := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.DocRegistrationCertificate: verified(domain.DocRegistrationCertificate),
			domain.DocPANCard:                 verified(domain.DocPANCard),
			domain.Doc80GCertificate:          verified(domain.Doc80GCertificate),
		})
		bundle.ComplianceScore = 79
		assert.Equal(t, domain.VerificationVerified, scorer.CalculateVerificationLevel(bundle))
	})

	t.Run("Verified without any tax document", func(t *testing.T) {
		bundle := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.DocRegistrationCertificate: verified(domain.DocRegistrationCertificate),
			domain.DocPANCard:                 verified(domain.DocPANCard),
		})
		bundle.ComplianceScore = 95
		assert.Equal(t, domain.VerificationVerified, scorer.CalculateVerificationLevel(bundle))
	})
}

func TestCalculateComplianceScore(t *testing.T) {
	scorer := newTestScorer()

	t.Run("Empty bundle scores zero", func(t *testing.T) {
		assert.Equal(t, 0, scorer.CalculateComplianceScore(bundleWith(nil)))
	})

	t.Run("Completeness and verification weights", func(t *testing.T) {
		// 3 of 6 catalog documents, all verified: 20 + 30 = 50
		bundle := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.DocRegistrationCertificate: {Verified: true},
			domain.DocPANCard:                 {Verified: true},
			domain.Doc80GCertificate:          {Verified: true},
		})
		assert.Equal(t, 50, scorer.CalculateComplianceScore(bundle))
	})

	t.Run("Flat bonuses", func(t *testing.T) {
		bundle := bundleWith(nil)
		bundle.AnnualReturnsFiled = true
		bundle.AuditReportsSubmitted = true
		bundle.TransparencyScore = 80
		assert.Equal(t, 30, scorer.CalculateComplianceScore(bundle))
	})

	t.Run("Clamped to 100", func(t *testing.T) {
		bundle := bundleWith(map[domain.DocumentType]*domain.NGODocument{})
		for _, docType := range domain.AllDocumentTypes {
			bundle.Documents[docType] = &domain.NGODocument{Type: docType, Verified: true}
		}
		bundle.AnnualReturnsFiled = true
		bundle.AuditReportsSubmitted = true
		bundle.TransparencyScore = 100
		assert.Equal(t, 100, scorer.CalculateComplianceScore(bundle))
	})
}

func TestCalculateFraudRisk(t *testing.T) {
	scorer := newTestScorer()

	t.Run("Empty bundle accumulates missing-document risk", func(t *testing.T) {
		// 30 registration + 25 PAN + 20 no audit reports
		assert.Equal(t, 75, scorer.CalculateFraudRisk(bundleWith(nil)))
	})

	t.Run("Verified required documents reduce risk", func(t *testing.T) {
		bundle := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.DocRegistrationCertificate: {Verified: true},
			domain.DocPANCard:                 {Verified: true},
			domain.DocAuditReports:            {AuditYear: 2023},
		})
		assert.Equal(t, 0, scorer.CalculateFraudRisk(bundle))
	})

	t.Run("Inconsistencies and complaints add up and clamp", func(t *testing.T) {
		bundle := bundleWith(nil)
		bundle.InconsistencyFlags = []string{"a", "b", "c"}
		bundle.ComplaintHistory = []string{"x", "y"}
		// 75 + 15 + 20 = 110 → clamped
		assert.Equal(t, 100, scorer.CalculateFraudRisk(bundle))
	})
}

func TestGenerateVerificationBadges(t *testing.T) {
	scorer := newTestScorer()

	t.Run("Fixed order and transparency gate", func(t *testing.T) {
		bundle := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.DocRegistrationCertificate: {Verified: true},
			domain.Doc12ACertificate:          {Verified: true},
			domain.Doc80GCertificate:          {Verified: true},
			domain.DocFCRACertificate:         {Verified: true},
			domain.DocAuditReports:            {Verified: true},
		})
		bundle.TransparencyScore = 95

		badges := scorer.GenerateVerificationBadges(bundle)
		ids := make([]string, len(badges))
		for i, b := range badges {
			ids[i] = b.ID
		}
		assert.Equal(t, []string{"registered_ngo", "80g_certified", "12a_certified", "fcra_approved", "transparency_champion"}, ids)
	})

	t.Run("No transparency champion below 90", func(t *testing.T) {
		bundle := bundleWith(map[domain.DocumentType]*domain.NGODocument{
			domain.DocAuditReports: {Verified: true},
		})
		bundle.TransparencyScore = 89
		assert.Empty(t, scorer.GenerateVerificationBadges(bundle))
	})
}

func TestScore(t *testing.T) {
	scorer := newTestScorer()

	bundle := bundleWith(map[domain.DocumentType]*domain.NGODocument{
		domain.DocRegistrationCertificate: {RegistrationNumber: "REG/2015/NGO/001"},
		domain.DocPANCard:                 {PAN: "AAACX1234F"},
		domain.Doc80GCertificate:          {CertificateNumber: "DIT(E)/80G/2021/117"},
		domain.DocAuditReports:            {AuditYear: 2024},
	})
	bundle.AnnualReturnsFiled = true
	bundle.AuditReportsSubmitted = true
	bundle.TransparencyScore = 85

	result := scorer.Score(7, bundle)

	assert.Equal(t, int32(7), result.NGOID)
	// 3/6 completeness (20) + 4/4 verified (30) + 30 bonuses = 80 → Premium
	assert.Equal(t, 80, result.ComplianceScore)
	assert.Equal(t, domain.VerificationPremium, result.VerificationLevel)
	assert.Equal(t, 0, result.FraudRiskScore)
	assert.Equal(t, fixedNow, result.VerifiedDate)
	assert.Equal(t, fixedNow.AddDate(0, 0, 365), result.ExpiryDate)
	assert.Equal(t, fixedNow.AddDate(0, 0, 90), result.NextReviewDate)
}

func TestFraudAlerts(t *testing.T) {
	scorer := newTestScorer()

	donation := func(daysAgo int, amount int64) domain.ActivityEvent {
		return domain.ActivityEvent{Type: domain.ActivityDonationReceived, Amount: amount, Date: fixedNow.AddDate(0, 0, -daysAgo)}
	}
	spend := func(daysAgo int, amount int64) domain.ActivityEvent {
		return domain.ActivityEvent{Type: domain.ActivityFundsSpent, Amount: amount, Date: fixedNow.AddDate(0, 0, -daysAgo)}
	}
	update := func(daysAgo int) domain.ActivityEvent {
		return domain.ActivityEvent{Type: domain.ActivityProjectUpdate, Date: fixedNow.AddDate(0, 0, -daysAgo)}
	}

	t.Run("Stale NGO with many donations and no updates", func(t *testing.T) {
		events := []domain.ActivityEvent{
			donation(1, 100), donation(2, 100), donation(5, 100),
			donation(10, 100), donation(15, 100), donation(20, 100),
		}
		alerts := scorer.FraudAlerts(3, events)
		assert.Len(t, alerts, 1)
		assert.Equal(t, "no_updates", alerts[0].Type)
		assert.Equal(t, domain.AlertSeverityHigh, alerts[0].Severity)
	})

	t.Run("A single project update silences the stale alert", func(t *testing.T) {
		events := []domain.ActivityEvent{
			donation(1, 100), donation(2, 100), donation(5, 100),
			donation(10, 100), donation(15, 100), donation(20, 100),
			update(12),
		}
		assert.Empty(t, scorer.FraudAlerts(3, events))
	})

	t.Run("Events outside the 30-day window are ignored", func(t *testing.T) {
		events := []domain.ActivityEvent{
			donation(40, 100), donation(45, 100), donation(50, 100),
			donation(55, 100), donation(60, 100), donation(65, 100),
		}
		assert.Empty(t, scorer.FraudAlerts(3, events))
	})

	t.Run("Financial mismatch over 10 percent", func(t *testing.T) {
		events := []domain.ActivityEvent{
			donation(5, 1000),
			spend(3, 1200),
		}
		alerts := scorer.FraudAlerts(3, events)
		assert.Len(t, alerts, 1)
		assert.Equal(t, "financial_mismatch", alerts[0].Type)
		assert.Equal(t, domain.AlertSeverityCritical, alerts[0].Severity)
	})

	t.Run("Spend within tolerance raises nothing", func(t *testing.T) {
		events := []domain.ActivityEvent{
			donation(5, 1000),
			spend(3, 1100),
		}
		assert.Empty(t, scorer.FraudAlerts(3, events))
	})

	t.Run("Spending with zero donations received is a critical mismatch", func(t *testing.T) {
		events := []domain.ActivityEvent{
			spend(3, 100000),
		}
		alerts := scorer.FraudAlerts(3, events)
		assert.Len(t, alerts, 1)
		assert.Equal(t, "financial_mismatch", alerts[0].Type)
		assert.Equal(t, domain.AlertSeverityCritical, alerts[0].Severity)
	})
}

func TestReceiptNumber(t *testing.T) {
	scorer := newTestScorer()

	receipt := scorer.ReceiptNumber(12, 345)
	assert.Regexp(t, regexp.MustCompile(`^RCP-12-345-\d+-\d{6}$`), receipt)
}

func TestReceiptNumberConcurrent(t *testing.T) {
	scorer := newTestScorer()
	pattern := regexp.MustCompile(`^RCP-12-\d+-\d+-\d{6}$`)

	// Receipts are issued from payment callback handlers, which run on
	// separate goroutines against one shared scorer
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(donationID int32) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				receipt := scorer.ReceiptNumber(12, donationID)
				assert.Regexp(t, pattern, receipt)
			}
		}(int32(i))
	}
	wg.Wait()
}
