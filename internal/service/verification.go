package service

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"daanbridge-backend/internal/domain"
)

var panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// Compliance score weights: completeness up to 40, verification ratio up
// to 30, flat bonuses up to 30.
const (
	completenessWeight    = 40.0
	verificationWeight    = 30.0
	annualReturnsBonus    = 10
	auditReportsBonus     = 10
	transparencyBonus     = 10
	transparencyThreshold = 80
)

// Fraud risk contributions
const (
	riskMissingRegistration = 30
	riskMissingPAN          = 25
	riskNoAuditReports      = 20
	riskPerInconsistency    = 5
	riskPerComplaint        = 10
)

const fraudAlertWindow = 30 * 24 * time.Hour

// VerificationScorer computes an NGO's trust standing from its submitted
// document bundle. Every call recomputes from the full bundle; nothing is
// updated incrementally. Missing or malformed fields degrade to
// "not verified" rather than erroring. Safe for concurrent use.
type VerificationScorer struct {
	now func() time.Time

	mu  sync.Mutex // rand.Rand is not goroutine-safe
	rng *rand.Rand
}

func NewVerificationScorer(now func() time.Time, rng *rand.Rand) *VerificationScorer {
	if now == nil {
		now = time.Now
	}
	return &VerificationScorer{now: now, rng: rng}
}

// ValidateDocuments applies the per-type verification rule to each
// submitted document and stamps verified documents with the current time.
// Unknown document types are never verified.
func (s *VerificationScorer) ValidateDocuments(bundle *domain.DocumentBundle) {
	now := s.now()
	for docType, doc := range bundle.Documents {
		doc.Verified = s.verifyDocument(docType, doc)
		if doc.Verified {
			doc.VerifiedDate = now
		} else {
			doc.VerifiedDate = time.Time{}
		}
	}
}

func (s *VerificationScorer) verifyDocument(docType domain.DocumentType, doc *domain.NGODocument) bool {
	switch docType {
	case domain.DocRegistrationCertificate:
		return len(doc.RegistrationNumber) >= 10
	case domain.DocPANCard:
		return panPattern.MatchString(doc.PAN)
	// TAN and FCRA numbers have no checkable public format, so presence
	// is the bar for those two
	case domain.DocTANCertificate:
		return doc.CertificateNumber != ""
	case domain.Doc12ACertificate:
		return strings.HasPrefix(doc.CertificateNumber, "12A")
	case domain.Doc80GCertificate:
		return strings.Contains(doc.CertificateNumber, "80G")
	case domain.DocFCRACertificate:
		return doc.CertificateNumber != ""
	case domain.DocAuditReports:
		return doc.AuditYear >= s.now().Year()-2
	default:
		return false
	}
}

// CalculateVerificationLevel derives the tier from the validated bundle.
// Basic without both the registration certificate and the PAN card;
// Premium when, additionally, a tax-exemption document (12A, 80G or audit
// reports) is verified and the compliance score reaches 80; otherwise
// Verified.
func (s *VerificationScorer) CalculateVerificationLevel(bundle *domain.DocumentBundle) domain.VerificationLevel {
	hasRequired := documentVerified(bundle, domain.DocRegistrationCertificate) &&
		documentVerified(bundle, domain.DocPANCard)
	if !hasRequired {
		return domain.VerificationBasic
	}

	hasTaxDoc := documentVerified(bundle, domain.Doc12ACertificate) ||
		documentVerified(bundle, domain.Doc80GCertificate) ||
		documentVerified(bundle, domain.DocAuditReports)
	if hasTaxDoc && bundle.ComplianceScore >= 80 {
		return domain.VerificationPremium
	}
	return domain.VerificationVerified
}

// CalculateComplianceScore weighs document completeness (up to 40),
// verification ratio (up to 30) and flat compliance bonuses (up to 30).
// Empty bundles score 0; the result is rounded and clamped to 100.
func (s *VerificationScorer) CalculateComplianceScore(bundle *domain.DocumentBundle) int {
	score := 0.0

	catalogSubmitted := 0
	for _, docType := range domain.AllDocumentTypes {
		if _, ok := bundle.Documents[docType]; ok {
			catalogSubmitted++
		}
	}
	score += float64(catalogSubmitted) / float64(len(domain.AllDocumentTypes)) * completenessWeight

	submitted := len(bundle.Documents)
	if submitted > 0 {
		verified := 0
		for _, doc := range bundle.Documents {
			if doc.Verified {
				verified++
			}
		}
		score += float64(verified) / float64(submitted) * verificationWeight
	}

	if bundle.AnnualReturnsFiled {
		score += annualReturnsBonus
	}
	if bundle.AuditReportsSubmitted {
		score += auditReportsBonus
	}
	if bundle.TransparencyScore >= transparencyThreshold {
		score += transparencyBonus
	}

	return int(math.Min(math.Round(score), 100))
}

// CalculateFraudRisk accumulates heuristic risk from missing required
// documents, absent audit reports, inconsistency flags and complaints,
// clamped to 100.
func (s *VerificationScorer) CalculateFraudRisk(bundle *domain.DocumentBundle) int {
	risk := 0
	if !documentVerified(bundle, domain.DocRegistrationCertificate) {
		risk += riskMissingRegistration
	}
	if !documentVerified(bundle, domain.DocPANCard) {
		risk += riskMissingPAN
	}
	if _, ok := bundle.Documents[domain.DocAuditReports]; !ok {
		risk += riskNoAuditReports
	}
	risk += len(bundle.InconsistencyFlags) * riskPerInconsistency
	risk += len(bundle.ComplaintHistory) * riskPerComplaint

	if risk > 100 {
		risk = 100
	}
	return risk
}

// GenerateVerificationBadges emits trust badges in a fixed display order.
func (s *VerificationScorer) GenerateVerificationBadges(bundle *domain.DocumentBundle) []domain.VerificationBadge {
	var badges []domain.VerificationBadge
	if documentVerified(bundle, domain.DocRegistrationCertificate) {
		badges = append(badges, domain.VerificationBadge{ID: "registered_ngo", Label: "Registered NGO", Icon: "✅"})
	}
	if documentVerified(bundle, domain.Doc80GCertificate) {
		badges = append(badges, domain.VerificationBadge{ID: "80g_certified", Label: "80G Certified", Icon: "🧾"})
	}
	if documentVerified(bundle, domain.Doc12ACertificate) {
		badges = append(badges, domain.VerificationBadge{ID: "12a_certified", Label: "12A Certified", Icon: "📜"})
	}
	if documentVerified(bundle, domain.DocFCRACertificate) {
		badges = append(badges, domain.VerificationBadge{ID: "fcra_approved", Label: "FCRA Approved", Icon: "🌐"})
	}
	if documentVerified(bundle, domain.DocAuditReports) && bundle.TransparencyScore >= 90 {
		badges = append(badges, domain.VerificationBadge{ID: "transparency_champion", Label: "Transparency Champion", Icon: "🔍"})
	}
	return badges
}

// Score runs the full pipeline over a bundle and assembles the
// verification result: document validation, compliance score, tier, fraud
// risk and badges, with verification dates anchored at now.
func (s *VerificationScorer) Score(ngoID int32, bundle *domain.DocumentBundle) *domain.VerificationResult {
	s.ValidateDocuments(bundle)
	bundle.ComplianceScore = s.CalculateComplianceScore(bundle)

	now := s.now()
	return &domain.VerificationResult{
		NGOID:             ngoID,
		VerificationLevel: s.CalculateVerificationLevel(bundle),
		VerifiedDate:      now,
		ExpiryDate:        now.AddDate(0, 0, 365),
		NextReviewDate:    now.AddDate(0, 0, 90),
		Documents:         bundle.Documents,
		ComplianceScore:   bundle.ComplianceScore,
		FraudRiskScore:    s.CalculateFraudRisk(bundle),
		Badges:            s.GenerateVerificationBadges(bundle),
	}
}

// FraudAlerts inspects the NGO's activity over the last 30 days. More than
// 5 donations with zero project updates raises a high-severity stale-NGO
// alert; reported spend exceeding received donations by more than 10%
// raises a critical mismatch alert.
func (s *VerificationScorer) FraudAlerts(ngoID int32, activities []domain.ActivityEvent) []domain.FraudAlert {
	now := s.now()
	cutoff := now.Add(-fraudAlertWindow)

	var donations, updates int
	var received, spent int64
	for _, event := range activities {
		if event.Date.Before(cutoff) {
			continue
		}
		switch event.Type {
		case domain.ActivityDonationReceived:
			donations++
			received += event.Amount
		case domain.ActivityProjectUpdate:
			updates++
		case domain.ActivityFundsSpent:
			spent += event.Amount
		}
	}

	var alerts []domain.FraudAlert
	if donations > 5 && updates == 0 {
		alerts = append(alerts, domain.FraudAlert{
			NGOID:    ngoID,
			Type:     "no_updates",
			Severity: domain.AlertSeverityHigh,
			Message:  fmt.Sprintf("%d donations received in the last 30 days with no project updates", donations),
			Date:     now,
		})
	}
	// Any positive spend against zero received donations is a mismatch
	if float64(spent) > float64(received)*1.1 {
		alerts = append(alerts, domain.FraudAlert{
			NGOID:    ngoID,
			Type:     "financial_mismatch",
			Severity: domain.AlertSeverityCritical,
			Message:  fmt.Sprintf("reported spend ₹%d exceeds received donations ₹%d by more than 10%%", spent, received),
			Date:     now,
		})
	}
	return alerts
}

// ReceiptNumber issues a display receipt id. The timestamp plus weak
// random suffix is not collision-free and must not be used as a security
// token.
func (s *VerificationScorer) ReceiptNumber(ngoID, donationID int32) string {
	s.mu.Lock()
	suffix := s.rng.Intn(1000000)
	s.mu.Unlock()
	return fmt.Sprintf("RCP-%d-%d-%d-%06d", ngoID, donationID, s.now().Unix(), suffix)
}

func documentVerified(bundle *domain.DocumentBundle, docType domain.DocumentType) bool {
	doc, ok := bundle.Documents[docType]
	return ok && doc.Verified
}
