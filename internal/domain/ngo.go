package domain

import "time"

type NGO struct {
	ID                 int32  `json:"id"`
	UserID             int32  `json:"user_id"`
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	Description        string `json:"description"`
	Website            string `json:"website"`
	ContactEmail       string `json:"contact_email"`
	CreatedOn          string `json:"created_on"`
	UpdatedOn          string `json:"updated_on"`
}

// DocumentType enumerates the document kinds an NGO can submit for
// verification. The set is fixed; unknown types are never verified.
type DocumentType string

const (
	DocRegistrationCertificate DocumentType = "ngo_registration_certificate"
	DocPANCard                 DocumentType = "pan_card"
	DocTANCertificate          DocumentType = "tan_certificate"
	Doc12ACertificate          DocumentType = "12a_certificate"
	Doc80GCertificate          DocumentType = "80g_certificate"
	DocFCRACertificate         DocumentType = "fcra_certificate"
	DocAuditReports            DocumentType = "audit_reports"
)

// AllDocumentTypes lists the catalog used for completeness scoring.
var AllDocumentTypes = []DocumentType{
	DocRegistrationCertificate,
	DocPANCard,
	DocTANCertificate,
	Doc12ACertificate,
	Doc80GCertificate,
	DocFCRACertificate,
}

// NGODocument carries the type-specific fields submitted for one document.
type NGODocument struct {
	Type               DocumentType `json:"type"`
	RegistrationNumber string       `json:"registration_number,omitempty"`
	PAN                string       `json:"pan,omitempty"`
	CertificateNumber  string       `json:"certificate_number,omitempty"`
	AuditYear          int          `json:"audit_year,omitempty"`
	FileURL            string       `json:"file_url,omitempty"`
	Verified           bool         `json:"verified"`
	VerifiedDate       time.Time    `json:"verified_date,omitempty"`
}

// DocumentBundle is everything the trust scorer consumes for one NGO:
// submitted documents plus self-reported compliance signals.
type DocumentBundle struct {
	Documents             map[DocumentType]*NGODocument `json:"documents"`
	AnnualReturnsFiled    bool                          `json:"annual_returns_filed"`
	AuditReportsSubmitted bool                          `json:"audit_reports_submitted"`
	TransparencyScore     int                           `json:"transparency_score"`
	ComplianceScore       int                           `json:"compliance_score"`
	InconsistencyFlags    []string                      `json:"inconsistency_flags"`
	ComplaintHistory      []string                      `json:"complaint_history"`
}

type VerificationLevel string

const (
	VerificationBasic     VerificationLevel = "BASIC"
	VerificationVerified  VerificationLevel = "VERIFIED"
	VerificationPremium   VerificationLevel = "PREMIUM"
	VerificationSuspended VerificationLevel = "SUSPENDED"
)

type VerificationBadge struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// VerificationResult is recomputed fresh from the full document bundle on
// every verification request; it is never incrementally updated.
type VerificationResult struct {
	NGOID             int32                         `json:"ngo_id"`
	VerificationLevel VerificationLevel             `json:"verification_level"`
	VerifiedDate      time.Time                     `json:"verified_date"`
	ExpiryDate        time.Time                     `json:"expiry_date"`
	NextReviewDate    time.Time                     `json:"next_review_date"`
	Documents         map[DocumentType]*NGODocument `json:"documents"`
	ComplianceScore   int                           `json:"compliance_score"`
	FraudRiskScore    int                           `json:"fraud_risk_score"`
	Badges            []VerificationBadge           `json:"badges"`
}

type ActivityEventType string

const (
	ActivityDonationReceived ActivityEventType = "donation_received"
	ActivityProjectUpdate    ActivityEventType = "project_update"
	ActivityFundsSpent       ActivityEventType = "funds_spent"
)

// ActivityEvent is one dated event in an NGO's recent activity feed,
// consumed by the fraud-alert scan.
type ActivityEvent struct {
	NGOID  int32             `json:"ngo_id"`
	Type   ActivityEventType `json:"type"`
	Amount int64             `json:"amount"`
	Date   time.Time         `json:"date"`
}

type AlertSeverity string

const (
	AlertSeverityHigh     AlertSeverity = "HIGH"
	AlertSeverityCritical AlertSeverity = "CRITICAL"
)

type FraudAlert struct {
	NGOID    int32         `json:"ngo_id"`
	Type     string        `json:"type"`
	Severity AlertSeverity `json:"severity"`
	Message  string        `json:"message"`
	Date     time.Time     `json:"date"`
}
