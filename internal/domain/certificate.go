package domain

// TaxCertificate is the assembled 80G donation certificate handed to the
// presentation layer. All fields are display-ready strings except amounts.
type TaxCertificate struct {
	CertificateNumber string `json:"certificate_number"`
	DonorName         string `json:"donor_name"`
	DonorPAN          string `json:"donor_pan,omitempty"`
	NGOName           string `json:"ngo_name"`
	NGORegistration   string `json:"ngo_registration"`
	ProjectTitle      string `json:"project_title"`
	Amount            int64  `json:"amount"`
	AmountInWords     string `json:"amount_in_words"`
	DonationDate      string `json:"donation_date"` // yyyy-mm-dd
	ReceiptNumber     string `json:"receipt_number"`
	TaxEligible       bool   `json:"tax_eligible"` // NGO holds a verified 80G certificate
	FinancialYear     string `json:"financial_year"`
}
