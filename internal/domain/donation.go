package domain

import "time"

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "PENDING"
	DonationStatusCompleted DonationStatus = "COMPLETED"
	DonationStatusFailed    DonationStatus = "FAILED"
)

type Donation struct {
	ID            int32          `json:"id"`
	DonorID       int32          `json:"donor_id"`
	NGOID         int32          `json:"ngo_id"`
	ProjectID     int32          `json:"project_id"`
	Amount        int64          `json:"amount"` // whole rupees
	Status        DonationStatus `json:"status"`
	OrderID       string         `json:"order_id"`
	PaymentID     string         `json:"payment_id,omitempty"`
	ReceiptNumber string         `json:"receipt_number,omitempty"`
	Message       string         `json:"message,omitempty"`
	DonatedOn     time.Time      `json:"donated_on"`
	CreatedOn     time.Time      `json:"created_on"`
}
