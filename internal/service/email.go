package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plainText string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func (s *emailService) SendDonationConfirmation(ctx context.Context, email, donorName, projectTitle string, amount int64, receiptNumber string) error {
	subject := "Thank you for your donation!"
	body := fmt.Sprintf(`Dear %s,

Thank you for your generous donation of ₹%d to "%s".

Your receipt number is %s. You can download your tax certificate from your dashboard once the NGO's 80G status is confirmed.

With gratitude,
The DaanBridge Team`, donorName, amount, projectTitle, receiptNumber)

	return s.send(ctx, email, donorName, subject, body)
}

func (s *emailService) SendBadgeEarned(ctx context.Context, email, donorName, badgeName, badgeIcon string) error {
	subject := fmt.Sprintf("You earned a new badge: %s %s", badgeName, badgeIcon)
	body := fmt.Sprintf(`Dear %s,

Congratulations! Your latest donation unlocked the %s badge %s.

Visit your profile to see all your achievements and share them with friends.

Keep giving,
The DaanBridge Team`, donorName, badgeName, badgeIcon)

	return s.send(ctx, email, donorName, subject, body)
}

func (s *emailService) SendTaxCertificate(ctx context.Context, email, donorName string, certificate *domain.TaxCertificate) error {
	subject := fmt.Sprintf("Your donation certificate %s", certificate.CertificateNumber)
	body := fmt.Sprintf(`Dear %s,

Please find the details of your donation certificate below.

Certificate Number: %s
NGO: %s (Reg. %s)
Project: %s
Amount: ₹%d (%s)
Donation Date: %s
Financial Year: %s
Receipt Number: %s

This certificate is valid for tax deduction under Section 80G: %v

Best regards,
The DaanBridge Team`,
		donorName, certificate.CertificateNumber, certificate.NGOName, certificate.NGORegistration,
		certificate.ProjectTitle, certificate.Amount, certificate.AmountInWords,
		certificate.DonationDate, certificate.FinancialYear, certificate.ReceiptNumber, certificate.TaxEligible)

	return s.send(ctx, email, donorName, subject, body)
}

func (s *emailService) SendVerificationStatus(ctx context.Context, email, ngoName string, level domain.VerificationLevel, complianceScore int) error {
	subject := fmt.Sprintf("Verification update for %s", ngoName)
	body := fmt.Sprintf(`Hello,

The verification review for %s is complete.

Verification Level: %s
Compliance Score: %d/100

Log in to your NGO dashboard for the full breakdown and any missing documents.

Best regards,
The DaanBridge Team`, ngoName, level, complianceScore)

	return s.send(ctx, email, ngoName, subject, body)
}

func (s *emailService) SendReviewReminder(ctx context.Context, email, ngoName string, reviewDate time.Time) error {
	subject := "Your verification review is due soon"
	body := fmt.Sprintf(`Hello,

The periodic verification review for %s is scheduled for %s.

Please make sure your documents and compliance details are up to date before that date to keep your verification level.

Best regards,
The DaanBridge Team`, ngoName, reviewDate.Format("2006-01-02"))

	return s.send(ctx, email, ngoName, subject, body)
}

func (s *emailService) SendFraudAlert(ctx context.Context, adminEmail string, alert *domain.FraudAlert) error {
	subject := fmt.Sprintf("[%s] Fraud alert for NGO %d: %s", alert.Severity, alert.NGOID, alert.Type)
	body := fmt.Sprintf(`Fraud alert raised on %s.

NGO ID: %d
Type: %s
Severity: %s
Details: %s

Please review the NGO's recent activity.`, alert.Date.Format("2006-01-02"), alert.NGOID, alert.Type, alert.Severity, alert.Message)

	return s.send(ctx, adminEmail, "Admin", subject, body)
}
