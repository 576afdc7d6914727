package domain

type NotificationType string

const (
	NotificationDonationConfirmed  NotificationType = "DONATION_CONFIRMED"
	NotificationBadgeEarned        NotificationType = "BADGE_EARNED"
	NotificationCertificateReady   NotificationType = "CERTIFICATE_READY"
	NotificationVerificationStatus NotificationType = "VERIFICATION_STATUS"
	NotificationProjectUpdate      NotificationType = "PROJECT_UPDATE"
)

type Notification struct {
	ID        int32            `json:"id"`
	UserID    int32            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	CreatedOn string           `json:"created_on"`
}
