package domain

type UserRole string

const (
	UserRoleDonor UserRole = "DONOR"
	UserRoleNGO   UserRole = "NGO"
	UserRoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID           int32    `json:"id"`
	Email        string   `json:"email"`
	PhoneNumber  string   `json:"phone_number"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	IsAnonymous  bool     `json:"is_anonymous"` // hide name on public leaderboards
	CreatedOn    string   `json:"created_on"`
	UpdatedOn    string   `json:"updated_on"`
}

// DonorStats is the aggregate donation history for one donor. It is derived
// from the donations table per request and never persisted.
type DonorStats struct {
	DonationCount int32 `json:"donation_count"`
	TotalAmount   int64 `json:"total_amount"` // whole rupees
	ProjectCount  int32 `json:"project_count"`
}
