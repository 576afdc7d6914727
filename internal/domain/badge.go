package domain

type BadgeKind string

const (
	BadgeKindCount  BadgeKind = "COUNT"
	BadgeKindAmount BadgeKind = "AMOUNT"
)

// Badge is a static catalog entry. The catalog is fixed at process start;
// requirements are measured against DonorStats.DonationCount for count-based
// badges and DonorStats.TotalAmount for amount-based badges.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Requirement int64     `json:"requirement"`
	Kind        BadgeKind `json:"kind"`
}

// BadgeProgress describes how far a donor is from the next unearned badge.
type BadgeProgress struct {
	NextBadge *Badge  `json:"next_badge,omitempty"`
	Current   int64   `json:"current"`
	Remaining int64   `json:"remaining"`
	Percent   float64 `json:"percent"`
}
