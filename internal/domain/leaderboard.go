package domain

// LeaderboardCategory selects which pre-sorted aggregate collection to rank.
type LeaderboardCategory string

const (
	LeaderboardByAmount  LeaderboardCategory = "amount"
	LeaderboardByCount   LeaderboardCategory = "count"
	LeaderboardByAverage LeaderboardCategory = "average"
)

type LeaderboardPeriod string

const (
	PeriodWeek  LeaderboardPeriod = "week"
	PeriodMonth LeaderboardPeriod = "month"
	PeriodYear  LeaderboardPeriod = "year"
)

// LeaderboardEntry is one donor's aggregate row as delivered by the data
// source, already sorted by the category's metric.
type LeaderboardEntry struct {
	DonorID           int32    `json:"donor_id"`
	Name              string   `json:"name"`
	TotalAmount       int64    `json:"total_amount"`
	DonationCount     int32    `json:"donation_count"`
	ProjectsSupported int32    `json:"projects_supported,omitempty"`
	AvgDonation       int64    `json:"avg_donation,omitempty"`
	IsAnonymous       bool     `json:"is_anonymous"`
	BadgeIDs          []string `json:"badge_ids,omitempty"`
}

// RankedEntry decorates a LeaderboardEntry with its dense 1-based rank and
// a display-safe name.
type RankedEntry struct {
	LeaderboardEntry
	Rank        int32  `json:"rank"`
	DisplayName string `json:"display_name"`
}

// LeaderboardEligibility reports which boards a donor's stats qualify for.
type LeaderboardEligibility struct {
	QualifiesForTop    bool   `json:"qualifies_for_top"`
	QualifiesForActive bool   `json:"qualifies_for_active"`
	QualifiesForImpact bool   `json:"qualifies_for_impact"`
	SuggestedGoal      string `json:"suggested_goal"`
}
