package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"daanbridge-backend/internal/domain"
)

func sampleEntries() []domain.LeaderboardEntry {
	return []domain.LeaderboardEntry{
		{DonorID: 1, Name: "Asha", TotalAmount: 12000, DonationCount: 8},
		{DonorID: 2, Name: "Ravi", TotalAmount: 9000, DonationCount: 4, IsAnonymous: true},
		{DonorID: 3, Name: "Meena", TotalAmount: 7500, DonationCount: 12},
		{DonorID: 4, Name: "Karan", TotalAmount: 5000, DonationCount: 2},
		{DonorID: 5, Name: "Divya", TotalAmount: 2000, DonationCount: 6},
	}
}

func TestRankEntries(t *testing.T) {
	t.Run("Assigns dense 1-based ranks in input order", func(t *testing.T) {
		ranked := RankEntries(sampleEntries(), 10)
		assert.Len(t, ranked, 5)
		for i, entry := range ranked {
			assert.Equal(t, int32(i+1), entry.Rank)
		}
		assert.Equal(t, int32(1), ranked[0].DonorID)
	})

	t.Run("Truncates to limit", func(t *testing.T) {
		ranked := RankEntries(sampleEntries(), 3)
		assert.Len(t, ranked, 3)
		assert.Equal(t, int32(3), ranked[2].Rank)
	})

	t.Run("Anonymous entries masked", func(t *testing.T) {
		ranked := RankEntries(sampleEntries(), 10)
		assert.Equal(t, "Anonymous Donor", ranked[1].DisplayName)
		assert.Equal(t, "Asha", ranked[0].DisplayName)
	})

	t.Run("Empty input yields empty leaderboard", func(t *testing.T) {
		assert.Empty(t, RankEntries(nil, 10))
	})

	t.Run("Zero limit keeps everything", func(t *testing.T) {
		assert.Len(t, RankEntries(sampleEntries(), 0), 5)
	})
}

func TestDonorRank(t *testing.T) {
	t.Run("Finds 1-based position", func(t *testing.T) {
		assert.Equal(t, int32(3), DonorRank(sampleEntries(), 3))
	})

	t.Run("Absent donor returns 0", func(t *testing.T) {
		assert.Equal(t, int32(0), DonorRank(sampleEntries(), 99))
	})

	t.Run("Empty list returns 0", func(t *testing.T) {
		assert.Equal(t, int32(0), DonorRank(nil, 1))
	})
}

func TestProjectPeriod(t *testing.T) {
	t.Run("Week truncates to top 3", func(t *testing.T) {
		projected := ProjectPeriod(sampleEntries(), domain.PeriodWeek)
		assert.Len(t, projected, 3)
		assert.Equal(t, int64(12000), projected[0].TotalAmount) // unmodified
	})

	t.Run("Year scales amount x8 and count x6", func(t *testing.T) {
		projected := ProjectPeriod(sampleEntries(), domain.PeriodYear)
		assert.Equal(t, int64(96000), projected[0].TotalAmount)
		assert.Equal(t, int32(48), projected[0].DonationCount)
	})

	t.Run("Year projection does not mutate the input", func(t *testing.T) {
		entries := sampleEntries()
		ProjectPeriod(entries, domain.PeriodYear)
		assert.Equal(t, int64(12000), entries[0].TotalAmount)
	})

	t.Run("Month and unknown periods pass through", func(t *testing.T) {
		assert.Len(t, ProjectPeriod(sampleEntries(), domain.PeriodMonth), 5)
		assert.Len(t, ProjectPeriod(sampleEntries(), domain.LeaderboardPeriod("quarter")), 5)
	})
}

func TestCheckEligibility(t *testing.T) {
	tests := []struct {
		name   string
		stats  domain.DonorStats
		top    bool
		active bool
		impact bool
	}{
		{"Fresh donor", domain.DonorStats{}, false, false, false},
		{"Active only", domain.DonorStats{DonationCount: 3, TotalAmount: 500}, false, true, false},
		{"Top but not impact", domain.DonorStats{DonationCount: 1, TotalAmount: 1000}, true, false, false},
		{"All boards", domain.DonorStats{DonationCount: 10, TotalAmount: 8000}, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligibility := CheckEligibility(tt.stats)
			assert.Equal(t, tt.top, eligibility.QualifiesForTop)
			assert.Equal(t, tt.active, eligibility.QualifiesForActive)
			assert.Equal(t, tt.impact, eligibility.QualifiesForImpact)
			assert.NotEmpty(t, eligibility.SuggestedGoal)
		})
	}
}

func TestSuggestedGoal(t *testing.T) {
	t.Run("Count gap takes priority", func(t *testing.T) {
		goal := SuggestedGoal(domain.DonorStats{DonationCount: 3, TotalAmount: 500})
		assert.Contains(t, goal, "2 more donations")
	})

	t.Run("Amount gap once count goal met", func(t *testing.T) {
		goal := SuggestedGoal(domain.DonorStats{DonationCount: 7, TotalAmount: 4000})
		assert.Contains(t, goal, "₹6000")
	})

	t.Run("Generic message past both goals", func(t *testing.T) {
		goal := SuggestedGoal(domain.DonorStats{DonationCount: 10, TotalAmount: 20000})
		assert.NotContains(t, goal, "₹")
		assert.Contains(t, goal, "Keep up")
	})
}
