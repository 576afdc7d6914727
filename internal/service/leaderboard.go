package service

import (
	"context"
	"fmt"
	"time"

	"daanbridge-backend/internal/cache"
	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/logger"
	"daanbridge-backend/internal/repository"
)

const anonymousDisplayName = "Anonymous Donor"

// Eligibility thresholds, whole rupees
const (
	topBoardMinAmount    = 1000
	activeBoardMinCount  = 2
	impactBoardMinAmount = 5000
	goalDonationCount    = 5
	goalTotalAmount      = 10000
)

// RankEntries decorates an already-sorted slice with dense 1-based ranks
// and display-safe names, truncated to limit. The input order is the
// ranking contract: entries are never re-sorted here, and ties keep their
// original collection order.
func RankEntries(entries []domain.LeaderboardEntry, limit int) []domain.RankedEntry {
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	ranked := make([]domain.RankedEntry, 0, len(entries))
	for i, entry := range entries {
		displayName := entry.Name
		if entry.IsAnonymous {
			displayName = anonymousDisplayName
		}
		ranked = append(ranked, domain.RankedEntry{
			LeaderboardEntry: entry,
			Rank:             int32(i + 1),
			DisplayName:      displayName,
		})
	}
	return ranked
}

// DonorRank finds the donor's 1-based position in the full ranked list.
// Returns 0 when the donor is absent.
func DonorRank(entries []domain.LeaderboardEntry, donorID int32) int32 {
	for i, entry := range entries {
		if entry.DonorID == donorID {
			return int32(i + 1)
		}
	}
	return 0
}

// ProjectPeriod derives a period view from the month list. Week truncates
// to the top 3; year scales amounts ×8 and counts ×6. Both are synthetic
// projections of the monthly aggregate, not re-aggregations over dated
// records.
func ProjectPeriod(monthEntries []domain.LeaderboardEntry, period domain.LeaderboardPeriod) []domain.LeaderboardEntry {
	switch period {
	case domain.PeriodWeek:
		if len(monthEntries) > 3 {
			return monthEntries[:3]
		}
		return monthEntries
	case domain.PeriodYear:
		projected := make([]domain.LeaderboardEntry, len(monthEntries))
		for i, entry := range monthEntries {
			entry.TotalAmount *= 8
			entry.DonationCount *= 6
			projected[i] = entry
		}
		return projected
	default:
		return monthEntries
	}
}

// CheckEligibility applies the fixed threshold gates to a donor's stats.
func CheckEligibility(stats domain.DonorStats) domain.LeaderboardEligibility {
	return domain.LeaderboardEligibility{
		QualifiesForTop:    stats.TotalAmount >= topBoardMinAmount,
		QualifiesForActive: stats.DonationCount >= activeBoardMinCount,
		QualifiesForImpact: stats.TotalAmount >= impactBoardMinAmount,
		SuggestedGoal:      SuggestedGoal(stats),
	}
}

// SuggestedGoal proposes the donor's next milestone. The donation-count gap
// always takes priority over the amount gap.
func SuggestedGoal(stats domain.DonorStats) string {
	if stats.DonationCount < goalDonationCount {
		remaining := goalDonationCount - stats.DonationCount
		return fmt.Sprintf("Make %d more donations to reach %d total donations", remaining, goalDonationCount)
	}
	if stats.TotalAmount < goalTotalAmount {
		remaining := goalTotalAmount - stats.TotalAmount
		return fmt.Sprintf("Donate ₹%d more to reach ₹%d in total giving", remaining, goalTotalAmount)
	}
	return "Keep up the amazing work! You're an inspiration to other donors."
}

type leaderboardService struct {
	donationRepo repository.DonationRepository
	badges       *BadgeService
	cache        *cache.LeaderboardCache
}

func NewLeaderboardService(donationRepo repository.DonationRepository, badges *BadgeService, leaderboardCache *cache.LeaderboardCache) LeaderboardService {
	return &leaderboardService{
		donationRepo: donationRepo,
		badges:       badges,
		cache:        leaderboardCache,
	}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, category domain.LeaderboardCategory, period domain.LeaderboardPeriod, limit int) ([]domain.RankedEntry, error) {
	entries, err := s.loadEntries(ctx, category)
	if err != nil {
		return nil, err
	}
	return RankEntries(ProjectPeriod(entries, period), limit), nil
}

func (s *leaderboardService) GetDonorRank(ctx context.Context, donorID int32, category domain.LeaderboardCategory) (int32, error) {
	entries, err := s.loadEntries(ctx, category)
	if err != nil {
		return 0, err
	}
	return DonorRank(entries, donorID), nil
}

func (s *leaderboardService) CheckEligibility(ctx context.Context, donorID int32) (*domain.LeaderboardEligibility, error) {
	stats, err := s.donationRepo.GetDonorStats(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load donor stats: %w", err)
	}
	eligibility := CheckEligibility(*stats)
	return &eligibility, nil
}

// RefreshCache recomputes every category's month aggregate and rewrites the
// cache. Invoked by the nightly scheduler job.
func (s *leaderboardService) RefreshCache(ctx context.Context) error {
	for _, category := range []domain.LeaderboardCategory{domain.LeaderboardByAmount, domain.LeaderboardByCount, domain.LeaderboardByAverage} {
		entries, err := s.queryEntries(ctx, category)
		if err != nil {
			return fmt.Errorf("failed to refresh %s leaderboard: %w", category, err)
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, string(category), entries); err != nil {
				logger.Warn("Failed to cache leaderboard", "category", category, "error", err)
			}
		}
	}
	return nil
}

// loadEntries serves from the redis cache when possible and falls through
// to Postgres on a miss.
func (s *leaderboardService) loadEntries(ctx context.Context, category domain.LeaderboardCategory) ([]domain.LeaderboardEntry, error) {
	if s.cache != nil {
		if entries, ok := s.cache.Get(ctx, string(category)); ok {
			return entries, nil
		}
	}

	entries, err := s.queryEntries(ctx, category)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, string(category), entries); err != nil {
			logger.Warn("Failed to cache leaderboard", "category", category, "error", err)
		}
	}
	return entries, nil
}

func (s *leaderboardService) queryEntries(ctx context.Context, category domain.LeaderboardCategory) ([]domain.LeaderboardEntry, error) {
	since := time.Now().AddDate(0, -1, 0) // month window
	entries, err := s.donationRepo.Leaderboard(ctx, category, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	// Annotate each entry with the donor's earned badge ids
	for i := range entries {
		for _, badge := range s.badges.AllBadges(entries[i].DonationCount, entries[i].TotalAmount) {
			entries[i].BadgeIDs = append(entries[i].BadgeIDs, badge.ID)
		}
	}
	return entries, nil
}
