package service

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"daanbridge-backend/internal/domain"
)

// countBadgeCatalog holds the count-based achievement tiers, measured
// against a donor's completed donation count.
var countBadgeCatalog = []domain.Badge{
	{ID: "first_step", Name: "First Step", Description: "Made your first donation", Icon: "🌱", Color: "#8BC34A", Requirement: 1, Kind: domain.BadgeKindCount},
	{ID: "regular_giver", Name: "Regular Giver", Description: "Completed 5 donations", Icon: "🤝", Color: "#03A9F4", Requirement: 5, Kind: domain.BadgeKindCount},
	{ID: "dedicated_donor", Name: "Dedicated Donor", Description: "Completed 10 donations", Icon: "⭐", Color: "#FF9800", Requirement: 10, Kind: domain.BadgeKindCount},
	{ID: "champion_of_change", Name: "Champion of Change", Description: "Completed 25 donations", Icon: "🏆", Color: "#9C27B0", Requirement: 25, Kind: domain.BadgeKindCount},
}

// amountBadgeCatalog holds the amount-based tiers, measured against a
// donor's cumulative donated rupees.
var amountBadgeCatalog = []domain.Badge{
	{ID: "bronze_donor", Name: "Bronze Donor", Description: "Donated ₹1,000 in total", Icon: "🥉", Color: "#CD7F32", Requirement: 1000, Kind: domain.BadgeKindAmount},
	{ID: "silver_donor", Name: "Silver Donor", Description: "Donated ₹5,000 in total", Icon: "🥈", Color: "#C0C0C0", Requirement: 5000, Kind: domain.BadgeKindAmount},
	{ID: "gold_donor", Name: "Gold Donor", Description: "Donated ₹10,000 in total", Icon: "🥇", Color: "#FFD700", Requirement: 10000, Kind: domain.BadgeKindAmount},
	{ID: "platinum_donor", Name: "Platinum Donor", Description: "Donated ₹50,000 in total", Icon: "💎", Color: "#E5E4E2", Requirement: 50000, Kind: domain.BadgeKindAmount},
}

var socialTextTemplates = []string{
	"I just earned the %s badge %s on DaanBridge! %d donations and ₹%d given so far. Join me in making a difference!",
	"Proud moment: unlocked %s %s after giving ₹%d across %d donations on DaanBridge!",
	"New badge alert! %s %s is mine. Every donation counts, ₹%d and counting on DaanBridge.",
}

// BadgeService computes earned achievement badges from a donor's aggregate
// stats. It keeps no donation history; callers supply before/after
// snapshots to detect badges crossed by a single donation. Safe for
// concurrent use.
type BadgeService struct {
	mu  sync.Mutex // rand.Rand is not goroutine-safe
	rng *rand.Rand
}

// NewBadgeService creates a badge service. The random source drives social
// text template selection only; inject a seeded source for reproducible
// tests.
func NewBadgeService(rng *rand.Rand) *BadgeService {
	return &BadgeService{rng: rng}
}

// CalculateCountBadges returns every count-based badge whose requirement is
// met, highest tier first.
func (s *BadgeService) CalculateCountBadges(donationCount int32) []domain.Badge {
	return earnedBadges(countBadgeCatalog, int64(donationCount))
}

// CalculateAmountBadges returns every amount-based badge whose requirement
// is met, highest tier first.
func (s *BadgeService) CalculateAmountBadges(totalAmount int64) []domain.Badge {
	return earnedBadges(amountBadgeCatalog, totalAmount)
}

// AllBadges concatenates count-based badges (first) and amount-based
// badges, each group sorted descending by requirement.
func (s *BadgeService) AllBadges(donationCount int32, totalAmount int64) []domain.Badge {
	return append(s.CalculateCountBadges(donationCount), s.CalculateAmountBadges(totalAmount)...)
}

// HighestBadge returns the first badge of AllBadges: the largest-requirement
// count badge if any, else the largest-requirement amount badge, else nil.
func (s *BadgeService) HighestBadge(donationCount int32, totalAmount int64) *domain.Badge {
	all := s.AllBadges(donationCount, totalAmount)
	if len(all) == 0 {
		return nil
	}
	return &all[0]
}

// CheckNewBadges returns the badges earned by the new snapshot but not the
// previous one, by badge id. A donor never loses a badge, so this is the
// set of badges crossed by the donation event between the two snapshots.
func (s *BadgeService) CheckNewBadges(prevCount, newCount int32, prevAmount, newAmount int64) []domain.Badge {
	previous := make(map[string]bool)
	for _, badge := range s.AllBadges(prevCount, prevAmount) {
		previous[badge.ID] = true
	}

	var earned []domain.Badge
	for _, badge := range s.AllBadges(newCount, newAmount) {
		if !previous[badge.ID] {
			earned = append(earned, badge)
		}
	}
	return earned
}

// NextBadgeProgress reports the nearest unearned badge for the given kind
// and how far along the donor is toward it. Percent is 100 when every tier
// is already earned.
func (s *BadgeService) NextBadgeProgress(kind domain.BadgeKind, donationCount int32, totalAmount int64) domain.BadgeProgress {
	catalog := countBadgeCatalog
	current := int64(donationCount)
	if kind == domain.BadgeKindAmount {
		catalog = amountBadgeCatalog
		current = totalAmount
	}

	for _, badge := range catalog {
		if current < badge.Requirement {
			b := badge
			return domain.BadgeProgress{
				NextBadge: &b,
				Current:   current,
				Remaining: badge.Requirement - current,
				Percent:   float64(current) / float64(badge.Requirement) * 100,
			}
		}
	}
	return domain.BadgeProgress{Current: current, Percent: 100}
}

// SocialText picks one of the fixed share messages for an earned badge.
// Output is one-of-N, not deterministic, unless the service was built with
// a seeded random source.
func (s *BadgeService) SocialText(donorName string, badge domain.Badge, stats domain.DonorStats) string {
	s.mu.Lock()
	pick := s.rng.Intn(len(socialTextTemplates))
	s.mu.Unlock()

	switch pick {
	case 0:
		return fmt.Sprintf(socialTextTemplates[0], badge.Name, badge.Icon, stats.DonationCount, stats.TotalAmount)
	case 1:
		return fmt.Sprintf(socialTextTemplates[1], badge.Name, badge.Icon, stats.TotalAmount, stats.DonationCount)
	default:
		return fmt.Sprintf(socialTextTemplates[2], badge.Name, badge.Icon, stats.TotalAmount)
	}
}

// CatalogBadge looks a badge up by id across both catalogs.
func (s *BadgeService) CatalogBadge(id string) *domain.Badge {
	for _, badge := range append(append([]domain.Badge{}, countBadgeCatalog...), amountBadgeCatalog...) {
		if badge.ID == id {
			b := badge
			return &b
		}
	}
	return nil
}

func earnedBadges(catalog []domain.Badge, statValue int64) []domain.Badge {
	var earned []domain.Badge
	for _, badge := range catalog {
		if statValue >= badge.Requirement {
			earned = append(earned, badge)
		}
	}
	sort.SliceStable(earned, func(i, j int) bool {
		return earned[i].Requirement > earned[j].Requirement
	})
	return earned
}
