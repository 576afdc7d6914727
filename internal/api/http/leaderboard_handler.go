package http

import (
	"net/http"

	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/service"
)

// LeaderboardHandler serves the public leaderboards and donor rank lookups.
type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

func parseCategory(raw string) domain.LeaderboardCategory {
	switch domain.LeaderboardCategory(raw) {
	case domain.LeaderboardByCount:
		return domain.LeaderboardByCount
	case domain.LeaderboardByAverage:
		return domain.LeaderboardByAverage
	default:
		return domain.LeaderboardByAmount
	}
}

func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	category := parseCategory(r.URL.Query().Get("category"))
	period := domain.LeaderboardPeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = domain.PeriodMonth
	}
	limit := int(queryInt32(r, "limit", 10))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	entries, err := h.leaderboardService.GetLeaderboard(r.Context(), category, period, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	if entries == nil {
		entries = []domain.RankedEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"period":   period,
		"entries":  entries,
	})
}

// GetRank returns the caller's 1-based rank, 0 when they are off the board.
func (h *LeaderboardHandler) GetRank(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	category := parseCategory(r.URL.Query().Get("category"))

	rank, err := h.leaderboardService.GetDonorRank(r.Context(), claims.UserID, category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute rank")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": category, "rank": rank})
}

func (h *LeaderboardHandler) GetEligibility(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	eligibility, err := h.leaderboardService.CheckEligibility(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check eligibility")
		return
	}
	writeJSON(w, http.StatusOK, eligibility)
}
