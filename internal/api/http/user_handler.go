package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/service"
)

// UserHandler serves the donor profile and badge endpoints.
type UserHandler struct {
	userService  service.UserService
	badgeService *service.BadgeService
}

func NewUserHandler(userService service.UserService, badgeService *service.BadgeService) *UserHandler {
	return &UserHandler{userService: userService, badgeService: badgeService}
}

type profileResponse struct {
	User   *domain.User       `json:"user"`
	Stats  *domain.DonorStats `json:"stats"`
	Badges []domain.Badge     `json:"badges"`
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	user, stats, err := h.userService.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		User:   user,
		Stats:  stats,
		Badges: h.badgeService.AllBadges(stats.DonationCount, stats.TotalAmount),
	})
}

type updateProfileRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	IsAnonymous bool   `json:"is_anonymous"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.userService.UpdateProfile(r.Context(), claims.UserID, req.Name, req.Email, req.Phone, req.IsAnonymous); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type badgesResponse struct {
	Badges   []domain.Badge        `json:"badges"`
	Highest  *domain.Badge         `json:"highest,omitempty"`
	Progress *domain.BadgeProgress `json:"progress,omitempty"`
}

// GetBadges returns all earned badges plus progress toward the next badge
// of the requested kind (count by default).
func (h *UserHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	stats, err := h.userService.GetDonorStats(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load donor stats")
		return
	}

	kind := domain.BadgeKind(r.URL.Query().Get("kind"))
	if kind != domain.BadgeKindAmount {
		kind = domain.BadgeKindCount
	}
	progress := h.badgeService.NextBadgeProgress(kind, stats.DonationCount, stats.TotalAmount)

	writeJSON(w, http.StatusOK, badgesResponse{
		Badges:   h.badgeService.AllBadges(stats.DonationCount, stats.TotalAmount),
		Highest:  h.badgeService.HighestBadge(stats.DonationCount, stats.TotalAmount),
		Progress: &progress,
	})
}

// ShareBadge produces a social sharing caption for an earned badge.
func (h *UserHandler) ShareBadge(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	badge := h.badgeService.CatalogBadge(mux.Vars(r)["badgeId"])
	if badge == nil {
		writeError(w, http.StatusNotFound, "unknown badge")
		return
	}

	user, stats, err := h.userService.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	earned := false
	for _, b := range h.badgeService.AllBadges(stats.DonationCount, stats.TotalAmount) {
		if b.ID == badge.ID {
			earned = true
			break
		}
	}
	if !earned {
		writeError(w, http.StatusForbidden, "badge not yet earned")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"text": h.badgeService.SocialText(user.Name, *badge, *stats),
	})
}
