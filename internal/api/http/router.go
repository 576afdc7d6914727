package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"daanbridge-backend/internal/config"
	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/obs"
	"daanbridge-backend/internal/security"
	"daanbridge-backend/internal/service"
)

// Services bundles everything the router needs to stand up the API.
type Services struct {
	Auth         service.AuthService
	User         service.UserService
	NGO          service.NGOService
	Project      service.ProjectService
	Donation     service.DonationService
	Leaderboard  service.LeaderboardService
	Certificate  service.CertificateService
	Notification service.NotificationService
	Audit        service.AuditService
	Badge        *service.BadgeService
	TokenManager security.TokenManager
}

// NewRouter builds the full API route table under /api/v1.
func NewRouter(cfg *config.Config, svcs Services) http.Handler {
	authHandler := NewAuthHandler(svcs.Auth)
	userHandler := NewUserHandler(svcs.User, svcs.Badge)
	ngoHandler := NewNGOHandler(svcs.NGO, svcs.Project)
	projectHandler := NewProjectHandler(svcs.Project)
	donationHandler := NewDonationHandler(svcs.Donation)
	leaderboardHandler := NewLeaderboardHandler(svcs.Leaderboard)
	certificateHandler := NewCertificateHandler(svcs.Certificate)
	notificationHandler := NewNotificationHandler(svcs.Notification)
	auditHandler := NewAuditHandler(svcs.Audit)

	router := mux.NewRouter()
	router.Use(RequestLogger)
	router.Use(obs.Instrument)
	router.Use(RateLimitMiddleware(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

	router.Handle("/metrics", obs.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/payments/callback", donationHandler.PaymentCallback).Methods(http.MethodPost)
	api.HandleFunc("/ngos", ngoHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/ngos/{id}", ngoHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/projects", projectHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", projectHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)

	// Authenticated routes
	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(svcs.TokenManager))

	protected.HandleFunc("/users/me", userHandler.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/users/me", userHandler.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/users/me/badges", userHandler.GetBadges).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/badges/{badgeId}/share", userHandler.ShareBadge).Methods(http.MethodPost)

	protected.HandleFunc("/ngos", RequireRole(domain.UserRoleNGO, ngoHandler.Register)).Methods(http.MethodPost)
	protected.HandleFunc("/ngos/{id}", RequireRole(domain.UserRoleNGO, ngoHandler.Update)).Methods(http.MethodPut)
	protected.HandleFunc("/ngos/{id}/documents", RequireRole(domain.UserRoleNGO, ngoHandler.SubmitDocument)).Methods(http.MethodPost)
	protected.HandleFunc("/ngos/{id}/compliance", RequireRole(domain.UserRoleNGO, ngoHandler.UpdateCompliance)).Methods(http.MethodPut)
	protected.HandleFunc("/ngos/{id}/verify", RequireRole(domain.UserRoleAdmin, ngoHandler.Verify)).Methods(http.MethodPost)
	protected.HandleFunc("/ngos/{id}/fraud-alerts", RequireRole(domain.UserRoleAdmin, ngoHandler.FraudAlerts)).Methods(http.MethodGet)
	protected.HandleFunc("/audit/trail", RequireRole(domain.UserRoleAdmin, auditHandler.Trail)).Methods(http.MethodGet)

	protected.HandleFunc("/projects", RequireRole(domain.UserRoleNGO, projectHandler.Create)).Methods(http.MethodPost)
	protected.HandleFunc("/projects/{id}", RequireRole(domain.UserRoleNGO, projectHandler.Update)).Methods(http.MethodPut)
	protected.HandleFunc("/projects/{id}/updates", RequireRole(domain.UserRoleNGO, projectHandler.PostUpdate)).Methods(http.MethodPost)

	protected.HandleFunc("/donations/orders", donationHandler.CreateOrder).Methods(http.MethodPost)
	protected.HandleFunc("/donations", donationHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/donations/{id}", donationHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/donations/{id}/certificate", certificateHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/donations/{id}/certificate/email", certificateHandler.Email).Methods(http.MethodPost)

	protected.HandleFunc("/leaderboard/rank", leaderboardHandler.GetRank).Methods(http.MethodGet)
	protected.HandleFunc("/leaderboard/eligibility", leaderboardHandler.GetEligibility).Methods(http.MethodGet)

	protected.HandleFunc("/notifications", notificationHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id}/read", notificationHandler.MarkRead).Methods(http.MethodPost)

	return router
}
