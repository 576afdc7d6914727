package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/obs"
	"daanbridge-backend/internal/service"
)

// DonationHandler serves donation orders, the payment gateway callback and
// donation history.
type DonationHandler struct {
	donationService service.DonationService
}

func NewDonationHandler(donationService service.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

type createOrderRequest struct {
	ProjectID int32  `json:"project_id"`
	Amount    int64  `json:"amount"`
	Message   string `json:"message"`
}

func (h *DonationHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req createOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	donation, err := h.donationService.CreateOrder(r.Context(), claims.UserID, req.ProjectID, req.Amount, req.Message)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, donation)
}

type paymentCallbackRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

type paymentCallbackResponse struct {
	Donation  *domain.Donation `json:"donation"`
	NewBadges []domain.Badge   `json:"new_badges"`
}

// PaymentCallback is the gateway webhook. It is unauthenticated; the HMAC
// signature is the proof of origin.
func (h *DonationHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	var req paymentCallbackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.OrderID == "" || req.PaymentID == "" {
		writeError(w, http.StatusBadRequest, "order_id and payment_id are required")
		return
	}

	donation, newBadges, err := h.donationService.CompletePayment(r.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPaymentSignature) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	obs.CountDonationCompleted()
	for _, badge := range newBadges {
		obs.CountBadgeAwarded(badge.ID)
	}

	if newBadges == nil {
		newBadges = []domain.Badge{}
	}
	writeJSON(w, http.StatusOK, paymentCallbackResponse{Donation: donation, NewBadges: newBadges})
}

type donationListResponse struct {
	Donations []domain.Donation `json:"donations"`
	Total     int32             `json:"total"`
}

func (h *DonationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	page, pageSize := pagination(r)

	donations, total, err := h.donationService.ListDonations(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list donations")
		return
	}
	writeJSON(w, http.StatusOK, donationListResponse{Donations: donations, Total: total})
}

func (h *DonationHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	donationID, ok := pathInt32(mux.Vars(r), "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid donation id")
		return
	}

	donation, err := h.donationService.GetDonation(r.Context(), claims.UserID, donationID)
	if err != nil {
		writeError(w, http.StatusNotFound, "donation not found")
		return
	}
	writeJSON(w, http.StatusOK, donation)
}
