package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"daanbridge-backend/internal/service"
)

// CertificateHandler serves 80G tax certificates for completed donations.
type CertificateHandler struct {
	certificateService service.CertificateService
}

func NewCertificateHandler(certificateService service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certificateService: certificateService}
}

func (h *CertificateHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	donationID, ok := pathInt32(mux.Vars(r), "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid donation id")
		return
	}

	certificate, err := h.certificateService.GenerateCertificate(r.Context(), claims.UserID, donationID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, certificate)
}

func (h *CertificateHandler) Email(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	donationID, ok := pathInt32(mux.Vars(r), "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid donation id")
		return
	}

	if err := h.certificateService.EmailCertificate(r.Context(), claims.UserID, donationID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}
