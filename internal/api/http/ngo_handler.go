package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/service"
)

// NGOHandler serves NGO registration, documents and verification.
type NGOHandler struct {
	ngoService     service.NGOService
	projectService service.ProjectService
}

func NewNGOHandler(ngoService service.NGOService, projectService service.ProjectService) *NGOHandler {
	return &NGOHandler{ngoService: ngoService, projectService: projectService}
}

type registerNGORequest struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	Description        string `json:"description"`
	Website            string `json:"website"`
	ContactEmail       string `json:"contact_email"`
}

func (h *NGOHandler) Register(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req registerNGORequest
	if !decodeBody(w, r, &req) {
		return
	}

	ngo := &domain.NGO{
		UserID:             claims.UserID,
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Description:        req.Description,
		Website:            req.Website,
		ContactEmail:       req.ContactEmail,
	}
	if err := h.ngoService.Register(r.Context(), claims.UserID, ngo); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ngo)
}

type ngoListResponse struct {
	NGOs  []domain.NGO `json:"ngos"`
	Total int32        `json:"total"`
}

func (h *NGOHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	ngos, total, err := h.ngoService.ListNGOs(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list ngos")
		return
	}
	writeJSON(w, http.StatusOK, ngoListResponse{NGOs: ngos, Total: total})
}

type ngoDetailResponse struct {
	NGO          *domain.NGO                `json:"ngo"`
	Verification *domain.VerificationResult `json:"verification,omitempty"`
	Projects     []domain.Project           `json:"projects"`
}

func (h *NGOHandler) Get(w http.ResponseWriter, r *http.Request) {
	ngoID, ok := pathInt32(mux.Vars(r), "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid ngo id")
		return
	}

	ngo, verification, err := h.ngoService.GetNGO(r.Context(), ngoID)
	if err != nil {
		writeError(w, http.StatusNotFound, "ngo not found")
		return
	}

	projects, err := h.projectService.ListNGOProjects(r.Context(), ngoID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load ngo projects")
		return
	}

	writeJSON(w, http.StatusOK, ngoDetailResponse{NGO: ngo, Verification: verification, Projects: projects})
}

func (h *NGOHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	ngoID, ok := pathInt32(mux.Vars(r), "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid ngo id")
		return
	}

	var req registerNGORequest
	if !decodeBody(w, r, &req) {
		return
	}

	ngo := &domain.NGO{
		ID:                 ngoID,
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Description:        req.Description,
		Website:            req.Website,
		ContactEmail:       req.ContactEmail,
	}
	if err := h.ngoService.UpdateNGO(r.Context(), claims.UserID, ngo); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ngo)
}

func (h *NGOHandler) SubmitDocument(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	ngoID, ok := pathInt32(mux.Vars(r), "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid ngo id")
		return
	}

	var doc domain.NGODocument
	if !decodeBody(w, r, &doc) {
		return
	}
	if doc.Type == "" {
		writeError(w, http.StatusBadRequest, "document type is required")
		return
	}

	if err := h.ngoService.SubmitDocument(r.Context(), claims.UserID, ngoID, &doc); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "submitted"})
}

func (h *NGOHandler) UpdateCompliance(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	ngoID, ok := pathInt32(mux.Vars(r), "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid ngo id")
		return
	}

	var bundle domain.DocumentBundle
	if !decodeBody(w, r, &bundle) {
		return
	}

	if err := h.ngoService.UpdateCompliance(r.Context(), claims.UserID, ngoID, &bundle); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Verify recomputes the verification result for an NGO. Admin only.
func (h *NGOHandler) Verify(w http.ResponseWriter, r *http.Request) {
	ngoID, ok := pathInt32(mux.Vars(r), "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid ngo id")
		return
	}

	result, err := h.ngoService.VerifyNGO(r.Context(), ngoID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// FraudAlerts runs the fraud scan over the NGO's recent activity. Admin only.
func (h *NGOHandler) FraudAlerts(w http.ResponseWriter, r *http.Request) {
	ngoID, ok := pathInt32(mux.Vars(r), "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid ngo id")
		return
	}

	alerts, err := h.ngoService.ScanFraudAlerts(r.Context(), ngoID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"alerts": alerts})
}
