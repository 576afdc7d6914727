package http

import (
	"net/http"

	"daanbridge-backend/internal/service"
)

// AuditHandler exposes the administrative audit trail.
type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// Trail returns stored audit records plus the chain check result. Admin
// only.
func (h *AuditHandler) Trail(w http.ResponseWriter, r *http.Request) {
	limit := queryInt32(r, "limit", 100)

	records, brokenAt, err := h.auditService.Trail(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"records":         records,
		"chain_intact":    brokenAt == -1,
		"broken_at_index": brokenAt,
	})
}
