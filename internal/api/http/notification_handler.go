package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/service"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type notificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Total         int32                 `json:"total"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	page, pageSize := pagination(r)

	notifications, total, err := h.notificationService.GetNotifications(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	writeJSON(w, http.StatusOK, notificationListResponse{Notifications: notifications, Total: total})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	notificationID, ok := pathInt32(mux.Vars(r), "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.notificationService.MarkAsRead(r.Context(), claims.UserID, notificationID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to mark notification as read")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
