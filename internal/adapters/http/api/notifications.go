package api

import (
	"context"
	"net/http"

	"github.com/okian/stagebook/internal/domain/notify"
)

// NotificationsDependencies exposes recently delivered notices.
type NotificationsDependencies interface {
	RecentNotices(ctx context.Context) []notify.Notice
}

// NotificationsHandler handles notification reads.
type NotificationsHandler struct {
	deps NotificationsDependencies
}

// NewNotificationsHandler creates a new notifications handler.
func NewNotificationsHandler(deps NotificationsDependencies) *NotificationsHandler {
	return &NotificationsHandler{deps: deps}
}

// HandleList handles GET /notifications, newest first.
func (h *NotificationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items := h.deps.RecentNotices(r.Context())
	if items == nil {
		items = []notify.Notice{}
	}
	writeJSON(w, http.StatusOK, items)
}
