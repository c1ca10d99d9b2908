package httpserver

import (
	"net/http"
	"strconv"

	notificationports "musubime/contexts/notifications/notification-service/ports"
	notificationhttp "musubime/contexts/notifications/notification-service/transport/http"
)

func (s *Server) registerNotificationRoutes() {
	s.mux.HandleFunc("GET /api/v1/notifications", s.handleListNotifications)
}

// handleListNotifications godoc
// @Summary List queued and delivered notifications
// @Tags notifications
// @Produce json
// @Param status query string false "pending, delivered, skipped or failed"
// @Param channel query string false "webhook or email"
// @Param campaignId query string false "campaign filter"
// @Param limit query int false "page size (max 500)"
// @Success 200 {object} notificationhttp.ListNotificationsResponse
// @Router /api/v1/notifications [get]
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	req := notificationhttp.ListNotificationsQuery{
		Status:     query.Get("status"),
		Channel:    query.Get("channel"),
		CampaignID: query.Get("campaignId"),
	}
	if limitRaw := query.Get("limit"); limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		req.Limit = limit
	}
	resp, err := s.modules.Notifications.Handler.ListNotificationsHandler(
		r.Context(),
		notificationports.Actor{ID: caller.ID, Role: caller.Role},
		req,
	)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
