package httpserver

import (
	"errors"
	"net/http"

	chatboterrors "musubime/contexts/assistant/chatbot-service/domain/errors"
	campaignerrors "musubime/contexts/campaign-workflow/campaign-service/domain/errors"
	changerequesterrors "musubime/contexts/campaign-workflow/change-request-service/domain/errors"
	autherrors "musubime/contexts/identity-access/auth-service/domain/errors"
	notificationerrors "musubime/contexts/notifications/notification-service/domain/errors"
	outreacherrors "musubime/contexts/outreach/outreach-service/domain/errors"
	"musubime/internal/platform/rowstore"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// Matched in order. Missing credentials come first because context
// repositories also wrap them in their own write-not-permitted errors.
var domainErrorMappings = []errorMapping{
	{rowstore.ErrCredentialsMissing, http.StatusServiceUnavailable, "credentials_missing"},

	{campaignerrors.ErrInvalidCampaignInput, http.StatusBadRequest, "invalid_campaign_input"},
	{campaignerrors.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
	{campaignerrors.ErrInvalidAction, http.StatusBadRequest, "invalid_action"},
	{campaignerrors.ErrInvalidURLType, http.StatusBadRequest, "invalid_url_type"},
	{campaignerrors.ErrForbidden, http.StatusForbidden, "forbidden"},
	{campaignerrors.ErrCampaignNotFound, http.StatusNotFound, "campaign_not_found"},
	{campaignerrors.ErrInvalidStateTransition, http.StatusConflict, "invalid_state_transition"},
	{campaignerrors.ErrNoActionAvailable, http.StatusConflict, "no_action_available"},
	{campaignerrors.ErrReminderNotDue, http.StatusConflict, "reminder_not_due"},
	{campaignerrors.ErrWriteNotPermitted, http.StatusServiceUnavailable, "write_not_permitted"},

	{changerequesterrors.ErrInvalidRequest, http.StatusBadRequest, "invalid_change_request"},
	{changerequesterrors.ErrInvalidRequestType, http.StatusBadRequest, "invalid_change_request_type"},
	{changerequesterrors.ErrInvalidDecision, http.StatusBadRequest, "invalid_decision"},
	{changerequesterrors.ErrForbidden, http.StatusForbidden, "forbidden"},
	{changerequesterrors.ErrChangeRequestNotFound, http.StatusNotFound, "change_request_not_found"},
	{changerequesterrors.ErrCampaignNotFound, http.StatusNotFound, "campaign_not_found"},
	{changerequesterrors.ErrAlreadyResolved, http.StatusConflict, "change_request_already_resolved"},
	{changerequesterrors.ErrPendingRequestExists, http.StatusConflict, "pending_change_request_exists"},
	{changerequesterrors.ErrWriteNotPermitted, http.StatusServiceUnavailable, "write_not_permitted"},

	{autherrors.ErrInvalidLoginInput, http.StatusBadRequest, "invalid_login_input"},
	{autherrors.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},

	{outreacherrors.ErrInvalidRequest, http.StatusBadRequest, "invalid_outreach_request"},
	{outreacherrors.ErrInvalidTemplate, http.StatusBadRequest, "invalid_template"},
	{outreacherrors.ErrForbidden, http.StatusForbidden, "forbidden"},
	{outreacherrors.ErrTemplateNotFound, http.StatusNotFound, "template_not_found"},
	{outreacherrors.ErrCandidateNotFound, http.StatusNotFound, "candidate_not_found"},
	{outreacherrors.ErrWriteNotPermitted, http.StatusServiceUnavailable, "write_not_permitted"},

	{chatboterrors.ErrInvalidMessage, http.StatusBadRequest, "invalid_message"},
	{chatboterrors.ErrForbidden, http.StatusForbidden, "forbidden"},

	{notificationerrors.ErrInvalidRequest, http.StatusBadRequest, "invalid_notification_query"},
	{notificationerrors.ErrForbidden, http.StatusForbidden, "forbidden"},
	{notificationerrors.ErrNotificationNotFound, http.StatusNotFound, "notification_not_found"},

	{rowstore.ErrWriteNotPermitted, http.StatusServiceUnavailable, "write_not_permitted"},
}

func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, mapping := range domainErrorMappings {
		if errors.Is(err, mapping.err) {
			writeError(w, mapping.status, mapping.code, err.Error())
			return
		}
	}
	s.logger.Error("request failed",
		"event", "http_request_failed",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err.Error(),
	)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
