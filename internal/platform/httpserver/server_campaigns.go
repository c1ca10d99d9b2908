package httpserver

import (
	"net/http"

	campaignports "musubime/contexts/campaign-workflow/campaign-service/ports"
	campaignhttp "musubime/contexts/campaign-workflow/campaign-service/transport/http"
)

func (s *Server) registerCampaignRoutes() {
	s.mux.HandleFunc("GET /api/v1/campaigns", s.handleListCampaigns)
	s.mux.HandleFunc("GET /api/v1/campaigns/{campaign_id}", s.handleGetCampaign)
	s.mux.HandleFunc("POST /api/v1/campaigns/status", s.handleUpdateStatus)
	s.mux.HandleFunc("POST /api/v1/campaigns/submit", s.handleSubmit)
	s.mux.HandleFunc("POST /api/v1/campaigns/admin-action", s.handleAdminAction)
	s.mux.HandleFunc("POST /api/v1/campaigns/messages", s.handleAppendMessage)
	s.mux.HandleFunc("POST /api/v1/campaigns/reminders", s.handleSendReminder)
	s.mux.HandleFunc("POST /api/v1/onboarding", s.handleOnboarding)
}

func campaignActor(id identity) campaignports.Actor {
	return campaignports.Actor{ID: id.ID, Role: id.Role}
}

// handleListCampaigns godoc
// @Summary List campaigns visible to the caller
// @Tags campaigns
// @Produce json
// @Param influencerId query string false "influencer filter (admins only)"
// @Param refresh query bool false "bypass the read cache"
// @Success 200 {object} campaignhttp.ListCampaignsResponse
// @Router /api/v1/campaigns [get]
func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Campaigns.Handler.ListCampaignsHandler(
		r.Context(),
		campaignActor(caller),
		r.URL.Query().Get("influencerId"),
		queryBool(r, "refresh"),
	)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetCampaign godoc
// @Summary Get one campaign row
// @Tags campaigns
// @Produce json
// @Param campaign_id path string true "campaign id"
// @Param influencerId query string false "influencer id; defaults to the caller"
// @Success 200 {object} campaignhttp.GetCampaignResponse
// @Failure 404 {object} errorResponse
// @Router /api/v1/campaigns/{campaign_id} [get]
func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	influencerID := r.URL.Query().Get("influencerId")
	if influencerID == "" && caller.Role == campaignports.RoleInfluencer {
		influencerID = caller.ID
	}
	resp, err := s.modules.Campaigns.Handler.GetCampaignHandler(
		r.Context(),
		campaignActor(caller),
		r.PathValue("campaign_id"),
		influencerID,
		queryBool(r, "refresh"),
	)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleUpdateStatus godoc
// @Summary Set a campaign status directly
// @Tags campaigns
// @Accept json
// @Produce json
// @Param request body campaignhttp.UpdateStatusRequest true "status update"
// @Success 200 {object} campaignhttp.MutationResponse
// @Failure 409 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /api/v1/campaigns/status [post]
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	var req campaignhttp.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Campaigns.Handler.UpdateStatusHandler(r.Context(), campaignActor(caller), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSubmit godoc
// @Summary Submit a plan, draft or content URL
// @Tags campaigns
// @Accept json
// @Produce json
// @Param request body campaignhttp.SubmitRequest true "submission"
// @Success 200 {object} campaignhttp.MutationResponse
// @Router /api/v1/campaigns/submit [post]
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	var req campaignhttp.SubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Campaigns.Handler.SubmitHandler(r.Context(), campaignActor(caller), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAdminAction godoc
// @Summary Apply an admin workflow action
// @Tags campaigns
// @Accept json
// @Produce json
// @Param request body campaignhttp.AdminActionRequest true "action"
// @Success 200 {object} campaignhttp.MutationResponse
// @Failure 400 {object} errorResponse
// @Router /api/v1/campaigns/admin-action [post]
func (s *Server) handleAdminAction(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	var req campaignhttp.AdminActionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Campaigns.Handler.AdminActionHandler(r.Context(), campaignActor(caller), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAppendMessage(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	var req campaignhttp.AppendMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Campaigns.Handler.AppendMessageHandler(r.Context(), campaignActor(caller), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSendReminder(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	var req campaignhttp.ReminderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Campaigns.Handler.SendReminderHandler(r.Context(), campaignActor(caller), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleOnboarding godoc
// @Summary Write onboarding survey answers to every campaign row of an influencer
// @Tags onboarding
// @Accept json
// @Produce json
// @Param request body campaignhttp.OnboardingRequest true "answers"
// @Success 200 {object} campaignhttp.OnboardingResponse
// @Router /api/v1/onboarding [post]
func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	var req campaignhttp.OnboardingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Campaigns.Handler.OnboardingHandler(r.Context(), campaignActor(caller), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
