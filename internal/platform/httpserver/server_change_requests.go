package httpserver

import (
	"net/http"

	changerequestports "musubime/contexts/campaign-workflow/change-request-service/ports"
	changerequesthttp "musubime/contexts/campaign-workflow/change-request-service/transport/http"
)

func (s *Server) registerChangeRequestRoutes() {
	s.mux.HandleFunc("GET /api/v1/change-requests", s.handleListChangeRequests)
	s.mux.HandleFunc("POST /api/v1/change-requests", s.handleCreateChangeRequest)
	s.mux.HandleFunc("PATCH /api/v1/change-requests", s.handleResolveChangeRequest)
}

func changeRequestActor(id identity) changerequestports.Actor {
	return changerequestports.Actor{ID: id.ID, Role: id.Role}
}

// handleListChangeRequests godoc
// @Summary List schedule change requests
// @Tags change-requests
// @Produce json
// @Param campaignId query string false "campaign filter"
// @Param influencerId query string false "influencer filter (admins only)"
// @Param status query string false "pending, approved or rejected"
// @Success 200 {object} changerequesthttp.ListChangeRequestsResponse
// @Router /api/v1/change-requests [get]
func (s *Server) handleListChangeRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	resp, err := s.modules.ChangeRequests.Handler.ListChangeRequestsHandler(
		r.Context(),
		changeRequestActor(caller),
		query.Get("campaignId"),
		query.Get("influencerId"),
		query.Get("status"),
		queryBool(r, "refresh"),
	)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCreateChangeRequest godoc
// @Summary Request a plan, draft or live date change
// @Tags change-requests
// @Accept json
// @Produce json
// @Param request body changerequesthttp.CreateChangeRequestRequest true "change request"
// @Success 201 {object} changerequesthttp.ChangeRequestResponse
// @Failure 409 {object} errorResponse
// @Router /api/v1/change-requests [post]
func (s *Server) handleCreateChangeRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	var req changerequesthttp.CreateChangeRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.ChangeRequests.Handler.CreateChangeRequestHandler(r.Context(), changeRequestActor(caller), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleResolveChangeRequest godoc
// @Summary Approve or reject a pending change request
// @Tags change-requests
// @Accept json
// @Produce json
// @Param request body changerequesthttp.ResolveChangeRequestRequest true "decision"
// @Success 200 {object} changerequesthttp.ChangeRequestResponse
// @Failure 409 {object} errorResponse
// @Router /api/v1/change-requests [patch]
func (s *Server) handleResolveChangeRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	var req changerequesthttp.ResolveChangeRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.ChangeRequests.Handler.ResolveChangeRequestHandler(r.Context(), changeRequestActor(caller), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
