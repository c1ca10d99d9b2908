package httpserver

import (
	"net/http"

	outreachports "musubime/contexts/outreach/outreach-service/ports"
	outreachhttp "musubime/contexts/outreach/outreach-service/transport/http"
)

func (s *Server) registerOutreachRoutes() {
	s.mux.HandleFunc("GET /api/v1/outreach/candidates", s.handleListCandidates)
	s.mux.HandleFunc("POST /api/v1/outreach/send", s.handleSendOutreach)
	s.mux.HandleFunc("GET /api/v1/templates", s.handleListTemplates)
	s.mux.HandleFunc("POST /api/v1/templates", s.handleSaveTemplate)
	s.mux.HandleFunc("POST /api/v1/templates/preview", s.handlePreviewTemplate)
}

func outreachActor(id identity) outreachports.Actor {
	return outreachports.Actor{ID: id.ID, Role: id.Role}
}

// handleListCandidates godoc
// @Summary List selected influencers with the templates they match
// @Tags outreach
// @Produce json
// @Success 200 {object} outreachhttp.ListCandidatesResponse
// @Failure 403 {object} errorResponse
// @Router /api/v1/outreach/candidates [get]
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Outreach.Handler.ListCandidatesHandler(r.Context(), outreachActor(caller), queryBool(r, "refresh"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSendOutreach godoc
// @Summary Email a template to selected influencers
// @Tags outreach
// @Accept json
// @Produce json
// @Param request body outreachhttp.SendRequest true "recipients"
// @Success 200 {object} outreachhttp.SendResponse
// @Router /api/v1/outreach/send [post]
func (s *Server) handleSendOutreach(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	var req outreachhttp.SendRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Outreach.Handler.SendHandler(r.Context(), outreachActor(caller), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.modules.Outreach.Handler.ListTemplatesHandler(r.Context(), outreachActor(caller), queryBool(r, "refresh"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSaveTemplate godoc
// @Summary Create or update an outreach template
// @Tags outreach
// @Accept json
// @Produce json
// @Param request body outreachhttp.TemplateDTO true "template"
// @Success 200 {object} outreachhttp.SaveTemplateResponse
// @Success 201 {object} outreachhttp.SaveTemplateResponse
// @Router /api/v1/templates [post]
func (s *Server) handleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	var req outreachhttp.TemplateDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Outreach.Handler.SaveTemplateHandler(r.Context(), outreachActor(caller), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

func (s *Server) handlePreviewTemplate(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	var req outreachhttp.PreviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Outreach.Handler.PreviewHandler(r.Context(), outreachActor(caller), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
