package httpserver

import (
	"net/http"

	authhttp "musubime/contexts/identity-access/auth-service/transport/http"
)

func (s *Server) registerAuthRoutes() {
	s.mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
}

// handleLogin godoc
// @Summary Log in with an influencer id or email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body authhttp.LoginRequest true "credentials"
// @Success 200 {object} authhttp.LoginResponse
// @Failure 401 {object} errorResponse
// @Router /api/v1/auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authhttp.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Auth.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
