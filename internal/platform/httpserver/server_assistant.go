package httpserver

import (
	"net/http"

	chatbotports "musubime/contexts/assistant/chatbot-service/ports"
	chatbothttp "musubime/contexts/assistant/chatbot-service/transport/http"
)

func (s *Server) registerAssistantRoutes() {
	s.mux.HandleFunc("POST /api/v1/assistant/chat", s.handleAssistantChat)
}

// handleAssistantChat godoc
// @Summary Ask the campaign assistant a question
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body chatbothttp.ChatRequest true "question"
// @Success 200 {object} chatbothttp.ChatResponse
// @Router /api/v1/assistant/chat [post]
func (s *Server) handleAssistantChat(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	var req chatbothttp.ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.modules.Assistant.Handler.ChatHandler(r.Context(), chatbotports.Actor{ID: caller.ID, Role: caller.Role}, req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
