package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	chatbotservice "musubime/contexts/assistant/chatbot-service"
	campaignservice "musubime/contexts/campaign-workflow/campaign-service"
	changerequestservice "musubime/contexts/campaign-workflow/change-request-service"
	authservice "musubime/contexts/identity-access/auth-service"
	notificationservice "musubime/contexts/notifications/notification-service"
	outreachservice "musubime/contexts/outreach/outreach-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "musubime/internal/platform/httpserver/docs"
)

const maxBodyBytes = 1 << 20

// Modules groups the context modules served over HTTP.
type Modules struct {
	Campaigns      campaignservice.Module
	ChangeRequests changerequestservice.Module
	Auth           authservice.Module
	Outreach       outreachservice.Module
	Assistant      chatbotservice.Module
	Notifications  notificationservice.Module
}

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	http    *http.Server
	modules Modules
}

func New(modules Modules, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		modules: modules,
	}
	s.registerRoutes()
	s.http = &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	return s.http.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.registerAuthRoutes()
	s.registerCampaignRoutes()
	s.registerChangeRequestRoutes()
	s.registerOutreachRoutes()
	s.registerAssistantRoutes()
	s.registerNotificationRoutes()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// identity is the caller taken from the X-User-Id and X-User-Role headers.
type identity struct {
	ID   string
	Role string
}

func (s *Server) requireIdentity(w http.ResponseWriter, r *http.Request) (identity, bool) {
	id := strings.TrimSpace(r.Header.Get("X-User-Id"))
	role := strings.ToLower(strings.TrimSpace(r.Header.Get("X-User-Role")))
	if id == "" || role == "" {
		writeError(w, http.StatusUnauthorized, "missing_identity", "X-User-Id and X-User-Role headers are required")
		return identity{}, false
	}
	if role != "admin" && role != "influencer" {
		writeError(w, http.StatusUnauthorized, "invalid_role", "X-User-Role must be admin or influencer")
		return identity{}, false
	}
	return identity{ID: id, Role: role}, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func queryBool(r *http.Request, name string) bool {
	value, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && value
}

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{
		Success: false,
		Code:    code,
		Error:   message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
