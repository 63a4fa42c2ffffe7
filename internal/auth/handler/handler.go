package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authservice "noticebase/internal/auth/service"
	"noticebase/internal/platform/middleware"
	dErrors "noticebase/pkg/domain-errors"
	"noticebase/pkg/platform/httputil"
	"noticebase/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the token operations behind /login.
type Service interface {
	Login(ctx context.Context, username, password string) (*authservice.TokenResult, error)
	Refresh(ctx context.Context, token string) (*authservice.TokenResult, error)
	Logout(ctx context.Context, token string) error
}

// LoginRequest is the POST /login body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Handler serves officer login, token refresh and logout.
type Handler struct {
	auth   Service
	logger *slog.Logger
}

func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// Register mounts the /login routes. PUT and DELETE read the bearer token
// themselves; the service validates it.
func (h *Handler) Register(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Put("/login", h.handleRefresh)
	r.Delete("/login", h.handleLogout)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid login request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.writeError(ctx, w, "login failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token, ok := middleware.BearerToken(r)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
		return
	}

	result, err := h.auth.Refresh(ctx, token)
	if err != nil {
		h.writeError(ctx, w, "token refresh failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token, ok := middleware.BearerToken(r)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
		return
	}

	if err := h.auth.Logout(ctx, token); err != nil {
		h.writeError(ctx, w, "logout failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, "request_id", requestcontext.RequestID(ctx), "error", err)
	} else {
		h.logger.WarnContext(ctx, msg, "request_id", requestcontext.RequestID(ctx), "error", err)
	}
	httputil.WriteError(w, err)
}
