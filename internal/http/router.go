package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authhandler "noticebase/internal/auth/handler"
	"noticebase/internal/platform/middleware"
	recordshandler "noticebase/internal/records/handler"
	"noticebase/pkg/platform/httputil"
)

// Dependencies are the handlers and middleware the router mounts.
type Dependencies struct {
	Logger      *slog.Logger
	Records     *recordshandler.Handler
	Auth        *authhandler.Handler
	RequireAuth func(http.Handler) http.Handler
	Metrics     http.Handler
}

// NewRouter wires all public endpoints. Handlers delegate to services and
// carry no business logic.
func NewRouter(d Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))

	r.Get("/", handleHealth)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}
	d.Auth.Register(r)
	d.Records.Register(r, d.RequireAuth)
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "App is still running"})
}
