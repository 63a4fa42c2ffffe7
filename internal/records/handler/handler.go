package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"noticebase/internal/records/models"
	dErrors "noticebase/pkg/domain-errors"
	"noticebase/pkg/platform/httputil"
	"noticebase/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the record operations the handler needs.
type Service interface {
	CreateDriver(ctx context.Context, in models.DriverInput) (int64, error)
	UpdateDriver(ctx context.Context, driverID int64, in models.DriverInput) (*models.DriverRecord, error)
	DeleteDriver(ctx context.Context, driverID int64) (bool, error)
	GetDriver(ctx context.Context, driverID int64) (*models.DriverRecord, error)
	ListDrivers(ctx context.Context) ([]models.DriverSummary, error)

	CreateNotice(ctx context.Context, in models.NoticeInput) (string, error)
	UpdateNotice(ctx context.Context, noticeID string, in models.NoticeInput) (*models.NoticeRecord, error)
	DeleteNotice(ctx context.Context, noticeID string) (bool, error)
	ListNoticesByDriver(ctx context.Context, driverID int64) ([]models.NoticeRecord, error)
}

// Handler serves the driver and notice routes.
type Handler struct {
	records Service
	logger  *slog.Logger
}

func New(records Service, logger *slog.Logger) *Handler {
	return &Handler{records: records, logger: logger}
}

// Register mounts reads on r and wraps writes with requireAuth.
func (h *Handler) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/drivers", h.handleListDrivers)
	r.Get("/drivers/{driverID}", h.handleGetDriver)
	r.Get("/notices/{driverID}", h.handleListNotices)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/drivers", h.handleCreateDriver)
		r.Put("/drivers/{driverID}", h.handleUpdateDriver)
		r.Delete("/drivers/{driverID}", h.handleDeleteDriver)
		r.Post("/notices", h.handleCreateNotice)
		r.Put("/notices/{noticeID}", h.handleUpdateNotice)
		r.Delete("/notices/{noticeID}", h.handleDeleteNotice)
	})
}

func (h *Handler) handleListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.records.ListDrivers(r.Context())
	if err != nil {
		h.writeError(r.Context(), w, "failed to list drivers", err)
		return
	}
	if drivers == nil {
		drivers = []models.DriverSummary{}
	}
	httputil.WriteJSON(w, http.StatusOK, drivers)
}

func (h *Handler) handleGetDriver(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	driverID, err := pathID(r, "driverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	driver, err := h.records.GetDriver(ctx, driverID)
	if err != nil {
		h.writeError(ctx, w, "failed to get driver", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDriverResponse(driver.DriverID, driver.Driver))
}

func (h *Handler) handleListNotices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	driverID, err := pathID(r, "driverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	notices, err := h.records.ListNoticesByDriver(ctx, driverID)
	if err != nil {
		h.writeError(ctx, w, "failed to list notices", err)
		return
	}
	out := make([]NoticeResponse, 0, len(notices))
	for _, n := range notices {
		out = append(out, toNoticeResponse(n.Notice))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateDriver(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req DriverRequest
	if !h.decode(w, r, &req) {
		return
	}
	in := req.Input()
	driverID, err := h.records.CreateDriver(ctx, in)
	if err != nil {
		h.writeError(ctx, w, "failed to create driver", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toDriverResponse(driverID, in.Driver))
}

func (h *Handler) handleUpdateDriver(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	driverID, err := pathID(r, "driverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req DriverRequest
	if !h.decode(w, r, &req) {
		return
	}
	driver, err := h.records.UpdateDriver(ctx, driverID, req.Input())
	if err != nil {
		h.writeError(ctx, w, "failed to update driver", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDriverResponse(driver.DriverID, driver.Driver))
}

func (h *Handler) handleDeleteDriver(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	driverID, err := pathID(r, "driverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	deleted, err := h.records.DeleteDriver(ctx, driverID)
	if err != nil {
		h.writeError(ctx, w, "failed to delete driver", err)
		return
	}
	if !deleted {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "driver not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Driver %d deleted successfully", driverID)})
}

func (h *Handler) handleCreateNotice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req NoticeRequest
	if !h.decode(w, r, &req) {
		return
	}
	in := req.Input()
	noticeID, err := h.records.CreateNotice(ctx, in)
	if err != nil {
		h.writeError(ctx, w, "failed to create notice", err)
		return
	}
	in.Notice.NoticeID = noticeID
	httputil.WriteJSON(w, http.StatusCreated, toNoticeResponse(in.Notice))
}

func (h *Handler) handleUpdateNotice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	noticeID := chi.URLParam(r, "noticeID")
	var req NoticeRequest
	if !h.decode(w, r, &req) {
		return
	}
	notice, err := h.records.UpdateNotice(ctx, noticeID, req.Input())
	if err != nil {
		h.writeError(ctx, w, "failed to update notice", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toNoticeResponse(notice.Notice))
}

func (h *Handler) handleDeleteNotice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	noticeID := chi.URLParam(r, "noticeID")
	deleted, err := h.records.DeleteNotice(ctx, noticeID)
	if err != nil {
		h.writeError(ctx, w, "failed to delete notice", err)
		return
	}
	if !deleted {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "notice not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Notice %s deleted successfully", noticeID)})
}

type validator interface {
	Validate() error
}

// decode reads a JSON body into v and validates it. It writes the error
// response itself and reports whether the caller should continue.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v validator) bool {
	ctx := r.Context()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.WarnContext(ctx, "invalid request body",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return false
	}
	if err := v.Validate(); err != nil {
		httputil.WriteError(w, err)
		return false
	}
	return true
}

func pathID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, param+" must be a positive integer")
	}
	return id, nil
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"officer", requestcontext.Subject(ctx),
			"error", err,
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
