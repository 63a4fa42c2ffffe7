package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"noticebase/internal/platform/metrics"
	dErrors "noticebase/pkg/domain-errors"
	"noticebase/pkg/platform/sentinel"
	"noticebase/pkg/requestcontext"
)

const tracerName = "noticebase/records"

// Service owns the transactional write path for drivers and notices. Every
// mutating call runs as exactly one transaction and either commits all of its
// writes or none of them.
type Service struct {
	tx      RecordsTx
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service over the given transaction boundary.
func New(tx RecordsTx, opts ...Option) *Service {
	s := &Service{tx: tx, tracer: otel.Tracer(tracerName)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// runInTx executes fn in one transaction. The transaction is detached from
// the caller's cancellation: once started it always reaches commit or rollback.
func (s *Service) runInTx(ctx context.Context, op string, fn func(store Store) error) error {
	ctx = context.WithoutCancel(ctx)
	ctx, span := s.tracer.Start(ctx, "records."+op, trace.WithAttributes(attribute.String("records.op", op)))
	defer span.End()

	start := time.Now()
	err := s.tx.RunInTx(ctx, fn)
	if s.metrics != nil {
		s.metrics.ObserveTx(op, start)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rolled back")
	}
	return err
}

// translate maps store facts to coded errors. Errors that already carry a
// code pass through unchanged.
func translate(err error, msg string) error {
	var coded *dErrors.Error
	switch {
	case errors.As(err, &coded):
		return err
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, msg+": conflicting record")
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, msg+": record not found")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

func (s *Service) observe(entity, op string, err error) {
	if s.metrics != nil {
		s.metrics.ObserveMutation(entity, op, err)
	}
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if officer := requestcontext.Subject(ctx); officer != "" {
		attributes = append(attributes, "officer", officer)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}
