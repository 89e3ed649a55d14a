package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/everestcart/storefront-api/internal/domains/orders/domain"
	ordersports "github.com/everestcart/storefront-api/internal/domains/orders/ports"
	"github.com/everestcart/storefront-api/internal/shared/actor"
)

const tracerName = "github.com/everestcart/storefront-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, act actor.Actor, input ordersports.CreateOrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(attribute.Int64("user.id", act.UserID), attribute.Int("order.items", len(input.Items))))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.Int64("user.id", act.UserID), slog.Int("items", len(input.Items)))
	result, err := s.inner.CreateOrder(ctx, act, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.Int64("user.id", act.UserID))
	}
	s.metrics.recordCreated(ctx, result.PaymentMethod)
	s.logInfo(ctx, "order created",
		slog.Int64("order.id", result.ID),
		slog.String("tracking_number", result.TrackingNumber),
		slog.String("total", result.TotalAmount.String()))
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, act actor.Actor) ([]ordersports.Summary, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders",
		trace.WithAttributes(attribute.Int64("user.id", act.UserID), attribute.String("user.role", string(act.Role))))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, act)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.Int64("user.id", act.UserID))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, act actor.Actor, id int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, act, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, act actor.Actor, id int64, status domain.Status) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateStatus",
		trace.WithAttributes(attribute.Int64("order.id", id), attribute.String("order.status", string(status))))
	defer span.End()

	s.logInfo(ctx, "updating order status", slog.Int64("order.id", id), slog.String("status", string(status)))
	result, err := s.inner.UpdateStatus(ctx, act, id, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.Int64("order.id", id))
	}
	s.metrics.recordStatusChanged(ctx, result.Status)
	s.logInfo(ctx, "order status updated", slog.Int64("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) CancelOrder(ctx context.Context, act actor.Actor, id int64, reason string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CancelOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "cancelling order", slog.Int64("order.id", id), slog.Int64("user.id", act.UserID))
	result, err := s.inner.CancelOrder(ctx, act, id, reason)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.Int64("order.id", id))
	}
	s.metrics.recordCancelled(ctx)
	s.logInfo(ctx, "order cancelled", slog.Int64("order.id", result.ID))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersCreated   metric.Int64Counter
	statusChanges   metric.Int64Counter
	ordersCancelled metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created"))
	changed, _ := m.Int64Counter("orders.service.status_changes", metric.WithDescription("Number of order status transitions"))
	cancelled, _ := m.Int64Counter("orders.service.cancelled", metric.WithDescription("Number of orders cancelled"))
	return serviceMetrics{ordersCreated: created, statusChanges: changed, ordersCancelled: cancelled}
}

func (m serviceMetrics) recordCreated(ctx context.Context, paymentMethod string) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("order.payment_method", paymentMethod)))
	}
}

func (m serviceMetrics) recordStatusChanged(ctx context.Context, status domain.Status) {
	if m.statusChanges != nil {
		m.statusChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordCancelled(ctx context.Context) {
	if m.ordersCancelled != nil {
		m.ordersCancelled.Add(ctx, 1)
	}
}

var _ ordersports.Service = (*Service)(nil)
