package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/everestcart/storefront-api/internal/domains/catalog/domain"
	catalogports "github.com/everestcart/storefront-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/everestcart/storefront-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) ListProducts(ctx context.Context, searchTerm string) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts",
		trace.WithAttributes(attribute.Bool("catalog.search", searchTerm != "")))
	defer span.End()

	result, err := s.inner.ListProducts(ctx, searchTerm)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	s.metrics.recordListed(ctx, searchTerm != "")
	span.SetAttributes(attribute.Int("catalog.count", len(result)))
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct",
		trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.Int64("product.id", id))
	}
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	listings metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	listings, _ := m.Int64Counter("catalog.service.listings", metric.WithDescription("Number of catalog listings served"))
	return serviceMetrics{listings: listings}
}

func (m serviceMetrics) recordListed(ctx context.Context, searched bool) {
	if m.listings != nil {
		m.listings.Add(ctx, 1, metric.WithAttributes(attribute.Bool("catalog.search", searched)))
	}
}

var _ catalogports.Service = (*Service)(nil)
