package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and
// optional OTLP exporter. It returns a Recorder, the Prometheus HTTP handler,
// and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "rugby-union"
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

type otelInstruments struct {
	ctx            context.Context
	meter          metric.Meter
	httpRequests   metric.Int64Counter
	httpLatencyMs  metric.Float64Histogram
	apiAttempts    metric.Int64Counter
	apiErrors      metric.Int64Counter
	apiLatencyMs   metric.Float64Histogram
	rateLimitHits  metric.Int64Counter
	rateWaitMs     metric.Float64Histogram
	jobCycles      metric.Int64Counter
	jobErrors      metric.Int64Counter
	jobLatencyMs   metric.Float64Histogram
	teamsProcessed metric.Int64Counter
	teamsSkipped   metric.Int64Counter
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("rugby-union")
	ctx := context.Background()

	httpRequests, err := meter.Int64Counter("http_requests_total")
	if err != nil {
		return nil, err
	}
	httpLatency, err := meter.Float64Histogram("http_request_duration_ms")
	if err != nil {
		return nil, err
	}
	apiAttempts, err := meter.Int64Counter("sportradar_attempts_total")
	if err != nil {
		return nil, err
	}
	apiErrors, err := meter.Int64Counter("sportradar_errors_total")
	if err != nil {
		return nil, err
	}
	apiLatency, err := meter.Float64Histogram("sportradar_duration_ms")
	if err != nil {
		return nil, err
	}
	rateLimitHits, err := meter.Int64Counter("sportradar_rate_limit_hits_total")
	if err != nil {
		return nil, err
	}
	rateWait, err := meter.Float64Histogram("sportradar_rate_wait_ms")
	if err != nil {
		return nil, err
	}
	jobCycles, err := meter.Int64Counter("fetch_jobs_total")
	if err != nil {
		return nil, err
	}
	jobErrors, err := meter.Int64Counter("fetch_job_errors_total")
	if err != nil {
		return nil, err
	}
	jobLatency, err := meter.Float64Histogram("fetch_job_duration_ms")
	if err != nil {
		return nil, err
	}
	teamsProcessed, err := meter.Int64Counter("fetch_teams_processed_total")
	if err != nil {
		return nil, err
	}
	teamsSkipped, err := meter.Int64Counter("fetch_teams_skipped_total")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:            ctx,
		meter:          meter,
		httpRequests:   httpRequests,
		httpLatencyMs:  httpLatency,
		apiAttempts:    apiAttempts,
		apiErrors:      apiErrors,
		apiLatencyMs:   apiLatency,
		rateLimitHits:  rateLimitHits,
		rateWaitMs:     rateWait,
		jobCycles:      jobCycles,
		jobErrors:      jobErrors,
		jobLatencyMs:   jobLatency,
		teamsProcessed: teamsProcessed,
		teamsSkipped:   teamsSkipped,
	}, nil
}

func (o *otelInstruments) recordAPICall(endpoint string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String(AttrEndpoint, endpoint))
	o.apiAttempts.Add(o.ctx, 1, attrs)
	o.apiLatencyMs.Record(o.ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		o.apiErrors.Add(o.ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordRateLimit(endpoint string, wait time.Duration) {
	attrs := metric.WithAttributes(attribute.String(AttrEndpoint, endpoint))
	o.rateLimitHits.Add(o.ctx, 1, attrs)
	if wait > 0 {
		o.rateWaitMs.Record(o.ctx, float64(wait.Milliseconds()), attrs)
	}
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.String(AttrStatus, strconv.Itoa(status)),
	)
	o.httpRequests.Add(o.ctx, 1, attrs)
	o.httpLatencyMs.Record(o.ctx, float64(duration.Milliseconds()), attrs)
}

func (o *otelInstruments) recordJob(duration time.Duration, err error) {
	o.jobCycles.Add(o.ctx, 1)
	o.jobLatencyMs.Record(o.ctx, float64(duration.Milliseconds()))
	if err != nil {
		o.jobErrors.Add(o.ctx, 1)
	}
}

func (o *otelInstruments) recordTeam(skipped bool) {
	if skipped {
		o.teamsSkipped.Add(o.ctx, 1)
		return
	}
	o.teamsProcessed.Add(o.ctx, 1)
}
