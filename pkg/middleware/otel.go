package middleware

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Default tracer name for Wayfind applications.
const defaultTracerName = "wayfind"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "wayfind").
	TracerName string

	// IncludeParams includes bound route parameter values in spans.
	// Parameter values may contain sensitive data - disabled by default.
	IncludeParams bool

	// Filter determines which navigations to trace.
	// Return true to trace the navigation, false to skip.
	// If nil, all navigations are traced.
	Filter func(res *router.Resolution) bool

	// AttributeExtractor extracts custom attributes from the resolution.
	// Called for each traced navigation.
	AttributeExtractor func(res *router.Resolution) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeParams enables including route parameter values in spans.
func WithIncludeParams(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeParams = include
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(res *router.Resolution) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(res *router.Resolution) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:    defaultTracerName,
		IncludeParams: false,
	}
}

// OpenTelemetry creates middleware that traces every navigation.
//
// The middleware:
//   - Creates a span per navigation named after the matched pattern
//   - Records the concrete path, matched pattern, and match flag
//   - Records handler errors and sets span status
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in your main() before dispatching navigations:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	    sdktrace.WithResource(resource.NewWithAttributes(
//	        semconv.SchemaURL,
//	        semconv.ServiceName("my-app"),
//	    )),
//	)
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	config.tracer = otel.Tracer(config.TracerName)

	return router.MiddlewareFunc(func(ctx context.Context, res *router.Resolution, next func() error) error {
		if config.Filter != nil && !config.Filter(res) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("wayfind.path", res.Path()),
			attribute.Bool("wayfind.matched", res.Matched()),
		}
		if res.Matched() {
			attrs = append(attrs,
				attribute.String("wayfind.pattern", res.Route().Pattern().Raw()),
				attribute.String("wayfind.route", res.Route().Name()),
			)
		}

		if config.IncludeParams {
			for name, value := range res.Params() {
				attrs = append(attrs, attribute.String("wayfind.param."+name, value))
			}
		}

		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(res)...)
		}

		_, span := config.tracer.Start(
			ctx,
			formatSpanName(res),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		err := next()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	})
}

// formatSpanName creates a span name from the resolution. Matched
// navigations are named after the pattern so spans aggregate per route.
func formatSpanName(res *router.Resolution) string {
	if res.Matched() {
		return fmt.Sprintf("navigate %s", res.Route().Pattern().Raw())
	}
	return fmt.Sprintf("navigate %s", res.Path())
}
