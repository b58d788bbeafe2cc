package observability

import (
	"context"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func restoreGlobals(t *testing.T) {
	tp := otel.GetTracerProvider()
	mp := otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(tp)
		otel.SetMeterProvider(mp)
	})
}

func TestNew_RecordsCustomerMetrics(t *testing.T) {
	restoreGlobals(t)
	registry := promclient.NewRegistry()

	o, err := New(Options{ServiceName: "customer-generator-test", Registerer: registry})
	require.NoError(t, err)
	defer o.Shutdown(context.Background())

	ctx := context.Background()
	o.RecordCustomerProcessed(ctx, "success")
	o.RecordCustomerProcessed(ctx, "success")
	o.RecordCustomerDuration(ctx, 15*time.Millisecond, "success")

	families, err := registry.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["customers_processed_total"], "got %v", names)
}

func TestNew_TracingRecordsSpans(t *testing.T) {
	restoreGlobals(t)
	recorder := tracetest.NewSpanRecorder()

	o, err := New(Options{
		ServiceName:    "customer-generator-test",
		TracingEnabled: true,
		Registerer:     promclient.NewRegistry(),
		SpanProcessors: []sdktrace.SpanProcessor{recorder},
	})
	require.NoError(t, err)

	_, span := o.StartSpan(context.Background(), "customer.submit", attribute.Int("customer.index", 2))
	span.End()
	require.NoError(t, o.Shutdown(context.Background()))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "customer.submit", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.Int("customer.index", 2))
}

func TestNilObservability_IsSafe(t *testing.T) {
	var o *Observability
	assert.NotPanics(t, func() {
		_, span := o.StartSpan(context.Background(), "noop")
		span.End()
		o.RecordCustomerProcessed(context.Background(), "failed")
		o.RecordCustomerDuration(context.Background(), time.Second, "failed")
		assert.NoError(t, o.Shutdown(context.Background()))
	})
}
