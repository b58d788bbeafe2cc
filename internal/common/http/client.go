// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"customer-generator/internal/common/errors"
)

const tracerName = "customer-generator/http"

// Response is what callers of PostJSON get back. The body is drained and discarded,
// the customer service contract only carries information in the status and headers.
type Response struct {
	StatusCode int
	Header     http.Header
}

type Client struct {
	httpClient *http.Client
	tracer     trace.Tracer
}

func NewClient(timeout time.Duration) *Client {
	return NewClientWith(&http.Client{Timeout: timeout})
}

// NewClientWith wraps an existing http.Client, e.g. an httptest server client.
func NewClientWith(hc *http.Client) *Client {
	return &Client{
		httpClient: hc,
		tracer:     otel.Tracer(tracerName),
	}
}

// PostJSON sends body to target with Content-Type application/json.
// Any HTTP status is a successful exchange; only transport problems are errors.
func (c *Client) PostJSON(ctx context.Context, target string, body []byte) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "POST "+target, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", http.MethodPost),
		attribute.String("url.full", target),
		attribute.Int("http.request.body.size", len(body)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return nil, errors.NewRequestBuildFailedError(target, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return nil, errors.NewTransportFailedError(target, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read response")
		return nil, errors.NewTransportFailedError(target, err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}, nil
}
