package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"customer-generator/internal/common/errors"
)

func TestClient_PostJSON(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Location", "http://localhost/customers/1")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ignored":true}`))
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	resp, err := client.PostJSON(context.Background(), server.URL+"/customers", []byte(`{"name":"Ala"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "http://localhost/customers/1", resp.Header.Get("location"))
	assert.Equal(t, `{"name":"Ala"}`, gotBody)
}

func TestClient_PostJSON_NonSuccessStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	resp, err := NewClient(time.Second).PostJSON(context.Background(), server.URL, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClient_PostJSON_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	_, err := NewClient(50*time.Millisecond).PostJSON(context.Background(), server.URL, []byte(`{}`))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeTransportFailed))
}

func TestClient_PostJSON_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	target := server.URL
	server.Close()

	_, err := NewClient(time.Second).PostJSON(context.Background(), target, []byte(`{}`))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeTransportFailed))
}

func TestClient_PostJSON_BadURL(t *testing.T) {
	_, err := NewClient(time.Second).PostJSON(context.Background(), "http://bad host/\x7f", []byte(`{}`))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRequestBuildFailed))
}

func TestClient_PostJSON_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := NewClient(time.Second).PostJSON(context.Background(), server.URL+"/customers", []byte(`{}`))
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "POST "+server.URL+"/customers", spans[0].Name())
}
