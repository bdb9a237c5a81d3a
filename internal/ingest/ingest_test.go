package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"data-qc/internal/dataset"
	"data-qc/internal/ingestmock"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"200 is healthy", http.StatusOK, true},
		{"500 is unhealthy", http.StatusInternalServerError, false},
		{"204 is unhealthy", http.StatusNoContent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/health", r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewClient(srv.URL+"/", "")
			assert.Equal(t, tt.want, c.Healthy(context.Background()))
			assert.Equal(t, tt.status, c.Health(context.Background()).StatusCode)
		})
	}
}

func TestHealthUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, "")
	status := c.Health(context.Background())
	assert.False(t, status.OK)
	assert.Zero(t, status.StatusCode)
}

func TestHealthBadURL(t *testing.T) {
	assert.False(t, NewClient("://nope", "").Healthy(context.Background()))
}

func TestSend(t *testing.T) {
	var (
		gotAuth  string
		gotReqID string
		gotBody  map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ingest/sample", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","received_rows":1,"job_id":"job_12345"}` + "\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token-123")
	resp, err := c.Send(context.Background(), "/ingest/sample", map[string]any{"rows": []any{map[string]any{"a": 1}}})
	require.NoError(t, err)

	assert.Equal(t, `{"status":"ok","received_rows":1,"job_id":"job_12345"}`, string(resp))
	assert.Equal(t, "Bearer token-123", gotAuth)
	_, err = uuid.Parse(gotReqID)
	assert.NoError(t, err)
	assert.Len(t, gotBody["rows"], 1)
}

func TestSendWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Send(context.Background(), "ingest/sample", map[string]any{})
	require.NoError(t, err)
}

func TestSendNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Send(context.Background(), "ingest/sample", map[string]any{})
	require.Error(t, err)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "502")
}

func TestSendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "").Send(context.Background(), "ingest/sample", map[string]any{})
	assert.Error(t, err)
}

func TestSendSampleAgainstMock(t *testing.T) {
	router := ingestmock.NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), ingestmock.Options{Token: "s3cret"})
	srv := httptest.NewServer(router)
	defer srv.Close()

	ds := dataset.Generate(25, dataset.DefaultSeed)

	c := NewClient(srv.URL, "s3cret")
	require.True(t, c.Healthy(context.Background()))
	resp, err := c.SendSample(context.Background(), ds, SampleRows)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","received_rows":20,"job_id":"job_12345"}`, string(resp))

	_, err = NewClient(srv.URL, "wrong").SendSample(context.Background(), ds, SampleRows)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}
