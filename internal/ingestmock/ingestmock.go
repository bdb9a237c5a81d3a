// Package ingestmock serves a stand-in for the ingestion service: a health
// probe and a sample endpoint that acknowledges how many rows it received.
package ingestmock

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"data-qc/internal/httputil"
)

// JobID is returned for every accepted sample.
const JobID = "job_12345"

// MaxRows bounds a single sample. Keep it in step with the validate tag on
// ingestRequest.Rows.
const MaxRows = 10000

// Rows are counted, not inspected, so any JSON element is accepted.
type ingestRequest struct {
	Rows []json.RawMessage `json:"rows" validate:"max=10000"` // max must equal MaxRows
}

type ingestResponse struct {
	Status       string `json:"status"`
	ReceivedRows int    `json:"received_rows"`
	JobID        string `json:"job_id"`
}

// Options configures the mock.
type Options struct {
	// Token, when set, is required as a bearer token on /ingest/sample.
	Token string
}

// NewRouter wires GET /health and POST /ingest/sample.
func NewRouter(log *slog.Logger, opts Options) *chi.Mux {
	r := httputil.NewRouter(log)
	r.Get("/health", httputil.HealthHandler())
	r.With(requireToken(log, opts.Token)).Post("/ingest/sample", ingestHandler(log))
	return r
}

func ingestHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ingestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(log, w, err)
			return
		}

		log.Info("sample received", "rows", len(req.Rows))
		httputil.WriteJSON(w, http.StatusOK, ingestResponse{
			Status:       "ok",
			ReceivedRows: len(req.Rows),
			JobID:        JobID,
		})
	}
}

func requireToken(log *slog.Logger, token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+token {
				httputil.Fail(log, w, "unauthorized", nil, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
