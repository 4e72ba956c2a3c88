// Package server exposes the summarization pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dtnitsch/smart-reader/models"
	"github.com/dtnitsch/smart-reader/pkg/summarize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds a /summarize request body.
const maxBodyBytes = 2 << 20

// Summarizer is the pipeline the server drives.
type Summarizer interface {
	Summarize(ctx context.Context, req models.SummaryRequest) (string, error)
}

type Server struct {
	summarizer Summarizer
	backend    summarize.Backend
	logger     *slog.Logger
}

func New(s Summarizer, backend summarize.Backend, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{summarizer: s, backend: backend, logger: logger}
}

// Router returns the HTTP handler with all routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(allowAnyOrigin)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/whoami", s.handleWhoAmI)
	r.Post("/summarize", s.handleSummarize)
	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Summarization service listening", "addr", addr, "backend", s.backend.Name(), "model", s.backend.Model())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("Shutting down summarization service")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Smart Reader summarization service is running",
		"backend": s.backend.Name(),
		"model":   s.backend.Model(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleWhoAmI checks the backend credentials. Backends without an account
// report ok.
func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	idr, ok := s.backend.(summarize.Identifier)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]string{"backend": s.backend.Name(), "status": "ok"})
		return
	}
	id, err := idr.WhoAmI(r.Context())
	if err != nil {
		s.logger.Warn("Whoami call failed", "backend", s.backend.Name(), "error", err)
		writeError(w, http.StatusBadGateway, fmt.Sprintf("whoami call failed: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"backend": s.backend.Name(), "status": id.Status, "body": id.Body})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     *string  `json:"text"`
		Ratio    *float64 `json:"ratio"`
		Level    string   `json:"level"`
		DoSample bool     `json:"do_sample"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return
	}
	if req.Text == nil {
		writeError(w, http.StatusUnprocessableEntity, "Field 'text' is required.")
		return
	}

	summary, err := s.summarizer.Summarize(r.Context(), models.SummaryRequest{
		Text:     *req.Text,
		Ratio:    req.Ratio,
		Level:    req.Level,
		DoSample: req.DoSample,
	})
	if err != nil {
		status := statusFor(err)
		if status >= 500 {
			s.logger.Error("Summarization failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		}
		writeError(w, status, detailFor(err))
		return
	}
	writeJSON(w, http.StatusOK, models.SummaryResponse{Summary: &summary})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrTooShortToSummarize):
		return http.StatusBadRequest
	case errors.Is(err, summarize.ErrUnexpectedResponse):
		return http.StatusInternalServerError
	}
	return http.StatusBadGateway
}

func detailFor(err error) string {
	if errors.Is(err, models.ErrTooShortToSummarize) {
		return "Text is too short to summarize."
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, models.ErrorResponse{Detail: detail})
}

// allowAnyOrigin lets browser pages call the service directly.
func allowAnyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
