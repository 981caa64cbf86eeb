// Package server exposes transcription and rhyme lookup as a JSON API.
//
// Endpoints:
//
//	GET  /api/transcribe?word=<word>
//	POST /api/transcribe   body: {"words":["..."]}
//	GET  /api/rhyme?word=<word>
//	GET  /api/health
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"codeberg.org/snonux/bgrhyme/internal/classify"
	"codeberg.org/snonux/bgrhyme/internal/logging"
	"codeberg.org/snonux/bgrhyme/internal/rhyme"
	"codeberg.org/snonux/bgrhyme/internal/transcribe"
)

const (
	// MaxBatchWords caps the number of words in one POST request.
	MaxBatchWords = 1000

	// MaxBodyBytes caps the size of a POST request body.
	MaxBodyBytes = 1 << 20
)

// Server answers API requests from a rhyme builder and, optionally, a set of
// prebuilt rhyme classes.
type Server struct {
	tr      *transcribe.Transcriber
	builder *rhyme.Builder
	classes *classify.Classes
	logger  *slog.Logger
	origins []string
}

// New creates a server. tr answers transcription requests and builder rhyme
// lookups. classes may be nil, in which case rhyme lookups return the key
// without class members.
func New(tr *transcribe.Transcriber, builder *rhyme.Builder, classes *classify.Classes, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{tr: tr, builder: builder, classes: classes, logger: logger}
}

// AllowOrigins restricts CORS to the given origins. The default allows all.
func (s *Server) AllowOrigins(origins ...string) {
	s.origins = origins
}

// Handler returns the routed API wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/transcribe", s.handleTranscribeWord)
	mux.HandleFunc("POST /api/transcribe", s.handleTranscribeBatch)
	mux.HandleFunc("GET /api/rhyme", s.handleRhyme)
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
	})

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	})
	return logging.Middleware(s.logger, c.Handler(mux))
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
