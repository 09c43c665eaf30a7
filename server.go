package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/ansel1/merry/v2"

	"github.com/gndm/ytTranscript/internal/batch"
	"github.com/gndm/ytTranscript/internal/config"
	"github.com/gndm/ytTranscript/internal/transcript"
	"github.com/gndm/ytTranscript/internal/ytdlp"
)

var startTime = time.Now()

// runServer serves the API and UI until ctx is done.
func runServer(ctx context.Context, cfg config.Config) error {
	base := cfg.Transcript()
	pipeline := batch.NewPipeline(ytdlp.NewClient(cfg.YtDlpBinary), transcript.Fetch, base, cfg.RequestsPerSecond)

	static, err := staticHandler(cfg.Dev)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: newMux(ctx, pipeline, transcript.Fetch, base, static),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on :%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("[server] shutting down")
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

func newMux(ctx context.Context, pipeline *batch.Pipeline, fetch batch.Fetcher, base transcript.Config, static http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/transcript", handleTranscript(fetch, base))
	mux.HandleFunc("POST /api/batch", handleBatch(ctx, pipeline))
	mux.HandleFunc("GET /api/batch/{id}", handleGetBatch(pipeline))
	mux.HandleFunc("GET /api/stats", handleStats)
	mux.Handle("GET /", static)
	return mux
}

type errorResponse struct {
	Error     string   `json:"error"`
	Kind      string   `json:"kind,omitempty"`
	Available []string `json:"available,omitempty"`
}

var kindStatus = map[transcript.Kind]int{
	transcript.KindResolutionFailed:   http.StatusBadRequest,
	transcript.KindVideoUnavailable:   http.StatusNotFound,
	transcript.KindNoTranscript:       http.StatusNotFound,
	transcript.KindLanguageNotFound:   http.StatusNotFound,
	transcript.KindTranscriptDisabled: http.StatusForbidden,
	transcript.KindRateLimited:        http.StatusTooManyRequests,
}

// statusFor maps taxonomy kinds to fixed codes and defers to the code
// attached by merry for everything else.
func statusFor(err error) int {
	if kind, ok := transcript.KindOf(err); ok {
		if code, ok := kindStatus[kind]; ok {
			return code
		}
	}
	return merry.HTTPCode(err)
}

func writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	var e *transcript.Error
	if errors.As(err, &e) {
		resp.Kind = e.Kind.String()
		resp.Available = e.Available
	}
	writeJSON(w, statusFor(err), resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] encoding response: %v", err)
	}
}

func handleTranscript(fetch batch.Fetcher, base transcript.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := strings.TrimSpace(r.URL.Query().Get("v"))
		if input == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "v is required"})
			return
		}

		cfg := base
		if lang := r.URL.Query().Get("lang"); lang != "" {
			cfg.Lang = lang
		}

		segments, err := fetch(r.Context(), input, cfg)
		if err != nil {
			log.Printf("[server] transcript %s: %v", input, err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, segments)
	}
}

type batchResponse struct {
	SessionID string `json:"session_id"`
}

func handleBatch(ctx context.Context, pipeline *batch.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req batch.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		if req.URL == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url is required"})
			return
		}
		if !isValidYouTubeURL(req.URL) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid YouTube URL"})
			return
		}

		id := pipeline.Start(ctx, req)
		writeJSON(w, http.StatusOK, batchResponse{SessionID: id})
	}
}

func handleGetBatch(pipeline *batch.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := pipeline.GetSession(r.PathValue("id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
			return
		}
		writeJSON(w, http.StatusOK, session)
	}
}

type statsResponse struct {
	MemoryMB   float64 `json:"memory_mb"`
	Goroutines int     `json:"goroutines"`
	UptimeSec  float64 `json:"uptime_sec"`
}

func handleStats(w http.ResponseWriter, _ *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	writeJSON(w, http.StatusOK, statsResponse{
		MemoryMB:   float64(m.Alloc) / 1024 / 1024,
		Goroutines: runtime.NumGoroutine(),
		UptimeSec:  time.Since(startTime).Seconds(),
	})
}

func isValidYouTubeURL(url string) bool {
	return strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be")
}
