package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/cors"

	"github.com/shonlittle/acme-invoice/internal/worker"
)

// Server is a thin HTTP wrapper over the pipeline. It does not touch
// business logic: every request resolves to one pipeline run whose
// result record is returned verbatim.
type Server struct {
	runner     worker.Runner
	samplesDir string
}

// New creates a server over a pipeline runner.
func New(runner worker.Runner, samplesDir string) *Server {
	return &Server{runner: runner, samplesDir: samplesDir}
}

// Handler builds the HTTP handler with CORS for local dev frontends.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/samples", s.handleSamples)
	mux.HandleFunc("/api/process", s.handleProcess)
	mux.HandleFunc("/api/process-sample", s.handleProcessSample)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(mux)
}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

type sampleFile struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

type samplesResponse struct {
	Samples []sampleFile `json:"samples"`
}

func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := samplesResponse{Samples: []sampleFile{}}

	entries, err := os.ReadDir(s.samplesDir)
	if err != nil {
		// Missing samples dir is an empty list, not an error
		writeJSON(w, http.StatusOK, resp)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		resp.Samples = append(resp.Samples, sampleFile{
			Filename: entry.Name(),
			Path:     filepath.Join(s.samplesDir, entry.Name()),
		})
	}
	sort.Slice(resp.Samples, func(i, j int) bool {
		return resp.Samples[i].Filename < resp.Samples[j].Filename
	})

	writeJSON(w, http.StatusOK, resp)
}

// handleProcess accepts a multipart upload, spools it to a temp file
// with its original extension (the extractor dispatches on it), and runs
// the pipeline.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	ext := filepath.Ext(header.Filename)
	tmp, err := os.CreateTemp("", "invoice-*"+ext)
	if err != nil {
		http.Error(w, "spool upload", http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		http.Error(w, "spool upload", http.StatusInternalServerError)
		return
	}
	if err := tmp.Close(); err != nil {
		http.Error(w, "spool upload", http.StatusInternalServerError)
		return
	}

	result := s.runner.Process(r.Context(), tmpPath)
	// The temp path is an implementation detail; report the upload name
	result.InvoicePath = header.Filename

	writeJSON(w, http.StatusOK, result)
}

type processSampleRequest struct {
	Path string `json:"path"`
}

// handleProcessSample runs the pipeline on a named sample file. The path
// must resolve inside the samples directory.
func (s *Server) handleProcessSample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req processSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	clean := filepath.Clean(req.Path)
	base, err := filepath.Abs(s.samplesDir)
	if err != nil {
		http.Error(w, "resolve samples directory", http.StatusInternalServerError)
		return
	}
	abs, err := filepath.Abs(clean)
	if err != nil || !strings.HasPrefix(abs, base+string(os.PathSeparator)) {
		http.Error(w, "path outside samples directory", http.StatusBadRequest)
		return
	}

	if _, err := os.Stat(abs); err != nil {
		http.Error(w, "sample not found", http.StatusNotFound)
		return
	}

	result := s.runner.Process(r.Context(), abs)
	writeJSON(w, http.StatusOK, result)
}

// ListenAndServe runs the server until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string, allowedOrigins []string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(allowedOrigins),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
