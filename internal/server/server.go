// Package server provides the HTTP REST API for the cover letter agent.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/cover-letter-agent/internal/llm"
	"github.com/jonathan/cover-letter-agent/internal/store"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	client     llm.Client
	store      *store.Store
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
}

// New creates a server instance. The LLM client may be nil: generation
// then degrades to the offline template tier. The store may also be
// nil, which disables the persistence endpoints.
func New(cfg Config) (*Server, error) {
	var client llm.Client
	if cfg.APIKey != "" {
		c, err := llm.NewGeminiClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		client = c
	}

	var st *store.Store
	if cfg.DatabaseURL != "" {
		s, err := store.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := s.Migrate(context.Background()); err != nil {
			s.Close()
			return nil, err
		}
		st = s
	}

	return newWithDeps(cfg, client, st), nil
}

// newWithDeps wires a server around already-constructed dependencies.
// Tests use it to inject a scripted client.
func newWithDeps(cfg Config, client llm.Client, st *store.Store) *Server {
	s := &Server{client: client, store: st}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /generate/stream", s.handleGenerateStream)
	mux.HandleFunc("POST /gaps", s.handleGaps)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Persistence endpoints
	mux.HandleFunc("POST /profiles", s.handleSaveProfile)
	mux.HandleFunc("GET /profiles/{id}", s.handleGetProfile)
	mux.HandleFunc("POST /job-postings", s.handleSaveJobPosting)
	mux.HandleFunc("GET /job-postings", s.handleListJobPostings)
	mux.HandleFunc("GET /job-postings/{id}", s.handleGetJobPosting)
	mux.HandleFunc("GET /letters", s.handleListLetters)
	mux.HandleFunc("GET /letters/{id}", s.handleGetLetter)
	mux.HandleFunc("PUT /letters/{id}", s.handleUpdateLetter)
	mux.HandleFunc("DELETE /letters/{id}", s.handleDeleteLetter)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for multi-stage generation
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.client != nil {
		_ = s.client.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := map[string]any{
		"status":   "ok",
		"llm":      s.client != nil,
		"database": s.store != nil,
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// requireStore returns false and writes a 503 when persistence is not
// configured.
func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Persistence is not configured")
		return false
	}
	return true
}
