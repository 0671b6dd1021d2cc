package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nexten/smartmatch/internal/db"
	"github.com/nexten/smartmatch/internal/engine"
	"github.com/nexten/smartmatch/internal/geo"
	"github.com/nexten/smartmatch/internal/scoring"
	"github.com/nexten/smartmatch/internal/server/ratelimit"
	"github.com/nexten/smartmatch/internal/weights"
)

// Server represents the HTTP server.
type Server struct {
	httpServer     *http.Server
	engine         *engine.Engine
	catalog        *weights.Catalog
	database       *db.DB
	rateLimiter    *ratelimit.Limiter
	logger         *zap.Logger
	defaultProfile string
	parallelism    int
}

// Config holds server configuration.
type Config struct {
	Port               int
	DatabaseURL        string
	DistanceServiceURL string
	DistanceTimeout    time.Duration
	ProfilesFile       string
	DefaultProfile     string
	Parallelism        int
	Logger             *zap.Logger
}

// New creates a new server instance. An empty DatabaseURL runs the server
// without persistence; an empty DistanceServiceURL runs the location scorer
// without its external tier.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog := weights.NewCatalog()
	if cfg.ProfilesFile != "" {
		if err := catalog.LoadProfilesFile(cfg.ProfilesFile); err != nil {
			return nil, fmt.Errorf("failed to load weight profiles: %w", err)
		}
	}

	defaultProfile := cfg.DefaultProfile
	if defaultProfile == "" {
		defaultProfile = weights.DefaultProfile
	}
	if _, err := catalog.Base(defaultProfile); err != nil {
		return nil, fmt.Errorf("invalid default profile: %w", err)
	}

	var distancer geo.Distancer
	if cfg.DistanceServiceURL != "" {
		client := geo.NewClient(geo.ClientConfig{
			BaseURL: cfg.DistanceServiceURL,
			Timeout: cfg.DistanceTimeout,
		})
		distancer = geo.NewCachedDistancer(client, geo.CacheConfig{})
	}

	s := &Server{
		catalog:        catalog,
		logger:         logger,
		defaultProfile: defaultProfile,
		parallelism:    cfg.Parallelism,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.database = database
	}

	s.engine = engine.New(engine.Options{
		Registry: scoring.DefaultRegistry(distancer),
		Catalog:  catalog,
		Logger:   logger,
	})

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // large batches take time
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler assembles the route table with the middleware stack. Exposed for
// tests to drive the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /match", s.handleMatch)
	mux.HandleFunc("POST /match/batch", s.handleMatchBatch)
	mux.HandleFunc("GET /algorithms", s.handleAlgorithms)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Persistence endpoints; respond 501 when no database is configured.
	mux.HandleFunc("GET /matches", s.handleListMatches)
	mux.HandleFunc("GET /matches/{id}", s.handleGetMatch)
	mux.HandleFunc("DELETE /matches/{id}", s.handleDeleteMatch)
	mux.HandleFunc("PUT /candidates/{id}", s.handlePutCandidate)
	mux.HandleFunc("GET /candidates/{id}", s.handleGetCandidate)
	mux.HandleFunc("PUT /jobs/{id}", s.handlePutJob)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.database != nil {
		s.database.Close()
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers.
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

// withRateLimit charges one token per request. Batch handlers charge the
// remaining pair cost themselves once the payload size is known.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), 1)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// extractClientID extracts the client identifier from the request, falling
// back to the raw RemoteAddr when it carries no port.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// rateLimitResponse writes the 429 envelope with a Retry-After hint.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())+1))
	}
	s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON envelope.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFor maps a domain error onto the envelope via HTTPStatus.
func (s *Server) errorFor(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}
