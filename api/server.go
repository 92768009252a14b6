package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/audioengine/api/types"
	"github.com/killallgit/audioengine/internal/database"
)

// Options configures the HTTP server and its global middleware
type Options struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxHeaderBytes int
	EnableCORS     bool
	CORSOrigins    []string
	RateLimit      RateLimitOptions
}

// RateLimitOptions configures the per-client limiter on the waveform route
type RateLimitOptions struct {
	Enabled bool
	RPS     int
	Burst   int
}

// Server represents the HTTP server
type Server struct {
	engine             *gin.Engine
	httpServer         *http.Server
	db                 *database.DB
	opts               Options
	rateLimiters       *sync.Map
	cleanupInitialized sync.Once
	cleanupStop        chan struct{}
	stopOnce           sync.Once

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server
func NewServer(address string, opts Options) *Server {
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	// Long decodes hold the response open
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Minute
	}
	if opts.MaxHeaderBytes <= 0 {
		opts.MaxHeaderBytes = 1 << 20 // 1 MB
	}

	// Create Gin engine with recovery middleware only
	engine := gin.New()
	engine.Use(gin.Recovery())

	server := &Server{
		engine:       engine,
		opts:         opts,
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
		httpServer: &http.Server{
			Addr:           address,
			Handler:        engine,
			ReadTimeout:    opts.ReadTimeout,
			WriteTimeout:   opts.WriteTimeout,
			IdleTimeout:    30 * time.Second,
			MaxHeaderBytes: opts.MaxHeaderBytes,
		},
	}

	return server
}

// SetDatabase sets the database connection
func (s *Server) SetDatabase(db *database.DB) {
	s.db = db
	if s.dependencies == nil {
		s.dependencies = &types.Dependencies{}
	}
	s.dependencies.DB = db
}

// SetDependencies sets all handler dependencies
func (s *Server) SetDependencies(deps *types.Dependencies) {
	s.dependencies = deps
	if deps != nil && deps.DB != nil {
		s.db = deps.DB
	}
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the address the server listens on
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	// Setup global middleware
	s.setupMiddleware()

	// Setup routes
	if err := s.setupRoutes(); err != nil {
		return err
	}

	return nil
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	// Logger middleware
	s.engine.Use(gin.Logger())

	if s.opts.EnableCORS {
		s.engine.Use(CORS(s.opts.CORSOrigins))
	}

	// Global request size limit
	s.engine.Use(RequestSizeLimit())
}

// setupRoutes delegates to the main route registration
func (s *Server) setupRoutes() error {
	var limit gin.HandlerFunc
	if s.opts.RateLimit.Enabled {
		limit = PerClientRateLimit(s.rateLimiters, s.cleanupStop, &s.cleanupInitialized, s.opts.RateLimit.RPS, s.opts.RateLimit.Burst)
	}
	return RegisterRoutes(s.engine, s.dependencies, limit)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Stop the rate limiter cleanup goroutine
	s.stopOnce.Do(func() {
		close(s.cleanupStop)
	})

	return s.httpServer.Shutdown(ctx)
}
