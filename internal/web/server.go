// Package web serves the HTTP API for running ad-hoc extractions and
// browsing stored results.
package web

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/abbrev-extract/internal/store"
	"github.com/abbrev-extract/internal/web/handlers"
	"github.com/abbrev-extract/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config     *Config
	db         *sql.DB
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a new web server instance
func NewServer(config *Config) (*Server, error) {
	db, err := sql.Open("postgres", config.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure database connection pool
	db.SetMaxOpenConns(config.Database.MaxConnections)
	db.SetMaxIdleConns(config.Database.MaxConnections / 2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	server := &Server{
		config: config,
		db:     db,
	}

	if err := server.setupRoutes(); err != nil {
		db.Close()
		return nil, err
	}

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      server.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() error {
	s.router = mux.NewRouter()

	st := store.New(s.db)

	pairsHandler := &handlers.PairsHandler{Store: st}
	runsHandler := &handlers.RunsHandler{Store: st}
	statsHandler := &handlers.StatsHandler{Store: st}

	// API routes
	api := s.router.PathPrefix("/api").Subrouter()

	// Ad-hoc extraction endpoint (if enabled)
	if s.config.Features.AdHocExtractEnabled {
		extractHandler, err := handlers.NewExtractHandler(s.config.Features.CacheSize)
		if err != nil {
			return fmt.Errorf("extract handler: %w", err)
		}
		api.HandleFunc("/extract", extractHandler.Extract).Methods("POST")
	}

	// Stored result endpoints
	api.HandleFunc("/pairs", pairsHandler.ListPairs).Methods("GET")
	api.HandleFunc("/pairs/{abbrev}", pairsHandler.GetPair).Methods("GET")
	api.HandleFunc("/runs", runsHandler.ListRuns).Methods("GET")
	api.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	// Apply middleware
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogging())

	if s.config.Auth.Enabled {
		// Apply authentication middleware to API routes only
		api.Use(middleware.APIKey(s.config.Auth.APIKey))
	}

	return nil
}

// Start starts the web server
func (s *Server) Start() error {
	// Setup graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Start server in background
	go func() {
		fmt.Printf("Starting server on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server error: %v\n", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	fmt.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("Server shutdown error: %v\n", err)
	}

	if err := s.db.Close(); err != nil {
		fmt.Printf("Database close error: %v\n", err)
	}

	fmt.Println("Server stopped")
	return nil
}
