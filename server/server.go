package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/gtfs-departures/config"
	"github.com/theoremus-urban-solutions/gtfs-departures/departures"
	"github.com/theoremus-urban-solutions/gtfs-departures/formatter"
	"github.com/theoremus-urban-solutions/gtfs-departures/metrics"
)

// Server serves departure boards for one assembled feed.
type Server struct {
	engine   *departures.Engine
	metrics  *metrics.Collector
	builder  *formatter.ResponseBuilder
	cfg      config.ServerConfig
	loadedAt time.Time

	http *http.Server
}

// New builds a server. collector may be nil, in which case /metrics is not mounted.
func New(engine *departures.Engine, cfg config.ServerConfig, collector *metrics.Collector) *Server {
	return &Server{
		engine:   engine,
		metrics:  collector,
		builder:  formatter.NewResponseBuilder(),
		cfg:      cfg,
		loadedAt: time.Now(),
	}
}

func (s *Server) Router() http.Handler {
	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/feed/validity", s.handleFeedValidity)
	r.Get("/api/departures.json", s.handleDeparturesJSON)
	r.Get("/api/departures.xml", s.handleDeparturesXML)
	r.Get("/api/stops/{stopID}", s.handleStop)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}
	return r
}

func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()
	log.Info().Str("addr", addr).Msg("Server listening")
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM, then drains the server.
func (s *Server) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info().Msg("Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Server shutdown error")
		} else {
			log.Info().Msg("Server shut down successfully")
		}
	}
}
