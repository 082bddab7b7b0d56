package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenhollow/almanac/internal/command"
	"github.com/greenhollow/almanac/internal/handler"
	"github.com/greenhollow/almanac/internal/logger"
	"github.com/greenhollow/almanac/internal/metrics"
	"github.com/greenhollow/almanac/internal/session"
	"github.com/greenhollow/almanac/internal/species"
	"github.com/greenhollow/almanac/internal/sse"
)

// Server is the engine's HTTP surface. Everything the text command interface
// can do is also reachable here, plus health, version and metrics endpoints.
type Server struct {
	httpServer *http.Server
}

// Deps carries the collaborators the router needs.
type Deps struct {
	Session     *session.Session
	CommandSvc  command.Service
	Catalog     *species.Catalog
	Health      handler.HealthChecker
	EventHub    *sse.Hub
	ServiceName string
	Version     string
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, deps Deps) *Server {
	r := chi.NewRouter()

	// Middleware stack, outermost first
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Health))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion(deps.ServiceName, deps.Version))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		timeHandler := handler.NewTimeHandler(deps.Session)
		r.Route("/time", func(r chi.Router) {
			r.Get("/", timeHandler.HandleGetTime)
			r.Post("/pause", timeHandler.HandlePause)
			r.Post("/resume", timeHandler.HandleResume)
			r.Post("/sleep", timeHandler.HandleSleep)
		})

		plantHandler := handler.NewPlantHandler(deps.Session)
		r.Route("/plants", func(r chi.Router) {
			r.Post("/", plantHandler.HandleSpawn)
			r.Get("/", plantHandler.HandleList)

			r.Route("/{plantID}", func(r chi.Router) {
				r.Get("/", plantHandler.HandleGet)
				r.Get("/status", plantHandler.HandleStatus)
				r.Post("/water", plantHandler.HandleWater)
				r.Post("/fertilize", plantHandler.HandleFertilize)
				r.Post("/harvest", plantHandler.HandleHarvest)
			})
		})

		sessionHandler := handler.NewSessionHandler(deps.Session, deps.Catalog)
		r.Get("/species", sessionHandler.HandleListSpecies)
		r.Route("/session", func(r chi.Router) {
			r.Post("/save", sessionHandler.HandleSave)
			r.Get("/region", sessionHandler.HandleGetRegion)
			r.Put("/region", sessionHandler.HandleSetRegion)
		})

		commandHandler := handler.NewCommandHandler(deps.CommandSvc)
		r.Post("/command", commandHandler.HandleExecute)

		if deps.EventHub != nil {
			r.Get("/events", sse.Handler(deps.EventHub))
		}
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics endpoints are scraped constantly; keep them out
		// of the request log.
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
