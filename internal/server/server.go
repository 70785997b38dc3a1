// =============================================================================
// Journal Order Builder - HTTP Server
// =============================================================================
//
// The HTTP surface around the two features:
//   - The journal pipeline (upload -> results -> workbook/problem report)
//   - The independent CSV filter (upload -> toggled re-filtering -> CSV)
//
// Every route is a thin JSON adapter over the core packages: it parses the
// request, calls into internal/journal or internal/filter, and stores or
// fetches derived tables through the TTL session store. Unexpected
// failures are logged with full detail and reported to the caller as a
// generic message.
//
// =============================================================================

package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/arenabooks/journal-order/internal/config"
	"github.com/arenabooks/journal-order/internal/session"
	"github.com/gin-gonic/gin"
)

// Server wires the router, the session store and the configuration.
type Server struct {
	cfg      *config.Config
	log      *slog.Logger
	sessions *session.Store
	http     *http.Server
	router   *gin.Engine
}

// New builds a Server ready to start.
func New(cfg *config.Config, log *slog.Logger) *Server {
	s := &Server{
		cfg: cfg,
		log: log,
		sessions: session.New(
			time.Duration(cfg.Session.TTLMinutes)*time.Minute,
			time.Duration(cfg.Session.CleanupMinutes)*time.Minute,
		),
	}
	s.router = s.buildRouter()
	s.http = &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: s.router,
	}
	return s
}

// Router exposes the gin engine, primarily for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start begins serving. Blocks until the listener fails or the server is
// shut down.
func (s *Server) Start() error {
	s.log.Info("http server starting", "addr", s.cfg.Server.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("http server shutting down")
	return s.http.Shutdown(ctx)
}

// buildRouter assembles middleware and routes.
func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(RequestLogger(s.log))
	r.Use(Recovery(s.log))
	r.MaxMultipartMemory = s.cfg.Server.MaxUploadMB << 20

	jh := &journalHandler{cfg: s.cfg, log: s.log, sessions: s.sessions}
	fh := &filterHandler{cfg: s.cfg, log: s.log, sessions: s.sessions}

	api := r.Group("/api")
	{
		api.POST("/journal", jh.Upload)
		api.GET("/journal/:id", jh.Results)
		api.GET("/journal/:id/workbook", jh.Workbook)
		api.GET("/journal/:id/problems", jh.Problems)

		api.POST("/filter", fh.Upload)
		api.POST("/filter/:id", fh.Apply)
		api.GET("/filter/:id/rows", fh.Rows)
		api.GET("/filter/:id/summary", fh.SummaryCSV)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
