package inspect

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio-backdrop/internal/config"
	"portfolio-backdrop/internal/utils"
)

type Server struct {
	RunID string

	snap    *Snapshotter
	config  func() *config.Config
	started time.Time
	engine  *gin.Engine
	srv     *http.Server
}

// NewServer builds the routes. cfg is called per request so the handler
// always reports the live config.
func NewServer(snap *Snapshotter, cfg func() *config.Config) *Server {
	if !utils.DebugMode && gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		RunID:   uuid.NewString(),
		snap:    snap,
		config:  cfg,
		started: time.Now(),
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery(), requestLogger())
	s.routes()
	return s
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		utils.Debug("Inspector: %s %s %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"run_id":   s.RunID,
			"uptime_s": int64(time.Since(s.started).Seconds()),
		})
	})

	api := s.engine.Group("/api")

	api.GET("/field", func(c *gin.Context) {
		stats, ok := s.snap.Stats()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no frame published yet"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"run_id": s.RunID, "stats": stats})
	})

	api.GET("/field/positions", func(c *gin.Context) {
		stats, positions, ok := s.snap.Snapshot()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no frame published yet"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"seq":       stats.Seq,
			"count":     stats.Count,
			"positions": positions,
		})
	})

	api.GET("/config", func(c *gin.Context) {
		if s.config == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "config not available"})
			return
		}
		c.JSON(http.StatusOK, s.config())
	})
}

func (s *Server) Handler() http.Handler { return s.engine }

// Serve listens on addr until ctx is done.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.ServeListener(ctx, ln)
}

func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.srv = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Info("Inspector listening on http://%s (run %s)", ln.Addr(), s.RunID)
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}
