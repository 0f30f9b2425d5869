package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rpimon-api/collector"
	"rpimon-api/config"
)

// shutdownTimeout bounds how long in-flight requests may take on shutdown
const shutdownTimeout = 10 * time.Second

// Server maps the HTTP routes to the collector.
type Server struct {
	cfg       *config.Config
	collector *collector.Collector
	logger    *zap.Logger
	engine    *gin.Engine
}

func NewServer(cfg *config.Config, c *collector.Collector, logger *zap.Logger) *Server {
	gin.SetMode(cfg.GinMode)

	s := &Server{
		cfg:       cfg,
		collector: c,
		logger:    logger.Named("api"),
		engine:    gin.New(),
	}
	s.engine.Use(requestID(), accessLog(s.logger), gin.Recovery())
	s.routes()

	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleRoot)
	s.engine.GET("/healthz", s.handleHealth)

	v1 := s.engine.Group("/v1")
	v1.GET("/cpu", s.handleCPU)
	v1.GET("/cpuavg", s.handleCPU)
	v1.GET("/mem", s.handleMemory)
	v1.GET("/raminfo", s.handleMemory)
	v1.GET("/disk", s.handleDisk)
	v1.GET("/net", s.handleNetwork)
	v1.GET("/host", s.handleHost)
	v1.GET("/all", s.handleAll)
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.ListenAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

// collectContext bounds one collection pass by the configured timeout.
func (s *Server) collectContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), s.cfg.CollectTimeout)
}

func (s *Server) unit(c *gin.Context) string {
	return c.DefaultQuery("unit", s.cfg.DefaultUnit)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCPU(c *gin.Context) {
	c.JSON(http.StatusOK, s.collector.ReadCPUInfo().AsMap())
}

func (s *Server) handleMemory(c *gin.Context) {
	c.JSON(http.StatusOK, s.collector.ReadRAMInfo().AsMap(s.unit(c)))
}

func (s *Server) handleDisk(c *gin.Context) {
	ctx, cancel := s.collectContext(c)
	defer cancel()

	unit := s.unit(c)
	disks := s.collector.ReadDisksInfo(ctx)

	payload := make(map[string]any, len(disks))
	for device, d := range disks {
		payload[device] = d.AsMap(unit)
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleNetwork(c *gin.Context) {
	ctx, cancel := s.collectContext(c)
	defer cancel()

	unit := s.unit(c)
	ifaces := s.collector.ReadNetInfo(ctx)

	payload := make(map[string]any, len(ifaces))
	for name, iface := range ifaces {
		payload[name] = iface.AsMap(unit)
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleHost(c *gin.Context) {
	ctx, cancel := s.collectContext(c)
	defer cancel()

	c.JSON(http.StatusOK, s.collector.ReadHostInfo(ctx))
}

func (s *Server) handleAll(c *gin.Context) {
	ctx, cancel := s.collectContext(c)
	defer cancel()

	c.JSON(http.StatusOK, s.collector.CollectMetrics(ctx).AsMap(s.unit(c)))
}
