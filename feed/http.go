package feed

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/crashx/core"
	"github.com/lixenwraith/crashx/parameter"
	"github.com/lixenwraith/crashx/round"
	"github.com/lixenwraith/crashx/status"
)

// HTTPSource accepts pushed snapshots on POST /round and exposes health and metrics
type HTTPSource struct {
	addr    string
	reg     *status.Registry
	in      ingest
	started time.Time
	last    round.Store

	mu       sync.Mutex
	listener net.Addr
}

func NewHTTPSource(addr string, log zerolog.Logger, reg *status.Registry) *HTTPSource {
	return &HTTPSource{
		addr:    addr,
		reg:     reg,
		in:      newIngest("http", log, reg),
		started: time.Now(),
	}
}

// Addr returns the bound listen address once Run is serving
func (s *HTTPSource) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listener
}

// Handler builds the router; every accepted snapshot goes to sink
func (s *HTTPSource) Handler(sink Sink) http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLog())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(s.started).String(),
		})
	})

	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.reg.Snapshot())
	})

	router.GET("/round", func(c *gin.Context) {
		st, ok := s.last.Load()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no round received"})
			return
		}
		c.JSON(http.StatusOK, st)
	})

	router.POST("/round", func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, parameter.FeedReadLimit)
		data, err := c.GetRawData()
		if err != nil {
			code := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				code = http.StatusRequestEntityTooLarge
			}
			c.JSON(code, gin.H{"error": err.Error()})
			return
		}
		st, err := round.Decode(data)
		if err != nil {
			s.in.errors.Add(1)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.last.Set(st)
		_ = s.in.pushState(sink, st)
		c.JSON(http.StatusAccepted, gin.H{"status": st.Status.String()})
	})

	return router
}

func (s *HTTPSource) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.in.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("code", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

func (s *HTTPSource) Run(ctx context.Context, sink Sink) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.mu.Lock()
	s.listener = ln.Addr()
	s.mu.Unlock()

	srv := &http.Server{
		Handler:           s.Handler(sink),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	core.Go(func() {
		errCh <- srv.Serve(ln)
	})
	s.in.log.Info().Stringer("addr", ln.Addr()).Msg("push endpoint listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), parameter.FeedShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
