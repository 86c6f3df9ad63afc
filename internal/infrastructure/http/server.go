// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
package http

import (
	"context"
	"errors"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"

	"github.com/0xcro3dile/assessiq-helpdesk/internal/adapters/render"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/entities"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/usecases"
)

// Options configures the HTTP server.
type Options struct {
	Addr        string
	Mode        string        // gin mode: debug, release, test
	TypingDelay time.Duration // pause between streamed words, cosmetic only
	Gatherer    prometheus.Gatherer
}

// Server is the HTTP server for the help desk API and chat UI.
type Server struct {
	queryUseCase *usecases.QueryUseCase
	opts         Options
	engine       *gin.Engine
}

// queryRequest is the JSON body of POST /api/query.
type queryRequest struct {
	Query string `json:"query" form:"query"`
}

// queryResponse is the JSON answer of POST /api/query.
type queryResponse struct {
	ID       string `json:"id"`
	Answer   string `json:"answer"`
	HTML     string `json:"html"`
	Topic    string `json:"topic,omitempty"`
	Fallback bool   `json:"fallback"`
}

// NewServer creates a new HTTP server.
func NewServer(queryUC *usecases.QueryUseCase, opts Options) *Server {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}

	s := &Server{
		queryUseCase: queryUC,
		opts:         opts,
	}
	s.engine = s.routes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), loggingMiddleware())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/query/stream"})))

	// UI
	r.GET("/", s.handleIndex)

	// API
	api := r.Group("/api")
	{
		api.POST("/query", s.handleQuery)
		api.GET("/query/stream", s.handleQueryStream) // SSE streaming
		api.GET("/health", s.handleHealth)
	}

	if s.opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))
	}

	return r
}

// Start runs the HTTP server until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 300 * time.Second, // Longer for streaming
	}

	klog.Infof("help desk server starting on %s", s.opts.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			klog.Errorf("server shutdown: %v", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleQuery answers a question. JSON requests get JSON back; form posts get
// an HTML fragment for the chat transcript. Empty questions get the fallback.
func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := s.queryUseCase.Query(c.Request.Context(), &entities.ChatRequest{Query: req.Query})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	rendered := string(render.HTML(resp.Answer))
	if c.ContentType() == gin.MIMEJSON {
		c.JSON(http.StatusOK, queryResponse{
			ID:       resp.ID,
			Answer:   resp.Answer,
			HTML:     rendered,
			Topic:    resp.Topic,
			Fallback: resp.Fallback,
		})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(
		`<div class="message user">`+html.EscapeString(req.Query)+`</div>`+
			`<div class="message assistant" id="`+resp.ID+`">`+rendered+`</div>`))
}

// handleQueryStream answers over SSE. The answer is chosen before the first
// event is written; the per-word delay only paces delivery.
func (s *Server) handleQueryStream(c *gin.Context) {
	ctx := c.Request.Context()

	resp, err := s.queryUseCase.Query(ctx, &entities.ChatRequest{Query: c.Query("q")})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	// c.SSEvent sets Content-Type to text/event-stream;charset=utf-8.
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	for _, chunk := range strings.SplitAfter(resp.Answer, " ") {
		if !s.pause(ctx) {
			return
		}
		c.SSEvent("message", gin.H{"content": chunk, "done": false})
		c.Writer.Flush()
	}

	c.SSEvent("message", gin.H{
		"id":       resp.ID,
		"html":     string(render.HTML(resp.Answer)),
		"topic":    resp.Topic,
		"fallback": resp.Fallback,
		"done":     true,
	})
	c.Writer.Flush()
}

// pause waits for the typing delay. It returns false if ctx ends first.
func (s *Server) pause(ctx context.Context) bool {
	if s.opts.TypingDelay <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(s.opts.TypingDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// handleHealth returns server health status.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"entries": s.queryUseCase.KnowledgeBase().Len(),
	})
}

func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		klog.V(2).Infof("%s %s %d %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
