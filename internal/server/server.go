// Package server hosts the browser preview surface: a page that loads the
// renderer SDK, a websocket hub pushing previews to it, and a small JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
	"github.com/alexisbeaulieu97/qdxstudio/internal/logger"
	"github.com/alexisbeaulieu97/qdxstudio/internal/preview"
)

const (
	readTimeout  = 15 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second

	// SocketPath is where preview surfaces connect.
	SocketPath = "/ws"
)

// CatalogSource provides the code table served by /api/catalog.
type CatalogSource interface {
	Load(ctx context.Context) (catalog.CodeTable, catalog.Source)
}

// BuiltinCatalog serves the compiled-in code table.
type BuiltinCatalog struct{}

// Load returns catalog.Builtin.
func (BuiltinCatalog) Load(context.Context) (catalog.CodeTable, catalog.Source) {
	return catalog.Builtin(), catalog.SourceBuiltin
}

// Options configures a Server.
type Options struct {
	Addr         string
	AllowOrigins []string
	Page         *preview.Page
	Catalog      CatalogSource
	// Inbound receives messages from connected surfaces. Nil discards them.
	Inbound InboundHandler
	Logger  *logger.Logger
}

// Server wraps the HTTP server and the websocket hub.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	hub        *Hub
	page       *preview.Page
	catalog    CatalogSource
	log        *logger.Logger

	mu      sync.Mutex
	stopHub context.CancelFunc
}

// New builds the router and hub. The hub loop starts with Start, or with
// RunHub when the handler is served by something else.
func New(opts Options) *Server {
	if opts.Page == nil {
		opts.Page = preview.NewPage(nil)
	}
	if opts.Catalog == nil {
		opts.Catalog = BuiltinCatalog{}
	}
	log := opts.Logger.Component("server")

	s := &Server{
		hub:     NewHub(opts.Inbound, opts.Logger),
		page:    opts.Page,
		catalog: opts.Catalog,
		log:     log,
	}
	s.router = s.routes(opts.AllowOrigins)
	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Hub returns the websocket hub, which is the preview.Surface for browsers.
func (s *Server) Hub() *Hub { return s.hub }

// Addr is the configured listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// RunHub starts the hub loop until ctx is cancelled or Stop is called.
// Calls after the first are no-ops.
func (s *Server) RunHub(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopHub != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.stopHub = cancel
	go s.hub.Run(ctx)
}

// Start runs the hub and listens until Stop is called.
func (s *Server) Start() error {
	s.RunHub(context.Background())
	s.log.Info("starting preview server", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start preview server: %w", err)
	}
	return nil
}

// Stop shuts down the HTTP server and the hub.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("shutting down preview server")
	err := s.httpServer.Shutdown(ctx)
	s.mu.Lock()
	if s.stopHub != nil {
		s.stopHub()
	}
	s.mu.Unlock()
	return err
}

func (s *Server) routes(allowOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(allowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowOrigins
	}
	r.Use(cors.New(cfg))

	r.GET("/", s.handleSurface)
	r.GET(SocketPath, func(c *gin.Context) { s.hub.ServeWS(c.Writer, c.Request) })

	api := r.Group("/api")
	api.GET("/catalog", s.handleCatalog)
	api.GET("/themes", s.handleThemes)
	api.POST("/payload", s.handlePayload)
	api.POST("/html", s.handleHTML)
	return r
}
