package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spm-engineering/billing-service/internal/auth"
	"github.com/spm-engineering/billing-service/internal/config"
	"github.com/spm-engineering/billing-service/internal/handlers"
	"github.com/spm-engineering/billing-service/internal/logging"
)

// Options carries the optional collaborators of the HTTP layer.
type Options struct {
	// RateStore backs the PIN rate limiter. Nil disables limiting.
	RateStore CounterStore
	Tokens    *auth.TokenIssuer
}

type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	opts     Options
	http     *http.Server
	logger   *logging.Logger
}

func New(h *handlers.Handlers, cfg *config.Config, opts Options) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.RegisterValidators()

	router := gin.New()
	logger := logging.NewLogger("http")

	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(logger))
	router.Use(Metrics())
	router.Use(CORS(cfg))

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
		opts:     opts,
		logger:   logger,
	}
	s.setupRoutes()

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

func (s *Server) setupRoutes() {
	h := s.handlers

	s.router.GET("/health", h.Health)
	s.router.GET("/ready", h.Ready)
	s.router.GET("/live", h.Live)
	s.router.GET("/version", h.Version)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	if s.config.Features.EnableRateLimit && s.opts.RateStore != nil {
		limiter := NewRateLimiter(s.opts.RateStore, "ratelimit:verify-pin:",
			s.config.Auth.RateLimitMax, s.config.Auth.RateLimitWindow)
		authGroup.Use(limiter.Middleware)
	}
	authGroup.POST("/verify-pin", h.VerifyPIN)

	api := v1.Group("")
	if s.config.Features.RequireAuth && s.opts.Tokens != nil {
		api.Use(RequireToken(s.opts.Tokens))
	}

	customers := api.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
	}

	items := api.Group("/items")
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListItems)
		items.GET("/:id", h.GetItem)
		items.PUT("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
	}

	invoices := api.Group("/invoices")
	{
		invoices.GET("/preview-invoice-number", h.PreviewInvoiceNumber)
		invoices.POST("/calculate", h.CalculateInvoice)
		invoices.GET("/export", h.ExportInvoices)
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.PUT("/:id", h.UpdateInvoice)
		invoices.DELETE("/:id", h.DeleteInvoice)
		invoices.GET("/:id/pdf", h.InvoicePDF)
	}

	api.GET("/dashboard/stats", h.DashboardStats)

	printPages := s.router.Group("/print")
	if s.config.Features.RequireAuth && s.opts.Tokens != nil {
		printPages.Use(RequireToken(s.opts.Tokens))
	}
	printPages.GET("/invoices/:id", h.PrintInvoice)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", logging.Fields{"addr": s.http.Addr})
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
