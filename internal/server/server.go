package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"gymdesk/internal/analytics"
	"gymdesk/internal/auth"
	"gymdesk/internal/config"
	"gymdesk/internal/email"
	"gymdesk/internal/gym"
	"gymdesk/internal/invoice"
	"gymdesk/internal/member"
	"gymdesk/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service, logoStore gym.LogoStore) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	gymRepo := gym.NewRepository(db)
	gymService := gym.NewService(gymRepo, logoStore)
	gymHandler := gym.NewHandler(gymService)

	invoiceRepo := invoice.NewRepository(db)
	numberer := invoice.NewNumberer(invoiceRepo)

	memberRepo := member.NewRepository(db, invoiceRepo)
	memberService := member.NewService(memberRepo, numberer)
	memberHandler := member.NewHandler(memberService)

	invoiceService := invoice.NewService(invoiceRepo, gymRepo, memberService, emailService)
	invoiceHandler := invoice.NewHandler(invoiceService)

	analyticsService := analytics.NewService(analytics.NewRepository(db))
	analyticsHandler := analytics.NewHandler(analyticsService)

	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, cfg.JWTSecret)
	userHandler := user.NewHandler(userService)

	public := router.Group("/auth")
	public.Use(RateLimitMiddleware(5, 10))
	{
		public.POST("/signup", userHandler.Signup)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/me", userHandler.GetMe)

		protected.GET("/gym", gymHandler.Get)
		protected.PUT("/gym", gymHandler.UpdateSettings)
		protected.POST("/gym/logo", gymHandler.UploadLogo)

		protected.POST("/members", memberHandler.Create)
		protected.GET("/members", memberHandler.List)
		protected.GET("/members/export", memberHandler.ExportCSV)
		protected.GET("/members/:memberID", memberHandler.Get)
		protected.PUT("/members/:memberID", memberHandler.Update)
		protected.DELETE("/members/:memberID", memberHandler.Delete)
		protected.POST("/members/:memberID/renew", memberHandler.Renew)
		protected.POST("/members/:memberID/services", memberHandler.AddServices)
		protected.POST("/members/:memberID/services/:serviceID/renew", memberHandler.RenewService)
		protected.GET("/pt-members", memberHandler.PTRoster)

		protected.GET("/invoices", invoiceHandler.List)
		protected.GET("/invoices/:invoiceID/pdf", invoiceHandler.DownloadPDF)
		protected.POST("/invoices/:invoiceID/email", invoiceHandler.SendEmail)
		protected.GET("/invoices/:invoiceID/whatsapp", invoiceHandler.WhatsAppLink)

		protected.GET("/analytics", analyticsHandler.Overview)
		protected.GET("/dashboard", analyticsHandler.Dashboard)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
