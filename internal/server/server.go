package server

import (
	"context"
	"net/http"
	"time"

	"gymdesk/internal/attendance"
	"gymdesk/internal/auth"
	"gymdesk/internal/config"
	"gymdesk/internal/email"
	"gymdesk/internal/insight"
	"gymdesk/internal/media"
	"gymdesk/internal/member"
	"gymdesk/internal/payment"
	"gymdesk/internal/plan"
	"gymdesk/internal/staff"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(MetricsMiddleware())

	rateLimiter := NewRateLimiter(10, 20, 10*time.Minute)
	router.Use(RateLimitMiddleware(rateLimiter))

	planRepo := plan.NewRepository(db)
	memberRepo := member.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)
	staffRepo := staff.NewRepository(db)

	planService := plan.NewService(planRepo)
	memberService := member.NewService(memberRepo, planRepo, emailService)
	paymentService := payment.NewService(paymentRepo, memberRepo, planRepo, emailService)
	attendanceService := attendance.NewService(attendanceRepo, memberRepo)
	staffService := staff.NewService(staffRepo, cfg.JWTSecret)

	insightClient := insight.NewHTTPClient(cfg.InsightServiceURL, cfg.InsightAPIKey)
	insightService := insight.NewService(insightClient, memberRepo, planRepo, paymentRepo, attendanceRepo)

	var uploader media.Uploader
	if cfg.ImageUploadURL != "" {
		uploader = media.NewClient(cfg.ImageUploadURL, cfg.ImageUploadKey)
	}

	planHandler := plan.NewHandler(planService)
	memberHandler := member.NewHandler(memberService, uploader)
	paymentHandler := payment.NewHandler(paymentService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	staffHandler := staff.NewHandler(staffService)
	insightHandler := insight.NewHandler(insightService)

	public := router.Group("/auth")
	{
		public.POST("/login", staffHandler.Login)
		public.POST("/refresh", staffHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", staffHandler.GetMe)

		protected.GET("/plans", planHandler.ListPlans)
		protected.GET("/plans/:planID", planHandler.GetPlan)

		protected.POST("/members", memberHandler.CreateMember)
		protected.GET("/members", memberHandler.ListMembers)
		protected.GET("/members/:memberID", memberHandler.GetMember)
		protected.PUT("/members/:memberID", memberHandler.UpdateMember)
		protected.DELETE("/members/:memberID", memberHandler.DeleteMember)
		protected.POST("/members/:memberID/renew", memberHandler.RenewMember)

		protected.POST("/members/:memberID/payments", paymentHandler.RecordPayment)
		protected.GET("/members/:memberID/payments", paymentHandler.ListMemberPayments)
		protected.GET("/members/:memberID/dues", paymentHandler.GetDues)

		protected.POST("/members/:memberID/checkin", attendanceHandler.CheckIn)
		protected.GET("/members/:memberID/attendance", attendanceHandler.ListMemberAttendance)
		protected.GET("/attendance", attendanceHandler.ListDayAttendance)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/staff", staffHandler.Register)

		admin.POST("/plans", planHandler.CreatePlan)
		admin.PUT("/plans/:planID", planHandler.UpdatePlan)
		admin.DELETE("/plans/:planID", planHandler.DeletePlan)

		admin.GET("/payments", paymentHandler.ListPayments)
		admin.GET("/attendance/stats", attendanceHandler.CheckinStats)
		admin.GET("/insights/at-risk", insightHandler.AtRiskMembers)
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
		Addr:    ":" + port,
		Handler: s.router,
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
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
