package web

import (
	"context"
	"net/http"
	"time"

	"hostel-agent/config"
	"hostel-agent/history"
	"hostel-agent/web/handlers"
	"hostel-agent/web/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	logger *zap.Logger
	config *config.Config
}

func NewServer(bot handlers.Responder, hist *history.Manager, logger *zap.Logger, config *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(func(c *gin.Context) {
		c.Set("logger", logger)
		c.Next()
	})

	server := &Server{
		router: router,
		logger: logger,
		config: config,
	}

	server.setupRoutes(bot, hist)
	return server
}

func (s *Server) setupRoutes(bot handlers.Responder, hist *history.Manager) {
	s.router.Static("/static", "./web/static")

	limiter := middleware.NewSessionRateLimiter(middleware.RateLimiterConfig{
		MessagesPerMinute: s.config.RateLimitMessagesPerMin,
		BurstSize:         s.config.RateLimitBurstSize,
		CleanupInterval:   time.Hour,
	}, s.logger)

	chatHandler := handlers.NewChatHandler(bot, hist, s.logger)

	s.router.Use(middleware.Session())
	s.router.GET("/", chatHandler.Index)
	s.router.GET("/chat/history", chatHandler.History)
	s.router.POST("/chat", middleware.RateLimit(limiter), chatHandler.SendMessage)
	s.router.POST("/chat/clear", chatHandler.ClearSession)
}

func (s *Server) Start(ctx context.Context, addr string) error {
	s.logger.Info("Starting web server", zap.String("address", addr))

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Web server failed to start", zap.Error(err))
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()

	s.logger.Info("Shutting down web server")
	return srv.Shutdown(context.Background())
}
