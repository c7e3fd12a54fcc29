package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adampierre-jpg/kettlebell-vbt/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	// GET/PUT/etc on the analyze route must answer 405, not 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		abortWithError(c, NewHTTPError(http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil))
	})

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.POST("/analyses", handler.Analyze)
		api.GET("/analyses", handler.ListAnalyses)
		api.GET("/analyses/:id", handler.GetAnalysis)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
