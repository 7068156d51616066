package http

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clockface/clockface/internal/infra/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/", handler.Page)
	router.GET("/healthz", handler.Health)

	api := router.Group("/api", corsMiddleware(cfg.HTTP.AllowedOrigins))
	{
		api.GET("", handler.ImageOfTheDay)
		api.GET("/photo", handler.Photo)
		api.GET("/config", handler.Config)
		api.GET("/clock/stream", handler.ClockStream)
	}
	// Preflight requests only reach the group middleware through a route.
	for _, path := range []string{"", "/photo", "/config", "/clock/stream"} {
		api.OPTIONS(path, func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
