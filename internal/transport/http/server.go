package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/clipparty/clipparty-server/internal/config"
	"github.com/clipparty/clipparty-server/internal/core"
	"github.com/clipparty/clipparty-server/internal/metrics"
)

// NewServer builds the HTTP server: websocket endpoint, health, metrics,
// and the static client app when configured.
func NewServer(hub *core.Hub, stats *metrics.Metrics, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(RequestLogger(logger), gin.Recovery())

	router.GET("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(stats.Handler()))
	router.GET("/ws", NewWSHandler(hub, logger).Handle)

	if cfg.StaticDir != "" {
		router.NoRoute(gin.WrapH(stdhttp.FileServer(stdhttp.Dir(cfg.StaticDir))))
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
