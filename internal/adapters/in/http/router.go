package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"storefront/internal/adapters/in/http/openapi"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig tunes the echo instance built by NewRouter.
type RouterConfig struct {
	AllowOrigins []string
	LogLevel     slog.Level

	// MetricsHandler serves /metrics. Defaults to the default prometheus
	// registry.
	MetricsHandler http.Handler
}

// NewRouter builds the echo instance with middleware, API routes, the API
// document and the metrics endpoint.
func NewRouter(ctx context.Context, s *Server, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := openapi.Load(ctx)
	if err != nil {
		return nil, err
	}
	docJSON, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}
	openapi.Register(docJSON)

	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"*"}
	}
	if cfg.MetricsHandler == nil {
		cfg.MetricsHandler = promhttp.Handler()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(gommonLevel(cfg.LogLevel))
	e.HTTPErrorHandler = s.HTTPErrorHandler

	e.Use(
		s.requestLogger(),
		s.recordMetrics,
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.AllowOrigins,
			AllowMethods: []string{
				http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
			},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		}),
		middleware.Recover(),
	)

	s.RegisterRoutes(e)

	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, docJSON)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(cfg.MetricsHandler))

	return e, nil
}

func gommonLevel(level slog.Level) log.Lvl {
	switch {
	case level <= slog.LevelDebug:
		return log.DEBUG
	case level <= slog.LevelInfo:
		return log.INFO
	case level <= slog.LevelWarn:
		return log.WARN
	default:
		return log.ERROR
	}
}
