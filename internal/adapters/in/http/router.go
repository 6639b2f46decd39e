package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

const APIPrefix = "/api/v1"

// NewEcho builds the HTTP application: health and metrics endpoints, the
// Swagger UI, and the API group guarded by actor identification and OpenAPI
// request validation.
func NewEcho(ctx context.Context, server *Server, logger *zap.Logger, logLevel log.Lvl) (*echo.Echo, error) {
	doc, err := LoadSpec(ctx)
	if err != nil {
		return nil, err
	}
	if err = registerSwagger(doc); err != nil {
		return nil, err
	}
	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(logLevel)
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger.With(zap.String("component", "http"))))
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", openapiYAML)
	})

	api := e.Group(APIPrefix, actorMiddleware, validator)
	server.Register(api)

	return e, nil
}
