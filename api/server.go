package api

import (
	"github.com/brpaz/echozap"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/errors"
)

func NewServer(handler *Handler, healthCheck *HealthCheck, logger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Skip request ids and access logs for the readiness probe
	skipper := RouteSkipper([]string{"/ready"})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Skipper:   skipper,
		Generator: uuid.NewString,
	}))
	e.Use(WithSkipper(skipper, echozap.ZapLogger(logger)))

	e.HTTPErrorHandler = errors.CustomHTTPErrorHandler

	e.GET("/ready", healthCheck.Ready)
	RegisterHandlers(e, handler)

	return e, nil
}
