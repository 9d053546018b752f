package http

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "oompa/backend/docs"
	"oompa/backend/internal/handler"
)

func NewRouter(
	catalogHandler *handler.CatalogHandler,
	logsHandler *handler.LogsHandler,
	metricsHandler nethttp.Handler,
	staticDir string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(RequestIDMiddleware())
	e.Use(RequestLoggerMiddleware())

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}

	api := e.Group("/api")
	catalogHandler.RegisterRoutes(api)
	logsHandler.RegisterRoutes(api)

	registerStatic(e, staticDir)

	return e
}
