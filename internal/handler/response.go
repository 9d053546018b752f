package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"oompa/backend/internal/logger"
	"oompa/backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
	case errors.Is(err, service.ErrFetchInProgress):
		return c.JSON(http.StatusConflict, errorResponse{Error: "fetch already in progress"})
	case errors.Is(err, service.ErrDeserialization):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "malformed remote response"})
	case errors.Is(err, service.ErrFetch):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "remote fetch failed"})
	default:
		logger.Error("unhandled service error", "module", "handler", "action", "request", "resource", "http", "result", "failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// Error returns a JSON error response with the given status and message
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}
