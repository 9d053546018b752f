package handler_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"oompa/backend/internal/handler"
	"oompa/backend/internal/logger"
)

type logsBody struct {
	Entries []struct {
		ID      string `json:"id"`
		Level   string `json:"level"`
		Message string `json:"message"`
	} `json:"entries"`
}

func TestLogsHandler(t *testing.T) {
	console := logger.NewConsole(10, slog.LevelInfo, nil)
	log := slog.New(console)
	log.Info("requesting page 1")
	log.Info("list page merged")

	e := echo.New()
	handler.NewLogsHandler(console).RegisterRoutes(e.Group("/api"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/logs", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[logsBody](t, rec)
	require.Len(t, body.Entries, 2)
	require.Equal(t, "list page merged", body.Entries[0].Message)
	require.Equal(t, "requesting page 1", body.Entries[1].Message)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/logs", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, console.Entries())
}
