package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"oompa/backend/internal/logger"
)

type LogsHandler struct {
	console *logger.Console
}

func NewLogsHandler(console *logger.Console) *LogsHandler {
	return &LogsHandler{console: console}
}

func (h *LogsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/logs", h.List)
	g.DELETE("/logs", h.Clear)
}

type logEntryResponse struct {
	ID      string `json:"id"`
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

type logsResponse struct {
	Entries []logEntryResponse `json:"entries"`
}

// List returns captured diagnostics.
// @Summary List diagnostics
// @Description Captured log lines, newest first
// @Tags logs
// @Produce json
// @Success 200 {object} logsResponse
// @Router /api/logs [get]
func (h *LogsHandler) List(c echo.Context) error {
	entries := h.console.Entries()
	resp := logsResponse{Entries: make([]logEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, logEntryResponse{
			ID:      formatID(e.ID),
			Time:    e.Time.UTC().Format(time.RFC3339Nano),
			Level:   e.Level,
			Message: e.Message,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// Clear empties the captured diagnostics.
// @Summary Clear diagnostics
// @Tags logs
// @Success 204
// @Router /api/logs [delete]
func (h *LogsHandler) Clear(c echo.Context) error {
	h.console.Clear()
	return c.NoContent(http.StatusNoContent)
}
