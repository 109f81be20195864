// handlers_history.go - Query history listing and export
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gemini-rag/backend/internal/export"
	"github.com/gemini-rag/backend/internal/models"
)

// HistoryHandlerImpl implements the HistoryHandler interface
type HistoryHandlerImpl struct {
	history HistoryStore
}

// NewHistoryHandler creates a new history handler instance
func NewHistoryHandler(history HistoryStore) HistoryHandler {
	return &HistoryHandlerImpl{history: history}
}

// HandleListHistory returns recent queries, newest first
func (h *HistoryHandlerImpl) HandleListHistory(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return NewValidationError("limit")
		}
		limit = parsed
	}

	records, err := h.history.Recent(limit)
	if err != nil {
		return NewInternalError("failed to read history", err)
	}
	if records == nil {
		records = []*models.HistoryRecord{}
	}
	return c.JSON(http.StatusOK, records)
}

// HandleExportHistory streams the history in the requested format
// (json, csv, markdown, or msgpack; default json)
func (h *HistoryHandlerImpl) HandleExportHistory(c echo.Context) error {
	format, err := export.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return NewValidationError("format")
	}

	records, err := h.history.Recent(1000)
	if err != nil {
		return NewInternalError("failed to read history", err)
	}

	data, contentType, err := export.Encode(records, format)
	if err != nil {
		return NewInternalError("failed to encode export", err)
	}

	fileName := fmt.Sprintf("query-history-%s.%s", time.Now().Format("20060102-150405"), exportExtension(format))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Blob(http.StatusOK, contentType, data)
}

func exportExtension(format export.Format) string {
	switch format {
	case export.FormatMarkdown:
		return "md"
	case export.FormatMsgpack:
		return "msgpack"
	default:
		return string(format)
	}
}
