// handlers_query.go - Grounded query handler
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gemini-rag/backend/internal/models"
)

// QueryHandlerImpl implements the QueryHandler interface
type QueryHandlerImpl struct {
	querier Querier
	history HistoryStore
}

// NewQueryHandler creates a new query handler instance. The history store
// may be nil, in which case outcomes are not recorded.
func NewQueryHandler(querier Querier, history HistoryStore) QueryHandler {
	return &QueryHandlerImpl{querier: querier, history: history}
}

// HandleQuery answers one question strictly from a store's documents.
// Upstream failures surface inside the outcome, not as HTTP errors.
func (h *QueryHandlerImpl) HandleQuery(c echo.Context) error {
	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.Question == "" {
		return NewValidationError("question")
	}
	if req.StoreName == "" {
		return NewValidationError("storeName")
	}

	outcome := h.querier.Query(c.Request().Context(), models.QueryRequest{
		Question:        req.Question,
		StoreName:       storeName(req.StoreName),
		Temperature:     req.Temperature,
		MaxOutputTokens: req.MaxOutputTokens,
	})

	h.record(req, outcome)

	return c.JSON(http.StatusOK, outcome)
}

// record persists the outcome best-effort; a history failure never fails
// the query response.
func (h *QueryHandlerImpl) record(req queryRequest, outcome *models.QueryOutcome) {
	if h.history == nil || outcome.ErrorMessage != "" {
		return
	}

	err := h.history.Record(&models.HistoryRecord{
		StoreRef:       storeName(req.StoreName),
		Question:       req.Question,
		Answer:         outcome.Answer,
		IsFound:        outcome.IsFound,
		CitationCount:  len(outcome.Citations),
		ResponseTimeMs: outcome.ResponseTimeMs,
	})
	if err != nil {
		fmt.Printf("[Query] Warning: failed to record history: %v\n", err)
	}
}

type queryRequest struct {
	Question        string  `json:"question"`
	StoreName       string  `json:"storeName"`
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}
