// handlers_documents.go - Document listing and deletion within a store
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DocumentHandlerImpl implements the DocumentHandler interface
type DocumentHandlerImpl struct {
	search        SearchService
	allowDeletion bool
}

// NewDocumentHandler creates a new document handler instance
func NewDocumentHandler(search SearchService, allowDeletion bool) DocumentHandler {
	return &DocumentHandlerImpl{search: search, allowDeletion: allowDeletion}
}

// HandleListDocuments returns the documents indexed in a store
func (h *DocumentHandlerImpl) HandleListDocuments(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	docs, err := h.search.ListDocuments(c.Request().Context(), storeName(id))
	if err != nil {
		return NewUpstreamError("failed to list documents", err)
	}
	return c.JSON(http.StatusOK, docs)
}

// HandleDeleteDocument removes one indexed document from a store
func (h *DocumentHandlerImpl) HandleDeleteDocument(c echo.Context) error {
	if !h.allowDeletion {
		return &APIError{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: "document deletion is disabled"}
	}

	id := c.Param("id")
	docID := c.Param("docId")
	if id == "" {
		return NewValidationError("id")
	}
	if docID == "" {
		return NewValidationError("docId")
	}

	documentName := storeName(id) + "/documents/" + docID
	if err := h.search.DeleteDocument(c.Request().Context(), documentName); err != nil {
		return NewUpstreamError("failed to delete document", err)
	}
	return c.NoContent(http.StatusNoContent)
}
