// handlers_stores.go - FileSearch store management handlers
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// storePrefix is the resource-name prefix the remote API uses. Route
// parameters carry only the bare ID; handlers rebuild the full name.
const storePrefix = "fileSearchStores/"

// StoreHandlerImpl implements the StoreHandler interface
type StoreHandlerImpl struct {
	search        SearchService
	allowDeletion bool
}

// NewStoreHandler creates a new store handler instance
func NewStoreHandler(search SearchService, allowDeletion bool) StoreHandler {
	return &StoreHandlerImpl{search: search, allowDeletion: allowDeletion}
}

// HandleListStores returns all FileSearch stores visible to the API key
func (h *StoreHandlerImpl) HandleListStores(c echo.Context) error {
	stores, err := h.search.ListStores(c.Request().Context())
	if err != nil {
		return NewUpstreamError("failed to list stores", err)
	}
	return c.JSON(http.StatusOK, stores)
}

// HandleCreateStore creates a new FileSearch store
func (h *StoreHandlerImpl) HandleCreateStore(c echo.Context) error {
	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.DisplayName == "" {
		return NewValidationError("displayName")
	}

	name, err := h.search.CreateStore(c.Request().Context(), req.DisplayName)
	if err != nil {
		return NewUpstreamError("failed to create store", err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"name":        name,
		"displayName": req.DisplayName,
	})
}

// HandleGetStore returns a single store by ID
func (h *StoreHandlerImpl) HandleGetStore(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	store, err := h.search.GetStore(c.Request().Context(), storeName(id))
	if err != nil {
		return NewUpstreamError("failed to get store", err)
	}
	return c.JSON(http.StatusOK, store)
}

// HandleDeleteStore deletes a store; ?force=true removes it even when it
// still contains documents
func (h *StoreHandlerImpl) HandleDeleteStore(c echo.Context) error {
	if !h.allowDeletion {
		return &APIError{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: "store deletion is disabled"}
	}

	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}
	force := c.QueryParam("force") == "true"

	if err := h.search.DeleteStore(c.Request().Context(), storeName(id), force); err != nil {
		return NewUpstreamError("failed to delete store", err)
	}
	return c.NoContent(http.StatusNoContent)
}

type createStoreRequest struct {
	DisplayName string `json:"displayName"`
}

// storeName rebuilds the full resource name from a route parameter.
func storeName(id string) string {
	if strings.HasPrefix(id, storePrefix) {
		return id
	}
	return storePrefix + id
}
