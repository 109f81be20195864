// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Search                SearchService
	Ingestor              Ingestor
	Querier               Querier
	Validator             Validator
	History               HistoryStore
	Version               string
	AllowStoreDeletion    bool
	AllowDocumentDeletion bool
}

// Handlers holds all handler instances
type Handlers struct {
	Health   HealthHandler
	Store    StoreHandler
	Document DocumentHandler
	Upload   UploadHandler
	Query    QueryHandler
	History  HistoryHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Version),
		Store:    NewStoreHandler(deps.Search, deps.AllowStoreDeletion),
		Document: NewDocumentHandler(deps.Search, deps.AllowDocumentDeletion),
		Upload:   NewUploadHandler(deps.Validator, deps.Ingestor),
		Query:    NewQueryHandler(deps.Querier, deps.History),
		History:  NewHistoryHandler(deps.History),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	e.HTTPErrorHandler = ErrorHandler

	apiGroup := e.Group("/api")

	// Health check
	apiGroup.GET("/health", handlers.Health.HandleHealth)

	// File validation (no upload)
	apiGroup.POST("/files/validate", handlers.Upload.HandleValidateFile)
	apiGroup.GET("/files/supported-extensions", handlers.Upload.HandleSupportedExtensions)

	// Store management
	storeGroup := apiGroup.Group("/stores")
	storeGroup.GET("", handlers.Store.HandleListStores)
	storeGroup.POST("", handlers.Store.HandleCreateStore)
	storeGroup.GET("/:id", handlers.Store.HandleGetStore)
	storeGroup.DELETE("/:id", handlers.Store.HandleDeleteStore)

	// Documents within a store
	storeGroup.GET("/:id/documents", handlers.Document.HandleListDocuments)
	storeGroup.DELETE("/:id/documents/:docId", handlers.Document.HandleDeleteDocument)

	// Ingestion
	storeGroup.POST("/:id/upload", handlers.Upload.HandleUploadDocument)
	storeGroup.POST("/:id/upload/batch", handlers.Upload.HandleUploadBatch)

	// Grounded queries
	apiGroup.POST("/query", handlers.Query.HandleQuery)

	// Query history
	apiGroup.GET("/history", handlers.History.HandleListHistory)
	apiGroup.GET("/history/export", handlers.History.HandleExportHistory)
}
