// interfaces.go - Handler interfaces and the service contracts they consume
package api

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/gemini-rag/backend/internal/filesearch"
	"github.com/gemini-rag/backend/internal/models"
)

// SearchService is the superset of remote FileSearch operations the
// handlers need: store and document management.
type SearchService interface {
	ListStores(ctx context.Context) ([]models.StoreRecord, error)
	CreateStore(ctx context.Context, displayName string) (string, error)
	GetStore(ctx context.Context, storeName string) (*models.StoreRecord, error)
	DeleteStore(ctx context.Context, storeName string, force bool) error
	ListDocuments(ctx context.Context, storeName string) ([]models.DocumentRecord, error)
	DeleteDocument(ctx context.Context, documentName string) error
}

// Ingestor runs the validate -> upload -> wait pipeline.
type Ingestor interface {
	IngestOne(ctx context.Context, storeRef string, data []byte, fileName string) (string, error)
	IngestBatch(ctx context.Context, storeRef string, files []filesearch.IngestFile) []string
}

// Querier answers grounded questions.
type Querier interface {
	Query(ctx context.Context, req models.QueryRequest) *models.QueryOutcome
}

// Validator checks files without uploading them.
type Validator interface {
	ValidateBytes(data []byte, fileName string) *models.ValidationVerdict
	SupportedExtensions() []string
}

// HistoryStore records and lists past queries.
type HistoryStore interface {
	Record(rec *models.HistoryRecord) error
	Recent(limit int) ([]*models.HistoryRecord, error)
}

// StoreHandler handles FileSearch store management
type StoreHandler interface {
	HandleListStores(c echo.Context) error
	HandleCreateStore(c echo.Context) error
	HandleGetStore(c echo.Context) error
	HandleDeleteStore(c echo.Context) error
}

// DocumentHandler handles document listing and deletion within a store
type DocumentHandler interface {
	HandleListDocuments(c echo.Context) error
	HandleDeleteDocument(c echo.Context) error
}

// UploadHandler handles file validation and ingestion
type UploadHandler interface {
	HandleValidateFile(c echo.Context) error
	HandleSupportedExtensions(c echo.Context) error
	HandleUploadDocument(c echo.Context) error
	HandleUploadBatch(c echo.Context) error
}

// QueryHandler handles grounded query requests
type QueryHandler interface {
	HandleQuery(c echo.Context) error
}

// HistoryHandler handles query history listing and export
type HistoryHandler interface {
	HandleListHistory(c echo.Context) error
	HandleExportHistory(c echo.Context) error
}

// HealthHandler handles liveness checks
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}
