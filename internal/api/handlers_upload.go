// handlers_upload.go - File validation and ingestion handlers
package api

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gemini-rag/backend/internal/filesearch"
	"github.com/gemini-rag/backend/internal/validation"
)

// UploadHandlerImpl implements the UploadHandler interface
type UploadHandlerImpl struct {
	validator Validator
	ingestor  Ingestor
}

// NewUploadHandler creates a new upload handler instance
func NewUploadHandler(validator Validator, ingestor Ingestor) UploadHandler {
	return &UploadHandlerImpl{validator: validator, ingestor: ingestor}
}

// HandleValidateFile runs content validation on an uploaded file without
// contacting the remote service, returning the verdict either way
func (h *UploadHandlerImpl) HandleValidateFile(c echo.Context) error {
	data, fileName, err := readFormFile(c, "file")
	if err != nil {
		return err
	}

	verdict := h.validator.ValidateBytes(data, fileName)
	return c.JSON(http.StatusOK, verdict)
}

// HandleSupportedExtensions returns the sorted supported extension list
func (h *UploadHandlerImpl) HandleSupportedExtensions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"extensions": h.validator.SupportedExtensions(),
	})
}

// HandleUploadDocument validates and ingests a single file into a store,
// blocking until the store is queryable
func (h *UploadHandlerImpl) HandleUploadDocument(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	data, fileName, err := readFormFile(c, "file")
	if err != nil {
		return err
	}

	operationName, err := h.ingestor.IngestOne(c.Request().Context(), storeName(id), data, fileName)
	if err != nil {
		return ingestionError(fileName, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"operationName": operationName,
		"fileName":      fileName,
	})
}

// HandleUploadBatch ingests multiple files best-effort; one bad file does
// not abort the rest
func (h *UploadHandlerImpl) HandleUploadBatch(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return NewBadRequestError("invalid multipart form", err)
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return NewValidationError("files")
	}

	files := make([]filesearch.IngestFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readMultipartFile(fh)
		if err != nil {
			return NewInternalError("failed to read uploaded file", err)
		}
		files = append(files, filesearch.IngestFile{Name: fh.Filename, Data: data})
	}

	operationNames := h.ingestor.IngestBatch(c.Request().Context(), storeName(id), files)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"operationNames": operationNames,
		"successCount":   len(operationNames),
		"totalCount":     len(files),
	})
}

// ingestionError maps pipeline failures onto API errors.
func ingestionError(fileName string, err error) error {
	var vErr *validation.ValidationError
	if errors.As(err, &vErr) {
		apiErr := NewFileRejectedError(fileName, vErr.Verdict.ErrorMessage)
		if vErr.Verdict.IsPotentiallySpoofed {
			apiErr.Code = "FILE_SPOOFED"
		}
		return apiErr
	}

	var tErr *filesearch.TimeoutError
	if errors.As(err, &tErr) {
		return NewTimeoutError(tErr.Error())
	}

	return NewUpstreamError("upload failed", err)
}

// readFormFile extracts the named multipart file from the request.
func readFormFile(c echo.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", NewBadRequestError("no file provided", err)
	}
	data, err := readMultipartFile(fh)
	if err != nil {
		return nil, "", NewInternalError("failed to read uploaded file", err)
	}
	return data, fh.Filename, nil
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}
