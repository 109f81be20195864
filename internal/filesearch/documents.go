// documents.go - Read-through listing and deletion of indexed documents
package filesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"

	"github.com/gemini-rag/backend/internal/models"
)

type documentResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	MimeType    string `json:"mimeType"`
	CreateTime  string `json:"createTime"`
}

type documentListResponse struct {
	Documents []documentResponse `json:"documents"`
}

// ListDocuments returns the documents currently indexed in a store. The
// remote service owns the list; nothing is cached between calls.
func (c *Client) ListDocuments(ctx context.Context, storeName string) ([]models.DocumentRecord, error) {
	if storeName == "" {
		return nil, fmt.Errorf("store name cannot be empty")
	}

	payload, err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/"+storeName+"/documents", "list documents", nil)
	if err != nil {
		return nil, err
	}

	var result documentListResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, &ProtocolError{Phase: "list documents", Message: err.Error()}
	}

	docs := make([]models.DocumentRecord, 0, len(result.Documents))
	for _, d := range result.Documents {
		rec := models.DocumentRecord{
			Name:        d.Name,
			DisplayName: d.DisplayName,
			MimeType:    d.MimeType,
			Status:      "active",
		}
		if rec.DisplayName == "" {
			rec.DisplayName = path.Base(d.Name)
		}
		if rec.MimeType == "" {
			rec.MimeType = "application/pdf"
		}
		rec.UploadDate = parseTime(d.CreateTime)
		docs = append(docs, rec)
	}
	return docs, nil
}

// DeleteDocument removes a single indexed document by its resource name.
func (c *Client) DeleteDocument(ctx context.Context, documentName string) error {
	if documentName == "" {
		return fmt.Errorf("document name cannot be empty")
	}
	_, err := c.doJSON(ctx, http.MethodDelete, c.baseURL+"/"+documentName, "delete document", nil)
	return err
}
