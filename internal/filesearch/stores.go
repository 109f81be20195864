// stores.go - FileSearch store management (list/create/get/delete)
package filesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gemini-rag/backend/internal/models"
)

type storeResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	CreateTime  string `json:"createTime"`
	UpdateTime  string `json:"updateTime"`
}

type storeListResponse struct {
	FileSearchStores []storeResponse `json:"fileSearchStores"`
}

// ListStores returns all FileSearch stores visible to the API key.
func (c *Client) ListStores(ctx context.Context) ([]models.StoreRecord, error) {
	payload, err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/fileSearchStores", "list stores", nil)
	if err != nil {
		return nil, err
	}

	var result storeListResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, &ProtocolError{Phase: "list stores", Message: err.Error()}
	}

	stores := make([]models.StoreRecord, 0, len(result.FileSearchStores))
	for _, s := range result.FileSearchStores {
		rec := models.StoreRecord{Name: s.Name, DisplayName: s.DisplayName}
		if rec.DisplayName == "" {
			rec.DisplayName = "Unnamed Store"
		}
		rec.CreateTime = parseTime(s.CreateTime)
		rec.UpdateTime = parseTime(s.UpdateTime)
		stores = append(stores, rec)
	}
	return stores, nil
}

// CreateStore creates a new FileSearch store and returns its resource name.
func (c *Client) CreateStore(ctx context.Context, displayName string) (string, error) {
	fmt.Printf("[FileSearch] Creating store: %s\n", displayName)

	body := map[string]string{"displayName": displayName}
	payload, err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/fileSearchStores", "create store", body)
	if err != nil {
		return "", err
	}

	var result storeResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", &ProtocolError{Phase: "create store", Message: err.Error()}
	}
	if result.Name == "" {
		return "", &ProtocolError{Phase: "create store", Message: "store name not returned"}
	}

	fmt.Printf("[FileSearch] Store created: %s\n", result.Name)
	return result.Name, nil
}

// GetStore fetches a single store by its resource name.
func (c *Client) GetStore(ctx context.Context, storeName string) (*models.StoreRecord, error) {
	if storeName == "" {
		return nil, fmt.Errorf("store name cannot be empty")
	}

	payload, err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/"+storeName, "get store", nil)
	if err != nil {
		return nil, err
	}

	var result storeResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, &ProtocolError{Phase: "get store", Message: err.Error()}
	}

	rec := &models.StoreRecord{Name: result.Name, DisplayName: result.DisplayName}
	if rec.Name == "" {
		rec.Name = storeName
	}
	if rec.DisplayName == "" {
		rec.DisplayName = "Unnamed Store"
	}
	rec.CreateTime = parseTime(result.CreateTime)
	rec.UpdateTime = parseTime(result.UpdateTime)
	return rec, nil
}

// DeleteStore removes a store. With force set, the store is deleted even
// when it still contains documents.
func (c *Client) DeleteStore(ctx context.Context, storeName string, force bool) error {
	if storeName == "" {
		return fmt.Errorf("store name cannot be empty")
	}

	url := c.baseURL + "/" + storeName
	if force {
		url += "?force=true"
	}
	_, err := c.doJSON(ctx, http.MethodDelete, url, "delete store", nil)
	return err
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
