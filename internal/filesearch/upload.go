// upload.go - The three-phase resumable upload protocol
package filesearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

type operationStatus struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type operationResponse struct {
	Name  string           `json:"name"`
	Done  bool             `json:"done"`
	Error *operationStatus `json:"error"`
}

// InitiateAndUpload runs the upload protocol against a store: initiate a
// resumable session, then transfer all bytes in a single shot with an
// immediate finalize. It returns the name of the indexing operation the
// server starts.
//
// The transfer is deliberately not chunked: offset is always zero and the
// finalize command rides on the same request, matching the observed
// behavior of the live API. A dropped transfer is not resumed.
func (c *Client) InitiateAndUpload(ctx context.Context, storeName string, data []byte, mimeType string) (string, error) {
	if storeName == "" {
		return "", fmt.Errorf("store name cannot be empty")
	}

	uploadURL, err := c.initiateUpload(ctx, storeName, len(data), mimeType)
	if err != nil {
		return "", err
	}

	return c.transferAndFinalize(ctx, uploadURL, data)
}

// initiateUpload declares the upcoming upload and returns the session URL
// the server assigns for the byte transfer.
func (c *Client) initiateUpload(ctx context.Context, storeName string, numBytes int, mimeType string) (string, error) {
	url := fmt.Sprintf("%s/%s:uploadToFileSearchStore?key=%s", c.uploadBaseURL, storeName, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader("{}"))
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Goog-Upload-Protocol", "resumable")
	req.Header.Set("X-Goog-Upload-Command", "start")
	req.Header.Set("X-Goog-Upload-Header-Content-Length", strconv.Itoa(numBytes))
	req.Header.Set("X-Goog-Upload-Header-Content-Type", mimeType)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TransportError{Phase: "upload initiate", StatusCode: resp.StatusCode, Body: string(body)}
	}

	uploadURL := resp.Header.Get("X-Goog-Upload-URL")
	if uploadURL == "" {
		// The server accepted the initiate but broke the contract.
		return "", &ProtocolError{Phase: "upload initiate", Message: "upload URL not returned in response headers"}
	}
	return uploadURL, nil
}

// transferAndFinalize posts the raw bytes to the session URL and parses
// the finalize response as an operation handle.
func (c *Client) transferAndFinalize(ctx context.Context, uploadURL string, data []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Goog-Upload-Offset", "0")
	req.Header.Set("X-Goog-Upload-Command", "upload, finalize")
	req.ContentLength = int64(len(data))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TransportError{Phase: "upload transfer", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var op operationResponse
	if err := json.Unmarshal(body, &op); err != nil {
		return "", &ProtocolError{Phase: "upload finalize", Message: err.Error()}
	}
	if op.Name == "" {
		return "", &ProtocolError{Phase: "upload finalize", Message: "operation name not returned"}
	}
	return op.Name, nil
}
