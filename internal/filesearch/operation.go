// operation.go - Polling an indexing operation to its terminal state
package filesearch

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gemini-rag/backend/internal/models"
)

// GetOperation fetches the current state of an indexing operation. The
// wire shape (done flag plus optional error object) is mapped onto the
// three-state model.
func (c *Client) GetOperation(ctx context.Context, operationName string) (*models.UploadOperation, error) {
	payload, err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/"+operationName, "operation poll", nil)
	if err != nil {
		return nil, err
	}

	var op operationResponse
	if err := json.Unmarshal(payload, &op); err != nil {
		return nil, &ProtocolError{Phase: "operation poll", Message: err.Error()}
	}

	result := &models.UploadOperation{
		OperationName: operationName,
		StoreRef:      storeRefFromOperation(operationName),
		State:         models.OperationPending,
	}
	if op.Done {
		result.State = models.OperationDone
		if op.Error != nil {
			result.State = models.OperationFailed
			result.ErrorDetail = op.Error.Message
		}
	}
	return result, nil
}

// WaitForCompletion blocks until the named operation reaches a terminal
// state or the attempt cap is exhausted. It polls at a fixed interval; the
// context cancels the wait promptly between polls.
//
// A non-2xx poll response is fatal immediately, since it means the
// operation resource itself is unreachable.
func (c *Client) WaitForCompletion(ctx context.Context, operationName string) error {
	for attempt := 0; attempt < c.maxPollAttempts; attempt++ {
		op, err := c.GetOperation(ctx, operationName)
		if err != nil {
			return err
		}

		switch op.State {
		case models.OperationFailed:
			return &OperationFailedError{OperationName: operationName, Message: op.ErrorDetail}
		case models.OperationDone:
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}

	return &TimeoutError{OperationName: operationName, Attempts: c.maxPollAttempts}
}

// storeRefFromOperation recovers the owning store's resource name from an
// operation name of the form "fileSearchStores/{store}/operations/{id}".
// Operation names without that prefix yield an empty store reference.
func storeRefFromOperation(operationName string) string {
	const marker = "/operations/"
	if i := strings.Index(operationName, marker); i > 0 {
		return operationName[:i]
	}
	return ""
}
