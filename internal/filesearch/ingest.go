// ingest.go - Orchestration of validate -> upload -> wait per file
package filesearch

import (
	"context"
	"fmt"

	"github.com/gemini-rag/backend/internal/validation"
)

// IngestFile is one candidate file for batch ingestion.
type IngestFile struct {
	Name string
	Data []byte
}

// Ingestor sequences validation, upload, and the indexing wait for each
// file. It holds no mutable state; every operation handle is scoped to a
// single call.
type Ingestor struct {
	client    *Client
	validator *validation.Validator
}

// NewIngestor creates an Ingestor over a FileSearch client.
func NewIngestor(client *Client, validator *validation.Validator) *Ingestor {
	return &Ingestor{client: client, validator: validator}
}

// IngestOne validates a file and, if acceptable, uploads it to the store
// and blocks until the store is queryable. Invalid files are rejected
// before any network call, surfacing the verdict as a ValidationError.
func (g *Ingestor) IngestOne(ctx context.Context, storeRef string, data []byte, fileName string) (string, error) {
	verdict := g.validator.ValidateBytes(data, fileName)
	if !verdict.IsValid {
		return "", &validation.ValidationError{Verdict: verdict}
	}

	fmt.Printf("[Ingest] Uploading %s (%d bytes) to %s\n", fileName, len(data), storeRef)

	operationName, err := g.client.InitiateAndUpload(ctx, storeRef, data, verdict.DetectedMimeType)
	if err != nil {
		return "", err
	}

	fmt.Printf("[Ingest] Upload complete, waiting for indexing: %s\n", operationName)

	if err := g.client.WaitForCompletion(ctx, operationName); err != nil {
		return "", err
	}

	fmt.Printf("[Ingest] Indexed %s\n", fileName)
	return operationName, nil
}

// IngestBatch uploads files independently, best-effort: a failing file is
// logged and skipped, never aborting the rest of the batch. It returns
// the operation names of the files that succeeded; callers infer partial
// failure from len(result) < len(files).
func (g *Ingestor) IngestBatch(ctx context.Context, storeRef string, files []IngestFile) []string {
	operationNames := make([]string, 0, len(files))

	fmt.Printf("[Ingest] Batch upload of %d files to %s\n", len(files), storeRef)

	for _, f := range files {
		operationName, err := g.IngestOne(ctx, storeRef, f.Data, f.Name)
		if err != nil {
			fmt.Printf("[Ingest] Failed to upload %s: %v\n", f.Name, err)
			continue
		}
		operationNames = append(operationNames, operationName)
	}

	fmt.Printf("[Ingest] Batch complete: %d/%d files succeeded\n", len(operationNames), len(files))
	return operationNames
}
