// Package query issues strictly grounded generateContent calls against a
// FileSearch store and shapes the responses into structured outcomes.
package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gemini-rag/backend/internal/models"
)

// DefaultModel answers queries unless the config overrides it.
const DefaultModel = "gemini-2.5-flash"

// DefaultMaxOutputTokens caps the answer length when a request does not
// specify one.
const DefaultMaxOutputTokens = 2048

// systemInstruction forces the model to answer only from retrieved
// passages and to emit the exact not-found phrase when it cannot.
const systemInstruction = `You are a helpful assistant that answers questions STRICTLY based on the provided documents.
CRITICAL RULES:
1. ONLY use information found in the retrieved document chunks from FileSearch
2. If the answer is not in the documents, say EXACTLY: 'I could not find that information in the uploaded documents.'
3. Do NOT use your general knowledge or training data
4. Do NOT make assumptions or inferences beyond what's explicitly stated
5. Cite the specific parts of the document you're using`

// Service performs grounded queries. It is stateless apart from the
// shared HTTP client.
type Service struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

// Config configures a query Service. Zero values fall back to defaults.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// NewService creates a query Service from cfg.
func NewService(cfg Config) *Service {
	s := &Service{
		httpClient: cfg.HTTPClient,
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if s.baseURL == "" {
		s.baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if s.model == "" {
		s.model = DefaultModel
	}
	return s
}

// Request/response wire types for generateContent.

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Role  string        `json:"role,omitempty"`
	Parts []contentPart `json:"parts"`
}

type fileSearchTool struct {
	FileSearchStoreNames []string `json:"file_search_store_names"`
}

type tool struct {
	FileSearch fileSearchTool `json:"file_search"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateContentRequest struct {
	Contents          []content        `json:"contents"`
	Tools             []tool           `json:"tools"`
	GenerationConfig  generationConfig `json:"generationConfig"`
	SystemInstruction content          `json:"systemInstruction"`
}

type candidate struct {
	Content           content            `json:"content"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

// Query runs one grounded round trip. Remote failures are encoded into
// the outcome's ErrorMessage rather than returned as errors, so the
// calling layer renders them uniformly alongside "not found" answers.
// ResponseTimeMs is always populated, success or failure.
func (s *Service) Query(ctx context.Context, req models.QueryRequest) *models.QueryOutcome {
	start := time.Now()
	outcome := &models.QueryOutcome{Citations: []models.Citation{}}
	defer func() {
		outcome.ResponseTimeMs = time.Since(start).Milliseconds()
	}()

	if req.MaxOutputTokens <= 0 {
		req.MaxOutputTokens = DefaultMaxOutputTokens
	}

	body := generateContentRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []contentPart{{Text: req.Question}},
		}},
		Tools: []tool{{
			FileSearch: fileSearchTool{FileSearchStoreNames: []string{req.StoreName}},
		}},
		GenerationConfig: generationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxOutputTokens,
		},
		SystemInstruction: content{Parts: []contentPart{{Text: systemInstruction}}},
	}

	payload, err := s.roundTrip(ctx, body)
	if err != nil {
		outcome.ErrorMessage = err.Error()
		return outcome
	}

	var result generateContentResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		outcome.ErrorMessage = fmt.Sprintf("malformed API response: %v", err)
		return outcome
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		outcome.ErrorMessage = "API returned no candidates"
		return outcome
	}

	cand := result.Candidates[0]
	answer, found, citations := ExtractGrounding(cand.Content.Parts[0].Text, cand.GroundingMetadata)
	outcome.Answer = answer
	outcome.IsFound = found
	outcome.Citations = citations
	return outcome
}

// roundTrip performs the single HTTP exchange; no retry on transient
// failures.
func (s *Service) roundTrip(ctx context.Context, body generateContentRequest) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("x-goog-api-key", s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error: %s", string(payload))
	}
	return payload, nil
}
