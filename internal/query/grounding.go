// grounding.go - Turning a model response plus retrieval metadata into a
// grounded answer with citations
package query

import (
	"strings"

	"github.com/gemini-rag/backend/internal/models"
)

// notFoundPhrases mark an answer as ungrounded. The phrase check takes
// precedence over any retrieval metadata: a response containing one of
// these is "not found" even when grounding chunks are present.
var notFoundPhrases = []string{
	"could not find",
	"not in the document",
}

const previewLimit = 100

// GroundingMetadata mirrors the groundingMetadata object of a
// generateContent candidate.
type GroundingMetadata struct {
	GroundingChunks []GroundingChunk `json:"groundingChunks"`
}

// GroundingChunk is one retrieved passage reference.
type GroundingChunk struct {
	RetrievedContext *RetrievedContext `json:"retrievedContext"`
}

// RetrievedContext carries the source document title and raw chunk text.
type RetrievedContext struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ExtractGrounding decides whether the model found an answer and builds
// the citation list. Malformed or missing metadata never fails the call;
// it only yields an empty citation list.
func ExtractGrounding(responseText string, metadata *GroundingMetadata) (answer string, found bool, citations []models.Citation) {
	lower := strings.ToLower(responseText)
	for _, phrase := range notFoundPhrases {
		if strings.Contains(lower, phrase) {
			return "", false, []models.Citation{}
		}
	}

	return responseText, true, extractCitations(metadata)
}

// extractCitations builds citations from grounding chunks, preferring the
// document title and falling back to a truncated text preview under a
// generic "Chunk" label.
func extractCitations(metadata *GroundingMetadata) []models.Citation {
	citations := []models.Citation{}
	if metadata == nil {
		return citations
	}

	for _, chunk := range metadata.GroundingChunks {
		rc := chunk.RetrievedContext
		if rc == nil {
			continue
		}

		citation := models.Citation{}
		switch {
		case rc.Title != "":
			citation.Source = rc.Title
		case rc.Text != "":
			citation.Source = "Chunk"
			citation.Preview = truncatePreview(rc.Text)
		}
		citations = append(citations, citation)
	}
	return citations
}

func truncatePreview(text string) string {
	if len(text) > previewLimit {
		return text[:previewLimit] + "..."
	}
	return text
}
