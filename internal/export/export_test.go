package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/gemini-rag/backend/internal/models"
)

func sampleRecords() []*models.HistoryRecord {
	return []*models.HistoryRecord{
		{
			ID:             "a1",
			StoreRef:       "fileSearchStores/s1",
			Question:       "What is the leave policy?",
			Answer:         "20 days per year.",
			IsFound:        true,
			CitationCount:  2,
			ResponseTimeMs: 850,
			CreatedAt:      time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:             "b2",
			StoreRef:       "fileSearchStores/s1",
			Question:       "Who won the 1994 World Cup?",
			IsFound:        false,
			ResponseTimeMs: 420,
			CreatedAt:      time.Date(2025, 3, 1, 10, 31, 0, 0, time.UTC),
		},
	}
}

func TestEncode_JSON(t *testing.T) {
	data, contentType, err := Encode(sampleRecords(), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)

	var env struct {
		TotalQueries int                     `json:"totalQueries"`
		Queries      []*models.HistoryRecord `json:"queries"`
	}
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, 2, env.TotalQueries)
	require.Len(t, env.Queries, 2)
	assert.Equal(t, "What is the leave policy?", env.Queries[0].Question)
}

func TestEncode_CSV(t *testing.T) {
	data, contentType, err := Encode(sampleRecords(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "createdAt", "storeRef", "question", "answer", "found", "citations", "responseTimeMs"}, rows[0])
	assert.Equal(t, "a1", rows[1][0])
	assert.Equal(t, "true", rows[1][5])
	assert.Equal(t, "false", rows[2][5])
	assert.Equal(t, "420", rows[2][7])
}

func TestEncode_Markdown(t *testing.T) {
	data, contentType, err := Encode(sampleRecords(), FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "text/markdown", contentType)

	text := string(data)
	assert.Contains(t, text, "# Query History Export")
	assert.Contains(t, text, "**Total Queries:** 2")
	assert.Contains(t, text, "## Query 1")
	assert.Contains(t, text, "20 days per year.")
	// Not-found entries keep the question but omit the answer section.
	assert.Contains(t, text, "Who won the 1994 World Cup?")
	assert.Contains(t, text, "**Found:** No")
}

func TestEncode_Msgpack(t *testing.T) {
	data, contentType, err := Encode(sampleRecords(), FormatMsgpack)
	require.NoError(t, err)
	assert.Equal(t, "application/x-msgpack", contentType)

	var env envelope
	require.NoError(t, msgpack.Unmarshal(data, &env))
	assert.Equal(t, 2, env.TotalQueries)
	require.Len(t, env.Queries, 2)
	assert.Equal(t, "a1", env.Queries[0].ID)
}

func TestEncode_UnknownFormat(t *testing.T) {
	_, _, err := Encode(nil, Format("xml"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"csv", FormatCSV, false},
		{"markdown", FormatMarkdown, false},
		{"msgpack", FormatMsgpack, false},
		{"", FormatJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
