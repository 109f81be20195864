// Package export encodes query history into interchange formats.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/gemini-rag/backend/internal/models"
)

// Format selects a history export encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatMsgpack  Format = "msgpack"
)

// envelope is the top-level structure of JSON and msgpack exports.
type envelope struct {
	ExportDate   time.Time               `json:"exportDate" msgpack:"exportDate"`
	TotalQueries int                     `json:"totalQueries" msgpack:"totalQueries"`
	Queries      []*models.HistoryRecord `json:"queries" msgpack:"queries"`
}

// Encode serializes records in the requested format, returning the bytes
// and their content type.
func Encode(records []*models.HistoryRecord, format Format) ([]byte, string, error) {
	env := envelope{
		ExportDate:   time.Now().UTC(),
		TotalQueries: len(records),
		Queries:      records,
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(env, "", "  ")
		return data, "application/json", err

	case FormatMsgpack:
		data, err := msgpack.Marshal(env)
		return data, "application/x-msgpack", err

	case FormatCSV:
		data, err := encodeCSV(records)
		return data, "text/csv", err

	case FormatMarkdown:
		return encodeMarkdown(records), "text/markdown", nil

	default:
		return nil, "", fmt.Errorf("unknown export format: %s", format)
	}
}

// ParseFormat maps a request parameter to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV, FormatMarkdown, FormatMsgpack:
		return Format(s), nil
	case "":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown export format: %s", s)
}

func encodeCSV(records []*models.HistoryRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "createdAt", "storeRef", "question", "answer", "found", "citations", "responseTimeMs"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := []string{
			rec.ID,
			rec.CreatedAt.Format(time.RFC3339),
			rec.StoreRef,
			rec.Question,
			rec.Answer,
			strconv.FormatBool(rec.IsFound),
			strconv.Itoa(rec.CitationCount),
			strconv.FormatInt(rec.ResponseTimeMs, 10),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func encodeMarkdown(records []*models.HistoryRecord) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Query History Export\n\n")
	fmt.Fprintf(&buf, "**Export Date:** %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&buf, "**Total Queries:** %d\n\n---\n\n", len(records))

	for i, rec := range records {
		fmt.Fprintf(&buf, "## Query %d\n\n", i+1)
		fmt.Fprintf(&buf, "**Time:** %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&buf, "**Response Time:** %dms\n", rec.ResponseTimeMs)
		found := "No"
		if rec.IsFound {
			found = "Yes"
		}
		fmt.Fprintf(&buf, "**Found:** %s\n\n", found)
		fmt.Fprintf(&buf, "**Question:**\n> %s\n\n", rec.Question)

		if rec.IsFound && rec.Answer != "" {
			fmt.Fprintf(&buf, "**Answer:**\n%s\n\n", rec.Answer)
		}

		buf.WriteString("---\n\n")
	}
	return buf.Bytes()
}
