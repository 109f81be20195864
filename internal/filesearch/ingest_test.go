package filesearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gemini-rag/backend/internal/validation"
)

// newIngestServer fakes the full ingest protocol: initiate, transfer, and
// an operation that completes on its first poll.
func newIngestServer(t *testing.T) (*httptest.Server, *ingestServerState) {
	t.Helper()
	state := &ingestServerState{}

	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("POST /fileSearchStores/{store}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Goog-Upload-URL", server.URL+"/session/next")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /session/next", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		n := atomic.AddInt32(&state.uploads, 1)
		state.bodies = append(state.bodies, string(body))
		fmt.Fprintf(w, `{"name":"operations/op-%d","done":false}`, n)
	})
	mux.HandleFunc("GET /operations/{op}", func(w http.ResponseWriter, r *http.Request) {
		name := "operations/" + r.PathValue("op")
		fmt.Fprintf(w, `{"name":%q,"done":true}`, name)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, state
}

type ingestServerState struct {
	uploads int32
	bodies  []string
}

func newTestIngestor(serverURL string) *Ingestor {
	client := NewClient(Config{
		APIKey:        "test-key",
		BaseURL:       serverURL,
		UploadBaseURL: serverURL,
		PollInterval:  time.Millisecond,
	})
	return NewIngestor(client, validation.NewValidator())
}

func TestIngestor_IngestOne(t *testing.T) {
	server, state := newIngestServer(t)
	g := newTestIngestor(server.URL)

	opName, err := g.IngestOne(context.Background(), "fileSearchStores/s1", []byte("%PDF-1.7 body"), "report.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opName != "operations/op-1" {
		t.Errorf("operation name = %q", opName)
	}
	if atomic.LoadInt32(&state.uploads) != 1 {
		t.Errorf("uploads = %d, want 1", state.uploads)
	}
}

func TestIngestor_IngestOne_RejectsBeforeNetwork(t *testing.T) {
	// Any request to this server fails the test: an invalid file must be
	// rejected without contacting the remote service at all.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))
	t.Cleanup(server.Close)
	g := newTestIngestor(server.URL)

	_, err := g.IngestOne(context.Background(), "fileSearchStores/s1", []byte{0x4D, 0x5A, 0x01}, "evil.pdf")

	var vErr *validation.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError, got %T: %v", err, err)
	}
	if !vErr.Verdict.IsPotentiallySpoofed {
		t.Error("verdict not flagged as spoofed")
	}
}

func TestIngestor_IngestBatch_IsolatesFailures(t *testing.T) {
	server, state := newIngestServer(t)
	g := newTestIngestor(server.URL)

	files := []IngestFile{
		{Name: "one.txt", Data: []byte("first file\n")},
		{Name: "two.exe", Data: []byte("blocked by extension")},
		{Name: "three.txt", Data: []byte("third file\n")},
	}

	names := g.IngestBatch(context.Background(), "fileSearchStores/s1", files)

	if len(names) != 2 {
		t.Fatalf("successful operations = %d (%v), want 2", len(names), names)
	}
	if atomic.LoadInt32(&state.uploads) != 2 {
		t.Errorf("uploads = %d, want 2 (invalid file must not reach the wire)", state.uploads)
	}
	// File three must still be processed after file two fails.
	if !strings.Contains(strings.Join(state.bodies, "|"), "third file") {
		t.Error("batch aborted before the third file")
	}
}

func TestIngestor_IngestBatch_Empty(t *testing.T) {
	server, _ := newIngestServer(t)
	g := newTestIngestor(server.URL)

	names := g.IngestBatch(context.Background(), "fileSearchStores/s1", nil)
	if len(names) != 0 {
		t.Errorf("names = %v, want empty", names)
	}
}
