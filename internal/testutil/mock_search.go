// Package testutil provides in-memory fakes for handler tests.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/gemini-rag/backend/internal/filesearch"
	"github.com/gemini-rag/backend/internal/models"
)

// MockSearchService is an in-memory stand-in for the remote FileSearch
// service. It satisfies the api.SearchService contract structurally.
type MockSearchService struct {
	mu        sync.Mutex
	stores    map[string]models.StoreRecord
	documents map[string][]models.DocumentRecord
	nextID    int

	// FailWith, when set, is returned by every call.
	FailWith error
}

// NewMockSearchService creates an empty mock service.
func NewMockSearchService() *MockSearchService {
	return &MockSearchService{
		stores:    make(map[string]models.StoreRecord),
		documents: make(map[string][]models.DocumentRecord),
	}
}

// AddStore seeds a store and returns its name.
func (m *MockSearchService) AddStore(displayName string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	name := fmt.Sprintf("fileSearchStores/store-%d", m.nextID)
	m.stores[name] = models.StoreRecord{Name: name, DisplayName: displayName}
	return name
}

// AddDocument seeds a document into a store.
func (m *MockSearchService) AddDocument(storeName string, doc models.DocumentRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[storeName] = append(m.documents[storeName], doc)
}

func (m *MockSearchService) ListStores(ctx context.Context) ([]models.StoreRecord, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stores := make([]models.StoreRecord, 0, len(m.stores))
	for _, s := range m.stores {
		stores = append(stores, s)
	}
	return stores, nil
}

func (m *MockSearchService) CreateStore(ctx context.Context, displayName string) (string, error) {
	if m.FailWith != nil {
		return "", m.FailWith
	}
	return m.AddStore(displayName), nil
}

func (m *MockSearchService) GetStore(ctx context.Context, storeName string) (*models.StoreRecord, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.stores[storeName]
	if !ok {
		return nil, fmt.Errorf("store not found: %s", storeName)
	}
	return &store, nil
}

func (m *MockSearchService) DeleteStore(ctx context.Context, storeName string, force bool) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stores[storeName]; !ok {
		return fmt.Errorf("store not found: %s", storeName)
	}
	if !force && len(m.documents[storeName]) > 0 {
		return fmt.Errorf("store not empty: %s", storeName)
	}
	delete(m.stores, storeName)
	delete(m.documents, storeName)
	return nil
}

func (m *MockSearchService) ListDocuments(ctx context.Context, storeName string) ([]models.DocumentRecord, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.DocumentRecord{}, m.documents[storeName]...), nil
}

func (m *MockSearchService) DeleteDocument(ctx context.Context, documentName string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for storeName, docs := range m.documents {
		for i, doc := range docs {
			if doc.Name == documentName {
				m.documents[storeName] = append(docs[:i], docs[i+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("document not found: %s", documentName)
}

// MockIngestor records ingestion calls and returns canned results.
type MockIngestor struct {
	mu         sync.Mutex
	Calls      []string // file names in call order
	FailFor    map[string]error
	nextOpID   int
	LastStore  string
	Operations []string
}

// NewMockIngestor creates an empty mock ingestor.
func NewMockIngestor() *MockIngestor {
	return &MockIngestor{FailFor: make(map[string]error)}
}

func (m *MockIngestor) IngestOne(ctx context.Context, storeRef string, data []byte, fileName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, fileName)
	m.LastStore = storeRef
	if err, ok := m.FailFor[fileName]; ok {
		return "", err
	}
	m.nextOpID++
	op := fmt.Sprintf("operations/op-%d", m.nextOpID)
	m.Operations = append(m.Operations, op)
	return op, nil
}

func (m *MockIngestor) IngestBatch(ctx context.Context, storeRef string, files []filesearch.IngestFile) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		op, err := m.IngestOne(ctx, storeRef, f.Data, f.Name)
		if err != nil {
			continue
		}
		names = append(names, op)
	}
	return names
}

// MockQuerier returns a fixed outcome.
type MockQuerier struct {
	Outcome  *models.QueryOutcome
	LastReq  models.QueryRequest
	CallsSum int
}

func (m *MockQuerier) Query(ctx context.Context, req models.QueryRequest) *models.QueryOutcome {
	m.LastReq = req
	m.CallsSum++
	if m.Outcome != nil {
		return m.Outcome
	}
	return &models.QueryOutcome{IsFound: false, Citations: []models.Citation{}}
}

// MockHistory is an in-memory history store.
type MockHistory struct {
	mu      sync.Mutex
	Records []*models.HistoryRecord
	Err     error
}

func (m *MockHistory) Record(rec *models.HistoryRecord) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, rec)
	return nil
}

func (m *MockHistory) Recent(limit int) ([]*models.HistoryRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Records) > limit {
		return m.Records[:limit], nil
	}
	return m.Records, nil
}
