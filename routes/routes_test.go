package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudspace-consulting/survey-api/app"
	"github.com/cloudspace-consulting/survey-api/config"
	"github.com/cloudspace-consulting/survey-api/store"
)

const (
	surveysCollection   = "surveys"
	responsesCollection = "responses"
)

// memStore is an in-memory stand-in for the document store, with optional
// error injection per operation.
type memStore struct {
	mu     sync.Mutex
	tables map[string][]store.Item

	failPut       error
	failIncrement error
	failScan      error
}

func newMemStore() *memStore {
	return &memStore{tables: map[string][]store.Item{}}
}

func (m *memStore) Put(_ context.Context, collection string, item store.Item) error {
	if m.failPut != nil {
		return m.failPut
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[collection] = append(m.tables[collection], clone(item))
	return nil
}

func (m *memStore) Get(_ context.Context, collection, id string) (store.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.tables[collection] {
		if item["id"] == id {
			return clone(item), nil
		}
	}
	return nil, store.ErrItemNotFound
}

func (m *memStore) Scan(_ context.Context, collection string) ([]store.Item, error) {
	if m.failScan != nil {
		return nil, m.failScan
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []store.Item{}
	for _, item := range m.tables[collection] {
		items = append(items, clone(item))
	}
	return items, nil
}

func (m *memStore) Query(_ context.Context, collection, field, value string) ([]store.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []store.Item{}
	for _, item := range m.tables[collection] {
		if item[field] == value {
			items = append(items, clone(item))
		}
	}
	return items, nil
}

func (m *memStore) IncrementField(_ context.Context, collection, id, field string) error {
	if m.failIncrement != nil {
		return m.failIncrement
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.tables[collection] {
		if item["id"] == id {
			item[field] = asInt(item[field]) + 1
			return nil
		}
	}
	return store.ErrItemNotFound
}

func (m *memStore) count(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables[collection])
}

func clone(item store.Item) store.Item {
	raw, err := json.Marshal(item)
	if err != nil {
		panic(err)
	}
	var out store.Item
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return out
}

func asInt(v any) int {
	switch v := v.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func testApp(t *testing.T) (http.Handler, *memStore) {
	t.Helper()
	db := newMemStore()
	handler := Wire(app.App{
		Store: db,
		Config: config.Config{
			SurveysCollection:   surveysCollection,
			ResponsesCollection: responsesCollection,
		},
	})
	return handler, db
}

func do(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch body := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(body)
	default:
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
