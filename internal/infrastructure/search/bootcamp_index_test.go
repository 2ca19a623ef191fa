package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
)

func newIndex(t *testing.T, h http.HandlerFunc) *BootcampIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewBootcampIndex(es, "bootcamps")
}

func TestIndexSendsDocumentUnderBootcampID(t *testing.T) {
	var gotPath string
	var doc map[string]any
	x := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&doc)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	})

	err := x.Index(context.Background(), &entity.Bootcamp{
		ID:        "b1",
		Name:      "Devworks Bootcamp",
		Careers:   []string{"Web Development"},
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "/bootcamps/_doc/b1", gotPath)
	assert.Equal(t, "Devworks Bootcamp", doc["name"])
}

func TestSearchReturnsHitIDsInOrder(t *testing.T) {
	x := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/_search"))
		_, _ = io.WriteString(w, `{"hits":{"hits":[{"_id":"b2"},{"_id":"b1"}]}}`)
	})

	ids, err := x.Search(context.Background(), "web", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b2", "b1"}, ids)
}

func TestSearchMissingIndexIsEmpty(t *testing.T) {
	x := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"type":"index_not_found_exception"}}`)
	})

	ids, err := x.Search(context.Background(), "web", 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRemoveIgnoresMissingDocument(t *testing.T) {
	x := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"result":"not_found"}`)
	})

	assert.NoError(t, x.Remove(context.Background(), "gone"))
}

func TestEnsureIndexCreatesWhenMissing(t *testing.T) {
	var methods []string
	x := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	})

	require.NoError(t, x.EnsureIndex(context.Background()))
	assert.Equal(t, []string{http.MethodHead, http.MethodPut}, methods)
}

func TestEnsureIndexSkipsExisting(t *testing.T) {
	calls := 0
	x := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, x.EnsureIndex(context.Background()))
	assert.Equal(t, 1, calls)
}
