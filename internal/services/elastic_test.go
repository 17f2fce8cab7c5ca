package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayana_shop/internal/models"
)

func newElasticServer(t *testing.T, handler http.HandlerFunc) *ElasticIndex {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewElasticIndex(client, "products")
}

func TestElasticIndexDocument(t *testing.T) {
	var path string
	var doc map[string]any
	idx := newElasticServer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.Method + " " + r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &doc)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	err := idx.Index(context.Background(), models.Product{ID: 7, Name: "Peonies", Category: "Wedding"})
	require.NoError(t, err)
	assert.Equal(t, "PUT /products/_doc/7", path)
	assert.Equal(t, "Peonies", doc["name"])
}

func TestElasticSearchReturnsRankedIDs(t *testing.T) {
	var query map[string]any
	idx := newElasticServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &query)
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_source":{"id":4}},{"_source":{"id":1}}]}}`))
	})

	ids, err := idx.Search(context.Background(), "roses")
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 1}, ids)
	assert.Contains(t, query["query"], "multi_match")
}

func TestElasticErrors(t *testing.T) {
	idx := newElasticServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})

	// document déjà absent
	assert.NoError(t, idx.Remove(context.Background(), 3))

	_, err := idx.Search(context.Background(), "roses")
	assert.Error(t, err)
}
