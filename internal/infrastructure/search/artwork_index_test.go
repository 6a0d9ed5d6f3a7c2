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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
)

func newTestIndex(t *testing.T, h http.HandlerFunc) *ArtworkIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewArtworkIndex(es, "artworks", nil)
}

func TestIndexArtwork_PutsDocument(t *testing.T) {
	var (
		gotPath string
		gotDoc  map[string]any
	)
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotDoc)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	err := idx.IndexArtwork(context.Background(), &entity.Artwork{
		ID:          "art-1",
		Title:       "Neon City",
		Price:       decimal.RequireFromString("12.5"),
		Category:    entity.CategoryConceptArt,
		IsAvailable: true,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "/artworks/_doc/art-1", gotPath)
	assert.Equal(t, "Neon City", gotDoc["title"])
	assert.Equal(t, "12.50", gotDoc["price"])
}

func TestIndexArtwork_ErrorStatus(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad"}`))
	})
	err := idx.IndexArtwork(context.Background(), &entity.Artwork{ID: "x"})
	assert.Error(t, err)
}

func TestSearchArtworkIDs(t *testing.T) {
	var body string
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"b"},{"_id":"a"}]}}`))
	})

	ids, err := idx.SearchArtworkIDs(context.Background(), "neon", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids)
	assert.True(t, strings.Contains(body, `"multi_match"`))
	assert.True(t, strings.Contains(body, `"size":5`))
}

func TestEnsureIndex(t *testing.T) {
	tests := []struct {
		name       string
		existsCode int
		wantCreate bool
		wantErr    bool
	}{
		{"exists", http.StatusOK, false, false},
		{"missing", http.StatusNotFound, true, false},
		{"broken", http.StatusInternalServerError, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created string
			idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
				switch r.Method {
				case http.MethodHead:
					w.WriteHeader(tt.existsCode)
				case http.MethodPut:
					b, _ := io.ReadAll(r.Body)
					created = string(b)
					_, _ = w.Write([]byte(`{"acknowledged":true}`))
				}
			})

			err := idx.EnsureIndex(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantCreate {
				assert.Contains(t, created, `"scaled_float"`)
			} else {
				assert.Empty(t, created)
			}
		})
	}
}
