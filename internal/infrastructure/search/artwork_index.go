package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// ArtworkIndex keeps a searchable copy of artworks in Elasticsearch. The
// in-memory store stays the source of truth; the index only yields ids.
type ArtworkIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewArtworkIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *ArtworkIndex {
	return &ArtworkIndex{ES: es, Index: index, Logger: logger}
}

type artworkDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ArtistID    string `json:"artist_id"`
	Price       string `json:"price"`
	LikeCount   int    `json:"like_count"`
	IsAvailable bool   `json:"is_available"`
	CreatedAt   string `json:"created_at"`
}

// artworkMapping keeps ids, categories and prices exact while title and
// description are analysed for full-text search.
const artworkMapping = `{
  "mappings": {
    "properties": {
      "id":           {"type": "keyword"},
      "title":        {"type": "text"},
      "description":  {"type": "text"},
      "category":     {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "artist_id":    {"type": "keyword"},
      "price":        {"type": "scaled_float", "scaling_factor": 100},
      "like_count":   {"type": "integer"},
      "is_available": {"type": "boolean"},
      "created_at":   {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (x *ArtworkIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Indices.Exists([]string{x.Index}, x.ES.Indices.Exists.WithContext(c))
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}
	if res.StatusCode != 404 {
		return fmt.Errorf("es index exists: %s", res.Status())
	}

	res, err = x.ES.Indices.Create(x.Index,
		x.ES.Indices.Create.WithContext(c),
		x.ES.Indices.Create.WithBody(strings.NewReader(artworkMapping)),
	)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es create index: %s", res.Status())
	}
	x.logger().WithField("index", x.Index).Info("es index created")
	return nil
}

// IndexArtwork upserts the artwork document keyed by its id.
func (x *ArtworkIndex) IndexArtwork(ctx context.Context, a *entity.Artwork) error {
	doc := artworkDoc{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Category:    a.Category,
		ArtistID:    a.ArtistID,
		Price:       a.Price.StringFixed(2),
		LikeCount:   a.LikeCount,
		IsAvailable: a.IsAvailable,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339Nano),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: a.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		x.logger().WithError(err).WithField("artwork_id", a.ID).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		x.logger().WithField("status", res.Status()).WithField("artwork_id", a.ID).Warn("es index response error")
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// SearchArtworkIDs runs a multi_match query and returns the matching ids in
// relevance order.
func (x *ArtworkIndex) SearchArtworkIDs(ctx context.Context, q string, size int) ([]string, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "category"},
			},
		},
		"size":    size,
		"_source": false,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

func (x *ArtworkIndex) logger() *logrus.Logger {
	if x.Logger != nil {
		return x.Logger
	}
	return logrus.StandardLogger()
}
