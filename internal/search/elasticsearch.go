package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"vokzal/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

type Config struct {
	URL        string
	Username   string
	Password   string
	Index      string
	MaxRetries int
	Enabled    bool
}

// Client indexes generated trips and serves the departure board lookup.
// The index is a convenience view; Postgres remains the source of truth and
// the API falls back to it when the client is absent.
type Client struct {
	es     *elasticsearch.Client
	config Config
}

func NewClient(cfg Config) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     []string{cfg.URL},
		Username:      cfg.Username,
		Password:      cfg.Password,
		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	client := &Client{es: es, config: cfg}

	if err := client.ensureIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return client, nil
}

func (c *Client) ensureIndex(ctx context.Context) error {
	req := esapi.IndicesExistsRequest{
		Index: []string{c.config.Index},
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		slog.Info("Elasticsearch index already exists", "index", c.config.Index)
		return nil
	}

	mapping := map[string]interface{}{
		"settings": map[string]interface{}{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":           map[string]interface{}{"type": "long"},
				"route_number": map[string]interface{}{"type": "keyword"},
				"destination": map[string]interface{}{
					"type": "text",
					"fields": map[string]interface{}{
						"keyword": map[string]interface{}{
							"type":         "keyword",
							"ignore_above": 256,
						},
					},
				},
				"date":           map[string]interface{}{"type": "date", "format": "yyyy-MM-dd"},
				"departure_time": map[string]interface{}{"type": "keyword"},
				"bus_number":     map[string]interface{}{"type": "keyword"},
				"indexed_at":     map[string]interface{}{"type": "date"},
			},
		},
	}

	mappingJSON, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	createReq := esapi.IndicesCreateRequest{
		Index: c.config.Index,
		Body:  strings.NewReader(string(mappingJSON)),
	}

	createRes, err := createReq.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("failed to create index: %s", createRes.String())
	}

	slog.Info("Created Elasticsearch index", "index", c.config.Index)
	return nil
}

// IndexTrip upserts one departure board entry, keyed by trip id.
func (c *Client) IndexTrip(ctx context.Context, item models.TripListItem) error {
	doc, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal trip document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      c.config.Index,
		DocumentID: strconv.FormatInt(item.ID, 10),
		Body:       strings.NewReader(string(doc)),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("failed to index trip: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to index trip: %s", res.String())
	}

	return nil
}

// SearchTrips looks up departures by date and optional destination text.
func (c *Client) SearchTrips(ctx context.Context, date, destination string) ([]models.TripListItem, error) {
	mustQueries := []map[string]interface{}{}

	if date != "" {
		mustQueries = append(mustQueries, map[string]interface{}{
			"term": map[string]interface{}{"date": date},
		})
	}

	if destination != "" {
		mustQueries = append(mustQueries, map[string]interface{}{
			"match": map[string]interface{}{"destination": destination},
		})
	}

	query := map[string]interface{}{"match_all": map[string]interface{}{}}
	if len(mustQueries) > 0 {
		query = map[string]interface{}{
			"bool": map[string]interface{}{"must": mustQueries},
		}
	}

	searchRequest := map[string]interface{}{
		"query": query,
		"sort": []map[string]interface{}{
			{"departure_time": map[string]interface{}{"order": "asc"}},
			{"route_number": map[string]interface{}{"order": "asc"}},
		},
		"size": 200,
	}

	searchJSON, err := json.Marshal(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{c.config.Index},
		Body:  strings.NewReader(string(searchJSON)),
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var response struct {
		Hits struct {
			Hits []struct {
				Source models.TripListItem `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	items := make([]models.TripListItem, len(response.Hits.Hits))
	for i, hit := range response.Hits.Hits {
		items[i] = hit.Source
	}

	return items, nil
}
