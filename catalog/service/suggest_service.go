package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/mitchellh/mapstructure"
)

// SuggestService queries the optional Elasticsearch index for search
// suggestions. It is only wired when ELASTICSEARCH_HOST is configured; the
// primary search path never depends on it.
type SuggestService struct {
	client *elasticsearch.Client
	prefix string
}

func NewSuggestService(client *elasticsearch.Client, prefix string) *SuggestService {
	return &SuggestService{client: client, prefix: prefix}
}

// Enabled reports whether a client is configured.
func (s *SuggestService) Enabled() bool {
	return s != nil && s.client != nil
}

// Suggestion is one suggestion hit.
type Suggestion struct {
	ID    uint    `json:"id" mapstructure:"id"`
	Title string  `json:"title" mapstructure:"title"`
	SKU   string  `json:"sku" mapstructure:"sku"`
	Brand string  `json:"brand" mapstructure:"brand_name"`
	Price float64 `json:"price" mapstructure:"sale_price"`
}

// Suggest runs a multi_match over title, sku, description and brand and
// decodes the hits. limit is clamped to 1..25.
func (s *SuggestService) Suggest(ctx context.Context, term string, limit int) ([]Suggestion, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("suggest: elasticsearch not configured")
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 25 {
		limit = 25
	}

	body := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  term,
				"fields": []string{"title^3", "sku^2", "description", "brand_name"},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.prefix+"_catalog_product"),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("suggest: elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		var sug Suggestion
		if err := decodeSource(hit.Source, &sug); err != nil {
			continue
		}
		out = append(out, sug)
	}
	return out, nil
}

// decodeSource maps an ES _source document onto a Suggestion. ES returns all
// numbers as float64, so decoding is weakly typed.
func decodeSource(src map[string]interface{}, dst *Suggestion) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(src)
}
