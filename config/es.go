package config

import (
	"os"

	"github.com/elastic/go-elasticsearch/v8"
)

// NewES returns an Elasticsearch client, or nil when ELASTICSEARCH_HOST is unset.
// Search suggestions degrade gracefully without it.
func NewES() *elasticsearch.Client {
	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		return nil
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{host},
	})
	if err != nil {
		return nil
	}
	return client
}

// ESIndexPrefix returns the index name prefix for catalog indices.
func ESIndexPrefix() string {
	prefix := os.Getenv("ELASTICSEARCH_INDEX_PREFIX")
	if prefix == "" {
		prefix = "storefront"
	}
	return prefix
}
