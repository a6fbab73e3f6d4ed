package graphql

import (
	_ "embed"
)

//go:embed schema.graphqls
var schemaBase string

// Schema returns the catalog GraphQL schema.
func Schema() string {
	return schemaBase
}
