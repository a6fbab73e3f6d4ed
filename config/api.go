package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public storefront paths (read-only, no auth)
	return []string{"/api/catalog/search", "/api/catalog/suggest", "/graphql"}
}
