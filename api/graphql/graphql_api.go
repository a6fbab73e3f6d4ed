package graphql

import (
	"net/http"

	"github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/api"
	catalogCache "storefront.GO/catalog/cache"
	"storefront.GO/catalog/filter"
	catalogService "storefront.GO/catalog/service"
	"storefront.GO/config"
	"storefront.GO/graphqlserver"
	catalogRepo "storefront.GO/model/repository/catalog"
)

func init() {
	api.RegisterRoute(RegisterGraphQLRoutes)
}

var searchSvc *catalogService.SearchService

// Configure injects the search service so GraphQL and REST share one
// instance. Call from the entrypoint before api.ApplyRoutes.
func Configure(search *catalogService.SearchService) {
	searchSvc = search
}

// RegisterGraphQLRoutes wires /graphql and /playground. When Configure was
// not called the stack is built from db with config defaults, without a
// background sweeper.
func RegisterGraphQLRoutes(e *echo.Echo, db *gorm.DB) {
	if searchSvc == nil {
		config.LoadAppConfig()
		cc := catalogCache.NewCategoryCache(catalogRepo.NewCategoryRepository(db), config.AppConfig.CategoryTTL, nil)
		searchSvc = catalogService.NewSearchService(filter.NewBuilder(cc), catalogRepo.NewProductRepository(db))
	}
	schema, err := graphqlserver.NewSchema(searchSvc)
	if err != nil {
		panic("graphql schema: " + err.Error())
	}
	registerRoutes(e, schema)
}

// RegisterGraphQLRoutesWithSchema registers /graphql with a custom schema (for tests with mocks).
func RegisterGraphQLRoutesWithSchema(e *echo.Echo, schema *graphql.Schema) {
	registerRoutes(e, schema)
}

func registerRoutes(e *echo.Echo, schema *graphql.Schema) {
	h := graphqlserver.Handler(schema)
	e.POST("/graphql", echo.WrapHandler(h))
	e.GET("/graphql", echo.WrapHandler(h))
	e.GET("/playground", echo.WrapHandler(playgroundHandler()))
}

func playgroundHandler() http.Handler {
	html := `<!DOCTYPE html>
<html>
<head>
	<title>GraphQL Playground</title>
	<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/css/index.css"/>
</head>
<body>
	<div id="root"/>
	<script src="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/js/middleware.js"></script>
	<script>window.addEventListener('load', function() {
		GraphQLPlayground.init({ endpoint: '/graphql' });
	})</script>
</body>
</html>`
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	})
}
