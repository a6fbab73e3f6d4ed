package catalog

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/api"
	catalogCache "storefront.GO/catalog/cache"
	"storefront.GO/catalog/filter"
	catalogService "storefront.GO/catalog/service"
	"storefront.GO/config"
	catalogRepo "storefront.GO/model/repository/catalog"
)

func init() {
	api.RegisterModule(RegisterCatalogRoutes)
}

var (
	searchSvc  *catalogService.SearchService
	suggestSvc *catalogService.SuggestService
)

// Configure injects the catalog services. Call from the entrypoint before
// api.ApplyModules so the category cache (and its sweeper) is owned there.
func Configure(search *catalogService.SearchService, suggest *catalogService.SuggestService) {
	searchSvc = search
	suggestSvc = suggest
}

// RegisterCatalogRoutes wires /api/catalog. When Configure was not called
// (tests, minimal setups) the stack is built from db with config defaults,
// without a background sweeper.
func RegisterCatalogRoutes(apiGroup *echo.Group, db *gorm.DB) {
	if searchSvc == nil {
		config.LoadAppConfig()
		cc := catalogCache.NewCategoryCache(catalogRepo.NewCategoryRepository(db), config.AppConfig.CategoryTTL, nil)
		searchSvc = catalogService.NewSearchService(filter.NewBuilder(cc), catalogRepo.NewProductRepository(db))
	}

	g := apiGroup.Group("/catalog")

	// GET /api/catalog/search – filtered, paginated product search (public)
	g.GET("/search", func(c echo.Context) error {
		params := parseSearchParams(c)

		cacheKey := searchCacheKey(c.QueryString())
		if cached, ok := cachedResult(c, cacheKey); ok {
			return c.JSONBlob(http.StatusOK, cached)
		}

		res, err := searchSvc.Search(c.Request().Context(), params)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"message": "failed to search products",
				"error":   err.Error(),
			})
		}
		storeResult(c, cacheKey, res)
		return c.JSON(http.StatusOK, res)
	})

	// GET /api/catalog/suggest – Elasticsearch-backed suggestions (public,
	// 503 when no index is configured)
	g.GET("/suggest", func(c echo.Context) error {
		if !suggestSvc.Enabled() {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{
				"message": "suggestions not available",
			})
		}
		term := c.QueryParam("q")
		if term == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
		}
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		out, err := suggestSvc.Suggest(c.Request().Context(), term, limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"message": "failed to fetch suggestions",
				"error":   err.Error(),
			})
		}
		return c.JSON(http.StatusOK, echo.Map{"suggestions": out})
	})
}

func parseSearchParams(c echo.Context) catalogService.SearchParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))

	params := catalogService.SearchParams{
		Params: filter.Params{
			SearchTerm: c.QueryParam("searchTerm"),
			Category:   c.QueryParam("category"),
			Brand:      c.QueryParam("brand"),
			SizeType:   c.QueryParam("sizeType"),
			SortPrice:  c.QueryParam("sortPrice"),
			SortBy:     c.QueryParam("sortBy"),
			SortOrder:  c.QueryParam("sortOrder"),
		},
		Page:     page,
		PageSize: pageSize,
	}
	if params.SortBy == "" {
		params.SortBy = "createdAt"
	}
	if params.SortOrder == "" {
		params.SortOrder = "desc"
	}
	if v := c.QueryParam("priceMin"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.PriceMin = &f
		}
	}
	if v := c.QueryParam("priceMax"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.PriceMax = &f
		}
	}
	return params
}

// Response caching through the shared redis client. 60 seconds keeps the
// hot storefront queries off the database without letting stock numbers go
// far out of date.
const searchCacheTTL = 60 * time.Second

func searchCacheKey(query string) string {
	sum := sha1.Sum([]byte(query))
	return "catalog:search:" + hex.EncodeToString(sum[:])
}

func cachedResult(c echo.Context, key string) ([]byte, bool) {
	if config.RedisClient == nil {
		return nil, false
	}
	raw, err := config.RedisClient.Get(c.Request().Context(), key).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

func storeResult(c echo.Context, key string, res *catalogService.SearchResult) {
	if config.RedisClient == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	config.RedisClient.Set(c.Request().Context(), key, raw, searchCacheTTL)
}
