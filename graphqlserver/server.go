package graphqlserver

import (
	"context"
	"math"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"storefront.GO/catalog/filter"
	catalogService "storefront.GO/catalog/service"
	"storefront.GO/graphql"
)

// RootResolver is the root for graphql-go. It is a thin delegate to the
// catalog search service; GraphQL and REST share the same query semantics.
type RootResolver struct {
	Search *catalogService.SearchService
}

// ProductsArgs matches the products query arguments (defaults in schema:
// page=1, pageSize=20).
type ProductsArgs struct {
	SearchTerm *string
	Category   *string
	Brand      *string
	SizeType   *string
	PriceMin   *float64
	PriceMax   *float64
	SortPrice  *string
	// SortBy and SortOrder have schema defaults, so graphql-go requires
	// non-pointer fields here.
	SortBy    string
	SortOrder string
	Page       int32
	PageSize   int32
}

func (r *RootResolver) Products(ctx context.Context, args ProductsArgs) (*SearchResultResolver, error) {
	params := catalogService.SearchParams{
		Params: filter.Params{
			SearchTerm: deref(args.SearchTerm),
			Category:   deref(args.Category),
			Brand:      deref(args.Brand),
			SizeType:   deref(args.SizeType),
			PriceMin:   args.PriceMin,
			PriceMax:   args.PriceMax,
			SortPrice:  deref(args.SortPrice),
			SortBy:     args.SortBy,
			SortOrder:  args.SortOrder,
		},
		Page:     int(args.Page),
		PageSize: int(args.PageSize),
	}
	res, err := r.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	return &SearchResultResolver{res: res}, nil
}

// SearchResultResolver adapts a service result to the schema.
type SearchResultResolver struct {
	res *catalogService.SearchResult
}

func (r *SearchResultResolver) Products() []*ProductResolver {
	out := make([]*ProductResolver, len(r.res.Products))
	for i := range r.res.Products {
		out[i] = &ProductResolver{p: &r.res.Products[i]}
	}
	return out
}

func (r *SearchResultResolver) TotalPages() int32  { return clampInt32(int64(r.res.TotalPages)) }
func (r *SearchResultResolver) CurrentPage() int32 { return int32(r.res.CurrentPage) }
func (r *SearchResultResolver) TotalItems() int32  { return clampInt32(r.res.TotalItems) }

// clampInt32 caps counters at the schema's Int range instead of wrapping.
func clampInt32(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}

// ProductResolver exposes a decorated product.
type ProductResolver struct {
	p *catalogService.DecoratedProduct
}

func (r *ProductResolver) ID() gql.ID               { return gql.ID(strconv.FormatUint(uint64(r.p.Product.ID), 10)) }
func (r *ProductResolver) Name() string             { return r.p.Name }
func (r *ProductResolver) Title() string            { return r.p.Product.Title }
func (r *ProductResolver) SKU() string              { return r.p.Product.SKU }
func (r *ProductResolver) BrandName() *string       { return optional(r.p.Product.BrandName) }
func (r *ProductResolver) Description() *string     { return optional(r.p.Product.Description) }
func (r *ProductResolver) ImageURL() *string        { return r.p.ImageURL }
func (r *ProductResolver) OfferPrice() float64      { return r.p.OfferPrice }
func (r *ProductResolver) RegularPrice() float64    { return r.p.Product.RegularPrice }
func (r *ProductResolver) Quantity() int32          { return int32(r.p.Quantity) }
func (r *ProductResolver) HasTenDollarOffer() bool  { return r.p.Product.HasTenDollarOffer }
func (r *ProductResolver) SizeType() *string        { return optional(r.p.Product.SizeType) }

// NewSchema parses the schema against a root resolver bound to the search
// service.
func NewSchema(search *catalogService.SearchService) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{Search: search})
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
