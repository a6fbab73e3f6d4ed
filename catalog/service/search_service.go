package service

import (
	"context"
	"encoding/json"

	"storefront.GO/catalog/filter"
	catalogEntity "storefront.GO/model/entity/catalog"
)

// ProductStore is the paginated filtered read the service performs.
type ProductStore interface {
	FindPage(ctx context.Context, pred filter.Predicate, sort filter.SortSpec, skip, take int) ([]catalogEntity.Product, error)
	Count(ctx context.Context, pred filter.Predicate) (int64, error)
}

// SearchParams are the full catalog search inputs after HTTP parsing.
type SearchParams struct {
	filter.Params
	Page     int
	PageSize int
}

// DecoratedProduct is a product plus derived, non-persisted display fields.
type DecoratedProduct struct {
	catalogEntity.Product
	Name       string  `json:"name"`
	ImageURL   *string `json:"imageUrl,omitempty"`
	OfferPrice float64 `json:"offerPrice"`
	Quantity   int     `json:"quantity"`
}

// SearchResult is the paginated search response.
type SearchResult struct {
	Products    []DecoratedProduct `json:"products"`
	TotalPages  int                `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
	TotalItems  int64              `json:"totalItems"`
}

// SearchService orchestrates the filter builder and the product store.
type SearchService struct {
	builder  *filter.Builder
	products ProductStore
}

func NewSearchService(builder *filter.Builder, products ProductStore) *SearchService {
	return &SearchService{builder: builder, products: products}
}

// Search builds the predicate once and issues the page fetch and the count
// concurrently against that same predicate. Either failure aborts the whole
// operation; the response is never assembled from partial results.
func (s *SearchService) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.PageSize
	if size < 1 {
		size = 20
	}

	pred, sort, err := s.builder.Build(ctx, p.Params)
	if err != nil {
		return nil, err
	}
	skip := (page - 1) * size

	type pageOut struct {
		items []catalogEntity.Product
		err   error
	}
	type countOut struct {
		total int64
		err   error
	}
	pageCh := make(chan pageOut, 1)
	countCh := make(chan countOut, 1)
	go func() {
		items, err := s.products.FindPage(ctx, pred, sort, skip, size)
		pageCh <- pageOut{items, err}
	}()
	go func() {
		total, err := s.products.Count(ctx, pred)
		countCh <- countOut{total, err}
	}()
	pageRes := <-pageCh
	countRes := <-countCh
	if pageRes.err != nil {
		return nil, pageRes.err
	}
	if countRes.err != nil {
		return nil, countRes.err
	}

	decorated := make([]DecoratedProduct, len(pageRes.items))
	for i := range pageRes.items {
		decorated[i] = Decorate(&pageRes.items[i])
	}
	return &SearchResult{
		Products:    decorated,
		TotalPages:  int((countRes.total + int64(size) - 1) / int64(size)),
		CurrentPage: page,
		TotalItems:  countRes.total,
	}, nil
}

// Decorate computes the derived display fields for one product.
func Decorate(p *catalogEntity.Product) DecoratedProduct {
	d := DecoratedProduct{
		Product: *p,
		Name:    p.Title,
	}
	if url := FirstImageURL(p.Images); url != "" {
		d.ImageURL = &url
	}
	if p.SalePrice != nil {
		d.OfferPrice = *p.SalePrice
	} else {
		d.OfferPrice = p.RegularPrice
	}
	if len(p.Variants) > 0 {
		for _, v := range p.Variants {
			d.Quantity += v.StockQuantity
		}
	} else {
		d.Quantity = p.StockQuantity
	}
	return d
}

// FirstImageURL extracts the first image URL from the images JSON column.
// Elements are either bare URL strings or {url, altText} objects; both
// shapes occur in imported data. Returns "" when the list is empty or
// malformed.
func FirstImageURL(images []byte) string {
	if len(images) == 0 {
		return ""
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(images, &raw); err != nil || len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw[0], &s); err == nil {
		return s
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw[0], &obj); err == nil {
		return obj.URL
	}
	return ""
}
