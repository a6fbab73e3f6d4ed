package filter

import (
	"context"
	"errors"
	"testing"

	catalogEntity "storefront.GO/model/entity/catalog"
)

type stubResolver struct {
	cat   *catalogEntity.Category
	err   error
	calls int
}

func (s *stubResolver) Resolve(ctx context.Context, searchType string) (*catalogEntity.Category, error) {
	s.calls++
	return s.cat, s.err
}

func TestClassifySearchTerm(t *testing.T) {
	cases := map[string]string{
		"":           "",
		"   ":        "",
		"women":      SearchWomen,
		"Woman":      SearchWomen,
		"  WOMEN  ":  SearchWomen,
		"men":        SearchMen,
		"MAN":        SearchMen,
		"kids":       SearchKids,
		"Kid":        SearchKids,
		"red dress":  SearchText,
		"womenswear": SearchText,
		"mens shoes": SearchText,
		"12345":      SearchText,
	}
	for term, want := range cases {
		if got := ClassifySearchTerm(term); got != want {
			t.Errorf("ClassifySearchTerm(%q) = %q, want %q", term, got, want)
		}
	}
}

// The availability baseline must be present on every query, search term or
// not: published, sale price set, not draft, and stock somewhere.
func TestBuildBaseline(t *testing.T) {
	b := NewBuilder(&stubResolver{})
	pred, _, err := b.Build(context.Background(), Params{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if pred.Op != OpAnd {
		t.Fatalf("root op = %v, want OpAnd", pred.Op)
	}
	if len(pred.Children) != 4 {
		t.Fatalf("baseline children = %d, want 4", len(pred.Children))
	}
	if c := pred.Children[0]; c.Op != OpEquals || c.Field != FieldPublished || c.Value != true {
		t.Errorf("child 0 = %+v, want published = true", c)
	}
	if c := pred.Children[1]; c.Op != OpNotNull || c.Field != FieldSalePrice {
		t.Errorf("child 1 = %+v, want sale_price not null", c)
	}
	if c := pred.Children[2]; c.Op != OpNotEquals || c.Field != FieldStatus || c.Value != catalogEntity.StatusDraft {
		t.Errorf("child 2 = %+v, want status != draft", c)
	}
	stock := pred.Children[3]
	if stock.Op != OpOr || len(stock.Children) != 2 {
		t.Fatalf("child 3 = %+v, want OR of two stock ranges", stock)
	}
	if stock.Children[0].Field != FieldStock || stock.Children[1].Field != FieldVariantStock {
		t.Errorf("stock fields = %q, %q", stock.Children[0].Field, stock.Children[1].Field)
	}
	for _, c := range stock.Children {
		if c.Op != OpRange || c.Min == nil || *c.Min != 1 || c.Max != nil {
			t.Errorf("stock range = %+v, want min 1 open ended", c)
		}
	}
}

func TestBuildScopedSearchResolved(t *testing.T) {
	r := &stubResolver{cat: &catalogEntity.Category{ID: 42, Name: "Womens"}}
	b := NewBuilder(r)
	pred, _, err := b.Build(context.Background(), Params{SearchTerm: "women"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	c := pred.Children[len(pred.Children)-1]
	if c.Op != OpEquals || c.Field != FieldParentCategoryID || c.Value != uint(42) {
		t.Errorf("scope condition = %+v, want parent_category_id = 42", c)
	}
	if r.calls != 1 {
		t.Errorf("resolver calls = %d, want 1", r.calls)
	}
}

// A scoped term whose category is not configured must match nothing rather
// than everything.
func TestBuildScopedSearchFailsClosed(t *testing.T) {
	b := NewBuilder(&stubResolver{cat: nil})
	pred, _, err := b.Build(context.Background(), Params{SearchTerm: "kids"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	c := pred.Children[len(pred.Children)-1]
	if c.Op != OpEquals || c.Field != FieldParentCategoryID || c.Value != uint(0) {
		t.Errorf("scope condition = %+v, want parent_category_id = 0", c)
	}
}

func TestBuildResolverErrorPropagates(t *testing.T) {
	wantErr := errors.New("db down")
	b := NewBuilder(&stubResolver{err: wantErr})
	_, _, err := b.Build(context.Background(), Params{SearchTerm: "men"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestBuildFreeTextGroup(t *testing.T) {
	b := NewBuilder(&stubResolver{})
	pred, _, err := b.Build(context.Background(), Params{SearchTerm: "dress"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	group := pred.Children[len(pred.Children)-1]
	if group.Op != OpOr {
		t.Fatalf("free text group op = %v, want OpOr", group.Op)
	}
	if len(group.Children) != 16 {
		t.Fatalf("free text clauses = %d, want 16 (4 case variants x 4 fields)", len(group.Children))
	}
	seen := map[string]bool{}
	for _, c := range group.Children {
		if c.Op != OpContains {
			t.Errorf("clause op = %v, want OpContains", c.Op)
		}
		seen[c.Field+"|"+c.Value.(string)] = true
	}
	for _, want := range []string{
		FieldTitle + "|dress",
		FieldSKU + "|DRESS",
		FieldDescription + "|Dress",
		FieldBrand + "|dress",
	} {
		if !seen[want] {
			t.Errorf("missing clause %q", want)
		}
	}
}

// Identical case variants keep their duplicate clauses.
func TestBuildFreeTextDuplicatesKept(t *testing.T) {
	b := NewBuilder(&stubResolver{})
	pred, _, err := b.Build(context.Background(), Params{SearchTerm: "12345"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	group := pred.Children[len(pred.Children)-1]
	if len(group.Children) != 16 {
		t.Fatalf("free text clauses = %d, want 16 even with identical variants", len(group.Children))
	}
}

func TestBuildCategoryPath(t *testing.T) {
	b := NewBuilder(&stubResolver{})

	t.Run("three segments", func(t *testing.T) {
		pred, _, _ := b.Build(context.Background(), Params{Category: "Womens > Dresses > Maxi"})
		c := pred.Children[len(pred.Children)-1]
		if c.Op != OpAnd || len(c.Children) != 3 {
			t.Fatalf("path condition = %+v, want AND of 3", c)
		}
		if c.Children[0].Field != FieldParentCategoryName || c.Children[0].Value != "Womens" {
			t.Errorf("segment 0 = %+v", c.Children[0])
		}
		if c.Children[1].Field != FieldSubCategoryName || c.Children[1].Value != "Dresses" {
			t.Errorf("segment 1 = %+v", c.Children[1])
		}
		if c.Children[2].Field != FieldCategoryName || c.Children[2].Value != "Maxi" {
			t.Errorf("segment 2 = %+v", c.Children[2])
		}
	})

	t.Run("two segments", func(t *testing.T) {
		pred, _, _ := b.Build(context.Background(), Params{Category: "Mens > Shoes"})
		c := pred.Children[len(pred.Children)-1]
		if c.Op != OpAnd || len(c.Children) != 2 {
			t.Fatalf("path condition = %+v, want AND of 2", c)
		}
		if c.Children[0].Field != FieldParentCategoryName || c.Children[1].Field != FieldSubCategoryName {
			t.Errorf("fields = %q, %q", c.Children[0].Field, c.Children[1].Field)
		}
	})

	t.Run("single segment matches any level", func(t *testing.T) {
		pred, _, _ := b.Build(context.Background(), Params{Category: "Shoes"})
		c := pred.Children[len(pred.Children)-1]
		if c.Op != OpOr || len(c.Children) != 3 {
			t.Fatalf("path condition = %+v, want OR of 3", c)
		}
		for _, child := range c.Children {
			if child.Value != "Shoes" {
				t.Errorf("value = %v, want Shoes", child.Value)
			}
		}
	})

	t.Run("blank segments dropped", func(t *testing.T) {
		pred, _, _ := b.Build(context.Background(), Params{Category: "  Womens  >  > Dresses"})
		c := pred.Children[len(pred.Children)-1]
		if len(c.Children) != 2 {
			t.Fatalf("path condition = %+v, want 2 segments after trimming", c)
		}
	})
}

func TestBuildAttributeFilters(t *testing.T) {
	b := NewBuilder(&stubResolver{})
	min, max := 10.0, 50.0
	pred, _, err := b.Build(context.Background(), Params{
		Brand:    "Acme",
		SizeType: "regular, plus",
		PriceMin: &min,
		PriceMax: &max,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	n := len(pred.Children)
	brand, size, price := pred.Children[n-3], pred.Children[n-2], pred.Children[n-1]
	if brand.Op != OpEquals || brand.Field != FieldBrand || brand.Value != "Acme" {
		t.Errorf("brand = %+v", brand)
	}
	if size.Op != OpIn || size.Field != FieldSizeType || len(size.Values) != 2 || size.Values[1] != "plus" {
		t.Errorf("sizeType = %+v", size)
	}
	if price.Op != OpRange || price.Field != FieldSalePrice || *price.Min != 10 || *price.Max != 50 {
		t.Errorf("price = %+v", price)
	}
}

func TestBuildSort(t *testing.T) {
	cases := []struct {
		name   string
		params Params
		want   SortSpec
	}{
		{"default", Params{}, SortSpec{Field: FieldCreatedAt, Desc: true}},
		{"unknown field falls back", Params{SortBy: "is_published"}, SortSpec{Field: FieldCreatedAt, Desc: true}},
		{"injection falls back", Params{SortBy: "title; DROP TABLE products"}, SortSpec{Field: FieldCreatedAt, Desc: true}},
		{"title asc", Params{SortBy: "title", SortOrder: "asc"}, SortSpec{Field: FieldTitle, Desc: false}},
		{"title ASC case insensitive", Params{SortBy: "title", SortOrder: "ASC"}, SortSpec{Field: FieldTitle, Desc: false}},
		{"salePrice desc", Params{SortBy: "salePrice", SortOrder: "desc"}, SortSpec{Field: FieldSalePrice, Desc: true}},
		{"sortPrice low wins over sortBy", Params{SortPrice: "lowToHigh", SortBy: "title", SortOrder: "desc"}, SortSpec{Field: FieldSalePrice, Desc: false}},
		{"sortPrice high", Params{SortPrice: "highToLow"}, SortSpec{Field: FieldSalePrice, Desc: true}},
	}
	b := NewBuilder(&stubResolver{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, sort, err := b.Build(context.Background(), tc.params)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if sort != tc.want {
				t.Errorf("sort = %+v, want %+v", sort, tc.want)
			}
		})
	}
}
