package filter

import (
	"context"
	"strings"

	catalogEntity "storefront.GO/model/entity/catalog"
)

// Search types a term can classify into.
const (
	SearchWomen = "women"
	SearchMen   = "men"
	SearchKids  = "kids"
	SearchText  = "text"
)

// CategorySpellings maps a search type to the literal top-level category
// names accepted for it. Exact match only, no fuzzy matching.
var CategorySpellings = map[string][]string{
	SearchWomen: {"womens", "Womens", "WOMENS", "women", "Women", "WOMEN"},
	SearchMen:   {"mens", "Mens", "MENS", "men", "Men", "MEN"},
	SearchKids:  {"kids", "Kids", "KIDS", "kid", "Kid", "KID"},
}

// impossibleCategoryID can never match a row: auto-increment IDs start at 1.
// Used to fail closed when a scoped search's category is not configured.
const impossibleCategoryID = uint(0)

// Params are the already-parsed catalog search query parameters.
type Params struct {
	SearchTerm string
	Category   string
	Brand      string
	SizeType   string
	PriceMin   *float64
	PriceMax   *float64
	SortPrice  string
	SortBy     string
	SortOrder  string
}

// CategoryResolver resolves a search type (women/men/kids) to its top-level
// category. A nil category with nil error means the category is not
// configured in the store.
type CategoryResolver interface {
	Resolve(ctx context.Context, searchType string) (*catalogEntity.Category, error)
}

// Builder turns request parameters into a predicate tree plus sort spec.
type Builder struct {
	Categories CategoryResolver
}

func NewBuilder(categories CategoryResolver) *Builder {
	return &Builder{Categories: categories}
}

// ClassifySearchTerm normalizes a term and decides whether it denotes a
// gender/kids audience or a general free-text search. Empty terms return "".
func ClassifySearchTerm(term string) string {
	t := strings.ToLower(strings.TrimSpace(term))
	switch t {
	case "":
		return ""
	case "women", "woman":
		return SearchWomen
	case "men", "man":
		return SearchMen
	case "kids", "kid":
		return SearchKids
	default:
		return SearchText
	}
}

// Build composes the full filter predicate and sort spec for one request.
// The returned predicate always includes the availability baseline; a scoped
// search whose category cannot be resolved fails closed (matches nothing).
func (b *Builder) Build(ctx context.Context, p Params) (Predicate, SortSpec, error) {
	one := 1.0
	conds := []Predicate{
		Equals(FieldPublished, true),
		NotNull(FieldSalePrice),
		NotEquals(FieldStatus, catalogEntity.StatusDraft),
		Or(
			Range(FieldStock, &one, nil),
			Range(FieldVariantStock, &one, nil),
		),
	}

	switch kind := ClassifySearchTerm(p.SearchTerm); kind {
	case SearchWomen, SearchMen, SearchKids:
		cat, err := b.Categories.Resolve(ctx, kind)
		if err != nil {
			return Predicate{}, SortSpec{}, err
		}
		if cat != nil {
			conds = append(conds, Equals(FieldParentCategoryID, cat.ID))
		} else {
			// Fail closed: an unconfigured category must not leak
			// unrelated products.
			conds = append(conds, Equals(FieldParentCategoryID, impossibleCategoryID))
		}
	case SearchText:
		conds = append(conds, freeTextGroup(strings.TrimSpace(p.SearchTerm)))
	}

	if segs := splitTrimmed(p.Category, " > "); len(segs) > 0 {
		conds = append(conds, categoryPathCondition(segs))
	}
	if p.Brand != "" {
		conds = append(conds, Equals(FieldBrand, p.Brand))
	}
	if p.SizeType != "" {
		sizes := splitTrimmed(p.SizeType, ",")
		if len(sizes) > 0 {
			conds = append(conds, In(FieldSizeType, sizes))
		}
	}
	if p.PriceMin != nil || p.PriceMax != nil {
		conds = append(conds, Range(FieldSalePrice, p.PriceMin, p.PriceMax))
	}

	return And(conds...), buildSort(p), nil
}

// freeTextGroup builds the OR group of contains conditions: four case
// variants of the term against title, sku, description and brand. Variants
// that coincide (all-numeric terms, say) produce duplicate clauses; the
// store tolerates the redundancy.
func freeTextGroup(term string) Predicate {
	variants := []string{
		term,
		strings.ToLower(term),
		strings.ToUpper(term),
		capitalizeFirst(term),
	}
	fields := []string{FieldTitle, FieldSKU, FieldDescription, FieldBrand}
	var clauses []Predicate
	for _, v := range variants {
		for _, f := range fields {
			clauses = append(clauses, Contains(f, v))
		}
	}
	return Or(clauses...)
}

// categoryPathCondition matches a " > " delimited category path.
// 3 segments match parent/sub/leaf positionally, 2 match parent/sub, a lone
// segment OR-matches any of the three levels.
func categoryPathCondition(segs []string) Predicate {
	switch len(segs) {
	case 3:
		return And(
			Equals(FieldParentCategoryName, segs[0]),
			Equals(FieldSubCategoryName, segs[1]),
			Equals(FieldCategoryName, segs[2]),
		)
	case 2:
		return And(
			Equals(FieldParentCategoryName, segs[0]),
			Equals(FieldSubCategoryName, segs[1]),
		)
	default:
		name := segs[0]
		return Or(
			Equals(FieldParentCategoryName, name),
			Equals(FieldSubCategoryName, name),
			Equals(FieldCategoryName, name),
		)
	}
}

// sortFields is the allowlist of externally sortable fields. Unknown sortBy
// values fall back to createdAt rather than reaching the store verbatim.
var sortFields = map[string]string{
	"createdAt":    FieldCreatedAt,
	"salePrice":    FieldSalePrice,
	"regularPrice": FieldRegularPrice,
	"title":        FieldTitle,
	"id":           FieldID,
}

func buildSort(p Params) SortSpec {
	switch p.SortPrice {
	case "lowToHigh":
		return SortSpec{Field: FieldSalePrice, Desc: false}
	case "highToLow":
		return SortSpec{Field: FieldSalePrice, Desc: true}
	}
	field, ok := sortFields[p.SortBy]
	if !ok {
		return SortSpec{Field: FieldCreatedAt, Desc: true}
	}
	return SortSpec{Field: field, Desc: !strings.EqualFold(p.SortOrder, "asc")}
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func splitTrimmed(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
